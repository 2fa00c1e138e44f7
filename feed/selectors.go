// Package feed extracts posts from rendered feed documents.
//
// Feed markup changes often and without notice. Every lookup here is an
// ordered chain of selectors, most reliable first, and every failure
// degrades to fewer posts rather than an error.
package feed

// Feed DOM selectors. These are isolated here because the feed markup
// changes frequently. Update these when extraction breaks.

// DefaultOrigin is used to absolutize relative permalinks.
const DefaultOrigin = "https://www.linkedin.com"

// DefaultContainerSelectors locate post containers. Selectors keyed on
// activity identifiers come first since class names also match
// nested or decorative elements.
var DefaultContainerSelectors = []string{
	`[data-urn*="urn:li:activity"]`,
	`div.feed-shared-update-v2`,
	`[class*="feed-shared-update-v2"]`,
	`li.profile-creator-shared-feed-update__container`,
	`div[data-id*="urn:li:activity"]`,
}

// DefaultDescriptionSelectors locate the authored body of a post within its container.
var DefaultDescriptionSelectors = []string{
	`.feed-shared-update-v2__description`,
	`.update-components-text`,
	`[class*="commentary"]`,
}

// DefaultPermalinkSelectors locate anchors that may point at the post itself.
var DefaultPermalinkSelectors = []string{
	`a[href*="/feed/update/"]`,
	`a[href*="/activity-"]`,
	`a[href*="/posts/"]`,
	`a.feed-shared-update-v2__content-wrapper`,
	`[data-id*="urn:li:activity"] a`,
}

// permalinkPatterns are path fragments that identify a post permalink.
var permalinkPatterns = []string{
	"/feed/update/",
	"/activity-",
	"/posts/",
}

// DefaultDateSelectors locate the relative timestamp shown next to the author.
var DefaultDateSelectors = []string{
	`.update-components-actor__sub-description`,
	`.feed-shared-actor__sub-description`,
	`time`,
}

// identityAttributes carry the activity identifier of a container, in order of preference.
var identityAttributes = []string{"data-urn", "data-id"}

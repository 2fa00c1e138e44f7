package feed

import (
	"time"

	"github.com/fwojciec/feedscrape"
)

// containerIdentity returns the activity identifier attached to the
// container, or empty string if it has none or it cannot be read.
func containerIdentity(el feedscrape.Element) string {
	for _, name := range identityAttributes {
		v, ok, err := el.Attribute(name)
		if err == nil && ok && v != "" {
			return v
		}
	}
	return ""
}

// extractText returns the cleaned body of a post. It prefers the first
// description region with enough text, and otherwise filters UI chrome
// out of the container's full text.
func extractText(el feedscrape.Element, raw string, selectors []string) string {
	for _, selector := range selectors {
		region, err := el.Query(selector)
		if err != nil || region == nil {
			continue
		}
		text, err := region.Text()
		if err != nil {
			continue
		}
		if text = feedscrape.CleanText(text); feedscrape.HasMinLength(text) {
			return text
		}
	}

	return feedscrape.CleanText(feedscrape.FilterLines(raw))
}

// postedAt returns the publication time shown on the container, or the
// zero time if no relative timestamp can be found.
func postedAt(el feedscrape.Element, selectors []string, now time.Time) time.Time {
	for _, selector := range selectors {
		node, err := el.Query(selector)
		if err != nil || node == nil {
			continue
		}
		text, err := node.Text()
		if err != nil {
			continue
		}
		if t, ok := feedscrape.ParseRelativeDate(text, now); ok {
			return t
		}
	}
	return time.Time{}
}

package feed

import (
	"net/url"
	"strings"

	"github.com/fwojciec/feedscrape"
)

// ResolvePermalink returns the canonical URL of the post in el.
// It tries each selector in order and returns the first anchor whose href
// looks like a post permalink, resolved against origin with the query
// and fragment removed. Returns fallback if no anchor qualifies.
func ResolvePermalink(el feedscrape.Element, selectors []string, origin, fallback string) string {
	base, err := url.Parse(origin)
	if err != nil {
		return fallback
	}

	for _, selector := range selectors {
		anchors, err := el.QueryAll(selector)
		if err != nil {
			continue
		}
		for _, a := range anchors {
			href, ok, err := a.Attribute("href")
			if err != nil || !ok || !isPermalink(href) {
				continue
			}
			if resolved := normalizePermalink(base, href); resolved != "" {
				return resolved
			}
		}
	}

	return fallback
}

func isPermalink(href string) bool {
	for _, pattern := range permalinkPatterns {
		if strings.Contains(href, pattern) {
			return true
		}
	}
	return false
}

// normalizePermalink resolves href against base and strips the query and fragment.
// Returns empty string if the result is not an absolute http(s) URL.
func normalizePermalink(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	u := base.ResolveReference(ref)
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ""
	}
	u.RawQuery = ""
	u.ForceQuery = false
	u.Fragment = ""
	return u.String()
}

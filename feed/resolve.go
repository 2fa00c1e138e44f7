package feed

import "github.com/fwojciec/feedscrape"

// ResolveContainers returns the elements matched by the first selector
// that matches anything, together with that selector. Matches are never
// merged across selectors. A selector that fails counts as matching
// nothing. Returns nil and an empty selector if no selector matches.
func ResolveContainers(doc feedscrape.Document, selectors []string) ([]feedscrape.Element, string) {
	for _, selector := range selectors {
		elements, err := doc.QueryAll(selector)
		if err != nil || len(elements) == 0 {
			continue
		}
		return elements, selector
	}
	return nil, ""
}

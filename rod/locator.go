package rod

import (
	"regexp"

	"github.com/fwojciec/feedscrape"
)

// Locator finds page controls by CSS selector and, optionally, by the
// text they display.
type Locator struct {
	Selector string

	// Text, if set, must match the element's text.
	Text *regexp.Regexp
}

var (
	recentText  = regexp.MustCompile(`(?i)\b(?:recent|latest)\b`)
	seeMoreText = regexp.MustCompile(`(?i)see more`)
)

// SortLocators find the control that opens the feed sort menu.
var SortLocators = []Locator{
	{Selector: "button", Text: regexp.MustCompile(`(?i)sort by`)},
	{Selector: "button", Text: regexp.MustCompile(`(?i)^\s*top\b`)},
	{Selector: `[aria-label*="Sort"]`},
	{Selector: `button[aria-label*="sort"]`},
	{Selector: `.feed-sort-dropdown button`},
}

// RecentLocators find the "Recent" entry of an open sort menu.
var RecentLocators = []Locator{
	{Selector: "button", Text: recentText},
	{Selector: `[role="menuitem"]`, Text: recentText},
	{Selector: "li", Text: recentText},
}

// SeeMoreLocators find the controls that expand truncated post text.
var SeeMoreLocators = []Locator{
	{Selector: "button", Text: seeMoreText},
	{Selector: `[aria-label*="see more"]`},
	{Selector: `button[class*="see-more"]`},
	{Selector: "span", Text: regexp.MustCompile(`(?i)^\W*see more\W*$`)},
}

// FindFirst returns the first element matched by the first locator that
// matches anything, or nil. Query failures count as no match.
func FindFirst(doc feedscrape.Document, locators []Locator) feedscrape.Element {
	for _, loc := range locators {
		if found := loc.find(doc); len(found) > 0 {
			return found[0]
		}
	}
	return nil
}

// FindVisible returns every visible element matched by any locator, in
// locator order. Elements matched by several locators are returned once
// per locator.
func FindVisible(doc feedscrape.Document, locators []Locator) []feedscrape.Element {
	var visible []feedscrape.Element
	for _, loc := range locators {
		for _, el := range loc.find(doc) {
			if ok, err := el.Visible(); err == nil && ok {
				visible = append(visible, el)
			}
		}
	}
	return visible
}

func (l Locator) find(doc feedscrape.Document) []feedscrape.Element {
	els, err := doc.QueryAll(l.Selector)
	if err != nil || l.Text == nil {
		return els
	}
	var matched []feedscrape.Element
	for _, el := range els {
		text, err := el.Text()
		if err == nil && l.Text.MatchString(text) {
			matched = append(matched, el)
		}
	}
	return matched
}

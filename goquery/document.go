package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/feedscrape"
	"golang.org/x/net/html"
)

// Compile-time interface verification.
var (
	_ feedscrape.RenderedDocument = (*Document)(nil)
	_ feedscrape.Element          = (*Element)(nil)
)

// Document is a feed page parsed from static HTML, such as a saved
// debug dump. It needs no browser and holds no resources.
type Document struct {
	doc *goquery.Document
	url string
}

// NewDocument parses markup into a Document. pageURL is reported by URL
// and is used by extraction as the fallback permalink.
func NewDocument(markup, pageURL string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, feedscrape.Errorf(feedscrape.EINVALID, "failed to parse HTML: %v", err)
	}
	return &Document{doc: doc, url: pageURL}, nil
}

// QueryAll returns all elements matching selector in document order.
// Returns EINVALID if the selector does not compile.
func (d *Document) QueryAll(selector string) ([]feedscrape.Element, error) {
	m, err := compile(selector)
	if err != nil {
		return nil, err
	}
	return wrap(d.doc.FindMatcher(m)), nil
}

// HTML returns the serialized document.
func (d *Document) HTML() (string, error) {
	return goquery.OuterHtml(d.doc.Selection)
}

// URL returns the page address given to NewDocument.
func (d *Document) URL() string {
	return d.url
}

// Close is a no-op.
func (d *Document) Close() error {
	return nil
}

// Element is a single node of a static Document.
type Element struct {
	sel *goquery.Selection
}

// Attribute returns the value of the named attribute.
func (e *Element) Attribute(name string) (string, bool, error) {
	v, ok := e.sel.Attr(name)
	return v, ok, nil
}

// Text approximates the browser's innerText for the element.
func (e *Element) Text() (string, error) {
	return InnerText(e.node()), nil
}

// Query returns the first descendant matching selector, or nil.
func (e *Element) Query(selector string) (feedscrape.Element, error) {
	m, err := compile(selector)
	if err != nil {
		return nil, err
	}
	found := e.sel.FindMatcher(m).First()
	if found.Length() == 0 {
		return nil, nil
	}
	return &Element{sel: found}, nil
}

// QueryAll returns all descendants matching selector.
func (e *Element) QueryAll(selector string) ([]feedscrape.Element, error) {
	m, err := compile(selector)
	if err != nil {
		return nil, err
	}
	return wrap(e.sel.FindMatcher(m)), nil
}

// Visible reports whether neither the element nor any ancestor is hidden
// by the hidden attribute or an inline style.
func (e *Element) Visible() (bool, error) {
	for n := e.node(); n != nil; n = n.Parent {
		if isHidden(n) {
			return false, nil
		}
	}
	return true, nil
}

func (e *Element) node() *html.Node {
	return e.sel.Get(0)
}

func compile(selector string) (cascadia.Selector, error) {
	m, err := cascadia.Compile(selector)
	if err != nil {
		return nil, feedscrape.Errorf(feedscrape.EINVALID, "invalid selector %q: %v", selector, err)
	}
	return m, nil
}

func wrap(sel *goquery.Selection) []feedscrape.Element {
	elements := make([]feedscrape.Element, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		elements = append(elements, &Element{sel: s})
	})
	return elements
}

package rod

import (
	"fmt"

	"github.com/fwojciec/feedscrape"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// Compile-time interface verification.
var (
	_ feedscrape.RenderedDocument = (*Document)(nil)
	_ feedscrape.Element          = (*Element)(nil)
)

// Document is a feed page open in the browser. Queries run against the
// live DOM and never wait for elements to appear.
type Document struct {
	page *rod.Page
	url  string
}

// QueryAll returns all elements matching selector in document order.
func (d *Document) QueryAll(selector string) ([]feedscrape.Element, error) {
	els, err := d.page.Elements(selector)
	if err != nil {
		return nil, fmt.Errorf("querying %q: %w", selector, err)
	}
	return wrap(els), nil
}

// HTML returns the serialized DOM of the page.
func (d *Document) HTML() (string, error) {
	return d.page.HTML()
}

// URL returns the address the page was loaded from.
func (d *Document) URL() string {
	return d.url
}

// Close closes the browser page.
func (d *Document) Close() error {
	return d.page.Close()
}

// Element is a node in a live page.
type Element struct {
	el *rod.Element
}

// Attribute returns the value of the named attribute.
func (e *Element) Attribute(name string) (string, bool, error) {
	v, err := e.el.Attribute(name)
	if err != nil {
		return "", false, err
	}
	if v == nil {
		return "", false, nil
	}
	return *v, true, nil
}

// Text returns the element's innerText.
func (e *Element) Text() (string, error) {
	return e.el.Text()
}

// Query returns the first descendant matching selector, or nil.
func (e *Element) Query(selector string) (feedscrape.Element, error) {
	els, err := e.el.Elements(selector)
	if err != nil {
		return nil, err
	}
	if len(els) == 0 {
		return nil, nil
	}
	return &Element{el: els[0]}, nil
}

// QueryAll returns all descendants matching selector.
func (e *Element) QueryAll(selector string) ([]feedscrape.Element, error) {
	els, err := e.el.Elements(selector)
	if err != nil {
		return nil, err
	}
	return wrap(els), nil
}

// Visible reports whether the element is rendered and visible.
func (e *Element) Visible() (bool, error) {
	return e.el.Visible()
}

// click scrolls the element into view and clicks it once.
func (e *Element) click() error {
	if err := e.el.ScrollIntoView(); err != nil {
		return err
	}
	return e.el.Click(proto.InputMouseButtonLeft, 1)
}

func wrap(els rod.Elements) []feedscrape.Element {
	elements := make([]feedscrape.Element, 0, len(els))
	for _, el := range els {
		elements = append(elements, &Element{el: el})
	}
	return elements
}

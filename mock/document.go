package mock

import (
	"context"

	"github.com/fwojciec/feedscrape"
)

var _ feedscrape.Document = (*Document)(nil)

// Document is a mock implementation of feedscrape.Document.
type Document struct {
	QueryAllFn func(selector string) ([]feedscrape.Element, error)
	HTMLFn     func() (string, error)
}

func (d *Document) QueryAll(selector string) ([]feedscrape.Element, error) {
	return d.QueryAllFn(selector)
}

func (d *Document) HTML() (string, error) {
	return d.HTMLFn()
}

var _ feedscrape.RenderedDocument = (*RenderedDocument)(nil)

// RenderedDocument is a mock implementation of feedscrape.RenderedDocument.
type RenderedDocument struct {
	Document
	URLFn   func() string
	CloseFn func() error
}

func (d *RenderedDocument) URL() string {
	return d.URLFn()
}

func (d *RenderedDocument) Close() error {
	return d.CloseFn()
}

var _ feedscrape.Element = (*Element)(nil)

// Element is a mock implementation of feedscrape.Element.
type Element struct {
	AttributeFn func(name string) (string, bool, error)
	TextFn      func() (string, error)
	QueryFn     func(selector string) (feedscrape.Element, error)
	QueryAllFn  func(selector string) ([]feedscrape.Element, error)
	VisibleFn   func() (bool, error)
}

func (e *Element) Attribute(name string) (string, bool, error) {
	return e.AttributeFn(name)
}

func (e *Element) Text() (string, error) {
	return e.TextFn()
}

func (e *Element) Query(selector string) (feedscrape.Element, error) {
	return e.QueryFn(selector)
}

func (e *Element) QueryAll(selector string) ([]feedscrape.Element, error) {
	return e.QueryAllFn(selector)
}

func (e *Element) Visible() (bool, error) {
	return e.VisibleFn()
}

var _ feedscrape.DocumentLoader = (*DocumentLoader)(nil)

// DocumentLoader is a mock implementation of feedscrape.DocumentLoader.
type DocumentLoader struct {
	LoadFn  func(ctx context.Context, url string) (feedscrape.RenderedDocument, error)
	CloseFn func() error
}

func (l *DocumentLoader) Load(ctx context.Context, url string) (feedscrape.RenderedDocument, error) {
	return l.LoadFn(ctx, url)
}

func (l *DocumentLoader) Close() error {
	return l.CloseFn()
}

var _ feedscrape.DebugDumper = (*DebugDumper)(nil)

// DebugDumper is a mock implementation of feedscrape.DebugDumper.
type DebugDumper struct {
	DumpHTMLFn func(html string) error
}

func (d *DebugDumper) DumpHTML(html string) error {
	return d.DumpHTMLFn(html)
}

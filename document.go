package feedscrape

import "context"

// Document is a read-only handle to a rendered page.
// Implementations may be backed by a live browser page or by parsed HTML.
type Document interface {
	// QueryAll returns all elements matching the CSS selector in document order.
	// An empty result is not an error.
	QueryAll(selector string) ([]Element, error)

	// HTML returns the serialized markup of the document. Used for debugging.
	HTML() (string, error)
}

// Element is a handle to a single node of a Document. It is only valid
// for the lifetime of the Document it came from.
type Element interface {
	// Attribute returns the value of the named attribute.
	// The bool result is false if the attribute is not present.
	Attribute(name string) (string, bool, error)

	// Text returns the rendered text of the element, with line breaks
	// between block-level children.
	Text() (string, error)

	// Query returns the first descendant matching the CSS selector,
	// or nil if nothing matches.
	Query(selector string) (Element, error)

	// QueryAll returns all descendants matching the CSS selector.
	QueryAll(selector string) ([]Element, error)

	// Visible reports whether the element is rendered and visible.
	Visible() (bool, error)
}

// RenderedDocument is a Document that holds resources until closed.
type RenderedDocument interface {
	Document

	// URL returns the address the document was loaded from.
	URL() string

	// Close releases the underlying page.
	Close() error
}

// DocumentLoader renders feed pages.
// Implementations hide browser launch, authentication, navigation,
// and the interactions needed before a feed is ready for extraction.
type DocumentLoader interface {
	// Load navigates to the URL and returns the rendered document.
	// The caller must close the returned document.
	Load(ctx context.Context, url string) (RenderedDocument, error)

	// Close releases browser resources.
	Close() error
}

// DebugDumper stores raw page markup for offline inspection.
type DebugDumper interface {
	DumpHTML(html string) error
}

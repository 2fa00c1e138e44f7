package mock

import "github.com/fwojciec/feedscrape"

var _ feedscrape.PostExtractor = (*PostExtractor)(nil)

// PostExtractor is a mock implementation of feedscrape.PostExtractor.
type PostExtractor struct {
	ExtractFn func(doc feedscrape.Document, opts feedscrape.ExtractOptions) (*feedscrape.ExtractResult, error)
}

func (e *PostExtractor) Extract(doc feedscrape.Document, opts feedscrape.ExtractOptions) (*feedscrape.ExtractResult, error) {
	return e.ExtractFn(doc, opts)
}

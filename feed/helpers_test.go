package feed_test

import (
	"github.com/fwojciec/feedscrape"
	"github.com/fwojciec/feedscrape/mock"
)

// node describes a fake DOM element. children maps a selector to the
// descendants it matches.
type node struct {
	attrs    map[string]string
	text     string
	textErr  error
	children map[string][]*node
}

func (n *node) element() *mock.Element {
	return &mock.Element{
		AttributeFn: func(name string) (string, bool, error) {
			v, ok := n.attrs[name]
			return v, ok, nil
		},
		TextFn: func() (string, error) {
			return n.text, n.textErr
		},
		QueryFn: func(selector string) (feedscrape.Element, error) {
			if matches := n.children[selector]; len(matches) > 0 {
				return matches[0].element(), nil
			}
			return nil, nil
		},
		QueryAllFn: func(selector string) ([]feedscrape.Element, error) {
			return elements(n.children[selector]), nil
		},
		VisibleFn: func() (bool, error) {
			return true, nil
		},
	}
}

func elements(nodes []*node) []feedscrape.Element {
	var out []feedscrape.Element
	for _, n := range nodes {
		out = append(out, n.element())
	}
	return out
}

// post returns a container with an identity and inner text.
func post(urn, text string) *node {
	n := &node{text: text}
	if urn != "" {
		n.attrs = map[string]string{"data-urn": urn}
	}
	return n
}

// document returns a document where selector matches the containers
// and every other selector matches nothing.
func document(selector string, containers ...*node) *mock.Document {
	return &mock.Document{
		QueryAllFn: func(s string) ([]feedscrape.Element, error) {
			if s == selector {
				return elements(containers), nil
			}
			return nil, nil
		},
		HTMLFn: func() (string, error) {
			return "<html></html>", nil
		},
	}
}

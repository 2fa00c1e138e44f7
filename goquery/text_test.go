package goquery_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/feedscrape/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestInnerText(t *testing.T) {
	t.Parallel()

	body := func(t *testing.T, markup string) *html.Node {
		t.Helper()
		doc, err := html.Parse(strings.NewReader("<html><body>" + markup + "</body></html>"))
		require.NoError(t, err)
		var find func(*html.Node) *html.Node
		find = func(n *html.Node) *html.Node {
			if n.Type == html.ElementNode && n.Data == "body" {
				return n
			}
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if found := find(c); found != nil {
					return found
				}
			}
			return nil
		}
		node := find(doc)
		require.NotNil(t, node)
		return node
	}

	tests := []struct {
		name   string
		markup string
		want   string
	}{
		{
			name:   "collapses whitespace in inline content",
			markup: "<span>Hello</span>   <b>big</b>\n\t world",
			want:   "Hello big world",
		},
		{
			name:   "puts block elements on their own lines",
			markup: "<div>Acme Corp</div>\n<div>12,345 followers</div><div>3d</div>",
			want:   "Acme Corp\n12,345 followers\n3d",
		},
		{
			name:   "separates paragraphs with a blank line",
			markup: "<p>First paragraph.</p>\n\n<p>Second paragraph.</p>",
			want:   "First paragraph.\n\nSecond paragraph.",
		},
		{
			name:   "breaks lines at br",
			markup: "<span>line one<br>line two</span>",
			want:   "line one\nline two",
		},
		{
			name:   "skips scripts and styles",
			markup: "<div>visible</div><script>var x = 1;</script><style>.a{}</style>",
			want:   "visible",
		},
		{
			name:   "skips hidden subtrees",
			markup: `<div>shown</div><div hidden>gone</div><div style="display:none">also gone</div>`,
			want:   "shown",
		},
		{
			name:   "preserves whitespace in pre",
			markup: "<pre>a  b\n  c</pre>",
			want:   "a  b\n  c",
		},
		{
			name:   "collapses adjacent block boundaries",
			markup: "<div><div><div>deep</div></div></div><div>next</div>",
			want:   "deep\nnext",
		},
		{
			name:   "returns empty string for empty element",
			markup: "",
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := goquery.InnerText(body(t, tt.markup))

			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("returns empty string for nil node", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, goquery.InnerText(nil))
	})
}

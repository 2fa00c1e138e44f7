package goquery

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// blockBreaks maps block-level elements to the number of line breaks
// rendered around them.
var blockBreaks = map[atom.Atom]int{
	atom.Address:    1,
	atom.Article:    1,
	atom.Aside:      1,
	atom.Blockquote: 1,
	atom.Dd:         1,
	atom.Details:    1,
	atom.Dialog:     1,
	atom.Div:        1,
	atom.Dl:         1,
	atom.Dt:         1,
	atom.Fieldset:   1,
	atom.Figcaption: 1,
	atom.Figure:     1,
	atom.Footer:     1,
	atom.Form:       1,
	atom.H1:         1,
	atom.H2:         1,
	atom.H3:         1,
	atom.H4:         1,
	atom.H5:         1,
	atom.H6:         1,
	atom.Header:     1,
	atom.Hr:         1,
	atom.Li:         1,
	atom.Main:       1,
	atom.Nav:        1,
	atom.Ol:         1,
	atom.P:          2,
	atom.Pre:        1,
	atom.Section:    1,
	atom.Summary:    1,
	atom.Table:      1,
	atom.Tr:         1,
	atom.Ul:         1,
}

// unrendered elements contribute no text.
var unrendered = map[atom.Atom]bool{
	atom.Head:     true,
	atom.Noscript: true,
	atom.Script:   true,
	atom.Style:    true,
	atom.Svg:      true,
	atom.Template: true,
}

var spaceRun = regexp.MustCompile(`[ \t\n\r\f]+`)

// InnerText approximates the innerText a browser would report for n:
// whitespace collapses to single spaces, block elements start new lines,
// paragraphs are separated by a blank line, <br> breaks the line, and
// hidden or unrendered subtrees are left out.
func InnerText(n *html.Node) string {
	if n == nil {
		return ""
	}
	var w textWriter
	w.walk(n, false)
	return w.String()
}

type textWriter struct {
	b       strings.Builder
	pending int
	midLine bool
	space   bool
}

func (w *textWriter) walk(n *html.Node, pre bool) {
	switch n.Type {
	case html.TextNode:
		if pre {
			w.write(n.Data)
		} else {
			w.write(spaceRun.ReplaceAllString(n.Data, " "))
		}
		return
	case html.ElementNode:
		if unrendered[n.DataAtom] || isHidden(n) {
			return
		}
		if n.DataAtom == atom.Br {
			w.write("\n")
			return
		}
	case html.DocumentNode:
	default:
		return
	}

	breaks := blockBreaks[n.DataAtom]
	w.lineBreak(breaks)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c, pre || n.DataAtom == atom.Pre)
	}
	w.lineBreak(breaks)
}

// lineBreak requests n line breaks before the next text. Adjacent
// requests collapse to the largest one.
func (w *textWriter) lineBreak(n int) {
	if n > w.pending {
		w.pending = n
	}
}

func (w *textWriter) write(s string) {
	if w.pending > 0 || !w.midLine || w.space {
		s = strings.TrimLeft(s, " ")
	}
	if s == "" {
		return
	}
	if w.pending > 0 {
		if w.b.Len() > 0 {
			w.b.WriteString(strings.Repeat("\n", w.pending))
		}
		w.pending = 0
	}
	w.b.WriteString(s)
	w.space = strings.HasSuffix(s, " ")
	w.midLine = !strings.HasSuffix(s, "\n")
}

func (w *textWriter) String() string {
	lines := strings.Split(w.b.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.Join(lines, "\n")
}

// isHidden reports whether n itself is hidden by markup.
func isHidden(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, attr := range n.Attr {
		switch attr.Key {
		case "hidden":
			return true
		case "style":
			style := strings.ToLower(strings.ReplaceAll(attr.Val, " ", ""))
			if strings.Contains(style, "display:none") || strings.Contains(style, "visibility:hidden") {
				return true
			}
		}
	}
	return false
}

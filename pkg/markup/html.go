package markup

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// HTMLTree adapts a goquery document to Tree.
type HTMLTree struct {
	doc *goquery.Document
}

// Parse reads HTML and returns its tree. Parsing lives at the edge of the
// rendering pipeline; the builder itself only walks trees.
func Parse(r io.Reader) (*HTMLTree, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return &HTMLTree{doc: doc}, nil
}

// ParseString is Parse over an in-memory string.
func ParseString(s string) (*HTMLTree, error) {
	return Parse(strings.NewReader(s))
}

// FromNode wraps an existing x/net/html tree.
func FromNode(n *html.Node) *HTMLTree {
	return &HTMLTree{doc: goquery.NewDocumentFromNode(n)}
}

// Root returns the <html> element when present, else the top node.
func (t *HTMLTree) Root() Node {
	if sel := t.doc.Find("html").First(); sel.Length() > 0 {
		return htmlNode{n: sel.Nodes[0]}
	}
	if len(t.doc.Nodes) == 0 {
		return htmlNode{n: &html.Node{Type: html.DocumentNode}}
	}
	return htmlNode{n: t.doc.Nodes[0]}
}

type htmlNode struct {
	n *html.Node
}

func (h htmlNode) Kind() Kind {
	switch h.n.Type {
	case html.ElementNode:
		return ElementNode
	case html.TextNode:
		return TextNode
	}
	return OtherNode
}

func (h htmlNode) Tag() string {
	if h.n.Type != html.ElementNode {
		return ""
	}
	return strings.ToLower(h.n.Data)
}

func (h htmlNode) Attr(name string) (string, bool) {
	for _, a := range h.n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, name) {
			return a.Val, true
		}
	}
	return "", false
}

func (h htmlNode) Children() []Node {
	var out []Node
	for c := h.n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, htmlNode{n: c})
	}
	return out
}

func (h htmlNode) Text() string {
	return goquery.NewDocumentFromNode(h.n).Text()
}

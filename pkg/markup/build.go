package markup

import "strings"

// Element is an in-memory node for callers that already hold a parsed tree
// in their own representation.
type Element struct {
	kind     Kind
	tag      string
	data     string
	attrs    map[string]string
	children []Node
}

// Elem builds an element node. attrs may be nil.
func Elem(tag string, attrs map[string]string, children ...Node) *Element {
	return &Element{kind: ElementNode, tag: strings.ToLower(tag), attrs: attrs, children: children}
}

// TextOf builds a text node.
func TextOf(s string) *Element {
	return &Element{kind: TextNode, data: s}
}

// Comment builds a node that is neither element nor text.
func Comment(s string) *Element {
	return &Element{kind: OtherNode, data: s}
}

func (e *Element) Kind() Kind { return e.kind }
func (e *Element) Tag() string {
	if e.kind != ElementNode {
		return ""
	}
	return e.tag
}

func (e *Element) Attr(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

func (e *Element) Children() []Node { return e.children }

func (e *Element) Text() string {
	switch e.kind {
	case TextNode:
		return e.data
	case OtherNode:
		return ""
	}
	var sb strings.Builder
	for _, c := range e.children {
		sb.WriteString(c.Text())
	}
	return sb.String()
}

// StaticTree is a Tree over an in-memory root.
type StaticTree struct {
	root Node
}

// NewTree wraps root as a Tree.
func NewTree(root Node) StaticTree { return StaticTree{root: root} }

func (t StaticTree) Root() Node { return t.root }

// Package markup provides read-only access to an already-parsed markup tree.
package markup

// Kind distinguishes element, text and all other node types.
type Kind int

const (
	OtherNode Kind = iota
	ElementNode
	TextNode
)

// Node is one node of a parsed document. Implementations never mutate the
// underlying tree.
type Node interface {
	Kind() Kind
	// Tag returns the lower-case element name, or "" for non-elements.
	Tag() string
	Attr(name string) (string, bool)
	// Children returns direct children in document order.
	Children() []Node
	// Text returns the concatenated text of all descendant text nodes.
	Text() string
}

// Tree exposes the root of a parsed document.
type Tree interface {
	Root() Node
}

// ElementChildren returns only the element children of n.
func ElementChildren(n Node) []Node {
	var out []Node
	for _, c := range n.Children() {
		if c.Kind() == ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// Find returns the first element in document order, n included, for which
// match returns true.
func Find(n Node, match func(Node) bool) (Node, bool) {
	if n.Kind() == ElementNode && match(n) {
		return n, true
	}
	for _, c := range n.Children() {
		if found, ok := Find(c, match); ok {
			return found, true
		}
	}
	return nil, false
}

// FindAll returns every element in document order, n included, for which
// match returns true. Matching elements are still descended into.
func FindAll(n Node, match func(Node) bool) []Node {
	var out []Node
	var walk func(Node)
	walk = func(cur Node) {
		if cur.Kind() == ElementNode && match(cur) {
			out = append(out, cur)
		}
		for _, c := range cur.Children() {
			walk(c)
		}
	}
	walk(n)
	return out
}

// HasTag returns a matcher for elements with the given tag.
func HasTag(tag string) func(Node) bool {
	return func(n Node) bool { return n.Tag() == tag }
}

package markup

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func TestHTMLTree_Accessors(t *testing.T) {
	tree, err := ParseString(`<html><body><P CLASS="lead">Hello <b>there</b><!-- c --></P><img SRC="a.png"></body></html>`)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	root := tree.Root()
	if root.Tag() != "html" || root.Kind() != ElementNode {
		t.Fatalf("Root() = %q (%v), want html element", root.Tag(), root.Kind())
	}

	body, ok := Find(root, HasTag("body"))
	if !ok {
		t.Fatal("Find(body) found nothing")
	}
	kids := ElementChildren(body)
	if len(kids) != 2 || kids[0].Tag() != "p" || kids[1].Tag() != "img" {
		t.Fatalf("body children = %v", kids)
	}

	p := kids[0]
	if v, ok := p.Attr("class"); !ok || v != "lead" {
		t.Errorf("Attr(class) = %q, %v", v, ok)
	}
	if _, ok := p.Attr("id"); ok {
		t.Error("Attr(id) reported a missing attribute")
	}
	if got := p.Text(); got != "Hello there" {
		t.Errorf("Text() = %q, want %q", got, "Hello there")
	}

	kinds := []Kind{}
	for _, c := range p.Children() {
		kinds = append(kinds, c.Kind())
	}
	want := []Kind{TextNode, ElementNode, OtherNode}
	if len(kinds) != len(want) {
		t.Fatalf("child kinds = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("child %d kind = %v, want %v", i, kinds[i], want[i])
		}
	}
	if src, _ := kids[1].Attr("src"); src != "a.png" {
		t.Errorf("img src = %q", src)
	}
}

func TestHTMLTree_Fragment(t *testing.T) {
	nodes, err := html.ParseFragment(strings.NewReader(`<ul><li>x</li></ul>`), &html.Node{Type: html.ElementNode, DataAtom: atom.Div, Data: "div"})
	if err != nil {
		t.Fatalf("ParseFragment() error = %v", err)
	}
	tree := FromNode(nodes[0])
	root := tree.Root()
	if root.Tag() != "ul" {
		t.Fatalf("Root() = %q, want ul", root.Tag())
	}
	if got := root.Text(); got != "x" {
		t.Errorf("Text() = %q, want x", got)
	}
}

func TestFindAll(t *testing.T) {
	root := Elem("div", nil,
		Elem("p", nil, TextOf("a")),
		Elem("section", nil, Elem("p", nil, Elem("p", nil))),
	)
	if got := FindAll(root, HasTag("p")); len(got) != 3 {
		t.Errorf("FindAll(p) = %d nodes, want 3", len(got))
	}
	if _, ok := Find(root, HasTag("table")); ok {
		t.Error("Find(table) found a node")
	}
}

func TestElement(t *testing.T) {
	e := Elem("DIV", map[string]string{"id": "x"}, TextOf("a"), Comment("skip"), Elem("span", nil, TextOf("b")))
	if e.Tag() != "div" {
		t.Errorf("Tag() = %q, want lower case", e.Tag())
	}
	if got := e.Text(); got != "ab" {
		t.Errorf("Text() = %q, want %q", got, "ab")
	}
	if TextOf("t").Tag() != "" || Comment("c").Tag() != "" {
		t.Error("non-element nodes report a tag")
	}
	if got := len(ElementChildren(e)); got != 1 {
		t.Errorf("ElementChildren() = %d, want 1", got)
	}
	if NewTree(e).Root() != Node(e) {
		t.Error("NewTree().Root() is not the given root")
	}
}

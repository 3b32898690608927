package parser

import (
	"testing"

	"github.com/dtnitsch/cauldron/pkg/markup"
)

func tags(nodes []markup.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Tag()
	}
	return out
}

func equalTags(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestLocate(t *testing.T) {
	tests := []struct {
		name     string
		root     markup.Node
		wantTier Tier
		wantTags []string
	}{
		{
			name: "body children in order",
			root: markup.Elem("html", nil,
				markup.Elem("head", nil, markup.Elem("title", nil, markup.TextOf("t"))),
				markup.Elem("body", nil,
					markup.Elem("p", nil),
					markup.TextOf("\n"),
					markup.Elem("div", nil, markup.Elem("h1", nil)),
					markup.Elem("img", nil),
				),
			),
			wantTier: TierBody,
			wantTags: []string{"p", "div", "img"},
		},
		{
			name: "empty body falls back to root children",
			root: markup.Elem("html", nil,
				markup.Elem("body", nil, markup.TextOf("only text")),
				markup.Elem("section", nil, markup.Elem("p", nil)),
			),
			wantTier: TierRoot,
			wantTags: []string{"body", "section"},
		},
		{
			name: "no wrapper searches all depths",
			root: markup.Elem("article", nil,
				markup.Elem("div", nil,
					markup.Elem("h2", nil),
					markup.Elem("blockquote", nil, markup.Elem("p", nil)),
				),
				markup.Elem("ol", nil, markup.Elem("li", nil)),
			),
			wantTier: TierDeep,
			wantTags: []string{"h2", "blockquote", "p", "ol"},
		},
		{
			name:     "root itself is a block",
			root:     markup.Elem("ul", nil, markup.Elem("li", nil, markup.TextOf("x"))),
			wantTier: TierDeep,
			wantTags: []string{"ul"},
		},
		{
			name:     "nothing recognizable",
			root:     markup.Elem("div", nil, markup.Elem("span", nil)),
			wantTier: TierNone,
			wantTags: []string{},
		},
		{
			name:     "nil root",
			root:     nil,
			wantTier: TierNone,
			wantTags: []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tier, got := Locate(tt.root)
			if tier != tt.wantTier {
				t.Errorf("Locate() tier = %v, want %v", tier, tt.wantTier)
			}
			if !equalTags(tags(got), tt.wantTags) {
				t.Errorf("Locate() tags = %v, want %v", tags(got), tt.wantTags)
			}
		})
	}
}

func TestLocate_ParsedHTMLUsesBody(t *testing.T) {
	tree := mustParse(t, `<p>one</p><ul><li>two</li></ul>`)
	tier, got := Locate(tree.Root())
	if tier != TierBody {
		t.Fatalf("Locate() tier = %v, want %v", tier, TierBody)
	}
	if want := []string{"p", "ul"}; !equalTags(tags(got), want) {
		t.Errorf("Locate() tags = %v, want %v", tags(got), want)
	}
}

func TestTierString(t *testing.T) {
	for tier, want := range map[Tier]string{TierNone: "none", TierBody: "body", TierRoot: "root", TierDeep: "deep"} {
		if got := tier.String(); got != want {
			t.Errorf("Tier(%d).String() = %q, want %q", tier, got, want)
		}
	}
}

package parser

import (
	"golang.org/x/net/html"

	"github.com/dtnitsch/cauldron/models"
	"github.com/dtnitsch/cauldron/pkg/markup"
)

// FormatInline converts the children of n into spans, in document order.
func FormatInline(n markup.Node) models.InlineContent {
	var out models.InlineContent
	for _, c := range n.Children() {
		out = appendInline(out, c)
	}
	return out
}

func appendInline(out models.InlineContent, n markup.Node) models.InlineContent {
	switch n.Kind() {
	case markup.TextNode:
		return append(out, &models.Text{Value: Escape(n.Text())})
	case markup.ElementNode:
		return appendElement(out, n)
	}
	return out
}

func appendElement(out models.InlineContent, n markup.Node) models.InlineContent {
	switch n.Tag() {
	case "strong", "b":
		return append(out, &models.Bold{Content: FormatInline(n)})
	case "em", "i":
		return append(out, &models.Italic{Content: FormatInline(n)})
	case "code":
		return append(out, &models.Code{Value: Escape(n.Text())})
	case "a":
		if href, ok := n.Attr("href"); ok {
			return append(out, &models.Link{Href: Escape(href), Content: FormatInline(n)})
		}
		// No href: keep the content, drop the link.
		return append(out, FormatInline(n)...)
	default:
		return append(out, &models.Text{Value: Escape(n.Text())})
	}
}

// Escape makes text safe to embed in formatted markup. Unescape reverses it.
func Escape(s string) string { return html.EscapeString(s) }

// Unescape recovers the literal text of an escaped span value.
func Unescape(s string) string { return html.UnescapeString(s) }

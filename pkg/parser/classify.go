package parser

import (
	"github.com/dtnitsch/cauldron/models"
	"github.com/dtnitsch/cauldron/pkg/markup"
)

// Classify maps one element to a Block. Unrecognized elements return false
// and are dropped by callers.
func Classify(n markup.Node) (models.Block, bool) {
	if n == nil || n.Kind() != markup.ElementNode {
		return nil, false
	}
	switch tag := n.Tag(); tag {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return &models.Heading{Level: int(tag[1] - '0'), Content: FormatInline(n)}, true
	case "p":
		return &models.Paragraph{Content: FormatInline(n)}, true
	case "pre":
		return &models.CodeBlock{Text: n.Text()}, true
	case "blockquote":
		return &models.Blockquote{Children: classifyAll(markup.ElementChildren(n))}, true
	case "ul":
		return &models.List{Ordered: false, Items: listItems(n)}, true
	case "ol":
		return &models.List{Ordered: true, Items: listItems(n)}, true
	case "img":
		src, _ := n.Attr("src")
		return &models.Image{URL: src, State: models.NotRequestedState()}, true
	default:
		return nil, false
	}
}

func classifyAll(nodes []markup.Node) []models.Block {
	blocks := make([]models.Block, 0, len(nodes))
	for _, n := range nodes {
		if b, ok := Classify(n); ok {
			blocks = append(blocks, b)
		}
	}
	return blocks
}

// listItems formats each direct li child. Anything else inside the list,
// and any block structure inside an item, is flattened or dropped.
func listItems(list markup.Node) []models.InlineContent {
	var items []models.InlineContent
	for _, c := range markup.ElementChildren(list) {
		if c.Tag() == "li" {
			items = append(items, FormatInline(c))
		}
	}
	return items
}

package models

import "encoding/json"

// OutlineBlock is the serializable form of a Block.
type OutlineBlock struct {
	Type     string          `json:"type" yaml:"type"`
	Level    int             `json:"level,omitempty" yaml:"level,omitempty"`
	Inline   []OutlineSpan   `json:"inline,omitempty" yaml:"inline,omitempty"`
	Text     string          `json:"text,omitempty" yaml:"text,omitempty"`
	Children []OutlineBlock  `json:"children,omitempty" yaml:"children,omitempty"`
	Ordered  bool            `json:"ordered,omitempty" yaml:"ordered,omitempty"`
	Items    [][]OutlineSpan `json:"items,omitempty" yaml:"items,omitempty"`
	URL      string          `json:"url,omitempty" yaml:"url,omitempty"`
	State    *OutlineImage   `json:"state,omitempty" yaml:"state,omitempty"`
}

// OutlineSpan is the serializable form of an InlineSpan.
type OutlineSpan struct {
	Type    string        `json:"type" yaml:"type"`
	Value   string        `json:"value,omitempty" yaml:"value,omitempty"`
	Href    string        `json:"href,omitempty" yaml:"href,omitempty"`
	Content []OutlineSpan `json:"content,omitempty" yaml:"content,omitempty"`
}

// OutlineImage is the serializable form of an ImageState. Pixels are omitted.
type OutlineImage struct {
	Kind   string `json:"kind" yaml:"kind"`
	Width  int    `json:"width,omitempty" yaml:"width,omitempty"`
	Height int    `json:"height,omitempty" yaml:"height,omitempty"`
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

type outlineDocument struct {
	ID     string         `json:"id" yaml:"id"`
	Blocks []OutlineBlock `json:"blocks" yaml:"blocks"`
}

// Outline converts the document into tagged, serializable blocks.
func (d *Document) Outline() []OutlineBlock {
	return outlineBlocks(d.Blocks)
}

func (d *Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(outlineDocument{ID: d.ID.String(), Blocks: d.Outline()})
}

func (d *Document) MarshalYAML() (interface{}, error) {
	return outlineDocument{ID: d.ID.String(), Blocks: d.Outline()}, nil
}

func outlineBlocks(blocks []Block) []OutlineBlock {
	out := make([]OutlineBlock, 0, len(blocks))
	for _, b := range blocks {
		ob := OutlineBlock{Type: b.Kind().String()}
		switch v := b.(type) {
		case *Heading:
			ob.Level = v.Level
			ob.Inline = OutlineInline(v.Content)
		case *Paragraph:
			ob.Inline = OutlineInline(v.Content)
		case *CodeBlock:
			ob.Text = v.Text
		case *Blockquote:
			ob.Children = outlineBlocks(v.Children)
		case *List:
			ob.Ordered = v.Ordered
			for _, item := range v.Items {
				ob.Items = append(ob.Items, OutlineInline(item))
			}
		case *Image:
			ob.URL = v.URL
			ob.State = &OutlineImage{
				Kind:   v.State.Kind.String(),
				Width:  v.State.Width,
				Height: v.State.Height,
				Reason: v.State.Reason,
			}
		}
		out = append(out, ob)
	}
	return out
}

// OutlineInline converts inline content into tagged, serializable spans.
func OutlineInline(content InlineContent) []OutlineSpan {
	out := make([]OutlineSpan, 0, len(content))
	for _, s := range content {
		sp := OutlineSpan{Type: s.Kind().String()}
		switch v := s.(type) {
		case *Text:
			sp.Value = v.Value
		case *Code:
			sp.Value = v.Value
		case *Bold:
			sp.Content = OutlineInline(v.Content)
		case *Italic:
			sp.Content = OutlineInline(v.Content)
		case *Link:
			sp.Href = v.Href
			sp.Content = OutlineInline(v.Content)
		}
		out = append(out, sp)
	}
	return out
}

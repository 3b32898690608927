package models

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/net/html"
)

// BlockKind identifies the variant of a Block.
type BlockKind int

const (
	BlockHeading BlockKind = iota
	BlockParagraph
	BlockCode
	BlockQuote
	BlockList
	BlockImage
)

func (k BlockKind) String() string {
	switch k {
	case BlockHeading:
		return "heading"
	case BlockParagraph:
		return "paragraph"
	case BlockCode:
		return "code"
	case BlockQuote:
		return "blockquote"
	case BlockList:
		return "list"
	case BlockImage:
		return "image"
	}
	return "unknown"
}

// Block is a structural content unit of a Document. The set of
// implementations is closed.
type Block interface {
	Kind() BlockKind
	block()
}

// Heading is a section title of level 1 through 6.
type Heading struct {
	Level   int
	Content InlineContent
}

// Paragraph is a run of formatted text.
type Paragraph struct {
	Content InlineContent
}

// CodeBlock holds preformatted text verbatim.
type CodeBlock struct {
	Text string
}

// Blockquote nests a full block sequence.
type Blockquote struct {
	Children []Block
}

// List items carry inline content only; nested blocks inside an item
// are not represented.
type List struct {
	Ordered bool
	Items   []InlineContent
}

// Image references a remote picture. State changes as its load progresses
// and is owned by the goroutine running the reader that published the
// document; other goroutines read it only from ImageChanged events.
type Image struct {
	URL   string
	State ImageState
}

func (*Heading) Kind() BlockKind    { return BlockHeading }
func (*Paragraph) Kind() BlockKind  { return BlockParagraph }
func (*CodeBlock) Kind() BlockKind  { return BlockCode }
func (*Blockquote) Kind() BlockKind { return BlockQuote }
func (*List) Kind() BlockKind       { return BlockList }
func (*Image) Kind() BlockKind      { return BlockImage }

func (*Heading) block()    {}
func (*Paragraph) block()  {}
func (*CodeBlock) block()  {}
func (*Blockquote) block() {}
func (*List) block()       {}
func (*Image) block()      {}

// Document is the rendered form of one article.
type Document struct {
	ID     uuid.UUID
	Blocks []Block
}

// NewDocument wraps blocks with a fresh identifier.
func NewDocument(blocks []Block) *Document {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return &Document{ID: id, Blocks: blocks}
}

// Images returns image blocks in document order, descending into
// blockquotes. The position in this slice addresses the image.
func (d *Document) Images() []*Image {
	var out []*Image
	var walk func([]Block)
	walk = func(blocks []Block) {
		for _, b := range blocks {
			switch v := b.(type) {
			case *Image:
				out = append(out, v)
			case *Blockquote:
				walk(v.Children)
			}
		}
	}
	walk(d.Blocks)
	return out
}

// Image returns the image at index i, or nil if out of range.
func (d *Document) Image(i int) *Image {
	imgs := d.Images()
	if i < 0 || i >= len(imgs) {
		return nil
	}
	return imgs[i]
}

// ToPlainText concatenates readable text from all blocks, one block per line.
func (d *Document) ToPlainText() string {
	var sb strings.Builder
	writeBlocksText(&sb, d.Blocks)
	return sb.String()
}

func writeBlocksText(sb *strings.Builder, blocks []Block) {
	for _, b := range blocks {
		switch v := b.(type) {
		case *Heading:
			sb.WriteString(InlineText(v.Content))
			sb.WriteString("\n")
		case *Paragraph:
			sb.WriteString(InlineText(v.Content))
			sb.WriteString("\n")
		case *CodeBlock:
			sb.WriteString(v.Text)
			sb.WriteString("\n")
		case *Blockquote:
			writeBlocksText(sb, v.Children)
		case *List:
			for _, item := range v.Items {
				sb.WriteString(InlineText(item))
				sb.WriteString("\n")
			}
		}
	}
}

// InlineText returns the unescaped text of inline content with all
// formatting removed.
func InlineText(content InlineContent) string {
	var sb strings.Builder
	var walk func(InlineContent)
	walk = func(c InlineContent) {
		for _, s := range c {
			switch v := s.(type) {
			case *Text:
				sb.WriteString(html.UnescapeString(v.Value))
			case *Code:
				sb.WriteString(html.UnescapeString(v.Value))
			case *Bold:
				walk(v.Content)
			case *Italic:
				walk(v.Content)
			case *Link:
				walk(v.Content)
			}
		}
	}
	walk(content)
	return sb.String()
}

package models

// SpanKind identifies the variant of an InlineSpan.
type SpanKind int

const (
	SpanText SpanKind = iota
	SpanBold
	SpanItalic
	SpanCode
	SpanLink
)

func (k SpanKind) String() string {
	switch k {
	case SpanText:
		return "text"
	case SpanBold:
		return "bold"
	case SpanItalic:
		return "italic"
	case SpanCode:
		return "code"
	case SpanLink:
		return "link"
	}
	return "unknown"
}

// InlineSpan is one formatting unit inside a block. The set of
// implementations is closed: Text, Bold, Italic, Code and Link.
type InlineSpan interface {
	Kind() SpanKind
	span()
}

// InlineContent is an ordered sequence of spans.
type InlineContent []InlineSpan

// Text holds escaped character data, safe to embed in formatted markup.
type Text struct {
	Value string
}

// Bold wraps nested content rendered in bold.
type Bold struct {
	Content InlineContent
}

// Italic wraps nested content rendered in italics.
type Italic struct {
	Content InlineContent
}

// Code holds escaped, unformatted text of an inline code element.
type Code struct {
	Value string
}

// Link holds an escaped href and the formatted anchor content.
type Link struct {
	Href    string
	Content InlineContent
}

func (*Text) Kind() SpanKind   { return SpanText }
func (*Bold) Kind() SpanKind   { return SpanBold }
func (*Italic) Kind() SpanKind { return SpanItalic }
func (*Code) Kind() SpanKind   { return SpanCode }
func (*Link) Kind() SpanKind   { return SpanLink }

func (*Text) span()   {}
func (*Bold) span()   {}
func (*Italic) span() {}
func (*Code) span()   {}
func (*Link) span()   {}

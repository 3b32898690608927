// Package render is a text display surface for documents.
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dtnitsch/cauldron/models"
	"github.com/dtnitsch/cauldron/pkg/analytics"
	"github.com/dtnitsch/cauldron/pkg/images"
)

const (
	loadPrompt  = "[Load Image]"
	loadingText = "[Loading...]"
	keywordsMax = 5
)

// Header is the metadata shown above a document.
type Header struct {
	Title       string
	Domain      string
	Date        string
	Description string
	ReadingTime string
	Language    string
	Keywords    []string
}

// NewHeader derives a header from catalog metadata and the document text.
func NewHeader(meta models.Article, doc *models.Document, now time.Time) Header {
	h := Header{
		Title:       meta.DisplayTitle(),
		Domain:      ExtractDomain(meta.URL),
		Date:        FormatDate(meta.Time, now),
		Description: meta.Description,
	}
	if doc != nil {
		text := doc.ToPlainText()
		h.ReadingTime = analytics.ReadingTime(analytics.WordCount(text))
		h.Keywords = analytics.Keywords(text, keywordsMax)
	}
	return h
}

// Surface writes documents as plain text using a fixed display theme.
type Surface struct {
	cfg models.DisplayConfig
}

// NewSurface creates a surface. Unset theme values get defaults.
func NewSurface(cfg models.DisplayConfig) *Surface {
	return &Surface{cfg: cfg.WithDefaults()}
}

// ListPrefix is the marker shown before list item i.
func (s *Surface) ListPrefix(ordered bool, i int) string {
	if ordered {
		return fmt.Sprintf("%d.", i+1)
	}
	return s.cfg.Bullet
}

// Write prints the header followed by every block in order.
func (s *Surface) Write(w io.Writer, h Header, doc *models.Document) error {
	var sb strings.Builder
	s.writeHeader(&sb, h)
	if doc != nil {
		s.writeBlocks(&sb, doc.Blocks, "")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func (s *Surface) writeHeader(sb *strings.Builder, h Header) {
	if h.Title != "" {
		sb.WriteString(h.Title)
		sb.WriteString("\n")
	}
	meta := h.Date
	if h.Domain != "" {
		meta = h.Domain + " · " + h.Date
	}
	if meta != "" {
		sb.WriteString(meta)
		sb.WriteString("\n")
	}
	if h.Description != "" {
		sb.WriteString(h.Description)
		sb.WriteString("\n")
	}
	var stats []string
	if h.ReadingTime != "" {
		stats = append(stats, h.ReadingTime)
	}
	if h.Language != "" {
		stats = append(stats, h.Language)
	}
	if len(h.Keywords) > 0 {
		stats = append(stats, strings.Join(h.Keywords, ", "))
	}
	if len(stats) > 0 {
		sb.WriteString(strings.Join(stats, " · "))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
}

func (s *Surface) writeBlocks(sb *strings.Builder, blocks []models.Block, indent string) {
	for i, b := range blocks {
		if i > 0 {
			sb.WriteString(strings.TrimRight(indent, " "))
			sb.WriteString("\n")
		}
		switch v := b.(type) {
		case *models.Heading:
			line(sb, indent, strings.Repeat("#", v.Level)+" "+PlainInline(v.Content))
		case *models.Paragraph:
			line(sb, indent, PlainInline(v.Content))
		case *models.CodeBlock:
			for _, l := range strings.Split(strings.TrimRight(v.Text, "\n"), "\n") {
				line(sb, indent, "    "+l)
			}
		case *models.Blockquote:
			s.writeBlocks(sb, v.Children, indent+"> ")
		case *models.List:
			for n, item := range v.Items {
				line(sb, indent, s.ListPrefix(v.Ordered, n)+" "+PlainInline(item))
			}
		case *models.Image:
			if text := s.ImageText(v); text != "" {
				line(sb, indent, text)
			}
		}
	}
}

func line(sb *strings.Builder, indent, text string) {
	sb.WriteString(indent)
	sb.WriteString(text)
	sb.WriteString("\n")
}

// ImageText describes an image in its current state. Images without a URL
// show nothing.
func (s *Surface) ImageText(img *models.Image) string {
	if img.URL == "" {
		return ""
	}
	switch img.State.Kind {
	case models.ImageRequested, models.ImageDecoding:
		return loadingText + " " + img.URL
	case models.ImageSucceeded:
		w, h := images.PresentationSize(img.State.Width, img.State.Height, s.cfg.LayoutWidth, s.cfg.MaxImageWidth)
		return fmt.Sprintf("[image %dx%d] %s", w, h, img.URL)
	case models.ImageFailed:
		return s.cfg.BrokenImage + " " + img.URL
	default:
		return loadPrompt + " " + img.URL
	}
}

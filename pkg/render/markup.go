package render

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/dtnitsch/cauldron/models"
)

// Markup renders inline content as Pango-style markup. Text values are
// already escaped so they are copied as is.
func Markup(content models.InlineContent) string {
	var sb strings.Builder
	writeMarkup(&sb, content)
	return sb.String()
}

func writeMarkup(sb *strings.Builder, content models.InlineContent) {
	for _, s := range content {
		switch v := s.(type) {
		case *models.Text:
			sb.WriteString(v.Value)
		case *models.Bold:
			sb.WriteString("<b>")
			writeMarkup(sb, v.Content)
			sb.WriteString("</b>")
		case *models.Italic:
			sb.WriteString("<i>")
			writeMarkup(sb, v.Content)
			sb.WriteString("</i>")
		case *models.Code:
			sb.WriteString("<tt>")
			sb.WriteString(v.Value)
			sb.WriteString("</tt>")
		case *models.Link:
			fmt.Fprintf(sb, `<a href="%s">`, v.Href)
			writeMarkup(sb, v.Content)
			sb.WriteString("</a>")
		}
	}
}

// PlainInline returns the unescaped text of inline content for terminals.
func PlainInline(content models.InlineContent) string {
	return models.InlineText(content)
}

// ExtractDomain returns the host of rawURL without a leading "www.", or ""
// when the URL has no host.
func ExtractDomain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

// FormatDate describes a unix timestamp relative to now. Zero means the date
// is unknown. Timestamps in the future count as today.
func FormatDate(unix float64, now time.Time) string {
	if unix == 0 {
		return "Unknown date"
	}
	t := time.Unix(int64(unix), 0).UTC()
	days := int(now.Sub(t).Hours() / 24)
	switch {
	case days <= 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	case days/7 == 1:
		return "1 week ago"
	case days/7 < 4:
		return fmt.Sprintf("%d weeks ago", days/7)
	default:
		return t.Format("January 02, 2006")
	}
}

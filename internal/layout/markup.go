package layout

import (
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/net/html"
)

// Inline markers understood by the PDF writer's basic HTML dialect.
const (
	BoldOpen    = "<b>"
	BoldClose   = "</b>"
	ItalicOpen  = "<i>"
	ItalicClose = "</i>"
	LineBreak   = "<br>"
)

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// EscapeText turns plain text into marked-up text with no markers.
func EscapeText(s string) string { return textEscaper.Replace(s) }

// UnescapeText turns a text segment of marked-up text back into plain text.
func UnescapeText(s string) string { return html.UnescapeString(s) }

// inlineTags lists the tag names allowed inside element text.
var inlineTags = map[string]bool{
	"b":  true,
	"i":  true,
	"br": true,
}

// ValidateInline checks that text only uses the inline markers above.
// Literal '<', '>' and '&' must be escaped (see EscapeText); a raw '<' that
// starts something read as a tag (for example "a <x> b") is rejected.
func ValidateInline(text string) error {
	for _, seg := range gofpdf.HTMLBasicTokenize(text) {
		switch seg.Cat {
		case 'O', 'C':
			if !inlineTags[seg.Str] {
				return fmt.Errorf("%w: <%s>", ErrInlineMarkup, seg.Str)
			}
		}
	}
	return nil
}

package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrHTMLConversion indicates HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// HTMLConverter abstracts Markdown to HTML conversion.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// GoldmarkConverter converts Markdown to an HTML fragment using goldmark.
// The fragment has no <html>/<head> wrapper: every text node ends up in the
// layout, so a <title> would leak into the body.
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// goldmarkSettings collects GoldmarkOption choices before goldmark is built.
type goldmarkSettings struct {
	highlight   bool
	typographer bool
}

// GoldmarkOption configures a GoldmarkConverter.
type GoldmarkOption func(*goldmarkSettings)

// WithoutHighlighting renders fenced code as plain <pre><code>.
func WithoutHighlighting() GoldmarkOption {
	return func(s *goldmarkSettings) { s.highlight = false }
}

// WithTypographer turns straight quotes, "--" and "..." into their
// typographic forms. All of them exist in the PDF's cp1252 core fonts.
func WithTypographer() GoldmarkOption {
	return func(s *goldmarkSettings) { s.typographer = true }
}

// NewGoldmarkConverter creates a GoldmarkConverter with GFM, footnotes and
// definition lists. Fenced code carries chroma class markers unless
// WithoutHighlighting is given; colors are left to the renderer's style sheet.
// Raw HTML in the source passes through: the output is only ever read by the
// tag mapper, which keeps known inline tags and ignores the rest.
func NewGoldmarkConverter(opts ...GoldmarkOption) *GoldmarkConverter {
	s := goldmarkSettings{highlight: true}
	for _, opt := range opts {
		opt(&s)
	}

	exts := []goldmark.Extender{
		extension.GFM,            // Tables, strikethrough, autolinks, task lists
		extension.Footnote,       // [^1] footnotes
		extension.DefinitionList, // Term\n: definition
	}
	if s.highlight {
		exts = append(exts, highlighting.NewHighlighting(
			highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
		))
	}
	if s.typographer {
		exts = append(exts, extension.Typographer)
	}

	return &GoldmarkConverter{md: goldmark.New(
		goldmark.WithExtensions(exts...),
		goldmark.WithRendererOptions(html.WithXHTML(), html.WithUnsafe()),
	)}
}

// ToHTML converts Markdown content to an HTML fragment.
// Goldmark has no context support, so conversion runs in a goroutine and the
// caller stops waiting on cancellation.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}
	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: buf.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

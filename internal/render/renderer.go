package render

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/alnah/go-mdpdf/internal/layout"
)

// ErrRender wraps failures reported by the PDF writer.
var ErrRender = errors.New("PDF rendering failed")

// Creator is written to the PDF Creator field.
const Creator = "go-mdpdf"

// tabWidth is the number of spaces a tab expands to in code blocks.
const tabWidth = 4

// Page describes the physical page. Size is a gofpdf page size name
// ("A4", "Letter", ...), Orientation is "portrait" or "landscape" and
// Margin applies to all four sides, in points.
type Page struct {
	Size        string
	Orientation string
	Margin      float64
}

// DefaultPage is A4 portrait with one-inch margins.
var DefaultPage = Page{Size: "A4", Orientation: "portrait", Margin: 72}

// Metadata is written to the PDF document information dictionary.
type Metadata struct {
	Author       string
	Subject      string
	Keywords     []string
	CreationDate time.Time // zero means the time of rendering
}

// Renderer turns documents into PDF bytes.
type Renderer struct {
	styles []byte
	page   Page
}

// NewRenderer validates the style sheet once and returns a renderer that
// reparses it for every document.
func NewRenderer(styles []byte, page Page) (*Renderer, error) {
	if _, err := ParseStyleSheet(styles); err != nil {
		return nil, err
	}
	if page.Size == "" {
		page.Size = DefaultPage.Size
	}
	if page.Orientation == "" {
		page.Orientation = DefaultPage.Orientation
	}
	if page.Margin <= 0 {
		page.Margin = DefaultPage.Margin
	}
	return &Renderer{styles: append([]byte(nil), styles...), page: page}, nil
}

// Render writes doc as a PDF to w.
func (r *Renderer) Render(w io.Writer, doc *layout.Document, meta Metadata) error {
	sheet, err := ParseStyleSheet(r.styles)
	if err != nil {
		return err
	}

	pdf := gofpdf.New(orientationCode(r.page.Orientation), "pt", r.page.Size, "")
	m := r.page.Margin
	pdf.SetMargins(m, m, m)
	pdf.SetAutoPageBreak(true, m)
	setMetadata(pdf, doc.Title.Text, meta)

	p := &pageWriter{
		pdf:    pdf,
		sheet:  sheet,
		tr:     pdf.UnicodeTranslatorFromDescriptor(""),
		margin: m,
	}
	pdf.AddPage()
	for _, e := range doc.Elements() {
		p.write(e)
		if err := pdf.Error(); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrRender, e.Kind, err)
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}
	return nil
}

func orientationCode(o string) string {
	if strings.EqualFold(o, "landscape") {
		return "L"
	}
	return "P"
}

func setMetadata(pdf *gofpdf.Fpdf, title string, meta Metadata) {
	pdf.SetTitle(plainText(title), true)
	pdf.SetCreator(Creator, true)
	if meta.Author != "" {
		pdf.SetAuthor(meta.Author, true)
	}
	if meta.Subject != "" {
		pdf.SetSubject(meta.Subject, true)
	}
	if len(meta.Keywords) > 0 {
		pdf.SetKeywords(strings.Join(meta.Keywords, ", "), true)
	}
	if !meta.CreationDate.IsZero() {
		pdf.SetCreationDate(meta.CreationDate)
	}
}

// pageWriter holds per-document drawing state.
type pageWriter struct {
	pdf    *gofpdf.Fpdf
	sheet  *StyleSheet
	tr     func(string) string
	margin float64
}

func (p *pageWriter) write(e layout.Element) {
	if e.Kind == layout.KindSpacer {
		p.pdf.Ln(e.Space)
		return
	}

	st := p.sheet.Get(e.Style())
	p.spaceBefore(st.SpaceBefore)
	p.apply(st)

	switch e.Kind {
	case layout.KindCodeBlock:
		text := strings.TrimRight(strings.ReplaceAll(e.Text, "\t", strings.Repeat(" ", tabWidth)), "\n")
		p.pdf.MultiCell(0, st.Leading, p.tr(text), "", "L", st.BackColor != nil)
	default:
		if hasMarkup(e.Text) {
			p.writeInline(st, e.Text)
		} else {
			p.pdf.MultiCell(0, st.Leading, p.tr(layout.UnescapeText(e.Text)), "", st.Align, st.BackColor != nil)
		}
	}

	p.pdf.SetMargins(p.margin, p.margin, p.margin)
	p.pdf.Ln(st.SpaceAfter + e.Space)
}

// writeInline flows marked-up text, switching to bold or italic between
// markers. Marker nesting is not tracked: a close turns the emphasis off.
func (p *pageWriter) writeInline(st Style, text string) {
	var bold, italic bool
	for _, seg := range gofpdf.HTMLBasicTokenize(text) {
		switch {
		case seg.Cat == 'T':
			p.pdf.Write(st.Leading, p.tr(layout.UnescapeText(seg.Str)))
		case seg.Str == "br":
			p.pdf.Ln(st.Leading)
		case seg.Str == "b":
			bold = seg.Cat == 'O'
			p.pdf.SetFontStyle(emphasis(st.FontStyle, bold, italic))
		case seg.Str == "i":
			italic = seg.Cat == 'O'
			p.pdf.SetFontStyle(emphasis(st.FontStyle, bold, italic))
		}
	}
	p.pdf.Ln(st.Leading)
}

// emphasis combines a style's font style with inline bold and italic.
func emphasis(base string, bold, italic bool) string {
	var s string
	if bold || strings.Contains(base, "B") {
		s += "B"
	}
	if italic || strings.Contains(base, "I") {
		s += "I"
	}
	return s
}

// spaceBefore adds vertical space unless the cursor is at the top of a page.
func (p *pageWriter) spaceBefore(h float64) {
	if h <= 0 {
		return
	}
	if _, top, _, _ := p.pdf.GetMargins(); p.pdf.GetY() <= top+0.01 {
		return
	}
	p.pdf.Ln(h)
}

func (p *pageWriter) apply(st Style) {
	p.pdf.SetFont(st.Font, st.FontStyle, st.Size)
	p.pdf.SetTextColor(st.Color.R, st.Color.G, st.Color.B)
	if st.BackColor != nil {
		p.pdf.SetFillColor(st.BackColor.R, st.BackColor.G, st.BackColor.B)
	}
	p.pdf.SetLeftMargin(p.margin + st.LeftIndent)
	p.pdf.SetRightMargin(p.margin + st.RightIndent)
	p.pdf.SetX(p.margin + st.LeftIndent)
}

// hasMarkup reports whether text carries inline tags.
func hasMarkup(text string) bool {
	for _, seg := range gofpdf.HTMLBasicTokenize(text) {
		if seg.Cat != 'T' {
			return true
		}
	}
	return false
}

// plainText drops inline tags, turning line breaks into spaces.
func plainText(text string) string {
	var b strings.Builder
	for _, seg := range gofpdf.HTMLBasicTokenize(text) {
		switch {
		case seg.Cat == 'T':
			b.WriteString(layout.UnescapeText(seg.Str))
		case seg.Cat == 'O' && seg.Str == "br":
			b.WriteByte(' ')
		}
	}
	return b.String()
}

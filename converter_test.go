package mdpdf

// Notes:
// - Tests Converter.Convert with mocked pipeline components to isolate unit logic
// - Mock implementations (mockPreprocessor, mockHTMLConverter, mockPDFRenderer)
//   allow testing error handling and data flow without rendering real PDFs
// - Internal test options (withPreprocessor, etc.) enable dependency injection
// - End-to-end tests at the bottom run the real goldmark, mapper and gofpdf stages

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-mdpdf/internal/layout"
	"github.com/alnah/go-mdpdf/internal/render"
)

// ---------------------------------------------------------------------------
// Mock Implementations
// ---------------------------------------------------------------------------

type mockPreprocessor struct {
	called bool
	input  string
}

func (m *mockPreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	m.called = true
	m.input = content
	return content
}

type mockHTMLConverter struct {
	called bool
	input  string
	output string
	err    error
}

func (m *mockHTMLConverter) ToHTML(ctx context.Context, content string) (string, error) {
	m.called = true
	m.input = content
	if m.err != nil {
		return "", m.err
	}
	if m.output != "" {
		return m.output, nil
	}
	return "<p>" + content + "</p>", nil
}

type mockPDFRenderer struct {
	called bool
	doc    *layout.Document
	page   render.Page
	meta   render.Metadata
	err    error
	panic  any
}

func (m *mockPDFRenderer) Render(w io.Writer, doc *layout.Document, page render.Page, meta render.Metadata) error {
	m.called = true
	m.doc = doc
	m.page = page
	m.meta = meta
	if m.panic != nil {
		panic(m.panic)
	}
	if m.err != nil {
		return m.err
	}
	_, err := io.WriteString(w, "%PDF-1.3 mock")
	return err
}

func withPreprocessor(p *mockPreprocessor) Option {
	return func(c *Converter) { c.preprocessor = p }
}

func withHTMLConverter(h *mockHTMLConverter) Option {
	return func(c *Converter) { c.htmlConverter = h }
}

func withPDFRenderer(r *mockPDFRenderer) Option {
	return func(c *Converter) { c.pdfRenderer = r }
}

type mocks struct {
	pre  *mockPreprocessor
	html *mockHTMLConverter
	pdf  *mockPDFRenderer
}

func newMockedConverter(t *testing.T, opts ...Option) (*Converter, mocks) {
	t.Helper()
	m := mocks{pre: &mockPreprocessor{}, html: &mockHTMLConverter{}, pdf: &mockPDFRenderer{}}
	all := append([]Option{withPreprocessor(m.pre), withHTMLConverter(m.html), withPDFRenderer(m.pdf)}, opts...)
	conv, err := NewConverter(all...)
	if err != nil {
		t.Fatalf("NewConverter: %v", err)
	}
	return conv, m
}

// ---------------------------------------------------------------------------
// TestConvert_DataFlow
// ---------------------------------------------------------------------------

func TestConvert_DataFlow(t *testing.T) {
	t.Parallel()

	t.Run("stages run in order", func(t *testing.T) {
		t.Parallel()

		conv, m := newMockedConverter(t)
		m.html.output = "<h1>Intro</h1>\n<p>Body text.</p>\n"

		res, err := conv.Convert(context.Background(), Input{Markdown: "# Intro\n\nBody text.", Title: "My Doc"})
		if err != nil {
			t.Fatalf("Convert: %v", err)
		}
		if !m.pre.called || !m.html.called || !m.pdf.called {
			t.Fatalf("called = %v/%v/%v, want all stages", m.pre.called, m.html.called, m.pdf.called)
		}
		if string(res.PDF) != "%PDF-1.3 mock" {
			t.Errorf("PDF = %q", res.PDF)
		}
		if string(res.HTML) != m.html.output {
			t.Errorf("HTML = %q, want %q", res.HTML, m.html.output)
		}
		if res.Title != "My Doc" || res.Elements != 2 {
			t.Errorf("Title = %q, Elements = %d; want My Doc, 2", res.Title, res.Elements)
		}
		if got := m.pdf.doc.Title.Text; got != "My Doc" {
			t.Errorf("document title = %q, want My Doc", got)
		}
		wantBody := []layout.Element{
			{Kind: layout.KindHeading, Level: 1, Text: "Intro", Space: layout.HeadingSpace},
			{Kind: layout.KindParagraph, Text: "Body text.", Space: layout.ParagraphSpace},
		}
		if !reflect.DeepEqual(m.pdf.doc.Body, wantBody) {
			t.Errorf("body = %v, want %v", m.pdf.doc.Body, wantBody)
		}
	})

	t.Run("front matter overrides title and author", func(t *testing.T) {
		t.Parallel()

		conv, m := newMockedConverter(t)
		md := "---\ntitle: Real Title\nauthor: Grace\nsubject: Notes\nkeywords: [a, b]\n---\nBody\n"

		res, err := conv.Convert(context.Background(), Input{Markdown: md, Title: "File Name", Author: "Ada"})
		if err != nil {
			t.Fatalf("Convert: %v", err)
		}
		if res.Title != "Real Title" {
			t.Errorf("Title = %q, want Real Title", res.Title)
		}
		if strings.Contains(m.pre.input, "title:") {
			t.Errorf("front matter reached preprocessor: %q", m.pre.input)
		}
		want := render.Metadata{Author: "Grace", Subject: "Notes", Keywords: []string{"a", "b"}}
		if !reflect.DeepEqual(m.pdf.meta, want) {
			t.Errorf("meta = %+v, want %+v", m.pdf.meta, want)
		}
	})

	t.Run("input author used without front matter", func(t *testing.T) {
		t.Parallel()

		conv, m := newMockedConverter(t)
		if _, err := conv.Convert(context.Background(), Input{Markdown: "x", Title: "T", Author: "Ada"}); err != nil {
			t.Fatal(err)
		}
		if m.pdf.meta.Author != "Ada" {
			t.Errorf("Author = %q, want Ada", m.pdf.meta.Author)
		}
	})

	t.Run("page settings passed through", func(t *testing.T) {
		t.Parallel()

		conv, m := newMockedConverter(t)
		page := &PageSettings{Size: "Letter", Orientation: "Landscape", Margin: 36}
		if _, err := conv.Convert(context.Background(), Input{Markdown: "x", Title: "T", Page: page}); err != nil {
			t.Fatal(err)
		}
		want := render.Page{Size: "Letter", Orientation: "landscape", Margin: 36}
		if m.pdf.page != want {
			t.Errorf("page = %+v, want %+v", m.pdf.page, want)
		}
	})

	t.Run("default page settings", func(t *testing.T) {
		t.Parallel()

		conv, m := newMockedConverter(t)
		if _, err := conv.Convert(context.Background(), Input{Markdown: "x", Title: "T"}); err != nil {
			t.Fatal(err)
		}
		want := render.Page{Size: PageSizeA4, Orientation: OrientationPortrait, Margin: DefaultMargin}
		if m.pdf.page != want {
			t.Errorf("page = %+v, want %+v", m.pdf.page, want)
		}
	})

	t.Run("creation date option", func(t *testing.T) {
		t.Parallel()

		date := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
		conv, m := newMockedConverter(t, WithCreationDate(date))
		if _, err := conv.Convert(context.Background(), Input{Markdown: "x", Title: "T"}); err != nil {
			t.Fatal(err)
		}
		if !m.pdf.meta.CreationDate.Equal(date) {
			t.Errorf("CreationDate = %v, want %v", m.pdf.meta.CreationDate, date)
		}
	})

	t.Run("html only skips layout and render", func(t *testing.T) {
		t.Parallel()

		conv, m := newMockedConverter(t)
		res, err := conv.Convert(context.Background(), Input{Markdown: "x", Title: "T", HTMLOnly: true})
		if err != nil {
			t.Fatal(err)
		}
		if m.pdf.called || res.PDF != nil {
			t.Error("renderer called in HTMLOnly mode")
		}
	})

	t.Run("empty markdown gives title-only document", func(t *testing.T) {
		t.Parallel()

		conv, m := newMockedConverter(t)
		m.html.output = "\n"
		res, err := conv.Convert(context.Background(), Input{Markdown: "", Title: "Empty"})
		if err != nil {
			t.Fatalf("Convert: %v", err)
		}
		if res.Elements != 0 || len(m.pdf.doc.Elements()) != 1 {
			t.Errorf("Elements = %d, document = %v; want title only", res.Elements, m.pdf.doc.Elements())
		}
	})
}

// ---------------------------------------------------------------------------
// TestConvert_Errors
// ---------------------------------------------------------------------------

func TestConvert_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   Input
		setup   func(m mocks)
		wantErr error
	}{
		{
			name:    "invalid utf-8",
			input:   Input{Markdown: "bad \xff byte", Title: "T"},
			wantErr: ErrInvalidEncoding,
		},
		{
			name:    "invalid page size",
			input:   Input{Markdown: "x", Title: "T", Page: &PageSettings{Size: "b5", Orientation: "portrait", Margin: 72}},
			wantErr: ErrInvalidPageSize,
		},
		{
			name:    "invalid margin",
			input:   Input{Markdown: "x", Title: "T", Page: &PageSettings{Size: "a4", Orientation: "portrait", Margin: 1}},
			wantErr: ErrInvalidMargin,
		},
		{
			name:    "empty title",
			input:   Input{Markdown: "x", Title: "  "},
			wantErr: ErrEmptyTitle,
		},
		{
			name:    "title with invalid UTF-8",
			input:   Input{Markdown: "x", Title: "bad \xff"},
			wantErr: ErrInvalidTitle,
		},
		{
			name:    "title derived from separators only",
			input:   Input{Markdown: "x", Title: DeriveTitle("-.md")},
			wantErr: ErrEmptyTitle,
		},
		{
			name:    "malformed front matter",
			input:   Input{Markdown: "---\ntitle: [broken\n---\nbody", Title: "T"},
			wantErr: ErrFrontMatter,
		},
		{
			name:    "html conversion failure",
			input:   Input{Markdown: "x", Title: "T"},
			setup:   func(m mocks) { m.html.err = errors.New("boom") },
			wantErr: ErrHTMLConversion,
		},
		{
			name:    "render failure",
			input:   Input{Markdown: "x", Title: "T"},
			setup:   func(m mocks) { m.pdf.err = errors.New("boom") },
			wantErr: ErrPDFGeneration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			conv, m := newMockedConverter(t)
			if tt.setup != nil {
				tt.setup(m)
			}
			res, err := conv.Convert(context.Background(), tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if res != nil {
				t.Errorf("result = %+v, want nil on error", res)
			}
		})
	}
}

func TestConvert_RecoversPanic(t *testing.T) {
	t.Parallel()

	conv, m := newMockedConverter(t)
	m.pdf.panic = "font table corrupted"

	res, err := conv.Convert(context.Background(), Input{Markdown: "x", Title: "T"})
	if err == nil || !strings.Contains(err.Error(), "internal error") {
		t.Fatalf("error = %v, want internal error", err)
	}
	if res != nil {
		t.Errorf("result = %+v, want nil", res)
	}
}

func TestConvert_CanceledContext(t *testing.T) {
	t.Parallel()

	conv, m := newMockedConverter(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := conv.Convert(ctx, Input{Markdown: "x", Title: "T"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if m.html.called {
		t.Error("HTML converter called after cancellation")
	}
}

// ---------------------------------------------------------------------------
// TestNewConverter_Style
// ---------------------------------------------------------------------------

type stubLoader map[string]string

func (s stubLoader) LoadStyle(name string) (string, error) {
	if v, ok := s[name]; ok {
		return v, nil
	}
	return "", ErrStyleNotFound
}

func TestNewConverter_Style(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sheetPath := filepath.Join(dir, "mine.yaml")
	if err := os.WriteFile(sheetPath, []byte("styles:\n  Normal:\n    font: Times\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	badPath := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(badPath, []byte("styles:\n  Title:\n    parent: Ghost\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		opts    []Option
		wantErr error
	}{
		{name: "default"},
		{name: "embedded compact", opts: []Option{WithStyle("compact")}},
		{name: "file path", opts: []Option{WithStyle(sheetPath)}},
		{name: "unknown name", opts: []Option{WithStyle("nope")}, wantErr: ErrStyleNotFound},
		{name: "missing file", opts: []Option{WithStyle(filepath.Join(dir, "missing.yaml"))}, wantErr: ErrStyleNotFound},
		{name: "invalid sheet", opts: []Option{WithStyle(badPath)}, wantErr: ErrInvalidStyle},
		{name: "bad asset path", opts: []Option{WithAssetPath(filepath.Join(dir, "nowhere"))}, wantErr: ErrInvalidAssetPath},
		{
			name: "custom loader",
			opts: []Option{WithAssetLoader(stubLoader{"house": "styles:\n  Normal:\n    size: 11\n"}), WithStyle("house")},
		},
		{
			name:    "custom loader miss",
			opts:    []Option{WithAssetLoader(stubLoader{}), WithStyle("house")},
			wantErr: ErrStyleNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewConverter(tt.opts...)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewConverter() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// End-to-end (real goldmark, mapper and gofpdf)
// ---------------------------------------------------------------------------

func TestConvert_EndToEnd(t *testing.T) {
	t.Parallel()

	t.Run("title line and paragraph", func(t *testing.T) {
		t.Parallel()

		conv, err := NewConverter()
		if err != nil {
			t.Fatal(err)
		}
		rec := &recordingRenderer{next: conv.pdfRenderer}
		conv.pdfRenderer = rec

		res, err := conv.Convert(context.Background(), Input{
			Markdown: "# Title\n\nSome paragraph text.\n",
			Title:    DeriveTitle("my-report_file.md"),
		})
		if err != nil {
			t.Fatalf("Convert: %v", err)
		}
		if !bytes.HasPrefix(res.PDF, []byte("%PDF-")) {
			t.Errorf("PDF header = %q", res.PDF[:min(8, len(res.PDF))])
		}
		want := []layout.Element{
			{Kind: layout.KindHeading, Level: 1, Text: "Title", Space: layout.HeadingSpace},
			{Kind: layout.KindParagraph, Text: "Some paragraph text.", Space: layout.ParagraphSpace},
		}
		if !reflect.DeepEqual(rec.doc.Body, want) {
			t.Errorf("body = %v, want %v", rec.doc.Body, want)
		}
		if rec.doc.Title.Text != "My Report File" {
			t.Errorf("title = %q, want My Report File", rec.doc.Title.Text)
		}
	})

	t.Run("rich document", func(t *testing.T) {
		t.Parallel()

		conv, err := NewConverter(WithStyle("compact"))
		if err != nil {
			t.Fatal(err)
		}
		md := "# Guide\n\nSome **bold** and *italic* text.\n\n" +
			"```go\nfunc main() {}\n```\n\n- one\n- two\n\n1. first\n\n| a | b |\n|---|---|\n| 1 | 2 |\n"
		res, err := conv.Convert(context.Background(), Input{Markdown: md, Title: "Guide"})
		if err != nil {
			t.Fatalf("Convert: %v", err)
		}
		if !bytes.HasPrefix(res.PDF, []byte("%PDF-")) {
			t.Error("output is not a PDF")
		}
		if res.Elements < 6 {
			t.Errorf("Elements = %d, want at least 6", res.Elements)
		}
	})

	t.Run("body elements", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name     string
			markdown string
			want     []layout.Element
		}{
			{
				name:     "code block keeps blank lines",
				markdown: "```\ndef a():\n    pass\n\n\ndef b():\n    pass\n```\n",
				want: []layout.Element{
					{Kind: layout.KindCodeBlock, Text: "def a():\n    pass\n\n\ndef b():\n    pass\n", Space: layout.CodeBlockSpace},
				},
			},
			{
				name:     "comparison text next to bold",
				markdown: "Use x < y for **less than** and x >= y otherwise.\n",
				want: []layout.Element{
					{Kind: layout.KindParagraph, Text: "Use x &lt; y for <b>less than</b> and x &gt;= y otherwise.", Space: layout.ParagraphSpace},
				},
			},
			{
				name:     "angle brackets across paragraphs",
				markdown: "If a < b and c > d then **stop**.\n\nSecond.\n",
				want: []layout.Element{
					{Kind: layout.KindParagraph, Text: "If a &lt; b and c &gt; d then <b>stop</b>.", Space: layout.ParagraphSpace},
					{Kind: layout.KindParagraph, Text: "Second.", Space: layout.ParagraphSpace},
				},
			},
			{
				name:     "raw inline HTML emphasis",
				markdown: "A <b>bold</b> and <i>italic</i> word.\n",
				want: []layout.Element{
					{Kind: layout.KindParagraph, Text: "A <b>bold</b> and <i>italic</i> word.", Space: layout.ParagraphSpace},
				},
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				conv, err := NewConverter()
				if err != nil {
					t.Fatal(err)
				}
				rec := &recordingRenderer{next: conv.pdfRenderer}
				conv.pdfRenderer = rec

				if _, err := conv.Convert(context.Background(), Input{Markdown: tt.markdown, Title: "T"}); err != nil {
					t.Fatalf("Convert: %v", err)
				}
				if !reflect.DeepEqual(rec.doc.Body, tt.want) {
					t.Errorf("body =\n  %v\nwant\n  %v", rec.doc.Body, tt.want)
				}
			})
		}
	})

	t.Run("same input gives same element sequence", func(t *testing.T) {
		t.Parallel()

		conv, err := NewConverter()
		if err != nil {
			t.Fatal(err)
		}
		rec := &recordingRenderer{next: conv.pdfRenderer}
		conv.pdfRenderer = rec
		in := Input{Markdown: "# A\n\ntext\n\n- x\n", Title: "A"}

		if _, err := conv.Convert(context.Background(), in); err != nil {
			t.Fatal(err)
		}
		first := rec.doc.Elements()
		if _, err := conv.Convert(context.Background(), in); err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(first, rec.doc.Elements()) {
			t.Errorf("element sequences differ:\n  %v\n  %v", first, rec.doc.Elements())
		}
	})
}

// recordingRenderer keeps the last document and delegates rendering.
type recordingRenderer struct {
	next pdfRenderer
	doc  *layout.Document
}

func (r *recordingRenderer) Render(w io.Writer, doc *layout.Document, page render.Page, meta render.Metadata) error {
	r.doc = doc
	return r.next.Render(w, doc, page, meta)
}

package mdpdf

import (
	"io"

	"github.com/alnah/go-mdpdf/internal/layout"
	"github.com/alnah/go-mdpdf/internal/render"
)

// pdfRenderer lays out a document as PDF.
type pdfRenderer interface {
	Render(w io.Writer, doc *layout.Document, page render.Page, meta render.Metadata) error
}

// gofpdfRenderer builds a fresh render.Renderer for every document.
type gofpdfRenderer struct {
	styles []byte
}

func (r *gofpdfRenderer) Render(w io.Writer, doc *layout.Document, page render.Page, meta render.Metadata) error {
	rr, err := render.NewRenderer(r.styles, page)
	if err != nil {
		return err
	}
	return rr.Render(w, doc, meta)
}

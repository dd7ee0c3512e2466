// Package mdpdf converts Markdown documents to PDF.
//
// # Quick Start
//
//	conv, err := mdpdf.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := conv.Convert(ctx, mdpdf.Input{
//	    Markdown: "# Hello\n\nWorld",
//	    Title:    mdpdf.DeriveTitle("hello-world.md"),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("hello-world.pdf", result.PDF, 0644)
//
// The result holds the PDF bytes and the intermediate HTML. Set
// Input.HTMLOnly to stop after the HTML stage.
//
// # Conversion Pipeline
//
//  1. Front matter split (title, author, subject, keywords)
//  2. Markdown preprocessing (line endings, blank line runs)
//  3. Markdown to HTML via Goldmark (GFM, footnotes, highlighting markers)
//  4. HTML to layout elements via a tag-dispatch mapper
//  5. Layout to PDF via gofpdf
//
// The mapper only understands headings, paragraphs, preformatted blocks,
// bold and italic runs, line breaks and list items. Anything else is reduced
// to its text. An element that cannot be built (for example a paragraph
// containing an unsupported inline tag) is left out of the document without
// error.
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := mdpdf.NewConverter(
//	    mdpdf.WithStyle("compact"),
//	    mdpdf.WithAssetPath("/path/to/custom/assets"),
//	    mdpdf.WithCreationDate(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
//	)
//
// A Converter holds no per-document state: style sheets and PDF writers are
// rebuilt for every Convert call.
package mdpdf

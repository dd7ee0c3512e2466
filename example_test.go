package mdpdf_test

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/alnah/go-mdpdf"
)

// Example converts a short document and checks the PDF header.
func Example() {
	conv, err := mdpdf.NewConverter()
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	result, err := conv.Convert(context.Background(), mdpdf.Input{
		Markdown: "# Hello World\n\nThis is a test.",
		Title:    mdpdf.DeriveTitle("hello-world.md"),
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(result.Title)
	fmt.Println(bytes.HasPrefix(result.PDF, []byte("%PDF-")))
	// Output:
	// Hello World
	// true
}

// Example_htmlOnly stops after the Markdown to HTML stage.
func Example_htmlOnly() {
	conv, err := mdpdf.NewConverter(mdpdf.WithStyle("compact"))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	result, err := conv.Convert(context.Background(), mdpdf.Input{
		Markdown: "Some **bold** text.",
		Title:    "Notes",
		HTMLOnly: true,
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(strings.TrimSpace(string(result.HTML)))
	// Output: <p>Some <strong>bold</strong> text.</p>
}

// Typographic punctuation is opt-in.
func Example_typographer() {
	conv, err := mdpdf.NewConverter(mdpdf.WithTypographer())
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	result, err := conv.Convert(context.Background(), mdpdf.Input{
		Markdown: `She said "wait..."`,
		Title:    "Notes",
		HTMLOnly: true,
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(strings.TrimSpace(string(result.HTML)))
	// Output: <p>She said &ldquo;wait&hellip;&rdquo;</p>
}

// Example_frontMatter shows front matter replacing the title passed in.
func Example_frontMatter() {
	conv, err := mdpdf.NewConverter()
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	result, err := conv.Convert(context.Background(), mdpdf.Input{
		Markdown: "---\ntitle: Quarterly Review\n---\nNumbers went up.\n",
		Title:    mdpdf.DeriveTitle("q3_review.md"),
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(result.Title)
	// Output: Quarterly Review
}

// ExampleDeriveTitle shows how file names become titles.
func ExampleDeriveTitle() {
	fmt.Println(mdpdf.DeriveTitle("my-report_file.md"))
	// Output: My Report File
}

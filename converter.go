package mdpdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/alnah/go-mdpdf/internal/assets"
	"github.com/alnah/go-mdpdf/internal/fileutil"
	"github.com/alnah/go-mdpdf/internal/layout"
	"github.com/alnah/go-mdpdf/internal/pipeline"
	"github.com/alnah/go-mdpdf/internal/render"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = pipeline.SourceNormalizer{}
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
	_ pdfRenderer                   = (*gofpdfRenderer)(nil)
)

// Converter orchestrates the markdown-to-PDF conversion pipeline.
// Create with NewConverter() and use Convert() for each document.
type Converter struct {
	cfg               converterConfig
	assetLoader       assets.AssetLoader
	publicAssetLoader AssetLoader // from WithAssetLoader
	preprocessor      pipeline.MarkdownPreprocessor
	htmlConverter     pipeline.HTMLConverter
	pdfRenderer       pdfRenderer
}

// publicToInternalAdapter wraps public AssetLoader to internal assets.AssetLoader.
type publicToInternalAdapter struct {
	pub AssetLoader
}

func (a *publicToInternalAdapter) LoadStyle(name string) (string, error) {
	return a.pub.LoadStyle(name)
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithStyle, WithAssetPath).
// Returns error if the asset path is invalid or the style sheet cannot be
// loaded or parsed.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		assetLoader:  assets.NewEmbeddedLoader(),
		preprocessor: pipeline.SourceNormalizer{},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.htmlConverter == nil {
		var mdOpts []pipeline.GoldmarkOption
		if c.cfg.typographer {
			mdOpts = append(mdOpts, pipeline.WithTypographer())
		}
		c.htmlConverter = pipeline.NewGoldmarkConverter(mdOpts...)
	}

	if c.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		c.assetLoader = resolver
	}
	if c.publicAssetLoader != nil {
		c.assetLoader = &publicToInternalAdapter{pub: c.publicAssetLoader}
	}

	// Create PDF renderer if not injected (e.g., by tests)
	if c.pdfRenderer == nil {
		styles, err := c.resolveStyle()
		if err != nil {
			return nil, err
		}
		if _, err := render.ParseStyleSheet(styles); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidStyle, err)
		}
		c.pdfRenderer = &gofpdfRenderer{styles: styles}
	}

	return c, nil
}

// Convert runs the full pipeline and returns the result containing HTML and PDF.
// The context is checked between stages; conversion itself is synchronous.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := c.validateInput(input); err != nil {
		return nil, err
	}

	fm, body, err := pipeline.SplitFrontMatter(input.Markdown)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFrontMatter, err)
	}

	title := input.Title
	if fm.Title != "" {
		title = fm.Title
	}
	if strings.TrimSpace(title) == "" {
		return nil, ErrEmptyTitle
	}

	mdContent := c.preprocessor.PreprocessMarkdown(ctx, body)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	htmlContent, err := c.htmlConverter.ToHTML(ctx, mdContent)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}

	res := &ConvertResult{
		HTML:  []byte(htmlContent),
		Title: title,
	}
	if input.HTMLOnly {
		return res, nil
	}

	elements, err := layout.Map(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLayout, err)
	}
	doc, err := layout.NewDocument(title, elements)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTitle, err)
	}

	meta := render.Metadata{
		Author:       firstNonEmpty(fm.Author, input.Author),
		Subject:      fm.Subject,
		Keywords:     fm.Keywords,
		CreationDate: c.cfg.creationDate,
	}

	var buf bytes.Buffer
	if err := c.pdfRenderer.Render(&buf, doc, toRenderPage(input.Page), meta); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	res.PDF = buf.Bytes()
	res.Elements = len(elements)
	return res, nil
}

// resolveStyle resolves the style input (name or path) to YAML content.
func (c *Converter) resolveStyle() ([]byte, error) {
	input := c.cfg.styleInput
	if input == "" {
		input = DefaultStyle
	}

	// File path? (contains / or \)
	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("%w: %s", ErrStyleNotFound, input)
			}
			return nil, fmt.Errorf("loading style file %q: %w", input, err)
		}
		return content, nil
	}

	content, err := c.assetLoader.LoadStyle(input)
	if err != nil {
		return nil, fmt.Errorf("loading style %q: %w", input, convertAssetError(err))
	}
	return []byte(content), nil
}

// validateInput checks the fields a library caller controls directly.
// CLI input is validated earlier by Config.Validate(); both paths converge here.
func (c *Converter) validateInput(input Input) error {
	if !utf8.ValidString(input.Markdown) {
		return ErrInvalidEncoding
	}
	return input.Page.Validate()
}

// toRenderPage converts public page settings to the renderer's page.
func toRenderPage(p *PageSettings) render.Page {
	if p == nil {
		p = DefaultPageSettings()
	}
	return render.Page{
		Size:        p.Size,
		Orientation: strings.ToLower(p.Orientation),
		Margin:      p.Margin,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

package mdpdf

import (
	"fmt"
	"strings"
	"time"
)

// Page size constants.
const (
	PageSizeA3     = "a3"
	PageSizeA4     = "a4"
	PageSizeA5     = "a5"
	PageSizeLetter = "letter"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in points.
const (
	MinMargin     = 18.0
	MaxMargin     = 216.0
	DefaultMargin = 72.0
)

// PageSettings configures PDF page dimensions.
type PageSettings struct {
	Size        string  // "a3", "a4", "a5", "letter", "legal"
	Orientation string  // "portrait", "landscape"
	Margin      float64 // points, applied to all sides
}

// DefaultPageSettings returns A4 portrait with one-inch margins.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeA4,
		Orientation: OrientationPortrait,
		Margin:      DefaultMargin,
	}
}

// Validate checks that page settings are valid.
// Returns nil if p is nil (nil means use defaults).
// Does not mutate - uses case-insensitive comparison.
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}
	if !isValidPageSize(p.Size) {
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}
	if !isValidOrientation(p.Orientation) {
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}
	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.0f and %.0f points)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}
	return nil
}

// isValidPageSize checks if size is a known page size (case-insensitive).
func isValidPageSize(size string) bool {
	switch strings.ToLower(size) {
	case PageSizeA3, PageSizeA4, PageSizeA5, PageSizeLetter, PageSizeLegal:
		return true
	}
	return false
}

// isValidOrientation checks if orientation is valid (case-insensitive).
func isValidOrientation(orientation string) bool {
	switch strings.ToLower(orientation) {
	case OrientationPortrait, OrientationLandscape:
		return true
	}
	return false
}

// Input holds one document to convert.
type Input struct {
	Markdown string        // Markdown content, may start with a front matter block
	Title    string        // Title element text; front matter "title" overrides it
	Author   string        // PDF author; front matter "author" overrides it
	Page     *PageSettings // Page settings (optional, nil = defaults)
	HTMLOnly bool          // Stop after the HTML stage
}

// ConvertResult is the output of a conversion.
type ConvertResult struct {
	HTML     []byte // Intermediate HTML fragment
	PDF      []byte // PDF document, nil when Input.HTMLOnly is set
	Title    string // Title actually used
	Elements int    // Body elements laid out, excluding the title
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	styleInput   string // style name or YAML file path
	assetPath    string
	creationDate time.Time
	typographer  bool
}

// WithStyle selects the style sheet by embedded name ("default", "compact"),
// by name under the asset path, or by path to a YAML file.
func WithStyle(nameOrPath string) Option {
	return func(c *Converter) {
		c.cfg.styleInput = nameOrPath
	}
}

// WithAssetPath sets a directory whose styles/ subdirectory is searched
// before the embedded style sheets.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithCreationDate pins the PDF creation date. The zero time means the time
// of each conversion.
func WithCreationDate(t time.Time) Option {
	return func(c *Converter) {
		c.cfg.creationDate = t
	}
}

// WithTypographer renders straight quotes, "--" and "..." as curly quotes,
// dashes and ellipses.
func WithTypographer() Option {
	return func(c *Converter) {
		c.cfg.typographer = true
	}
}

// WithAssetLoader replaces the style loader. It takes precedence over
// WithAssetPath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(c *Converter) {
		c.publicAssetLoader = loader
	}
}

package mdpdf

import "errors"

// Sentinel errors for library operations.
var (
	ErrInvalidEncoding = errors.New("markdown is not valid UTF-8")
	ErrEmptyTitle      = errors.New("document title cannot be empty")
	ErrInvalidTitle    = errors.New("invalid document title")
	ErrFrontMatter     = errors.New("invalid front matter")
	ErrHTMLConversion  = errors.New("HTML conversion failed")
	ErrLayout          = errors.New("layout mapping failed")
	ErrPDFGeneration   = errors.New("PDF generation failed")

	// Page settings validation errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")

	// Asset loading errors.
	ErrStyleNotFound    = errors.New("style not found")
	ErrInvalidStyle     = errors.New("invalid style sheet")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)

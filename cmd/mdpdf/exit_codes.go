package main

import (
	"errors"
	"os"

	mdpdf "github.com/alnah/go-mdpdf"
	"github.com/alnah/go-mdpdf/internal/config"
)

// Exit codes for the mdpdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
// Per-file conversion failures are reported but never change the exit code.
const (
	ExitSuccess = 0 // Batch ran, whatever the per-file outcome
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // Input directory cannot be listed
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// I/O errors (exit 3)
	if errors.Is(err, ErrReadDir) ||
		errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, mdpdf.ErrInvalidPageSize) ||
		errors.Is(err, mdpdf.ErrInvalidOrientation) ||
		errors.Is(err, mdpdf.ErrInvalidMargin) ||
		errors.Is(err, mdpdf.ErrStyleNotFound) ||
		errors.Is(err, mdpdf.ErrInvalidStyle) ||
		errors.Is(err, mdpdf.ErrInvalidAssetPath) ||
		errors.Is(err, ErrTooManyArgs) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	return ExitGeneral
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"

	mdpdf "github.com/alnah/go-mdpdf"
	"github.com/alnah/go-mdpdf/internal/fileutil"
	"github.com/alnah/go-mdpdf/internal/hints"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// summaryRule separates per-file lines from the summary.
var summaryRule = strings.Repeat("=", 50)

// Sentinel errors for batch operations.
var (
	ErrReadMarkdown = errors.New("failed to read markdown file")
	ErrWritePDF     = errors.New("failed to write PDF file")
	ErrWriteHTML    = errors.New("failed to write HTML file")
)

// CLIConverter is the interface for the conversion service.
type CLIConverter interface {
	Convert(ctx context.Context, input mdpdf.Input) (*mdpdf.ConvertResult, error)
}

// Compile-time interface implementation check.
var _ CLIConverter = (*mdpdf.Converter)(nil)

// conversionParams groups parameters shared by every file of a batch.
type conversionParams struct {
	page       *mdpdf.PageSettings
	author     string
	htmlOutput bool
	quiet      bool
	verbose    bool
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Err        error
	Duration   time.Duration
	Size       int // PDF bytes written
}

// convertBatch converts files one after another, reporting each outcome as
// soon as it is known. A failure never stops the batch.
func convertBatch(ctx context.Context, conv CLIConverter, files []FileToConvert, params *conversionParams, w io.Writer) []ConversionResult {
	results := make([]ConversionResult, 0, len(files))
	for _, f := range files {
		var r ConversionResult
		if err := ctx.Err(); err != nil {
			r = ConversionResult{InputPath: f.InputPath, OutputPath: f.OutputPath, Err: err}
		} else {
			r = convertFile(ctx, conv, f, params)
		}
		printResult(w, r, params.quiet, params.verbose)
		results = append(results, r)
	}
	return results
}

// convertFile processes a single file and returns the result.
func convertFile(ctx context.Context, conv CLIConverter, f FileToConvert, params *conversionParams) ConversionResult {
	start := time.Now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}
	fail := func(err error) ConversionResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return fail(fmt.Errorf("%w: %v", ErrReadMarkdown, err))
	}
	if !utf8.Valid(content) {
		return fail(mdpdf.ErrInvalidEncoding)
	}

	convResult, err := conv.Convert(ctx, mdpdf.Input{
		Markdown: string(content),
		Title:    mdpdf.DeriveTitle(filepath.Base(f.InputPath)),
		Author:   params.author,
		Page:     params.page,
	})
	if err != nil {
		if errors.Is(err, mdpdf.ErrFrontMatter) {
			return fail(fmt.Errorf("%w%s", err, hints.ForFrontMatter()))
		}
		return fail(err)
	}

	if err := os.MkdirAll(filepath.Dir(f.OutputPath), dirPermissions); err != nil {
		return fail(fmt.Errorf("creating output directory: %w%s", err, hints.ForOutputDirectory()))
	}

	if params.htmlOutput {
		if err := writeFile(htmlOutputPath(f.OutputPath), convResult.HTML); err != nil {
			return fail(fmt.Errorf("%w: %v", ErrWriteHTML, err))
		}
	}

	if err := writeFile(f.OutputPath, convResult.PDF); err != nil {
		return fail(fmt.Errorf("%w: %v", ErrWritePDF, err))
	}

	result.Size = len(convResult.PDF)
	result.Duration = time.Since(start)
	return result
}

// writeFile replaces path atomically so a failure keeps any previous output.
func writeFile(path string, data []byte) error {
	// #nosec G306 -- PDFs are meant to be readable
	return fileutil.WriteAtomic(path, filePermissions, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// printResult prints the outcome line of one file. Failures are always shown.
func printResult(w io.Writer, r ConversionResult, quiet, verbose bool) {
	name := filepath.Base(r.InputPath)
	if r.Err != nil {
		fmt.Fprintf(w, "✗ Failed to convert %s: %v\n", name, r.Err)
		return
	}
	if quiet {
		return
	}
	line := fmt.Sprintf("✓ Converted: %s → %s", name, filepath.Base(r.OutputPath))
	if verbose {
		line += fmt.Sprintf(" (%s, %v)", humanize.Bytes(uint64(r.Size)), r.Duration.Round(time.Millisecond))
	}
	fmt.Fprintln(w, line)
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printSummary prints the closing rule, the success count and, when at least
// one PDF was written, where the PDFs went.
func printSummary(w io.Writer, results []ConversionResult, outDir string) {
	summary := countResults(results)

	fmt.Fprintf(w, "\n%s\n", summaryRule)
	fmt.Fprintf(w, "Conversion complete: %d/%d files converted successfully.\n", summary.Succeeded, len(results))

	if summary.Succeeded > 0 {
		fmt.Fprintf(w, "\nPDF files created in: %s\n", outDir)
	}
}

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-mdpdf/internal/fileutil"
)

// Sentinel errors for file discovery.
var (
	ErrReadDir     = errors.New("cannot list input directory")
	ErrTooManyArgs = errors.New("too many arguments")
)

// markdownExt is the only extension picked up, compared case-sensitively.
const markdownExt = ".md"

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// discoverFiles lists the markdown files directly inside inputDir, sorted by
// name. Hidden files are skipped and subdirectories are not descended.
func discoverFiles(inputDir, outputDir string) ([]FileToConvert, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadDir, err)
	}

	var files []FileToConvert
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || filepath.Ext(name) != markdownExt {
			continue
		}
		inputPath := filepath.Join(inputDir, name)
		outPath, err := resolveOutputPath(inputPath, outputDir)
		if err != nil {
			return nil, err
		}
		files = append(files, FileToConvert{InputPath: inputPath, OutputPath: outPath})
	}
	return files, nil
}

// resolveOutputPath determines the PDF output path for a markdown file:
// <stem>.pdf beside the source, or inside outputDir when set.
func resolveOutputPath(inputPath, outputDir string) (string, error) {
	pdfName, err := fileutil.ReplaceExtension(filepath.Base(inputPath), ".pdf")
	if err != nil {
		return "", err
	}
	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), pdfName), nil
	}
	return filepath.Join(outputDir, pdfName), nil
}

// htmlOutputPath returns the HTML path corresponding to a PDF path.
func htmlOutputPath(pdfPath string) string {
	path, err := fileutil.ReplaceExtension(pdfPath, ".html")
	if err != nil {
		return strings.TrimSuffix(pdfPath, ".pdf") + ".html"
	}
	return path
}

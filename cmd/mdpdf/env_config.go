package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alnah/go-mdpdf/internal/config"
)

// envPrefix marks the environment variables read by mdpdf.
const envPrefix = "MDPDF_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // MDPDF_CONFIG: config file name or path
	Style      string // MDPDF_STYLE: style name or YAML path
	InputDir   string // MDPDF_INPUT_DIR: directory scanned for *.md
	OutputDir  string // MDPDF_OUTPUT_DIR: where PDFs are written
	PageSize   string // MDPDF_PAGE_SIZE: a3, a4, a5, letter, legal
	Author     string // MDPDF_AUTHOR: PDF author
}

// knownEnvVars lists valid MDPDF_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MDPDF_CONFIG":     true,
	"MDPDF_STYLE":      true,
	"MDPDF_INPUT_DIR":  true,
	"MDPDF_OUTPUT_DIR": true,
	"MDPDF_PAGE_SIZE":  true,
	"MDPDF_AUTHOR":     true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig() *envConfig {
	return &envConfig{
		ConfigPath: os.Getenv("MDPDF_CONFIG"),
		Style:      os.Getenv("MDPDF_STYLE"),
		InputDir:   os.Getenv("MDPDF_INPUT_DIR"),
		OutputDir:  os.Getenv("MDPDF_OUTPUT_DIR"),
		PageSize:   os.Getenv("MDPDF_PAGE_SIZE"),
		Author:     os.Getenv("MDPDF_AUTHOR"),
	}
}

// warnUnknownEnvVars logs warnings for unrecognized MDPDF_* variables.
// Helps catch typos like MDPDF_AUTOR instead of MDPDF_AUTHOR.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig overlays set environment variables on the config.
// Order: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Style != "" {
		cfg.Style = env.Style
	}
	if env.InputDir != "" {
		cfg.Input.Dir = env.InputDir
	}
	if env.OutputDir != "" {
		cfg.Output.Dir = env.OutputDir
	}
	if env.PageSize != "" {
		cfg.Page.Size = env.PageSize
	}
	if env.Author != "" {
		cfg.Document.Author = env.Author
	}
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-mdpdf/internal/dateutil"
	"github.com/alnah/go-mdpdf/internal/fileutil"
	"github.com/alnah/go-mdpdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// AppDirName is the directory searched under the user config directory.
const AppDirName = "go-mdpdf"

// Field length limits.
const (
	MaxPathLength        = 4096
	MaxStyleLength       = 4096 // style name or path to a YAML sheet
	MaxNameLength        = 100
	MaxPageSizeLength    = 10 // "letter", "a4", "legal"
	MaxOrientationLength = 10 // "portrait", "landscape"
	MaxDateLength        = 30 // "2025-12-31" or "December 31, 2025"
	MaxDateFormatLength  = dateutil.MaxDateFormatLength
)

// Page margin bounds in points.
const (
	MinMargin     = 18.0  // 0.25in
	MaxMargin     = 216.0 // 3in
	DefaultMargin = 72.0  // 1in
)

// Page sizes and orientations accepted in config files.
var (
	PageSizes    = []string{"a3", "a4", "a5", "letter", "legal"}
	Orientations = []string{"portrait", "landscape"}
)

// Config holds all configuration for a batch conversion.
type Config struct {
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	Page     PageConfig     `yaml:"page"`
	Style    string         `yaml:"style"` // style name or YAML file path (empty = default)
	Assets   AssetsConfig   `yaml:"assets"`
	Document DocumentConfig `yaml:"document"`
}

// InputConfig defines input source options.
type InputConfig struct {
	Dir string `yaml:"dir"` // Directory scanned for *.md (empty = current directory)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	Dir string `yaml:"dir"` // Where PDFs are written (empty = beside the source)
}

// PageConfig defines PDF page settings.
type PageConfig struct {
	Size        string  `yaml:"size"`        // a3, a4, a5, letter, legal (default: a4)
	Orientation string  `yaml:"orientation"` // portrait, landscape (default: portrait)
	Margin      float64 `yaml:"margin"`      // points (default: 72)
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// DocumentConfig defines PDF metadata defaults.
type DocumentConfig struct {
	Author       string `yaml:"author"`
	CreationDate string `yaml:"creationDate"` // empty = now, "auto" = today, or a date
	DateFormat   string `yaml:"dateFormat"`   // format of creationDate (default YYYY-MM-DD)
}

// CreationTime parses CreationDate. The zero time means "use the time of
// rendering".
func (d DocumentConfig) CreationTime(now time.Time) (time.Time, error) {
	t, err := dateutil.ParseDate(d.CreationDate, d.DateFormat, now)
	if err != nil {
		return time.Time{}, fmt.Errorf("document.creationDate: %w", err)
	}
	return t, nil
}

// Validate checks field lengths, enums and ranges.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"input.dir", c.Input.Dir, MaxPathLength},
		{"output.dir", c.Output.Dir, MaxPathLength},
		{"style", c.Style, MaxStyleLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"page.size", c.Page.Size, MaxPageSizeLength},
		{"page.orientation", c.Page.Orientation, MaxOrientationLength},
		{"document.author", c.Document.Author, MaxNameLength},
		{"document.creationDate", c.Document.CreationDate, MaxDateLength},
		{"document.dateFormat", c.Document.DateFormat, MaxDateFormatLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if err := validateEnum("page.size", c.Page.Size, PageSizes); err != nil {
		return err
	}
	if err := validateEnum("page.orientation", c.Page.Orientation, Orientations); err != nil {
		return err
	}
	if c.Page.Margin != 0 && (c.Page.Margin < MinMargin || c.Page.Margin > MaxMargin) {
		return fmt.Errorf("%w: page.margin must be between %.0f and %.0f points, got %.2f",
			ErrInvalidValue, MinMargin, MaxMargin, c.Page.Margin)
	}

	if _, err := c.Document.CreationTime(time.Now()); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// validateEnum accepts an empty value or one of allowed (case-insensitive).
func validateEnum(fieldName, value string, allowed []string) error {
	if value == "" {
		return nil
	}
	for _, a := range allowed {
		if strings.EqualFold(value, a) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s %q (must be one of %s)", ErrInvalidValue, fieldName, value, strings.Join(allowed, ", "))
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Page: PageConfig{Size: "a4", Orientation: "portrait", Margin: DefaultMargin},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	f, err := os.Open(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	cfg := DefaultConfig()
	if err := yamlutil.DecodeStrict(f, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, <user config dir>/go-mdpdf/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	dirs := []string{"."}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(userConfigDir, AppDirName))
	}

	tried := make([]string, 0, len(extensions)*len(dirs))
	for _, dir := range dirs {
		for _, ext := range extensions {
			path := filepath.Join(dir, name+ext)
			if fileutil.FileExists(path) {
				return path, nil
			}
			tried = append(tried, path)
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}

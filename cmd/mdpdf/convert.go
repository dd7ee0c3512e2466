package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	mdpdf "github.com/alnah/go-mdpdf"
	"github.com/alnah/go-mdpdf/internal/config"
	"github.com/alnah/go-mdpdf/internal/hints"
)

// currentDir is the input directory used when none is given.
const currentDir = "."

// runConvert orchestrates the conversion of one directory.
// It returns an error only when the batch cannot start; per-file failures are
// printed and counted instead.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)

	// Load configuration: --config > MDPDF_CONFIG > environment default
	cfg, err := loadConfig(firstNonEmpty(flags.common.config, envCfg.ConfigPath), env)
	if err != nil {
		return err
	}

	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	inputDir, err := resolveInputDir(positionalArgs, cfg)
	if err != nil {
		return err
	}

	page := buildPageSettings(cfg)
	if err := page.Validate(); err != nil {
		return err
	}

	conv, err := newConverter(cfg, env)
	if err != nil {
		return err
	}

	files, err := discoverFiles(inputDir, cfg.Output.Dir)
	if err != nil {
		return fmt.Errorf("%w%s", err, hints.ForInputDirectory())
	}

	if len(files) == 0 {
		if inputDir == currentDir {
			fmt.Fprintln(env.Stdout, "No markdown files found in current directory.")
		} else {
			fmt.Fprintf(env.Stdout, "No markdown files found in %s.\n", inputDir)
		}
		return nil
	}

	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Found %d markdown file(s):\n\n", len(files))
	}

	params := &conversionParams{
		page:       page,
		author:     cfg.Document.Author,
		htmlOutput: flags.outputMode.html,
		quiet:      flags.common.quiet,
		verbose:    flags.common.verbose,
	}
	results := convertBatch(ctx, conv, files, params, env.Stdout)

	if !flags.common.quiet {
		printSummary(env.Stdout, results, outputLocation(inputDir, cfg.Output.Dir))
	}
	return nil
}

// loadConfig loads the named config file, or copies the environment default.
func loadConfig(nameOrPath string, env *Environment) (*config.Config, error) {
	if nameOrPath == "" {
		cfg := config.DefaultConfig()
		if env.Config != nil {
			*cfg = *env.Config
		}
		return cfg, nil
	}

	cfg, err := config.LoadConfig(nameOrPath)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(searchedConfigPaths(err)))
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// searchedConfigPaths extracts the paths listed after "tried " in a not-found error.
func searchedConfigPaths(err error) []string {
	_, tried, ok := strings.Cut(err.Error(), "tried ")
	if !ok {
		return nil
	}
	return strings.Split(tried, ", ")
}

// mergeFlags applies CLI flags over config values (CLI wins).
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.output != "" {
		cfg.Output.Dir = flags.output
	}
	if flags.author != "" {
		cfg.Document.Author = flags.author
	}
	if flags.page.size != "" {
		cfg.Page.Size = flags.page.size
	}
	if flags.page.orientation != "" {
		cfg.Page.Orientation = flags.page.orientation
	}
	if flags.page.margin != 0 {
		cfg.Page.Margin = flags.page.margin
	}
	if flags.assets.style != "" {
		cfg.Style = flags.assets.style
	}
	if flags.assets.assetPath != "" {
		cfg.Assets.BasePath = flags.assets.assetPath
	}
}

// resolveInputDir picks the directory to scan: argument, then input.dir,
// then the current directory.
func resolveInputDir(args []string, cfg *config.Config) (string, error) {
	switch {
	case len(args) > 1:
		return "", fmt.Errorf("%w: expected at most one directory, got %d", ErrTooManyArgs, len(args))
	case len(args) == 1 && args[0] != "":
		return args[0], nil
	case cfg.Input.Dir != "":
		return cfg.Input.Dir, nil
	default:
		return currentDir, nil
	}
}

// buildPageSettings fills unset page fields with library defaults.
func buildPageSettings(cfg *config.Config) *mdpdf.PageSettings {
	page := mdpdf.DefaultPageSettings()
	if cfg.Page.Size != "" {
		page.Size = strings.ToLower(cfg.Page.Size)
	}
	if cfg.Page.Orientation != "" {
		page.Orientation = strings.ToLower(cfg.Page.Orientation)
	}
	if cfg.Page.Margin != 0 {
		page.Margin = cfg.Page.Margin
	}
	return page
}

// newConverter builds the converter shared by the whole batch.
func newConverter(cfg *config.Config, env *Environment) (*mdpdf.Converter, error) {
	var opts []mdpdf.Option
	if cfg.Style != "" {
		opts = append(opts, mdpdf.WithStyle(cfg.Style))
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, mdpdf.WithAssetPath(cfg.Assets.BasePath))
	}
	if env.AssetLoader != nil {
		opts = append(opts, mdpdf.WithAssetLoader(env.AssetLoader))
	}

	created, err := cfg.Document.CreationTime(env.Now())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", config.ErrInvalidValue, err)
	}
	if !created.IsZero() {
		opts = append(opts, mdpdf.WithCreationDate(created))
	}

	conv, err := mdpdf.NewConverter(opts...)
	if err != nil {
		if errors.Is(err, mdpdf.ErrStyleNotFound) {
			names, _ := mdpdf.StyleNames(cfg.Assets.BasePath)
			return nil, fmt.Errorf("%w%s", err, hints.ForStyleNotFound(names))
		}
		return nil, err
	}
	return conv, nil
}

// outputLocation returns the absolute directory the PDFs were written to.
func outputLocation(inputDir, outputDir string) string {
	dir := inputDir
	if outputDir != "" {
		dir = outputDir
	}
	if abs, err := filepath.Abs(dir); err == nil {
		return abs
	}
	return dir
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

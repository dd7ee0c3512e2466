package main

import (
	"io"
	"os"
	"time"

	mdpdf "github.com/alnah/go-mdpdf"
	"github.com/alnah/go-mdpdf/internal/config"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, configuration, and style loading.
type Environment struct {
	Now         func() time.Time
	Stdout      io.Writer
	Stderr      io.Writer
	AssetLoader mdpdf.AssetLoader // nil = embedded styles, or --asset-path
	Config      *config.Config    // Used when no config file is named
}

// DefaultEnv returns production environment with embedded assets.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Config: config.DefaultConfig(),
	}
}

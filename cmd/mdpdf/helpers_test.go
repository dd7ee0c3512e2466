package main

// Notes:
// - This file contains test helpers used across the command tests.
// No coverage gaps: this is test infrastructure, not production code.

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	mdpdf "github.com/alnah/go-mdpdf"
	"github.com/alnah/go-mdpdf/internal/config"
)

// fixedNow is the clock used by test environments.
var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// newTestEnv returns an Environment writing to buffers with a fixed clock.
func newTestEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	return &Environment{
		Now:    func() time.Time { return fixedNow },
		Stdout: stdout,
		Stderr: stderr,
		Config: config.DefaultConfig(),
	}, stdout, stderr
}

// writeFiles creates name->content files under dir.
func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

// ---------------------------------------------------------------------------
// Mock Implementations - For unit testing
// ---------------------------------------------------------------------------

// staticMockConverter returns a fixed result and records its inputs.
type staticMockConverter struct {
	result *mdpdf.ConvertResult
	err    error
	inputs []mdpdf.Input
}

func (m *staticMockConverter) Convert(_ context.Context, input mdpdf.Input) (*mdpdf.ConvertResult, error) {
	m.inputs = append(m.inputs, input)
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	return &mdpdf.ConvertResult{HTML: []byte("<p>x</p>"), PDF: []byte("%PDF-1.3 mock")}, nil
}

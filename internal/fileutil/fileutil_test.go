package fileutil_test

// Notes:
// - The Chmod, Close and Rename error branches of WriteAtomic are not tested
//   because triggering them is platform-specific.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/alnah/go-mdpdf/internal/fileutil"
)

// ---------------------------------------------------------------------------
// TestValidateExtension - Extension validation
// ---------------------------------------------------------------------------

func TestValidateExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		extension string
		wantErr   error
	}{
		{name: "valid extension pdf", extension: "pdf"},
		{name: "valid extension html", extension: "html"},
		{name: "empty extension", extension: "", wantErr: fileutil.ErrExtensionEmpty},
		{name: "forward slash path traversal", extension: "../etc/passwd", wantErr: fileutil.ErrExtensionPathTraversal},
		{name: "backslash path traversal", extension: "..\\windows", wantErr: fileutil.ErrExtensionPathTraversal},
		{name: "null byte injection", extension: "pdf\x00exe", wantErr: fileutil.ErrExtensionPathTraversal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := fileutil.ValidateExtension(tt.extension)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateExtension(%q) = %v, want %v", tt.extension, err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestReplaceExtension - Output path derivation
// ---------------------------------------------------------------------------

func TestReplaceExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    string
		ext     string
		want    string
		wantErr error
	}{
		{name: "md to pdf", path: "notes.md", ext: ".pdf", want: "notes.pdf"},
		{name: "keeps directory", path: filepath.Join("dir", "a-b.md"), ext: ".pdf", want: filepath.Join("dir", "a-b.pdf")},
		{name: "only last extension replaced", path: "v1.2.md", ext: ".pdf", want: "v1.2.pdf"},
		{name: "no extension appends", path: "README", ext: ".pdf", want: "README.pdf"},
		{name: "invalid extension", path: "a.md", ext: "./x", wantErr: fileutil.ErrExtensionPathTraversal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := fileutil.ReplaceExtension(tt.path, tt.ext)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ReplaceExtension(%q, %q) = %q, want %q", tt.path, tt.ext, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestWriteAtomic - Temp file + rename semantics
// ---------------------------------------------------------------------------

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	t.Run("writes content", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "out.pdf")

		err := fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
			_, err := io.WriteString(w, "%PDF-1.3")
			return err
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("reading output: %v", err)
		}
		if string(got) != "%PDF-1.3" {
			t.Errorf("content = %q, want %q", got, "%PDF-1.3")
		}
		assertOnlyFile(t, dir, "out.pdf")
	})

	t.Run("failed write leaves nothing behind", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "out.pdf")
		wantErr := errors.New("render failed")

		err := fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
			_, _ = io.WriteString(w, "partial")
			return wantErr
		})
		if !errors.Is(err, wantErr) {
			t.Fatalf("error = %v, want %v", err, wantErr)
		}
		if fileutil.FileExists(path) {
			t.Error("output file exists after failed write")
		}
		assertOnlyFile(t, dir)
	})

	t.Run("failed write keeps previous output", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "out.pdf")
		if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
			t.Fatal(err)
		}

		_ = fileutil.WriteAtomic(path, 0o644, func(io.Writer) error {
			return errors.New("boom")
		})

		got, _ := os.ReadFile(path)
		if string(got) != "old" {
			t.Errorf("content = %q, want previous content preserved", got)
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "missing", "out.pdf")
		err := fileutil.WriteAtomic(path, 0o644, func(io.Writer) error { return nil })
		if err == nil {
			t.Fatal("expected error for missing directory, got nil")
		}
	})
}

// ---------------------------------------------------------------------------
// TestFileExists / TestIsFilePath
// ---------------------------------------------------------------------------

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "a.md")
	if err := os.WriteFile(file, []byte("# A"), 0o644); err != nil {
		t.Fatal(err)
	}

	if !fileutil.FileExists(file) {
		t.Error("FileExists(file) = false, want true")
	}
	if fileutil.FileExists(dir) {
		t.Error("FileExists(dir) = true, want false")
	}
	if fileutil.FileExists(filepath.Join(dir, "nope.md")) {
		t.Error("FileExists(missing) = true, want false")
	}
}

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"default":            false,
		"my-style":           false,
		"./compact.yaml":     true,
		"/abs/style.yaml":    true,
		"C:\\styles\\x.yaml": true,
		"sub/dir":            true,
	}
	for in, want := range tests {
		if got := fileutil.IsFilePath(in); got != want {
			t.Errorf("IsFilePath(%q) = %v, want %v", in, got, want)
		}
	}
}

// assertOnlyFile fails if dir contains anything other than names.
func assertOnlyFile(t *testing.T, dir string, names ...string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != len(names) {
		var got []string
		for _, e := range entries {
			got = append(got, e.Name())
		}
		t.Fatalf("directory entries = %v, want %v", got, names)
	}
	for i, e := range entries {
		if e.Name() != names[i] {
			t.Errorf("entry[%d] = %q, want %q", i, e.Name(), names[i])
		}
	}
}

// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"path/filepath"
	"strings"
)

// appDir is the per-user config directory name searched for config files.
const appDir = "go-mdpdf"

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config and the user config path among searchedPaths, if any.
func ForConfigNotFound(searchedPaths []string) string {
	hints := []string{"use --config /path/to/file.yaml"}

	for _, p := range searchedPaths {
		if strings.Contains(filepath.ToSlash(p), "/"+appDir+"/") {
			hints[0] += " or create " + p
			break
		}
	}
	return formatHints(hints)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForInputDirectory returns hints when the input directory cannot be listed.
func ForInputDirectory() string {
	return format("pass a directory as argument or set input.dir in the config")
}

// ForStyleNotFound returns hints for style not found errors.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForFrontMatter returns hints for malformed front matter blocks.
func ForFrontMatter() string {
	return formatHints([]string{
		"front matter must open and close with a --- line",
		"supported keys: title, author, subject, keywords",
	})
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}

package assets

import (
	"io/fs"
	"sort"
	"strings"
)

// DefaultStyleName is the name of the built-in style sheet.
const DefaultStyleName = "default"

// styleExt is the file extension of style sheet assets.
const styleExt = ".yaml"

// defaultLoader is the package-level embedded loader.
var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads a style sheet by name using the default embedded loader.
// The name should not include the .yaml extension or path components.
// Returns ErrStyleNotFound if the sheet does not exist.
// Returns ErrInvalidAssetName if the name contains path separators or traversal.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}

// EmbeddedStyleNames lists the built-in style sheet names, sorted.
func EmbeddedStyleNames() []string {
	entries, err := fs.ReadDir(styles, "styles")
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), styleExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), styleExt))
	}
	sort.Strings(names)
	return names
}

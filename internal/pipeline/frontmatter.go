package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"
)

// ErrFrontMatter indicates the leading metadata block could not be parsed.
var ErrFrontMatter = errors.New("invalid front matter")

// FrontMatter holds the document metadata recognized in a leading
// YAML/TOML/JSON block. Unknown keys are ignored.
type FrontMatter struct {
	Title    string   `yaml:"title" toml:"title" json:"title"`
	Author   string   `yaml:"author" toml:"author" json:"author"`
	Subject  string   `yaml:"subject" toml:"subject" json:"subject"`
	Keywords []string `yaml:"keywords" toml:"keywords" json:"keywords"`
}

// IsZero reports whether no metadata was found.
func (f FrontMatter) IsZero() bool {
	return f.Title == "" && f.Author == "" && f.Subject == "" && len(f.Keywords) == 0
}

// SplitFrontMatter separates an optional front matter block from the body.
// Content without front matter is returned unchanged with a zero FrontMatter.
func SplitFrontMatter(content string) (FrontMatter, string, error) {
	var meta FrontMatter
	body, err := frontmatter.Parse(strings.NewReader(content), &meta)
	if err != nil {
		return FrontMatter{}, "", fmt.Errorf("%w: %v", ErrFrontMatter, err)
	}

	meta.Title = strings.TrimSpace(meta.Title)
	meta.Author = strings.TrimSpace(meta.Author)
	meta.Subject = strings.TrimSpace(meta.Subject)
	return meta, string(body), nil
}

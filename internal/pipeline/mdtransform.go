package pipeline

import (
	"context"
	"regexp"
	"strings"
)

// byteOrderMark is dropped from the start of the source; goldmark would
// otherwise keep it as text in the first paragraph.
const byteOrderMark = "\uFEFF"

var crlfOrCR = regexp.MustCompile(`\r\n?`)

// MarkdownPreprocessor defines the contract for markdown preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// SourceNormalizer cleans markdown source before parsing: no BOM and "\n"
// line endings. Blank lines are left alone since fenced code keeps them.
type SourceNormalizer struct{}

// normalizeSteps run in order.
var normalizeSteps = []func(string) string{
	func(s string) string { return strings.TrimPrefix(s, byteOrderMark) },
	func(s string) string { return crlfOrCR.ReplaceAllString(s, "\n") },
}

// PreprocessMarkdown applies every normalization step. A canceled context
// returns content untouched.
func (SourceNormalizer) PreprocessMarkdown(ctx context.Context, content string) string {
	for _, step := range normalizeSteps {
		if ctx.Err() != nil {
			return content
		}
		content = step(content)
	}
	return content
}

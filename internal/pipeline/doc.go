// Package pipeline implements the text stages that run before layout:
//   - Front matter extraction (title, author, subject, keywords)
//   - Markdown preprocessing (line normalization, blank line compression)
//   - Markdown to HTML conversion via Goldmark
//
// The HTML fragment produced here is consumed by the layout package, which
// maps a fixed set of tags onto layout elements. PDF generation lives in the
// render package.
package pipeline

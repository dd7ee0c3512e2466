// Package layout turns an HTML fragment into an ordered list of layout
// elements (title, headings, paragraphs, code blocks, bullet lines, spacers).
//
// The Mapper is a flat tag-dispatch table driven by tokenizer events. It keeps
// a text buffer and a handful of flags, emits an element whenever a block-level
// tag closes, and resets its buffer. Inline emphasis is carried inside element
// text as <b>, <i> and <br> markers, the basic HTML dialect understood by the
// PDF writer. Markers are never balanced by the mapper: unbalanced input
// produces unbalanced markers.
//
// Element construction is best effort. When a constructor rejects its input
// (unknown inline markup, invalid UTF-8, heading level out of range) that one
// element is omitted and mapping continues. Nothing is reported.
package layout

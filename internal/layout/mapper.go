package layout

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Style names tracked by the mapper while a block is open.
const (
	StyleNormal = "Normal"
	StyleCode   = "Code"
)

// ErrTokenize wraps read failures from the underlying reader.
var ErrTokenize = errors.New("reading HTML")

// Mapper accumulates layout elements from tokenizer events.
// A Mapper is single-use and not safe for concurrent use.
type Mapper struct {
	buf      strings.Builder
	style    string
	inPre    bool
	inHead   bool
	inRaw    bool // inside <script> or <style>
	level    int
	elements []Element
}

// NewMapper returns a mapper in its initial state.
func NewMapper() *Mapper {
	return &Mapper{style: StyleNormal}
}

// Map tokenizes an HTML fragment and returns the elements it maps to.
// Malformed HTML is never an error; only a failing reader is.
func Map(r io.Reader) ([]Element, error) {
	m := NewMapper()
	z := html.NewTokenizer(r)
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("%w: %v", ErrTokenize, err)
			}
			return m.Elements(), nil
		case html.StartTagToken:
			name, _ := z.TagName()
			m.StartTag(LookupTag(name))
		case html.EndTagToken:
			name, _ := z.TagName()
			m.EndTag(LookupTag(name))
		case html.SelfClosingTagToken:
			name, _ := z.TagName()
			tag := LookupTag(name)
			m.StartTag(tag)
			m.EndTag(tag)
		case html.TextToken:
			m.Text(string(z.Text()))
		}
	}
}

// MapString is Map over a string.
func MapString(s string) []Element {
	elems, _ := Map(strings.NewReader(s))
	return elems
}

// Style returns the style name of the block currently open.
func (m *Mapper) Style() string { return m.style }

// Elements returns the elements emitted so far.
func (m *Mapper) Elements() []Element {
	out := make([]Element, len(m.elements))
	copy(out, m.elements)
	return out
}

// StartTag handles an opening tag.
func (m *Mapper) StartTag(t Tag) {
	switch {
	case t.HeadingLevel() > 0:
		m.level = t.HeadingLevel()
		m.style = fmt.Sprintf("Heading%d", m.level)
		m.inHead = true
	case t == TagP:
		m.style = StyleNormal
	case t.isPreformatted():
		m.style = StyleCode
		m.inPre = true
	case t.isBold():
		m.buf.WriteString(BoldOpen)
	case t.isItalic():
		m.buf.WriteString(ItalicOpen)
	case t == TagBr:
		m.buf.WriteString(LineBreak)
	case t.isRawText():
		m.inRaw = true
	}
}

// EndTag handles a closing tag.
func (m *Mapper) EndTag(t Tag) {
	switch {
	case t.HeadingLevel() > 0:
		// The level comes from the open state, not the closing tag.
		level := m.level
		m.emitTrimmed(func(s string) (Element, error) { return NewHeading(level, s) })
		m.inHead = false
		m.level = 0
	case t == TagP:
		m.emitTrimmed(NewParagraph)
	case t.isPreformatted():
		if !m.inPre {
			return
		}
		if text := m.buf.String(); strings.TrimSpace(text) != "" {
			m.emit(func() (Element, error) { return NewCodeBlock(text) })
		}
		m.buf.Reset()
		m.inPre = false
	case t.isBold():
		m.buf.WriteString(BoldClose)
	case t.isItalic():
		m.buf.WriteString(ItalicClose)
	case t.isList():
		m.emit(func() (Element, error) { return NewSpacer(ListSpace) })
	case t == TagLi:
		m.emitTrimmed(NewBulletLine)
	case t.isRawText():
		m.inRaw = false
	}
}

// Text handles unescaped character data. Whitespace-only runs are dropped
// outside preformatted blocks, and script or style bodies are skipped.
// Outside preformatted blocks the text is escaped so a literal '<' can never
// be read back as an inline marker.
func (m *Mapper) Text(s string) {
	switch {
	case m.inRaw:
	case m.inPre:
		m.buf.WriteString(s)
	case strings.TrimSpace(s) != "":
		m.buf.WriteString(EscapeText(s))
	}
}

// emitTrimmed builds an element from the trimmed buffer when it is not empty,
// then clears the buffer either way.
func (m *Mapper) emitTrimmed(build func(string) (Element, error)) {
	if text := strings.TrimSpace(m.buf.String()); text != "" {
		m.emit(func() (Element, error) { return build(text) })
	}
	m.buf.Reset()
}

// emit appends the built element, dropping it if construction fails.
func (m *Mapper) emit(build func() (Element, error)) {
	e, err := build()
	if err != nil {
		return
	}
	m.elements = append(m.elements, e)
}

package layout

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Sentinel errors for element construction.
var (
	ErrHeadingLevel  = errors.New("heading level out of range")
	ErrInvalidUTF8   = errors.New("text is not valid UTF-8")
	ErrInlineMarkup  = errors.New("unsupported inline markup")
	ErrEmptyText     = errors.New("element text is empty")
	ErrInvalidSpacer = errors.New("spacer height must be positive")
)

// Vertical space, in points, emitted after each kind of element.
const (
	TitleSpace     = 21.6 // 0.3in
	HeadingSpace   = 14.4 // 0.2in
	ParagraphSpace = 7.2  // 0.1in
	CodeBlockSpace = 7.2
	ListSpace      = 7.2
)

// Bullet is the glyph prefixed to list items.
const Bullet = "•"

// Kind identifies the variant of a layout element.
type Kind int

const (
	KindTitle Kind = iota + 1
	KindHeading
	KindParagraph
	KindCodeBlock
	KindBulletLine
	KindSpacer
)

var kindNames = map[Kind]string{
	KindTitle:      "Title",
	KindHeading:    "Heading",
	KindParagraph:  "Paragraph",
	KindCodeBlock:  "CodeBlock",
	KindBulletLine: "BulletLine",
	KindSpacer:     "Spacer",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Element is one renderable unit. Elements are values: once built they are
// not modified.
type Element struct {
	Kind  Kind
	Level int     // heading level 1-6, zero otherwise
	Text  string  // escaped text with inline markers; verbatim for code blocks
	Space float64 // vertical space after the element, in points
}

// Style returns the style sheet key used to render the element.
func (e Element) Style() string {
	switch e.Kind {
	case KindTitle:
		return "Title"
	case KindHeading:
		return fmt.Sprintf("Heading%d", e.Level)
	case KindCodeBlock:
		return "Code"
	default:
		return "Normal"
	}
}

func (e Element) String() string {
	switch e.Kind {
	case KindHeading:
		return fmt.Sprintf("Heading(%d, %q)", e.Level, e.Text)
	case KindSpacer:
		return fmt.Sprintf("Spacer(%g)", e.Space)
	default:
		return fmt.Sprintf("%s(%q)", e.Kind, e.Text)
	}
}

// NewTitle builds the document title element.
func NewTitle(text string) (Element, error) {
	text = strings.TrimSpace(text)
	if err := checkInline(text); err != nil {
		return Element{}, err
	}
	return Element{Kind: KindTitle, Text: text, Space: TitleSpace}, nil
}

// NewHeading builds a heading element at level 1-6.
func NewHeading(level int, text string) (Element, error) {
	if level < 1 || level > 6 {
		return Element{}, fmt.Errorf("%w: %d", ErrHeadingLevel, level)
	}
	if err := checkInline(text); err != nil {
		return Element{}, err
	}
	return Element{Kind: KindHeading, Level: level, Text: text, Space: HeadingSpace}, nil
}

// NewParagraph builds a body text element.
func NewParagraph(text string) (Element, error) {
	if err := checkInline(text); err != nil {
		return Element{}, err
	}
	return Element{Kind: KindParagraph, Text: text, Space: ParagraphSpace}, nil
}

// NewCodeBlock builds a preformatted element. Text is kept verbatim and is
// not checked for inline markup.
func NewCodeBlock(text string) (Element, error) {
	if strings.TrimSpace(text) == "" {
		return Element{}, ErrEmptyText
	}
	if !utf8.ValidString(text) {
		return Element{}, ErrInvalidUTF8
	}
	return Element{Kind: KindCodeBlock, Text: text, Space: CodeBlockSpace}, nil
}

// NewBulletLine builds a list item line prefixed with the bullet glyph.
func NewBulletLine(text string) (Element, error) {
	if err := checkInline(text); err != nil {
		return Element{}, err
	}
	return Element{Kind: KindBulletLine, Text: Bullet + " " + text}, nil
}

// NewSpacer builds a vertical gap of height points.
func NewSpacer(height float64) (Element, error) {
	if height <= 0 {
		return Element{}, fmt.Errorf("%w: %g", ErrInvalidSpacer, height)
	}
	return Element{Kind: KindSpacer, Space: height}, nil
}

// checkInline validates text shared by every marked-up element kind.
func checkInline(text string) error {
	if text == "" {
		return ErrEmptyText
	}
	if !utf8.ValidString(text) {
		return ErrInvalidUTF8
	}
	return ValidateInline(text)
}

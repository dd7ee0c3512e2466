package layout

import "fmt"

// Document is a title followed by body elements, in render order.
type Document struct {
	Title Element
	Body  []Element
}

// NewDocument builds a document whose first element is a Title made from
// the plain text title. An unusable title fails the whole document.
func NewDocument(title string, body []Element) (*Document, error) {
	t, err := NewTitle(EscapeText(title))
	if err != nil {
		return nil, fmt.Errorf("title %q: %w", title, err)
	}
	return &Document{Title: t, Body: body}, nil
}

// Elements returns the title followed by the body.
func (d *Document) Elements() []Element {
	out := make([]Element, 0, len(d.Body)+1)
	out = append(out, d.Title)
	return append(out, d.Body...)
}

package render

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alnah/go-mdpdf/internal/yamlutil"
)

// Sentinel errors for style sheet parsing.
var (
	ErrStyleSheet    = errors.New("invalid style sheet")
	ErrUnknownParent = errors.New("unknown parent style")
	ErrStyleCycle    = errors.New("style inheritance cycle")
	ErrInvalidColor  = errors.New("invalid color")
	ErrInvalidFont   = errors.New("unsupported font")
)

// Style names looked up by the renderer.
const (
	StyleNormal = "Normal"
	StyleTitle  = "Title"
	StyleCode   = "Code"
)

// coreFonts lists the gofpdf built-in font families.
var coreFonts = map[string]bool{
	"arial":     true,
	"courier":   true,
	"helvetica": true,
	"times":     true,
}

var validFontStyles = map[string]bool{"": true, "B": true, "I": true, "BI": true}

var validAligns = map[string]bool{"L": true, "C": true, "R": true, "J": true}

// Color is an RGB triple.
type Color struct{ R, G, B int }

// Style is a fully resolved paragraph style. All sizes are in points.
type Style struct {
	Name        string
	Font        string
	FontStyle   string // "", "B", "I" or "BI"
	Size        float64
	Leading     float64
	Color       Color
	Align       string // L, C, R or J
	SpaceBefore float64
	SpaceAfter  float64
	LeftIndent  float64
	RightIndent float64
	BackColor   *Color
}

// styleSpec is one style as written in YAML. Nil fields inherit.
type styleSpec struct {
	Parent      string   `yaml:"parent"`
	Font        *string  `yaml:"font"`
	Style       *string  `yaml:"style"`
	Size        *float64 `yaml:"size"`
	Leading     *float64 `yaml:"leading"`
	Color       *string  `yaml:"color"`
	Align       *string  `yaml:"align"`
	SpaceBefore *float64 `yaml:"spaceBefore"`
	SpaceAfter  *float64 `yaml:"spaceAfter"`
	LeftIndent  *float64 `yaml:"leftIndent"`
	RightIndent *float64 `yaml:"rightIndent"`
	BackColor   *string  `yaml:"backColor"`
}

type sheetFile struct {
	Styles map[string]styleSpec `yaml:"styles"`
}

// baseStyle seeds resolution; every chain ends here.
var baseStyle = Style{
	Font:    "Helvetica",
	Size:    10,
	Leading: 12,
	Align:   "L",
}

// StyleSheet is a set of resolved styles keyed by name.
type StyleSheet struct {
	styles map[string]Style
}

// ParseStyleSheet decodes and resolves a YAML style sheet.
func ParseStyleSheet(data []byte) (*StyleSheet, error) {
	var f sheetFile
	if err := yamlutil.UnmarshalStrict(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStyleSheet, err)
	}
	if len(f.Styles) == 0 {
		return nil, fmt.Errorf("%w: no styles defined", ErrStyleSheet)
	}

	r := resolver{specs: f.Styles, done: make(map[string]Style), visiting: make(map[string]bool)}
	for name := range f.Styles {
		if _, err := r.resolve(name); err != nil {
			return nil, err
		}
	}
	return &StyleSheet{styles: r.done}, nil
}

// Get returns the named style, falling back to Normal and then to the
// built-in base style.
func (s *StyleSheet) Get(name string) Style {
	if st, ok := s.styles[name]; ok {
		return st
	}
	if st, ok := s.styles[StyleNormal]; ok {
		st.Name = name
		return st
	}
	st := baseStyle
	st.Name = name
	return st
}

// Has reports whether the sheet defines name.
func (s *StyleSheet) Has(name string) bool {
	_, ok := s.styles[name]
	return ok
}

type resolver struct {
	specs    map[string]styleSpec
	done     map[string]Style
	visiting map[string]bool
}

func (r *resolver) resolve(name string) (Style, error) {
	if st, ok := r.done[name]; ok {
		return st, nil
	}
	spec, ok := r.specs[name]
	if !ok {
		return Style{}, fmt.Errorf("%w: %q", ErrUnknownParent, name)
	}
	if r.visiting[name] {
		return Style{}, fmt.Errorf("%w: %q", ErrStyleCycle, name)
	}
	r.visiting[name] = true
	defer delete(r.visiting, name)

	st := baseStyle
	if spec.Parent != "" {
		parent, err := r.resolve(spec.Parent)
		if err != nil {
			return Style{}, fmt.Errorf("style %q: %w", name, err)
		}
		st = parent
	}
	st.Name = name
	if err := spec.apply(&st); err != nil {
		return Style{}, fmt.Errorf("style %q: %w", name, err)
	}
	r.done[name] = st
	return st, nil
}

// apply overlays the fields set in spec onto st and validates the result.
func (spec styleSpec) apply(st *Style) error {
	if spec.Font != nil {
		if !coreFonts[strings.ToLower(*spec.Font)] {
			return fmt.Errorf("%w: %q", ErrInvalidFont, *spec.Font)
		}
		st.Font = *spec.Font
	}
	if spec.Style != nil {
		fs := strings.ToUpper(*spec.Style)
		if fs == "IB" {
			fs = "BI"
		}
		if !validFontStyles[fs] {
			return fmt.Errorf("%w: font style %q", ErrStyleSheet, *spec.Style)
		}
		st.FontStyle = fs
	}
	if spec.Align != nil {
		a := strings.ToUpper(*spec.Align)
		if !validAligns[a] {
			return fmt.Errorf("%w: align %q", ErrStyleSheet, *spec.Align)
		}
		st.Align = a
	}
	if spec.Color != nil {
		c, err := ParseColor(*spec.Color)
		if err != nil {
			return err
		}
		st.Color = c
	}
	if spec.BackColor != nil {
		c, err := ParseColor(*spec.BackColor)
		if err != nil {
			return err
		}
		st.BackColor = &c
	}
	setFloat(&st.Size, spec.Size)
	setFloat(&st.Leading, spec.Leading)
	setFloat(&st.SpaceBefore, spec.SpaceBefore)
	setFloat(&st.SpaceAfter, spec.SpaceAfter)
	setFloat(&st.LeftIndent, spec.LeftIndent)
	setFloat(&st.RightIndent, spec.RightIndent)

	if st.Size <= 0 || st.Leading <= 0 {
		return fmt.Errorf("%w: size and leading must be positive", ErrStyleSheet)
	}
	if st.SpaceBefore < 0 || st.SpaceAfter < 0 || st.LeftIndent < 0 || st.RightIndent < 0 {
		return fmt.Errorf("%w: spacing and indents cannot be negative", ErrStyleSheet)
	}
	return nil
}

func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}

// ParseColor parses "#rrggbb" or "#rgb".
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return Color{R: int(v >> 16 & 0xff), G: int(v >> 8 & 0xff), B: int(v & 0xff)}, nil
}

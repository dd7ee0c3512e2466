// Package dateutil parses user-written dates such as a document creation date
// given in the config file ("2024-03-01", "01/03/2024", "auto").
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrInvalidDateFormat indicates an invalid date format string.
	ErrInvalidDateFormat = errors.New("invalid date format")
	// ErrInvalidDate indicates a date that does not match its format.
	ErrInvalidDate = errors.New("invalid date")
)

// MaxDateFormatLength limits format string length to prevent abuse.
const MaxDateFormatLength = 50

// DefaultDateFormat is used when no format is configured.
const DefaultDateFormat = "YYYY-MM-DD"

// Auto pins a date to the start of the current day.
const Auto = "auto"

// dateTokens maps user-friendly tokens to Go time layout components.
// Ordered by length descending for greedy matching.
var dateTokens = []struct {
	token string
	goFmt string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"M", "1"},
	{"D", "2"},
}

// DatePresets provides named shortcuts for common date formats.
var DatePresets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
}

// ParseDateFormat converts a user-friendly format (or preset name) to a Go
// time layout. Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D. Text in brackets
// is kept literally: "[Day] D" -> "Day 2". Other characters pass through.
func ParseDateFormat(format string) (string, error) {
	if format == "" {
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	}
	if len(format) > MaxDateFormatLength {
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}
	if preset, ok := DatePresets[strings.ToLower(format)]; ok {
		format = preset
	}

	var layout strings.Builder
	layout.Grow(len(format) + 8)

	for rest := format; rest != ""; {
		if rest[0] == '[' {
			end := strings.IndexByte(rest, ']')
			if end == -1 {
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, len(format)-len(rest))
			}
			layout.WriteString(rest[1:end])
			rest = rest[end+1:]
			continue
		}
		n := writeToken(&layout, rest)
		rest = rest[n:]
	}
	return layout.String(), nil
}

// writeToken writes the Go layout for the token at the start of s, or the
// first byte literally, and returns how many bytes it consumed.
func writeToken(b *strings.Builder, s string) int {
	for _, t := range dateTokens {
		if strings.HasPrefix(s, t.token) {
			b.WriteString(t.goFmt)
			return len(t.token)
		}
	}
	b.WriteByte(s[0])
	return 1
}

// ParseDate reads value using a user-friendly format. An empty value yields
// the zero time. "auto" (any case) yields midnight UTC of now's date so that
// repeated runs on the same day agree. An empty format means DefaultDateFormat.
func ParseDate(value, format string, now time.Time) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	if strings.EqualFold(value, Auto) {
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	if format == "" {
		format = DefaultDateFormat
	}
	layout, err := ParseDateFormat(format)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(layout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q does not match %q", ErrInvalidDate, value, format)
	}
	return t, nil
}

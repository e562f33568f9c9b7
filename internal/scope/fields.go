package scope

import (
	"fmt"
	"strconv"
	"strings"
)

// Field identifies one user-editable numeric setting.
type Field int

const (
	FieldYMin Field = iota
	FieldYMax
	FieldTimeWindow
	FieldLabelInterval
	FieldSamplingRate
)

func (f Field) String() string {
	switch f {
	case FieldYMin:
		return "Y min"
	case FieldYMax:
		return "Y max"
	case FieldTimeWindow:
		return "time window"
	case FieldLabelInterval:
		return "label interval"
	case FieldSamplingRate:
		return "sampling rate"
	}
	return "unknown"
}

// EditableField pairs the text a field currently shows with the last
// value the validation controller accepted. Created once per session,
// never destroyed.
type EditableField struct {
	Text  string
	Value float64
}

func newField(value float64) *EditableField {
	return &EditableField{Text: formatValue(value), Value: value}
}

// set commits a value and its display text.
func (e *EditableField) set(value float64) {
	e.Value = value
	e.Text = formatValue(value)
}

// revert restores the display text to the last committed value.
func (e *EditableField) revert() {
	e.Text = formatValue(e.Value)
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// signOnly reports a transient "+" or "-" entry: in-progress typing,
// neither committed nor an error.
func signOnly(text string) bool {
	return text == "+" || text == "-"
}

// parseNumber parses user input, accepting both '.' and ',' as the
// decimal separator. Anything beyond digits, one leading sign and one
// separator is rejected.
func parseNumber(text string) (float64, error) {
	normalized := strings.ReplaceAll(text, ",", ".")

	rest := normalized
	if len(rest) > 0 && (rest[0] == '+' || rest[0] == '-') {
		rest = rest[1:]
	}
	seenSep := false
	for _, c := range rest {
		switch {
		case c >= '0' && c <= '9':
		case c == '.' && !seenSep:
			seenSep = true
		default:
			return 0, fmt.Errorf("invalid number %q", text)
		}
	}

	v, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", text)
	}
	return v, nil
}

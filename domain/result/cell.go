package result

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// CellKind tells whether a cell came in as text, a number or a boolean
type CellKind int

const (
	CellText CellKind = iota
	CellNumber
	CellBool
)

// CellValue is one spreadsheet cell
type CellValue struct {
	Kind   CellKind
	Text   string
	Number float64
	Bool   bool
}

// TextCell creates a text cell
func TextCell(s string) CellValue {
	return CellValue{Kind: CellText, Text: s}
}

// NumberCell creates a numeric cell
func NumberCell(f float64) CellValue {
	return CellValue{Kind: CellNumber, Number: f}
}

// BoolCell creates a boolean cell. It never counts as a mark.
func BoolCell(b bool) CellValue {
	text := "FALSE"
	if b {
		text = "TRUE"
	}
	return CellValue{Kind: CellBool, Text: text, Bool: b}
}

// String renders the cell the way it is shown on a marksheet
func (v CellValue) String() string {
	if v.Kind == CellNumber {
		return FormatNumber(v.Number)
	}
	return v.Text
}

// IsBlank reports whether the cell is empty after trimming
func (v CellValue) IsBlank() bool {
	return v.Kind == CellText && strings.TrimSpace(v.Text) == ""
}

// Numeric returns the cell as a number. Text qualifies only when the whole
// trimmed string parses as a finite float.
func (v CellValue) Numeric() (float64, bool) {
	switch v.Kind {
	case CellNumber:
		return v.Number, true
	case CellBool:
		return 0, false
	}
	s := strings.TrimSpace(v.Text)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// MarshalJSON emits numbers and booleans as JSON scalars and text as JSON strings
func (v CellValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case CellNumber:
		return json.Marshal(v.Number)
	case CellBool:
		return json.Marshal(v.Bool)
	}
	return json.Marshal(v.Text)
}

// FormatNumber prints a float without trailing zeros (80, 72.5)
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

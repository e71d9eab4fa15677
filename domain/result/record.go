package result

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// ErrEmptySheet is returned when a sheet has no rows or a blank header row
var ErrEmptySheet = errors.New("sheet is empty or has no header row")

// ClassLabel identifies the cohort an upload belongs to ("10", "12")
type ClassLabel string

func (c ClassLabel) String() string { return string(c) }

// RawSheet is the first worksheet of an upload as rows of cells; row 0 is the header
type RawSheet struct {
	Name string
	Rows [][]CellValue
}

// Field is one header/value pair of a row
type Field struct {
	Header string
	Value  CellValue
}

// RowRecord is one spreadsheet row keyed by header, in sheet column order.
// Records are immutable once built.
type RowRecord struct {
	fields []Field
	index  map[string]int
}

// NewRowRecord builds a record from ordered fields. A repeated header keeps its
// first position and takes the last value.
func NewRowRecord(fields []Field) RowRecord {
	r := RowRecord{
		fields: make([]Field, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for _, f := range fields {
		if i, ok := r.index[f.Header]; ok {
			r.fields[i].Value = f.Value
			continue
		}
		r.index[f.Header] = len(r.fields)
		r.fields = append(r.fields, f)
	}
	return r
}

// Headers returns the record's keys in column order
func (r RowRecord) Headers() []string {
	headers := make([]string, len(r.fields))
	for i, f := range r.fields {
		headers[i] = f.Header
	}
	return headers
}

// Fields returns a copy of the record's fields
func (r RowRecord) Fields() []Field {
	out := make([]Field, len(r.fields))
	copy(out, r.fields)
	return out
}

// Get returns the value stored under header
func (r RowRecord) Get(header string) (CellValue, bool) {
	i, ok := r.index[header]
	if !ok {
		return CellValue{}, false
	}
	return r.fields[i].Value, true
}

// Text returns the value under header as a string, empty when absent
func (r RowRecord) Text(header string) string {
	if header == "" {
		return ""
	}
	v, _ := r.Get(header)
	return v.String()
}

// MarshalJSON writes the record as a JSON object preserving column order
func (r RowRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Header)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

type column struct {
	index  int
	header string
}

// BuildRecords turns a raw sheet into records. Headers are trimmed, blank
// headers drop their column, rows whose cells are all blank are skipped and
// missing trailing cells become empty text. The returned column names are the
// record keys in order.
func BuildRecords(sheet RawSheet) ([]RowRecord, []string, error) {
	if len(sheet.Rows) == 0 {
		return nil, nil, ErrEmptySheet
	}

	columns := headerColumns(sheet.Rows[0])
	if len(columns) == 0 {
		return nil, nil, ErrEmptySheet
	}

	names := make([]string, len(columns))
	for i, col := range columns {
		names[i] = col.header
	}

	records := make([]RowRecord, 0, len(sheet.Rows)-1)
	for _, row := range sheet.Rows[1:] {
		if isBlankRow(row) {
			continue
		}
		fields := make([]Field, len(columns))
		for i, col := range columns {
			value := TextCell("")
			if col.index < len(row) {
				value = row[col.index]
			}
			fields[i] = Field{Header: col.header, Value: value}
		}
		records = append(records, NewRowRecord(fields))
	}

	return records, names, nil
}

// headerColumns trims the header row, skips blanks and suffixes repeated
// names with _1, _2, ...
func headerColumns(headerRow []CellValue) []column {
	var columns []column
	seen := make(map[string]int)
	used := make(map[string]bool)

	for i, cell := range headerRow {
		name := strings.TrimSpace(cell.String())
		if name == "" {
			continue
		}
		header := name
		if used[header] {
			for {
				seen[name]++
				header = name + "_" + strconv.Itoa(seen[name])
				if !used[header] {
					break
				}
			}
		}
		used[header] = true
		columns = append(columns, column{index: i, header: header})
	}
	return columns
}

func isBlankRow(row []CellValue) bool {
	for _, cell := range row {
		if !cell.IsBlank() {
			return false
		}
	}
	return true
}

package excel

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"resultdesk/domain/result"
	"resultdesk/internal"

	"github.com/xuri/excelize/v2"
)

const (
	FileTypeXLSX = "xlsx"
	FileTypeCSV  = "csv"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DataReader turns uploaded Excel and CSV files into raw sheets
type DataReader struct {
	config ReaderConfig
	logger *internal.Logger
}

// NewDataReader creates a reader for uploaded spreadsheets
func NewDataReader(config ReaderConfig, logger *internal.Logger) *DataReader {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &DataReader{config: config, logger: logger.With("DataReader")}
}

// DetectFileType picks the parser from the file extension; anything that is
// not .csv is treated as a workbook
func DetectFileType(filename string) string {
	if strings.ToLower(filepath.Ext(filename)) == ".csv" {
		return FileTypeCSV
	}
	return FileTypeXLSX
}

// ReadFirstSheet parses content and returns its first worksheet
func (r *DataReader) ReadFirstSheet(ctx context.Context, filename string, content []byte) (*result.RawSheet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fileType := DetectFileType(filename)
	r.logger.Debug("Reading %s upload %q (%d bytes)", fileType, filename, len(content))

	var (
		sheet *result.RawSheet
		err   error
	)
	start := time.Now()
	switch fileType {
	case FileTypeCSV:
		sheet, err = r.readCSV(filename, content)
	default:
		sheet, err = r.readWorkbook(content)
	}
	if err != nil {
		return nil, err
	}

	if r.config.MaxRows > 0 && len(sheet.Rows) > r.config.MaxRows {
		return nil, fmt.Errorf("sheet %q has %d rows, the limit is %d", sheet.Name, len(sheet.Rows), r.config.MaxRows)
	}

	r.logger.Debug("Sheet %q read in %.2fms (%d rows)", sheet.Name, float64(time.Since(start).Nanoseconds())/1e6, len(sheet.Rows))
	return sheet, nil
}

// readWorkbook reads the first sheet in workbook order. Numeric cells become
// numbers; shared and inline strings stay text even when they look numeric.
func (r *DataReader) readWorkbook(content []byte) (*result.RawSheet, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			r.logger.Warn("Error closing Excel file: %v", err)
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return &result.RawSheet{}, nil
	}
	name := sheets[0]

	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", name, err)
	}

	sheet := &result.RawSheet{Name: name, Rows: make([][]result.CellValue, len(rows))}
	for i, row := range rows {
		cells := make([]result.CellValue, len(row))
		for j, raw := range row {
			axis, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return nil, fmt.Errorf("invalid cell position %d,%d: %w", j+1, i+1, err)
			}
			cellType, err := f.GetCellType(name, axis)
			if err != nil {
				return nil, fmt.Errorf("failed to read cell %s: %w", axis, err)
			}
			cells[j] = toCellValue(raw, cellType)
		}
		sheet.Rows[i] = cells
	}
	return sheet, nil
}

// readCSV reads every record of a CSV upload as text cells
func (r *DataReader) readCSV(filename string, content []byte) (*result.RawSheet, error) {
	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(content, utf8BOM)))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}

	sheet := &result.RawSheet{
		Name: strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)),
		Rows: make([][]result.CellValue, len(records)),
	}
	for i, record := range records {
		cells := make([]result.CellValue, len(record))
		for j, value := range record {
			cells[j] = result.TextCell(value)
		}
		sheet.Rows[i] = cells
	}
	return sheet, nil
}

func toCellValue(raw string, cellType excelize.CellType) result.CellValue {
	switch cellType {
	case excelize.CellTypeUnset, excelize.CellTypeNumber, excelize.CellTypeFormula:
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			break
		}
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return result.NumberCell(f)
		}
	case excelize.CellTypeBool:
		if b, err := strconv.ParseBool(strings.TrimSpace(raw)); err == nil {
			return result.BoolCell(b)
		}
	}
	return result.TextCell(raw)
}

// Package sheet reads uploaded spreadsheets into headers and header-keyed rows.
package sheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Errors returned while reading a sheet.
var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrEmptySheet        = errors.New("sheet has no header row")
	ErrMalformedFile     = errors.New("malformed file")
)

// Table is the first sheet of a workbook or a whole CSV file.
type Table struct {
	Headers []string
	Rows    []map[string]any
}

// IsSupported reports whether name has an extension Read understands.
func IsSupported(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".xlsx":
		return true
	default:
		return false
	}
}

// Read parses r according to the extension of name.
func Read(name string, r io.Reader) (Table, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return ReadCSV(r)
	case ".xlsx":
		return ReadXLSX(r)
	default:
		// Legacy BIFF .xls workbooks are not zip archives and cannot be opened.
		return Table{}, fmt.Errorf("%w: %q (expected .csv or .xlsx)", ErrUnsupportedFormat, filepath.Base(name))
	}
}

// ReadFile opens path and parses it with Read.
func ReadFile(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return Table{}, err
	}
	defer func() { _ = f.Close() }()
	return Read(path, f)
}

// ReadCSV parses a CSV file whose first record is the header row.
func ReadCSV(r io.Reader) (Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("%w: failed to read CSV: %w", ErrMalformedFile, err)
	}
	if len(records) > 0 && len(records[0]) > 0 {
		records[0][0] = strings.TrimPrefix(records[0][0], "\ufeff")
	}
	return fromGrid(records)
}

// ReadXLSX parses the first sheet of a workbook. Cells are read raw, so dates
// arrive as Excel serial numbers and are decoded by the coercion layer.
func ReadXLSX(r io.Reader) (Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Table{}, fmt.Errorf("%w: failed to open workbook: %w", ErrMalformedFile, err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return Table{}, fmt.Errorf("%w: workbook has no sheets", ErrEmptySheet)
	}
	grid, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return Table{}, fmt.Errorf("%w: failed to read sheet %q: %w", ErrMalformedFile, sheet, err)
	}
	return fromGrid(grid)
}

// fromGrid turns a header row plus data rows into a Table. Blank headers are
// named Column_N, the first of two identical headers keeps the value, and
// rows with no content are dropped.
func fromGrid(grid [][]string) (Table, error) {
	if len(grid) == 0 || isBlankRow(grid[0]) {
		return Table{}, ErrEmptySheet
	}

	headers := make([]string, len(grid[0]))
	for i, h := range grid[0] {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("Column_%d", i+1)
		}
		headers[i] = h
	}

	rows := make([]map[string]any, 0, len(grid)-1)
	for _, cells := range grid[1:] {
		if isBlankRow(cells) {
			continue
		}
		row := make(map[string]any, len(headers))
		for i, h := range headers {
			if _, seen := row[h]; seen || i >= len(cells) {
				continue
			}
			row[h] = cells[i]
		}
		rows = append(rows, row)
	}
	return Table{Headers: headers, Rows: rows}, nil
}

func isBlankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Package export writes filtered records to downloadable files: XLSX via
// github.com/xuri/excelize/v2, Parquet via github.com/parquet-go/parquet-go, and CSV.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/huangsam/reportboard/schema"
)

// BaseName is the file name stem of downloads.
const BaseName = "api_logs"

// ErrUnsupportedFormat is returned for output modes that are not file formats.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Dataset is what gets exported: the descriptors and the filtered records,
// plus the metrics of those records for the XLSX summary sheet.
type Dataset struct {
	Fields  []schema.FieldDescriptor
	Records []schema.Record
	Metrics schema.MetricsSnapshot
}

// Formats lists the export formats in the order they are offered.
var Formats = []schema.OutputMode{schema.XLSXOut, schema.ParquetOut, schema.CSVOut}

// IsSupported reports whether mode can be exported.
func IsSupported(mode schema.OutputMode) bool {
	for _, f := range Formats {
		if f == mode {
			return true
		}
	}
	return false
}

// FileName returns the download name for mode, e.g. api_logs.xlsx.
func FileName(mode schema.OutputMode) string {
	return BaseName + "." + string(mode)
}

// ContentType returns the MIME type for mode.
func ContentType(mode schema.OutputMode) string {
	switch mode {
	case schema.XLSXOut:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case schema.ParquetOut:
		return "application/vnd.apache.parquet"
	case schema.CSVOut:
		return "text/csv; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}

// Write encodes ds to w in the given format.
func Write(w io.Writer, mode schema.OutputMode, ds Dataset) error {
	switch mode {
	case schema.XLSXOut:
		return WriteXLSX(w, ds)
	case schema.ParquetOut:
		return WriteParquet(w, ds)
	case schema.CSVOut:
		return WriteCSV(w, ds)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, mode)
	}
}

// WriteFile encodes ds into a new file at path. An empty path uses FileName(mode).
// It returns the path written.
func WriteFile(path string, mode schema.OutputMode, ds Dataset) (string, error) {
	if !IsSupported(mode) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, mode)
	}
	if path == "" {
		path = FileName(mode)
	}
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	if err := Write(file, mode, ds); err != nil {
		return "", err
	}
	return path, nil
}

// cellValue returns the value written to a spreadsheet cell. Numbers stay
// numeric and unparseable dates keep their source text so a re-import sees
// the same input.
func cellValue(v schema.Value) any {
	switch {
	case v.Kind == schema.NumericKind:
		return v.Number
	case v.Kind == schema.DateKind && v.Invalid:
		return v.Text
	default:
		return v.Display()
	}
}

package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/huangsam/reportboard/schema"
)

// WriteCSV writes the records with the source headers, so the file can be imported again.
func WriteCSV(w io.Writer, ds Dataset) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(schema.Headers(ds.Fields)); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	row := make([]string, len(ds.Fields))
	for _, rec := range ds.Records {
		for i, f := range ds.Fields {
			row[i] = fmt.Sprint(cellValue(rec.Get(f.Key)))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

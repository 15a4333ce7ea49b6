package export

import (
	"fmt"
	"io"

	"github.com/huangsam/reportboard/schema"
	"github.com/parquet-go/parquet-go"
)

// SchemaFor builds the Parquet schema for the descriptors. Every column is
// optional: dates use the DATE logical type, numerics are doubles and the rest
// are strings. Columns are ordered by key, as parquet groups are.
func SchemaFor(fields []schema.FieldDescriptor) *parquet.Schema {
	group := make(parquet.Group, len(fields))
	for _, f := range fields {
		var node parquet.Node
		switch f.Kind {
		case schema.DateKind:
			node = parquet.Date()
		case schema.NumericKind:
			node = parquet.Leaf(parquet.DoubleType)
		default:
			node = parquet.String()
		}
		group[f.Key] = parquet.Optional(parquet.Compressed(node, &parquet.Snappy))
	}
	return parquet.NewSchema("request_logs", group)
}

// WriteParquet writes one Parquet row per record.
func WriteParquet(w io.Writer, ds Dataset) error {
	sch := SchemaFor(ds.Fields)

	// Column index -> record key
	columns := sch.Columns()
	keys := make([]string, len(columns))
	for i, path := range columns {
		keys[i] = path[0]
	}

	rows := make([]parquet.Row, 0, len(ds.Records))
	for _, rec := range ds.Records {
		row := make(parquet.Row, len(keys))
		for i, key := range keys {
			v := parquetValue(rec.Get(key))
			if v.IsNull() {
				row[i] = v.Level(0, 0, i)
			} else {
				row[i] = v.Level(0, 1, i)
			}
		}
		rows = append(rows, row)
	}

	writer := parquet.NewWriter(w, sch)
	if _, err := writer.WriteRows(rows); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}

// parquetValue converts a cell; missing and invalid values are null.
func parquetValue(v schema.Value) parquet.Value {
	switch v.Kind {
	case schema.DateKind:
		if v.Invalid {
			return parquet.NullValue()
		}
		return parquet.Int32Value(int32(v.Day.Time().Unix() / 86400))
	case schema.NumericKind:
		return parquet.DoubleValue(v.Number)
	default:
		if v.Text == "" {
			return parquet.NullValue()
		}
		return parquet.ByteArrayValue([]byte(v.Text))
	}
}

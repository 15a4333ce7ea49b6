package export

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/huangsam/reportboard/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openParquet(data []byte) (*parquet.File, error) {
	return parquet.OpenFile(bytes.NewReader(data), int64(len(data)))
}

func readParquetRows(t *testing.T, data []byte, n int) []parquet.Row {
	t.Helper()
	reader := parquet.NewReader(bytes.NewReader(data))
	defer func() { _ = reader.Close() }()

	rows := make([]parquet.Row, n)
	read, err := reader.ReadRows(rows)
	if err != nil && !errors.Is(err, io.EOF) {
		require.NoError(t, err)
	}
	require.Equal(t, n, read)
	return rows
}

func TestSchemaFor(t *testing.T) {
	fields := []schema.FieldDescriptor{
		{Header: "Date", Key: "date", Kind: schema.DateKind},
		{Header: "Response Time", Key: "response_time", Kind: schema.NumericKind},
		{Header: "Category", Key: "category", Kind: schema.CategoryKind},
	}
	sch := SchemaFor(fields)

	assert.Equal(t, [][]string{{"category"}, {"date"}, {"response_time"}}, sch.Columns())

	date, ok := sch.Lookup("date")
	require.True(t, ok)
	assert.True(t, date.Node.Optional())
	assert.Equal(t, parquet.Int32Type.Kind(), date.Node.Type().Kind())

	latency, ok := sch.Lookup("response_time")
	require.True(t, ok)
	assert.Equal(t, parquet.Double, latency.Node.Type().Kind())
}

func TestWriteParquetEmpty(t *testing.T) {
	var buf bytes.Buffer
	fields := []schema.FieldDescriptor{{Header: "status", Key: "status", Kind: schema.PlainKind}}
	require.NoError(t, WriteParquet(&buf, Dataset{Fields: fields}))

	file, err := openParquet(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, int64(0), file.NumRows())
}

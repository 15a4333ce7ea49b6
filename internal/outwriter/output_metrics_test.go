package outwriter

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/huangsam/reportboard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteMetricDefinitions(t *testing.T) {
	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteMetricDefinitions(&buf, testConfig(schema.TextOut)))
		out := buf.String()
		for _, def := range schema.MetricDefinitions {
			assert.Contains(t, out, def.Title)
		}
		assert.Contains(t, out, "worse")
	})

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteMetricDefinitions(&buf, testConfig(schema.CSVOut)))
		rows, err := csv.NewReader(&buf).ReadAll()
		require.NoError(t, err)
		require.Len(t, rows, len(schema.MetricDefinitions)+1)
		assert.Equal(t, []string{"avg_response_time", "Avg Response Time", "ms", "true"}, rows[3][:4])
	})

	t.Run("parquet rejected", func(t *testing.T) {
		assert.Error(t, WriteMetricDefinitions(&bytes.Buffer{}, testConfig(schema.ParquetOut)))
	})
}

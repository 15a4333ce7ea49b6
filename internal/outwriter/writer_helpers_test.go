package outwriter

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFormatters(t *testing.T) {
	tests := []struct {
		precision int
		value     float64
		expected  string
	}{
		{0, 87.5, "88"},
		{1, 87.54, "87.5"},
		{3, -12.34567, "-12.346"},
	}
	for _, tt := range tests {
		fmtFloat, intFmt := createFormatters(tt.precision)
		assert.Equal(t, tt.expected, fmtFloat(tt.value))
		assert.Equal(t, "%d", intFmt)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, map[string]any{"status": "ok"}))
	assert.Equal(t, "{\n  \"status\": \"ok\"\n}\n", buf.String())

	err := writeJSON(&buf, make(chan int))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to encode JSON")
}

func TestWriteCSVWithHeader(t *testing.T) {
	var buf bytes.Buffer
	err := writeCSVWithHeader(&buf, []string{"name", "status"}, func(w *csv.Writer) error {
		return w.Write([]string{"API Request 1", "failed, retried"})
	})
	require.NoError(t, err)
	assert.Equal(t, "name,status\nAPI Request 1,\"failed, retried\"\n", buf.String())

	err = writeCSVWithHeader(&bytes.Buffer{}, []string{"name"}, func(*csv.Writer) error {
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)
}

func TestWriteWithFile(t *testing.T) {
	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "report.csv")
		err := writeWithFile(path, func(w io.Writer) error {
			_, err := io.WriteString(w, "date,status\n")
			return err
		}, "Wrote report")
		require.NoError(t, err)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "date,status\n", string(content))
	})

	t.Run("writer error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "report.csv")
		err := writeWithFile(path, func(io.Writer) error { return assert.AnError }, "Wrote report")
		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("bad path", func(t *testing.T) {
		err := writeWithFile("/nonexistent/dir/report.csv", func(io.Writer) error { return nil }, "Wrote report")
		assert.Error(t, err)
	})
}

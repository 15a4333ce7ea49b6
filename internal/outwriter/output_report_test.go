package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/huangsam/reportboard/core"
	"github.com/huangsam/reportboard/internal/contract"
	"github.com/huangsam/reportboard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSession(t *testing.T) *core.Session {
	t.Helper()
	rows := []map[string]any{
		{"date": "2024-01-03", "category": "Claims", "status": "success", "responseTime": "100"},
		{"date": "2024-01-04", "category": "Claims", "status": "failed", "responseTime": "300"},
		{"date": "2024-01-01", "category": "Payments", "status": "success", "responseTime": "100"},
		{"date": "not a date", "category": "Claims", "status": "success", "responseTime": "100"},
	}
	s, err := core.Import(schema.ImportSource, "logs.csv", []string{"date", "category", "status", "responseTime"}, rows, core.NormalizeOptions{})
	require.NoError(t, err)
	return s
}

func testConfig(out schema.OutputMode) *contract.Config {
	return &contract.Config{Output: out, Precision: 1, Width: 120}
}

func filteredReport(t *testing.T) schema.Report {
	t.Helper()
	start, _ := schema.ParseDay("2024-01-03")
	end, _ := schema.ParseDay("2024-01-04")
	report, err := core.BuildReport(testSession(t), core.ReportRequest{Start: start, End: end, Category: "all", Page: 1, PageSize: 10})
	require.NoError(t, err)
	return report
}

func TestWriteReportResultsTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReportResults(&buf, filteredReport(t), 2, testConfig(schema.TextOut)))

	output := buf.String()
	assert.Contains(t, output, "2024-01-03..2024-01-04 (compared with 2024-01-01..2024-01-02)")
	assert.Contains(t, output, "Total Requests")
	assert.Contains(t, output, "50.0%")
	assert.Contains(t, output, "200.0ms")
	assert.Contains(t, output, "+100.0% ▲", "avg response time doubled")
	assert.Contains(t, output, "-50.0pp ▼", "success rate fell by fifty points")
	assert.Contains(t, output, "Claims")
	assert.Contains(t, output, "Page 1: records 1-2 of 2")
	assert.Contains(t, output, "2 import issue(s)")
}

func TestWriteReportResultsOverview(t *testing.T) {
	report, err := core.BuildReport(testSession(t), core.ReportRequest{Page: 2, PageSize: 3})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteReportResults(&buf, report, 0, testConfig(schema.TextOut)))

	output := buf.String()
	assert.Contains(t, output, "all records, category all")
	assert.Contains(t, output, "Invalid Date")
	assert.Contains(t, output, "Page 2: records 4-4 of 4")
	assert.NotContains(t, output, "import issue")
}

func TestWriteReportResultsEmptyPage(t *testing.T) {
	report, err := core.BuildReport(testSession(t), core.ReportRequest{Category: "eligibility"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteReportResults(&buf, report, 0, testConfig(schema.TextOut)))
	assert.Contains(t, buf.String(), "No records match the current filter.")
	assert.Contains(t, buf.String(), "Page 1: 0 of 0 matched records")
}

func TestWriteReportResultsJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReportResults(&buf, filteredReport(t), 0, testConfig(schema.JSONOut)))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, float64(2), decoded["total_matched"])
	metrics := decoded["metrics"].(map[string]any)
	assert.Equal(t, float64(50), metrics["success_rate"])
	assert.NotNil(t, decoded["comparison"])
	records := decoded["records"].([]any)
	require.Len(t, records, 2)
}

func TestWriteReportResultsCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReportResults(&buf, filteredReport(t), 0, testConfig(schema.CSVOut)))

	rows, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"date", "category", "status", "responsetime"}, rows[0])
	assert.Equal(t, []string{"2024-01-03", "Claims", "success", "100"}, rows[1])
}

func TestWriteReportResultsRejectsFileFormats(t *testing.T) {
	for _, mode := range []schema.OutputMode{schema.XLSXOut, schema.ParquetOut} {
		err := WriteReportResults(&bytes.Buffer{}, filteredReport(t), 0, testConfig(mode))
		assert.Error(t, err, string(mode))
	}
}

func TestFormatMetric(t *testing.T) {
	fmtFloat, _ := createFormatters(2)
	tests := []struct {
		def      schema.MetricDefinition
		value    float64
		expected string
	}{
		{schema.MetricDefinitions[0], 12, "12"},
		{schema.MetricDefinitions[1], 87.5, "87.50%"},
		{schema.MetricDefinitions[2], 210.333, "210.33ms"},
		{schema.MetricDefinitions[3], 3, "3"},
	}
	for _, tt := range tests {
		t.Run(tt.def.Title, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatMetric(tt.def, tt.value, fmtFloat))
		})
	}
}

func TestGetMaxCellWidth(t *testing.T) {
	assert.Equal(t, 40, GetMaxCellWidth(&contract.Config{Width: 400}, 2))
	assert.Equal(t, 8, GetMaxCellWidth(&contract.Config{Width: 40}, 10))
	assert.Equal(t, 25, GetMaxCellWidth(&contract.Config{Width: 120}, 4))
	assert.Equal(t, 40, GetMaxCellWidth(&contract.Config{Width: 120}, 0))
}

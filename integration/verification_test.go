//go:build basic

// Package integration contains integration tests for reportboard.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
package integration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/reportboard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `Date,Endpoint,Category,Status,Response Time
2024-01-01,/login,Auth,200,100
2024-01-02,/login,Auth,500,300
2024-01-03,/pay,Payments,success,50
2024-01-04,/pay,payments,404,150
2024-01-05,/login,Auth,OK,200
2024-01-06,/pay,Payments,200,100
not a date,/pay,Payments,200,100
`

// writeSample writes the sample CSV to a temp dir and returns the dir and file name.
func writeSample(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "logs.csv"), []byte(sampleCSV), 0o644))
	return dir, "logs.csv"
}

// isolatedEnv keeps the tests away from the user's config and database.
func isolatedEnv(dir string) []string {
	return []string{"HOME=" + dir, "REPORTBOARD_BACKEND=none"}
}

// TestReportOverviewVerification checks the overview metrics of a file against hand-computed values.
func TestReportOverviewVerification(t *testing.T) {
	dir, file := writeSample(t)
	report := runReport(t, dir, isolatedEnv(dir), file)

	assert.Equal(t, schema.ImportSource, report.Source)
	assert.Equal(t, 7, report.TotalMatched)
	assert.Equal(t, 7, report.Metrics.TotalRequests)
	assert.Equal(t, 2, report.Metrics.FailedRequests)
	assert.Nil(t, report.Window)
	assert.Nil(t, report.Comparison)
	assert.Len(t, report.Categories, 3) // all, auth, payments
}

// TestReportComparisonVerification checks a filtered range against the period before it.
func TestReportComparisonVerification(t *testing.T) {
	dir, file := writeSample(t)
	report := runReport(t, dir, isolatedEnv(dir), file,
		"--start", "2024-01-04", "--end", "2024-01-06", "--category", "payments")

	// 2024-01-04 and 2024-01-06 are payments; the previous window 01-01..01-03 holds 01-03.
	assert.Equal(t, 2, report.Metrics.TotalRequests)
	assert.InDelta(t, 50.0, report.Metrics.SuccessRate, 0.001)
	assert.InDelta(t, 125.0, report.Metrics.AvgResponseTime, 0.001)
	require.NotNil(t, report.Previous)
	assert.Equal(t, 1, report.Previous.TotalRequests)
	require.NotNil(t, report.Comparison)
	assert.Equal(t, "2024-01-01..2024-01-03", report.PreviousWindow.String())
}

// TestExportVerification checks that every export format produces a file.
func TestExportVerification(t *testing.T) {
	dir, file := writeSample(t)
	for _, format := range []string{"xlsx", "parquet", "csv"} {
		t.Run(format, func(t *testing.T) {
			runCommand(t, dir, isolatedEnv(dir), "export", file, "--output", format)
			info, err := os.Stat(filepath.Join(dir, "api_logs."+format))
			require.NoError(t, err)
			assert.Positive(t, info.Size())
		})
	}
}

// TestStrictImportRejects checks that strict mode fails on the unparseable date.
func TestStrictImportRejects(t *testing.T) {
	dir, file := writeSample(t)
	output := runFailing(t, dir, isolatedEnv(dir), "report", file, "--import-mode", "strict")
	assert.Contains(t, output, "import rejected")
}

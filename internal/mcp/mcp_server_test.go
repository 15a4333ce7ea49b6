package mcp_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/reportboard/internal/contract"
	"github.com/huangsam/reportboard/internal/datastore"
	mcp_internal "github.com/huangsam/reportboard/internal/mcp"
	"github.com/huangsam/reportboard/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func baseConfig() *contract.Config {
	return &contract.Config{
		Category:   schema.AllCategories,
		Page:       1,
		PageSize:   10,
		ImportMode: schema.LenientImport,
		Backend:    schema.SQLiteBackend,
	}
}

func storeManager() *datastore.MockStoreManager {
	store := &datastore.MockRecordStore{}
	store.On("ListRows", mock.Anything).Return(schema.RequestLogColumns, []map[string]any{
		{"id": int64(1), "name": "API Request 1", "category": "Claims", "status": "success", "response_time": "120", "request_date": "2024-01-02"},
		{"id": int64(2), "name": "API Request 2", "category": "Payments", "status": "failed", "response_time": "480", "request_date": "2024-01-01"},
	}, nil)
	mgr := &datastore.MockStoreManager{}
	mgr.On("GetRecordStore").Return(store)
	return mgr
}

func callTool(t *testing.T, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	s := mcp_internal.NewMCPServer(baseConfig(), storeManager())
	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	req := mcp.CallToolRequest{Params: mcp.CallToolParams{Name: name, Arguments: args}}
	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	return res
}

func textOf(res *mcp.CallToolResult) string {
	return res.Content[0].(mcp.TextContent).Text
}

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	tests := []struct {
		name     string
		tool     string
		args     map[string]any
		contains string
	}{
		{"get_report half range", "get_report", map[string]any{"start": "2024-01-01"}, "both start and end dates are required"},
		{"get_report bad date", "get_report", map[string]any{"start": "soon", "end": "2024-01-01"}, "start:"},
		{"get_report inverted", "get_report", map[string]any{"start": "2024-01-05", "end": "2024-01-01"}, "start date cannot be after end date"},
		{"get_report bad page size", "get_report", map[string]any{"page_size": 1000.0}, "page_size must be between"},
		{"get_report bad mode", "get_report", map[string]any{"import_mode": "paranoid"}, "invalid import_mode"},
		{"discover_schema missing file", "discover_schema", map[string]any{"file_path": "/nonexistent/logs.csv"}, "loading records failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := callTool(t, tt.tool, tt.args)
			assert.True(t, res.IsError, "The response should indicate an error state")
			assert.Contains(t, textOf(res), tt.contains)
		})
	}
}

func TestGetReportFromStore(t *testing.T) {
	res := callTool(t, "get_report", map[string]any{"start": "2024-01-02", "end": "2024-01-02"})
	require.False(t, res.IsError, textOf(res))

	var report schema.Report
	require.NoError(t, json.Unmarshal([]byte(textOf(res)), &report))
	assert.Equal(t, 1, report.TotalMatched)
	assert.Equal(t, 100.0, report.Metrics.SuccessRate)
	require.NotNil(t, report.Comparison)
	assert.Equal(t, 100.0, report.Comparison.SuccessRate)
	assert.Equal(t, -75.0, report.Comparison.AvgResponseTime)
}

func TestGetReportPagePastEnd(t *testing.T) {
	res := callTool(t, "get_report", map[string]any{"page": float64(1 << 62), "page_size": 500.0})
	require.False(t, res.IsError, textOf(res))

	var report schema.Report
	require.NoError(t, json.Unmarshal([]byte(textOf(res)), &report))
	assert.Equal(t, 2, report.TotalMatched)
	assert.Empty(t, report.Records)
}

func TestGetReportFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs.csv")
	require.NoError(t, os.WriteFile(path, []byte("date,category,status\n2024-01-01,Claims,ok\n2024-01-01,Claims,timeout\n"), 0o644))

	res := callTool(t, "get_report", map[string]any{"file_path": path, "category": "CLAIMS"})
	require.False(t, res.IsError, textOf(res))

	var report schema.Report
	require.NoError(t, json.Unmarshal([]byte(textOf(res)), &report))
	assert.Equal(t, 2, report.Metrics.TotalRequests)
	assert.Equal(t, 1, report.Metrics.FailedRequests)
	assert.Nil(t, report.Comparison)
}

func TestDiscoverSchemaAndCategories(t *testing.T) {
	res := callTool(t, "discover_schema", nil)
	require.False(t, res.IsError, textOf(res))
	var summary schema.ImportSummary
	require.NoError(t, json.Unmarshal([]byte(textOf(res)), &summary))
	assert.Equal(t, "request_date", summary.Roles.Date)
	assert.Equal(t, 2, summary.Records)
	assert.Equal(t, "sqlite", summary.Source)

	res = callTool(t, "list_categories", nil)
	require.False(t, res.IsError, textOf(res))
	var options []schema.CategoryOption
	require.NoError(t, json.Unmarshal([]byte(textOf(res)), &options))
	assert.Equal(t, []schema.CategoryOption{
		{Value: "all", Label: "All Categories"},
		{Value: "claims", Label: "Claims"},
		{Value: "payments", Label: "Payments"},
	}, options)
}

// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/reportboard/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the reportboard MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Reportboard Server",
		"1.0.0",
		server.WithLogging(),
		server.WithRecovery(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: get_report ---
	s.AddTool(mcp.NewTool("get_report",
		mcp.WithDescription("Summarize request logs: totals, success rate, average response time and failures, compared with the preceding period of equal length."),
		mcp.WithString("file_path", mcp.Description("CSV or XLSX file to report on (defaults to the record store).")),
		mcp.WithString("start", mcp.Description("First day of the window (YYYY-MM-DD, RFC3339 or e.g. '7 days ago'). Requires end.")),
		mcp.WithString("end", mcp.Description("Last day of the window. Requires start.")),
		mcp.WithString("category", mcp.Description("Category to keep, case-insensitive. Defaults to 'all'.")),
		mcp.WithNumber("page", mcp.Description("Page of matched records to include (1-based).")),
		mcp.WithNumber("page_size", mcp.Description("Records per page.")),
		mcp.WithString("import_mode", mcp.Description("How malformed rows are handled. Defaults to 'lenient'."), mcp.Enum("lenient", "strict")),
	), h.handleGetReport)

	// --- 2. Tool: discover_schema ---
	s.AddTool(mcp.NewTool("discover_schema",
		mcp.WithDescription("List the fields of a file or the record store with their inferred kinds and roles."),
		mcp.WithString("file_path", mcp.Description("CSV or XLSX file to inspect (defaults to the record store).")),
	), h.handleDiscoverSchema)

	// --- 3. Tool: list_categories ---
	s.AddTool(mcp.NewTool("list_categories",
		mcp.WithDescription("List the category filter values available in a file or the record store."),
		mcp.WithString("file_path", mcp.Description("CSV or XLSX file to inspect (defaults to the record store).")),
	), h.handleListCategories)

	return s
}

// StartMCPServer starts the reportboard MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}

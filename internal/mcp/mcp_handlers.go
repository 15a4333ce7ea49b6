package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/reportboard/core"
	"github.com/huangsam/reportboard/internal/contract"
	"github.com/huangsam/reportboard/internal/datastore"
	"github.com/huangsam/reportboard/internal/sheet"
	"github.com/huangsam/reportboard/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

func (h *toolHandler) handleGetReport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if m := request.GetString("import_mode", ""); m != "" {
		cfg.ImportMode = schema.ImportMode(m)
		if _, ok := schema.ValidImportModes[cfg.ImportMode]; !ok {
			return mcp.NewToolResultError(fmt.Sprintf("invalid import_mode %q", m)), nil
		}
	}

	req, err := reportRequest(request, cfg, time.Now())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid report parameters: %v", err)), nil
	}

	session, err := h.loadSession(ctx, request, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("loading records failed: %v", err)), nil
	}

	report, err := core.BuildReport(session, req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("report failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleDiscoverSchema(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	session, err := h.loadSession(ctx, request, h.baseCfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("loading records failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(session.Summary(), "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListCategories(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	session, err := h.loadSession(ctx, request, h.baseCfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("loading records failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(session.Categories(), "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

// loadSession imports file_path when given, otherwise every stored row.
func (h *toolHandler) loadSession(ctx context.Context, request mcp.CallToolRequest, cfg *contract.Config) (*core.Session, error) {
	if path := request.GetString("file_path", ""); path != "" {
		return sheet.ImportFile(path, cfg.NormalizeOptions())
	}
	if h.mgr == nil {
		return nil, fmt.Errorf("no record store configured")
	}
	store := h.mgr.GetRecordStore()
	if store == nil {
		return nil, fmt.Errorf("no record store configured")
	}
	return datastore.LoadSession(ctx, store, string(cfg.Backend))
}

// reportRequest validates the view arguments the same way the CLI flags are validated.
func reportRequest(request mcp.CallToolRequest, cfg *contract.Config, now time.Time) (core.ReportRequest, error) {
	req := cfg.Request()
	if c := request.GetString("category", ""); c != "" {
		req.Category = c
	}
	if p := request.GetInt("page", 0); p != 0 {
		if p < 1 {
			return req, fmt.Errorf("page must be at least 1")
		}
		req.Page = p
	}
	if ps := request.GetInt("page_size", 0); ps != 0 {
		if ps < 1 || ps > contract.MaxPageSize {
			return req, fmt.Errorf("page_size must be between 1 and %d", contract.MaxPageSize)
		}
		req.PageSize = ps
	}

	start, end := request.GetString("start", ""), request.GetString("end", "")
	if start == "" && end == "" {
		return req, nil
	}
	if start == "" || end == "" {
		return req, core.ErrMissingDateRange
	}
	var err error
	if req.Start, err = contract.ParseDayInput(start, now); err != nil {
		return req, fmt.Errorf("start: %w", err)
	}
	if req.End, err = contract.ParseDayInput(end, now); err != nil {
		return req, fmt.Errorf("end: %w", err)
	}
	return req, nil
}

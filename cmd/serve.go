package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/huangsam/reportboard/internal/contract"
	"github.com/huangsam/reportboard/internal/server"
	"github.com/spf13/cobra"
)

// serveCmd runs the HTTP API.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve reports, imports and exports over HTTP.",
	Long: `Start the HTTP API used by the dashboard.

Endpoints (under /api):
  GET    /health          liveness check
  GET    /fetch-data-a    every stored request log
  POST   /import          upload a CSV/XLSX file (multipart field "file")
  DELETE /import          forget the uploaded file
  GET    /report          metrics, comparison and a page of records
  GET    /export          download matched records (format=xlsx|parquet|csv)
  GET    /chart           daily request volume as PNG
  GET    /schema          discovered fields and skipped rows

Reports use the uploaded file when there is one, otherwise the record store.
Stop the server with Ctrl+C; in-flight requests are allowed to finish.

Examples:
  # Serve the default SQLite store on :3001
  reportboard serve

  # Serve PostgreSQL to a single front-end origin
  reportboard serve --backend postgresql --db-connect "host=localhost dbname=logs" \
    --cors-origins http://localhost:5173`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runServe(rootCtx); err != nil {
			contract.LogFatal("Server stopped", err)
		}
	},
}

func runServe(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(storeManager.GetRecordStore(), server.Options{
		ImportMode:  cfg.ImportMode,
		Required:    cfg.Required,
		CORSOrigins: cfg.CORSOrigins,
		StoreLabel:  string(cfg.Backend),
		LogRequests: true,
	})
	_, _ = fmt.Fprintf(os.Stderr, "🚀 Serving on %s (backend: %s)\n", cfg.Listen, cfg.Backend)
	return srv.ListenAndServe(ctx, cfg.Listen)
}

package server

import (
	"bytes"
	"context"
	"errors"
	"net/http"

	"github.com/huangsam/reportboard/core"
	"github.com/huangsam/reportboard/internal/chart"
	"github.com/huangsam/reportboard/internal/datastore"
	"github.com/huangsam/reportboard/internal/export"
	"github.com/huangsam/reportboard/internal/sheet"
	"github.com/huangsam/reportboard/schema"
)

// handleHealth reports liveness.
// GET /api/health
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleFetchData returns the raw stored rows.
// GET /api/fetch-data-a
func (s *Server) handleFetchData(w http.ResponseWriter, r *http.Request) {
	_, rows, err := s.store.ListRows(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch data: "+err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"data": rows})
}

// handleImport parses an uploaded CSV or XLSX file and makes it the active session.
// POST /api/import?mode=&required=
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	opts, err := s.parseImportOptions(r)
	if err != nil {
		respondErr(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, http.StatusRequestEntityTooLarge, "File exceeds the upload limit")
			return
		}
		respondErr(w, ErrMissingFile)
		return
	}
	defer func() { _ = file.Close() }()

	table, err := sheet.Read(header.Filename, file)
	if err != nil {
		respondErr(w, err)
		return
	}
	session, err := core.Import(schema.ImportSource, header.Filename, table.Headers, table.Rows, opts)
	if err != nil {
		respondErr(w, err)
		return
	}

	s.setImported(session)
	respondJSON(w, http.StatusOK, session.Summary())
}

// handleResetImport drops the imported session so the store is served again.
// DELETE /api/import
func (s *Server) handleResetImport(w http.ResponseWriter, _ *http.Request) {
	s.setImported(nil)
	respondJSON(w, http.StatusOK, map[string]string{"source": string(schema.StoreSource)})
}

// handleReport returns metrics, comparison and a page of matched records.
// GET /api/report?start=&end=&category=&page=&page_size=&source=
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	p, session, ok := s.resolve(w, r)
	if !ok {
		return
	}
	report, err := core.BuildReport(session, p.req)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// handleExport downloads every matched record.
// GET /api/export?format=xlsx|parquet|csv&start=&end=&category=&source=
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	mode := schema.OutputMode(r.URL.Query().Get("format"))
	if mode == "" {
		mode = schema.XLSXOut
	}
	if !export.IsSupported(mode) {
		respondErr(w, export.ErrUnsupportedFormat)
		return
	}

	view, ok := s.view(w, r)
	if !ok {
		return
	}
	metrics, _, _ := view.Metrics()
	ds := export.Dataset{Fields: view.Fields(), Records: view.Matched(), Metrics: metrics}

	var buf bytes.Buffer
	if err := export.Write(&buf, mode, ds); err != nil {
		respondErr(w, err)
		return
	}
	respondFile(w, export.FileName(mode), export.ContentType(mode), buf.Bytes())
}

// handleChart renders the daily request volume of the matched records.
// GET /api/chart?start=&end=&category=&source=
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	view, ok := s.view(w, r)
	if !ok {
		return
	}

	if err := chart.CheckWindow(view.Window()); err != nil {
		respondErr(w, err)
		return
	}

	var buf bytes.Buffer
	if err := chart.DailyVolume(&buf, view.DailyCounts(), chart.Options{}); err != nil {
		respondErr(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// handleSchema returns the field descriptors and roles of the active source.
// GET /api/schema?source=
func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	_, session, ok := s.resolve(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, session.Summary())
}

// resolve parses the view parameters and loads the session they name.
// It reports the failure itself and returns false when either step fails.
func (s *Server) resolve(w http.ResponseWriter, r *http.Request) (viewParams, *core.Session, bool) {
	p, err := s.parseView(r)
	if err != nil {
		respondErr(w, err)
		return p, nil, false
	}
	session, err := s.session(r.Context(), p.source)
	if err != nil {
		respondErr(w, err)
		return p, nil, false
	}
	return p, session, true
}

// view resolves the session and applies the requested filter.
func (s *Server) view(w http.ResponseWriter, r *http.Request) (*core.Session, bool) {
	p, session, ok := s.resolve(w, r)
	if !ok {
		return nil, false
	}
	view, err := core.Apply(session, p.req)
	if err != nil {
		respondErr(w, err)
		return nil, false
	}
	return view, true
}

// session returns the session for source. An empty source prefers the
// imported file and falls back to the store.
func (s *Server) session(ctx context.Context, source string) (*core.Session, error) {
	switch schema.SourceKind(source) {
	case "":
		if imported := s.Imported(); imported != nil {
			return imported, nil
		}
		return datastore.LoadSession(ctx, s.store, s.opts.StoreLabel)
	case schema.ImportSource:
		if imported := s.Imported(); imported != nil {
			return imported, nil
		}
		return nil, ErrNoImport
	case schema.StoreSource:
		return datastore.LoadSession(ctx, s.store, s.opts.StoreLabel)
	default:
		return nil, ErrUnknownSource
	}
}

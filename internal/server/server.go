// Package server is the HTTP boundary of reportboard. It holds the session of
// the last imported file and otherwise serves reports over the record store.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/huangsam/reportboard/core"
	"github.com/huangsam/reportboard/internal/contract"
	"github.com/huangsam/reportboard/schema"
)

// DefaultMaxUploadBytes caps the size of an imported file.
const DefaultMaxUploadBytes = 32 << 20

// Options configures a Server.
type Options struct {
	ImportMode     schema.ImportMode // Default when the import request names none
	Required       []string          // Default strict-mode required keys
	CORSOrigins    []string
	MaxUploadBytes int64
	StoreLabel     string // Source label of store-backed sessions
	LogRequests    bool
	Now            func() time.Time // Reference time for relative dates
}

// Server serves the report API. The imported session is replaced as a whole
// under mu, so a failed import never disturbs the one being served.
type Server struct {
	store contract.RecordStore
	opts  Options

	mu       sync.RWMutex
	imported *core.Session // Nil when serving the record store

	router chi.Router
}

// New creates a server over store.
func New(store contract.RecordStore, opts Options) *Server {
	if opts.ImportMode == "" {
		opts.ImportMode = schema.LenientImport
	}
	if opts.Required == nil {
		opts.Required = core.DefaultRequiredKeys
	}
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if opts.StoreLabel == "" {
		opts.StoreLabel = string(schema.StoreSource)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &Server{store: store, opts: opts}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler of the API.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if s.opts.LogRequests {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.opts.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/fetch-data-a", s.handleFetchData)
		r.Post("/import", s.handleImport)
		r.Delete("/import", s.handleResetImport)
		r.Get("/report", s.handleReport)
		r.Get("/export", s.handleExport)
		r.Get("/chart", s.handleChart)
		r.Get("/schema", s.handleSchema)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// Imported returns the session of the last successful import, or nil.
func (s *Server) Imported() *core.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.imported
}

func (s *Server) setImported(session *core.Session) {
	s.mu.Lock()
	s.imported = session
	s.mu.Unlock()
}

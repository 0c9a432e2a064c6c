// Package api exposes the mind map engine over HTTP.
//
// The server offers document CRUD backed by a [store.Store], layout
// computation with optional caching, viewport virtualization, and
// artifact rendering. All request and response bodies are JSON except
// rendered artifacts, which are returned with their native content type.
package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/mindgrid/pkg/cache"
	"github.com/matzehuels/mindgrid/pkg/store"
)

// Server wires the HTTP routes to a document store and a layout cache.
type Server struct {
	store  store.Store
	cache  cache.Cache
	keyer  cache.Keyer
	logger *log.Logger
}

// NewServer creates a server. A nil cache disables layout caching (a
// NullCache is substituted), and a nil logger discards log output.
func NewServer(st store.Store, c cache.Cache, logger *log.Logger) *Server {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Server{
		store:  store.Instrument(st),
		cache:  c,
		keyer:  cache.NewDefaultKeyer(),
		logger: logger,
	}
}

// Router builds the chi route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/documents", s.handleListDocuments)
		r.Post("/documents", s.handleCreateDocument)
		r.Get("/documents/{id}", s.handleGetDocument)
		r.Put("/documents/{id}", s.handleUpdateDocument)
		r.Delete("/documents/{id}", s.handleDeleteDocument)
		r.Post("/documents/{id}/layout", s.handleDocumentLayout)
		r.Get("/documents/{id}/render", s.handleDocumentRender)
		r.Post("/layout", s.handleLayout)
		r.Post("/virtualize", s.handleVirtualize)
	})

	return r
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("http server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errChan:
		return err
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

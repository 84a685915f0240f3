// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the library and the discovery pipeline over a
// JSON HTTP API.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/pdiddy/mcp-explorer/internal/discover"
	"github.com/pdiddy/mcp-explorer/internal/library"
	"github.com/pdiddy/mcp-explorer/internal/logger"
	"github.com/pdiddy/mcp-explorer/internal/mcpdoc"
	"github.com/pdiddy/mcp-explorer/pkg/types"
)

// Searcher is the part of the discovery aggregator the API needs. Tests
// substitute a fake.
type Searcher interface {
	SearchOptions(ctx context.Context, query string, opts discover.Options) ([]types.Result, error)
	SourceNames() []string
}

// Server routes API requests to the library store and the discovery
// aggregator.
type Server struct {
	router    chi.Router
	store     *library.Store
	agg       Searcher
	validator *mcpdoc.Validator
	cfg       types.ServerConfig
}

// New wires the router. agg may be nil, which disables /mcps/search.
func New(cfg types.ServerConfig, store *library.Store, agg Searcher) *Server {
	s := &Server{store: store, agg: agg, validator: mcpdoc.NewValidator(), cfg: cfg}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	r.Use(middleware.Timeout(timeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", s.handleHealth)
	r.Route("/mcps", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Post("/", s.handleCreate)
		r.Get("/search", s.handleDiscoverSearch)
		r.Get("/export.csv", s.handleExportCSV)
		r.Get("/{id}", s.handleGet)
		r.Delete("/{id}", s.handleDelete)
		r.Post("/{id}/share", s.handleShare)
	})
	r.Get("/shared/{token}", s.handleShared)
	r.Post("/agent/simulate", s.handleSimulate)

	s.router = r
	return s
}

func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe blocks until the context is canceled, then shuts the
// server down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	addr := s.cfg.Addr
	if addr == "" {
		addr = ":8000"
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Warn("listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("encoding response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorResponse{Error: msg})
}

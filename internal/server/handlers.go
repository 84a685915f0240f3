// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/pdiddy/mcp-explorer/internal/agent"
	"github.com/pdiddy/mcp-explorer/internal/discover"
	"github.com/pdiddy/mcp-explorer/internal/library"
	"github.com/pdiddy/mcp-explorer/internal/logger"
	"github.com/pdiddy/mcp-explorer/pkg/types"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	count, err := s.store.Count(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"status":     "healthy",
		"mcps_count": count,
		"sources":    s.sourceNames(),
	})
}

func (s *Server) sourceNames() []string {
	if s.agg == nil {
		return nil
	}
	return s.agg.SourceNames()
}

// handleList supports domain, platform, validated, sort, and limit query
// parameters. A search over stored entries goes through ?q=.
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	if text := strings.TrimSpace(q.Get("q")); text != "" {
		entries, err := s.store.Search(ctx, text, queryInt(q.Get("limit"), 0))
		if err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, entriesOrEmpty(entries))
		return
	}

	opts := library.ListOptions{
		Domain:   q.Get("domain"),
		Platform: q.Get("platform"),
		SortBy:   q.Get("sort"),
		Limit:    queryInt(q.Get("limit"), 0),
	}
	if v := q.Get("validated"); v != "" {
		validated := v == "true" || v == "1"
		opts.Validated = &validated
	}

	entries, err := s.store.List(ctx, opts)
	if err != nil {
		if strings.Contains(err.Error(), "unknown sort") {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, entriesOrEmpty(entries))
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	entry, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, library.ErrNotFound) {
		respondError(w, http.StatusNotFound, "mcp not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	// Viewing an entry counts toward its popularity.
	if err := s.store.IncrementPopularity(r.Context(), entry.ID); err == nil {
		entry.Popularity++
	}
	respondJSON(w, http.StatusOK, entry)
}

// handleCreate accepts an entry whose schema must pass at least the
// relaxed shape contract.
func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var entry types.Entry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if entry.Schema != nil {
		if err := s.validator.ValidateRelaxed(entry.Schema); err != nil {
			respondError(w, http.StatusUnprocessableEntity, "schema rejected: "+err.Error())
			return
		}
		entry.Validated = s.validator.Validate(entry.Schema) == nil
	}

	stored, err := s.store.Put(r.Context(), entry)
	if err != nil {
		if strings.Contains(err.Error(), "name is empty") {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, stored)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	err := s.store.Delete(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, library.ErrNotFound) {
		respondError(w, http.StatusNotFound, "mcp not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleDiscoverSearch runs the live discovery pipeline. The sources and
// min_confidence parameters narrow one search below the server's
// configuration; with save=true the results are also imported into the
// library.
func (s *Server) handleDiscoverSearch(w http.ResponseWriter, r *http.Request) {
	if s.agg == nil {
		respondError(w, http.StatusServiceUnavailable, "discovery is not configured")
		return
	}
	q := r.URL.Query()
	query := strings.TrimSpace(q.Get("q"))
	if query == "" {
		respondError(w, http.StatusBadRequest, "missing query parameter q")
		return
	}

	opts := discover.Options{Limit: queryInt(q.Get("limit"), 0)}
	if raw := q.Get("sources"); raw != "" {
		opts.Sources = strings.Split(raw, ",")
	}
	if raw := q.Get("min_confidence"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 || v > 1 {
			respondError(w, http.StatusBadRequest, "min_confidence must be a number in [0, 1]")
			return
		}
		opts.MinConfidence = &v
	}

	results, err := s.agg.SearchOptions(r.Context(), query, opts)
	if err != nil {
		if strings.Contains(err.Error(), "unknown source") {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}

	imported := 0
	if q.Get("save") == "true" {
		imported, err = s.store.ImportResults(r.Context(), results)
		if err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	if results == nil {
		results = []types.Result{}
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"query":    query,
		"results":  results,
		"imported": imported,
	})
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="mcps.csv"`)
	if err := s.store.ExportCSV(r.Context(), w); err != nil {
		// Headers are already out; all we can do is log.
		logger.Warn("csv export failed: %v", err)
	}
}

func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	token, err := s.store.CreateShare(r.Context(), id)
	if errors.Is(err, library.ErrNotFound) {
		respondError(w, http.StatusNotFound, "mcp not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{
		"token": token,
		"url":   "/shared/" + token,
	})
}

func (s *Server) handleShared(w http.ResponseWriter, r *http.Request) {
	entry, err := s.store.ResolveShare(r.Context(), chi.URLParam(r, "token"))
	if errors.Is(err, library.ErrNotFound) {
		respondError(w, http.StatusNotFound, "share link not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, entry)
}

type simulateRequest struct {
	MCPID  string `json:"mcp_id"`
	Prompt string `json:"prompt"`
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req simulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if req.MCPID == "" || strings.TrimSpace(req.Prompt) == "" {
		respondError(w, http.StatusBadRequest, "mcp_id and prompt are required")
		return
	}

	entry, err := s.store.Get(r.Context(), req.MCPID)
	if errors.Is(err, library.ErrNotFound) {
		respondError(w, http.StatusNotFound, "mcp not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	transcript, err := agent.Simulate(entry, req.Prompt)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, transcript)
}

func queryInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

func entriesOrEmpty(entries []types.Entry) []types.Entry {
	if entries == nil {
		return []types.Entry{}
	}
	return entries
}

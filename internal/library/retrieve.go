// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package library

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/mcp-explorer/pkg/types"
)

const selectColumns = `SELECT id, name, description, schema_content, tags,
	domain, validated, popularity, source_url, source_platform,
	confidence_score, file_type, repository, stars, created_at`

// ListOptions filter and order a library listing.
type ListOptions struct {
	Domain    string
	Platform  string
	Validated *bool
	// SortBy is one of "popularity" (default), "confidence", "name",
	// "created".
	SortBy string
	Limit  int
}

var sortColumns = map[string]string{
	"":           "popularity DESC, name ASC",
	"popularity": "popularity DESC, name ASC",
	"confidence": "confidence_score DESC, name ASC",
	"name":       "name ASC",
	"created":    "created_at DESC",
}

// List returns entries matching the options, ordered per SortBy.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]types.Entry, error) {
	order, ok := sortColumns[opts.SortBy]
	if !ok {
		return nil, fmt.Errorf("unknown sort %q", opts.SortBy)
	}

	var where []string
	var args []any
	if opts.Domain != "" {
		where = append(where, "domain = ?")
		args = append(args, opts.Domain)
	}
	if opts.Platform != "" {
		where = append(where, "source_platform = ?")
		args = append(args, opts.Platform)
	}
	if opts.Validated != nil {
		where = append(where, "validated = ?")
		args = append(args, *opts.Validated)
	}

	q := selectColumns + " FROM mcps"
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY " + order
	if opts.Limit > 0 {
		q += fmt.Sprintf(" LIMIT %d", opts.Limit)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// Search matches the query against names, descriptions, and tags.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]types.Entry, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("query is empty")
	}
	pattern := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	q := selectColumns + ` FROM mcps
		WHERE lower(name) LIKE ? OR lower(description) LIKE ? OR lower(tags) LIKE ?
		ORDER BY popularity DESC, confidence_score DESC`
	if limit > 0 {
		q += fmt.Sprintf(" LIMIT %d", limit)
	}
	rows, err := s.db.QueryContext(ctx, q, pattern, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("searching library: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// CreateShare mints a share token for an entry.
func (s *Store) CreateShare(ctx context.Context, id string) (string, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return "", err
	}
	token := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO share_links (token, mcp_id, created_at) VALUES (?, ?, ?)`,
		token, id, nowFunc().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return "", fmt.Errorf("creating share link for %s: %w", id, err)
	}
	return token, nil
}

// ResolveShare returns the entry a share token points at.
func (s *Store) ResolveShare(ctx context.Context, token string) (types.Entry, error) {
	var id string
	err := s.db.QueryRowContext(ctx,
		`SELECT mcp_id FROM share_links WHERE token = ?`, token).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Entry{}, ErrNotFound
	}
	if err != nil {
		return types.Entry{}, fmt.Errorf("resolving share token: %w", err)
	}
	return s.Get(ctx, id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (types.Entry, error) {
	var e types.Entry
	var desc, schemaText, tagsText, domain, sourceURL, repo sql.NullString
	var stars sql.NullInt64
	var createdAt string
	err := row.Scan(&e.ID, &e.Name, &desc, &schemaText, &tagsText, &domain,
		&e.Validated, &e.Popularity, &sourceURL, &e.SourcePlatform,
		&e.ConfidenceScore, &e.FileType, &repo, &stars, &createdAt)
	if err != nil {
		return types.Entry{}, err
	}
	e.Description = desc.String
	e.Domain = domain.String
	e.SourceURL = sourceURL.String
	e.Repository = repo.String
	if stars.Valid {
		// NULL means the platform never reported a count; 0 is a real count.
		n := int(stars.Int64)
		e.Stars = &n
	}
	if schemaText.String != "" {
		if err := json.Unmarshal([]byte(schemaText.String), &e.Schema); err != nil {
			return types.Entry{}, fmt.Errorf("decoding schema of %s: %w", e.ID, err)
		}
	}
	if tagsText.String != "" {
		if err := json.Unmarshal([]byte(tagsText.String), &e.Tags); err != nil {
			return types.Entry{}, fmt.Errorf("decoding tags of %s: %w", e.ID, err)
		}
	}
	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		e.CreatedAt = t
	}
	return e, nil
}

func scanEntries(rows *sql.Rows) ([]types.Entry, error) {
	var entries []types.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

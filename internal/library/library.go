// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package library persists curated MCP entries in a local SQLite database
// and serves reads for the API layer.
package library

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/mcp-explorer/pkg/types"
)

// ErrNotFound is returned when no entry or share link matches.
var ErrNotFound = errors.New("not found")

// nowFunc is swapped out in tests.
var nowFunc = time.Now

const schema = `
CREATE TABLE IF NOT EXISTS mcps (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT,
	schema_content TEXT,
	tags TEXT,
	domain TEXT,
	validated INTEGER NOT NULL DEFAULT 0,
	popularity INTEGER NOT NULL DEFAULT 0,
	source_url TEXT,
	source_platform TEXT NOT NULL DEFAULT 'local',
	confidence_score REAL NOT NULL DEFAULT 0.0,
	file_type TEXT NOT NULL DEFAULT 'json',
	repository TEXT,
	stars INTEGER,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_mcps_domain ON mcps(domain);
CREATE INDEX IF NOT EXISTS idx_mcps_popularity ON mcps(popularity DESC);
CREATE TABLE IF NOT EXISTS share_links (
	token TEXT PRIMARY KEY,
	mcp_id TEXT NOT NULL,
	created_at TEXT NOT NULL
);
`

// Store is the MCP library backed by SQLite.
type Store struct {
	db *sql.DB
}

// New opens (creating if needed) the library database under cfg.Dir.
func New(cfg types.LibraryConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = "data"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating library dir: %w", err)
	}
	path := filepath.Join(dir, "library.db")
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening library db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing library schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Put inserts or replaces an entry. A missing ID is generated from the
// source platform.
func (s *Store) Put(ctx context.Context, e types.Entry) (types.Entry, error) {
	if strings.TrimSpace(e.Name) == "" {
		return types.Entry{}, fmt.Errorf("entry name is empty")
	}
	if e.ID == "" {
		e.ID = newEntryID(e.SourcePlatform)
	}
	if e.SourcePlatform == "" {
		e.SourcePlatform = "local"
	}
	if e.FileType == "" {
		e.FileType = types.FileTypeJSON
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = nowFunc().UTC()
	}

	schemaText, err := marshalSchema(e.Schema)
	if err != nil {
		return types.Entry{}, err
	}
	tagsText, err := json.Marshal(e.Tags)
	if err != nil {
		return types.Entry{}, fmt.Errorf("encoding tags: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO mcps (id, name, description, schema_content, tags, domain,
			validated, popularity, source_url, source_platform,
			confidence_score, file_type, repository, stars, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			schema_content = excluded.schema_content,
			tags = excluded.tags,
			domain = excluded.domain,
			validated = excluded.validated,
			popularity = excluded.popularity,
			source_url = excluded.source_url,
			source_platform = excluded.source_platform,
			confidence_score = excluded.confidence_score,
			file_type = excluded.file_type,
			repository = excluded.repository,
			stars = excluded.stars`,
		e.ID, e.Name, e.Description, schemaText, string(tagsText), e.Domain,
		e.Validated, e.Popularity, e.SourceURL, e.SourcePlatform,
		e.ConfidenceScore, e.FileType, e.Repository, starsValue(e.Stars),
		e.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return types.Entry{}, fmt.Errorf("storing entry %s: %w", e.ID, err)
	}
	return e, nil
}

// ImportResults stores discovery results as library entries, skipping ones
// whose (name, source URL) pair is already present. It reports how many
// were imported.
func (s *Store) ImportResults(ctx context.Context, results []types.Result) (int, error) {
	imported := 0
	for _, r := range results {
		var exists int
		err := s.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM mcps WHERE lower(name) = lower(?) AND source_url = ?`,
			r.Name, r.SourceURL).Scan(&exists)
		if err != nil {
			return imported, fmt.Errorf("checking for duplicate of %s: %w", r.Name, err)
		}
		if exists > 0 {
			continue
		}
		if _, err := s.Put(ctx, types.Entry{Result: r}); err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}

// Get returns the entry with the given id, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (types.Entry, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` FROM mcps WHERE id = ?`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Entry{}, ErrNotFound
	}
	return e, err
}

// Delete removes the entry and its share links. Deleting a missing id
// returns ErrNotFound.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM mcps WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting entry %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	_, err = s.db.ExecContext(ctx, `DELETE FROM share_links WHERE mcp_id = ?`, id)
	return err
}

// IncrementPopularity bumps an entry's popularity counter by one.
func (s *Store) IncrementPopularity(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE mcps SET popularity = popularity + 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("bumping popularity of %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of stored entries.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM mcps`).Scan(&n)
	return n, err
}

func newEntryID(platform string) string {
	if platform == "" {
		platform = "local"
	}
	return platform + "-" + strings.Split(uuid.NewString(), "-")[0]
}

func marshalSchema(schema map[string]any) (string, error) {
	if schema == nil {
		return "", nil
	}
	b, err := json.Marshal(schema)
	if err != nil {
		return "", fmt.Errorf("encoding schema: %w", err)
	}
	return string(b), nil
}

// starsValue maps a missing star count to NULL so that a known zero count
// survives a round-trip.
func starsValue(stars *int) any {
	if stars == nil {
		return nil
	}
	return *stars
}

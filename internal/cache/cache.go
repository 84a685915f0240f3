// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache persists ranked search results keyed by a query signature,
// with TTL expiry. Entries are stored as JSON snapshots, so a cached result
// list shares no mutable state with the live objects it was computed from.
package cache

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/mcp-explorer/pkg/types"
)

const (
	dbFile     = "search_cache.db"
	defaultTTL = time.Hour
)

// now is replaced by tests to exercise expiry without sleeping.
var now = time.Now

// Store is a SQLite-backed TTL cache for ranked search results. Expiry is
// lazy: stale rows are deleted on the read that observes them, there is no
// background sweep.
type Store struct {
	db  *sql.DB
	ttl time.Duration
}

// New opens or creates the cache database under cfg.Dir.
func New(cfg types.CacheConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = "data"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	db, err := sql.Open("sqlite3", filepath.Join(dir, dbFile)+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}

	s := &Store{db: db, ttl: ttl}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS search_cache (
		key        TEXT PRIMARY KEY,
		results    TEXT NOT NULL,
		created_at TEXT NOT NULL,
		expires_at TEXT NOT NULL
	)`)
	return err
}

// Key computes the deterministic signature for one search: normalized query
// text, limit, the sorted enabled-sources set, and the minimum-confidence
// threshold. Two searches with the same signature are interchangeable.
func Key(query string, limit int, sources []string, minConfidence float64) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(query)), " ")

	sorted := append([]string(nil), sources...)
	sort.Strings(sorted)

	payload := fmt.Sprintf("%s|%d|%s|%.3f", normalized, limit, strings.Join(sorted, ","), minConfidence)
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}

// Get returns the cached result list for key, or ok=false when the key is
// absent or expired. An expired row is deleted on the way out.
func (s *Store) Get(ctx context.Context, key string) ([]types.Result, bool, error) {
	var payload, expiresAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT results, expires_at FROM search_cache WHERE key = ?`, key,
	).Scan(&payload, &expiresAt)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading cache entry: %w", err)
	}

	expiry, err := time.Parse(time.RFC3339Nano, expiresAt)
	if err != nil || now().After(expiry) {
		// Lazy eviction; a corrupt timestamp counts as expired.
		if _, delErr := s.db.ExecContext(ctx, `DELETE FROM search_cache WHERE key = ?`, key); delErr != nil {
			return nil, false, fmt.Errorf("evicting expired entry: %w", delErr)
		}
		return nil, false, nil
	}

	var results []types.Result
	if err := json.Unmarshal([]byte(payload), &results); err != nil {
		return nil, false, fmt.Errorf("decoding cache entry: %w", err)
	}
	return results, true, nil
}

// Put stores results under key with the configured TTL. Last writer wins;
// results are idempotently re-derivable, so concurrent puts on one key need
// no coordination beyond that.
func (s *Store) Put(ctx context.Context, key string, results []types.Result) error {
	payload, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}

	created := now().UTC()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO search_cache (key, results, created_at, expires_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET
			results=excluded.results, created_at=excluded.created_at, expires_at=excluded.expires_at`,
		key, string(payload),
		created.Format(time.RFC3339Nano),
		created.Add(s.ttl).Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	return nil
}

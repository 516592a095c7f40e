// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache persists search results in a SQLite database so repeated
// queries are answered without calling the provider APIs again.
package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/people-engine/pkg/types"
)

// ErrMiss is returned by Get when no fresh entry exists for a key.
var ErrMiss = errors.New("cache miss")

// Store manages the result cache SQLite database.
type Store struct {
	db  *sql.DB
	ttl time.Duration

	timeNow func() time.Time
}

// Stats holds cache occupancy counts.
type Stats struct {
	Entries int
	Expired int
}

// NewStore opens or creates the cache database at cfg.Path. Entries older
// than cfg.TTL are treated as absent; a TTL of zero disables expiry.
func NewStore(cfg types.CacheConfig) (*Store, error) {
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	s := &Store{db: db, ttl: cfg.TTL, timeNow: time.Now}
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
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS searches (
		key TEXT PRIMARY KEY,
		response TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Key builds the cache key for a query. Two queries share an entry only
// when every parameter that affects the response matches.
func Key(name, company string, limit int, useFallback bool) string {
	return strings.Join([]string{
		name, company, strconv.Itoa(limit), strconv.FormatBool(useFallback),
	}, "|")
}

// Get returns the cached result for key, or ErrMiss when the entry is
// absent or older than the TTL.
func (s *Store) Get(ctx context.Context, key string) (types.SearchResult, error) {
	var response, createdAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT response, created_at FROM searches WHERE key = ?`, key,
	).Scan(&response, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return types.SearchResult{}, ErrMiss
	}
	if err != nil {
		return types.SearchResult{}, fmt.Errorf("reading cache entry: %w", err)
	}

	if s.ttl > 0 {
		created, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil || s.timeNow().Sub(created) > s.ttl {
			return types.SearchResult{}, ErrMiss
		}
	}

	var res types.SearchResult
	if err := json.Unmarshal([]byte(response), &res); err != nil {
		// A corrupt entry behaves like a miss so the caller re-queries.
		return types.SearchResult{}, ErrMiss
	}
	return res, nil
}

// Put stores a result under key, replacing any existing entry.
func (s *Store) Put(ctx context.Context, key string, res types.SearchResult) error {
	data, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("marshaling cache entry: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO searches (key, response, created_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET
			response=excluded.response, created_at=excluded.created_at`,
		key, string(data), s.timeNow().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	return nil
}

// Purge removes every entry and returns the number deleted.
func (s *Store) Purge(ctx context.Context) (int, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM searches`)
	if err != nil {
		return 0, fmt.Errorf("purging cache: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting purged entries: %w", err)
	}
	return int(n), nil
}

// Stats reports how many entries the cache holds and how many of them
// have already expired.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	if err := s.db.QueryRowContext(ctx,
		`SELECT count(*) FROM searches`,
	).Scan(&stats.Entries); err != nil {
		return Stats{}, fmt.Errorf("counting cache entries: %w", err)
	}

	if s.ttl > 0 {
		cutoff := s.timeNow().Add(-s.ttl).UTC().Format(time.RFC3339Nano)
		if err := s.db.QueryRowContext(ctx,
			`SELECT count(*) FROM searches WHERE created_at < ?`, cutoff,
		).Scan(&stats.Expired); err != nil {
			return Stats{}, fmt.Errorf("counting expired entries: %w", err)
		}
	}
	return stats, nil
}

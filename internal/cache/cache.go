// Package cache keeps finished outline results in SQLite, keyed by the
// digest the batch processor computes for each document.
package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/thywilljoshua/pdf-outline/internal/outline"
)

// Store wraps an SQLite database of results.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and runs migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	// Batch workers share the store; writes go through one connection.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open cache: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate cache: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS outlines (
    digest      TEXT PRIMARY KEY,
    result      TEXT NOT NULL,
    created_at  TEXT NOT NULL
);`
	_, err := s.db.Exec(ddl)
	return err
}

// Get returns the stored result for key. ok is false when nothing is stored.
func (s *Store) Get(ctx context.Context, key string) (outline.Result, bool, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT result FROM outlines WHERE digest = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return outline.Result{}, false, nil
	}
	if err != nil {
		return outline.Result{}, false, fmt.Errorf("get %s: %w", key, err)
	}
	var res outline.Result
	if err := json.Unmarshal([]byte(raw), &res); err != nil {
		return outline.Result{}, false, fmt.Errorf("decode %s: %w", key, err)
	}
	if res.Outline == nil {
		res.Outline = []outline.Entry{}
	}
	return res, true, nil
}

// Put stores res under key, replacing any earlier entry.
func (s *Store) Put(ctx context.Context, key string, res outline.Result) error {
	if res.Outline == nil {
		res.Outline = []outline.Entry{}
	}
	raw, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO outlines (digest, result, created_at) VALUES (?, ?, ?)
		 ON CONFLICT(digest) DO UPDATE SET result = excluded.result, created_at = excluded.created_at`,
		key, string(raw), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

// Len returns the number of stored results.
func (s *Store) Len(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM outlines`).Scan(&n)
	return n, err
}

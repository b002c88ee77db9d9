// Package storage provides the SQLite-backed durable key/value store the
// persistence gateway writes the transaction collection into.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const getValueQuery = `SELECT value FROM kv WHERE key = ?`

const putValueQuery = `INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

type SQLiteStore struct {
	db   *sql.DB
	path string
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	version, err := migrateSchema(dbPath)
	if err != nil {
		db.Close()
		return nil, err
	}
	slog.Debug("SQLite schema ready", "path", dbPath, "version", version)

	return &SQLiteStore{db: db, path: dbPath}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Get returns the value stored under key. ok is false when the key is absent.
func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, getValueQuery, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %q: %w", key, err)
	}
	return value, true, nil
}

// Put replaces the value under key in a single statement.
func (s *SQLiteStore) Put(ctx context.Context, key string, value []byte) error {
	if _, err := s.db.ExecContext(ctx, putValueQuery, key, value); err != nil {
		return fmt.Errorf("put %q: %w", key, err)
	}

	slog.DebugContext(ctx, "Value written to SQLite", "key", key, "bytes", len(value), "path", s.path)
	return nil
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package store persists UI program snapshots in a SQLite database so that
// state survives the process being torn down between suspend and resume.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/gogpu/nativehost/internal/logging"
)

var (
	// ErrNotFound is returned by Load when no snapshot exists for a key.
	ErrNotFound = errors.New("store: snapshot not found")

	// ErrClosed is returned after Close.
	ErrClosed = errors.New("store: closed")
)

const schemaVersion = 1

const schema = `
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS snapshots (
    key      TEXT PRIMARY KEY,
    data     BLOB NOT NULL,
    saved_at INTEGER NOT NULL -- UnixNano
);
`

// SQLite is a snapshot store backed by a single database file.
type SQLite struct {
	db *sql.DB
}

// Open opens or creates the database at path.
func Open(path string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("store: create directory: %w", err)
	}

	dsn := path +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=busy_timeout(1000)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}
	// One connection: snapshots are written from the dispatch thread only.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: connect: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create schema: %w", err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	logging.L().Debug("store: opened", "path", path)
	return &SQLite{db: db}, nil
}

// migrate records the schema version. Snapshots from a different version
// are discarded since their encoding is owned by the program.
func migrate(db *sql.DB) error {
	var current int
	err := db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&current)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("store: read schema version: %w", err)
	}
	if current == schemaVersion {
		return nil
	}
	if current != 0 {
		logging.L().Info("store: schema changed, dropping snapshots", "from", current, "to", schemaVersion)
		if _, err := db.Exec("DELETE FROM snapshots"); err != nil {
			return fmt.Errorf("store: clear snapshots: %w", err)
		}
		if _, err := db.Exec("DELETE FROM schema_version"); err != nil {
			return fmt.Errorf("store: clear schema version: %w", err)
		}
	}
	if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("store: write schema version: %w", err)
	}
	return nil
}

// Save replaces the snapshot stored under key.
func (s *SQLite) Save(key string, data []byte) error {
	if s.db == nil {
		return ErrClosed
	}
	if data == nil {
		data = []byte{}
	}
	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO snapshots (key, data, saved_at) VALUES (?, ?, ?)",
		key, data, time.Now().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("store: save %q: %w", key, err)
	}
	return nil
}

// Load returns the snapshot stored under key, or ErrNotFound.
func (s *SQLite) Load(key string) ([]byte, error) {
	if s.db == nil {
		return nil, ErrClosed
	}
	var data []byte
	err := s.db.QueryRow("SELECT data FROM snapshots WHERE key = ?", key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: load %q: %w", key, err)
	}
	return data, nil
}

// SavedAt returns when the snapshot under key was last written.
func (s *SQLite) SavedAt(key string) (time.Time, error) {
	if s.db == nil {
		return time.Time{}, ErrClosed
	}
	var ns int64
	err := s.db.QueryRow("SELECT saved_at FROM snapshots WHERE key = ?", key).Scan(&ns)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, ErrNotFound
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("store: load %q: %w", key, err)
	}
	return time.Unix(0, ns), nil
}

// Delete removes the snapshot under key. Deleting a missing key is not an
// error.
func (s *SQLite) Delete(key string) error {
	if s.db == nil {
		return ErrClosed
	}
	if _, err := s.db.Exec("DELETE FROM snapshots WHERE key = ?", key); err != nil {
		return fmt.Errorf("store: delete %q: %w", key, err)
	}
	return nil
}

// Close closes the database. Further calls return ErrClosed.
func (s *SQLite) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

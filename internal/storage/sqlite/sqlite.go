// Package sqlite provides a SQLite-backed implementation of the
// storage.Backend interface using Go's standard database/sql package.
//
// Each collection is one row in the collections table; the data column
// holds the same pretty-printed JSON array the jsonfile backend writes to
// disk. SQLite gives us a single-file store with real write atomicity and
// no server process.
//
// The blank import below registers the sqlite3 driver with database/sql.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Xurramov-Ogabek/42-lesson-Homework/internal/config"
	"github.com/Xurramov-Ogabek/42-lesson-Homework/internal/storage"

	// Side-effect only: registers the "sqlite3" driver.
	_ "github.com/mattn/go-sqlite3"
)

// SQLite is the concrete storage.Backend.
// *sql.DB is a connection pool and safe for concurrent use.
type SQLite struct {
	Db *sql.DB
}

// New opens the SQLite database at cfg.Storage.Path, creates the
// collections table if it does not exist and seeds an empty array row for
// every listed collection that is missing.
func New(cfg *config.Config, collections ...string) (*SQLite, error) {
	if dir := filepath.Dir(cfg.Storage.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("sqlite.New: create dir: %w", err)
		}
	}

	// sql.Open only validates the DSN; the first real connection happens
	// on the first query.
	db, err := sql.Open("sqlite3", cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// Idempotent; safe on every startup.
	//
	// Schema:
	//   name : collection name ("users", "blogs")
	//   data : JSON array of records
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS collections (
			name TEXT PRIMARY KEY,
			data TEXT NOT NULL
		)
	`)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	for _, name := range collections {
		_, err := db.Exec(
			"INSERT OR IGNORE INTO collections (name, data) VALUES (?, ?)",
			name, "[]\n",
		)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("sqlite.New: seed %s: %w", name, err)
		}
	}

	return &SQLite{Db: db}, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Read fetches the stored document for one collection.
// A missing row means the collection was never created (or was removed by
// hand) and is reported as storage.ErrUnavailable.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) Read(name string) ([]byte, error) {
	stmt, err := s.Db.Prepare("SELECT data FROM collections WHERE name = ? LIMIT 1")
	if err != nil {
		return nil, fmt.Errorf("Read: prepare: %w: %v", storage.ErrUnavailable, err)
	}
	defer stmt.Close()

	var data string
	err = stmt.QueryRow(name).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("no collection named %q: %w", name, storage.ErrUnavailable)
		}
		return nil, fmt.Errorf("Read: scan: %w: %v", storage.ErrUnavailable, err)
	}

	return []byte(data), nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Write replaces the stored document for one collection in a single
// statement, inserting the row if it does not exist yet.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) Write(name string, data []byte) error {
	stmt, err := s.Db.Prepare(`
		INSERT INTO collections (name, data) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET data = excluded.data
	`)
	if err != nil {
		return fmt.Errorf("Write: prepare: %w: %v", storage.ErrUnavailable, err)
	}
	defer stmt.Close()

	if _, err := stmt.Exec(name, string(data)); err != nil {
		return fmt.Errorf("Write: exec: %w: %v", storage.ErrUnavailable, err)
	}

	return nil
}

// Close releases the connection pool.
func (s *SQLite) Close() error {
	return s.Db.Close()
}

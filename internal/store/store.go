// Package store is the SQLite-backed authoritative holder of chunks and
// dependency edges. All mutating operations run inside a single SQL
// transaction, so no partial-write state is observable to later calls.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Store owns the SQLite database for a chunk collection.
// The CLI is a single-user, synchronous front end and opens one Store per
// invocation; the busy_timeout pragma covers the stray second process.
type Store struct {
	path string
	sql  *sql.DB
	now  func() time.Time
}

// Open opens (creating if necessary) the chunk database at path.
// The parent directory is created if it does not exist. A zero schema
// version triggers schema creation; any other mismatch is an error
// rather than a silent migration.
func Open(ctx context.Context, path string) (*Store, error) {
	if ctx == nil {
		return nil, errors.New("open store: context is nil")
	}

	if path == "" {
		return nil, errors.New("open store: path is empty")
	}

	dbPath := filepath.Clean(path)

	err := os.MkdirAll(filepath.Dir(dbPath), 0o750)
	if err != nil {
		return nil, fmt.Errorf("open store: create directory: %w", err)
	}

	db, err := openSqlite(ctx, dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	version, err := storedSchemaVersion(ctx, db)
	if err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("open store: %w", err)
	}

	switch version {
	case currentSchemaVersion:
		// Schema already in place.
	case 0:
		err = createSchema(ctx, db)
		if err != nil {
			_ = db.Close()

			return nil, fmt.Errorf("open store: %w", err)
		}
	default:
		_ = db.Close()

		return nil, fmt.Errorf("open store: unsupported schema version %d (want %d)", version, currentSchemaVersion)
	}

	return &Store{path: dbPath, sql: db, now: time.Now}, nil
}

// Close releases the SQLite handle opened by Open.
func (s *Store) Close() error {
	if s == nil || s.sql == nil {
		return nil
	}

	err := s.sql.Close()
	if err != nil {
		return fmt.Errorf("close sqlite: %w", err)
	}

	return nil
}

// Path returns the database file path the store was opened with.
func (s *Store) Path() string {
	return s.path
}

// begin starts a write transaction after the usual open checks.
func (s *Store) begin(ctx context.Context) (*sql.Tx, error) {
	if ctx == nil {
		return nil, errors.New("begin: context is nil")
	}

	if s == nil || s.sql == nil {
		return nil, errors.New("begin: store is not open")
	}

	tx, err := s.sql.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}

	return tx, nil
}

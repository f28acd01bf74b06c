package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"chunklearn/internal/chunk"
)

const chunkColumns = "id, title, description, difficulty, status, created_at, completed_at"

// Get returns a single chunk by id.
// Returns [chunk.ErrNotFound] when no chunk has the given id.
func (s *Store) Get(ctx context.Context, id int64) (chunk.Chunk, error) {
	if ctx == nil {
		return chunk.Chunk{}, errors.New("get: context is nil")
	}

	if s == nil || s.sql == nil {
		return chunk.Chunk{}, errors.New("get: store is not open")
	}

	row := s.sql.QueryRowContext(ctx,
		"SELECT "+chunkColumns+" FROM chunks WHERE id = ?", id)

	c, err := scanChunk(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return chunk.Chunk{}, fmt.Errorf("get: chunk %d: %w", id, chunk.ErrNotFound)
		}

		return chunk.Chunk{}, fmt.Errorf("get: %w", err)
	}

	return c, nil
}

// List returns chunks in insertion order (id ascending).
// A nil opts lists everything.
func (s *Store) List(ctx context.Context, opts *QueryOptions) ([]chunk.Chunk, error) {
	if ctx == nil {
		return nil, errors.New("list: context is nil")
	}

	if s == nil || s.sql == nil {
		return nil, errors.New("list: store is not open")
	}

	options := QueryOptions{}
	if opts != nil {
		options = *opts
	}

	if options.Limit < 0 || options.Offset < 0 {
		return nil, errors.New("list: limit/offset must be non-negative")
	}

	if options.Status != "" && !chunk.IsValidStatus(options.Status) {
		return nil, fmt.Errorf("list: %q: %w", options.Status, chunk.ErrInvalidStatus)
	}

	var (
		conditions []string
		args       []any
	)

	if options.Status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, options.Status)
	}

	query := "SELECT " + chunkColumns + " FROM chunks"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY id"

	if options.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, options.Limit)

		if options.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, options.Offset)
		}
	} else if options.Offset > 0 {
		query += " LIMIT -1 OFFSET ?"
		args = append(args, options.Offset)
	}

	rows, err := s.sql.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}

	defer func() { _ = rows.Close() }()

	var chunks []chunk.Chunk

	for rows.Next() {
		c, scanErr := scanChunk(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("list: %w", scanErr)
		}

		chunks = append(chunks, c)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}

	return chunks, nil
}

// DependenciesOf returns the direct prerequisite ids of a chunk, sorted.
// Returns [chunk.ErrNotFound] when the chunk does not exist.
func (s *Store) DependenciesOf(ctx context.Context, id int64) ([]int64, error) {
	if ctx == nil {
		return nil, errors.New("dependencies: context is nil")
	}

	if s == nil || s.sql == nil {
		return nil, errors.New("dependencies: store is not open")
	}

	// Existence check first so missing chunks and chunks with no
	// dependencies are distinguishable.
	_, err := s.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("dependencies: %w", err)
	}

	rows, err := s.sql.QueryContext(ctx,
		"SELECT depends_on_id FROM chunk_deps WHERE chunk_id = ? ORDER BY depends_on_id",
		id)
	if err != nil {
		return nil, fmt.Errorf("dependencies: %w", err)
	}

	defer func() { _ = rows.Close() }()

	var deps []int64

	for rows.Next() {
		var dep int64

		err = rows.Scan(&dep)
		if err != nil {
			return nil, fmt.Errorf("dependencies: scan: %w", err)
		}

		deps = append(deps, dep)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("dependencies: %w", err)
	}

	return deps, nil
}

// Snapshot returns every chunk and edge, the input the resolver works on.
func (s *Store) Snapshot(ctx context.Context) (Snapshot, error) {
	chunks, err := s.List(ctx, nil)
	if err != nil {
		return Snapshot{}, fmt.Errorf("snapshot: %w", err)
	}

	rows, err := s.sql.QueryContext(ctx,
		"SELECT chunk_id, depends_on_id FROM chunk_deps ORDER BY chunk_id, depends_on_id")
	if err != nil {
		return Snapshot{}, fmt.Errorf("snapshot: %w", err)
	}

	defer func() { _ = rows.Close() }()

	var edges []chunk.Edge

	for rows.Next() {
		var e chunk.Edge

		err = rows.Scan(&e.ChunkID, &e.DependsOnID)
		if err != nil {
			return Snapshot{}, fmt.Errorf("snapshot: scan edge: %w", err)
		}

		edges = append(edges, e)
	}

	err = rows.Err()
	if err != nil {
		return Snapshot{}, fmt.Errorf("snapshot: %w", err)
	}

	return Snapshot{Chunks: chunks, Edges: edges}, nil
}

// getInTx reads one chunk inside an open transaction.
func getInTx(ctx context.Context, tx *sql.Tx, id int64) (chunk.Chunk, error) {
	row := tx.QueryRowContext(ctx,
		"SELECT "+chunkColumns+" FROM chunks WHERE id = ?", id)

	c, err := scanChunk(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return chunk.Chunk{}, fmt.Errorf("chunk %d: %w", id, chunk.ErrNotFound)
		}

		return chunk.Chunk{}, err
	}

	return c, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanChunk decodes one chunks row. Timestamps are stored as unix
// nanoseconds and surfaced as UTC times.
func scanChunk(row rowScanner) (chunk.Chunk, error) {
	var (
		c           chunk.Chunk
		createdNS   int64
		completedNS sql.NullInt64
	)

	err := row.Scan(&c.ID, &c.Title, &c.Description, &c.Difficulty, &c.Status, &createdNS, &completedNS)
	if err != nil {
		return chunk.Chunk{}, err
	}

	c.CreatedAt = time.Unix(0, createdNS).UTC()

	if completedNS.Valid {
		completedAt := time.Unix(0, completedNS.Int64).UTC()
		c.CompletedAt = &completedAt
	}

	return c, nil
}

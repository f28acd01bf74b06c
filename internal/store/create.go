package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"chunklearn/internal/chunk"
)

// Create inserts a new chunk and its dependency edges in one transaction.
//
// Validation failures return errors wrapping [chunk.ErrValidation]; an
// unknown id in DependsOn returns [chunk.ErrNotFound]; edges that would
// close a cycle return [chunk.ErrCycle]. On any failure nothing is
// persisted.
func (s *Store) Create(ctx context.Context, nc NewChunk) (chunk.Chunk, error) {
	title := strings.TrimSpace(nc.Title)
	if title == "" {
		return chunk.Chunk{}, chunk.ErrTitleRequired
	}

	if !chunk.IsValidDifficulty(nc.Difficulty) {
		return chunk.Chunk{}, chunk.ErrInvalidDifficulty
	}

	tx, err := s.begin(ctx)
	if err != nil {
		return chunk.Chunk{}, fmt.Errorf("create: %w", err)
	}

	defer func() { _ = tx.Rollback() }()

	// Dependencies must exist before the chunk row goes in.
	for _, depID := range dedupeIDs(nc.DependsOn) {
		exists, existsErr := chunkExists(ctx, tx, depID)
		if existsErr != nil {
			return chunk.Chunk{}, fmt.Errorf("create: %w", existsErr)
		}

		if !exists {
			return chunk.Chunk{}, fmt.Errorf("create: dependency %d: %w", depID, chunk.ErrNotFound)
		}
	}

	createdAt := s.now().UTC()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO chunks (title, description, difficulty, status, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		title, nc.Description, nc.Difficulty, chunk.StatusPending, createdAt.UnixNano())
	if err != nil {
		return chunk.Chunk{}, fmt.Errorf("create: insert chunk: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return chunk.Chunk{}, fmt.Errorf("create: last insert id: %w", err)
	}

	for _, depID := range dedupeIDs(nc.DependsOn) {
		err = insertEdge(ctx, tx, id, depID)
		if err != nil {
			return chunk.Chunk{}, fmt.Errorf("create: %w", err)
		}
	}

	err = tx.Commit()
	if err != nil {
		return chunk.Chunk{}, fmt.Errorf("create: commit: %w", err)
	}

	return chunk.Chunk{
		ID:          id,
		Title:       title,
		Description: nc.Description,
		Difficulty:  nc.Difficulty,
		Status:      chunk.StatusPending,
		CreatedAt:   createdAt,
	}, nil
}

// insertEdge validates and inserts a single dependency edge within tx.
// The caller has already verified that both endpoints exist.
func insertEdge(ctx context.Context, tx *sql.Tx, chunkID, dependsOnID int64) error {
	if chunkID == dependsOnID {
		return chunk.ErrSelfDependency
	}

	// Reject the edge if dependsOnID can already reach chunkID through
	// existing edges; adding it would close a cycle. Trivially false at
	// creation time (the new chunk has no incoming edges yet) but
	// required once dependencies can be added post-creation.
	reachable, err := reachableFrom(ctx, tx, dependsOnID, chunkID)
	if err != nil {
		return err
	}

	if reachable {
		return fmt.Errorf("%d would depend on itself through %d: %w", chunkID, dependsOnID, chunk.ErrCycle)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO chunk_deps (chunk_id, depends_on_id) VALUES (?, ?)",
		chunkID, dependsOnID)
	if err != nil {
		return fmt.Errorf("insert edge: %w", err)
	}

	return nil
}

// chunkExists reports whether a chunk row with the given id exists.
func chunkExists(ctx context.Context, tx *sql.Tx, id int64) (bool, error) {
	row := tx.QueryRowContext(ctx, "SELECT 1 FROM chunks WHERE id = ?", id)

	var one int

	err := row.Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}

		return false, fmt.Errorf("chunk exists: %w", err)
	}

	return true, nil
}

// dedupeIDs returns ids with duplicates removed, preserving order.
func dedupeIDs(ids []int64) []int64 {
	if len(ids) < 2 {
		return ids
	}

	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))

	for _, id := range ids {
		if seen[id] {
			continue
		}

		seen[id] = true
		out = append(out, id)
	}

	return out
}

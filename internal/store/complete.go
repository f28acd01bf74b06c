package store

import (
	"context"
	"fmt"

	"chunklearn/internal/chunk"
)

// MarkComplete transitions a chunk from pending to completed and stamps
// completed_at. The transition is one-way and idempotent: completing an
// already-completed chunk returns the chunk unchanged with a nil error.
//
// Returns [chunk.ErrNotFound] when no chunk has the given id.
func (s *Store) MarkComplete(ctx context.Context, id int64) (chunk.Chunk, error) {
	tx, err := s.begin(ctx)
	if err != nil {
		return chunk.Chunk{}, fmt.Errorf("mark complete: %w", err)
	}

	defer func() { _ = tx.Rollback() }()

	current, err := getInTx(ctx, tx, id)
	if err != nil {
		return chunk.Chunk{}, fmt.Errorf("mark complete: %w", err)
	}

	if current.Completed() {
		// Idempotent no-op per the documented policy.
		return current, nil
	}

	completedAt := s.now().UTC()

	_, err = tx.ExecContext(ctx,
		"UPDATE chunks SET status = ?, completed_at = ? WHERE id = ?",
		chunk.StatusCompleted, completedAt.UnixNano(), id)
	if err != nil {
		return chunk.Chunk{}, fmt.Errorf("mark complete: update: %w", err)
	}

	err = tx.Commit()
	if err != nil {
		return chunk.Chunk{}, fmt.Errorf("mark complete: commit: %w", err)
	}

	current.Status = chunk.StatusCompleted
	current.CompletedAt = &completedAt

	return current, nil
}

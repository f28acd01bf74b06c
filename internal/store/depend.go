package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"chunklearn/internal/chunk"
)

// AddDependency records that chunk id must wait for dependsOn.
//
// Returns [chunk.ErrNotFound] when either chunk is missing,
// [chunk.ErrSelfDependency] for id == dependsOn, [chunk.ErrDuplicateEdge]
// when the edge already exists, and [chunk.ErrCycle] when the edge would
// make id transitively depend on itself. The graph is unchanged on failure.
func (s *Store) AddDependency(ctx context.Context, id, dependsOn int64) error {
	tx, err := s.begin(ctx)
	if err != nil {
		return fmt.Errorf("add dependency: %w", err)
	}

	defer func() { _ = tx.Rollback() }()

	for _, candidate := range []int64{id, dependsOn} {
		exists, existsErr := chunkExists(ctx, tx, candidate)
		if existsErr != nil {
			return fmt.Errorf("add dependency: %w", existsErr)
		}

		if !exists {
			return fmt.Errorf("add dependency: chunk %d: %w", candidate, chunk.ErrNotFound)
		}
	}

	duplicate, err := edgeExists(ctx, tx, id, dependsOn)
	if err != nil {
		return fmt.Errorf("add dependency: %w", err)
	}

	if duplicate {
		return fmt.Errorf("add dependency: %d -> %d: %w", id, dependsOn, chunk.ErrDuplicateEdge)
	}

	err = insertEdge(ctx, tx, id, dependsOn)
	if err != nil {
		return fmt.Errorf("add dependency: %w", err)
	}

	err = tx.Commit()
	if err != nil {
		return fmt.Errorf("add dependency: commit: %w", err)
	}

	return nil
}

// edgeExists reports whether the exact dependency edge is already recorded.
func edgeExists(ctx context.Context, tx *sql.Tx, chunkID, dependsOnID int64) (bool, error) {
	row := tx.QueryRowContext(ctx,
		"SELECT 1 FROM chunk_deps WHERE chunk_id = ? AND depends_on_id = ?",
		chunkID, dependsOnID)

	var one int

	err := row.Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}

		return false, fmt.Errorf("edge exists: %w", err)
	}

	return true, nil
}

// reachableFrom reports whether target is reachable from start by following
// depends-on edges. Iterative BFS with a visited set; the visited set also
// terminates the walk on any pre-existing cycle instead of looping.
func reachableFrom(ctx context.Context, tx *sql.Tx, start, target int64) (bool, error) {
	if start == target {
		return true, nil
	}

	visited := map[int64]bool{start: true}
	frontier := []int64{start}

	for len(frontier) > 0 {
		current := frontier[0]
		frontier = frontier[1:]

		deps, err := dependenciesInTx(ctx, tx, current)
		if err != nil {
			return false, err
		}

		for _, dep := range deps {
			if dep == target {
				return true, nil
			}

			if visited[dep] {
				continue
			}

			visited[dep] = true
			frontier = append(frontier, dep)
		}
	}

	return false, nil
}

// dependenciesInTx returns the direct dependency ids of a chunk within tx.
func dependenciesInTx(ctx context.Context, tx *sql.Tx, id int64) ([]int64, error) {
	rows, err := tx.QueryContext(ctx,
		"SELECT depends_on_id FROM chunk_deps WHERE chunk_id = ? ORDER BY depends_on_id",
		id)
	if err != nil {
		return nil, fmt.Errorf("query dependencies: %w", err)
	}

	defer func() { _ = rows.Close() }()

	var deps []int64

	for rows.Next() {
		var dep int64

		err = rows.Scan(&dep)
		if err != nil {
			return nil, fmt.Errorf("scan dependency: %w", err)
		}

		deps = append(deps, dep)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("iterate dependencies: %w", err)
	}

	return deps, nil
}

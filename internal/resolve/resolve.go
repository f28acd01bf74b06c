// Package resolve computes which chunks are eligible to work on next.
//
// All functions are pure: they operate on a snapshot of chunks and edges,
// never touch the store, and never fail on well-formed input. An edge
// referencing a chunk that does not exist in the snapshot is a store
// invariant violation; the resolver treats such a dependency as unmet
// rather than guessing.
package resolve

import (
	"slices"

	"chunklearn/internal/chunk"
)

// Ready returns the chunks eligible to be worked on: status pending with
// every direct dependency completed. A chunk with no dependencies is
// trivially ready while pending. The result is in selection order (see
// [Next]); an empty ready set returns nil.
func Ready(chunks []chunk.Chunk, edges []chunk.Edge) []chunk.Chunk {
	byID := make(map[int64]chunk.Chunk, len(chunks))
	for _, c := range chunks {
		byID[c.ID] = c
	}

	depsOf := make(map[int64][]int64, len(edges))
	for _, e := range edges {
		depsOf[e.ChunkID] = append(depsOf[e.ChunkID], e.DependsOnID)
	}

	var ready []chunk.Chunk

	for _, c := range chunks {
		if c.Status != chunk.StatusPending {
			continue
		}

		if depsMet(depsOf[c.ID], byID) {
			ready = append(ready, c)
		}
	}

	slices.SortFunc(ready, compareChunks)

	return ready
}

// Next selects the single recommended chunk from the ready set: lowest
// difficulty first, earliest created_at breaking ties, lowest id breaking
// the rest. The ordering is total, so identical inputs always select the
// same chunk. The second return is false when nothing is ready, which is
// a normal outcome, not an error.
func Next(chunks []chunk.Chunk, edges []chunk.Edge) (chunk.Chunk, bool) {
	ready := Ready(chunks, edges)
	if len(ready) == 0 {
		return chunk.Chunk{}, false
	}

	return ready[0], true
}

// depsMet reports whether every direct dependency is completed.
func depsMet(deps []int64, byID map[int64]chunk.Chunk) bool {
	for _, depID := range deps {
		dep, exists := byID[depID]
		if !exists {
			return false
		}

		if !dep.Completed() {
			return false
		}
	}

	return true
}

// compareChunks is the three-level selection order: difficulty, then
// created_at, then id.
func compareChunks(a, b chunk.Chunk) int {
	if a.Difficulty != b.Difficulty {
		return a.Difficulty - b.Difficulty
	}

	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Compare(b.CreatedAt)
	}

	switch {
	case a.ID < b.ID:
		return -1
	case a.ID > b.ID:
		return 1
	default:
		return 0
	}
}

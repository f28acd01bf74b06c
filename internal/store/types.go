package store

import "chunklearn/internal/chunk"

// NewChunk holds the caller-supplied fields for Create.
type NewChunk struct {
	Title       string  // Required, non-empty after trimming.
	Description string  // Optional freeform text.
	Difficulty  int     // Required, 1-5.
	DependsOn   []int64 // Optional prerequisite chunk IDs; must exist.
}

// QueryOptions defines optional filters for List; zero values mean "no
// filter". Results are ordered by id (insertion order), with Limit/Offset
// applied after filters.
type QueryOptions struct {
	Status string // Status filters by exact status when non-empty.
	Limit  int    // Limit caps the number of rows when > 0.
	Offset int    // Offset skips rows when > 0.
}

// Snapshot is the full store state handed to the readiness resolver.
type Snapshot struct {
	Chunks []chunk.Chunk `json:"chunks"`
	Edges  []chunk.Edge  `json:"edges"`
}

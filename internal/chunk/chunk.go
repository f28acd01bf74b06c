// Package chunk defines the learning-chunk domain model shared by the
// store, resolver, and CLI.
package chunk

import "time"

// Status constants.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

// Difficulty bounds (inclusive).
const (
	MinDifficulty = 1
	MaxDifficulty = 5
)

// Chunk is a single unit of learning material.
// IDs are SQLite rowids: immutable, assigned at creation, insertion-ordered.
type Chunk struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Difficulty  int        `json:"difficulty"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Completed reports whether the chunk has been marked complete.
func (c Chunk) Completed() bool {
	return c.Status == StatusCompleted
}

// Edge is a directed "must complete before" relation:
// the chunk with ChunkID depends on the chunk with DependsOnID.
type Edge struct {
	ChunkID     int64 `json:"chunk_id"`
	DependsOnID int64 `json:"depends_on_id"`
}

// IsValidDifficulty reports whether d is within the 1-5 ordinal range.
func IsValidDifficulty(d int) bool {
	return d >= MinDifficulty && d <= MaxDifficulty
}

// IsValidStatus reports whether s is a known status string.
func IsValidStatus(s string) bool {
	return s == StatusPending || s == StatusCompleted
}

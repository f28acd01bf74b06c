package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"chunklearn/internal/chunk"
	"chunklearn/internal/store"

	flag "github.com/spf13/pflag"
)

const defaultLimit = 100

// LsCmd returns the ls command.
func LsCmd(cfg *chunk.Config) *Command {
	fs := flag.NewFlagSet("ls", flag.ContinueOnError)
	fs.String("status", "", "Filter by status (pending|completed)")
	fs.Int("limit", defaultLimit, "Maximum chunks to show (0 = no limit)")
	fs.Int("offset", 0, "Skip first N chunks")
	fs.Bool("json", false, "Output as JSON array")

	return &Command{
		Flags: fs,
		Usage: "ls [flags]",
		Short: "List chunks",
		Long:  "List all chunks. Output sorted by ID (oldest first).",
		Exec: func(ctx context.Context, o *IO, _ []string) error {
			return execLs(ctx, o, cfg, fs)
		},
	}
}

func execLs(ctx context.Context, o *IO, cfg *chunk.Config, fs *flag.FlagSet) error {
	status, _ := fs.GetString("status")
	if fs.Changed("status") {
		if !chunk.IsValidStatus(status) {
			return fmt.Errorf("%w: %s", chunk.ErrInvalidStatus, status)
		}
	}

	limit, _ := fs.GetInt("limit")
	if limit < 0 {
		return errors.New("--limit must be non-negative")
	}

	offset, _ := fs.GetInt("offset")
	if offset < 0 {
		return errors.New("--offset must be non-negative")
	}

	jsonOutput, _ := fs.GetBool("json")

	s, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}

	defer func() { _ = s.Close() }()

	chunks, err := s.List(ctx, &store.QueryOptions{
		Status: status,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return fmt.Errorf("list chunks: %w", err)
	}

	snap, err := s.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("load dependencies: %w", err)
	}

	depsOf := make(map[int64][]int64, len(snap.Edges))
	for _, e := range snap.Edges {
		depsOf[e.ChunkID] = append(depsOf[e.ChunkID], e.DependsOnID)
	}

	total := 0

	for _, c := range snap.Chunks {
		if status == "" || c.Status == status {
			total++
		}
	}

	if limit > 0 && offset+len(chunks) < total {
		o.Warn(
			fmt.Sprintf("showing %d of %d chunks", len(chunks), total),
			"rerun with --limit 0 to show all",
		)
	}

	if jsonOutput {
		return outputChunksJSON(o, chunks, depsOf)
	}

	for _, c := range chunks {
		o.Println(formatChunkLine(c, depsOf[c.ID]))
	}

	return nil
}

func formatChunkLine(c chunk.Chunk, deps []int64) string {
	var builder strings.Builder

	builder.WriteString("#")
	builder.WriteString(strconv.FormatInt(c.ID, 10))
	builder.WriteString("  [D")
	builder.WriteString(strconv.Itoa(c.Difficulty))
	builder.WriteString("][")
	builder.WriteString(c.Status)
	builder.WriteString("] - ")
	builder.WriteString(c.Title)

	if len(deps) > 0 {
		builder.WriteString(" (needs: ")

		for i, dep := range deps {
			if i > 0 {
				builder.WriteString(", ")
			}

			builder.WriteString("#")
			builder.WriteString(strconv.FormatInt(dep, 10))
		}

		builder.WriteString(")")
	}

	return builder.String()
}

// chunkJSON is the JSON representation of a chunk in list-style output.
type chunkJSON struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Difficulty  int     `json:"difficulty"`
	Status      string  `json:"status"`
	DependsOn   []int64 `json:"depends_on"`
	CreatedAt   string  `json:"created_at"`
	CompletedAt string  `json:"completed_at,omitempty"`
}

func toChunkJSON(c chunk.Chunk, deps []int64) chunkJSON {
	if deps == nil {
		deps = []int64{}
	}

	out := chunkJSON{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Difficulty:  c.Difficulty,
		Status:      c.Status,
		DependsOn:   deps,
		CreatedAt:   c.CreatedAt.Format(time.RFC3339),
	}

	if c.CompletedAt != nil {
		out.CompletedAt = c.CompletedAt.Format(time.RFC3339)
	}

	return out
}

func outputChunksJSON(o *IO, chunks []chunk.Chunk, depsOf map[int64][]int64) error {
	out := make([]chunkJSON, 0, len(chunks))

	for _, c := range chunks {
		out = append(out, toChunkJSON(c, depsOf[c.ID]))
	}

	data, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	o.Println(string(data))

	return nil
}

package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"chunklearn/internal/chunk"
	"chunklearn/internal/resolve"

	flag "github.com/spf13/pflag"
)

const (
	fieldID         = "id"
	fieldTitle      = "title"
	fieldDifficulty = "difficulty"
	fieldStatus     = "status"
	fieldCreated    = "created"
)

var errInvalidField = errors.New("invalid field (valid: id, title, difficulty, status, created)")

// NextCmd returns the next command.
func NextCmd(cfg *chunk.Config) *Command {
	fs := flag.NewFlagSet("next", flag.ContinueOnError)
	fs.Bool("json", false, "Output as JSON object")
	fs.String("field", "", "Output only this field (id|title|difficulty|status|created)")

	return &Command{
		Flags: fs,
		Usage: "next [flags]",
		Short: "Show the next chunk to work on",
		Long: `Show the single recommended chunk: the pending chunk with all
prerequisites completed that has the lowest difficulty, breaking ties by
earliest creation time, then lowest ID.

Prints nothing to stdout and exits 0 when no chunk is ready - either
everything is completed or every pending chunk is blocked.

Examples:
  chunk next
  chunk next --field id      # just the ID, for scripting
  chunk next --json`,
		Exec: func(ctx context.Context, o *IO, _ []string) error {
			jsonOutput, _ := fs.GetBool("json")
			field, _ := fs.GetString("field")

			return execNext(ctx, o, cfg, jsonOutput, field)
		},
	}
}

func execNext(ctx context.Context, o *IO, cfg *chunk.Config, jsonOutput bool, field string) error {
	if field != "" && !isValidField(field) {
		return errInvalidField
	}

	s, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}

	defer func() { _ = s.Close() }()

	snap, err := s.Snapshot(ctx)
	if err != nil {
		return err
	}

	next, ok := resolve.Next(snap.Chunks, snap.Edges)
	if !ok {
		// Normal outcome, not an error: nothing is actionable right now.
		o.ErrPrintln("no chunks ready")

		return nil
	}

	if jsonOutput {
		deps := make(map[int64][]int64, len(snap.Edges))
		for _, e := range snap.Edges {
			deps[e.ChunkID] = append(deps[e.ChunkID], e.DependsOnID)
		}

		data, marshalErr := json.Marshal(toChunkJSON(next, deps[next.ID]))
		if marshalErr != nil {
			return fmt.Errorf("marshal json: %w", marshalErr)
		}

		o.Println(string(data))

		return nil
	}

	if field != "" {
		o.Println(fieldValue(next, field))

		return nil
	}

	o.Println(formatChunkLine(next, nil))

	if next.Description != "" {
		o.Println()
		o.Println(next.Description)
	}

	return nil
}

func isValidField(field string) bool {
	switch field {
	case fieldID, fieldTitle, fieldDifficulty, fieldStatus, fieldCreated:
		return true
	default:
		return false
	}
}

func fieldValue(c chunk.Chunk, field string) string {
	switch field {
	case fieldID:
		return strconv.FormatInt(c.ID, 10)
	case fieldTitle:
		return c.Title
	case fieldDifficulty:
		return strconv.Itoa(c.Difficulty)
	case fieldStatus:
		return c.Status
	case fieldCreated:
		return c.CreatedAt.Format(time.RFC3339)
	default:
		return ""
	}
}

package cli

import (
	"context"

	"chunklearn/internal/chunk"
	"chunklearn/internal/resolve"

	flag "github.com/spf13/pflag"
)

// ReadyCmd returns the ready command.
func ReadyCmd(cfg *chunk.Config) *Command {
	fs := flag.NewFlagSet("ready", flag.ContinueOnError)
	fs.Bool("json", false, "Output as JSON array")
	fs.Int("limit", 0, "Maximum chunks to show (0 = no limit)")

	return &Command{
		Flags: fs,
		Usage: "ready [flags]",
		Short: "List chunks ready to work on",
		Long: `List every pending chunk whose prerequisites are all completed.

Output uses the selection order of next: difficulty ascending, then
creation time, then ID.

Examples:
  chunk ready
  chunk ready --limit 3
  chunk ready --json`,
		Exec: func(ctx context.Context, o *IO, _ []string) error {
			jsonOutput, _ := fs.GetBool("json")
			limit, _ := fs.GetInt("limit")

			return execReady(ctx, o, cfg, jsonOutput, limit)
		},
	}
}

func execReady(ctx context.Context, o *IO, cfg *chunk.Config, jsonOutput bool, limit int) error {
	s, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}

	defer func() { _ = s.Close() }()

	snap, err := s.Snapshot(ctx)
	if err != nil {
		return err
	}

	ready := resolve.Ready(snap.Chunks, snap.Edges)

	if limit > 0 && len(ready) > limit {
		ready = ready[:limit]
	}

	if jsonOutput {
		depsOf := make(map[int64][]int64, len(snap.Edges))
		for _, e := range snap.Edges {
			depsOf[e.ChunkID] = append(depsOf[e.ChunkID], e.DependsOnID)
		}

		return outputChunksJSON(o, ready, depsOf)
	}

	if len(ready) == 0 {
		o.ErrPrintln("no chunks ready")

		return nil
	}

	for _, c := range ready {
		o.Println(formatChunkLine(c, nil))
	}

	return nil
}

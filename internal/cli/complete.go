package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"chunklearn/internal/chunk"

	flag "github.com/spf13/pflag"
)

var errDepsIncomplete = errors.New("incomplete dependencies")

// CompleteCmd returns the complete command.
func CompleteCmd(cfg *chunk.Config) *Command {
	fs := flag.NewFlagSet("complete", flag.ContinueOnError)
	fs.Bool("force", false, "Complete even when prerequisites are incomplete")

	return &Command{
		Flags: fs,
		Usage: "complete <id> [flags]",
		Short: "Mark a chunk completed",
		Long: `Mark a chunk as completed.

Refuses when direct prerequisites are still pending unless --force is
given. Completing an already-completed chunk is a no-op.`,
		Exec: func(ctx context.Context, o *IO, args []string) error {
			force, _ := fs.GetBool("force")

			return execComplete(ctx, o, cfg, args, force)
		},
	}
}

func execComplete(ctx context.Context, o *IO, cfg *chunk.Config, args []string, force bool) error {
	if len(args) == 0 {
		return errIDRequired
	}

	id, err := parseChunkID(args[0])
	if err != nil {
		return err
	}

	s, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}

	defer func() { _ = s.Close() }()

	current, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if current.Completed() {
		o.Printf("chunk #%d already completed: %s\n", current.ID, current.Title)

		return nil
	}

	if !force {
		pending, pendingErr := incompleteDeps(ctx, s, id)
		if pendingErr != nil {
			return pendingErr
		}

		if len(pending) > 0 {
			return fmt.Errorf("%w: %s (use --force to override)", errDepsIncomplete, formatIDList(pending))
		}
	}

	completed, err := s.MarkComplete(ctx, id)
	if err != nil {
		return err
	}

	o.Printf("completed #%d: %s\n", completed.ID, completed.Title)

	return nil
}

// incompleteDeps returns the direct prerequisites of id that are still pending.
func incompleteDeps(ctx context.Context, s chunkGetter, id int64) ([]int64, error) {
	deps, err := s.DependenciesOf(ctx, id)
	if err != nil {
		return nil, err
	}

	var pending []int64

	for _, depID := range deps {
		dep, getErr := s.Get(ctx, depID)
		if getErr != nil {
			return nil, getErr
		}

		if !dep.Completed() {
			pending = append(pending, depID)
		}
	}

	return pending, nil
}

// chunkGetter is the slice of the store complete needs for its dependency check.
type chunkGetter interface {
	Get(ctx context.Context, id int64) (chunk.Chunk, error)
	DependenciesOf(ctx context.Context, id int64) ([]int64, error)
}

func formatIDList(ids []int64) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, "#"+strconv.FormatInt(id, 10))
	}

	return strings.Join(parts, ", ")
}

package cli

import (
	"context"
	"errors"
	"time"

	"chunklearn/internal/chunk"

	flag "github.com/spf13/pflag"
)

var errIDRequired = errors.New("chunk ID is required")

// ShowCmd returns the show command.
func ShowCmd(cfg *chunk.Config) *Command {
	return &Command{
		Flags: flag.NewFlagSet("show", flag.ContinueOnError),
		Usage: "show <id>",
		Short: "Show chunk details",
		Long:  "Display a chunk with its prerequisites and their completion state.",
		Exec: func(ctx context.Context, o *IO, args []string) error {
			return execShow(ctx, o, cfg, args)
		},
	}
}

func execShow(ctx context.Context, o *IO, cfg *chunk.Config, args []string) error {
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

	c, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	deps, err := s.DependenciesOf(ctx, id)
	if err != nil {
		return err
	}

	o.Printf("#%d %s\n", c.ID, c.Title)
	o.Println("status:", c.Status)
	o.Println("difficulty:", c.Difficulty)
	o.Println("created:", c.CreatedAt.Format(time.RFC3339))

	if c.CompletedAt != nil {
		o.Println("completed:", c.CompletedAt.Format(time.RFC3339))
	}

	if c.Description != "" {
		o.Println()
		o.Println(c.Description)
	}

	if len(deps) > 0 {
		o.Println()
		o.Println("depends on:")

		for _, depID := range deps {
			dep, getErr := s.Get(ctx, depID)
			if getErr != nil {
				return getErr
			}

			mark := " "
			if dep.Completed() {
				mark = "x"
			}

			o.Printf("  [%s] #%d %s\n", mark, dep.ID, dep.Title)
		}
	}

	return nil
}

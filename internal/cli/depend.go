package cli

import (
	"context"
	"errors"

	"chunklearn/internal/chunk"

	flag "github.com/spf13/pflag"
)

var errDependsOnRequired = errors.New("depends-on chunk ID is required")

// DependCmd returns the depend command.
func DependCmd(cfg *chunk.Config) *Command {
	return &Command{
		Flags: flag.NewFlagSet("depend", flag.ContinueOnError),
		Usage: "depend <id> <depends-on-id>",
		Short: "Add a prerequisite to a chunk",
		Long: `Record that a chunk depends on another chunk being completed first.

The edge is rejected if it would make the chunk depend on itself,
directly or through existing prerequisites.`,
		Exec: func(ctx context.Context, o *IO, args []string) error {
			return execDepend(ctx, o, cfg, args)
		},
	}
}

func execDepend(ctx context.Context, o *IO, cfg *chunk.Config, args []string) error {
	if len(args) == 0 {
		return errIDRequired
	}

	if len(args) < 2 {
		return errDependsOnRequired
	}

	id, err := parseChunkID(args[0])
	if err != nil {
		return err
	}

	dependsOn, err := parseChunkID(args[1])
	if err != nil {
		return err
	}

	s, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}

	defer func() { _ = s.Close() }()

	err = s.AddDependency(ctx, id, dependsOn)
	if err != nil {
		return err
	}

	o.Printf("chunk #%d now depends on #%d\n", id, dependsOn)

	return nil
}

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"chunklearn/internal/chunk"

	"github.com/natefinch/atomic"
	flag "github.com/spf13/pflag"
)

// exportFile is the default export destination, relative to the working
// directory.
const exportFile = "chunks-export.json"

// ExportCmd returns the export command.
func ExportCmd(cfg *chunk.Config) *Command {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.StringP("out", "o", exportFile, "Output file path")

	return &Command{
		Flags: fs,
		Usage: "export [flags]",
		Short: "Write all chunks and edges to a JSON file",
		Long: `Export the full database (chunks plus dependency edges) as indented
JSON. The file is written atomically: either the previous content or the
complete new export is on disk, never a truncated mix.`,
		Exec: func(ctx context.Context, o *IO, _ []string) error {
			out, _ := fs.GetString("out")

			return execExport(ctx, o, cfg, out)
		},
	}
}

func execExport(ctx context.Context, o *IO, cfg *chunk.Config, out string) error {
	s, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}

	defer func() { _ = s.Close() }()

	snap, err := s.Snapshot(ctx)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal export: %w", err)
	}

	data = append(data, '\n')

	path := out
	if !filepath.IsAbs(path) {
		path = filepath.Join(cfg.EffectiveCwd, path)
	}

	err = os.MkdirAll(filepath.Dir(path), 0o755)
	if err != nil {
		return fmt.Errorf("write export: %w", err)
	}

	err = atomic.WriteFile(path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("write export: %w", err)
	}

	o.Printf("exported %d chunks, %d edges to %s\n", len(snap.Chunks), len(snap.Edges), path)

	return nil
}

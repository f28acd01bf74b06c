// Package cli implements the command-line interface for chunk.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"chunklearn/internal/chunk"
	"chunklearn/internal/store"
)

const (
	minArgs      = 2
	consumedOne  = 1
	consumedTwo  = 2
	consumedNone = 0
	helpFlag     = "--help"
)

// Run is the main entry point. Returns exit code.
// The interactive add prompts talk to the controlling terminal directly,
// so stdin is accepted for symmetry with the process streams but unused.
func Run(_ io.Reader, out io.Writer, errOut io.Writer, args []string, env map[string]string, sig <-chan os.Signal) int {
	if len(args) < minArgs {
		printUsage(out, newCommands(&chunk.Config{}))

		return 0
	}

	// Parse global flags
	flags, err := parseGlobalFlags(args[1:])
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	// Load and validate config
	cfg, err := chunk.LoadConfig(chunk.LoadConfigInput{
		WorkDirOverride: flags.workDir,
		ConfigPath:      flags.configPath,
		DBPathOverride:  flags.dbPath,
		Env:             env,
	})
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	commands := newCommands(&cfg)

	if len(flags.remaining) == 0 {
		printUsage(out, commands)

		return 0
	}

	cmdName := flags.remaining[0]

	// Handle help flags
	if cmdName == "-h" || cmdName == helpFlag {
		printUsage(out, commands)

		return 0
	}

	// Cancel in-flight database work on SIGINT/SIGTERM.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if sig != nil {
		go func() {
			<-sig
			cancel()
		}()
	}

	ioCtx := NewIO(out, errOut)

	for _, cmd := range commands {
		if cmd.Name() != cmdName {
			continue
		}

		code := cmd.Run(ctx, ioCtx, flags.remaining[1:])
		if code != 0 {
			return code
		}

		return ioCtx.Finish()
	}

	fprintln(errOut, "error: unknown command:", cmdName)
	printUsage(errOut, commands)

	return 1
}

// newCommands builds the command-dispatch table.
func newCommands(cfg *chunk.Config) []*Command {
	return []*Command{
		AddCmd(cfg),
		LsCmd(cfg),
		ShowCmd(cfg),
		CompleteCmd(cfg),
		NextCmd(cfg),
		ReadyCmd(cfg),
		DependCmd(cfg),
		ExportCmd(cfg),
		PrintConfigCmd(cfg),
	}
}

// openStore opens the configured chunk database.
func openStore(ctx context.Context, cfg *chunk.Config) (*store.Store, error) {
	s, err := store.Open(ctx, cfg.DBPathAbs)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	return s, nil
}

type globalFlags struct {
	workDir    string
	configPath string
	dbPath     string
	remaining  []string
}

func parseGlobalFlags(args []string) (globalFlags, error) {
	var flags globalFlags

	idx := 0
	for idx < len(args) {
		consumed, err := parseFlag(args, idx, &flags)
		if err != nil {
			return globalFlags{}, err
		}

		if consumed == 0 {
			// Not a flag, this is the command
			flags.remaining = args[idx:]

			break
		}

		idx += consumed
	}

	return flags, nil
}

var (
	errFlagRequiresArg = errors.New("flag requires an argument")
	errUnknownFlag     = errors.New("unknown flag")
)

// parseFlag tries to parse a flag at args[idx]. Returns number of args consumed (0 if not a flag).
func parseFlag(args []string, idx int, flags *globalFlags) (int, error) {
	arg := args[idx]

	// -C/--cwd flag (work directory)
	if (arg == "-C" || arg == "--cwd") && idx+1 < len(args) {
		flags.workDir = args[idx+1]

		return consumedTwo, nil
	}

	if after, ok := strings.CutPrefix(arg, "-C"); ok {
		flags.workDir = after

		return consumedOne, nil
	}

	if after, ok := strings.CutPrefix(arg, "--cwd="); ok {
		flags.workDir = after

		return consumedOne, nil
	}

	// -c/--config flag
	if arg == "-c" || arg == "--config" {
		if idx+1 >= len(args) {
			return consumedNone, fmt.Errorf("%w: %s", errFlagRequiresArg, arg)
		}

		flags.configPath = args[idx+1]

		return consumedTwo, nil
	}

	if after, ok := strings.CutPrefix(arg, "--config="); ok {
		flags.configPath = after

		return consumedOne, nil
	}

	// --db flag (database path)
	if arg == "--db" {
		if idx+1 >= len(args) {
			return consumedNone, fmt.Errorf("%w: %s", errFlagRequiresArg, arg)
		}

		flags.dbPath = args[idx+1]

		return consumedTwo, nil
	}

	if after, ok := strings.CutPrefix(arg, "--db="); ok {
		flags.dbPath = after

		return consumedOne, nil
	}

	// -h/--help flags
	if arg == "-h" || arg == helpFlag {
		flags.remaining = []string{helpFlag}

		return len(args) - idx, nil
	}

	// Unknown flag
	if strings.HasPrefix(arg, "-") && arg != "-" {
		return consumedNone, fmt.Errorf("%w: %s", errUnknownFlag, arg)
	}

	// Not a flag
	return consumedNone, nil
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}

func printUsage(writer io.Writer, commands []*Command) {
	fprintln(writer, `chunk - track learning chunks with prerequisites

Usage: chunk [options] <command> [args]

Options:
  -C, --cwd <dir>    Run as if started in <dir>
  -c, --config       Use specified config file
  --db <path>        Use specified database file

Commands:`)

	for _, cmd := range commands {
		fprintln(writer, cmd.HelpLine())
	}
}

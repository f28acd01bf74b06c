package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"chunklearn/internal/chunk"
	"chunklearn/internal/store"

	"github.com/peterh/liner"
	flag "github.com/spf13/pflag"
)

var (
	errTitleRequired = errors.New("title is required")
	errInvalidID     = errors.New("invalid chunk id")
)

// AddCmd returns the add command.
func AddCmd(cfg *chunk.Config) *Command {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.StringP("description", "d", "", "Description text")
	fs.Int("difficulty", 3, fmt.Sprintf("Difficulty %d-%d (%d=easiest)", chunk.MinDifficulty, chunk.MaxDifficulty, chunk.MinDifficulty))
	fs.Int64Slice("depends-on", nil, "Prerequisite chunk ID (repeatable)")
	fs.BoolP("interactive", "i", false, "Prompt for all fields interactively")

	return &Command{
		Flags: fs,
		Usage: "add <title> [flags]",
		Short: "Add a learning chunk, prints ID",
		Long: `Add a new learning chunk. Prints the chunk ID on success.

With -i, all fields are prompted for interactively and the positional
title and flags are ignored.

Examples:
  chunk add "Learn SQL joins"
  chunk add "Build a model" --difficulty 4 --depends-on 1 --depends-on 2
  chunk add -i`,
		Exec: func(ctx context.Context, o *IO, args []string) error {
			interactive, _ := fs.GetBool("interactive")

			var nc store.NewChunk

			if interactive {
				prompted, err := promptNewChunk()
				if err != nil {
					return err
				}

				nc = prompted
			} else {
				if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
					return errTitleRequired
				}

				description, _ := fs.GetString("description")
				difficulty, _ := fs.GetInt("difficulty")
				dependsOn, _ := fs.GetInt64Slice("depends-on")

				nc = store.NewChunk{
					Title:       args[0],
					Description: description,
					Difficulty:  difficulty,
					DependsOn:   dependsOn,
				}
			}

			s, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}

			defer func() { _ = s.Close() }()

			created, err := s.Create(ctx, nc)
			if err != nil {
				return err
			}

			o.Println(created.ID)

			return nil
		},
	}
}

// promptNewChunk collects chunk fields through a readline-style prompt.
// It talks to the controlling terminal directly, so it is only reachable
// through the explicit -i flag.
func promptNewChunk() (store.NewChunk, error) {
	line := liner.NewLiner()
	defer func() { _ = line.Close() }()

	line.SetCtrlCAborts(true)

	title, err := promptNonEmpty(line, "Title: ")
	if err != nil {
		return store.NewChunk{}, err
	}

	description, err := line.Prompt("Description: ")
	if err != nil {
		return store.NewChunk{}, promptErr(err)
	}

	difficulty, err := promptDifficulty(line)
	if err != nil {
		return store.NewChunk{}, err
	}

	dependsOn, err := promptDependsOn(line)
	if err != nil {
		return store.NewChunk{}, err
	}

	return store.NewChunk{
		Title:       title,
		Description: strings.TrimSpace(description),
		Difficulty:  difficulty,
		DependsOn:   dependsOn,
	}, nil
}

func promptNonEmpty(line *liner.State, prompt string) (string, error) {
	for {
		input, err := line.Prompt(prompt)
		if err != nil {
			return "", promptErr(err)
		}

		if trimmed := strings.TrimSpace(input); trimmed != "" {
			return trimmed, nil
		}
	}
}

func promptDifficulty(line *liner.State) (int, error) {
	prompt := fmt.Sprintf("Difficulty (%d-%d): ", chunk.MinDifficulty, chunk.MaxDifficulty)

	for {
		input, err := line.Prompt(prompt)
		if err != nil {
			return 0, promptErr(err)
		}

		difficulty, convErr := strconv.Atoi(strings.TrimSpace(input))
		if convErr == nil && chunk.IsValidDifficulty(difficulty) {
			return difficulty, nil
		}
	}
}

func promptDependsOn(line *liner.State) ([]int64, error) {
	input, err := line.Prompt("Depends on (comma-separated IDs, empty for none): ")
	if err != nil {
		return nil, promptErr(err)
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil
	}

	var ids []int64

	for _, part := range strings.Split(input, ",") {
		id, parseErr := parseChunkID(strings.TrimSpace(part))
		if parseErr != nil {
			return nil, parseErr
		}

		ids = append(ids, id)
	}

	return ids, nil
}

func promptErr(err error) error {
	if errors.Is(err, liner.ErrPromptAborted) {
		return errors.New("aborted")
	}

	return fmt.Errorf("reading input: %w", err)
}

// parseChunkID parses a positional chunk id argument.
func parseChunkID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s", errInvalidID, arg)
	}

	return id, nil
}

package cli_test

import (
	"testing"

	"chunklearn/internal/cli"
)

func TestCompleteMarksChunk(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	id := c.MustAdd("Learn Go")

	stdout := c.MustRun("complete", id)
	cli.AssertContains(t, stdout, "completed #"+id)

	stdout = c.MustRun("ls")
	cli.AssertContains(t, stdout, "[completed]")
}

func TestCompleteIdempotent(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	id := c.MustAdd("Learn Go")
	c.MustRun("complete", id)

	// Second completion succeeds without changing anything.
	stdout := c.MustRun("complete", id)
	cli.AssertContains(t, stdout, "already completed")
}

func TestCompleteNotFound(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stderr := c.MustFail("complete", "42")

	cli.AssertContains(t, stderr, "chunk not found")
}

func TestCompleteInvalidID(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stderr := c.MustFail("complete", "abc")

	cli.AssertContains(t, stderr, "invalid chunk id")
}

func TestCompleteRequiresID(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stderr := c.MustFail("complete")

	cli.AssertContains(t, stderr, "chunk ID is required")
}

func TestCompleteRefusesWithPendingDeps(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	baseID := c.MustAdd("Basics")
	childID := c.MustAdd("Advanced", "--depends-on", baseID)

	stderr := c.MustFail("complete", childID)
	cli.AssertContains(t, stderr, "incomplete dependencies")
	cli.AssertContains(t, stderr, "#"+baseID)

	// Still pending.
	stdout := c.MustRun("ls", "--status", "pending")
	cli.AssertContains(t, stdout, "Advanced")
}

func TestCompleteForceOverridesPendingDeps(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	baseID := c.MustAdd("Basics")
	childID := c.MustAdd("Advanced", "--depends-on", baseID)

	stdout := c.MustRun("complete", childID, "--force")
	cli.AssertContains(t, stdout, "completed #"+childID)
}

func TestCompleteAfterDepsDone(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	baseID := c.MustAdd("Basics")
	childID := c.MustAdd("Advanced", "--depends-on", baseID)

	c.MustRun("complete", baseID)
	stdout := c.MustRun("complete", childID)
	cli.AssertContains(t, stdout, "completed #"+childID)
}

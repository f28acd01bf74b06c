package cli_test

import (
	"testing"

	"chunklearn/internal/cli"
)

func TestDependAddsEdge(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	baseID := c.MustAdd("Base")
	laterID := c.MustAdd("Later")

	stdout := c.MustRun("depend", laterID, baseID)
	cli.AssertContains(t, stdout, "chunk #2 now depends on #1")

	show := c.MustRun("show", laterID)
	cli.AssertContains(t, show, "depends on:")
	cli.AssertContains(t, show, "#1")
}

func TestDependBlocksNext(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	hardID := c.MustAdd("Hard", "--difficulty", "5")
	easyID := c.MustAdd("Easy", "--difficulty", "1")

	c.MustRun("depend", easyID, hardID)

	stdout := c.MustRun("next", "--field", "id")
	if got, want := stdout, hardID; got != want {
		t.Errorf("next id=%q, want=%q", got, want)
	}
}

func TestDependMissingArgs(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	stderr := c.MustFail("depend")
	cli.AssertContains(t, stderr, "chunk ID is required")

	stderr = c.MustFail("depend", "1")
	cli.AssertContains(t, stderr, "depends-on chunk ID is required")
}

func TestDependInvalidID(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.MustAdd("Solo")

	stderr := c.MustFail("depend", "abc", "1")
	cli.AssertContains(t, stderr, "invalid chunk id")
}

func TestDependNotFound(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	soloID := c.MustAdd("Solo")

	stderr := c.MustFail("depend", soloID, "99")
	cli.AssertContains(t, stderr, "not found")
}

func TestDependSelf(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	soloID := c.MustAdd("Solo")

	stderr := c.MustFail("depend", soloID, soloID)
	cli.AssertContains(t, stderr, "cannot depend on itself")
}

func TestDependDuplicate(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	baseID := c.MustAdd("Base")
	laterID := c.MustAdd("Later")

	c.MustRun("depend", laterID, baseID)

	stderr := c.MustFail("depend", laterID, baseID)
	cli.AssertContains(t, stderr, "already exists")
}

func TestDependRejectsCycle(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	aID := c.MustAdd("A")
	bID := c.MustAdd("B")
	cID := c.MustAdd("C")

	c.MustRun("depend", bID, aID)
	c.MustRun("depend", cID, bID)

	stderr := c.MustFail("depend", aID, cID)
	cli.AssertContains(t, stderr, "dependency cycle")
}

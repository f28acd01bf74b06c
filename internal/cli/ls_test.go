package cli_test

import (
	"strings"
	"testing"

	"chunklearn/internal/cli"
)

func TestLsEmpty(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout, stderr, exitCode := c.Run("ls")

	if got, want := exitCode, 0; got != want {
		t.Errorf("exitCode=%d, want=%d", got, want)
	}

	if stdout != "" {
		t.Errorf("stdout=%q, want empty", stdout)
	}

	_ = stderr
}

func TestLsInsertionOrder(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.MustAdd("First", "--difficulty", "5")
	c.MustAdd("Second", "--difficulty", "1")
	c.MustAdd("Third", "--difficulty", "3")

	stdout := c.MustRun("ls")
	lines := strings.Split(strings.TrimSpace(stdout), "\n")

	if got, want := len(lines), 3; got != want {
		t.Fatalf("line count=%d, want=%d\nstdout:\n%s", got, want, stdout)
	}

	// Insertion order, not difficulty order.
	cli.AssertContains(t, lines[0], "First")
	cli.AssertContains(t, lines[1], "Second")
	cli.AssertContains(t, lines[2], "Third")
}

func TestLsLineFormat(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	id := c.MustAdd("Learn SQL", "--difficulty", "2")

	stdout := c.MustRun("ls")
	cli.AssertContains(t, stdout, "#"+id+"  [D2][pending] - Learn SQL")
}

func TestLsStatusFilter(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	doneID := c.MustAdd("Done")
	c.MustAdd("Todo")
	c.MustRun("complete", doneID)

	stdout := c.MustRun("ls", "--status", "completed")
	cli.AssertContains(t, stdout, "Done")
	cli.AssertNotContains(t, stdout, "Todo")

	stdout = c.MustRun("ls", "--status", "pending")
	cli.AssertContains(t, stdout, "Todo")
	cli.AssertNotContains(t, stdout, "Done")
}

func TestLsInvalidStatus(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stderr := c.MustFail("ls", "--status", "bogus")

	cli.AssertContains(t, stderr, "invalid status")
}

func TestLsJSON(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	baseID := c.MustAdd("Base")
	c.MustAdd("Child", "--depends-on", baseID)

	var chunks []struct {
		ID        int64   `json:"id"`
		Title     string  `json:"title"`
		Status    string  `json:"status"`
		DependsOn []int64 `json:"depends_on"`
	}

	c.MustJSON(&chunks, "ls", "--json")

	if got, want := len(chunks), 2; got != want {
		t.Fatalf("chunk count=%d, want=%d", got, want)
	}

	if got, want := chunks[0].Title, "Base"; got != want {
		t.Errorf("chunks[0].Title=%q, want=%q", got, want)
	}

	if got, want := len(chunks[1].DependsOn), 1; got != want {
		t.Fatalf("chunks[1].DependsOn length=%d, want=%d", got, want)
	}

	if got, want := chunks[1].DependsOn[0], chunks[0].ID; got != want {
		t.Errorf("chunks[1].DependsOn[0]=%d, want=%d", got, want)
	}
}

func TestLsLimitOffset(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.MustAdd("One")
	c.MustAdd("Two")
	c.MustAdd("Three")

	stdout, _, _ := c.Run("ls", "--limit", "1", "--offset", "1")
	cli.AssertContains(t, stdout, "Two")
	cli.AssertNotContains(t, stdout, "One")
	cli.AssertNotContains(t, stdout, "Three")
}

func TestLsWarnsWhenTruncated(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.MustAdd("One")
	c.MustAdd("Two")
	c.MustAdd("Three")

	stdout, stderr, exitCode := c.Run("ls", "--limit", "2")

	// A truncated listing is flagged and signals via the exit code.
	if got, want := exitCode, 1; got != want {
		t.Errorf("exitCode=%d, want=%d", got, want)
	}

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if got, want := len(lines), 2; got != want {
		t.Fatalf("line count=%d, want=%d\nstdout:\n%s", got, want, stdout)
	}

	cli.AssertContains(t, stderr, "warning: showing 2 of 3 chunks")
	cli.AssertContains(t, stderr, "--limit 0")
}

func TestLsNoWarningWhenComplete(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.MustAdd("One")
	c.MustAdd("Two")

	// Everything fits under the limit.
	_, stderr, exitCode := c.Run("ls", "--limit", "2")
	if got, want := exitCode, 0; got != want {
		t.Errorf("exitCode=%d, want=%d", got, want)
	}

	cli.AssertNotContains(t, stderr, "warning:")

	// --limit 0 disables the cap entirely.
	c.MustAdd("Three")

	stdout := c.MustRun("ls", "--limit", "0")
	cli.AssertContains(t, stdout, "Three")
}

func TestLsTruncatedStatusFilterCountsFilteredOnly(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	doneID := c.MustAdd("Done")
	c.MustAdd("Todo")
	c.MustRun("complete", doneID)

	// One pending chunk fits in the limit; the completed one must not
	// count toward truncation.
	_, stderr, exitCode := c.Run("ls", "--status", "pending", "--limit", "1")
	if got, want := exitCode, 0; got != want {
		t.Errorf("exitCode=%d, want=%d", got, want)
	}

	cli.AssertNotContains(t, stderr, "warning:")
}

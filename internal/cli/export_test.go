package cli_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"chunklearn/internal/cli"
)

type exportDoc struct {
	Chunks []struct {
		ID     int64  `json:"id"`
		Title  string `json:"title"`
		Status string `json:"status"`
	} `json:"chunks"`
	Edges []struct {
		ChunkID     int64 `json:"chunk_id"`
		DependsOnID int64 `json:"depends_on_id"`
	} `json:"edges"`
}

func readExport(t *testing.T, path string) exportDoc {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}

	var doc exportDoc

	err = json.Unmarshal(data, &doc)
	if err != nil {
		t.Fatalf("export is not valid JSON: %v\ncontent:\n%s", err, data)
	}

	return doc
}

func TestExportWritesDefaultFile(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	baseID := c.MustAdd("Base")
	c.MustAdd("Later", "--depends-on", baseID)

	stdout := c.MustRun("export")
	cli.AssertContains(t, stdout, "exported 2 chunks, 1 edges")

	doc := readExport(t, filepath.Join(c.Dir, "chunks-export.json"))

	if got, want := len(doc.Chunks), 2; got != want {
		t.Fatalf("chunk count=%d, want=%d", got, want)
	}

	if got, want := doc.Chunks[0].Title, "Base"; got != want {
		t.Errorf("chunks[0].Title=%q, want=%q", got, want)
	}

	if got, want := len(doc.Edges), 1; got != want {
		t.Fatalf("edge count=%d, want=%d", got, want)
	}

	if got, want := doc.Edges[0].DependsOnID, int64(1); got != want {
		t.Errorf("edges[0].DependsOnID=%d, want=%d", got, want)
	}
}

func TestExportEmptyDatabase(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	stdout := c.MustRun("export")
	cli.AssertContains(t, stdout, "exported 0 chunks, 0 edges")

	doc := readExport(t, filepath.Join(c.Dir, "chunks-export.json"))

	if len(doc.Chunks) != 0 || len(doc.Edges) != 0 {
		t.Errorf("export should be empty, got %d chunks, %d edges", len(doc.Chunks), len(doc.Edges))
	}
}

func TestExportOutFlag(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.MustAdd("Solo")

	c.MustRun("export", "--out", "backup/snap.json")

	doc := readExport(t, filepath.Join(c.Dir, "backup", "snap.json"))

	if got, want := len(doc.Chunks), 1; got != want {
		t.Fatalf("chunk count=%d, want=%d", got, want)
	}
}

func TestExportReflectsCompletion(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	id := c.MustAdd("Solo")
	c.MustRun("complete", id)

	c.MustRun("export")

	doc := readExport(t, filepath.Join(c.Dir, "chunks-export.json"))

	if got, want := doc.Chunks[0].Status, "completed"; got != want {
		t.Errorf("chunks[0].Status=%q, want=%q", got, want)
	}
}

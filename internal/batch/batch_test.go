package batch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

var imageExts = map[string]bool{".png": true, ".jpg": true}

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestDiscoverFiltersAndSorts(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "b.png"))
	touch(t, filepath.Join(dir, "a.jpg"))
	touch(t, filepath.Join(dir, "notes.txt"))
	touch(t, filepath.Join(dir, "sub", "c.PNG"))

	tasks, err := Discover(dir, imageExts, true)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}

	var rels []string
	for _, task := range tasks {
		rels = append(rels, task.RelPath)
	}
	want := []string{"a.jpg", "b.png", filepath.Join("sub", "c.PNG")}
	if len(rels) != len(want) {
		t.Fatalf("got %v, want %v", rels, want)
	}
	for i := range want {
		if rels[i] != want[i] {
			t.Fatalf("got %v, want %v", rels, want)
		}
	}
}

func TestDiscoverNonRecursive(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "top.png"))
	touch(t, filepath.Join(dir, "sub", "nested.png"))

	tasks, err := Discover(dir, imageExts, false)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if len(tasks) != 1 || tasks[0].RelPath != "top.png" {
		t.Fatalf("expected only top.png, got %+v", tasks)
	}
}

func TestDiscoverSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "one.png")
	touch(t, path)

	tasks, err := Discover(path, imageExts, true)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Display != "one.png" {
		t.Fatalf("expected single task, got %+v", tasks)
	}
}

func TestDiscoverSingleFileUnsupported(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "readme.txt")
	touch(t, path)

	if _, err := Discover(path, imageExts, true); err == nil {
		t.Fatal("expected error for unsupported single file")
	}
}

func TestDiscoverMissingRoot(t *testing.T) {
	if _, err := Discover(filepath.Join(t.TempDir(), "nope"), imageExts, true); err == nil {
		t.Fatal("expected error for missing root")
	}
}

func TestRunAggregatesOutcomes(t *testing.T) {
	tasks := []Task{
		{Path: "/a", Display: "a"},
		{Path: "/b", Display: "b"},
		{Path: "/c", Display: "c"},
	}

	process := func(_ context.Context, task Task) Outcome {
		switch task.Display {
		case "a":
			return Outcome{Status: StatusOK, BytesBefore: 100, BytesAfter: 40}
		case "b":
			return Outcome{Status: StatusSkipped, Reason: "below threshold"}
		default:
			return Outcome{Status: StatusFailed, Reason: "decode failed"}
		}
	}

	summary, outcomes := Run(context.Background(), tasks, process, nil)

	if summary.Total != 3 || summary.Succeeded != 1 || summary.Skipped != 1 || summary.Failed != 1 {
		t.Fatalf("bad summary: %+v", summary)
	}
	if summary.SpaceSaved() != 60 {
		t.Fatalf("expected 60 bytes saved, got %d", summary.SpaceSaved())
	}
	if len(outcomes) != 3 {
		t.Fatalf("expected 3 outcomes, got %d", len(outcomes))
	}
	if outcomes[1].Display != "b" {
		t.Fatalf("outcome display not backfilled: %+v", outcomes[1])
	}
}

func TestRunSequentialOrder(t *testing.T) {
	tasks := []Task{{Display: "1"}, {Display: "2"}, {Display: "3"}}

	var order []string
	process := func(_ context.Context, task Task) Outcome {
		order = append(order, task.Display)
		return Outcome{Status: StatusOK}
	}

	Run(context.Background(), tasks, process, nil)

	if len(order) != 3 || order[0] != "1" || order[1] != "2" || order[2] != "3" {
		t.Fatalf("tasks processed out of order: %v", order)
	}
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	tasks := []Task{{Display: "1"}, {Display: "2"}}

	calls := 0
	process := func(_ context.Context, _ Task) Outcome {
		calls++
		cancel()
		return Outcome{Status: StatusOK}
	}

	summary, _ := Run(ctx, tasks, process, nil)
	if calls != 1 {
		t.Fatalf("expected 1 call after cancel, got %d", calls)
	}
	if summary.Succeeded != 1 {
		t.Fatalf("bad summary: %+v", summary)
	}
}

func TestRunSendsProgress(t *testing.T) {
	tasks := []Task{{Display: "a"}}
	updates := make(chan ProgressUpdate, 8)

	process := func(_ context.Context, _ Task) Outcome {
		return Outcome{Status: StatusOK, BytesBefore: 10, BytesAfter: 4}
	}

	Run(context.Background(), tasks, process, updates)
	close(updates)

	var total, processed int
	var saved int64
	for u := range updates {
		total += u.TotalDelta
		processed += u.ProcessedDelta
		saved += u.BytesSavedDelta
	}
	if total != 1 || processed != 1 || saved != 6 {
		t.Fatalf("got total=%d processed=%d saved=%d", total, processed, saved)
	}
}

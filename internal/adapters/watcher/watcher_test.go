package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"stickies/internal/adapters/filesystem"
	"stickies/internal/domain"
	"stickies/internal/logging"
)

func TestMain(m *testing.M) {
	logging.InitNop()
	os.Exit(m.Run())
}

func startWatcher(t *testing.T) (*Watcher, string) {
	t.Helper()
	repo := filesystem.NewRepository(t.TempDir(), "Sticky Notes")
	w, err := New(repo, 30*time.Millisecond)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { w.Close() })
	return w, repo.FolderPath()
}

func next(t *testing.T, w *Watcher) domain.Change {
	t.Helper()
	select {
	case ch, ok := <-w.Changes():
		if !ok {
			t.Fatal("changes channel closed")
		}
		return ch
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for a change")
	}
	return domain.Change{}
}

func TestWatcher_CreateModifyDelete(t *testing.T) {
	w, dir := startWatcher(t)
	p := filepath.Join(dir, "a.md")

	if err := os.WriteFile(p, []byte("first"), 0644); err != nil {
		t.Fatal(err)
	}
	ch := next(t, w)
	if ch.Kind != domain.ChangeCreated || ch.Path != "Sticky Notes/a.md" || ch.Item.Title != "first" {
		t.Fatalf("expected created a.md, got %+v", ch)
	}

	if err := os.WriteFile(p, []byte("second"), 0644); err != nil {
		t.Fatal(err)
	}
	ch = next(t, w)
	if ch.Kind != domain.ChangeModified || ch.Item.Title != "second" {
		t.Fatalf("expected modified a.md, got %+v", ch)
	}

	if err := os.Remove(p); err != nil {
		t.Fatal(err)
	}
	ch = next(t, w)
	if ch.Kind != domain.ChangeDeleted || ch.Path != "Sticky Notes/a.md" {
		t.Fatalf("expected deleted a.md, got %+v", ch)
	}
}

func TestWatcher_Rename(t *testing.T) {
	w, dir := startWatcher(t)
	oldPath := filepath.Join(dir, "old.md")
	if err := os.WriteFile(oldPath, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	next(t, w)

	if err := os.Rename(oldPath, filepath.Join(dir, "new.md")); err != nil {
		t.Fatal(err)
	}

	ch := next(t, w)
	if ch.Kind != domain.ChangeRenamed || ch.OldPath != "Sticky Notes/old.md" || ch.Path != "Sticky Notes/new.md" {
		t.Fatalf("expected rename old.md -> new.md, got %+v", ch)
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	w, dir := startWatcher(t)

	if err := os.WriteFile(filepath.Join(dir, "scratch.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "b.md"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if ch := next(t, w); ch.Path != "Sticky Notes/b.md" {
		t.Fatalf("expected only the note to be reported, got %+v", ch)
	}
}

func TestWatcher_CloseClosesChanges(t *testing.T) {
	w, _ := startWatcher(t)

	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if _, ok := <-w.Changes(); ok {
		t.Error("changes channel should be closed")
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close should be a no-op, got %v", err)
	}
}

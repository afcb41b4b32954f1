package mcp

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"stickies/internal/adapters/memory"
	"stickies/internal/application"
	"stickies/internal/domain"
	"stickies/internal/logging"
)

func TestMain(m *testing.M) {
	logging.InitNop()
	os.Exit(m.Run())
}

// fakeRepo is an in-memory ports.NoteRepository
type fakeRepo struct {
	notes  map[string]domain.Item
	colors map[string]string
}

func (r *fakeRepo) ListNotes(ctx context.Context) ([]domain.Item, error) {
	var items []domain.Item
	for _, it := range r.notes {
		items = append(items, it)
	}
	return items, nil
}

func (r *fakeRepo) LoadNote(ctx context.Context, path string) (domain.Item, error) {
	it, ok := r.notes[path]
	if !ok {
		return domain.Item{}, os.ErrNotExist
	}
	return it, nil
}

func (r *fakeRepo) CreateNote(ctx context.Context) (domain.Item, error) {
	it := domain.Item{Path: "Sticky Notes/1718000000000.md", ModifiedAt: 100}
	r.notes[it.Path] = it
	return it, nil
}

func (r *fakeRepo) DeleteNote(ctx context.Context, path string) error {
	delete(r.notes, path)
	return nil
}

func (r *fakeRepo) WriteColor(ctx context.Context, path, color string) error {
	r.colors[path] = color
	return nil
}

func (r *fakeRepo) AbsPath(path string) string {
	return "/vault/" + path
}

func setup(t *testing.T, names ...string) (*Session, *fakeRepo) {
	t.Helper()
	repo := &fakeRepo{notes: map[string]domain.Item{}, colors: map[string]string{}}
	var items []domain.Item
	for i, name := range names {
		it := domain.Item{Path: "Sticky Notes/" + name + ".md", Title: "Note " + name, ModifiedAt: int64(len(names) - i)}
		repo.notes[it.Path] = it
		items = append(items, it)
	}
	board := application.NewBoard(memory.NewStore(), application.BoardConfig{PageSize: 2}, nil)
	board.Open(items)
	return NewSession(board, repo, true), repo
}

func call(t *testing.T, h server.ToolHandlerFunc, args map[string]any) (string, bool) {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	res, err := h(context.Background(), req)
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	var sb strings.Builder
	for _, c := range res.Content {
		if text, ok := c.(mcp.TextContent); ok {
			sb.WriteString(text.Text)
		}
	}
	return sb.String(), res.IsError
}

func displayed(sess *Session) []string {
	var ids []string
	_ = sess.Do(func(board *application.Board) error {
		ids = domain.IDs(board.Ordered())
		return nil
	})
	return ids
}

func TestListNotes(t *testing.T) {
	sess, _ := setup(t, "a", "b", "c")

	tests := []struct {
		name    string
		args    map[string]any
		want    []string
		notWant []string
	}{
		{name: "first page", want: []string{"a  Note a", "b  Note b", "2 of 3"}, notWant: []string{"c  Note c"}},
		{name: "all", args: map[string]any{"all": true}, want: []string{"c  Note c", "3 of 3"}},
		{name: "limit", args: map[string]any{"all": true, "limit": 1}, want: []string{"1 of 3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, isErr := call(t, listHandler(sess), tt.args)
			if isErr {
				t.Fatalf("unexpected tool error: %s", out)
			}
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(out, w) {
					t.Errorf("output should not contain %q:\n%s", w, out)
				}
			}
		})
	}
}

func TestGetAndResolve(t *testing.T) {
	sess, _ := setup(t, "a")

	out, isErr := call(t, resolvePathHandler(sess), map[string]any{"id": "a"})
	if isErr || out != "/vault/Sticky Notes/a.md" {
		t.Errorf("unexpected resolve result %q (error %v)", out, isErr)
	}

	out, isErr = call(t, getHandler(sess), map[string]any{"id": "a"})
	if isErr || !strings.Contains(out, "Title:    Note a") {
		t.Errorf("unexpected get result %q (error %v)", out, isErr)
	}

	if _, isErr := call(t, getHandler(sess), map[string]any{"id": "missing"}); !isErr {
		t.Error("expected error for unknown note")
	}
}

func TestReorder(t *testing.T) {
	sess, _ := setup(t, "a", "b", "c")

	if out, isErr := call(t, reorderHandler(sess), map[string]any{"source_id": "a", "target_id": "c"}); isErr {
		t.Fatalf("unexpected tool error: %s", out)
	}
	if diff := cmp.Diff([]string{"b", "c", "a"}, displayed(sess)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	if _, isErr := call(t, reorderHandler(sess), map[string]any{"source_id": "a"}); !isErr {
		t.Error("expected error without target")
	}
}

func TestSetColor_WritesBack(t *testing.T) {
	sess, repo := setup(t, "a")

	if out, isErr := call(t, setColorHandler(sess), map[string]any{"id": "a", "color": "blue"}); isErr {
		t.Fatalf("unexpected tool error: %s", out)
	}
	if repo.colors["Sticky Notes/a.md"] != "blue" {
		t.Errorf("expected frontmatter write, got %v", repo.colors)
	}
}

func TestSetSort(t *testing.T) {
	sess, _ := setup(t, "a", "b")

	if out, isErr := call(t, setSortHandler(sess), map[string]any{"mode": "modified-asc"}); isErr {
		t.Fatalf("unexpected tool error: %s", out)
	}
	if diff := cmp.Diff([]string{"b", "a"}, displayed(sess)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	out, isErr := call(t, setSortHandler(sess), map[string]any{"mode": "sideways"})
	if !isErr || !strings.Contains(out, "manual") {
		t.Errorf("expected error listing valid modes, got %q", out)
	}
}

func TestResetOrder(t *testing.T) {
	sess, _ := setup(t, "a", "b")
	call(t, reorderHandler(sess), map[string]any{"source_id": "b", "target_id": "a"})

	if out, isErr := call(t, resetOrderHandler(sess), nil); isErr {
		t.Fatalf("unexpected tool error: %s", out)
	}
	if diff := cmp.Diff([]string{"a", "b"}, displayed(sess)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestCreateAndDelete(t *testing.T) {
	sess, repo := setup(t, "a")

	out, isErr := call(t, createHandler(sess), nil)
	if isErr || !strings.Contains(out, "/vault/Sticky Notes/1718000000000.md") {
		t.Fatalf("unexpected create result %q", out)
	}
	if diff := cmp.Diff([]string{"1718000000000", "a"}, displayed(sess)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	if out, isErr := call(t, deleteHandler(sess), map[string]any{"id": "a"}); isErr {
		t.Fatalf("unexpected tool error: %s", out)
	}
	if _, ok := repo.notes["Sticky Notes/a.md"]; ok {
		t.Error("expected note to be deleted")
	}
}

func TestWatch(t *testing.T) {
	sess, _ := setup(t, "a")
	changes := make(chan domain.Change, 1)
	changes <- domain.Change{Kind: domain.ChangeDeleted, Path: "Sticky Notes/a.md"}
	close(changes)

	sess.Watch(context.Background(), changes)

	if got := displayed(sess); len(got) != 0 {
		t.Errorf("expected no notes, got %v", got)
	}
}

func TestSession_CloseStopsWatch(t *testing.T) {
	sess, _ := setup(t, "a", "b")
	changes := make(chan domain.Change)
	sess.Start(context.Background(), changes)

	// Unbuffered: the send returns once the watch loop holds the change.
	changes <- domain.Change{Kind: domain.ChangeDeleted, Path: "Sticky Notes/a.md"}
	sess.Close()

	_ = sess.Do(func(board *application.Board) error {
		if board.IsOpen() {
			t.Error("expected the board to be closed")
		}
		if board.Total() != 1 {
			t.Errorf("expected the pending change to be applied, got %d notes", board.Total())
		}
		return nil
	})
}

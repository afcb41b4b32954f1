package application

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"stickies/internal/adapters/memory"
	"stickies/internal/domain"
)

func note(name string, created, modified int64) domain.Item {
	return domain.Item{Path: "Sticky Notes/" + name + ".md", CreatedAt: created, ModifiedAt: modified}
}

func newTestBoard(t *testing.T, pageSize int) (*Board, *memory.Store, *[]View) {
	t.Helper()
	kv := memory.NewStore()
	b := NewBoard(kv, BoardConfig{PageSize: pageSize, AutoScroll: DefaultAutoScrollConfig()}, &fakeScroller{})
	views := &[]View{}
	b.Subscribe(func(v View) { *views = append(*views, v) })
	return b, kv, views
}

func ids(items []domain.Item) []string {
	return domain.IDs(items)
}

func TestBoard_OpenSortsByModifiedDesc(t *testing.T) {
	b, _, views := newTestBoard(t, 20)

	b.Open([]domain.Item{note("n1", 1, 10), note("n2", 2, 30), note("n3", 3, 20)})

	if len(*views) != 1 {
		t.Fatalf("expected one notification on open, got %d", len(*views))
	}
	v := (*views)[0]
	if diff := cmp.Diff([]string{"n2", "n3", "n1"}, ids(v.Items)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if v.Mode != domain.SortModifiedDesc || v.Total != 3 {
		t.Errorf("unexpected view header: mode=%s total=%d", v.Mode, v.Total)
	}
}

func TestBoard_DragFromTimeSortSwitchesToManual(t *testing.T) {
	b, kv, _ := newTestBoard(t, 20)
	b.Open([]domain.Item{note("n1", 1, 10), note("n2", 2, 30), note("n3", 3, 20)})

	// Displayed as [n2, n3, n1]; move n1 to the front.
	b.DragStart("n1")
	if !b.Drop("n2") {
		t.Fatal("expected the drop to reorder")
	}

	if b.SortMode() != domain.SortManual {
		t.Errorf("expected manual mode, got %s", b.SortMode())
	}
	if diff := cmp.Diff([]string{"n1", "n2", "n3"}, ids(b.Displayed())); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if raw, _, _ := kv.Get(KeyManualOrder); raw != `["n1","n2","n3"]` {
		t.Errorf("manual order not persisted, got %s", raw)
	}
	if raw, _, _ := kv.Get(KeySortMode); raw != `"manual"` {
		t.Errorf("sort mode not persisted, got %s", raw)
	}
}

func TestBoard_NoOpDrops(t *testing.T) {
	b, kv, _ := newTestBoard(t, 20)
	b.Open([]domain.Item{note("A", 1, 3), note("B", 2, 2), note("C", 3, 1)})

	b.DragStart("A")
	if b.Drop("A") {
		t.Error("dropping onto itself should be a no-op")
	}
	b.DragStart("missing")
	if b.Drop("A") {
		t.Error("dragging an unknown note should be a no-op")
	}
	if b.SortMode() != domain.SortModifiedDesc {
		t.Errorf("no-op drops must not change the mode, got %s", b.SortMode())
	}
	if _, ok, _ := kv.Get(KeyManualOrder); ok {
		t.Error("no-op drops must not persist an order")
	}
}

func TestBoard_ApplyReconcilesManualOrder(t *testing.T) {
	kv := memory.NewStore()
	kv.Set(KeyManualOrder, `["n3","n1"]`)
	kv.Set(KeySortMode, `"manual"`)
	b := NewBoard(kv, BoardConfig{PageSize: 20}, nil)

	b.Open([]domain.Item{note("n1", 1, 1), note("n2", 2, 2), note("n3", 3, 3)})
	if diff := cmp.Diff([]string{"n3", "n1", "n2"}, ids(b.Ordered())); diff != "" {
		t.Errorf("open should append unseen notes (-want +got):\n%s", diff)
	}

	b.Apply(domain.Change{Kind: domain.ChangeDeleted, Path: "Sticky Notes/n1.md"})
	if diff := cmp.Diff([]string{"n3", "n2"}, b.ManualOrder()); diff != "" {
		t.Errorf("delete should drop the note from the manual order (-want +got):\n%s", diff)
	}

	b.Apply(domain.Change{Kind: domain.ChangeCreated, Path: "Sticky Notes/n4.md", Item: note("n4", 4, 4)})
	if diff := cmp.Diff([]string{"n3", "n2", "n4"}, ids(b.Ordered())); diff != "" {
		t.Errorf("create should append the note (-want +got):\n%s", diff)
	}

	b.Apply(domain.Change{
		Kind:    domain.ChangeRenamed,
		OldPath: "Sticky Notes/n3.md",
		Path:    "Sticky Notes/first.md",
		Item:    note("first", 3, 3),
	})
	if diff := cmp.Diff([]string{"n2", "n4", "first"}, ids(b.Ordered())); diff != "" {
		t.Errorf("rename is a delete plus an append (-want +got):\n%s", diff)
	}
}

func TestBoard_ManualModeWithoutOrderFallsBack(t *testing.T) {
	kv := memory.NewStore()
	kv.Set(KeySortMode, `"manual"`)
	b := NewBoard(kv, BoardConfig{PageSize: 20}, nil)

	b.Open([]domain.Item{note("old", 1, 1), note("new", 2, 2)})

	if diff := cmp.Diff([]string{"new", "old"}, ids(b.Ordered())); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestBoard_PaginationWindow(t *testing.T) {
	var items []domain.Item
	for i := range 45 {
		items = append(items, note(fmt.Sprintf("n%02d", i), int64(i), int64(i)))
	}

	b, _, views := newTestBoard(t, 20)
	b.Open(items[:15])
	if got := len(b.Displayed()); got != 15 {
		t.Fatalf("15 notes with a page of 20 should display 15, got %d", got)
	}
	if b.NearBottom() {
		t.Error("growing past the total should be refused")
	}

	b.Open(items)
	*views = nil
	if got := len(b.Displayed()); got != 20 {
		t.Fatalf("expected first page of 20, got %d", got)
	}
	if !b.NearBottom() || len(b.Displayed()) != 40 {
		t.Fatalf("expected 40 after one growth, got %d", len(b.Displayed()))
	}
	b.NearBottom()
	if b.NearBottom() {
		t.Error("window already covers every note")
	}
	if len(*views) != 2 {
		t.Errorf("expected two growth notifications, got %d", len(*views))
	}

	ordered := b.Ordered()
	if diff := cmp.Diff(ids(ordered[:len(b.Displayed())]), ids(b.Displayed())); diff != "" {
		t.Errorf("displayed must be a prefix of the ordered sequence (-want +got):\n%s", diff)
	}
}

func TestBoard_ColorsAndColorMode(t *testing.T) {
	b, _, _ := newTestBoard(t, 20)
	b.Open([]domain.Item{
		{Path: "Sticky Notes/a.md", ModifiedAt: 3},
		{Path: "Sticky Notes/b.md", ModifiedAt: 2, Color: "yellow"},
		{Path: "Sticky Notes/c.md", ModifiedAt: 1},
	})

	if c, ok := b.Color("b"); !ok || c != "yellow" {
		t.Errorf("frontmatter color should be seeded, got %q", c)
	}

	b.SetColor("c", "blue")
	if err := b.SetSortMode(domain.SortColorGroup); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"a", "c", "b"}, ids(b.Ordered())); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	b.SetColor("b", "")
	if it, _ := b.Item("b"); it.Color != "" {
		t.Errorf("cleared color should not fall back to frontmatter, got %q", it.Color)
	}
}

func TestBoard_UserColorSurvivesFrontmatter(t *testing.T) {
	tests := []struct {
		name   string
		color  string
		want   string
		wantOK bool
	}{
		{name: "changed", color: "blue", want: "blue", wantOK: true},
		{name: "cleared", color: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, kv, _ := newTestBoard(t, 20)
			a := note("a", 1, 1)
			a.Color = "red"
			b.Open([]domain.Item{a})

			b.SetColor("a", tt.color)

			edited := a
			edited.ModifiedAt = 2
			b.Apply(domain.Change{Kind: domain.ChangeModified, Path: a.Path, Item: edited})
			if got, ok := b.Color("a"); got != tt.want || ok != tt.wantOK {
				t.Errorf("after modification: Color(a) = %q, %v; want %q, %v", got, ok, tt.want, tt.wantOK)
			}

			reopened := NewBoard(kv, BoardConfig{PageSize: 20}, nil)
			reopened.Open([]domain.Item{edited})
			if got, ok := reopened.Color("a"); got != tt.want || ok != tt.wantOK {
				t.Errorf("after reopen: Color(a) = %q, %v; want %q, %v", got, ok, tt.want, tt.wantOK)
			}
			if it, _ := reopened.Item("a"); it.Color != tt.want {
				t.Errorf("after reopen: item color %q, want %q", it.Color, tt.want)
			}
		})
	}
}

func TestBoard_SetSortModeRejectsInvalid(t *testing.T) {
	b, _, _ := newTestBoard(t, 20)
	if err := b.SetSortMode(domain.SortMode(99)); err != ErrInvalidSortMode {
		t.Errorf("expected ErrInvalidSortMode, got %v", err)
	}
}

func TestBoard_ResetOrder(t *testing.T) {
	b, kv, _ := newTestBoard(t, 20)
	b.Open([]domain.Item{note("A", 1, 1), note("B", 2, 2)})
	b.DragStart("A")
	b.Drop("B")

	b.ResetOrder()

	if len(b.ManualOrder()) != 0 {
		t.Errorf("expected no manual order, got %v", b.ManualOrder())
	}
	if _, ok, _ := kv.Get(KeyManualOrder); ok {
		t.Error("manual order should be deleted from the store")
	}
	if diff := cmp.Diff([]string{"B", "A"}, ids(b.Ordered())); diff != "" {
		t.Errorf("manual mode without an order falls back to newest first (-want +got):\n%s", diff)
	}
}

func TestBoard_Resize(t *testing.T) {
	b, _, views := newTestBoard(t, 20)

	if !b.Resize(80, 24) {
		t.Error("first size should be accepted")
	}
	if b.Resize(80, 24) {
		t.Error("unchanged size should be ignored")
	}
	if b.Resize(0, 24) || b.Resize(80, 0) {
		t.Error("zero dimensions should be ignored")
	}
	if len(*views) != 1 || (*views)[0].Width != 80 {
		t.Errorf("expected a single resize notification, got %+v", *views)
	}
}

func TestBoard_AutoScrollLifecycle(t *testing.T) {
	s := &fakeScroller{}
	b := NewBoard(memory.NewStore(), BoardConfig{PageSize: 20, AutoScroll: DefaultAutoScrollConfig()}, s)
	b.Open([]domain.Item{note("A", 1, 1), note("B", 2, 2)})

	if _, ok := b.DragOver(0, 20); ok {
		t.Error("no scrolling without a drag")
	}

	b.DragStart("A")
	f, ok := b.DragOver(19, 20)
	if !ok {
		t.Fatal("expected a frame at the bottom edge")
	}
	if _, ok := b.Tick(f); !ok {
		t.Fatal("expected the loop to continue")
	}

	b.DragEnd()
	if _, ok := b.Tick(f + 1); ok {
		t.Error("ending the drag should stop the loop")
	}

	b.DragStart("A")
	f, _ = b.DragOver(0, 20)
	b.Close()
	if _, ok := b.Tick(f); ok {
		t.Error("frames after close must be ignored")
	}
	if len(s.calls) != 1 {
		t.Errorf("expected exactly one scroll step, got %v", s.calls)
	}
}

func TestBoard_SubscribeAndClose(t *testing.T) {
	b := NewBoard(memory.NewStore(), BoardConfig{PageSize: 20}, nil)

	var first, second int
	unsubscribe := b.Subscribe(func(View) { first++ })
	b.Subscribe(func(View) { second++ })

	b.Open([]domain.Item{note("A", 1, 1)})
	unsubscribe()
	b.SetColor("A", "red")
	b.Close()
	b.SetColor("A", "blue")

	if first != 1 {
		t.Errorf("unsubscribed observer should see one view, got %d", first)
	}
	if second != 2 {
		t.Errorf("close should drop remaining observers, got %d views", second)
	}
}

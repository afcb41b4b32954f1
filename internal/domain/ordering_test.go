package domain

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func note(id string, created, modified int64) Item {
	return Item{
		ID:         id,
		Name:       id,
		Path:       "Sticky Notes/" + id + ".md",
		CreatedAt:  created,
		ModifiedAt: modified,
	}
}

func TestOrder_Modes(t *testing.T) {
	items := []Item{
		note("n1", 300, 10),
		note("n2", 100, 30),
		note("n3", 200, 20),
	}
	colors := map[string]string{"n1": "yellow", "n3": "blue"}

	tests := []struct {
		name   string
		mode   SortMode
		manual []string
		want   []string
	}{
		{name: "modified desc", mode: SortModifiedDesc, want: []string{"n2", "n3", "n1"}},
		{name: "modified asc", mode: SortModifiedAsc, want: []string{"n1", "n3", "n2"}},
		{name: "created desc", mode: SortCreatedDesc, want: []string{"n1", "n3", "n2"}},
		{name: "created asc", mode: SortCreatedAsc, want: []string{"n2", "n3", "n1"}},
		{name: "color groups untagged first", mode: SortColorGroup, want: []string{"n2", "n3", "n1"}},
		{name: "manual", mode: SortManual, manual: []string{"n3", "n1", "n2"}, want: []string{"n3", "n1", "n2"}},
		{name: "manual appends missing in collection order", mode: SortManual, manual: []string{"n3"}, want: []string{"n3", "n1", "n2"}},
		{name: "manual drops absent ids", mode: SortManual, manual: []string{"gone", "n2", "n1", "n3"}, want: []string{"n2", "n1", "n3"}},
		{name: "empty manual falls back to modified desc", mode: SortManual, want: []string{"n2", "n3", "n1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IDs(Order(items, tt.mode, tt.manual, colors))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Order() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestOrder_TiesBrokenByIdentifier(t *testing.T) {
	items := []Item{
		note("c", 1, 5),
		note("a", 1, 5),
		note("b", 1, 5),
	}

	for _, mode := range SortModes {
		got := IDs(Order(items, mode, nil, nil))
		if diff := cmp.Diff([]string{"a", "b", "c"}, got); diff != "" {
			t.Errorf("%s: ties not broken by id (-want +got):\n%s", mode, diff)
		}
	}
}

func TestOrder_DoesNotMutateInput(t *testing.T) {
	items := []Item{note("b", 1, 1), note("a", 2, 2)}
	before := IDs(items)

	Order(items, SortModifiedDesc, nil, nil)

	if diff := cmp.Diff(before, IDs(items)); diff != "" {
		t.Errorf("input mutated (-want +got):\n%s", diff)
	}
}

func randomItems(r *rand.Rand, n int) []Item {
	items := make([]Item, n)
	for i := range items {
		// Small timestamp range forces plenty of ties.
		name := fmt.Sprintf("n%02d", r.Intn(40))
		items[i] = Item{
			Name:       name,
			Path:       fmt.Sprintf("d%d/%s.md", i, name),
			CreatedAt:  r.Int63n(5),
			ModifiedAt: r.Int63n(5),
		}
	}
	AssignIDs(items)
	return items
}

func TestOrder_Properties(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	palette := []string{"", "blue", "green", "yellow"}

	for iter := 0; iter < 200; iter++ {
		items := randomItems(r, r.Intn(30))
		colors := map[string]string{}
		for _, it := range items {
			colors[it.ID] = palette[r.Intn(len(palette))]
		}
		manual := IDs(items)
		r.Shuffle(len(manual), func(i, j int) { manual[i], manual[j] = manual[j], manual[i] })
		manual = append(manual[:len(manual)/2:len(manual)/2], "ghost")

		for _, mode := range SortModes {
			first := Order(items, mode, manual, colors)
			second := Order(items, mode, manual, colors)
			if diff := cmp.Diff(IDs(first), IDs(second)); diff != "" {
				t.Fatalf("%s not deterministic:\n%s", mode, diff)
			}

			if len(first) != len(items) {
				t.Fatalf("%s: got %d items, want %d", mode, len(first), len(items))
			}
			seen := map[string]bool{}
			for _, it := range first {
				if seen[it.ID] {
					t.Fatalf("%s: duplicate %s", mode, it.ID)
				}
				seen[it.ID] = true
			}

			if mode == SortModifiedDesc {
				for i := 1; i < len(first); i++ {
					if first[i-1].ModifiedAt < first[i].ModifiedAt {
						t.Fatalf("modified desc not monotonic at %d: %d < %d",
							i, first[i-1].ModifiedAt, first[i].ModifiedAt)
					}
				}
			}
		}
	}
}

func TestOrder_ScenarioModifiedDesc(t *testing.T) {
	items := []Item{
		note("n1", 0, 10),
		note("n2", 0, 30),
		note("n3", 0, 20),
	}

	got := IDs(Order(items, SortModifiedDesc, nil, nil))
	if diff := cmp.Diff([]string{"n2", "n3", "n1"}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

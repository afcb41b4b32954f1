package domain

import (
	"cmp"
	"slices"
	"strings"
)

// Order returns the items arranged for the given sort mode.
//
// Order is pure: it never mutates its inputs and returns the same sequence for the same
// inputs. Every item appears exactly once in the result regardless of mode. Ties are broken
// by identifier ascending.
func Order(items []Item, mode SortMode, manual []string, colors map[string]string) []Item {
	out := slices.Clone(items)

	switch mode {
	case SortModifiedAsc:
		slices.SortFunc(out, func(a, b Item) int {
			return byKeyThenID(a.ModifiedAt, b.ModifiedAt, a, b)
		})
	case SortCreatedDesc:
		slices.SortFunc(out, func(a, b Item) int {
			return byKeyThenID(b.CreatedAt, a.CreatedAt, a, b)
		})
	case SortCreatedAsc:
		slices.SortFunc(out, func(a, b Item) int {
			return byKeyThenID(a.CreatedAt, b.CreatedAt, a, b)
		})
	case SortColorGroup:
		slices.SortFunc(out, func(a, b Item) int {
			// Missing tags compare as "", so untagged notes lead.
			if c := strings.Compare(colors[a.ID], colors[b.ID]); c != 0 {
				return c
			}
			return strings.Compare(a.ID, b.ID)
		})
	case SortManual:
		if len(manual) == 0 {
			return Order(items, SortModifiedDesc, nil, colors)
		}
		return orderManual(out, manual)
	default:
		slices.SortFunc(out, func(a, b Item) int {
			return byKeyThenID(b.ModifiedAt, a.ModifiedAt, a, b)
		})
	}

	return out
}

// byKeyThenID compares on the key first. Callers swap x and y for descending order; the
// identifier tie-break stays ascending either way.
func byKeyThenID(x, y int64, a, b Item) int {
	if c := cmp.Compare(x, y); c != 0 {
		return c
	}
	return strings.Compare(a.ID, b.ID)
}

// orderManual places items listed in manual first, in that order, followed by the remaining
// items in collection order. Identifiers in manual that match no item are skipped, and
// duplicates in manual are placed once.
func orderManual(items []Item, manual []string) []Item {
	pos := make(map[string]int, len(items))
	for i, it := range items {
		pos[it.ID] = i
	}

	out := make([]Item, 0, len(items))
	placed := make([]bool, len(items))
	for _, id := range manual {
		i, ok := pos[id]
		if !ok || placed[i] {
			continue
		}
		placed[i] = true
		out = append(out, items[i])
	}
	for i, it := range items {
		if !placed[i] {
			out = append(out, it)
		}
	}
	return out
}

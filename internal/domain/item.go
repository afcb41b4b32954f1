package domain

import (
	"path"
	"slices"
	"strings"
)

// Item represents one sticky note under management
type Item struct {
	ID         string // Stable identifier, e.g. "1718000000000" (see AssignIDs)
	Path       string // Vault-relative, slash separated, e.g. "Sticky Notes/1718000000000.md"
	Name       string // Base name without extension
	Title      string // First non-empty body line, used as card text
	Color      string // Color tag from frontmatter, empty if unset
	CreatedAt  int64  // Unix milliseconds
	ModifiedAt int64  // Unix milliseconds
}

// NameFromPath returns the base name of a note path without its extension
func NameFromPath(p string) string {
	base := path.Base(strings.ReplaceAll(p, "\\", "/"))
	return strings.TrimSuffix(base, path.Ext(base))
}

// AssignIDs derives identifiers from note names.
//
// Notes whose names are unique keep their name as identifier. When several notes share a
// name, the one with the lexicographically smallest path keeps the bare name and the others
// are identified by their path without extension. Names never contain a slash, so the two
// forms cannot collide, and the result does not depend on arrival order.
func AssignIDs(items []Item) {
	byName := make(map[string][]int, len(items))
	for i := range items {
		if items[i].Name == "" {
			items[i].Name = NameFromPath(items[i].Path)
		}
		byName[items[i].Name] = append(byName[items[i].Name], i)
	}

	for name, idxs := range byName {
		if len(idxs) == 1 {
			items[idxs[0]].ID = name
			continue
		}
		slices.SortFunc(idxs, func(a, b int) int {
			return strings.Compare(items[a].Path, items[b].Path)
		})
		items[idxs[0]].ID = name
		for _, i := range idxs[1:] {
			items[i].ID = strings.TrimSuffix(items[i].Path, path.Ext(items[i].Path))
		}
	}
}

// IDs returns the identifiers of items in order
func IDs(items []Item) []string {
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}

// ChangeKind identifies an item-set notification
type ChangeKind int

const (
	ChangeCreated ChangeKind = iota
	ChangeDeleted
	ChangeModified
	ChangeRenamed
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeCreated:
		return "created"
	case ChangeDeleted:
		return "deleted"
	case ChangeModified:
		return "modified"
	case ChangeRenamed:
		return "renamed"
	default:
		return "unknown"
	}
}

// Change is a notification from the document store about the note set
type Change struct {
	Kind    ChangeKind
	Path    string // Affected path (the new path for renames)
	OldPath string // Previous path, only set for renames
	Item    Item   // Current item; zero for deletions
}

// Collection is the live, mutable set of notes in arrival order
type Collection struct {
	items []Item
}

// NewCollection creates a collection from an initial load
func NewCollection(items []Item) *Collection {
	c := &Collection{items: slices.Clone(items)}
	AssignIDs(c.items)
	return c
}

// Items returns a copy of the items in arrival order
func (c *Collection) Items() []Item {
	return slices.Clone(c.items)
}

// IDs returns the identifiers in arrival order
func (c *Collection) IDs() []string {
	return IDs(c.items)
}

// Len returns the number of items
func (c *Collection) Len() int {
	return len(c.items)
}

// Get returns the item with the given identifier
func (c *Collection) Get(id string) (Item, bool) {
	for _, it := range c.items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// ByPath returns the item stored at path
func (c *Collection) ByPath(p string) (Item, bool) {
	for _, it := range c.items {
		if it.Path == p {
			return it, true
		}
	}
	return Item{}, false
}

// Apply mutates the collection according to a notification.
// It reports whether the collection changed.
func (c *Collection) Apply(ch Change) bool {
	it := ch.Item
	if it.Path == "" && ch.Kind != ChangeDeleted {
		it.Path = ch.Path
	}
	if it.Path != "" {
		it.Name = NameFromPath(it.Path)
	}

	changed := true
	switch ch.Kind {
	case ChangeCreated, ChangeModified:
		at := it.Path
		if ch.Kind == ChangeModified && ch.Path != "" {
			at = ch.Path
		}
		// Unknown paths are appended so a late notification never loses a note.
		if !c.replace(at, it) {
			c.items = append(c.items, it)
		}
	case ChangeDeleted:
		changed = c.remove(ch.Path)
	case ChangeRenamed:
		// A rename may overwrite a note that already lives at the new path.
		if ch.OldPath != it.Path {
			c.remove(it.Path)
		}
		if !c.replace(ch.OldPath, it) {
			c.items = append(c.items, it)
		}
	default:
		changed = false
	}

	if changed {
		AssignIDs(c.items)
	}
	return changed
}

func (c *Collection) replace(p string, it Item) bool {
	for i := range c.items {
		if c.items[i].Path == p {
			c.items[i] = it
			return true
		}
	}
	return false
}

func (c *Collection) remove(p string) bool {
	for i := range c.items {
		if c.items[i].Path == p {
			c.items = slices.Delete(c.items, i, i+1)
			return true
		}
	}
	return false
}

package application

import (
	"encoding/json"
	"maps"
	"slices"

	"go.uber.org/zap"

	"stickies/internal/domain"
	"stickies/internal/logging"
	"stickies/internal/ports"
)

// Persistence keys
const (
	KeyManualOrder = "manual_order"
	KeyColors      = "note_colors"
	KeySortMode    = "sort_mode"
)

// loadJSON decodes the value under key into v. Missing or corrupt values leave v untouched
// and report false; corruption is logged, never returned.
func loadJSON(kv ports.KeyValueStore, key string, v any) bool {
	raw, ok, err := kv.Get(key)
	if err != nil {
		logging.Warn("failed to read persisted state, using defaults", zap.String("key", key), zap.Error(err))
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		logging.Warn("corrupt persisted state, using defaults", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// saveJSON writes v under key as one snapshot. Failures are logged and not retried; the
// in-memory state stays authoritative for the session.
func saveJSON(kv ports.KeyValueStore, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		logging.Error("failed to encode state", zap.String("key", key), zap.Error(err))
		return
	}
	if err := kv.Set(key, string(data)); err != nil {
		logging.Error("failed to persist state", zap.String("key", key), zap.Error(err))
	}
}

// ManualOrderStore holds the user's explicit ordering of note identifiers
type ManualOrderStore struct {
	kv    ports.KeyValueStore
	order []string
}

// NewManualOrderStore loads the persisted manual order
func NewManualOrderStore(kv ports.KeyValueStore) *ManualOrderStore {
	s := &ManualOrderStore{kv: kv}
	var order []string
	if loadJSON(kv, KeyManualOrder, &order) {
		// Drop duplicates a hand-edited database might contain.
		s.order = domain.Reconcile(order, order)
	}
	return s
}

// Order returns a copy of the manual order
func (s *ManualOrderStore) Order() []string {
	return slices.Clone(s.order)
}

// Established reports whether the user has created a manual order
func (s *ManualOrderStore) Established() bool {
	return len(s.order) > 0
}

// Reconcile repairs an established order against the live identifiers and persists it
// when it changed. It reports whether the order changed.
func (s *ManualOrderStore) Reconcile(live []string) bool {
	if !s.Established() {
		return false
	}
	next := domain.Reconcile(live, s.order)
	if slices.Equal(next, s.order) {
		return false
	}
	s.order = next
	saveJSON(s.kv, KeyManualOrder, s.order)
	return true
}

// Set replaces the manual order and persists it
func (s *ManualOrderStore) Set(order []string) {
	s.order = slices.Clone(order)
	saveJSON(s.kv, KeyManualOrder, s.order)
}

// Reset discards the manual order
func (s *ManualOrderStore) Reset() {
	s.order = nil
	if err := s.kv.Delete(KeyManualOrder); err != nil {
		logging.Error("failed to delete manual order", zap.Error(err))
	}
}

// ColorStore maps note identifiers to color tags
type ColorStore struct {
	kv     ports.KeyValueStore
	colors map[string]string
}

// NewColorStore loads the persisted color map
func NewColorStore(kv ports.KeyValueStore) *ColorStore {
	s := &ColorStore{kv: kv, colors: map[string]string{}}
	var colors map[string]string
	if loadJSON(kv, KeyColors, &colors) && colors != nil {
		s.colors = colors
	}
	return s
}

// Get returns the color of a note. Cleared colors report false.
func (s *ColorStore) Get(id string) (string, bool) {
	c, ok := s.colors[id]
	return c, ok && c != ""
}

// All returns a copy of the map without cleared entries
func (s *ColorStore) All() map[string]string {
	all := maps.Clone(s.colors)
	maps.DeleteFunc(all, func(_, c string) bool { return c == "" })
	return all
}

// Set upserts a color and persists the map
func (s *ColorStore) Set(id, color string) {
	s.colors[id] = color
	saveJSON(s.kv, KeyColors, s.colors)
}

// Remove clears the color of a note and persists the map. The entry stays as an empty
// tombstone so a frontmatter color is not imported again.
func (s *ColorStore) Remove(id string) {
	if c, ok := s.colors[id]; ok && c == "" {
		return
	}
	s.colors[id] = ""
	saveJSON(s.kv, KeyColors, s.colors)
}

// Seed imports frontmatter colors for notes the store has no entry for. Colors set or
// cleared on the board are never overwritten. The map is persisted once if anything
// changed; it reports whether it did.
func (s *ColorStore) Seed(items []domain.Item) bool {
	changed := false
	for _, it := range items {
		if it.Color == "" {
			continue
		}
		if _, ok := s.colors[it.ID]; ok {
			continue
		}
		s.colors[it.ID] = it.Color
		changed = true
	}
	if changed {
		saveJSON(s.kv, KeyColors, s.colors)
	}
	return changed
}

// SortModeStore holds the active sort mode
type SortModeStore struct {
	kv   ports.KeyValueStore
	mode domain.SortMode
}

// NewSortModeStore loads the persisted sort mode
func NewSortModeStore(kv ports.KeyValueStore) *SortModeStore {
	s := &SortModeStore{kv: kv, mode: domain.DefaultSortMode}
	var tag string
	if loadJSON(kv, KeySortMode, &tag) {
		if mode, ok := domain.ParseSortMode(tag); ok {
			s.mode = mode
		} else {
			logging.Warn("unknown persisted sort mode, using default", zap.String("mode", tag))
		}
	}
	return s
}

// Mode returns the active sort mode
func (s *SortModeStore) Mode() domain.SortMode {
	return s.mode
}

// Set changes and persists the sort mode
func (s *SortModeStore) Set(mode domain.SortMode) {
	s.mode = mode
	saveJSON(s.kv, KeySortMode, mode.String())
}

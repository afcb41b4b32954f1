package domain

import "fmt"

// SortMode is the active ordering criterion of the board
type SortMode int

const (
	SortModifiedDesc SortMode = iota
	SortModifiedAsc
	SortCreatedDesc
	SortCreatedAsc
	SortColorGroup
	SortManual
)

// DefaultSortMode is used when no valid mode has been persisted
const DefaultSortMode = SortModifiedDesc

// SortModes lists every mode in the order the board cycles through them
var SortModes = []SortMode{
	SortModifiedDesc,
	SortModifiedAsc,
	SortCreatedDesc,
	SortCreatedAsc,
	SortColorGroup,
	SortManual,
}

var sortModeTags = map[SortMode]string{
	SortModifiedDesc: "modified-desc",
	SortModifiedAsc:  "modified-asc",
	SortCreatedDesc:  "created-desc",
	SortCreatedAsc:   "created-asc",
	SortColorGroup:   "color",
	SortManual:       "manual",
}

// String returns the persisted tag of the mode
func (m SortMode) String() string {
	if tag, ok := sortModeTags[m]; ok {
		return tag
	}
	return fmt.Sprintf("SortMode(%d)", int(m))
}

// Label returns a human readable description
func (m SortMode) Label() string {
	switch m {
	case SortModifiedDesc:
		return "Last modified"
	case SortModifiedAsc:
		return "First modified"
	case SortCreatedDesc:
		return "Newest"
	case SortCreatedAsc:
		return "Oldest"
	case SortColorGroup:
		return "Color"
	case SortManual:
		return "Manual"
	default:
		return m.String()
	}
}

// Valid reports whether m is one of the known modes
func (m SortMode) Valid() bool {
	_, ok := sortModeTags[m]
	return ok
}

// Next returns the mode after m in SortModes, wrapping around
func (m SortMode) Next() SortMode {
	for i, mode := range SortModes {
		if mode == m {
			return SortModes[(i+1)%len(SortModes)]
		}
	}
	return DefaultSortMode
}

// ParseSortMode parses a persisted tag
func ParseSortMode(tag string) (SortMode, bool) {
	for mode, t := range sortModeTags {
		if t == tag {
			return mode, true
		}
	}
	return DefaultSortMode, false
}

// SortModeTags returns the tags of all modes, for help text and validation messages
func SortModeTags() []string {
	tags := make([]string, len(SortModes))
	for i, m := range SortModes {
		tags[i] = m.String()
	}
	return tags
}

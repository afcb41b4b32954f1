package application

import (
	"fmt"
	"strings"

	"stickies/internal/domain"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", formatFieldName(fieldName)),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "sourceID" -> "source ID")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"noteID":   "note ID",
		"sourceID": "source ID",
		"targetID": "target ID",
		"sortMode": "sort mode",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}
	return fieldName
}

// ParseSortMode parses a sort mode tag, returning a ValidationError
// wrapping ErrInvalidSortMode for unknown tags.
func ParseSortMode(tag string) (domain.SortMode, error) {
	mode, ok := domain.ParseSortMode(strings.TrimSpace(tag))
	if !ok {
		return domain.DefaultSortMode, fmt.Errorf("%w: %q (expected one of %s)",
			ErrInvalidSortMode, tag, strings.Join(domain.SortModeTags(), ", "))
	}
	return mode, nil
}

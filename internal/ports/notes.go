package ports

import (
	"context"

	"stickies/internal/domain"
)

// NoteRepository defines the document store holding the sticky notes
type NoteRepository interface {
	// ListNotes returns every note in the notes folder in directory order
	ListNotes(ctx context.Context) ([]domain.Item, error)

	// LoadNote reads a single note by its vault-relative path
	LoadNote(ctx context.Context, path string) (domain.Item, error)

	// CreateNote creates an empty note named after the current timestamp
	CreateNote(ctx context.Context) (domain.Item, error)

	// DeleteNote removes the note at path
	DeleteNote(ctx context.Context, path string) error

	// WriteColor stores color in the note's frontmatter; an empty color removes the key
	WriteColor(ctx context.Context, path, color string) error

	// AbsPath resolves a vault-relative path to an absolute filesystem path
	AbsPath(path string) string
}

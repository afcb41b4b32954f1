package commands

import (
	"context"
	"fmt"

	"stickies/internal/application"
	"stickies/internal/domain"
	"stickies/internal/ports"
)

// CreateNoteResult contains the result of creating a note
type CreateNoteResult struct {
	Item    domain.Item
	Message string
}

// CreateNoteCommand creates a new timestamp-named sticky note
type CreateNoteCommand struct {
	repo  ports.NoteRepository
	board *application.Board
}

// NewCreateNoteCommand creates a new CreateNoteCommand
func NewCreateNoteCommand(repo ports.NoteRepository, board *application.Board) *CreateNoteCommand {
	return &CreateNoteCommand{repo: repo, board: board}
}

// Execute runs the create command
func (c *CreateNoteCommand) Execute(ctx context.Context) (*CreateNoteResult, error) {
	item, err := c.repo.CreateNote(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	c.board.Apply(domain.Change{Kind: domain.ChangeCreated, Path: item.Path, Item: item})

	// Identifiers are assigned by the board.
	created, ok := c.board.ItemAt(item.Path)
	if !ok {
		created = item
	}

	return &CreateNoteResult{
		Item:    created,
		Message: fmt.Sprintf("Created note: %s", created.Path),
	}, nil
}

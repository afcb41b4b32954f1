package commands

import (
	"context"
	"fmt"

	"stickies/internal/application"
	"stickies/internal/domain"
	"stickies/internal/ports"
)

// DeleteNoteResult contains the result of a delete operation
type DeleteNoteResult struct {
	DeletedID string
	Path      string
	Message   string
}

// DeleteNoteCommand deletes a note by identifier
type DeleteNoteCommand struct {
	repo   ports.NoteRepository
	board  *application.Board
	NoteID string
}

// NewDeleteNoteCommand creates a new DeleteNoteCommand
func NewDeleteNoteCommand(repo ports.NoteRepository, board *application.Board, noteID string) *DeleteNoteCommand {
	return &DeleteNoteCommand{repo: repo, board: board, NoteID: noteID}
}

// Validate checks if the delete operation is valid
func (c *DeleteNoteCommand) Validate() error {
	return application.ValidateRequired("noteID", c.NoteID)
}

// Execute runs the delete command
func (c *DeleteNoteCommand) Execute(ctx context.Context) (*DeleteNoteResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	item, err := lookup(c.board, c.NoteID)
	if err != nil {
		return nil, err
	}

	if err := c.repo.DeleteNote(ctx, item.Path); err != nil {
		return nil, fmt.Errorf("failed to delete %s: %w", c.NoteID, err)
	}
	c.board.Apply(domain.Change{Kind: domain.ChangeDeleted, Path: item.Path})

	return &DeleteNoteResult{
		DeletedID: item.ID,
		Path:      item.Path,
		Message:   fmt.Sprintf("Deleted %s", item.Path),
	}, nil
}

// lookup resolves a note identifier on the board
func lookup(board *application.Board, id string) (domain.Item, error) {
	item, ok := board.Item(id)
	if !ok {
		return domain.Item{}, &application.NoteError{ID: id, Reason: "no such note"}
	}
	return item, nil
}

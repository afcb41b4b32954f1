package commands

import (
	"context"
	"fmt"
	"strings"

	"stickies/internal/application"
	"stickies/internal/ports"
)

// SetColorResult contains the result of tagging a note
type SetColorResult struct {
	NoteID  string
	Color   string
	Message string
}

// SetColorCommand tags a note with a color. With WriteBack the color is also stored in
// the note's frontmatter.
type SetColorCommand struct {
	repo      ports.NoteRepository
	board     *application.Board
	NoteID    string
	Color     string
	WriteBack bool
}

// NewSetColorCommand creates a new SetColorCommand
func NewSetColorCommand(repo ports.NoteRepository, board *application.Board, noteID, color string, writeBack bool) *SetColorCommand {
	return &SetColorCommand{
		repo:      repo,
		board:     board,
		NoteID:    noteID,
		Color:     strings.TrimSpace(color),
		WriteBack: writeBack,
	}
}

// Validate checks if the color operation is valid
func (c *SetColorCommand) Validate() error {
	return application.ValidateRequired("noteID", c.NoteID)
}

// Execute runs the color command
func (c *SetColorCommand) Execute(ctx context.Context) (*SetColorResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	item, err := lookup(c.board, c.NoteID)
	if err != nil {
		return nil, err
	}

	c.board.SetColor(item.ID, c.Color)

	if c.WriteBack {
		if err := c.repo.WriteColor(ctx, item.Path, c.Color); err != nil {
			// The board keeps the color; only the frontmatter copy is missing.
			return nil, fmt.Errorf("failed to write color to %s: %w", item.Path, err)
		}
	}

	msg := fmt.Sprintf("Colored %s %s", item.ID, c.Color)
	if c.Color == "" {
		msg = fmt.Sprintf("Cleared color of %s", item.ID)
	}
	return &SetColorResult{NoteID: item.ID, Color: c.Color, Message: msg}, nil
}

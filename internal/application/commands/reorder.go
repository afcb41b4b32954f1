package commands

import (
	"context"
	"fmt"

	"stickies/internal/application"
)

// ReorderResult contains the result of moving a note
type ReorderResult struct {
	Moved   bool
	Order   []string
	Message string
}

// ReorderCommand moves a note onto another note's position, as a drag and drop would
type ReorderCommand struct {
	board    *application.Board
	SourceID string
	TargetID string
}

// NewReorderCommand creates a new ReorderCommand
func NewReorderCommand(board *application.Board, sourceID, targetID string) *ReorderCommand {
	return &ReorderCommand{board: board, SourceID: sourceID, TargetID: targetID}
}

// Validate checks if the reorder operation is valid
func (c *ReorderCommand) Validate() error {
	if err := application.ValidateRequired("sourceID", c.SourceID); err != nil {
		return err
	}
	return application.ValidateRequired("targetID", c.TargetID)
}

// Execute runs the reorder command
func (c *ReorderCommand) Execute(ctx context.Context) (*ReorderResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if _, err := lookup(c.board, c.SourceID); err != nil {
		return nil, err
	}
	if _, err := lookup(c.board, c.TargetID); err != nil {
		return nil, err
	}

	c.board.DragStart(c.SourceID)
	moved := c.board.Drop(c.TargetID)

	msg := fmt.Sprintf("Moved %s to the position of %s", c.SourceID, c.TargetID)
	if !moved {
		msg = "Order unchanged"
	}

	return &ReorderResult{
		Moved:   moved,
		Order:   c.board.ManualOrder(),
		Message: msg,
	}, nil
}

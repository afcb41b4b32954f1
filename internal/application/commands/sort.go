package commands

import (
	"context"
	"fmt"

	"stickies/internal/application"
	"stickies/internal/domain"
)

// SetSortResult contains the result of switching the sort mode
type SetSortResult struct {
	Mode    domain.SortMode
	Message string
}

// SetSortCommand switches the active sort mode
type SetSortCommand struct {
	board *application.Board
	Mode  string
}

// NewSetSortCommand creates a new SetSortCommand
func NewSetSortCommand(board *application.Board, mode string) *SetSortCommand {
	return &SetSortCommand{board: board, Mode: mode}
}

// Validate checks if the sort mode is known
func (c *SetSortCommand) Validate() error {
	if err := application.ValidateRequired("sortMode", c.Mode); err != nil {
		return err
	}
	_, err := application.ParseSortMode(c.Mode)
	return err
}

// Execute runs the sort command
func (c *SetSortCommand) Execute(ctx context.Context) (*SetSortResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	mode, _ := application.ParseSortMode(c.Mode)
	if err := c.board.SetSortMode(mode); err != nil {
		return nil, err
	}

	return &SetSortResult{
		Mode:    mode,
		Message: fmt.Sprintf("Sorting by %s", mode.Label()),
	}, nil
}

// ResetOrderResult contains the result of discarding the manual order
type ResetOrderResult struct {
	Discarded int
	Message   string
}

// ResetOrderCommand discards the manual order
type ResetOrderCommand struct {
	board *application.Board
}

// NewResetOrderCommand creates a new ResetOrderCommand
func NewResetOrderCommand(board *application.Board) *ResetOrderCommand {
	return &ResetOrderCommand{board: board}
}

// Execute runs the reset command
func (c *ResetOrderCommand) Execute(ctx context.Context) (*ResetOrderResult, error) {
	n := len(c.board.ManualOrder())
	c.board.ResetOrder()
	return &ResetOrderResult{
		Discarded: n,
		Message:   fmt.Sprintf("Discarded manual order of %d notes", n),
	}, nil
}

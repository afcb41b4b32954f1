package commands

import (
	"context"
	"fmt"

	"stickies/internal/application"
	"stickies/internal/domain"
)

// ListResult contains the ordered notes
type ListResult struct {
	Mode  domain.SortMode
	Items []domain.Item
	Total int
}

// ListCommand lists notes in the active sort order
type ListCommand struct {
	board *application.Board
	All   bool // Ignore the pagination window
	Limit int  // Cap on the result size, 0 for no cap
}

// NewListCommand creates a new ListCommand
func NewListCommand(board *application.Board, all bool, limit int) *ListCommand {
	return &ListCommand{board: board, All: all, Limit: limit}
}

// Validate checks if the list operation is valid
func (c *ListCommand) Validate() error {
	if c.Limit < 0 {
		return &application.ValidationError{
			Field:   "limit",
			Message: fmt.Sprintf("limit must not be negative, got %d", c.Limit),
		}
	}
	return nil
}

// Execute runs the list command
func (c *ListCommand) Execute(ctx context.Context) (*ListResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	items := c.board.Displayed()
	if c.All {
		items = c.board.Ordered()
	}
	if c.Limit > 0 && len(items) > c.Limit {
		items = items[:c.Limit]
	}

	return &ListResult{
		Mode:  c.board.SortMode(),
		Items: items,
		Total: c.board.Total(),
	}, nil
}

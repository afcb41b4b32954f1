package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"stickies/internal/application"
	"stickies/internal/application/commands"
	"stickies/internal/domain"
)

// RegisterWriteTools adds all tools that change the board or the notes folder.
func RegisterWriteTools(s *server.MCPServer, sess *Session) {
	s.AddTool(reorderTool(), reorderHandler(sess))
	s.AddTool(setColorTool(), setColorHandler(sess))
	s.AddTool(setSortTool(), setSortHandler(sess))
	s.AddTool(resetOrderTool(), resetOrderHandler(sess))
	s.AddTool(createTool(), createHandler(sess))
	s.AddTool(deleteTool(), deleteHandler(sess))
}

// --- reorder ---

func reorderTool() mcp.Tool {
	return mcp.NewTool("reorder",
		mcp.WithDescription("Move a note to the position of another note, as if dragged onto it. The board switches to manual order."),
		mcp.WithString("source_id",
			mcp.Description("Identifier of the note to move"),
			mcp.Required(),
		),
		mcp.WithString("target_id",
			mcp.Description("Identifier of the note whose position it takes"),
			mcp.Required(),
		),
	)
}

func reorderHandler(sess *Session) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		source := req.GetString("source_id", "")
		target := req.GetString("target_id", "")

		var result *commands.ReorderResult
		err := sess.Do(func(board *application.Board) error {
			var err error
			result, err = commands.NewReorderCommand(board, source, target).Execute(ctx)
			return err
		})
		if err != nil {
			return toolError(err)
		}

		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- set_color ---

func setColorTool() mcp.Tool {
	return mcp.NewTool("set_color",
		mcp.WithDescription("Tag a note with a color. An empty color clears the tag."),
		mcp.WithString("id",
			mcp.Description("Note identifier"),
			mcp.Required(),
		),
		mcp.WithString("color",
			mcp.Description("Color name (yellow, orange, red, pink, purple, blue, green, gray) or #hex"),
		),
	)
}

func setColorHandler(sess *Session) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := req.GetString("id", "")
		color := req.GetString("color", "")

		var result *commands.SetColorResult
		err := sess.Do(func(board *application.Board) error {
			var err error
			result, err = commands.NewSetColorCommand(sess.repo, board, id, color, sess.writeBack).Execute(ctx)
			return err
		})
		if err != nil {
			return toolError(err)
		}

		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- set_sort ---

func setSortTool() mcp.Tool {
	return mcp.NewTool("set_sort",
		mcp.WithDescription("Change the board's sort mode."),
		mcp.WithString("mode",
			mcp.Description("Sort mode"),
			mcp.Required(),
			mcp.Enum(domain.SortModeTags()...),
		),
	)
}

func setSortHandler(sess *Session) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		mode := req.GetString("mode", "")

		var result *commands.SetSortResult
		err := sess.Do(func(board *application.Board) error {
			var err error
			result, err = commands.NewSetSortCommand(board, mode).Execute(ctx)
			return err
		})
		if err != nil {
			return toolError(fmt.Errorf("%w (valid: %s)", err, strings.Join(domain.SortModeTags(), ", ")))
		}

		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- reset_order ---

func resetOrderTool() mcp.Tool {
	return mcp.NewTool("reset_order",
		mcp.WithDescription("Forget the manual order. Manual mode falls back to most recently modified first."),
	)
}

func resetOrderHandler(sess *Session) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var result *commands.ResetOrderResult
		err := sess.Do(func(board *application.Board) error {
			var err error
			result, err = commands.NewResetOrderCommand(board).Execute(ctx)
			return err
		})
		if err != nil {
			return toolError(err)
		}

		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- create_note ---

func createTool() mcp.Tool {
	return mcp.NewTool("create_note",
		mcp.WithDescription("Create an empty sticky note and return its identifier and path."),
	)
}

func createHandler(sess *Session) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var result *commands.CreateNoteResult
		err := sess.Do(func(board *application.Board) error {
			var err error
			result, err = commands.NewCreateNoteCommand(sess.repo, board).Execute(ctx)
			return err
		})
		if err != nil {
			return toolError(err)
		}

		return mcp.NewToolResultText(fmt.Sprintf("%s\n%s", result.Message, sess.repo.AbsPath(result.Item.Path))), nil
	}
}

// --- delete_note ---

func deleteTool() mcp.Tool {
	return mcp.NewTool("delete_note",
		mcp.WithDescription("Delete a sticky note file."),
		mcp.WithString("id",
			mcp.Description("Note identifier"),
			mcp.Required(),
		),
	)
}

func deleteHandler(sess *Session) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := req.GetString("id", "")

		var result *commands.DeleteNoteResult
		err := sess.Do(func(board *application.Board) error {
			var err error
			result, err = commands.NewDeleteNoteCommand(sess.repo, board, id).Execute(ctx)
			return err
		})
		if err != nil {
			return toolError(err)
		}

		return mcp.NewToolResultText(result.Message), nil
	}
}

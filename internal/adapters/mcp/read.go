package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"stickies/internal/application"
	"stickies/internal/application/commands"
	"stickies/internal/domain"
)

// RegisterReadTools adds all read-only board tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, sess *Session) {
	s.AddTool(listTool(), listHandler(sess))
	s.AddTool(getTool(), getHandler(sess))
	s.AddTool(resolvePathTool(), resolvePathHandler(sess))
}

// --- list_notes ---

func listTool() mcp.Tool {
	return mcp.NewTool("list_notes",
		mcp.WithDescription("List sticky notes in board order. By default only the first page is returned, like the board shows on open."),
		mcp.WithBoolean("all",
			mcp.Description("Return every note instead of the first page"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of notes to return"),
		),
	)
}

func listHandler(sess *Session) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		all := req.GetBool("all", false)
		limit := req.GetInt("limit", 0)

		var result *commands.ListResult
		err := sess.Do(func(board *application.Board) error {
			var err error
			result, err = commands.NewListCommand(board, all, limit).Execute(ctx)
			return err
		})
		if err != nil {
			return toolError(err)
		}

		if len(result.Items) == 0 {
			return mcp.NewToolResultText("No notes."), nil
		}
		var sb strings.Builder
		fmt.Fprintf(&sb, "%s, %d of %d notes\n", result.Mode.Label(), len(result.Items), result.Total)
		for _, it := range result.Items {
			sb.WriteString(formatItem(it))
			sb.WriteByte('\n')
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- get_note ---

func getTool() mcp.Tool {
	return mcp.NewTool("get_note",
		mcp.WithDescription("Show a sticky note's details by its identifier."),
		mcp.WithString("id",
			mcp.Description("Note identifier (the file name without extension)"),
			mcp.Required(),
		),
	)
}

func getHandler(sess *Session) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := req.GetString("id", "")
		if id == "" {
			return toolError(fmt.Errorf("id is required"))
		}

		var item domain.Item
		var found bool
		_ = sess.Do(func(board *application.Board) error {
			item, found = board.Item(id)
			return nil
		})
		if !found {
			return toolError(&application.NoteError{ID: id, Reason: "no such note"})
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "ID:       %s\n", item.ID)
		fmt.Fprintf(&sb, "Path:     %s\n", item.Path)
		fmt.Fprintf(&sb, "Title:    %s\n", item.Title)
		fmt.Fprintf(&sb, "Color:    %s\n", item.Color)
		fmt.Fprintf(&sb, "Created:  %s\n", formatTime(item.CreatedAt))
		fmt.Fprintf(&sb, "Modified: %s\n", formatTime(item.ModifiedAt))
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- resolve_path ---

func resolvePathTool() mcp.Tool {
	return mcp.NewTool("resolve_path",
		mcp.WithDescription("Get the filesystem path of a sticky note."),
		mcp.WithString("id",
			mcp.Description("Note identifier"),
			mcp.Required(),
		),
	)
}

func resolvePathHandler(sess *Session) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := req.GetString("id", "")
		if id == "" {
			return toolError(fmt.Errorf("id is required"))
		}

		var item domain.Item
		var found bool
		_ = sess.Do(func(board *application.Board) error {
			item, found = board.Item(id)
			return nil
		})
		if !found {
			return toolError(&application.NoteError{ID: id, Reason: "no such note"})
		}

		return mcp.NewToolResultText(sess.repo.AbsPath(item.Path)), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatItem(it domain.Item) string {
	line := fmt.Sprintf("%s  %s", it.ID, it.Title)
	if it.Color != "" {
		line += "  [" + it.Color + "]"
	}
	return line
}

func formatTime(ms int64) string {
	if ms == 0 {
		return "-"
	}
	return time.UnixMilli(ms).Format(time.RFC3339)
}

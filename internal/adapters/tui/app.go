package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"stickies/internal/adapters/tui/views"
	"stickies/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewBoard ViewState = iota
	ViewHelp
)

// App is the main TUI application model
type App struct {
	editor ports.EditorOpener

	state ViewState
	board *views.BoardModel
	help  *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application. A nil editor disables editing.
func NewApp(deps views.BoardDeps, ed ports.EditorOpener) *App {
	return &App{
		editor: ed,
		state:  ViewBoard,
		board:  views.NewBoardModel(deps),
		help:   views.NewHelpModel(),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.board.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.board.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToBoardMsg:
		a.state = ViewBoard
		return a, nil

	case views.OpenEditorMsg:
		a.state = ViewBoard
		return a, a.openEditor(msg.Path)

	case editorFinishedMsg:
		if msg.err != nil {
			a.board.SetMessage("Editor: "+msg.err.Error(), true)
		}
		return a, nil
	}

	// Board messages (loads, changes, frames) must reach the board even while help is shown
	if a.state == ViewHelp {
		if _, ok := msg.(tea.KeyMsg); ok {
			_, cmd := a.help.Update(msg)
			return a, cmd
		}
		if _, ok := msg.(tea.MouseMsg); ok {
			return a, nil
		}
	}

	_, cmd := a.board.Update(msg)
	return a, cmd
}

type editorFinishedMsg struct{ err error }

func (a *App) openEditor(path string) tea.Cmd {
	if a.editor == nil {
		return nil
	}

	cmd, err := a.editor.Command(path)
	if err != nil {
		return func() tea.Msg {
			return editorFinishedMsg{err: err}
		}
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewHelp:
		return a.help.View()
	default:
		return a.board.View()
	}
}

// Close releases the board view's subscription
func (a *App) Close() {
	a.board.Close()
}

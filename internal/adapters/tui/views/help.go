package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"stickies/internal/adapters/tui/styles"
	"stickies/internal/domain"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	ViewState
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, func() tea.Msg {
				return SwitchToBoardMsg{}
			}
		}
	}

	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Sticky Notes Help"))
	b.WriteString("\n\n")

	b.WriteString(styles.InputLabel.Render("Navigation"))
	b.WriteString("\n")
	b.WriteString(helpLine("j / k / ↑ / ↓", "Move between notes"))
	b.WriteString(helpLine("g / G", "First / last loaded note"))
	b.WriteString(helpLine("mouse wheel", "Scroll; more notes load near the end"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Reordering"))
	b.WriteString("\n")
	b.WriteString(helpLine("drag with mouse", "Drop a note onto another to take its place"))
	b.WriteString(helpLine("space", "Pick up the selected note, space again to drop"))
	b.WriteString(helpLine("esc", "Cancel the move"))
	b.WriteString(helpLine("r", "Forget the manual order"))
	b.WriteString(styles.MutedText.Render("  Moving a note switches the board to manual order."))
	b.WriteString("\n\n")

	b.WriteString(styles.InputLabel.Render("Notes"))
	b.WriteString("\n")
	b.WriteString(helpLine("n", "New note"))
	b.WriteString(helpLine("enter", "Edit in $EDITOR"))
	b.WriteString(helpLine("o", "Open in Obsidian"))
	b.WriteString(helpLine("c", "Cycle color"))
	b.WriteString(helpLine("y", "Copy file path"))
	b.WriteString(helpLine("d d", "Delete"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Sort modes (s cycles)"))
	b.WriteString("\n")
	for _, mode := range domain.SortModes {
		b.WriteString(styles.MutedText.Render("  " + padRight(mode.String(), 16) + mode.Label()))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(styles.HelpDesc.Render("Press "))
	b.WriteString(styles.HelpKey.Render("esc"))
	b.WriteString(styles.HelpDesc.Render(" or "))
	b.WriteString(styles.HelpKey.Render("?"))
	b.WriteString(styles.HelpDesc.Render(" to close"))

	return styles.App.Render(b.String())
}

func helpLine(key, desc string) string {
	return "  " + styles.HelpKey.Render(padRight(key, 20)) + styles.HelpDesc.Render(desc) + "\n"
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

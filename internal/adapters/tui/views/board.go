package views

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"stickies/internal/adapters/tui/styles"
	"stickies/internal/application"
	"stickies/internal/application/commands"
	"stickies/internal/domain"
	"stickies/internal/ports"
)

// Layout, in terminal rows
const (
	CardHeight   = 4 // border, title, meta, border
	headerHeight = 3 // title, status, blank
	footerHeight = 2 // message, help
)

// BoardKeyMap defines key bindings for the board view
type BoardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Grab     key.Binding
	Cancel   key.Binding
	Open     key.Binding
	Obsidian key.Binding
	New      key.Binding
	Sort     key.Binding
	Color    key.Binding
	Copy     key.Binding
	Reset    key.Binding
	Delete   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var BoardKeys = BoardKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Top: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "top"),
	),
	Bottom: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "bottom"),
	),
	Grab: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "grab/drop"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "edit"),
	),
	Obsidian: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "obsidian"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new"),
	),
	Sort: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "sort"),
	),
	Color: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "color"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy path"),
	),
	Reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset order"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d d", "delete"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// BoardDeps holds what the board view needs from the outside
type BoardDeps struct {
	Board    *application.Board
	Notes    ports.NoteRepository
	Obsidian ports.ObsidianOpener // Optional
	Changes  <-chan domain.Change // Optional, closed when the watcher stops

	FrameInterval   time.Duration
	NearBottomRows  int
	WriteBackColors bool

	// Clipboard defaults to the system clipboard
	Clipboard func(text string) error
}

// BoardModel is the model for the sticky note board
type BoardModel struct {
	ViewState
	deps     BoardDeps
	board    *application.Board
	view     application.View
	viewport viewport.Model

	cursor        int
	hover         int // Drop target while dragging, -1 for none
	mouseDrag     bool
	keyDrag       bool
	pointerY      int
	pendingDelete string
	loaded        bool
	unsubscribe   func()
}

// viewportScroller lets the auto-scroller move the board's viewport
type viewportScroller struct {
	m *BoardModel
}

func (s viewportScroller) ScrollBy(delta int) int {
	before := s.m.viewport.YOffset
	if delta > 0 {
		s.m.viewport.LineDown(delta)
	} else if delta < 0 {
		s.m.viewport.LineUp(-delta)
	}
	return s.m.viewport.YOffset - before
}

// NewBoardModel creates a new board model and subscribes it to the board
func NewBoardModel(deps BoardDeps) *BoardModel {
	if deps.FrameInterval <= 0 {
		deps.FrameInterval = 50 * time.Millisecond
	}
	if deps.Clipboard == nil {
		deps.Clipboard = clipboard.WriteAll
	}

	m := &BoardModel{
		deps:     deps,
		board:    deps.Board,
		viewport: viewport.New(0, 0),
		hover:    -1,
	}
	m.viewport.MouseWheelEnabled = true
	m.board.SetScroller(viewportScroller{m: m})
	m.unsubscribe = m.board.Subscribe(func(v application.View) {
		m.view = v
		m.refresh()
	})
	// A board opened by the caller is not loaded a second time.
	if m.board.IsOpen() {
		m.loaded = true
		m.view = m.board.View()
		m.refresh()
	}
	return m
}

type notesLoadedMsg struct {
	items []domain.Item
}

type changeMsg struct {
	change domain.Change
}

type frameMsg struct {
	frame application.Frame
}

type errMsg struct {
	err error
}

type successMsg struct {
	message string
}

// Init loads the notes and starts listening for changes
func (m *BoardModel) Init() tea.Cmd {
	if m.loaded {
		return m.waitForChange
	}
	return tea.Batch(m.loadNotes, m.waitForChange)
}

func (m *BoardModel) loadNotes() tea.Msg {
	items, err := m.deps.Notes.ListNotes(context.Background())
	if err != nil {
		return errMsg{err}
	}
	return notesLoadedMsg{items}
}

func (m *BoardModel) waitForChange() tea.Msg {
	if m.deps.Changes == nil {
		return nil
	}
	ch, ok := <-m.deps.Changes
	if !ok {
		return nil
	}
	return changeMsg{ch}
}

func (m *BoardModel) scheduleFrame(f application.Frame) tea.Cmd {
	return tea.Tick(m.deps.FrameInterval, func(time.Time) tea.Msg {
		return frameMsg{f}
	})
}

// Update handles messages for the board
func (m *BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case notesLoadedMsg:
		m.board.Open(msg.items)
		m.loaded = true
		m.fillViewport()
		return m, nil

	case changeMsg:
		m.board.Apply(msg.change)
		m.fillViewport()
		return m, m.waitForChange

	case frameMsg:
		next, ok := m.board.Tick(msg.frame)
		if m.mouseDrag {
			m.hover = m.cardAt(m.pointerY)
		}
		m.fillViewport()
		m.refresh()
		if ok {
			return m, m.scheduleFrame(next)
		}
		return m, nil

	case errMsg:
		m.SetMessage(msg.err.Error(), true)
		return m, nil

	case successMsg:
		m.SetMessage(msg.message, false)
		return m, nil

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	return m, nil
}

func (m *BoardModel) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if tea.MouseEvent(msg).IsWheel() {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		m.fillViewport()
		return cmd
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		idx := m.cardAt(msg.Y)
		if idx < 0 {
			return nil
		}
		m.ClearMessage()
		m.cursor = idx
		m.hover = idx
		m.pointerY = msg.Y
		m.mouseDrag = true
		m.keyDrag = false
		m.board.DragStart(m.view.Items[idx].ID)

	case tea.MouseActionMotion:
		if !m.mouseDrag {
			return nil
		}
		m.pointerY = msg.Y
		m.hover = m.cardAt(msg.Y)
		m.refresh()
		if f, ok := m.board.DragOver(msg.Y-headerHeight, m.viewport.Height); ok {
			return m.scheduleFrame(f)
		}

	case tea.MouseActionRelease:
		if !m.mouseDrag {
			return nil
		}
		m.mouseDrag = false
		m.hover = -1
		idx := m.cardAt(msg.Y)
		if idx < 0 {
			m.board.DragEnd()
			return nil
		}
		m.drop(m.view.Items[idx].ID)
	}
	return nil
}

func (m *BoardModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	if !key.Matches(msg, BoardKeys.Delete) {
		m.pendingDelete = ""
	}
	m.ClearMessage()

	switch {
	case key.Matches(msg, BoardKeys.Quit):
		return tea.Quit

	case key.Matches(msg, BoardKeys.Up):
		m.moveCursor(m.cursor - 1)

	case key.Matches(msg, BoardKeys.Down):
		m.moveCursor(m.cursor + 1)

	case key.Matches(msg, BoardKeys.Top):
		m.moveCursor(0)

	case key.Matches(msg, BoardKeys.Bottom):
		m.moveCursor(len(m.view.Items) - 1)

	case key.Matches(msg, BoardKeys.Grab):
		item, ok := m.selected()
		if !ok {
			return nil
		}
		if m.keyDrag {
			m.drop(item.ID)
			return nil
		}
		m.keyDrag = true
		m.board.DragStart(item.ID)
		m.SetMessage("Move with j/k, drop with space", false)

	case key.Matches(msg, BoardKeys.Cancel):
		m.keyDrag = false
		m.mouseDrag = false
		m.hover = -1
		m.board.DragEnd()

	case key.Matches(msg, BoardKeys.Open):
		if item, ok := m.selected(); ok {
			path := m.deps.Notes.AbsPath(item.Path)
			return func() tea.Msg { return OpenEditorMsg{Path: path} }
		}

	case key.Matches(msg, BoardKeys.Obsidian):
		item, ok := m.selected()
		if !ok || m.deps.Obsidian == nil {
			return nil
		}
		opener := m.deps.Obsidian
		return func() tea.Msg {
			if err := opener.OpenNote(item.Path); err != nil {
				return errMsg{err}
			}
			return successMsg{"Opened in Obsidian"}
		}

	case key.Matches(msg, BoardKeys.New):
		res, err := commands.NewCreateNoteCommand(m.deps.Notes, m.board).Execute(context.Background())
		if err != nil {
			m.SetMessage(err.Error(), true)
			return nil
		}
		m.selectID(res.Item.ID)
		path := m.deps.Notes.AbsPath(res.Item.Path)
		return func() tea.Msg { return OpenEditorMsg{Path: path} }

	case key.Matches(msg, BoardKeys.Sort):
		res, err := commands.NewSetSortCommand(m.board, m.board.SortMode().Next().String()).Execute(context.Background())
		if err != nil {
			m.SetMessage(err.Error(), true)
			return nil
		}
		m.SetMessage(res.Message, false)

	case key.Matches(msg, BoardKeys.Color):
		item, ok := m.selected()
		if !ok {
			return nil
		}
		next := styles.NextNoteColor(item.Color)
		res, err := commands.NewSetColorCommand(m.deps.Notes, m.board, item.ID, next, m.deps.WriteBackColors).Execute(context.Background())
		if err != nil {
			m.SetMessage(err.Error(), true)
			return nil
		}
		m.selectID(item.ID)
		m.SetMessage(res.Message, false)

	case key.Matches(msg, BoardKeys.Copy):
		item, ok := m.selected()
		if !ok {
			return nil
		}
		if err := m.deps.Clipboard(m.deps.Notes.AbsPath(item.Path)); err != nil {
			m.SetMessage(fmt.Sprintf("Clipboard unavailable: %v", err), true)
			return nil
		}
		m.SetMessage("Copied path of "+item.ID, false)

	case key.Matches(msg, BoardKeys.Reset):
		res, _ := commands.NewResetOrderCommand(m.board).Execute(context.Background())
		m.SetMessage(res.Message, false)

	case key.Matches(msg, BoardKeys.Delete):
		item, ok := m.selected()
		if !ok {
			return nil
		}
		if m.pendingDelete != item.ID {
			m.pendingDelete = item.ID
			m.SetMessage(fmt.Sprintf("Press d again to delete %s", item.ID), true)
			return nil
		}
		m.pendingDelete = ""
		res, err := commands.NewDeleteNoteCommand(m.deps.Notes, m.board, item.ID).Execute(context.Background())
		if err != nil {
			m.SetMessage(err.Error(), true)
			return nil
		}
		m.SetMessage(res.Message, false)

	case key.Matches(msg, BoardKeys.Help):
		return func() tea.Msg { return SwitchToHelpMsg{} }
	}

	return nil
}

// drop ends a drag on target and keeps the moved note selected
func (m *BoardModel) drop(target string) {
	source, _ := m.board.Dragging()
	m.keyDrag = false
	m.hover = -1
	if m.board.Drop(target) {
		m.SetMessage(fmt.Sprintf("Moved %s", source), false)
	}
	m.selectID(source)
}

func (m *BoardModel) selected() (domain.Item, bool) {
	if m.cursor < 0 || m.cursor >= len(m.view.Items) {
		return domain.Item{}, false
	}
	return m.view.Items[m.cursor], true
}

func (m *BoardModel) selectID(id string) {
	if i := slices.IndexFunc(m.view.Items, func(it domain.Item) bool { return it.ID == id }); i >= 0 {
		m.moveCursor(i)
	}
}

func (m *BoardModel) moveCursor(to int) {
	m.cursor = max(0, min(to, len(m.view.Items)-1))
	if m.keyDrag {
		m.hover = m.cursor
	}
	m.refresh()
	m.ensureVisible()
	m.fillViewport()
}

// ensureVisible scrolls so the selected card is fully on screen
func (m *BoardModel) ensureVisible() {
	top := m.cursor * CardHeight
	switch {
	case top < m.viewport.YOffset:
		m.viewport.SetYOffset(top)
	case top+CardHeight > m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(top + CardHeight - m.viewport.Height)
	}
}

// fillViewport loads more notes while the viewport bottom is close to the content end
func (m *BoardModel) fillViewport() {
	if !m.loaded || m.viewport.Height <= 0 {
		return
	}
	for m.remainingRows() <= m.deps.NearBottomRows {
		if !m.board.NearBottom() {
			return
		}
	}
}

func (m *BoardModel) remainingRows() int {
	return m.viewport.TotalLineCount() - (m.viewport.YOffset + m.viewport.Height)
}

// cardAt maps a terminal row to a displayed card index, -1 when none
func (m *BoardModel) cardAt(y int) int {
	row := y - headerHeight
	if row < 0 || row >= m.viewport.Height {
		return -1
	}
	idx := (row + m.viewport.YOffset) / CardHeight
	if idx >= len(m.view.Items) {
		return -1
	}
	return idx
}

// refresh re-renders the cards into the viewport
func (m *BoardModel) refresh() {
	if n := len(m.view.Items); m.cursor >= n {
		m.cursor = max(0, n-1)
	}
	m.viewport.SetContent(m.renderCards())
}

func (m *BoardModel) cardWidth() int {
	return max(m.Width-4, 12)
}

func (m *BoardModel) renderCards() string {
	if len(m.view.Items) == 0 {
		return styles.MutedText.Render("No sticky notes yet. Press n to create one.")
	}

	inner := m.cardWidth() - 4 // border and padding
	cards := make([]string, 0, len(m.view.Items))
	for i, it := range m.view.Items {
		cards = append(cards, m.renderCard(it, i, inner))
	}
	return strings.Join(cards, "\n")
}

func (m *BoardModel) renderCard(it domain.Item, idx, inner int) string {
	style := styles.Card.BorderForeground(styles.NoteColor(it.Color))
	switch {
	case idx == m.hover && m.view.Dragging != "" && m.view.Dragging != it.ID:
		style = styles.CardDropTarget
	case idx == m.cursor:
		style = styles.CardSelected
	}

	title := it.Title
	if title == "" {
		title = it.Name
	}
	titleStyle := styles.CardTitle
	if m.view.Dragging == it.ID {
		titleStyle = styles.CardDragged
	}

	meta := fmt.Sprintf("%s · %s", it.ID, time.UnixMilli(it.ModifiedAt).Format("2006-01-02 15:04"))
	if it.Color != "" {
		meta += " · " + it.Color
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(truncate(title, inner)),
		styles.CardMeta.Render(truncate(meta, inner)),
	)
	return style.Width(inner + 2).Render(body)
}

// View renders the board
func (m *BoardModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Sticky Notes"))
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n\n")

	if !m.loaded {
		b.WriteString(strings.Repeat("\n", max(m.viewport.Height-1, 0)))
		b.WriteString("Loading...")
	} else {
		b.WriteString(m.viewport.View())
	}
	b.WriteString("\n")

	b.WriteString(RenderMessage(m.Message, m.MessageErr))
	b.WriteString("\n")
	b.WriteString(RenderHelpLine(
		BoardKeys.Grab, BoardKeys.New, BoardKeys.Sort, BoardKeys.Color,
		BoardKeys.Open, BoardKeys.Help, BoardKeys.Quit,
	))

	return styles.App.Render(b.String())
}

func (m *BoardModel) renderStatus() string {
	status := styles.StatusKey.Render(m.view.Mode.Label()) +
		styles.StatusText.Render(fmt.Sprintf("%d of %d notes", len(m.view.Items), m.view.Total))
	if m.view.Dragging != "" {
		status += styles.HelpSeparator.String() + styles.Success.Render("moving "+m.view.Dragging)
	}
	return status
}

// SetSize updates the view dimensions
func (m *BoardModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	m.viewport.Width = m.cardWidth()
	m.viewport.Height = max(height-headerHeight-footerHeight, 1)
	if !m.board.Resize(width, height) {
		m.refresh()
	}
	m.fillViewport()
}

// Close stops receiving board updates
func (m *BoardModel) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

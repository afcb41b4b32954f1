package application

import (
	"slices"

	"go.uber.org/zap"

	"stickies/internal/domain"
	"stickies/internal/logging"
	"stickies/internal/ports"
)

// View is what subscribers observe after every state change
type View struct {
	Mode     domain.SortMode
	Items    []domain.Item // Displayed prefix of the ordered sequence
	Total    int           // Number of notes in the collection
	Dragging string        // Identifier being dragged, empty when idle
	Width    int
	Height   int
}

// BoardConfig holds the board's tunables
type BoardConfig struct {
	PageSize   int
	AutoScroll AutoScrollConfig
}

type subscription struct {
	id int
	fn func(View)
}

// Board is the view session over one notes folder. It owns the stores, the pagination
// window, the drag controller and the auto-scroller, and recomputes the ordering on demand.
//
// A Board is not safe for concurrent use: every call must come from one event loop.
type Board struct {
	collection *domain.Collection
	orders     *ManualOrderStore
	colors     *ColorStore
	modes      *SortModeStore
	window     *domain.Window
	drag       *DragController
	scroll     *AutoScroller

	subs    []subscription
	nextSub int

	width, height int
	open          bool
	log           *zap.Logger
}

// NewBoard loads persisted state from kv and returns a closed board
func NewBoard(kv ports.KeyValueStore, cfg BoardConfig, scroller ports.Scroller) *Board {
	orders := NewManualOrderStore(kv)
	modes := NewSortModeStore(kv)
	return &Board{
		collection: domain.NewCollection(nil),
		orders:     orders,
		colors:     NewColorStore(kv),
		modes:      modes,
		window:     domain.NewWindow(cfg.PageSize),
		drag:       NewDragController(orders, modes),
		scroll:     NewAutoScroller(cfg.AutoScroll, scroller),
		log:        logging.Named("board"),
	}
}

// SetScroller attaches the viewport auto-scroll moves
func (b *Board) SetScroller(s ports.Scroller) {
	b.scroll.SetScroller(s)
}

// Subscribe registers fn to receive every view. The returned func removes the registration.
func (b *Board) Subscribe(fn func(View)) (unsubscribe func()) {
	b.nextSub++
	id := b.nextSub
	b.subs = append(b.subs, subscription{id: id, fn: fn})
	return func() {
		b.subs = slices.DeleteFunc(b.subs, func(s subscription) bool { return s.id == id })
	}
}

// Open starts a session over items
func (b *Board) Open(items []domain.Item) {
	b.collection = domain.NewCollection(items)
	b.colors.Seed(b.collection.Items())
	b.orders.Reconcile(b.collection.IDs())
	b.window.Reset()
	b.open = true
	b.log.Debug("session opened",
		zap.Int("notes", b.collection.Len()),
		zap.Stringer("mode", b.modes.Mode()))
	b.notify()
}

// Close ends the session. Subscriptions are dropped and any drag or scroll loop stops.
func (b *Board) Close() {
	b.subs = nil
	b.scroll.Stop()
	b.drag.End()
	b.window.Reset()
	b.open = false
}

// IsOpen reports whether the session is open
func (b *Board) IsOpen() bool {
	return b.open
}

// Apply folds an item-set notification into the collection
func (b *Board) Apply(ch domain.Change) {
	if !b.collection.Apply(ch) {
		return
	}
	if ch.Kind != domain.ChangeDeleted {
		p := ch.Item.Path
		if p == "" {
			p = ch.Path
		}
		if it, ok := b.collection.ByPath(p); ok {
			b.colors.Seed([]domain.Item{it})
		}
	}
	b.orders.Reconcile(b.collection.IDs())
	b.log.Debug("change applied", zap.Stringer("kind", ch.Kind), zap.String("path", ch.Path))
	b.notify()
}

// Item returns the note with the given identifier
func (b *Board) Item(id string) (domain.Item, bool) {
	it, ok := b.collection.Get(id)
	if !ok {
		return domain.Item{}, false
	}
	it.Color, _ = b.colors.Get(id)
	return it, true
}

// ItemAt returns the note stored at a vault-relative path
func (b *Board) ItemAt(path string) (domain.Item, bool) {
	it, ok := b.collection.ByPath(path)
	if !ok {
		return domain.Item{}, false
	}
	it.Color, _ = b.colors.Get(it.ID)
	return it, true
}

// Total returns the number of notes
func (b *Board) Total() int {
	return b.collection.Len()
}

// SortMode returns the active sort mode
func (b *Board) SortMode() domain.SortMode {
	return b.modes.Mode()
}

// SetSortMode switches the active sort mode
func (b *Board) SetSortMode(mode domain.SortMode) error {
	if !mode.Valid() {
		return ErrInvalidSortMode
	}
	b.modes.Set(mode)
	b.notify()
	return nil
}

// Color returns the color tag of a note
func (b *Board) Color(id string) (string, bool) {
	return b.colors.Get(id)
}

// SetColor tags a note with a color; an empty color clears it
func (b *Board) SetColor(id, color string) {
	if color == "" {
		b.colors.Remove(id)
	} else {
		b.colors.Set(id, color)
	}
	b.notify()
}

// ManualOrder returns the established manual order, empty when none exists
func (b *Board) ManualOrder() []string {
	return b.orders.Order()
}

// ResetOrder discards the manual order
func (b *Board) ResetOrder() {
	b.orders.Reset()
	b.notify()
}

// Ordered returns the full sequence in the active sort mode
func (b *Board) Ordered() []domain.Item {
	return domain.Order(b.items(), b.modes.Mode(), b.orders.Order(), b.colors.All())
}

// Displayed returns the visible prefix of the ordered sequence
func (b *Board) Displayed() []domain.Item {
	return domain.Slice(b.window, b.Ordered())
}

// DisplayedCount returns the window size
func (b *Board) DisplayedCount() int {
	return b.window.Displayed()
}

// NearBottom grows the window by one page. It reports whether more notes became visible.
func (b *Board) NearBottom() bool {
	if !b.window.Grow(b.collection.Len()) {
		return false
	}
	b.notify()
	return true
}

// Resize records new viewport dimensions. Zero or unchanged dimensions are ignored.
func (b *Board) Resize(width, height int) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	if width == b.width && height == b.height {
		return false
	}
	b.width, b.height = width, height
	b.notify()
	return true
}

// DragStart picks up a note. Unknown identifiers are ignored.
func (b *Board) DragStart(id string) {
	if _, ok := b.collection.Get(id); !ok {
		return
	}
	b.drag.Start(id)
	b.notify()
}

// Dragging returns the identifier being dragged
func (b *Board) Dragging() (string, bool) {
	s, ok := b.drag.Session()
	return s.Source, ok
}

// DragOver reports the pointer row within the viewport. It returns the first auto-scroll
// frame to schedule when the pointer enters an edge zone.
func (b *Board) DragOver(pointerY, height int) (Frame, bool) {
	if !b.drag.Active() {
		return 0, false
	}
	return b.scroll.DragOver(pointerY, height)
}

// Tick runs a scheduled auto-scroll frame and returns the next one
func (b *Board) Tick(f Frame) (Frame, bool) {
	if !b.open {
		return 0, false
	}
	return b.scroll.Tick(f)
}

// Drop places the dragged note at target's position. It reports whether the order changed.
func (b *Board) Drop(target string) bool {
	b.scroll.Stop()
	moved := b.drag.Drop(target, domain.IDs(b.Ordered()))
	b.notify()
	return moved
}

// DragEnd cancels the drag
func (b *Board) DragEnd() {
	b.scroll.Stop()
	if !b.drag.Active() {
		return
	}
	b.drag.End()
	b.notify()
}

// View builds the current view
func (b *Board) View() View {
	dragging, _ := b.Dragging()
	return View{
		Mode:     b.modes.Mode(),
		Items:    b.Displayed(),
		Total:    b.collection.Len(),
		Dragging: dragging,
		Width:    b.width,
		Height:   b.height,
	}
}

func (b *Board) notify() {
	if len(b.subs) == 0 {
		return
	}
	v := b.View()
	for _, s := range slices.Clone(b.subs) {
		s.fn(v)
	}
}

// items returns the collection with stored colors applied. Frontmatter colors are seeded
// into the store, so the store is authoritative.
func (b *Board) items() []domain.Item {
	items := b.collection.Items()
	for i := range items {
		items[i].Color, _ = b.colors.Get(items[i].ID)
	}
	return items
}

package application

import (
	"go.uber.org/zap"

	"stickies/internal/domain"
	"stickies/internal/logging"
)

// DragSession is the in-progress drag of one note
type DragSession struct {
	Source string
}

// DragController owns the single drag session of a board
type DragController struct {
	session *DragSession
	orders  *ManualOrderStore
	modes   *SortModeStore
}

// NewDragController creates a controller writing into the given stores
func NewDragController(orders *ManualOrderStore, modes *SortModeStore) *DragController {
	return &DragController{orders: orders, modes: modes}
}

// Start begins dragging source, replacing any session in progress
func (d *DragController) Start(source string) {
	d.session = &DragSession{Source: source}
}

// Session returns the current session, if any
func (d *DragController) Session() (DragSession, bool) {
	if d.session == nil {
		return DragSession{}, false
	}
	return *d.session, true
}

// Active reports whether a drag is in progress
func (d *DragController) Active() bool {
	return d.session != nil
}

// Drop moves the dragged note to target's position within the materialized order, persists
// the result as the manual order and switches to manual mode. The session always ends.
// It reports whether the order changed.
//
// materialized is the sequence as currently displayed; in manual mode it equals the
// reconciled manual order, in any other mode it becomes the baseline the user drags from.
func (d *DragController) Drop(target string, materialized []string) bool {
	session := d.session
	d.session = nil
	if session == nil {
		return false
	}

	next, moved := domain.Move(materialized, session.Source, target)
	if !moved {
		return false
	}

	logging.Debug("note moved",
		zap.String("source", session.Source),
		zap.String("target", target),
		zap.Stringer("from_mode", d.modes.Mode()))

	d.orders.Set(next)
	if d.modes.Mode() != domain.SortManual {
		d.modes.Set(domain.SortManual)
	}
	return true
}

// End abandons the session without reordering
func (d *DragController) End() {
	d.session = nil
}

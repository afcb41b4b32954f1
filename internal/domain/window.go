package domain

// DefaultPageSize is the number of notes materialized when a board opens
const DefaultPageSize = 20

// Window tracks how many leading notes of the ordered sequence are displayed
type Window struct {
	initial   int
	displayed int
}

// NewWindow creates a window that starts at, and grows by, initial
func NewWindow(initial int) *Window {
	if initial <= 0 {
		initial = DefaultPageSize
	}
	return &Window{initial: initial, displayed: initial}
}

// Initial returns the configured page size
func (w *Window) Initial() int {
	return w.initial
}

// Displayed returns the requested count, which may exceed the sequence length
func (w *Window) Displayed() int {
	return w.displayed
}

// Grow extends the window by one page while it is shorter than total.
// It reports whether the window grew.
func (w *Window) Grow(total int) bool {
	if w.displayed >= total {
		return false
	}
	w.displayed += w.initial
	return true
}

// SetDisplayed sets an explicit count. Negative values are ignored.
func (w *Window) SetDisplayed(n int) {
	if n < 0 {
		return
	}
	w.displayed = n
}

// Reset returns the window to its initial size
func (w *Window) Reset() {
	w.displayed = w.initial
}

// Effective returns min(displayed, n)
func (w *Window) Effective(n int) int {
	return min(w.displayed, n)
}

// Slice returns the displayed prefix of seq
func Slice[T any](w *Window, seq []T) []T {
	return seq[:w.Effective(len(seq))]
}

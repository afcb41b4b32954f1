package ports

// Scroller is the viewport an auto-scroll loop moves
type Scroller interface {
	// ScrollBy moves the viewport by delta rows (negative scrolls up)
	// and returns the delta actually applied after clamping
	ScrollBy(delta int) int
}

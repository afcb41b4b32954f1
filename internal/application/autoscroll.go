package application

import (
	"stickies/internal/ports"
)

// Frame identifies one scheduled auto-scroll step. Zero is never a valid frame.
type Frame uint64

// AutoScrollConfig tunes edge scrolling during a drag
type AutoScrollConfig struct {
	EdgeThreshold int // rows from a viewport edge where scrolling starts
	MaxVelocity   int // rows per frame at the very edge
}

// DefaultAutoScrollConfig returns the stock tuning
func DefaultAutoScrollConfig() AutoScrollConfig {
	return AutoScrollConfig{EdgeThreshold: 3, MaxVelocity: 3}
}

// AutoScroller scrolls the viewport while a dragged pointer rests near an edge.
//
// The front end schedules a timer for every Frame returned by DragOver or Tick and hands it
// back to Tick when it fires. At most one frame is pending at a time; ticks carrying any
// other frame are stale and ignored, so the loop cannot run twice.
type AutoScroller struct {
	cfg      AutoScrollConfig
	scroller ports.Scroller
	velocity int
	pending  Frame
	seq      Frame
}

// NewAutoScroller creates a scroller; scroller may be set later with SetScroller
func NewAutoScroller(cfg AutoScrollConfig, scroller ports.Scroller) *AutoScroller {
	if cfg.EdgeThreshold <= 0 || cfg.MaxVelocity <= 0 {
		cfg = DefaultAutoScrollConfig()
	}
	return &AutoScroller{cfg: cfg, scroller: scroller}
}

// SetScroller replaces the viewport being scrolled
func (a *AutoScroller) SetScroller(s ports.Scroller) {
	a.scroller = s
}

// Velocity returns the current rows-per-frame, negative when scrolling up
func (a *AutoScroller) Velocity() int {
	return a.velocity
}

// Scrolling reports whether a frame is pending
func (a *AutoScroller) Scrolling() bool {
	return a.pending != 0
}

// DragOver records the pointer row within a viewport of the given height. When the pointer
// enters an edge zone and no loop is running, it returns the first frame to schedule.
func (a *AutoScroller) DragOver(pointerY, height int) (Frame, bool) {
	a.velocity = a.velocityAt(pointerY, height)
	if a.velocity == 0 || a.pending != 0 {
		return 0, false
	}
	return a.schedule(), true
}

// Tick runs one scheduled frame. It scrolls by the current velocity and returns the next
// frame while the pointer stays in an edge zone.
func (a *AutoScroller) Tick(f Frame) (Frame, bool) {
	if f == 0 || f != a.pending {
		return 0, false
	}
	if a.velocity == 0 || a.scroller == nil {
		a.pending = 0
		return 0, false
	}
	a.scroller.ScrollBy(a.velocity)
	return a.schedule(), true
}

// Stop cancels the loop; any outstanding frame becomes stale
func (a *AutoScroller) Stop() {
	a.velocity = 0
	a.pending = 0
}

func (a *AutoScroller) schedule() Frame {
	a.seq++
	a.pending = a.seq
	return a.pending
}

// velocityAt scales linearly from 1 at the inner border of an edge zone to MaxVelocity at
// the edge itself. Pointers outside the viewport scroll at full speed.
func (a *AutoScroller) velocityAt(y, height int) int {
	if height <= 0 {
		return 0
	}
	threshold := min(a.cfg.EdgeThreshold, (height+1)/2)

	if top := y; top < threshold {
		return -a.speed(threshold, top)
	}
	if bottom := height - 1 - y; bottom < threshold {
		return a.speed(threshold, bottom)
	}
	return 0
}

func (a *AutoScroller) speed(threshold, distance int) int {
	proximity := min(threshold-distance, threshold)
	v := (a.cfg.MaxVelocity*proximity + threshold - 1) / threshold
	return min(max(v, 1), a.cfg.MaxVelocity)
}

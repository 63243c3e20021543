package input

import (
	"time"

	"github.com/1broseidon/winframe/internal/geom"
)

// DefaultDoubleClickInterval matches the usual desktop setting.
const DefaultDoubleClickInterval = 250 * time.Millisecond

// maxDoubleClickDistance is how far, per axis, the second click may land
// from the first.
const maxDoubleClickDistance = 4

type pendingClick struct {
	owner    any
	button   Button
	position geom.Point
	at       time.Time
}

// DoubleClickTracker reconstructs double clicks whose first press opened a
// popup. The popup steals the release, so no native double click arrives;
// the press is recorded with Start and the next release checked with
// IsDoubleClick.
type DoubleClickTracker struct {
	interval time.Duration
	now      func() time.Time
	pending  *pendingClick
}

// NewDoubleClickTracker creates a tracker. A nil clock uses the event
// timestamps, falling back to time.Now when they are zero.
func NewDoubleClickTracker(interval time.Duration, clock func() time.Time) *DoubleClickTracker {
	if interval <= 0 {
		interval = DefaultDoubleClickInterval
	}
	return &DoubleClickTracker{interval: interval, now: clock}
}

func (d *DoubleClickTracker) timeOf(e MouseEvent) time.Time {
	if d.now != nil {
		return d.now()
	}
	if !e.Time.IsZero() {
		return e.Time
	}
	return time.Now()
}

// Start records a press on owner that may become the first half of a
// double click.
func (d *DoubleClickTracker) Start(owner any, e MouseEvent) {
	d.pending = &pendingClick{owner: owner, button: e.Button, position: e.Position, at: d.timeOf(e)}
}

// IsDoubleClick reports whether e completes the click recorded by Start on
// the same owner. The pending click is consumed either way once e is a
// release of the same button.
func (d *DoubleClickTracker) IsDoubleClick(owner any, e MouseEvent) bool {
	p := d.pending
	if p == nil || p.owner != owner || p.button != e.Button {
		return false
	}
	d.pending = nil
	if d.timeOf(e).Sub(p.at) > d.interval {
		return false
	}
	delta := e.Position.Sub(p.position)
	return abs(delta.X) <= maxDoubleClickDistance && abs(delta.Y) <= maxDoubleClickDistance
}

// Pending reports whether a click is waiting for its second half.
func (d *DoubleClickTracker) Pending() bool { return d.pending != nil }

// Reset drops any pending click.
func (d *DoubleClickTracker) Reset() { d.pending = nil }

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

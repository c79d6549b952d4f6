package terminal

import "time"

// ClickTracker turns a second press of the same button on the same cell
// within Interval into a MouseDoubleClick. A third press starts over.
type ClickTracker struct {
	Interval time.Duration

	last    MouseEvent
	lastAt  time.Time
	pending bool
}

// Observe returns ev, rewritten to MouseDoubleClick when it completes a
// double click.
func (c *ClickTracker) Observe(ev MouseEvent, now time.Time) MouseEvent {
	if ev.Action != MousePress || ev.Button < MouseLeft || ev.Button > MouseRight {
		return ev
	}
	if c.pending &&
		c.last.Button == ev.Button &&
		c.last.X == ev.X && c.last.Y == ev.Y &&
		now.Sub(c.lastAt) <= c.Interval {
		c.pending = false
		ev.Action = MouseDoubleClick
		return ev
	}
	c.last = ev
	c.lastAt = now
	c.pending = true
	return ev
}

// Reset forgets the previous press.
func (c *ClickTracker) Reset() {
	c.pending = false
}

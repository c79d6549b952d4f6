package wnd

import (
	"github.com/odvcencio/wndkit/pkg/errors"
	"github.com/odvcencio/wndkit/pkg/ui/backend"
)

// StateMask selects which parts of the pen PushState saves.
type StateMask uint8

const (
	StateFG StateMask = 1 << iota
	StateBG
	StateAttrib
	StateCursor

	StateColor = StateFG | StateBG
	StateAll   = StateColor | StateAttrib | StateCursor
)

type savedState struct {
	w      *Window
	mask   StateMask
	pen    backend.Style
	x, y   int
	hidden bool
}

// stateStack is shared by every window of a context and bounded at
// StateDepth entries.
type stateStack struct {
	entries [StateDepth]savedState
	depth   int
}

// PushState saves the parts of the pen selected by mask. Exceeding
// StateDepth panics.
func (w *Window) PushState(mask StateMask) {
	s := &w.ctx.states
	if s.depth >= StateDepth {
		errors.Fatalf(errors.ErrCodeStateStack, "state stack overflow on window %d (depth %d)", w.id, StateDepth)
	}
	s.entries[s.depth] = savedState{
		w:      w,
		mask:   mask,
		pen:    w.pen,
		x:      w.cursorX,
		y:      w.cursorY,
		hidden: w.cursorHidden,
	}
	s.depth++
}

// PopState restores the most recent PushState. Popping an empty stack
// panics.
func (w *Window) PopState() {
	s := &w.ctx.states
	if s.depth == 0 {
		errors.Fatalf(errors.ErrCodeStateStack, "state stack underflow on window %d", w.id)
	}
	s.depth--
	e := s.entries[s.depth]
	s.entries[s.depth] = savedState{}

	t := e.w
	fg, bg, attrs := t.pen.Decompose()
	if e.mask&StateFG != 0 {
		fg = e.pen.FG()
	}
	if e.mask&StateBG != 0 {
		bg = e.pen.BG()
	}
	if e.mask&StateAttrib != 0 {
		attrs = e.pen.Attributes()
	}
	t.pen = backend.DefaultStyle().Foreground(fg).Background(bg).WithAttrs(attrs)
	if e.mask&StateCursor != 0 {
		t.cursorX, t.cursorY, t.cursorHidden = e.x, e.y, e.hidden
	}
}

// WithState runs fn between PushState(mask) and PopState, restoring the
// pen even if fn panics.
func (w *Window) WithState(mask StateMask, fn func()) {
	w.PushState(mask)
	defer w.PopState()
	fn()
}

// StateDepthInUse returns the current depth of the state stack.
func (c *Context) StateDepthInUse() int { return c.states.depth }

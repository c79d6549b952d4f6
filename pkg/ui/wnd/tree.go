package wnd

import (
	"slices"

	"github.com/odvcencio/wndkit/pkg/ui/terminal"
)

// destroy tears w and its subtree down. Pending messages for the
// subtree are purged first so nothing is ever delivered to a dead
// window.
func (w *Window) destroy() {
	if w.dead {
		return
	}
	c := w.ctx
	c.Purge(w, true)

	for _, child := range w.Children() {
		child.destroy()
	}
	for _, fn := range w.destructors {
		fn(w)
	}
	w.destructors = nil
	w.handlers = nil
	w.dead = true

	parent := w.Parent()
	if parent != nil {
		parent.detach(w.id)
	}
	delete(c.windows, w.id)
	c.metrics.windowsOpen(len(c.windows))
	w.Logger().Debug("window destroyed")

	if w == c.root {
		c.queue.Drain()
		c.focus = 0
		c.Quit()
		return
	}
	c.resetGlobalFocus()
	parent.Invalidate()
}

func (w *Window) detach(id ID) {
	w.children = slices.DeleteFunc(w.children, func(x ID) bool { return x == id })
	w.zorder = slices.DeleteFunc(w.zorder, func(x ID) bool { return x == id })
	if w.focusChild != id {
		return
	}
	w.focusChild = 0
	for _, child := range w.ZOrder() {
		if child.focusable {
			w.focusChild = child.id
			break
		}
	}
}

// raise moves the child id to the top of w's z-order.
func (w *Window) raise(id ID) {
	i := slices.Index(w.zorder, id)
	if i <= 0 {
		return
	}
	copy(w.zorder[1:i+1], w.zorder[:i])
	w.zorder[0] = id
}

// lower moves the child id to the bottom of w's z-order.
func (w *Window) lower(id ID) {
	i := slices.Index(w.zorder, id)
	if i < 0 || i == len(w.zorder)-1 {
		return
	}
	copy(w.zorder[i:], w.zorder[i+1:])
	w.zorder[len(w.zorder)-1] = id
}

// Repos moves and resizes the window within its parent's client area.
// Outside the interactive modes the children are told with a
// ParentRepos message.
func (w *Window) Repos(x, y, width, height int) {
	w.place(x, y, width, height)
	if w.mode == ModeNormal {
		w.notifyChildren()
	}
	w.Invalidate()
}

// MoveTo keeps the size and changes the position.
func (w *Window) MoveTo(x, y int) {
	w.Repos(x, y, w.rect.Width, w.rect.Height)
}

// SetSize keeps the position and changes the size.
func (w *Window) SetSize(width, height int) {
	w.Repos(w.rect.X, w.rect.Y, width, height)
}

func (w *Window) notifyChildren() {
	for _, child := range w.Children() {
		if err := child.Send(KindParentRepos, Plain{}); err != nil {
			child.Logger().Warn("parent repos not queued", "error", err)
		}
	}
}

// ToggleMaximize fills the parent's client area, or restores the
// rectangle saved when the window was maximized. The root never
// maximizes.
func (w *Window) ToggleMaximize() {
	parent := w.Parent()
	if parent == nil {
		return
	}
	if w.Maximized() {
		w.flags &^= FlagMaximized
		r := w.savedMax
		w.Repos(r.X, r.Y, r.Width, r.Height)
		return
	}
	w.savedMax = w.rect
	w.flags |= FlagMaximized
	w.Repos(0, 0, parent.client.Width, parent.client.Height)
}

// SetMode switches between normal, reposition and resize. Entering an
// interactive mode saves the rectangle and maximize state and installs
// the key handler that moves or resizes the window; returning to normal
// removes that handler and nothing else.
func (w *Window) SetMode(m Mode) {
	if m == w.mode {
		return
	}
	prev := w.mode
	if prev != ModeNormal {
		w.remove(KindKeydown, w.modeKey)
		w.modeKey = 0
	}
	w.mode = m
	switch {
	case m != ModeNormal:
		if prev == ModeNormal {
			w.savedRepos = w.rect
			w.savedFlags = w.flags & FlagMaximized
			w.savedMaxAtMode = w.savedMax
		}
		w.modeKey = w.push(KindKeydown, reposKeyHandler)
	default:
		w.notifyChildren()
	}
	w.Logger().Debug("window mode", "mode", m.String())
	w.Invalidate()
}

// cancelMode puts back the rectangle and maximize state saved when the
// mode was entered, then returns to normal.
func (w *Window) cancelMode() {
	w.flags = w.flags&^FlagMaximized | w.savedFlags
	w.savedMax = w.savedMaxAtMode
	r := w.savedRepos
	w.Repos(r.X, r.Y, r.Width, r.Height)
	w.SetMode(ModeNormal)
}

func reposKeyHandler(w *Window, msg *Message) RetCode {
	k, ok := msg.Payload.(Key)
	if !ok {
		return Stop
	}
	dx, dy := 0, 0
	switch {
	case k.Key == terminal.KeyLeft || k.Key == terminal.KeyRune && k.Rune == 'h':
		dx = -1
	case k.Key == terminal.KeyRight || k.Key == terminal.KeyRune && k.Rune == 'l':
		dx = 1
	case k.Key == terminal.KeyUp || k.Key == terminal.KeyRune && k.Rune == 'k':
		dy = -1
	case k.Key == terminal.KeyDown || k.Key == terminal.KeyRune && k.Rune == 'j':
		dy = 1
	case k.Key == terminal.KeyEnter:
		w.SetMode(ModeNormal)
		return Stop
	case k.Key == terminal.KeyEscape:
		w.cancelMode()
		return Stop
	default:
		w.ctx.backend.Beep()
		return Stop
	}

	r := w.rect
	if w.mode == ModeResize {
		w.Repos(r.X, r.Y, max(1, r.Width+dx), max(1, r.Height+dy))
	} else {
		w.Repos(r.X+dx, r.Y+dy, r.Width, r.Height)
	}
	return Stop
}

// WindowAt returns the topmost deepest window whose rectangle contains
// the screen cell, clipped by every ancestor's client area.
func (c *Context) WindowAt(x, y int) *Window {
	if c.root == nil || c.root.dead || !c.root.ScreenRect().Contains(x, y) {
		return nil
	}
	w := c.root
	for {
		if !w.ClientScreenRect().Contains(x, y) {
			return w
		}
		var hit *Window
		for _, child := range w.ZOrder() {
			if child.ScreenRect().Contains(x, y) {
				hit = child
				break
			}
		}
		if hit == nil {
			return w
		}
		w = hit
	}
}

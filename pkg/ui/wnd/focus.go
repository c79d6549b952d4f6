package wnd

// SetFocus gives w the focus. Every node on the path from the root is
// raised to the top of its parent's z-order and remembered as the
// parent's focus child. If w itself remembers a focus child, the focus
// descends to it.
func (c *Context) SetFocus(w *Window) {
	if w == nil || w.dead {
		return
	}
	for n := w; n.parent != 0; {
		p := n.Parent()
		p.focusChild = n.id
		p.raise(n.id)
		n = p
	}
	prev := c.focus
	c.resetGlobalFocus()
	if prev != c.focus {
		c.log.Debug("focus changed", "from", uint32(prev), "to", uint32(c.focus))
	}
	w.Invalidate()
}

// SetFocus is shorthand for w.Context().SetFocus(w).
func (w *Window) SetFocus() { w.ctx.SetFocus(w) }

// HasFocus reports whether w is the focus window.
func (w *Window) HasFocus() bool { return w.ctx.focus == w.id }

// InFocusPath reports whether w is the focus window or one of its
// ancestors.
func (w *Window) InFocusPath() bool {
	f := w.ctx.Focus()
	return f == w || IsDescendant(f, w)
}

// resetGlobalFocus recomputes the focus by following focus-child links
// down from the root.
func (c *Context) resetGlobalFocus() {
	if c.root == nil || c.root.dead {
		c.focus = 0
		return
	}
	w := c.root
	for {
		next := w.FocusChild()
		if next == nil || next.dead {
			break
		}
		w = next
	}
	c.focus = w.id
}

// NextFocus brings the bottom-most focusable child of p to the top and
// focuses it, which cycles through the children in creation order.
func (c *Context) NextFocus(p *Window) {
	order := p.ZOrder()
	for i := len(order) - 1; i >= 0; i-- {
		if order[i].focusable {
			c.SetFocus(order[i])
			return
		}
	}
}

// PrevFocus sends the top child of p to the bottom until a focusable
// child is on top, then focuses it.
func (c *Context) PrevFocus(p *Window) {
	if len(p.zorder) == 0 {
		return
	}
	for range len(p.zorder) {
		p.lower(p.zorder[0])
		if top := p.ctx.windows[p.zorder[0]]; top != nil && top.focusable {
			c.SetFocus(top)
			return
		}
	}
}

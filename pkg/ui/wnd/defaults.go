package wnd

// BaseClass is the class every window derives from.
var BaseClass = NewClass("window", nil).
	SetDefault(KindEraseBack, eraseBack).
	SetDefault(KindDisplay, func(*Window, *Message) RetCode { return Stop }).
	SetDefault(KindClose, func(w *Window, _ *Message) RetCode {
		w.destroy()
		return Stop
	}).
	SetDefault(KindParentRepos, func(w *Window, _ *Message) RetCode {
		if p := w.Parent(); p != nil && w.Maximized() {
			w.Repos(0, 0, p.client.Width, p.client.Height)
		}
		return Stop
	}).
	SetDefault(KindMouseLDown, mouseDown).
	SetDefault(KindMouseLDouble, mouseDouble)

// RootClass paints frames and owns the global key bindings.
var RootClass = NewClass("root", BaseClass).
	SetDefault(KindUpdateScreen, func(w *Window, _ *Message) RetCode {
		w.ctx.paint()
		w.ctx.SyncScreen()
		return Stop
	}).
	SetDefault(KindKeydown, rootKeydown).
	SetDefault(KindMouseLDown, rootMouseDown)

func eraseBack(w *Window, _ *Message) RetCode {
	for y := 0; y < w.rect.Height; y++ {
		for x := 0; x < w.rect.Width; x++ {
			w.putAbs(x, y, ' ', w.pen)
		}
	}
	return Stop
}

// mouseDown handles the caption boxes and click-to-focus.
func mouseDown(w *Window, msg *Message) RetCode {
	m, ok := msg.Payload.(Mouse)
	if !ok {
		return Continue
	}
	x, y := m.ScreenX-w.screenX, m.ScreenY-w.screenY
	if y == 0 {
		maxX, closeX := w.captionBoxes()
		switch {
		case closeX >= 0 && x >= closeX && x < closeX+len(closeBox):
			w.Close()
			return Stop
		case maxX >= 0 && x >= maxX && x < maxX+len(maxBox):
			w.ToggleMaximize()
			return Stop
		}
	}
	if w.focusable {
		w.SetFocus()
		return Stop
	}
	return Continue
}

// mouseDouble toggles maximize on a caption double click.
func mouseDouble(w *Window, msg *Message) RetCode {
	m, ok := msg.Payload.(Mouse)
	if !ok || w.flags&FlagCaption == 0 || m.ScreenY != w.screenY {
		return Continue
	}
	w.ToggleMaximize()
	return Stop
}

func rootKeydown(w *Window, msg *Message) RetCode {
	k, ok := msg.Payload.(Key)
	if !ok {
		return Stop
	}
	c := w.ctx
	km := &c.keymap
	top := w.FocusChild()
	switch {
	case km.Quit.Matches(k.KeyEvent):
		c.Quit()
	case km.Redisplay.Matches(k.KeyEvent):
		c.Redisplay()
	case km.NextFocus.Matches(k.KeyEvent):
		c.NextFocus(w)
	case km.PrevFocus.Matches(k.KeyEvent):
		c.PrevFocus(w)
	case top == nil:
	case km.Reposition.Matches(k.KeyEvent):
		top.SetMode(ModeReposition)
	case km.Resize.Matches(k.KeyEvent):
		top.SetMode(ModeResize)
	case km.Maximize.Matches(k.KeyEvent):
		top.ToggleMaximize()
	case km.Close.Matches(k.KeyEvent):
		top.Close()
	}
	return Stop
}

func rootMouseDown(w *Window, msg *Message) RetCode {
	m, ok := msg.Payload.(Mouse)
	if !ok {
		return Stop
	}
	c := w.ctx
	if c.windowBar && m.ScreenY == w.screenY+w.rect.Height-1 {
		if target := c.barHit(m.ScreenX - w.screenX); target != nil {
			c.SetFocus(target)
		}
	}
	return Stop
}

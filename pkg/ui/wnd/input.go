package wnd

import "github.com/odvcencio/wndkit/pkg/ui/terminal"

// routeInput resolves a raw terminal event on the dispatcher goroutine.
// Keys go to the focus window, mouse presses to the window under the
// pointer and resizes to the root.
func (c *Context) routeInput(msg *Message) {
	in, ok := msg.Payload.(Input)
	if !ok {
		return
	}
	switch ev := in.Event.(type) {
	case terminal.KeyEvent:
		c.routeKey(ev)
	case terminal.PasteEvent:
		for _, r := range ev.Text {
			switch r {
			case '\r', '\n':
				c.routeKey(terminal.KeyEvent{Key: terminal.KeyEnter})
			case '\t':
				c.routeKey(terminal.KeyEvent{Key: terminal.KeyTab})
			default:
				c.routeKey(terminal.KeyEvent{Key: terminal.KeyRune, Rune: r})
			}
		}
	case terminal.MouseEvent:
		c.routeMouse(ev)
	case terminal.ResizeEvent:
		c.resize(ev.Width, ev.Height)
	}
}

func (c *Context) routeKey(ev terminal.KeyEvent) {
	target := c.Focus()
	if target == nil {
		return
	}
	c.deliver(target, &Message{Target: target.id, Kind: KindKeydown, Payload: Key{ev}})
}

var mouseKinds = map[terminal.MouseButton][2]Kind{
	terminal.MouseLeft:   {KindMouseLDown, KindMouseLDouble},
	terminal.MouseMiddle: {KindMouseMDown, KindMouseMDouble},
	terminal.MouseRight:  {KindMouseRDown, KindMouseRDouble},
}

func (c *Context) routeMouse(ev terminal.MouseEvent) {
	ev = c.clicks.Observe(ev, c.clock.Now())
	kinds, ok := mouseKinds[ev.Button]
	if !ok {
		return
	}
	var kind Kind
	switch ev.Action {
	case terminal.MousePress:
		kind = kinds[0]
	case terminal.MouseDoubleClick:
		kind = kinds[1]
	default:
		return
	}
	target := c.WindowAt(ev.X, ev.Y)
	if target == nil {
		return
	}
	c.deliver(target, &Message{
		Target: target.id,
		Kind:   kind,
		Payload: Mouse{
			ScreenX: ev.X,
			ScreenY: ev.Y,
			Button:  ev.Button,
			Double:  ev.Action == terminal.MouseDoubleClick,
		},
	})
}

// resize adopts new terminal dimensions: the display is reallocated,
// the root refitted and everything repainted.
func (c *Context) resize(width, height int) {
	c.log.Info("terminal resized", "width", width, "height", height)
	c.display.Resize(width, height)
	if c.root == nil || c.root.dead {
		return
	}
	c.root.Repos(0, 0, width, height)
	c.Redisplay()
}

package wnd

import (
	"cmp"
	"fmt"

	"github.com/odvcencio/wndkit/pkg/errors"
	"github.com/odvcencio/wndkit/pkg/ui/backend"
)

const (
	closeBox = "[x]"
	maxBox   = "[^]"
)

// barEntry is one window bar label, in root columns.
type barEntry struct {
	x0, x1 int
	id     ID
}

// paint renders a full frame into the display buffer: the root, then
// every window bottom-to-top in z-order.
func (c *Context) paint() {
	c.updatePending = false
	if c.root == nil || c.root.dead {
		return
	}
	c.paintWindow(c.root, c.display.Bounds())
	c.metrics.frames.Inc()
}

func (c *Context) paintWindow(w *Window, clip Rect) {
	clip = clip.Intersection(w.ScreenRect())
	if clip.Empty() {
		return
	}
	w.clip = clip
	w.pen = w.resolveStyle(w.styleName)

	depth := c.states.depth
	c.runChain(w, &Message{Target: w.id, Kind: KindEraseBack, Payload: Plain{}})
	c.runChain(w, &Message{Target: w.id, Kind: KindDisplay, Payload: Plain{}})
	if c.states.depth != depth {
		errors.Fatalf(errors.ErrCodeStateStack, "window %d (%s) left the state stack at depth %d, want %d",
			w.id, w.class.Name, c.states.depth, depth)
	}
	if w.flags&FlagOwnDecor == 0 {
		w.drawDecorations()
	}
	if w == c.root && c.windowBar {
		c.paintWindowBar()
	}
	w.clip = Rect{}

	inner := clip.Intersection(w.ClientScreenRect())
	if inner.Empty() {
		return
	}
	order := w.ZOrder()
	for i := len(order) - 1; i >= 0; i-- {
		c.paintWindow(order[i], inner)
	}
}

// captionSpan returns the window columns [x0, x1) of the caption row.
func (w *Window) captionSpan() (x0, x1 int) {
	if w.flags&FlagBorder != 0 {
		return 1, w.rect.Width - 1
	}
	return 0, w.rect.Width
}

// captionBoxes returns the first window column of the max and close
// boxes, or -1 for a box that is absent or does not fit.
func (w *Window) captionBoxes() (maxX, closeX int) {
	maxX, closeX = -1, -1
	if w.flags&FlagCaption == 0 {
		return
	}
	x0, x := w.captionSpan()
	if w.flags&FlagCloseBox != 0 && x-len(closeBox) >= x0 {
		x -= len(closeBox)
		closeX = x
	}
	if w.flags&FlagMaxBox != 0 && x-len(maxBox) >= x0 {
		x -= len(maxBox)
		maxX = x
	}
	return
}

func (w *Window) drawDecorations() {
	if w.flags&(FlagBorder|FlagCaption) == 0 || w.rect.Empty() {
		return
	}
	focused := w.InFocusPath()
	border := w.resolveStyle(pick(focused, "border.focus.style", "border.style"))
	caption := w.resolveStyle(pick(focused, "caption.focus.style", "caption.style"))

	if w.flags&FlagBorder != 0 {
		w.drawBox(border)
	}
	if w.flags&FlagCaption == 0 {
		return
	}

	x0, x1 := w.captionSpan()
	if w.flags&FlagBorder == 0 {
		for x := x0; x < x1; x++ {
			w.putAbs(x, 0, ' ', caption)
		}
	}
	maxX, closeX := w.captionBoxes()
	end := x1
	if closeX >= 0 {
		end = closeX
	}
	if maxX >= 0 {
		end = maxX
	}
	if w.title != "" && end-x0 > 2 {
		w.putAbs(x0, 0, ' ', caption)
		n := w.printAbs(x0+1, 0, w.title, caption, end-x0-2)
		w.putAbs(x0+1+n, 0, ' ', caption)
	}
	if maxX >= 0 {
		w.printAbs(maxX, 0, maxBox, caption, len(maxBox))
	}
	if closeX >= 0 {
		w.printAbs(closeX, 0, closeBox, caption, len(closeBox))
	}
}

func (w *Window) drawBox(s backend.Style) {
	width, height := w.rect.Width, w.rect.Height
	if width < 2 || height < 2 {
		return
	}
	right, bottom := width-1, height-1

	w.putAbs(0, 0, '┌', s)
	w.putAbs(right, 0, '┐', s)
	w.putAbs(0, bottom, '└', s)
	w.putAbs(right, bottom, '┘', s)
	for x := 1; x < right; x++ {
		w.putAbs(x, 0, '─', s)
		w.putAbs(x, bottom, '─', s)
	}
	for y := 1; y < bottom; y++ {
		w.putAbs(0, y, '│', s)
		w.putAbs(right, y, '│', s)
	}
}

// paintWindowBar lists the root's children on the root's last row.
func (c *Context) paintWindowBar() {
	root := c.root
	y := root.rect.Height - 1
	if y < 0 {
		return
	}
	normal := root.resolveStyle("windowbar.style")
	focus := root.resolveStyle("windowbar.focus.style")
	for x := 0; x < root.rect.Width; x++ {
		root.putAbs(x, y, ' ', normal)
	}

	c.bar = c.bar[:0]
	x := 0
	for i, child := range root.Children() {
		if x >= root.rect.Width {
			break
		}
		label := fmt.Sprintf(" %d:%s ", i+1, cmp.Or(child.title, child.class.Name))
		style := normal
		if child.InFocusPath() {
			style = focus
		}
		n := root.printAbs(x, y, label, style, root.rect.Width-x)
		c.bar = append(c.bar, barEntry{x0: x, x1: x + n, id: child.id})
		x += n + 1
	}
}

// barHit returns the window whose bar label covers root column x.
func (c *Context) barHit(x int) *Window {
	for _, e := range c.bar {
		if x >= e.x0 && x < e.x1 {
			w, _ := c.Lookup(e.id)
			return w
		}
	}
	return nil
}

func pick[T any](cond bool, yes, no T) T {
	if cond {
		return yes
	}
	return no
}

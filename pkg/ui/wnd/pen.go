package wnd

import (
	"fmt"

	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/wndkit/pkg/ui/backend"
)

// The pen writes into the display buffer at the window's cursor, in
// client coordinates. Writes only land while the window is being
// painted and are clipped to its visible client area.

// Move places the cursor at client coordinates (x, y).
func (w *Window) Move(x, y int) {
	w.cursorX, w.cursorY = x, y
}

// Cursor returns the cursor position in client coordinates.
func (w *Window) Cursor() (x, y int) { return w.cursorX, w.cursorY }

// ShowCursor shows or hides the terminal cursor while w has the focus.
func (w *Window) ShowCursor(visible bool) {
	w.cursorHidden = !visible
}

// Pen returns the current style.
func (w *Window) Pen() backend.Style { return w.pen }

// SetPen replaces the current style.
func (w *Window) SetPen(s backend.Style) { w.pen = s }

// SetColor changes the pen colors.
func (w *Window) SetColor(fg, bg backend.Color) {
	w.pen = w.pen.Foreground(fg).Background(bg)
}

// SetAttrib replaces the pen attributes.
func (w *Window) SetAttrib(a backend.AttrMask) {
	w.pen = w.pen.WithAttrs(a)
}

// SetStyle loads the pen from the named setting, looked up in the
// window's class scopes. It reports false when the setting is missing
// or malformed, leaving the pen unchanged.
func (w *Window) SetStyle(name string) bool {
	s, ok := w.ctx.settings.Style(w.class.Scopes(), name)
	if ok {
		w.pen = s
	}
	return ok
}

func (w *Window) resolveStyle(name string) backend.Style {
	s, _ := w.ctx.settings.Style(w.class.Scopes(), name)
	return s
}

// Setting resolves a raw setting value in the window's class scopes.
func (w *Window) Setting(name string) (string, bool) {
	return w.ctx.settings.Resolve(w.class.Scopes(), name)
}

// PutChar writes r at the cursor and advances it by the rune's display
// width. Zero-width runes are dropped.
func (w *Window) PutChar(r rune) {
	width := runewidth.RuneWidth(r)
	if width == 0 {
		return
	}
	clip := w.clientClip()
	sx, sy := w.ClientToScreen(w.cursorX, w.cursorY)
	if width == 2 && !clip.Contains(sx+1, sy) {
		// Half a wide rune is not drawable.
		w.setCell(clip, sx, sy, ' ')
	} else {
		w.setCell(clip, sx, sy, r)
		if width == 2 {
			w.setCell(clip, sx+1, sy, 0)
		}
	}
	w.cursorX += width
}

// Print writes s at the cursor. A newline moves to the start of the
// next row.
func (w *Window) Print(s string) {
	for _, r := range s {
		if r == '\n' {
			w.cursorX = 0
			w.cursorY++
			continue
		}
		w.PutChar(r)
	}
}

// Printf formats and prints at the cursor.
func (w *Window) Printf(format string, args ...any) {
	w.Print(fmt.Sprintf(format, args...))
}

// Fill paints the client rectangle r with ch.
func (w *Window) Fill(r Rect, ch rune) {
	clip := w.clientClip()
	for y := r.Y; y < r.Y+r.Height; y++ {
		for x := r.X; x < r.X+r.Width; x++ {
			sx, sy := w.ClientToScreen(x, y)
			w.setCell(clip, sx, sy, ch)
		}
	}
}

// FillClient paints the whole client area with ch.
func (w *Window) FillClient(ch rune) {
	w.Fill(Rect{Width: w.client.Width, Height: w.client.Height}, ch)
}

// ClearToEOL blanks the cursor row from the cursor to the right edge of
// the client area. The cursor does not move.
func (w *Window) ClearToEOL() {
	w.Fill(Rect{X: w.cursorX, Y: w.cursorY, Width: max(0, w.client.Width-w.cursorX), Height: 1}, ' ')
}

func (w *Window) clientClip() Rect {
	return w.clip.Intersection(w.ClientScreenRect())
}

func (w *Window) setCell(clip Rect, sx, sy int, r rune) {
	if !clip.Contains(sx, sy) {
		return
	}
	w.ctx.display.Set(sx, sy, r, w.pen)
}

// putAbs writes in window coordinates, clipped to the whole window.
// Decorations use it.
func (w *Window) putAbs(x, y int, r rune, s backend.Style) {
	sx, sy := w.screenX+x, w.screenY+y
	if !w.clip.Contains(sx, sy) {
		return
	}
	w.ctx.display.Set(sx, sy, r, s)
}

func (w *Window) printAbs(x, y int, text string, s backend.Style, limit int) int {
	n := 0
	for _, r := range text {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if n+rw > limit {
			break
		}
		w.putAbs(x+n, y, r, s)
		if rw == 2 {
			w.putAbs(x+n+1, y, 0, s)
		}
		n += rw
	}
	return n
}

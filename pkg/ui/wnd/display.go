package wnd

import "github.com/odvcencio/wndkit/pkg/ui/backend"

// Cell is one character cell. A wide rune occupies its cell and the
// next one, which holds Rune 0.
type Cell struct {
	Rune  rune
	Style backend.Style
}

// Display is the shared off-screen grid every window paints into. It
// remembers what the terminal was last sent so a sync only issues the
// cells that changed.
type Display struct {
	width, height int

	cells []Cell
	shown []Cell
	known []bool // shown[i] is valid

	// touched tracks cells written since the last sync.
	touched      []bool
	touchedCount int
	dirty        bool
}

func newDisplay(width, height int) *Display {
	d := &Display{}
	d.Resize(width, height)
	return d
}

// Size returns the grid dimensions.
func (d *Display) Size() (width, height int) {
	return d.width, d.height
}

// Bounds returns the grid as a rectangle at the origin.
func (d *Display) Bounds() Rect {
	return Rect{Width: d.width, Height: d.height}
}

// Resize reallocates the grid. Nothing is known about the terminal
// afterwards, so the next sync sends every cell.
func (d *Display) Resize(width, height int) {
	width, height = max(0, width), max(0, height)
	n := width * height
	d.width, d.height = width, height
	d.cells = make([]Cell, n)
	for i := range d.cells {
		d.cells[i] = Cell{Rune: ' ', Style: backend.DefaultStyle()}
	}
	d.shown = make([]Cell, n)
	d.known = make([]bool, n)
	d.touched = make([]bool, n)
	d.touchedCount = 0
	d.markAllTouched()
	d.dirty = true
}

// Get returns the cell at (x, y), or a blank cell outside the grid.
func (d *Display) Get(x, y int) Cell {
	if x < 0 || x >= d.width || y < 0 || y >= d.height {
		return Cell{Rune: ' ', Style: backend.DefaultStyle()}
	}
	return d.cells[y*d.width+x]
}

// Set writes one cell. Writes outside the grid are ignored.
func (d *Display) Set(x, y int, r rune, s backend.Style) {
	if x < 0 || x >= d.width || y < 0 || y >= d.height {
		return
	}
	idx := y*d.width + x
	cell := Cell{Rune: r, Style: s}
	if d.cells[idx] == cell {
		return
	}
	d.cells[idx] = cell
	if !d.touched[idx] {
		d.touched[idx] = true
		d.touchedCount++
	}
	d.dirty = true
}

// Dirty reports whether anything needs to reach the terminal.
func (d *Display) Dirty() bool { return d.dirty }

// Forget drops the record of the terminal contents.
func (d *Display) Forget() {
	clear(d.known)
	d.markAllTouched()
	d.dirty = true
}

func (d *Display) markAllTouched() {
	for i := range d.touched {
		d.touched[i] = true
	}
	d.touchedCount = len(d.touched)
}

// flush sends every touched cell that differs from the terminal's last
// known contents and returns how many were sent.
func (d *Display) flush(b backend.Backend) int {
	sent := 0
	if d.touchedCount > 0 {
		for idx, t := range d.touched {
			if !t {
				continue
			}
			cell := d.cells[idx]
			if d.known[idx] && d.shown[idx] == cell {
				continue
			}
			d.shown[idx] = cell
			d.known[idx] = true
			if cell.Rune == 0 {
				continue
			}
			b.SetContent(idx%d.width, idx/d.width, cell.Rune, nil, cell.Style)
			sent++
		}
		clear(d.touched)
		d.touchedCount = 0
	}
	d.dirty = false
	return sent
}

// SyncScreen pushes the display buffer to the backend, places or hides
// the terminal cursor for the focus window and shows the result.
func (c *Context) SyncScreen() {
	n := c.display.flush(c.backend)
	c.metrics.cellsFlushed.Add(float64(n))

	if x, y, ok := c.cursorPosition(); ok {
		c.backend.SetCursorPos(x, y)
		c.backend.ShowCursor()
	} else {
		c.backend.HideCursor()
	}
	c.backend.Show()
}

func (c *Context) cursorPosition() (int, int, bool) {
	f := c.Focus()
	if f == nil || f.cursorHidden {
		return 0, 0, false
	}
	x, y := f.ClientToScreen(f.cursorX, f.cursorY)
	if !c.visibleClient(f).Contains(x, y) {
		return 0, 0, false
	}
	return x, y, true
}

// visibleClient is the part of w's client area not clipped away by its
// ancestors, in screen coordinates.
func (c *Context) visibleClient(w *Window) Rect {
	r := w.ClientScreenRect().Intersection(c.display.Bounds())
	for p := w.Parent(); p != nil; p = p.Parent() {
		r = r.Intersection(p.ClientScreenRect())
	}
	return r
}

// Invalidate marks the display dirty and schedules one repaint. Further
// invalidations before that repaint runs are coalesced.
func (w *Window) Invalidate() {
	c := w.ctx
	c.display.dirty = true
	if c.updatePending || c.root == nil || c.root.dead {
		return
	}
	if err := c.Post(c.root.id, KindUpdateScreen, Plain{}); err != nil {
		c.log.Warn("repaint not queued", "error", err)
		return
	}
	c.updatePending = true
}

// Redisplay clears the terminal, forgets its contents and repaints
// everything.
func (c *Context) Redisplay() {
	c.display.Forget()
	c.backend.Clear()
	c.backend.Sync()
	if c.root != nil && !c.root.dead {
		c.root.Invalidate()
	}
}

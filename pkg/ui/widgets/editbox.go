package widgets

import (
	"slices"
	"unicode"

	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/wndkit/pkg/ui/terminal"
	"github.com/odvcencio/wndkit/pkg/ui/wnd"
)

// EditBoxClass is the class of single-line text inputs.
var EditBoxClass = wnd.NewClass("editbox", ItemClass)

var clearBinding = terminal.MustParseBinding("ctrl+u")

// EditBox is a single-line text input. The cursor is a rune offset in
// [0, len(text)]; scrolled is the first visible rune.
type EditBox struct {
	*DialogItem

	text     []rune
	cursor   int
	scrolled int
	width    int

	onChange func(text string)
}

// NewEditBox creates an edit box under parent that wants width columns.
// The cursor starts at the end of text.
func NewEditBox(parent *wnd.Window, id, text string, width int) (*EditBox, error) {
	e := &EditBox{width: max(width, 1)}
	di, err := NewDialogItem(parent, Options{
		ID:        id,
		Focusable: true,
		Class:     EditBoxClass,
		Style:     "editbox.style",
		Ext:       e,
		GetSize:   func() (int, int) { return e.width, 1 },
		SetPos:    func(wnd.Rect) { e.adjust(true) },
	})
	if err != nil {
		return nil, err
	}
	e.DialogItem = di
	di.SetSize(e.width, 1)
	e.text = []rune(text)
	e.cursor = len(e.text)
	e.adjust(false)

	di.OnKey(e.keydown)
	di.OnMouse(wnd.KindMouseLDown, e.mouseDown)
	di.OnDisplay(e.display)
	return e, nil
}

// OnChange sets the callback run after every edit.
func (e *EditBox) OnChange(fn func(text string)) {
	e.onChange = fn
}

// Text returns the current contents.
func (e *EditBox) Text() string { return string(e.text) }

// CursorPos returns the cursor offset in runes.
func (e *EditBox) CursorPos() int { return e.cursor }

// Scrolled returns the offset of the first visible rune.
func (e *EditBox) Scrolled() int { return e.scrolled }

// SetText replaces the contents and puts the cursor at the end.
func (e *EditBox) SetText(s string) {
	e.text = []rune(s)
	e.cursor = len(e.text)
	e.scrolled = 0
	e.adjust(false)
	e.Invalidate()
}

// AddCh inserts ch at the cursor and advances it.
func (e *EditBox) AddCh(ch rune) {
	e.text = slices.Insert(e.text, e.cursor, ch)
	e.cursor++
	e.adjust(false)
	e.changed()
}

// DelCh deletes the rune at pos. A cursor past pos moves left with the
// text. Out of range positions are ignored.
func (e *EditBox) DelCh(pos int) {
	if pos < 0 || pos >= len(e.text) {
		return
	}
	e.text = slices.Delete(e.text, pos, pos+1)
	if e.cursor > pos {
		e.cursor--
	}
	e.adjust(true)
	e.changed()
}

// Move puts the cursor at pos, clamped to the text.
func (e *EditBox) Move(pos int) {
	e.cursor = clampInt(pos, 0, len(e.text))
	e.adjust(false)
	e.Invalidate()
}

func (e *EditBox) clear() {
	e.text = e.text[:0]
	e.cursor, e.scrolled = 0, 0
	e.changed()
}

func (e *EditBox) changed() {
	e.Invalidate()
	if e.onChange != nil {
		e.onChange(string(e.text))
	}
}

// visible is the number of columns shown, which is the client width
// once the box has been placed.
func (e *EditBox) visible() int {
	if w := e.Width(); w > 0 {
		return w
	}
	return e.width
}

// span is the display width of text[from:to].
func (e *EditBox) span(from, to int) int {
	n := 0
	for _, r := range e.text[from:to] {
		n += cellWidth(r)
	}
	return n
}

// adjust scrolls so the cursor cell is visible. With shrink set it
// also scrolls back as far as the tail of the text still fits.
func (e *EditBox) adjust(shrink bool) {
	width := e.visible()
	e.scrolled = clampInt(e.scrolled, 0, e.cursor)
	for e.scrolled < e.cursor && e.span(e.scrolled, e.cursor) >= width {
		e.scrolled++
	}
	if !shrink {
		return
	}
	for e.scrolled > 0 && e.span(e.scrolled-1, len(e.text)) < width {
		e.scrolled--
	}
}

func (e *EditBox) keydown(_ *wnd.Window, k wnd.Key) wnd.RetCode {
	if e.Deferred() {
		return wnd.Continue
	}
	if clearBinding.Matches(k.KeyEvent) {
		e.clear()
		return wnd.Stop
	}
	switch k.Key {
	case terminal.KeyLeft:
		e.Move(e.cursor - 1)
	case terminal.KeyRight:
		e.Move(e.cursor + 1)
	case terminal.KeyHome:
		e.Move(0)
	case terminal.KeyEnd:
		e.Move(len(e.text))
	case terminal.KeyBackspace:
		if e.cursor > 0 {
			e.DelCh(e.cursor - 1)
		}
	case terminal.KeyDelete:
		e.DelCh(e.cursor)
	case terminal.KeyRune:
		if k.Alt || k.Ctrl || !unicode.IsPrint(k.Rune) {
			return wnd.Continue
		}
		e.AddCh(k.Rune)
	default:
		return wnd.Continue
	}
	return wnd.Stop
}

// mouseDown moves the cursor under the pointer, then lets the class
// default take the focus.
func (e *EditBox) mouseDown(_ *wnd.Window, x, y int, _ wnd.Mouse) wnd.RetCode {
	if y != 0 || x < 0 {
		return wnd.Continue
	}
	pos, col := e.scrolled, 0
	for pos < len(e.text) {
		cw := cellWidth(e.text[pos])
		if col+cw > x {
			break
		}
		col += cw
		pos++
	}
	e.Move(pos)
	return wnd.PassToDefault
}

func (e *EditBox) display(w *wnd.Window) {
	if w.HasFocus() {
		w.SetStyle("editbox.focus.style")
	}
	width := w.Width()
	w.FillClient(' ')
	w.Move(0, 0)
	col := 0
	for _, r := range e.text[e.scrolled:] {
		cw := cellWidth(r)
		if col+cw > width {
			break
		}
		w.PutChar(r)
		col += cw
	}
	w.Move(e.span(e.scrolled, e.cursor), 0)
	w.ShowCursor(true)
}

func cellWidth(r rune) int {
	return max(runewidth.RuneWidth(r), 1)
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

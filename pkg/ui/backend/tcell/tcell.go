// Package tcell provides a Backend implementation using tcell.
package tcell

import (
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/odvcencio/wndkit/pkg/ui/backend"
	"github.com/odvcencio/wndkit/pkg/ui/terminal"
)

// Backend implements backend.Backend using tcell.
type Backend struct {
	screen   tcell.Screen
	noMouse  bool
	finiOnce sync.Once

	// Bracketed paste state
	inPaste     bool
	pasteBuffer strings.Builder
}

// New creates a new tcell backend.
func New() (*Backend, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Backend{screen: screen}, nil
}

// NewWithScreen creates a backend with an existing tcell screen (for testing).
func NewWithScreen(screen tcell.Screen) *Backend {
	return &Backend{screen: screen}
}

// Init initializes the backend.
func (b *Backend) Init() error {
	if err := b.screen.Init(); err != nil {
		return err
	}
	if !b.noMouse {
		b.screen.EnableMouse()
	}
	b.screen.EnablePaste()
	return nil
}

// DisableMouse keeps mouse reporting off. Call before Init.
func (b *Backend) DisableMouse() {
	b.noMouse = true
}

// Fini cleans up the backend. It is safe to call more than once; the
// first call makes a blocked PollEvent return nil.
func (b *Backend) Fini() {
	b.finiOnce.Do(b.screen.Fini)
}

// Size returns the terminal dimensions.
func (b *Backend) Size() (width, height int) {
	return b.screen.Size()
}

// SetContent sets a cell at position (x, y).
func (b *Backend) SetContent(x, y int, mainc rune, comb []rune, style backend.Style) {
	b.screen.SetContent(x, y, mainc, comb, convertStyle(style))
}

// Show synchronizes the buffer to the terminal.
func (b *Backend) Show() {
	b.screen.Show()
}

// Clear clears the screen.
func (b *Backend) Clear() {
	b.screen.Clear()
}

// HideCursor hides the cursor.
func (b *Backend) HideCursor() {
	b.screen.HideCursor()
}

// ShowCursor shows the cursor.
func (b *Backend) ShowCursor() {
	// tcell shows cursor when we set its position
}

// SetCursorPos sets the cursor position.
func (b *Backend) SetCursorPos(x, y int) {
	b.screen.ShowCursor(x, y)
}

// PollEvent blocks until an event is available.
func (b *Backend) PollEvent() terminal.Event {
	for {
		ev := b.screen.PollEvent()
		if ev == nil {
			return nil
		}

		// Handle bracketed paste state machine
		switch e := ev.(type) {
		case *tcell.EventPaste:
			if e.Start() {
				// Begin paste mode, buffer subsequent key events
				b.inPaste = true
				b.pasteBuffer.Reset()
				continue
			}
			if e.End() {
				// End paste mode, emit PasteEvent with accumulated content
				b.inPaste = false
				text := b.pasteBuffer.String()
				b.pasteBuffer.Reset()
				if text != "" {
					return terminal.PasteEvent{Text: text}
				}
				continue
			}

		case *tcell.EventKey:
			if b.inPaste {
				// Accumulate runes during paste
				if e.Key() == tcell.KeyRune {
					b.pasteBuffer.WriteRune(e.Rune())
				} else if e.Key() == tcell.KeyEnter {
					b.pasteBuffer.WriteRune('\n')
				} else if e.Key() == tcell.KeyTab {
					b.pasteBuffer.WriteRune('\t')
				}
				continue
			}
		}

		// Normal event handling
		return convertEvent(ev)
	}
}

// PostEvent injects an event into the queue.
func (b *Backend) PostEvent(ev terminal.Event) error {
	tev := reverseConvertEvent(ev)
	if tev != nil {
		return b.screen.PostEvent(tev)
	}
	return nil
}

// Beep emits an audible bell.
func (b *Backend) Beep() {
	b.screen.Beep()
}

// Sync forces a full redraw.
func (b *Backend) Sync() {
	b.screen.Sync()
}

// convertStyle converts backend.Style to tcell.Style.
func convertStyle(s backend.Style) tcell.Style {
	fg, bg, attrs := s.Decompose()
	style := tcell.StyleDefault.
		Foreground(convertColor(fg)).
		Background(convertColor(bg))

	if attrs&backend.AttrBold != 0 {
		style = style.Bold(true)
	}
	if attrs&backend.AttrItalic != 0 {
		style = style.Italic(true)
	}
	if attrs&backend.AttrUnderline != 0 {
		style = style.Underline(true)
	}
	if attrs&backend.AttrDim != 0 {
		style = style.Dim(true)
	}
	if attrs&backend.AttrBlink != 0 {
		style = style.Blink(true)
	}
	if attrs&backend.AttrReverse != 0 {
		style = style.Reverse(true)
	}
	if attrs&backend.AttrStrikeThrough != 0 {
		style = style.StrikeThrough(true)
	}

	return style
}

// convertColor converts backend.Color to tcell.Color.
func convertColor(c backend.Color) tcell.Color {
	if c == backend.ColorDefault {
		return tcell.ColorDefault
	}
	if c.IsRGB() {
		r, g, b := c.RGB()
		return tcell.NewRGBColor(int32(r), int32(g), int32(b))
	}
	return tcell.PaletteColor(int(c))
}

// convertEvent converts a tcell event to terminal.Event.
func convertEvent(ev tcell.Event) terminal.Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return terminal.KeyEvent{
			Key:   convertKey(e.Key()),
			Rune:  e.Rune(),
			Alt:   e.Modifiers()&tcell.ModAlt != 0,
			Ctrl:  e.Modifiers()&tcell.ModCtrl != 0,
			Shift: e.Modifiers()&tcell.ModShift != 0,
		}
	case *tcell.EventResize:
		w, h := e.Size()
		return terminal.ResizeEvent{Width: w, Height: h}
	case *tcell.EventMouse:
		x, y := e.Position()
		mods := e.Modifiers()
		return terminal.MouseEvent{
			X:      x,
			Y:      y,
			Button: convertMouseButton(e.Buttons()),
			Action: convertMouseAction(e.Buttons()),
			Alt:    mods&tcell.ModAlt != 0,
			Ctrl:   mods&tcell.ModCtrl != 0,
			Shift:  mods&tcell.ModShift != 0,
		}
	default:
		return nil
	}
}

// convertKey converts tcell.Key to terminal.Key.
func convertKey(k tcell.Key) terminal.Key {
	switch k {
	case tcell.KeyRune:
		return terminal.KeyRune
	case tcell.KeyUp:
		return terminal.KeyUp
	case tcell.KeyDown:
		return terminal.KeyDown
	case tcell.KeyRight:
		return terminal.KeyRight
	case tcell.KeyLeft:
		return terminal.KeyLeft
	case tcell.KeyPgUp:
		return terminal.KeyPageUp
	case tcell.KeyPgDn:
		return terminal.KeyPageDown
	case tcell.KeyHome:
		return terminal.KeyHome
	case tcell.KeyEnd:
		return terminal.KeyEnd
	case tcell.KeyInsert:
		return terminal.KeyInsert
	case tcell.KeyDelete:
		return terminal.KeyDelete
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return terminal.KeyBackspace
	case tcell.KeyTab:
		return terminal.KeyTab
	case tcell.KeyEnter:
		return terminal.KeyEnter
	case tcell.KeyEscape:
		return terminal.KeyEscape
	case tcell.KeyBacktab:
		return terminal.KeyBacktab
	case tcell.KeyF1:
		return terminal.KeyF1
	case tcell.KeyF2:
		return terminal.KeyF2
	case tcell.KeyF3:
		return terminal.KeyF3
	case tcell.KeyF4:
		return terminal.KeyF4
	case tcell.KeyF5:
		return terminal.KeyF5
	case tcell.KeyF6:
		return terminal.KeyF6
	case tcell.KeyF7:
		return terminal.KeyF7
	case tcell.KeyF8:
		return terminal.KeyF8
	case tcell.KeyF9:
		return terminal.KeyF9
	case tcell.KeyF10:
		return terminal.KeyF10
	case tcell.KeyF11:
		return terminal.KeyF11
	case tcell.KeyF12:
		return terminal.KeyF12
	}
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return terminal.KeyCtrlA + terminal.Key(k-tcell.KeyCtrlA)
	}
	return terminal.KeyNone
}

// convertMouseButton converts tcell button mask to terminal.MouseButton.
func convertMouseButton(buttons tcell.ButtonMask) terminal.MouseButton {
	switch {
	case buttons&tcell.WheelUp != 0:
		return terminal.MouseWheelUp
	case buttons&tcell.WheelDown != 0:
		return terminal.MouseWheelDown
	case buttons&tcell.ButtonPrimary != 0:
		return terminal.MouseLeft
	case buttons&tcell.ButtonMiddle != 0:
		return terminal.MouseMiddle
	case buttons&tcell.ButtonSecondary != 0:
		return terminal.MouseRight
	default:
		return terminal.MouseNone
	}
}

// convertMouseAction determines the mouse action from button state.
func convertMouseAction(buttons tcell.ButtonMask) terminal.MouseAction {
	if buttons == tcell.ButtonNone {
		return terminal.MouseRelease
	}
	return terminal.MousePress
}

// reverseConvertEvent converts terminal.Event to tcell.Event for PostEvent.
func reverseConvertEvent(ev terminal.Event) tcell.Event {
	switch e := ev.(type) {
	case terminal.ResizeEvent:
		return tcell.NewEventResize(e.Width, e.Height)
	case terminal.KeyEvent:
		return tcell.NewEventKey(reverseKey(e.Key), e.Rune, modMask(e.Alt, e.Ctrl, e.Shift))
	case terminal.MouseEvent:
		return tcell.NewEventMouse(e.X, e.Y, reverseButton(e.Button), modMask(e.Alt, e.Ctrl, e.Shift))
	default:
		return nil
	}
}

func modMask(alt, ctrl, shift bool) tcell.ModMask {
	var m tcell.ModMask
	if alt {
		m |= tcell.ModAlt
	}
	if ctrl {
		m |= tcell.ModCtrl
	}
	if shift {
		m |= tcell.ModShift
	}
	return m
}

var reverseKeys = map[terminal.Key]tcell.Key{
	terminal.KeyRune:      tcell.KeyRune,
	terminal.KeyUp:        tcell.KeyUp,
	terminal.KeyDown:      tcell.KeyDown,
	terminal.KeyRight:     tcell.KeyRight,
	terminal.KeyLeft:      tcell.KeyLeft,
	terminal.KeyPageUp:    tcell.KeyPgUp,
	terminal.KeyPageDown:  tcell.KeyPgDn,
	terminal.KeyHome:      tcell.KeyHome,
	terminal.KeyEnd:       tcell.KeyEnd,
	terminal.KeyInsert:    tcell.KeyInsert,
	terminal.KeyDelete:    tcell.KeyDelete,
	terminal.KeyBackspace: tcell.KeyBackspace2,
	terminal.KeyTab:       tcell.KeyTab,
	terminal.KeyBacktab:   tcell.KeyBacktab,
	terminal.KeyEnter:     tcell.KeyEnter,
	terminal.KeyEscape:    tcell.KeyEscape,
}

func reverseKey(k terminal.Key) tcell.Key {
	if tk, ok := reverseKeys[k]; ok {
		return tk
	}
	if k >= terminal.KeyF1 && k <= terminal.KeyF12 {
		return tcell.KeyF1 + tcell.Key(k-terminal.KeyF1)
	}
	if k >= terminal.KeyCtrlA && k <= terminal.KeyCtrlZ {
		return tcell.KeyCtrlA + tcell.Key(k-terminal.KeyCtrlA)
	}
	return tcell.KeyRune
}

func reverseButton(b terminal.MouseButton) tcell.ButtonMask {
	switch b {
	case terminal.MouseLeft:
		return tcell.ButtonPrimary
	case terminal.MouseMiddle:
		return tcell.ButtonMiddle
	case terminal.MouseRight:
		return tcell.ButtonSecondary
	case terminal.MouseWheelUp:
		return tcell.WheelUp
	case terminal.MouseWheelDown:
		return tcell.WheelDown
	default:
		return tcell.ButtonNone
	}
}

// Ensure Backend implements backend.Backend
var _ backend.Backend = (*Backend)(nil)

// Package backend defines the terminal the window system paints to and
// reads input from. The tcell package drives a real terminal; the sim
// package wraps tcell's simulation screen for tests.
package backend

import "github.com/odvcencio/wndkit/pkg/ui/terminal"

//go:generate mockgen -destination=../wnd/mock_backend_test.go -package=wnd github.com/odvcencio/wndkit/pkg/ui/backend Backend

// Backend is the terminal abstraction layer.
type Backend interface {
	// Init enters raw mode and the alternate screen.
	Init() error

	// Fini restores the terminal. A blocked PollEvent returns nil
	// afterwards.
	Fini()

	// Size returns the current terminal dimensions.
	Size() (width, height int)

	// SetContent sets a cell at position (x, y) with the given rune and style.
	// The comb parameter contains combining characters (can be nil).
	SetContent(x, y int, mainc rune, comb []rune, style Style)

	// Show flushes pending cells to the terminal.
	Show()

	Clear()
	HideCursor()
	ShowCursor()
	SetCursorPos(x, y int)

	// PollEvent blocks until an event is available and returns it.
	// Returns nil if the backend is shutting down.
	PollEvent() terminal.Event

	// PostEvent injects an event into the event queue.
	PostEvent(ev terminal.Event) error

	Beep()

	// Sync forces a full redraw on next Show().
	Sync()
}

package widgets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/odvcencio/wndkit/pkg/clock"
	"github.com/odvcencio/wndkit/pkg/ui/backend/sim"
	"github.com/odvcencio/wndkit/pkg/ui/terminal"
	"github.com/odvcencio/wndkit/pkg/ui/wnd"
)

type env struct {
	c  *wnd.Context
	be *sim.Backend
}

func newEnv(t *testing.T, width, height int) *env {
	t.Helper()
	be := sim.New(width, height)
	require.NoError(t, be.Init())
	t.Cleanup(be.Fini)

	c, err := wnd.NewContext(wnd.Config{
		Backend: be,
		Clock:   clock.Fake(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
	})
	require.NoError(t, err)
	c.ProcessPending()
	return &env{c: c, be: be}
}

func (e *env) dialog(t *testing.T, title string, x, y, width, height int) *Dialog {
	t.Helper()
	d, err := NewDialog(e.c.Root(), wnd.Options{Title: title, X: x, Y: y, Width: width, Height: height})
	require.NoError(t, err)
	return d
}

func (e *env) editbox(t *testing.T, parent *wnd.Window, id, text string, width int) *EditBox {
	t.Helper()
	eb, err := NewEditBox(parent, id, text, width)
	require.NoError(t, err)
	return eb
}

func (e *env) key(ev terminal.KeyEvent) {
	_ = e.c.PostKey(ev)
	e.c.ProcessPending()
}

func (e *env) keys(events ...terminal.KeyEvent) {
	for _, ev := range events {
		e.key(ev)
	}
}

func (e *env) typeText(s string) {
	for _, r := range s {
		e.key(terminal.KeyEvent{Key: terminal.KeyRune, Rune: r})
	}
}

func (e *env) click(x, y int) {
	_ = e.c.PostMouse(terminal.MouseEvent{X: x, Y: y, Button: terminal.MouseLeft, Action: terminal.MousePress})
	e.c.ProcessPending()
}

func keyOf(k terminal.Key) terminal.KeyEvent {
	return terminal.KeyEvent{Key: k}
}

package wnd

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/odvcencio/wndkit/pkg/clock"
	"github.com/odvcencio/wndkit/pkg/errors"
	"github.com/odvcencio/wndkit/pkg/ui/backend"
	"github.com/odvcencio/wndkit/pkg/ui/terminal"
)

// fakeBackend records what the context sends it.
type fakeBackend struct {
	mu            sync.Mutex
	width, height int
	cells         map[[2]int]Cell
	sent          int
	shows         int
	syncs         int
	clears        int
	beeps         int
	cursorX       int
	cursorY       int
	cursorVisible bool
	events        chan terminal.Event
	done          chan struct{}
	finiOnce      sync.Once
}

func newFakeBackend(width, height int) *fakeBackend {
	return &fakeBackend{
		width:  width,
		height: height,
		cells:  make(map[[2]int]Cell),
		events: make(chan terminal.Event, 64),
		done:   make(chan struct{}),
	}
}

func (f *fakeBackend) Init() error { return nil }

func (f *fakeBackend) Fini() {
	f.finiOnce.Do(func() { close(f.done) })
}

func (f *fakeBackend) Size() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.width, f.height
}

func (f *fakeBackend) SetContent(x, y int, mainc rune, _ []rune, style backend.Style) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cells[[2]int{x, y}] = Cell{Rune: mainc, Style: style}
	f.sent++
}

func (f *fakeBackend) Show() {
	f.mu.Lock()
	f.shows++
	f.mu.Unlock()
}

func (f *fakeBackend) Clear() {
	f.mu.Lock()
	f.clears++
	f.mu.Unlock()
}

func (f *fakeBackend) HideCursor() {
	f.mu.Lock()
	f.cursorVisible = false
	f.mu.Unlock()
}

func (f *fakeBackend) ShowCursor() {
	f.mu.Lock()
	f.cursorVisible = true
	f.mu.Unlock()
}

func (f *fakeBackend) SetCursorPos(x, y int) {
	f.mu.Lock()
	f.cursorX, f.cursorY = x, y
	f.mu.Unlock()
}

func (f *fakeBackend) PollEvent() terminal.Event {
	select {
	case ev := <-f.events:
		return ev
	case <-f.done:
		return nil
	}
}

func (f *fakeBackend) PostEvent(ev terminal.Event) error {
	f.events <- ev
	return nil
}

func (f *fakeBackend) Beep() {
	f.mu.Lock()
	f.beeps++
	f.mu.Unlock()
}

func (f *fakeBackend) Sync() {
	f.mu.Lock()
	f.syncs++
	f.mu.Unlock()
}

// row returns the runes sent for row y, blanks for unsent cells.
func (f *fakeBackend) row(y int) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]rune, 0, f.width)
	for x := 0; x < f.width; x++ {
		c, ok := f.cells[[2]int{x, y}]
		if !ok || c.Rune == 0 {
			out = append(out, ' ')
			continue
		}
		out = append(out, c.Rune)
	}
	return string(out)
}

func (f *fakeBackend) cell(x, y int) Cell {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cells[[2]int{x, y}]
}

var testEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type testEnv struct {
	c     *Context
	be    *fakeBackend
	clock *clock.FakeClock
}

func newTestEnv(t *testing.T, width, height int, mutate ...func(*Config)) *testEnv {
	t.Helper()
	be := newFakeBackend(width, height)
	fc := clock.Fake(testEpoch)
	cfg := Config{Backend: be, Clock: fc}
	for _, m := range mutate {
		m(&cfg)
	}
	c, err := NewContext(cfg)
	require.NoError(t, err)
	c.ProcessPending()
	return &testEnv{c: c, be: be, clock: fc}
}

func (e *testEnv) newWindow(t *testing.T, parent *Window, opts Options) *Window {
	t.Helper()
	w, err := New(parent, opts)
	require.NoError(t, err)
	return w
}

func (e *testEnv) key(ev terminal.KeyEvent) {
	_ = e.c.PostKey(ev)
	e.c.ProcessPending()
}

func (e *testEnv) keys(events ...terminal.KeyEvent) {
	for _, ev := range events {
		e.key(ev)
	}
}

func (e *testEnv) binding(s string) {
	b := terminal.MustParseBinding(s)
	e.key(terminal.KeyEvent{Key: b.Key, Rune: b.Rune, Alt: b.Alt, Ctrl: b.Ctrl})
}

func (e *testEnv) click(x, y int) {
	_ = e.c.PostMouse(terminal.MouseEvent{X: x, Y: y, Button: terminal.MouseLeft, Action: terminal.MousePress})
	e.c.ProcessPending()
}

func keyOf(k terminal.Key) terminal.KeyEvent {
	return terminal.KeyEvent{Key: k}
}

func runeKey(r rune) terminal.KeyEvent {
	return terminal.KeyEvent{Key: terminal.KeyRune, Rune: r}
}

// requireFatal asserts fn panics with a structured error carrying code.
func requireFatal(t *testing.T, code errors.ErrorCode, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		require.NotNil(t, r, "expected panic with %s", code)
		err, ok := r.(error)
		require.True(t, ok, "panic value %v is not an error", r)
		require.True(t, errors.IsCode(err, code), "got %v, want code %s", err, code)
	}()
	fn()
}

// requireFocusValid checks the focus is the root or a live descendant.
func requireFocusValid(t *testing.T, c *Context) {
	t.Helper()
	f := c.Focus()
	require.NotNil(t, f)
	require.True(t, f.Alive())
	require.True(t, f == c.Root() || IsDescendant(f, c.Root()), "focus %d is outside the tree", f.ID())
}

package wnd

import (
	"cmp"

	"github.com/odvcencio/wndkit/pkg/errors"
	"github.com/odvcencio/wndkit/pkg/logging"
	"github.com/odvcencio/wndkit/pkg/ui/backend"
)

// ID is a stable window handle. Zero is never allocated.
type ID uint32

// Flags describe a window's decorations and state.
type Flags uint32

const (
	FlagRoot Flags = 1 << iota
	FlagBorder
	FlagCaption
	FlagCloseBox
	FlagMaxBox
	// FlagOwnDecor means the window paints its own decorations; the
	// client rectangle is still derived from the other flags.
	FlagOwnDecor
	FlagMaximized

	FlagFullBorder = FlagBorder | FlagCaption | FlagCloseBox | FlagMaxBox
)

// Mode is the window's interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeReposition
	ModeResize
)

func (m Mode) String() string {
	switch m {
	case ModeReposition:
		return "reposition"
	case ModeResize:
		return "resize"
	}
	return "normal"
}

// Options configure a new window.
type Options struct {
	Title               string
	X, Y, Width, Height int
	Flags               Flags
	// Class defaults to the base window class.
	Class *Class
	// NoFocus makes the window skip focus; it is not focused on
	// creation and focus cycling passes over it.
	NoFocus bool
	// Style names the setting the pen is reset to before each paint.
	// It defaults to "window.style".
	Style string
	// Ext is the subtype value, retrievable with Window.Ext.
	Ext any
}

// Window is a node of the window tree. All methods must be called on
// the dispatcher goroutine.
type Window struct {
	ctx   *Context
	id    ID
	class *Class
	title string
	flags Flags

	parent     ID
	children   []ID // creation order, newest first
	zorder     []ID // topmost first
	focusChild ID
	focusable  bool

	rect             Rect // relative to the parent's client area
	screenX, screenY int
	client           Rect // relative to the window origin

	cursorX, cursorY int
	cursorHidden     bool

	savedMax       Rect
	savedRepos     Rect
	savedFlags     Flags // maximize state when the mode was entered
	savedMaxAtMode Rect
	mode           Mode
	modeKey        uint64 // keydown entry installed by SetMode

	pen       backend.Style
	styleName string
	clip      Rect // screen area writable while painting

	handlers    map[Kind][]handler
	handlerSeq  uint64
	destructors []DestructorFunc

	ext  any
	dead bool
}

// Logger returns the context logger tagged with the window's id and
// class.
func (w *Window) Logger() *logging.Logger {
	return w.ctx.log.WithWindow(uint32(w.id), w.class.Name)
}

// clientInsets is the single deduction table from decoration flags to
// the client area. With a border the caption sits in the top border
// row, so BORDER|CAPTION costs one cell on every side.
func clientInsets(f Flags) (left, top, right, bottom int) {
	switch {
	case f&FlagBorder != 0:
		return 1, 1, 1, 1
	case f&FlagCaption != 0:
		return 0, 1, 0, 0
	}
	return 0, 0, 0, 0
}

// New creates a window under parent. The window becomes the topmost
// child and, unless opts.NoFocus is set, takes the focus. A nil or
// destroyed parent panics; a full window arena returns an
// ErrCodeUnavailable error with nothing linked.
func New(parent *Window, opts Options) (*Window, error) {
	if parent == nil || parent.dead || parent.ctx == nil {
		errors.Fatalf(errors.ErrCodeInvalidParent, "window %q created without a live parent", opts.Title)
	}
	c := parent.ctx
	w, err := c.allocate(opts)
	if err != nil {
		return nil, err
	}
	w.parent = parent.id
	parent.children = append([]ID{w.id}, parent.children...)
	parent.zorder = append([]ID{w.id}, parent.zorder...)
	w.place(opts.X, opts.Y, opts.Width, opts.Height)

	w.Logger().Debug("window created", "parent_id", uint32(parent.id))
	c.metrics.windowsOpen(len(c.windows))

	if w.focusable {
		c.SetFocus(w)
	}
	w.Invalidate()
	return w, nil
}

func (c *Context) allocate(opts Options) (*Window, error) {
	if len(c.windows) >= c.maxWindows {
		return nil, errors.Newf(errors.ErrCodeUnavailable, "window limit %d reached", c.maxWindows).
			WithContext("title", opts.Title)
	}
	for {
		c.lastID++
		if c.lastID == 0 {
			continue
		}
		if _, taken := c.windows[c.lastID]; !taken {
			break
		}
	}
	class := opts.Class
	if class == nil {
		class = BaseClass
	}
	w := &Window{
		ctx:          c,
		id:           c.lastID,
		class:        class,
		title:        opts.Title,
		flags:        opts.Flags &^ (FlagRoot | FlagMaximized),
		focusable:    !opts.NoFocus,
		ext:          opts.Ext,
		styleName:    cmp.Or(opts.Style, "window.style"),
		cursorHidden: true,
	}
	w.pen = w.resolveStyle(w.styleName)
	c.windows[w.id] = w
	return w, nil
}

// place sets the rectangle and recomputes derived geometry for the
// subtree without notifying anyone.
func (w *Window) place(x, y, width, height int) {
	w.rect = Rect{X: x, Y: y, Width: max(0, width), Height: max(0, height)}
	w.updateClient()
	w.updateScreenPos()
}

func (w *Window) updateClient() {
	l, t, r, b := clientInsets(w.flags)
	if w.flags&FlagRoot != 0 && w.ctx.windowBar {
		b++
	}
	w.client = Rect{Width: w.rect.Width, Height: w.rect.Height}.Inset(t, r, b, l)
}

func (w *Window) updateScreenPos() {
	if p := w.Parent(); p != nil {
		w.screenX = p.screenX + p.client.X + w.rect.X
		w.screenY = p.screenY + p.client.Y + w.rect.Y
	} else {
		w.screenX, w.screenY = w.rect.X, w.rect.Y
	}
	for _, id := range w.children {
		if child := w.ctx.windows[id]; child != nil {
			child.updateScreenPos()
		}
	}
}

// ID returns the window handle.
func (w *Window) ID() ID { return w.id }

// Context returns the owning context.
func (w *Window) Context() *Context { return w.ctx }

func (w *Window) Class() *Class   { return w.class }
func (w *Window) Title() string   { return w.title }
func (w *Window) Flags() Flags    { return w.flags }
func (w *Window) Mode() Mode      { return w.mode }
func (w *Window) IsRoot() bool    { return w.flags&FlagRoot != 0 }
func (w *Window) Alive() bool     { return !w.dead }
func (w *Window) Ext() any        { return w.ext }
func (w *Window) Focusable() bool { return w.focusable }

// SetTitle changes the caption text.
func (w *Window) SetTitle(title string) {
	w.title = title
	w.Invalidate()
}

// SetExt replaces the subtype value.
func (w *Window) SetExt(v any) { w.ext = v }

// Maximized reports whether the window fills its parent's client area.
func (w *Window) Maximized() bool { return w.flags&FlagMaximized != 0 }

// Parent returns the parent window, or nil for the root.
func (w *Window) Parent() *Window {
	if w.parent == 0 {
		return nil
	}
	return w.ctx.windows[w.parent]
}

// Children returns the children in creation order, oldest first.
func (w *Window) Children() []*Window {
	out := make([]*Window, 0, len(w.children))
	for i := len(w.children) - 1; i >= 0; i-- {
		if child := w.ctx.windows[w.children[i]]; child != nil {
			out = append(out, child)
		}
	}
	return out
}

// ZOrder returns the children topmost first.
func (w *Window) ZOrder() []*Window {
	out := make([]*Window, 0, len(w.zorder))
	for _, id := range w.zorder {
		if child := w.ctx.windows[id]; child != nil {
			out = append(out, child)
		}
	}
	return out
}

// FocusChild returns the child that holds focus within w, if any.
func (w *Window) FocusChild() *Window {
	if w.focusChild == 0 {
		return nil
	}
	return w.ctx.windows[w.focusChild]
}

// Rect returns the window rectangle relative to the parent's client
// area.
func (w *Window) Rect() Rect { return w.rect }

// ClientRect returns the client rectangle relative to the window
// origin.
func (w *Window) ClientRect() Rect { return w.client }

// Width and Height return the client area size.
func (w *Window) Width() int  { return w.client.Width }
func (w *Window) Height() int { return w.client.Height }

// ScreenRect returns the window rectangle in screen coordinates.
func (w *Window) ScreenRect() Rect {
	return Rect{X: w.screenX, Y: w.screenY, Width: w.rect.Width, Height: w.rect.Height}
}

// ClientScreenRect returns the client rectangle in screen coordinates.
func (w *Window) ClientScreenRect() Rect {
	return w.client.Offset(w.screenX, w.screenY)
}

// ClientToAbs converts client coordinates to window coordinates.
func (w *Window) ClientToAbs(x, y int) (int, int) {
	return w.client.X + x, w.client.Y + y
}

// ClientToScreen converts client coordinates to screen coordinates.
func (w *Window) ClientToScreen(x, y int) (int, int) {
	return w.screenX + w.client.X + x, w.screenY + w.client.Y + y
}

// ScreenToClient converts screen coordinates to client coordinates.
func (w *Window) ScreenToClient(x, y int) (int, int) {
	return x - w.screenX - w.client.X, y - w.screenY - w.client.Y
}

// IsDescendant reports whether candidate lies strictly below base.
func IsDescendant(candidate, base *Window) bool {
	if candidate == nil || base == nil || candidate == base {
		return false
	}
	for p := candidate.Parent(); p != nil; p = p.Parent() {
		if p == base {
			return true
		}
	}
	return false
}

// FindByID searches w's subtree, w included, for id.
func (w *Window) FindByID(id ID) *Window {
	target, ok := w.ctx.Lookup(id)
	if !ok {
		return nil
	}
	if target == w || IsDescendant(target, w) {
		return target
	}
	return nil
}

// Close asks the window to tear itself down. Teardown happens when the
// close message is dispatched.
func (w *Window) Close() {
	_ = w.ctx.Post(w.id, KindClose, CloseRequest{})
}

// Send queues a message for w.
func (w *Window) Send(kind Kind, payload Payload) error {
	return w.ctx.Post(w.id, kind, payload)
}

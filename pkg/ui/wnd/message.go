package wnd

import (
	"fmt"

	"github.com/odvcencio/wndkit/pkg/ui/terminal"
)

// Kind identifies a message type. Each window keeps one handler chain
// per kind.
type Kind int

const (
	KindDisplay Kind = iota
	KindKeydown
	KindClose
	KindEraseBack
	KindUpdateScreen
	KindParentRepos
	KindMouseLDown
	KindMouseMDown
	KindMouseRDown
	KindMouseLDouble
	KindMouseMDouble
	KindMouseRDouble
	// KindInput carries a raw terminal event to the root. The dispatcher
	// resolves it to a keydown, mouse or resize message.
	KindInput
	KindResize
	// KindRedraw asks the root to discard diff state and repaint.
	KindRedraw

	// KindUser is the first kind available to applications.
	KindUser Kind = 64
)

var kindNames = [...]string{
	KindDisplay:      "display",
	KindKeydown:      "keydown",
	KindClose:        "close",
	KindEraseBack:    "erase_back",
	KindUpdateScreen: "update_screen",
	KindParentRepos:  "parent_repos",
	KindMouseLDown:   "mouse_ldown",
	KindMouseMDown:   "mouse_mdown",
	KindMouseRDown:   "mouse_rdown",
	KindMouseLDouble: "mouse_ldouble",
	KindMouseMDouble: "mouse_mdouble",
	KindMouseRDouble: "mouse_rdouble",
	KindInput:        "input",
	KindResize:       "resize",
	KindRedraw:       "redraw",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	if k >= KindUser {
		return fmt.Sprintf("user+%d", int(k-KindUser))
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// IsMouse reports whether k is one of the mouse button kinds.
func (k Kind) IsMouse() bool {
	return k >= KindMouseLDown && k <= KindMouseRDouble
}

// Payload is the message body. The concrete types below are the only
// implementations.
type Payload interface {
	payload()
}

// Plain carries nothing.
type Plain struct{}

// CloseRequest asks the target to tear itself down.
type CloseRequest struct{}

// Text carries an owned string.
type Text struct {
	Value string
}

// Value carries arbitrary application data.
type Value struct {
	Data any
}

// Key is a key press routed to the focus window.
type Key struct {
	terminal.KeyEvent
}

// Mouse is a button press or double click. Coordinates are screen
// cells; use Window.ScreenToClient for the handler's own view.
type Mouse struct {
	ScreenX, ScreenY int
	Button           terminal.MouseButton
	Double           bool
}

// Input is a raw terminal event addressed to the root.
type Input struct {
	Event terminal.Event
}

// Resize reports new terminal dimensions.
type Resize struct {
	Width, Height int
}

func (Plain) payload()        {}
func (CloseRequest) payload() {}
func (Text) payload()         {}
func (Value) payload()        {}
func (Key) payload()          {}
func (Mouse) payload()        {}
func (Input) payload()        {}
func (Resize) payload()       {}

// Message is a queued, targeted event. Target is a weak reference: the
// window may be gone by the time the message is dequeued, in which case
// it is dropped.
type Message struct {
	Target  ID
	Kind    Kind
	Payload Payload
}

func (m *Message) String() string {
	return fmt.Sprintf("%s->%d", m.Kind, m.Target)
}

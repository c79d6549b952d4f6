package wnd

import (
	"slices"

	"github.com/odvcencio/wndkit/pkg/errors"
)

// RetCode is what a handler tells the dispatcher.
type RetCode int

const (
	// Continue passes the message to the next handler in the chain.
	Continue RetCode = iota
	// Stop ends dispatch.
	Stop
	// PassToDefault runs the class default handler and ends dispatch.
	PassToDefault
	// PassToParent marks the message for redispatch on the parent once
	// the chain is exhausted. The class default is skipped.
	PassToParent
)

func (r RetCode) String() string {
	switch r {
	case Continue:
		return "continue"
	case Stop:
		return "stop"
	case PassToDefault:
		return "pass_to_default"
	case PassToParent:
		return "pass_to_parent"
	}
	return "unknown"
}

// HandlerFunc handles one message for one window.
type HandlerFunc func(w *Window, msg *Message) RetCode

// handler is one chain entry. seq identifies it for removal.
type handler struct {
	seq uint64
	fn  HandlerFunc
}

// DestructorFunc runs once while a window is torn down.
type DestructorFunc func(w *Window)

// Class names a window type and supplies its default handlers. Lookups
// that miss walk up to the parent class.
type Class struct {
	Name     string
	Parent   *Class
	defaults map[Kind]HandlerFunc
}

// NewClass creates a class deriving from parent.
func NewClass(name string, parent *Class) *Class {
	return &Class{Name: name, Parent: parent, defaults: make(map[Kind]HandlerFunc)}
}

// SetDefault installs the default handler for kind and returns c.
func (c *Class) SetDefault(kind Kind, fn HandlerFunc) *Class {
	c.defaults[kind] = fn
	return c
}

// Default returns the nearest default handler for kind, or nil.
func (c *Class) Default(kind Kind) HandlerFunc {
	for cls := c; cls != nil; cls = cls.Parent {
		if fn, ok := cls.defaults[kind]; ok {
			return fn
		}
	}
	return nil
}

// Is reports whether c is, or derives from, the class called name.
func (c *Class) Is(name string) bool {
	for cls := c; cls != nil; cls = cls.Parent {
		if cls.Name == name {
			return true
		}
	}
	return false
}

// Scopes lists class names from c up to the base class. Settings are
// resolved in this order.
func (c *Class) Scopes() []string {
	var out []string
	for cls := c; cls != nil; cls = cls.Parent {
		out = append(out, cls.Name)
	}
	return out
}

// On prepends fn to the chain for kind. Handlers registered later run
// first.
func (w *Window) On(kind Kind, fn HandlerFunc) {
	w.push(kind, fn)
}

func (w *Window) push(kind Kind, fn HandlerFunc) uint64 {
	if w.handlers == nil {
		w.handlers = make(map[Kind][]handler)
	}
	w.handlerSeq++
	w.handlers[kind] = append([]handler{{seq: w.handlerSeq, fn: fn}}, w.handlers[kind]...)
	return w.handlerSeq
}

// remove drops the entry pushed with seq, wherever it sits in the chain.
func (w *Window) remove(kind Kind, seq uint64) bool {
	chain := w.handlers[kind]
	i := slices.IndexFunc(chain, func(h handler) bool { return h.seq == seq })
	if i < 0 {
		return false
	}
	w.handlers[kind] = slices.Delete(slices.Clone(chain), i, i+1)
	return true
}

// PopHandler removes the head of the chain for kind. Popping an empty
// chain is a programming error.
func (w *Window) PopHandler(kind Kind) {
	chain := w.handlers[kind]
	if len(chain) == 0 {
		errors.Fatalf(errors.ErrCodeHandlerChain, "pop of empty %s chain on window %d", kind, w.id)
	}
	w.handlers[kind] = chain[1:]
}

// Handlers returns the number of handlers registered for kind.
func (w *Window) Handlers(kind Kind) int {
	return len(w.handlers[kind])
}

// OnDestroy prepends fn to the destructor chain.
func (w *Window) OnDestroy(fn DestructorFunc) {
	w.destructors = append([]DestructorFunc{fn}, w.destructors...)
}

// OnKey registers a keydown handler that receives the key directly.
func (w *Window) OnKey(fn func(w *Window, key Key) RetCode) {
	w.On(KindKeydown, func(w *Window, msg *Message) RetCode {
		k, ok := msg.Payload.(Key)
		if !ok {
			return Continue
		}
		return fn(w, k)
	})
}

// OnMouse registers fn for a mouse kind. x and y are client coordinates.
func (w *Window) OnMouse(kind Kind, fn func(w *Window, x, y int, m Mouse) RetCode) {
	w.On(kind, func(w *Window, msg *Message) RetCode {
		m, ok := msg.Payload.(Mouse)
		if !ok {
			return Continue
		}
		x, y := w.ScreenToClient(m.ScreenX, m.ScreenY)
		return fn(w, x, y, m)
	})
}

// OnDisplay registers a display handler.
func (w *Window) OnDisplay(fn func(w *Window)) {
	w.On(KindDisplay, func(w *Window, _ *Message) RetCode {
		fn(w)
		return Continue
	})
}

// OnClose registers a handler run when the window receives a close
// request, before teardown. Returning Stop vetoes the close.
func (w *Window) OnClose(fn func(w *Window) RetCode) {
	w.On(KindClose, func(w *Window, _ *Message) RetCode {
		return fn(w)
	})
}

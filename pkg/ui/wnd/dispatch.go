package wnd

import (
	"context"
	"slices"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// dispatch delivers one dequeued message. Messages whose target is gone
// are dropped.
func (c *Context) dispatch(msg *Message) {
	w, ok := c.windows[msg.Target]
	if !ok || w.dead {
		c.metrics.dropped.Inc()
		c.log.Debug("dropped message for dead window", "window_id", uint32(msg.Target), "kind", msg.Kind.String())
		return
	}

	_, span := c.tracer.Start(context.Background(), "wnd.dispatch",
		trace.WithAttributes(
			attribute.String("wnd.kind", msg.Kind.String()),
			attribute.Int64("wnd.window_id", int64(msg.Target)),
			attribute.String("wnd.class", w.class.Name),
		))
	start := c.clock.Now()
	defer func() {
		c.metrics.observeDispatch(msg.Kind, c.clock.Now().Sub(start))
		span.End()
	}()

	switch {
	case msg.Kind == KindInput && w == c.root:
		c.routeInput(msg)
	case msg.Kind == KindRedraw:
		c.Redisplay()
	default:
		c.deliver(w, msg)
	}
}

// deliver runs msg through w's chain and default, bubbling to the
// parent until something stops it or the root is passed.
func (c *Context) deliver(w *Window, msg *Message) {
	for w != nil {
		bubble, stopped := c.runChain(w, msg)
		if stopped || w.dead {
			return
		}
		if !bubble {
			return
		}
		w = w.Parent()
	}
}

// runChain walks w's handlers for msg.Kind and then, unless a handler
// asked for the parent, the class default. It reports whether the
// message should continue to the parent and whether dispatch ended.
func (c *Context) runChain(w *Window, msg *Message) (bubble, stopped bool) {
	// Handlers may push or pop handlers while running.
	chain := slices.Clone(w.handlers[msg.Kind])
	toParent := false
	for _, h := range chain {
		switch h.fn(w, msg) {
		case Stop:
			return false, true
		case PassToDefault:
			c.runDefault(w, msg)
			return false, true
		case PassToParent:
			toParent = true
		}
		if w.dead {
			return false, true
		}
	}
	if !toParent {
		switch c.runDefault(w, msg) {
		case Stop, PassToDefault:
			return false, true
		}
	}
	return true, false
}

func (c *Context) runDefault(w *Window, msg *Message) RetCode {
	fn := w.class.Default(msg.Kind)
	if fn == nil {
		return Continue
	}
	return fn(w, msg)
}

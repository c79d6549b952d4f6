package wnd

import (
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/odvcencio/wndkit/pkg/clock"
	"github.com/odvcencio/wndkit/pkg/errors"
	"github.com/odvcencio/wndkit/pkg/logging"
	"github.com/odvcencio/wndkit/pkg/settings"
	"github.com/odvcencio/wndkit/pkg/ui/backend"
	"github.com/odvcencio/wndkit/pkg/ui/msgq"
	"github.com/odvcencio/wndkit/pkg/ui/terminal"
)

const (
	// StateDepth bounds the pen state stack.
	StateDepth = 32

	defaultMaxWindows  = 1024
	defaultDoubleClick = 400 * time.Millisecond
)

// Config configures a Context. Only Backend is required.
type Config struct {
	Backend  backend.Backend
	Settings *settings.Store
	Logger   *logging.Logger
	Metrics  *Metrics
	Tracer   trace.Tracer
	Clock    clock.Clock
	Keymap   *Keymap

	// QueueCapacity bounds the message queue; zero means unbounded.
	QueueCapacity int
	MaxWindows    int
	DoubleClick   time.Duration
	// WindowBar reserves the root's last row for the window list.
	WindowBar bool
}

// Context is one running window system. It owns the window arena, the
// message queue and the display buffer. Everything except Post, Quit
// and AddProducer belongs to the dispatcher goroutine.
type Context struct {
	backend  backend.Backend
	settings *settings.Store
	log      *logging.Logger
	metrics  *Metrics
	tracer   trace.Tracer
	clock    clock.Clock
	keymap   Keymap

	windowBar  bool
	maxWindows int

	windows map[ID]*Window
	lastID  ID
	root    *Window
	focus   ID

	states  stateStack
	queue   *msgq.Queue[*Message]
	display *Display
	clicks  terminal.ClickTracker
	bar     []barEntry

	updatePending bool
	dispatching   bool

	quit     chan struct{}
	quitOnce sync.Once

	mu        sync.Mutex
	producers []Producer
}

// NewContext builds a context and its root window sized to the
// backend. The backend must already be initialized; Run finalizes it.
func NewContext(cfg Config) (*Context, error) {
	if cfg.Backend == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "backend is required")
	}
	c := &Context{
		backend:    cfg.Backend,
		settings:   cfg.Settings,
		log:        cfg.Logger,
		metrics:    cfg.Metrics,
		tracer:     cfg.Tracer,
		clock:      cfg.Clock,
		windowBar:  cfg.WindowBar,
		maxWindows: cfg.MaxWindows,
		windows:    make(map[ID]*Window),
		queue:      msgq.New[*Message](cfg.QueueCapacity),
		quit:       make(chan struct{}),
	}
	if c.settings == nil {
		c.settings = settings.New(nil)
	}
	if c.log == nil {
		c.log = logging.Discard()
	}
	c.log = c.log.WithCategory(logging.CategoryDispatch)
	if c.metrics == nil {
		c.metrics = NewMetrics(nil)
	}
	if c.tracer == nil {
		c.tracer = otel.Tracer("github.com/odvcencio/wndkit/pkg/ui/wnd")
	}
	if c.clock == nil {
		c.clock = clock.Real()
	}
	if cfg.Keymap != nil {
		c.keymap = *cfg.Keymap
	} else {
		c.keymap = DefaultKeymap()
	}
	if c.maxWindows <= 0 {
		c.maxWindows = defaultMaxWindows
	}
	c.clicks.Interval = cfg.DoubleClick
	if c.clicks.Interval <= 0 {
		c.clicks.Interval = defaultDoubleClick
	}

	width, height := c.backend.Size()
	c.display = newDisplay(width, height)

	root, err := c.allocate(Options{Title: "root", Class: RootClass, Style: "root.style"})
	if err != nil {
		return nil, err
	}
	root.flags = FlagRoot
	root.place(0, 0, width, height)
	c.root = root
	c.focus = root.id
	c.metrics.windowsOpen(len(c.windows))
	root.Invalidate()
	return c, nil
}

// Root returns the root window.
func (c *Context) Root() *Window { return c.root }

// Settings returns the settings store windows resolve styles from.
func (c *Context) Settings() *settings.Store { return c.settings }

// Logger returns the context logger.
func (c *Context) Logger() *logging.Logger { return c.log }

// Metrics returns the context metrics.
func (c *Context) Metrics() *Metrics { return c.metrics }

// Clock returns the context clock.
func (c *Context) Clock() clock.Clock { return c.clock }

// Display returns the shared display buffer.
func (c *Context) Display() *Display { return c.display }

// Focus returns the focus window. It is nil only after the root closed.
func (c *Context) Focus() *Window {
	w, _ := c.Lookup(c.focus)
	return w
}

// Windows returns the number of live windows, root included.
func (c *Context) Windows() int { return len(c.windows) }

// Lookup resolves a window handle.
func (c *Context) Lookup(id ID) (*Window, bool) {
	w, ok := c.windows[id]
	return w, ok
}

// MustLookup resolves a handle that must be live.
func (c *Context) MustLookup(id ID) *Window {
	w, ok := c.windows[id]
	if !ok {
		errors.Fatalf(errors.ErrCodeNoSuchWindow, "window %d is not allocated", id)
	}
	return w
}

// Post queues a message. It is safe to call from any goroutine.
func (c *Context) Post(target ID, kind Kind, payload Payload) error {
	if payload == nil {
		payload = Plain{}
	}
	if err := c.queue.Enqueue(&Message{Target: target, Kind: kind, Payload: payload}); err != nil {
		return err
	}
	c.metrics.queueDepth(c.queue.Len())
	return nil
}

// Pending returns the number of queued messages.
func (c *Context) Pending() int { return c.queue.Len() }

// ProcessPending dispatches queued messages until the queue is empty
// and returns how many were handled. Calls from inside a handler do
// nothing.
func (c *Context) ProcessPending() int {
	if c.dispatching {
		return 0
	}
	c.dispatching = true
	defer func() { c.dispatching = false }()

	n := 0
	for {
		msg, ok := c.queue.Dequeue()
		if !ok {
			break
		}
		c.dispatch(msg)
		n++
	}
	c.metrics.queueDepth(c.queue.Len())
	return n
}

// Purge removes queued messages addressed to w and, when
// withDescendants is set, to any window below it.
func (c *Context) Purge(w *Window, withDescendants bool) int {
	n := c.queue.Remove(func(m *Message) bool {
		if m.Target == w.id {
			return true
		}
		if !withDescendants {
			return false
		}
		target, ok := c.windows[m.Target]
		return ok && IsDescendant(target, w)
	})
	if n > 0 {
		w.Logger().Debug("purged messages", "count", n)
	}
	return n
}

// Quit stops Run. It is safe to call from any goroutine.
func (c *Context) Quit() {
	c.quitOnce.Do(func() { close(c.quit) })
}

// AddProducer registers a goroutine Run starts alongside the
// dispatcher. Producers must only talk to the context through Post.
func (c *Context) AddProducer(p Producer) {
	c.mu.Lock()
	c.producers = append(c.producers, p)
	c.mu.Unlock()
}

package wnd

import (
	"context"
	stderrors "errors"

	"golang.org/x/sync/errgroup"

	"github.com/odvcencio/wndkit/pkg/ui/terminal"
)

// Producer runs on its own goroutine while Run is active. It must only
// touch the context through Post and should return when ctx is done.
type Producer func(ctx context.Context, c *Context) error

var errQuit = stderrors.New("wnd: quit")

// Run pumps input, runs the producers and dispatches messages until
// ctx is cancelled, Quit is called or the root window closes. The
// backend is finalized on return.
func (c *Context) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		for {
			ev := c.backend.PollEvent()
			if ev == nil {
				return nil
			}
			if gctx.Err() != nil {
				return nil
			}
			if err := c.Post(c.root.id, KindInput, Input{Event: ev}); err != nil {
				c.log.Warn("input dropped", "error", err)
			}
		}
	})

	c.mu.Lock()
	producers := append([]Producer(nil), c.producers...)
	c.mu.Unlock()
	for _, p := range producers {
		g.Go(func() error { return p(gctx, c) })
	}

	g.Go(func() error {
		<-gctx.Done()
		c.queue.Close()
		c.backend.Fini()
		return nil
	})

	g.Go(func() error {
		c.ProcessPending()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-c.quit:
				return errQuit
			case <-c.queue.Ready():
				c.ProcessPending()
			}
		}
	})

	err := g.Wait()
	if stderrors.Is(err, errQuit) {
		return nil
	}
	return err
}

// PostKey queues a key press as if it came from the terminal.
func (c *Context) PostKey(ev terminal.KeyEvent) error {
	return c.Post(c.root.id, KindInput, Input{Event: ev})
}

// PostMouse queues a mouse event as if it came from the terminal.
func (c *Context) PostMouse(ev terminal.MouseEvent) error {
	return c.Post(c.root.id, KindInput, Input{Event: ev})
}

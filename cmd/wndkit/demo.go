package main

import (
	"context"
	"fmt"
	"time"

	"github.com/odvcencio/wndkit/pkg/ui/widgets"
	"github.com/odvcencio/wndkit/pkg/ui/wnd"
)

// kindTick is posted to the clock window once a second.
const kindTick = wnd.KindUser

// buildDemo creates the demo windows under the root.
func buildDemo(c *wnd.Context, runID string) error {
	clockWnd, err := newClockWindow(c)
	if err != nil {
		return err
	}
	c.AddProducer(tickEvery(time.Second, clockWnd.ID()))

	form, err := newForm(c, runID)
	if err != nil {
		return err
	}
	form.FocusFirst()
	return nil
}

func newClockWindow(c *wnd.Context) (*wnd.Window, error) {
	w, err := wnd.New(c.Root(), wnd.Options{
		Title:  "Clock",
		X:      2,
		Y:      1,
		Width:  24,
		Height: 3,
		Flags:  wnd.FlagFullBorder,
	})
	if err != nil {
		return nil, err
	}
	w.On(kindTick, func(w *wnd.Window, _ *wnd.Message) wnd.RetCode {
		w.Invalidate()
		return wnd.Stop
	})
	w.OnDisplay(func(w *wnd.Window) {
		w.Move(0, 0)
		w.Print(w.Context().Clock().Now().Format("15:04:05 Mon Jan 2"))
	})
	return w, nil
}

// tickEvery posts kindTick to target until the run ends.
func tickEvery(d time.Duration, target wnd.ID) wnd.Producer {
	return func(ctx context.Context, c *wnd.Context) error {
		t := c.Clock().NewTicker(d)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-t.C:
				if err := c.Post(target, kindTick, nil); err != nil {
					return nil
				}
			}
		}
	}
}

func newForm(c *wnd.Context, runID string) (*widgets.Dialog, error) {
	d, err := widgets.NewDialog(c.Root(), wnd.Options{
		Title: "Profile",
		Flags: wnd.FlagCloseBox | wnd.FlagMaxBox,
	})
	if err != nil {
		return nil, err
	}

	fields := []struct{ id, label, value string }{
		{"name", "Name", ""},
		{"email", "Email", ""},
		{"notes", "Notes", "press Tab to move, Esc to close"},
	}
	for _, f := range fields {
		if _, err := widgets.NewLabel(d.Window, "", f.label+":"); err != nil {
			return nil, err
		}
		if _, err := widgets.NewEditBox(d.Window, f.id, f.value, 32); err != nil {
			return nil, err
		}
	}
	status, err := widgets.NewLabel(d.Window, "status", "run "+runID)
	if err != nil {
		return nil, err
	}
	for _, f := range fields {
		it, ok := d.Find(f.id)
		if !ok {
			continue
		}
		eb := it.(*widgets.EditBox)
		eb.OnChange(func(text string) {
			status.SetText(fmt.Sprintf("%s: %d chars", f.id, len([]rune(text))))
		})
	}
	d.Fit()
	return d, nil
}

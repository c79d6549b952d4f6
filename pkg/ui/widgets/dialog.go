package widgets

import (
	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/wndkit/pkg/ui/terminal"
	"github.com/odvcencio/wndkit/pkg/ui/wnd"
)

// DialogClass handles focus cycling and Escape for dialogs.
var DialogClass = wnd.NewClass("dialog", wnd.BaseClass).
	SetDefault(wnd.KindKeydown, dialogKeydown)

// Dialog is a bordered container of dialog items.
type Dialog struct {
	*wnd.Window

	items map[string]Item
}

// NewDialog creates a dialog under parent. Border and caption are
// always on; Class, Style and Ext in opts are ignored.
func NewDialog(parent *wnd.Window, opts wnd.Options) (*Dialog, error) {
	d := &Dialog{items: make(map[string]Item)}
	opts.Flags |= wnd.FlagBorder | wnd.FlagCaption
	opts.Class = DialogClass
	opts.Style = "dialog.style"
	opts.Ext = d
	w, err := wnd.New(parent, opts)
	if err != nil {
		return nil, err
	}
	d.Window = w
	return d, nil
}

func (d *Dialog) register(id string, it Item) {
	d.items[id] = it
}

func (d *Dialog) unregister(id string, it Item) {
	if d.items[id] == it {
		delete(d.items, id)
	}
}

// Find returns the item registered under id anywhere in the dialog.
func (d *Dialog) Find(id string) (Item, bool) {
	it, ok := d.items[id]
	return it, ok
}

// Items returns the direct child items in creation order.
func (d *Dialog) Items() []Item {
	var out []Item
	for _, c := range d.Children() {
		if it, ok := c.Ext().(Item); ok {
			out = append(out, it)
		}
	}
	return out
}

// Arrange stacks the direct child items top to bottom. Items asking
// for no width, or more than fits, get the full client width.
func (d *Dialog) Arrange() {
	y := 0
	cw := d.Width()
	for _, it := range d.Items() {
		di := it.Item()
		w, h := di.DesiredSize()
		if w <= 0 || w > cw {
			w = cw
		}
		h = max(h, 1)
		di.SetPos(wnd.NewRect(0, y, w, h))
		y += h
	}
	d.Invalidate()
}

// Fit sizes the dialog around its items, centers it in the parent and
// arranges the items.
func (d *Dialog) Fit() {
	width, height := runewidth.StringWidth(d.Title())+4, 0
	for _, it := range d.Items() {
		w, h := it.Item().DesiredSize()
		width = max(width, w)
		height += max(h, 1)
	}
	// One border cell on each side.
	width, height = width+2, height+2
	if p := d.Parent(); p != nil {
		pr := p.ClientRect()
		width, height = min(width, pr.Width), min(height, pr.Height)
		d.Repos((pr.Width-width)/2, (pr.Height-height)/2, width, height)
	} else {
		d.SetSize(width, height)
	}
	d.Arrange()
}

// FocusFirst focuses the first focusable item.
func (d *Dialog) FocusFirst() {
	for _, it := range d.Items() {
		if di := it.Item(); di.Focusable() {
			di.SetFocus()
			return
		}
	}
}

func dialogKeydown(w *wnd.Window, msg *wnd.Message) wnd.RetCode {
	k, ok := msg.Payload.(wnd.Key)
	if !ok || k.Alt || k.Ctrl {
		return wnd.Continue
	}
	switch k.Key {
	case terminal.KeyTab:
		w.Context().NextFocus(w)
	case terminal.KeyBacktab:
		w.Context().PrevFocus(w)
	case terminal.KeyEscape:
		w.Close()
	default:
		return wnd.Continue
	}
	return wnd.Stop
}

// Package widgets provides dialog items built on the wnd window tree.
package widgets

import (
	"github.com/odvcencio/wndkit/pkg/ui/wnd"
)

// ItemClass is the class every dialog item derives from.
var ItemClass = wnd.NewClass("dlgitem", wnd.BaseClass)

// Item is implemented by dialog items and their subtypes. A window's
// Ext holds the most derived value, so lookups can type-assert to the
// concrete widget.
type Item interface {
	Item() *DialogItem
}

// Options configures a dialog item.
type Options struct {
	Title string
	// ID is the lookup key used by Dialog.Find. Empty means unnamed.
	ID string
	// Border draws a frame with the title in the caption row.
	Border    bool
	Focusable bool
	// Class defaults to ItemClass.
	Class *wnd.Class
	Style string
	// Ext is stored on the window; it defaults to the DialogItem.
	Ext Item

	// GetSize reports the size the item would like. Nil means 0x0.
	GetSize func() (width, height int)
	// SetPos runs after the item was repositioned.
	SetPos func(r wnd.Rect)
}

// DialogItem is a window that takes part in dialog layout.
type DialogItem struct {
	*wnd.Window

	id      string
	dialog  *Dialog
	getSize func() (int, int)
	setPos  func(wnd.Rect)
}

// NewDialogItem creates an item under parent. The nearest enclosing
// dialog is resolved here once, through the parent.
func NewDialogItem(parent *wnd.Window, opts Options) (*DialogItem, error) {
	di := &DialogItem{
		id:      opts.ID,
		getSize: opts.GetSize,
		setPos:  opts.SetPos,
	}
	var ext Item = di
	if opts.Ext != nil {
		ext = opts.Ext
	}
	class := opts.Class
	if class == nil {
		class = ItemClass
	}
	var flags wnd.Flags
	if opts.Border {
		flags = wnd.FlagBorder | wnd.FlagCaption
	}
	w, err := wnd.New(parent, wnd.Options{
		Title:   opts.Title,
		Flags:   flags,
		Class:   class,
		NoFocus: !opts.Focusable,
		Style:   opts.Style,
		Ext:     ext,
	})
	if err != nil {
		return nil, err
	}
	di.Window = w
	di.dialog = enclosingDialog(parent)

	w.On(wnd.KindKeydown, func(*wnd.Window, *wnd.Message) wnd.RetCode {
		if di.Deferred() {
			return wnd.PassToParent
		}
		return wnd.Continue
	})
	w.OnDestroy(func(*wnd.Window) {
		if di.dialog != nil && di.id != "" {
			di.dialog.unregister(di.id, ext)
		}
		di.dialog = nil
	})
	if di.dialog != nil && di.id != "" {
		di.dialog.register(di.id, ext)
	}
	return di, nil
}

func enclosingDialog(parent *wnd.Window) *Dialog {
	switch ext := parent.Ext().(type) {
	case *Dialog:
		return ext
	case Item:
		return ext.Item().dialog
	}
	return nil
}

// Item returns d.
func (d *DialogItem) Item() *DialogItem { return d }

// ItemID returns the lookup key.
func (d *DialogItem) ItemID() string { return d.id }

// Dialog returns the enclosing dialog, or nil.
func (d *DialogItem) Dialog() *Dialog { return d.dialog }

// DesiredSize asks the item how large it wants to be.
func (d *DialogItem) DesiredSize() (width, height int) {
	if d.getSize == nil {
		return 0, 0
	}
	return d.getSize()
}

// SetPos repositions the item inside its parent's client area.
func (d *DialogItem) SetPos(r wnd.Rect) {
	d.Repos(r.X, r.Y, r.Width, r.Height)
	if d.setPos != nil {
		d.setPos(r)
	}
}

// Deferred reports whether keys belong to the parent because it is
// being moved or resized from the keyboard.
func (d *DialogItem) Deferred() bool {
	p := d.Parent()
	return p != nil && p.Mode() != wnd.ModeNormal
}

package widgets

import (
	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/wndkit/pkg/ui/wnd"
)

// LabelClass is the class of static text items.
var LabelClass = wnd.NewClass("label", ItemClass)

// Label is a single line of static text that never takes the focus.
type Label struct {
	*DialogItem

	text string
}

// NewLabel creates a label under parent.
func NewLabel(parent *wnd.Window, id, text string) (*Label, error) {
	l := &Label{text: text}
	di, err := NewDialogItem(parent, Options{
		ID:      id,
		Class:   LabelClass,
		Style:   "label.style",
		Ext:     l,
		GetSize: func() (int, int) { return runewidth.StringWidth(l.text), 1 },
	})
	if err != nil {
		return nil, err
	}
	l.DialogItem = di
	di.SetSize(l.DesiredSize())
	di.OnDisplay(func(w *wnd.Window) {
		w.Move(0, 0)
		w.Print(runewidth.Truncate(l.text, w.Width(), ""))
	})
	return l, nil
}

// Text returns the label text.
func (l *Label) Text() string { return l.text }

// SetText replaces the label text. A placed label is resized to the
// new text, up to the right edge of its parent's client area.
func (l *Label) SetText(s string) {
	l.text = s
	if p := l.Parent(); p != nil {
		r := l.Rect()
		w := max(0, min(runewidth.StringWidth(s), p.Width()-r.X))
		if w != r.Width {
			l.SetPos(wnd.NewRect(r.X, r.Y, w, r.Height))
		}
	}
	l.Invalidate()
}

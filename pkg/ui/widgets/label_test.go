package widgets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/wndkit/pkg/ui/wnd"
)

func TestLabel_NeverTakesFocus(t *testing.T) {
	e := newEnv(t, 40, 6)
	d := e.dialog(t, "L", 0, 0, 20, 4)
	eb := e.editbox(t, d.Window, "", "", 5)
	l, err := NewLabel(d.Window, "", "Name:")
	require.NoError(t, err)

	assert.False(t, l.Focusable())
	assert.True(t, eb.HasFocus())
}

func TestLabel_SetTextResizesWithinParent(t *testing.T) {
	e := newEnv(t, 40, 6)
	d := e.dialog(t, "L", 0, 0, 20, 4)
	l, err := NewLabel(d.Window, "", "ab")
	require.NoError(t, err)
	d.Arrange()
	require.Equal(t, wnd.NewRect(0, 0, 2, 1), l.Rect())

	l.SetText("a much longer label text")
	e.c.ProcessPending()

	assert.Equal(t, wnd.NewRect(0, 0, 18, 1), l.Rect())
	assert.Equal(t, "│a much longer labe│", e.be.CaptureRegion(0, 1, 20, 1))
}

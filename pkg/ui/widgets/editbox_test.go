package widgets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/wndkit/pkg/ui/terminal"
)

func TestEditBox_AddChAtEndKeepsScroll(t *testing.T) {
	e := newEnv(t, 80, 24)
	eb := e.editbox(t, e.c.Root(), "", "hello", 10)
	require.Equal(t, 5, eb.CursorPos())
	require.Equal(t, 0, eb.Scrolled())

	eb.AddCh('!')

	assert.Equal(t, "hello!", eb.Text())
	assert.Equal(t, 6, eb.CursorPos())
	assert.Equal(t, 0, eb.Scrolled())
}

func TestEditBox_AddChThenDelChRestoresText(t *testing.T) {
	e := newEnv(t, 80, 24)
	const text = "abcdef"
	eb := e.editbox(t, e.c.Root(), "", text, 4)

	for pos := 0; pos <= len(text); pos++ {
		for _, ch := range []rune{'x', ' ', 'é', '世'} {
			eb.Move(pos)
			eb.AddCh(ch)
			require.Equal(t, pos+1, eb.CursorPos())

			eb.DelCh(eb.CursorPos() - 1)
			require.Equal(t, text, eb.Text(), "pos %d ch %q", pos, ch)
			require.Equal(t, pos, eb.CursorPos())
		}
	}
}

func TestEditBox_DelChOutOfRangeIsIgnored(t *testing.T) {
	e := newEnv(t, 80, 24)
	eb := e.editbox(t, e.c.Root(), "", "ab", 4)
	changes := 0
	eb.OnChange(func(string) { changes++ })

	eb.DelCh(-1)
	eb.DelCh(2)

	assert.Equal(t, "ab", eb.Text())
	assert.Equal(t, 0, changes)
}

func TestEditBox_ScrollFollowsCursor(t *testing.T) {
	e := newEnv(t, 80, 24)
	eb := e.editbox(t, e.c.Root(), "", "", 5)
	require.True(t, eb.HasFocus())

	e.typeText("abcdefg")
	assert.Equal(t, 7, eb.CursorPos())
	assert.Equal(t, 3, eb.Scrolled())

	e.key(keyOf(terminal.KeyHome))
	assert.Equal(t, 0, eb.CursorPos())
	assert.Equal(t, 0, eb.Scrolled())

	e.key(keyOf(terminal.KeyEnd))
	assert.Equal(t, 3, eb.Scrolled())

	e.key(keyOf(terminal.KeyBackspace))
	assert.Equal(t, "abcdef", eb.Text())
	assert.Equal(t, 2, eb.Scrolled())

	e.keys(keyOf(terminal.KeyBackspace), keyOf(terminal.KeyBackspace))
	assert.Equal(t, "abcd", eb.Text())
	assert.Equal(t, 0, eb.Scrolled())
}

func TestEditBox_WideRunesScrollByColumns(t *testing.T) {
	e := newEnv(t, 80, 24)
	eb := e.editbox(t, e.c.Root(), "", "", 5)

	e.typeText("世界世")
	// Six columns of text do not fit five; dropping the first rune leaves
	// room for the cursor cell.
	assert.Equal(t, 3, eb.CursorPos())
	assert.Equal(t, 1, eb.Scrolled())
}

func TestEditBox_EditingKeys(t *testing.T) {
	e := newEnv(t, 80, 24)
	eb := e.editbox(t, e.c.Root(), "", "hello", 10)
	var seen []string
	eb.OnChange(func(s string) { seen = append(seen, s) })

	e.keys(keyOf(terminal.KeyLeft), keyOf(terminal.KeyLeft))
	assert.Equal(t, 3, eb.CursorPos())

	e.key(keyOf(terminal.KeyDelete))
	assert.Equal(t, "helo", eb.Text())
	assert.Equal(t, 3, eb.CursorPos())

	e.key(keyOf(terminal.KeyBackspace))
	assert.Equal(t, "heo", eb.Text())
	assert.Equal(t, 2, eb.CursorPos())

	e.key(keyOf(terminal.KeyRight))
	e.typeText("!")
	assert.Equal(t, "heo!", eb.Text())

	e.key(keyOf(terminal.KeyCtrlU))
	assert.Equal(t, "", eb.Text())
	assert.Equal(t, 0, eb.CursorPos())

	assert.Equal(t, []string{"helo", "heo", "heo!", ""}, seen)
}

func TestEditBox_CtrlUAsModifiedRune(t *testing.T) {
	e := newEnv(t, 80, 24)
	eb := e.editbox(t, e.c.Root(), "", "text", 10)

	e.key(terminal.KeyEvent{Key: terminal.KeyRune, Rune: 'u', Ctrl: true})

	assert.Equal(t, "", eb.Text())
}

func TestEditBox_IgnoresModifiedRunes(t *testing.T) {
	e := newEnv(t, 80, 24)
	eb := e.editbox(t, e.c.Root(), "", "", 10)

	e.key(terminal.KeyEvent{Key: terminal.KeyRune, Rune: 'x', Alt: true})
	e.key(keyOf(terminal.KeyF5))

	assert.Equal(t, "", eb.Text())
	assert.True(t, eb.Alive())
}

func TestEditBox_ClickMovesCursor(t *testing.T) {
	e := newEnv(t, 80, 24)
	d := e.dialog(t, "Form", 0, 0, 20, 5)
	first := e.editbox(t, d.Window, "first", "hello world", 10)
	second := e.editbox(t, d.Window, "second", "", 10)
	d.Arrange()
	e.c.ProcessPending()
	require.True(t, second.HasFocus())
	require.Equal(t, 2, first.Scrolled())

	// Client column 3 of the first box, which starts at screen (1,1).
	e.click(4, 1)

	assert.True(t, first.HasFocus())
	assert.Equal(t, 5, first.CursorPos())

	// Clicks past the text land at the end.
	e.click(10, 2)
	assert.True(t, second.HasFocus())
	assert.Equal(t, 0, second.CursorPos())
}

func TestEditBox_DisplayAndCursor(t *testing.T) {
	e := newEnv(t, 24, 4)
	d := e.dialog(t, "Ed", 0, 0, 16, 3)
	eb := e.editbox(t, d.Window, "name", "hello", 10)
	d.Arrange()
	e.c.ProcessPending()

	assert.Equal(t, "│hello         │", e.be.CaptureRegion(0, 1, 16, 1))

	x, y := eb.Cursor()
	assert.Equal(t, 5, x)
	assert.Equal(t, 0, y)

	e.key(keyOf(terminal.KeyHome))
	x, _ = eb.Cursor()
	assert.Equal(t, 0, x)
}

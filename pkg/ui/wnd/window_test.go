package wnd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/wndkit/pkg/errors"
)

func TestNew_ClientRectDeduction(t *testing.T) {
	tests := []struct {
		name  string
		flags Flags
		want  Rect
	}{
		{"none", 0, Rect{X: 0, Y: 0, Width: 30, Height: 10}},
		{"border", FlagBorder, Rect{X: 1, Y: 1, Width: 28, Height: 8}},
		{"caption", FlagCaption, Rect{X: 0, Y: 1, Width: 30, Height: 9}},
		{"border and caption", FlagBorder | FlagCaption, Rect{X: 1, Y: 1, Width: 28, Height: 8}},
		{"full", FlagFullBorder, Rect{X: 1, Y: 1, Width: 28, Height: 8}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, 80, 24)
			w := env.newWindow(t, env.c.Root(), Options{X: 5, Y: 5, Width: 30, Height: 10, Flags: tt.flags})
			assert.Equal(t, tt.want, w.ClientRect())
		})
	}
}

func TestNew_DialogScenario(t *testing.T) {
	env := newTestEnv(t, 80, 24)
	root := env.c.Root()
	assert.Equal(t, Rect{Width: 80, Height: 24}, root.Rect())

	dlg := env.newWindow(t, root, Options{X: 5, Y: 5, Width: 30, Height: 10, Flags: FlagBorder | FlagCaption})
	assert.Equal(t, 28, dlg.Width())
	assert.Equal(t, 8, dlg.Height())
	assert.Equal(t, Rect{X: 6, Y: 6, Width: 28, Height: 8}, dlg.ClientScreenRect())
}

func TestNew_ClampsTinySizes(t *testing.T) {
	env := newTestEnv(t, 80, 24)
	w := env.newWindow(t, env.c.Root(), Options{Width: 1, Height: 1, Flags: FlagBorder})
	assert.Equal(t, 0, w.Width())
	assert.Equal(t, 0, w.Height())
}

func TestNew_RootWithWindowBar(t *testing.T) {
	env := newTestEnv(t, 80, 24, func(c *Config) { c.WindowBar = true })
	assert.Equal(t, Rect{Width: 80, Height: 23}, env.c.Root().ClientRect())
}

func TestNew_InvalidParentPanics(t *testing.T) {
	env := newTestEnv(t, 80, 24)
	requireFatal(t, errors.ErrCodeInvalidParent, func() {
		_, _ = New(nil, Options{})
	})

	w := env.newWindow(t, env.c.Root(), Options{Width: 5, Height: 5})
	w.Close()
	env.c.ProcessPending()
	requireFatal(t, errors.ErrCodeInvalidParent, func() {
		_, _ = New(w, Options{})
	})
}

func TestNew_WindowLimit(t *testing.T) {
	env := newTestEnv(t, 80, 24, func(c *Config) { c.MaxWindows = 2 })
	root := env.c.Root()
	env.newWindow(t, root, Options{Width: 5, Height: 5})

	w, err := New(root, Options{Title: "extra", Width: 5, Height: 5})
	require.Error(t, err)
	assert.Nil(t, w)
	assert.True(t, errors.IsCode(err, errors.ErrCodeUnavailable))
	assert.Len(t, root.Children(), 1)
	assert.Equal(t, 2, env.c.Windows())
}

func TestTree_ChildrenAndZOrder(t *testing.T) {
	env := newTestEnv(t, 80, 24)
	root := env.c.Root()
	a := env.newWindow(t, root, Options{Title: "a", Width: 5, Height: 5})
	b := env.newWindow(t, root, Options{Title: "b", Width: 5, Height: 5})
	c := env.newWindow(t, root, Options{Title: "c", Width: 5, Height: 5})

	assert.Equal(t, []*Window{a, b, c}, root.Children())
	assert.Equal(t, []*Window{c, b, a}, root.ZOrder())
	assert.Equal(t, root, a.Parent())
	assert.Nil(t, root.Parent())
	assert.True(t, root.IsRoot())
	assert.False(t, a.IsRoot())

	b.Close()
	env.c.ProcessPending()
	assert.Equal(t, []*Window{a, c}, root.Children())
	assert.ElementsMatch(t, root.Children(), root.ZOrder())
}

func TestTree_CoordinateTransforms(t *testing.T) {
	env := newTestEnv(t, 80, 24)
	outer := env.newWindow(t, env.c.Root(), Options{X: 10, Y: 4, Width: 40, Height: 12, Flags: FlagBorder | FlagCaption})
	inner := env.newWindow(t, outer, Options{X: 2, Y: 3, Width: 10, Height: 4})

	assert.Equal(t, Rect{X: 13, Y: 8, Width: 10, Height: 4}, inner.ScreenRect())
	x, y := inner.ClientToScreen(1, 1)
	assert.Equal(t, [2]int{14, 9}, [2]int{x, y})
	x, y = outer.ClientToAbs(0, 0)
	assert.Equal(t, [2]int{1, 1}, [2]int{x, y})
	x, y = inner.ScreenToClient(14, 9)
	assert.Equal(t, [2]int{1, 1}, [2]int{x, y})

	outer.Repos(20, 2, 40, 12)
	assert.Equal(t, Rect{X: 23, Y: 6, Width: 10, Height: 4}, inner.ScreenRect())
}

func TestTree_IsDescendantAndFind(t *testing.T) {
	env := newTestEnv(t, 80, 24)
	root := env.c.Root()
	a := env.newWindow(t, root, Options{Width: 20, Height: 10})
	b := env.newWindow(t, a, Options{Width: 5, Height: 5})
	other := env.newWindow(t, root, Options{Width: 5, Height: 5})

	assert.True(t, IsDescendant(b, root))
	assert.True(t, IsDescendant(b, a))
	assert.False(t, IsDescendant(a, a))
	assert.False(t, IsDescendant(a, b))
	assert.False(t, IsDescendant(other, a))
	assert.False(t, IsDescendant(nil, a))

	assert.Equal(t, b, a.FindByID(b.ID()))
	assert.Equal(t, a, a.FindByID(a.ID()))
	assert.Nil(t, a.FindByID(other.ID()))
	assert.Equal(t, b, env.c.MustLookup(b.ID()))
	requireFatal(t, errors.ErrCodeNoSuchWindow, func() { env.c.MustLookup(ID(4242)) })
}

func TestTree_DestructorsRunOnceInChainOrder(t *testing.T) {
	env := newTestEnv(t, 80, 24)
	w := env.newWindow(t, env.c.Root(), Options{Width: 10, Height: 5})
	child := env.newWindow(t, w, Options{Width: 5, Height: 2})

	var order []string
	w.OnDestroy(func(*Window) { order = append(order, "first") })
	w.OnDestroy(func(*Window) { order = append(order, "second") })
	child.OnDestroy(func(c *Window) {
		assert.True(t, c.Parent().Alive())
		order = append(order, "child")
	})

	w.Close()
	w.Close()
	env.c.ProcessPending()
	assert.Equal(t, []string{"child", "second", "first"}, order)
}

func TestTree_CloseVeto(t *testing.T) {
	env := newTestEnv(t, 80, 24)
	w := env.newWindow(t, env.c.Root(), Options{Width: 10, Height: 5})
	allow := false
	w.OnClose(func(*Window) RetCode {
		if allow {
			return Continue
		}
		return Stop
	})

	w.Close()
	env.c.ProcessPending()
	assert.True(t, w.Alive())

	allow = true
	w.Close()
	env.c.ProcessPending()
	assert.False(t, w.Alive())
}

func TestTree_ClosingRootQuits(t *testing.T) {
	env := newTestEnv(t, 80, 24)
	env.newWindow(t, env.c.Root(), Options{Width: 10, Height: 5})
	env.c.Root().Close()
	env.c.ProcessPending()

	assert.Zero(t, env.c.Windows())
	assert.Nil(t, env.c.Focus())
	select {
	case <-env.c.quit:
	default:
		t.Fatal("closing the root did not quit")
	}
}

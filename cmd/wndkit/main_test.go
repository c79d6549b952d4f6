package main

import (
	"context"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/wndkit/pkg/clock"
	"github.com/odvcencio/wndkit/pkg/config"
	"github.com/odvcencio/wndkit/pkg/errors"
	"github.com/odvcencio/wndkit/pkg/ui/backend/sim"
	"github.com/odvcencio/wndkit/pkg/ui/widgets"
	"github.com/odvcencio/wndkit/pkg/ui/wnd"
)

func TestParseOptions(t *testing.T) {
	opts, err := parseOptions([]string{"-c", "my.yaml", "--log-level", "debug", "--no-mouse", "--window-bar=false", "--metrics-addr", ":9999"})
	require.NoError(t, err)

	cfg := config.DefaultConfig()
	opts.apply(cfg)

	assert.Equal(t, "my.yaml", opts.configPath)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.False(t, cfg.UI.Mouse)
	assert.False(t, cfg.UI.WindowBar)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, ":9999", cfg.Metrics.Addr)
	assert.False(t, cfg.Tracing.Enabled)
}

func TestParseOptions_WindowBarKeptUnlessGiven(t *testing.T) {
	opts, err := parseOptions(nil)
	require.NoError(t, err)

	cfg := config.DefaultConfig()
	cfg.UI.WindowBar = false
	opts.apply(cfg)

	assert.False(t, cfg.UI.WindowBar)
}

func TestParseOptions_Errors(t *testing.T) {
	_, err := parseOptions([]string{"extra"})
	assert.Error(t, err)

	_, err = parseOptions([]string{"--nope"})
	assert.Error(t, err)

	_, err = parseOptions([]string{"--help"})
	assert.ErrorIs(t, err, pflag.ErrHelp)
}

func TestExitCodeForError(t *testing.T) {
	assert.Equal(t, 2, exitCodeForError(errors.New(errors.ErrCodeConfigParse, "bad yaml")))
	assert.Equal(t, 1, exitCodeForError(errors.New(errors.ErrCodeBackendInit, "no tty")))
	assert.Equal(t, 1, exitCodeForError(assert.AnError))
}

func newDemoContext(t *testing.T, fc *clock.FakeClock) (*wnd.Context, *sim.Backend) {
	t.Helper()
	be := sim.New(80, 24)
	require.NoError(t, be.Init())
	t.Cleanup(be.Fini)
	c, err := wnd.NewContext(wnd.Config{Backend: be, Clock: fc, WindowBar: true})
	require.NoError(t, err)
	return c, be
}

func TestBuildDemo(t *testing.T) {
	fc := clock.Fake(time.Date(2024, 3, 4, 10, 20, 30, 0, time.UTC))
	c, be := newDemoContext(t, fc)

	require.NoError(t, buildDemo(c, "RUN1"))
	c.ProcessPending()

	assert.True(t, be.ContainsText("Profile"))
	assert.True(t, be.ContainsText("Email:"))
	assert.True(t, be.ContainsText("10:20:30 Mon Mar 4"))

	focus := c.Focus()
	require.NotNil(t, focus)
	eb, ok := focus.Ext().(*widgets.EditBox)
	require.True(t, ok)
	assert.Equal(t, "name", eb.ItemID())

	eb.AddCh('x')
	c.ProcessPending()
	assert.True(t, be.ContainsText("name: 1 chars"))
}

func TestTickEveryPostsToTarget(t *testing.T) {
	fc := clock.Fake(time.Date(2024, 3, 4, 10, 20, 30, 0, time.UTC))
	c, _ := newDemoContext(t, fc)
	c.ProcessPending()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- tickEvery(time.Second, c.Root().ID())(ctx, c) }()

	require.Eventually(t, func() bool {
		fc.Advance(time.Second)
		return c.Pending() > 0
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

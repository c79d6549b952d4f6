package sim

import (
	"strings"
	"testing"
	"time"

	"github.com/odvcencio/wndkit/pkg/ui/backend"
	"github.com/odvcencio/wndkit/pkg/ui/terminal"
)

func newSim(t *testing.T, w, h int) *Backend {
	t.Helper()
	sim := New(w, h)
	if err := sim.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(sim.Fini)
	return sim
}

func write(sim *Backend, x, y int, text string, style backend.Style) {
	for i, r := range text {
		sim.SetContent(x+i, y, r, nil, style)
	}
}

func poll(t *testing.T, sim *Backend) terminal.Event {
	t.Helper()
	done := make(chan terminal.Event, 1)
	go func() { done <- sim.PollEvent() }()
	select {
	case ev := <-done:
		return ev
	case <-time.After(time.Second):
		t.Fatal("PollEvent blocked")
		return nil
	}
}

func TestBackend_BasicRendering(t *testing.T) {
	sim := newSim(t, 20, 5)
	write(sim, 0, 0, "Hello, World!", backend.DefaultStyle().Foreground(backend.ColorWhite))
	sim.Show()

	_, h := sim.Size()
	lines := strings.Split(sim.Capture(), "\n")
	if len(lines) != h {
		t.Errorf("Expected %d lines, got %d", h, len(lines))
	}
	if !strings.HasPrefix(lines[0], "Hello, World!") {
		t.Errorf("Expected first line to start with 'Hello, World!', got %q", lines[0])
	}
}

func TestBackend_Resize(t *testing.T) {
	sim := newSim(t, 80, 24)
	sim.Resize(40, 12)

	w, h := sim.Size()
	if w != 40 || h != 12 {
		t.Errorf("Expected size 40x12 after resize, got %dx%d", w, h)
	}
}

func TestBackend_FindText(t *testing.T) {
	sim := newSim(t, 40, 10)
	write(sim, 5, 3, "target", backend.DefaultStyle())
	sim.Show()

	x, y := sim.FindText("target")
	if x != 5 || y != 3 {
		t.Errorf("Expected to find 'target' at (5, 3), got (%d, %d)", x, y)
	}
	if sim.ContainsText("missing") {
		t.Error("Should not find 'missing' on screen")
	}
}

func TestBackend_CaptureRegion(t *testing.T) {
	sim := newSim(t, 20, 10)
	for y := 0; y < 3; y++ {
		write(sim, 0, y, "XXXXX", backend.DefaultStyle())
	}
	sim.Show()

	region := sim.CaptureRegion(0, 0, 5, 3)
	expected := "XXXXX\nXXXXX\nXXXXX"
	if region != expected {
		t.Errorf("Expected region:\n%s\nGot:\n%s", expected, region)
	}
}

func TestBackend_InjectBinding(t *testing.T) {
	sim := newSim(t, 20, 10)
	sim.InjectBinding("alt+p")

	ev, ok := poll(t, sim).(terminal.KeyEvent)
	if !ok {
		t.Fatalf("Expected terminal.KeyEvent, got %T", ev)
	}
	if ev.Key != terminal.KeyRune || ev.Rune != 'p' || !ev.Alt {
		t.Errorf("Expected alt+p, got %+v", ev)
	}
}

func TestBackend_InjectClick(t *testing.T) {
	sim := newSim(t, 20, 10)
	sim.InjectClick(4, 2, terminal.MouseLeft)

	press, ok := poll(t, sim).(terminal.MouseEvent)
	if !ok {
		t.Fatalf("Expected terminal.MouseEvent, got %T", press)
	}
	if press.X != 4 || press.Y != 2 || press.Button != terminal.MouseLeft || press.Action != terminal.MousePress {
		t.Errorf("unexpected press: %+v", press)
	}
	release := poll(t, sim).(terminal.MouseEvent)
	if release.Action != terminal.MouseRelease {
		t.Errorf("expected release, got %+v", release)
	}
}

func TestBackend_Styles(t *testing.T) {
	sim := newSim(t, 20, 10)
	style := backend.DefaultStyle().
		Foreground(backend.ColorRed).
		Background(backend.ColorBlue).
		Bold(true)

	sim.SetContent(0, 0, 'S', nil, style)
	sim.Show()

	mainc, _, captured := sim.CaptureCell(0, 0)
	if mainc != 'S' {
		t.Errorf("Expected 'S', got %c", mainc)
	}
	if captured.Attributes()&backend.AttrBold == 0 {
		t.Error("Expected bold attribute to be set")
	}
}

func TestDiff(t *testing.T) {
	if d := Diff("ab  \ncd", "ab\ncd   "); d != "" {
		t.Fatalf("trailing spaces should be ignored, got:\n%s", d)
	}
	d := Diff("one\ntwo\n", "one\nTWO\n")
	if !strings.Contains(d, "-two") || !strings.Contains(d, "+TWO") {
		t.Fatalf("unexpected diff:\n%s", d)
	}
}

func TestBackend_Diff(t *testing.T) {
	sim := newSim(t, 6, 2)
	write(sim, 0, 1, "ok", backend.DefaultStyle())
	sim.Show()

	if d := sim.Diff("\nok"); d != "" {
		t.Fatalf("capture mismatch:\n%s", d)
	}
}

func TestBackend_InitKeepsSize(t *testing.T) {
	sim := newSim(t, 33, 7)
	if w, h := sim.Size(); w != 33 || h != 7 {
		t.Fatalf("Expected 33x7 after Init, got %dx%d", w, h)
	}
}

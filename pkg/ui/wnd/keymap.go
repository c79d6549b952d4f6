package wnd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/odvcencio/wndkit/pkg/errors"
	"github.com/odvcencio/wndkit/pkg/ui/terminal"
)

// Keymap holds the window-management chords the root handles.
type Keymap struct {
	Reposition terminal.Binding
	Resize     terminal.Binding
	Maximize   terminal.Binding
	Close      terminal.Binding
	NextFocus  terminal.Binding
	PrevFocus  terminal.Binding
	Redisplay  terminal.Binding
	Quit       terminal.Binding
}

// DefaultKeymap returns the built-in chords.
func DefaultKeymap() Keymap {
	return Keymap{
		Reposition: terminal.MustParseBinding("alt+p"),
		Resize:     terminal.MustParseBinding("alt+s"),
		Maximize:   terminal.MustParseBinding("alt+m"),
		Close:      terminal.MustParseBinding("alt+c"),
		NextFocus:  terminal.MustParseBinding("tab"),
		PrevFocus:  terminal.MustParseBinding("shift+tab"),
		Redisplay:  terminal.MustParseBinding("ctrl+l"),
		Quit:       terminal.MustParseBinding("ctrl+q"),
	}
}

// KeymapFromConfig overlays bindings keyed by action name on the
// defaults. Empty values keep the default; unknown actions and bad
// chords are reported together.
func KeymapFromConfig(bindings map[string]string) (Keymap, error) {
	km := DefaultKeymap()
	slots := map[string]*terminal.Binding{
		"reposition": &km.Reposition,
		"resize":     &km.Resize,
		"maximize":   &km.Maximize,
		"close":      &km.Close,
		"next_focus": &km.NextFocus,
		"prev_focus": &km.PrevFocus,
		"redisplay":  &km.Redisplay,
		"quit":       &km.Quit,
	}
	var problems []string
	for action, chord := range bindings {
		if strings.TrimSpace(chord) == "" {
			continue
		}
		slot, ok := slots[action]
		if !ok {
			problems = append(problems, fmt.Sprintf("unknown action %q", action))
			continue
		}
		b, err := terminal.ParseBinding(chord)
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", action, err))
			continue
		}
		*slot = b
	}
	if len(problems) > 0 {
		sort.Strings(problems)
		return km, errors.New(errors.ErrCodeInvalidInput, "keymap: "+strings.Join(problems, "; "))
	}
	return km, nil
}

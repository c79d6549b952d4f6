package terminal

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/odvcencio/wndkit/pkg/errors"
)

// Binding is a single key chord such as "alt+p" or "shift+tab".
type Binding struct {
	Key  Key
	Rune rune
	Alt  bool
	Ctrl bool
}

var namedKeys = map[string]Key{
	"enter":     KeyEnter,
	"return":    KeyEnter,
	"tab":       KeyTab,
	"esc":       KeyEscape,
	"escape":    KeyEscape,
	"backspace": KeyBackspace,
	"delete":    KeyDelete,
	"del":       KeyDelete,
	"insert":    KeyInsert,
	"up":        KeyUp,
	"down":      KeyDown,
	"left":      KeyLeft,
	"right":     KeyRight,
	"home":      KeyHome,
	"end":       KeyEnd,
	"pgup":      KeyPageUp,
	"pageup":    KeyPageUp,
	"pgdn":      KeyPageDown,
	"pagedown":  KeyPageDown,
	"f1":        KeyF1,
	"f2":        KeyF2,
	"f3":        KeyF3,
	"f4":        KeyF4,
	"f5":        KeyF5,
	"f6":        KeyF6,
	"f7":        KeyF7,
	"f8":        KeyF8,
	"f9":        KeyF9,
	"f10":       KeyF10,
	"f11":       KeyF11,
	"f12":       KeyF12,
}

// ParseBinding parses a chord written as modifiers joined by "+" and
// followed by a key name or a single character, e.g. "ctrl+q", "alt+p",
// "shift+tab", "f5". Ctrl with a letter maps to the KeyCtrl constants
// terminals report for those chords.
func ParseBinding(s string) (Binding, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return Binding{}, errors.New(errors.ErrCodeConfigParse, "empty key binding")
	}
	parts := strings.Split(raw, "+")
	// "ctrl++" binds the plus key itself.
	if strings.HasSuffix(raw, "++") {
		parts = append(parts[:len(parts)-2], "+")
	}

	var b Binding
	shift := false
	for _, mod := range parts[:len(parts)-1] {
		switch strings.ToLower(strings.TrimSpace(mod)) {
		case "alt", "meta", "m":
			b.Alt = true
		case "ctrl", "control", "c":
			b.Ctrl = true
		case "shift", "s":
			shift = true
		default:
			return Binding{}, errors.Newf(errors.ErrCodeConfigParse, "unknown modifier %q in %q", mod, s)
		}
	}

	name := parts[len(parts)-1]
	if name == "" {
		return Binding{}, errors.Newf(errors.ErrCodeConfigParse, "missing key in %q", s)
	}
	lower := strings.ToLower(name)

	switch {
	case lower == "space":
		b.Key, b.Rune = KeyRune, ' '
	case lower == "tab" && shift:
		b.Key = KeyBacktab
		return b, nil
	case namedKeys[lower] != KeyNone:
		b.Key = namedKeys[lower]
	case utf8.RuneCountInString(name) == 1:
		r, _ := utf8.DecodeRuneInString(name)
		if b.Ctrl {
			if k, ok := CtrlKey(r); ok {
				b.Key, b.Ctrl = k, false
				return b, nil
			}
		}
		if shift {
			r = []rune(strings.ToUpper(string(r)))[0]
		}
		b.Key, b.Rune = KeyRune, r
	default:
		return Binding{}, errors.Newf(errors.ErrCodeConfigParse, "unknown key %q in %q", name, s)
	}
	return b, nil
}

// MustParseBinding is ParseBinding for bindings known at compile time.
func MustParseBinding(s string) Binding {
	b, err := ParseBinding(s)
	if err != nil {
		panic(err)
	}
	return b
}

// Matches reports whether ev is the chord described by b.
func (b Binding) Matches(ev KeyEvent) bool {
	if b.Key == KeyNone {
		return false
	}
	if b.Key == KeyRune {
		if ev.Key != KeyRune || ev.Alt != b.Alt || ev.Ctrl != b.Ctrl {
			return false
		}
		return ev.Rune == b.Rune
	}
	if ev.Key == b.Key {
		return ev.Alt == b.Alt && (b.Key >= KeyCtrlA || ev.Ctrl == b.Ctrl)
	}
	// Some terminals report ctrl+letter as a modified rune.
	if b.Key >= KeyCtrlA && b.Key <= KeyCtrlZ && ev.Key == KeyRune && ev.Ctrl && ev.Alt == b.Alt {
		k, ok := CtrlKey(ev.Rune)
		return ok && k == b.Key
	}
	return false
}

func (b Binding) String() string {
	var sb strings.Builder
	if b.Ctrl {
		sb.WriteString("ctrl+")
	}
	if b.Alt {
		sb.WriteString("alt+")
	}
	switch {
	case b.Key == KeyRune && b.Rune == ' ':
		sb.WriteString("space")
	case b.Key == KeyRune:
		sb.WriteRune(b.Rune)
	case b.Key == KeyBacktab:
		sb.WriteString("shift+tab")
	case b.Key >= KeyCtrlA && b.Key <= KeyCtrlZ:
		sb.WriteString("ctrl+")
		sb.WriteRune('a' + rune(b.Key-KeyCtrlA))
	default:
		sb.WriteString(canonicalName(b.Key))
	}
	return sb.String()
}

func canonicalName(k Key) string {
	switch k {
	case KeyEnter:
		return "enter"
	case KeyTab:
		return "tab"
	case KeyEscape:
		return "esc"
	case KeyBackspace:
		return "backspace"
	case KeyDelete:
		return "delete"
	case KeyInsert:
		return "insert"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyHome:
		return "home"
	case KeyEnd:
		return "end"
	case KeyPageUp:
		return "pgup"
	case KeyPageDown:
		return "pgdn"
	}
	if k >= KeyF1 && k <= KeyF12 {
		return fmt.Sprintf("f%d", int(k-KeyF1)+1)
	}
	return "?"
}

package backend

import (
	"strconv"
	"strings"

	"github.com/odvcencio/wndkit/pkg/errors"
)

// Color represents a terminal color.
// Values 0-255 are palette colors; RGB colors carry the 0x01000000 flag.
type Color int32

// Color constants
const (
	ColorDefault Color = -1
	ColorBlack   Color = 0
	ColorRed     Color = 1
	ColorGreen   Color = 2
	ColorYellow  Color = 3
	ColorBlue    Color = 4
	ColorMagenta Color = 5
	ColorCyan    Color = 6
	ColorWhite   Color = 7

	// Bright variants
	ColorBrightBlack   Color = 8
	ColorBrightRed     Color = 9
	ColorBrightGreen   Color = 10
	ColorBrightYellow  Color = 11
	ColorBrightBlue    Color = 12
	ColorBrightMagenta Color = 13
	ColorBrightCyan    Color = 14
	ColorBrightWhite   Color = 15
)

var colorNames = []string{"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white"}

// ColorRGB creates a true color from RGB components.
func ColorRGB(r, g, b uint8) Color {
	return Color(int32(r)<<16 | int32(g)<<8 | int32(b) | 0x01000000)
}

// IsRGB returns true if this is a true color (not palette).
func (c Color) IsRGB() bool {
	return c&0x01000000 != 0
}

// RGB returns the red, green, blue components of an RGB color.
// Returns 0, 0, 0 for non-RGB colors.
func (c Color) RGB() (r, g, b uint8) {
	if !c.IsRGB() {
		return 0, 0, 0
	}
	return uint8((c >> 16) & 0xFF), uint8((c >> 8) & 0xFF), uint8(c & 0xFF)
}

// ParseColor accepts "default", a basic color name with an optional
// "bright-" prefix, or a palette index 0-255.
func ParseColor(s string) (Color, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" || name == "default" {
		return ColorDefault, nil
	}
	if n, err := strconv.Atoi(name); err == nil {
		if n < 0 || n > 255 {
			return ColorDefault, errors.Newf(errors.ErrCodeConfigParse, "palette index %d out of range", n)
		}
		return Color(n), nil
	}
	offset := Color(0)
	if rest, ok := strings.CutPrefix(name, "bright-"); ok {
		name, offset = rest, 8
	}
	for i, c := range colorNames {
		if c == name {
			return Color(i) + offset, nil
		}
	}
	return ColorDefault, errors.Newf(errors.ErrCodeConfigParse, "unknown color %q", s)
}

// AttrMask represents text attributes.
type AttrMask uint32

// Attribute flags
const (
	AttrBold AttrMask = 1 << iota
	AttrBlink
	AttrReverse
	AttrUnderline
	AttrDim
	AttrItalic
	AttrStrikeThrough

	AttrNone AttrMask = 0
)

var attrNames = map[string]AttrMask{
	"normal":        AttrNone,
	"bold":          AttrBold,
	"blink":         AttrBlink,
	"reverse":       AttrReverse,
	"underline":     AttrUnderline,
	"dim":           AttrDim,
	"italic":        AttrItalic,
	"strikethrough": AttrStrikeThrough,
}

// ParseAttrs parses a comma separated attribute list.
func ParseAttrs(s string) (AttrMask, error) {
	var mask AttrMask
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		a, ok := attrNames[part]
		if !ok {
			return AttrNone, errors.Newf(errors.ErrCodeConfigParse, "unknown attribute %q", part)
		}
		mask |= a
	}
	return mask, nil
}

// Style combines foreground, background colors and attributes.
type Style struct {
	fg    Color
	bg    Color
	attrs AttrMask
}

// DefaultStyle returns the default style (default colors, no attributes).
func DefaultStyle() Style {
	return Style{fg: ColorDefault, bg: ColorDefault}
}

// ParseStyle parses "<fg>:<bg>:<attr>,<attr>". Trailing fields may be
// omitted; empty fields keep the default.
func ParseStyle(s string) (Style, error) {
	style := DefaultStyle()
	fields := strings.SplitN(s, ":", 3)
	fg, err := ParseColor(fields[0])
	if err != nil {
		return style, errors.Wrap(err, errors.ErrCodeConfigParse, "foreground")
	}
	style.fg = fg
	if len(fields) > 1 {
		bg, err := ParseColor(fields[1])
		if err != nil {
			return style, errors.Wrap(err, errors.ErrCodeConfigParse, "background")
		}
		style.bg = bg
	}
	if len(fields) > 2 {
		attrs, err := ParseAttrs(fields[2])
		if err != nil {
			return style, err
		}
		style.attrs = attrs
	}
	return style, nil
}

// Foreground sets the foreground color.
func (s Style) Foreground(c Color) Style {
	s.fg = c
	return s
}

// Background sets the background color.
func (s Style) Background(c Color) Style {
	s.bg = c
	return s
}

// WithAttrs replaces the attribute set.
func (s Style) WithAttrs(a AttrMask) Style {
	s.attrs = a
	return s
}

func (s Style) set(a AttrMask, on bool) Style {
	if on {
		s.attrs |= a
	} else {
		s.attrs &^= a
	}
	return s
}

func (s Style) Bold(on bool) Style          { return s.set(AttrBold, on) }
func (s Style) Italic(on bool) Style        { return s.set(AttrItalic, on) }
func (s Style) Dim(on bool) Style           { return s.set(AttrDim, on) }
func (s Style) Underline(on bool) Style     { return s.set(AttrUnderline, on) }
func (s Style) Reverse(on bool) Style       { return s.set(AttrReverse, on) }
func (s Style) Blink(on bool) Style         { return s.set(AttrBlink, on) }
func (s Style) StrikeThrough(on bool) Style { return s.set(AttrStrikeThrough, on) }

// Attributes returns all attributes.
func (s Style) Attributes() AttrMask {
	return s.attrs
}

// FG returns the foreground color.
func (s Style) FG() Color {
	return s.fg
}

// BG returns the background color.
func (s Style) BG() Color {
	return s.bg
}

// Decompose returns the foreground, background, and attributes.
func (s Style) Decompose() (fg, bg Color, attrs AttrMask) {
	return s.fg, s.bg, s.attrs
}

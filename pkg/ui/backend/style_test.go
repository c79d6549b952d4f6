package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/wndkit/pkg/errors"
)

func TestParseColor(t *testing.T) {
	tests := map[string]Color{
		"":             ColorDefault,
		"default":      ColorDefault,
		"red":          ColorRed,
		"White":        ColorWhite,
		"bright-blue":  ColorBrightBlue,
		"bright-black": ColorBrightBlack,
		"208":          Color(208),
	}
	for in, want := range tests {
		got, err := ParseColor(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, bad := range []string{"purple", "256", "-1", "bright-"} {
		_, err := ParseColor(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseStyle(t *testing.T) {
	s, err := ParseStyle("yellow:blue:bold,underline")
	require.NoError(t, err)
	fg, bg, attrs := s.Decompose()
	assert.Equal(t, ColorYellow, fg)
	assert.Equal(t, ColorBlue, bg)
	assert.Equal(t, AttrBold|AttrUnderline, attrs)

	s, err = ParseStyle("black:cyan")
	require.NoError(t, err)
	assert.Equal(t, AttrNone, s.Attributes())
	assert.Equal(t, ColorCyan, s.BG())

	s, err = ParseStyle("::reverse")
	require.NoError(t, err)
	assert.Equal(t, DefaultStyle().WithAttrs(AttrReverse), s)

	s, err = ParseStyle("white:black:normal")
	require.NoError(t, err)
	assert.Equal(t, AttrNone, s.Attributes())

	_, err = ParseStyle("white:black:sparkly")
	assert.Error(t, err)
	_, err = ParseStyle("nope")
	assert.Error(t, err)
}

func TestParseStyle_ErrorsAreCoded(t *testing.T) {
	for _, bad := range []string{"nope", "red:999", "red:blue:sparkly"} {
		_, err := ParseStyle(bad)
		require.Error(t, err, bad)
		assert.True(t, errors.IsCode(err, errors.ErrCodeConfigParse), bad)
	}
}

func TestStyleAttributeToggles(t *testing.T) {
	s := DefaultStyle().Bold(true).Italic(true).Dim(true)
	assert.Equal(t, AttrBold|AttrItalic|AttrDim, s.Attributes())
	s = s.Italic(false)
	assert.Equal(t, AttrBold|AttrDim, s.Attributes())
}

func TestColorRGB(t *testing.T) {
	c := ColorRGB(10, 20, 30)
	require.True(t, c.IsRGB())
	r, g, b := c.RGB()
	assert.Equal(t, [3]uint8{10, 20, 30}, [3]uint8{r, g, b})
	assert.False(t, ColorRed.IsRGB())
}

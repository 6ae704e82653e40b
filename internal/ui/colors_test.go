package ui

import (
	"bytes"
	"errors"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorRanges(t *testing.T) {
	for c := FGBlack; c <= FGWhite; c++ {
		assert.True(t, c.IsFG(), "%d", c)
		assert.False(t, c.IsBG(), "%d", c)
	}
	for c := BGBlackBright; c <= BGWhiteBright; c++ {
		assert.True(t, c.IsBG(), "%d", c)
		assert.False(t, c.IsFG(), "%d", c)
	}
	for _, c := range []Color{0, 29, 38, 39, 48, 89, 98, 99, 108} {
		assert.False(t, c.IsFG() || c.IsBG(), "%d should be invalid", c)
	}

	assert.Equal(t, FGBlackBright, FGGray)
	assert.Equal(t, BGBlackBright, BGGrey)
}

func TestColorString(t *testing.T) {
	assert.Equal(t, "green", FGGreen.String())
	assert.Equal(t, "cyan-bright", BGCyanBright.String())
	assert.Equal(t, "color(12)", Color(12).String())
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		name string
		bg   bool
		want Color
	}{
		{"red", false, FGRed},
		{"red", true, BGRed},
		{"Cyan-Bright", false, FGCyanBright},
		{"gray", true, BGGray},
		{"grey", false, FGGray},
		{"white-bright", true, BGWhiteBright},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseColor(tt.name, tt.bg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseColor("orange", false)
	assert.True(t, errors.Is(err, ErrInvalidColor))
}

func TestParsePalette(t *testing.T) {
	got, err := ParsePalette([]string{"green", "blue", "white/red", "gray"})
	require.NoError(t, err)
	assert.Equal(t, []ColorPair{
		{FG: FGBlack, BG: BGGreen},
		{FG: FGWhite, BG: BGBlue},
		{FG: FGWhite, BG: BGRed},
		{FG: FGBlack, BG: BGGray},
	}, got)

	got, err = ParsePalette(nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = ParsePalette([]string{"green", "orange"})
	assert.True(t, errors.Is(err, ErrInvalidColor))

	_, err = ParsePalette([]string{"pink/blue"})
	assert.True(t, errors.Is(err, ErrInvalidColor))
}

func TestAssignColors(t *testing.T) {
	palette := []ColorPair{{FG: FGBlack, BG: BGGreen}, {FG: FGWhite, BG: BGRed}}

	got := AssignColors(palette, 5)
	assert.Equal(t, []ColorPair{palette[0], palette[1], palette[0], palette[1], palette[0]}, got)

	assert.Empty(t, AssignColors(palette, 0))
	assert.Equal(t, DefaultPalette[:2], AssignColors(nil, 2))

	for _, p := range DefaultPalette {
		assert.NoError(t, p.Validate())
	}
}

func TestStylesAreFunctional(t *testing.T) {
	styles := []lipgloss.Style{SuccessStyle(), ErrorStyle(), WarningStyle(), MutedStyle()}
	for _, style := range styles {
		assert.Contains(t, style.Render("text"), "text")
	}
}

func TestPrintWarning(t *testing.T) {
	var buf bytes.Buffer
	PrintWarning(&buf, "test warning message")
	output := buf.String()

	assert.Contains(t, output, "test warning message")
	assert.Contains(t, output, SymbolWarning)
}

func TestDisableColors(t *testing.T) {
	assert.NotPanics(t, func() {
		DisableColors()
	})
	assert.Equal(t, "test", SuccessStyle().Render("test"))
}

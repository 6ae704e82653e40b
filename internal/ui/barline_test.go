package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func barOpts(width int, items ...Segment) BarlineOptions {
	opts := DefaultBarlineOptions()
	opts.Width = width
	opts.Items = items
	return opts
}

func TestBarline_PlainOutputHasNoEscapes(t *testing.T) {
	opts := barOpts(10, Segment{Value: 50, Text: "abc"})
	opts.DefaultText = "rest"

	var buf bytes.Buffer
	require.NoError(t, PlainStyler().Barline(&buf, opts))

	assert.Equal(t, "abc  rest \n", buf.String())
	assert.NotContains(t, buf.String(), "\x1b")
}

func TestBarline_Colored(t *testing.T) {
	opts := barOpts(4, Segment{Value: 50, Text: "ab"})
	opts.Colors = []ColorPair{{FG: FGBlack, BG: BGGreen}}

	out, err := (&Styler{enabled: true}).RenderBarline(opts)
	require.NoError(t, err)

	assert.Equal(t, "\x1b[30;42mab\x1b[0m\x1b[100m  \x1b[0m\n", out)
}

func TestBarline_PrefixSuffixShrinkBudget(t *testing.T) {
	opts := barOpts(10, Segment{Value: 100, Text: "xxxxxxxxxxxx"})
	opts.Prefix = "["
	opts.Suffix = "]"

	out, err := PlainStyler().RenderBarline(opts)
	require.NoError(t, err)
	assert.Equal(t, "[xxxxxxxx]\n", out)

	opts.SubtractText = false
	out, err = PlainStyler().RenderBarline(opts)
	require.NoError(t, err)
	assert.Equal(t, "[xxxxxxxxxx]\n", out)
}

func TestBarline_Fill(t *testing.T) {
	opts := barOpts(10,
		Segment{Value: 34, Text: "aaaaaaaaaa"},
		Segment{Value: 33, Text: "bbbbbbbbbb"},
		Segment{Value: 33, Text: "cccccccccc"},
	)
	opts.NL = false

	out, err := PlainStyler().RenderBarline(opts)
	require.NoError(t, err)
	assert.Equal(t, "aaabbbccc ", out)

	opts.Fill = true
	out, err = PlainStyler().RenderBarline(opts)
	require.NoError(t, err)
	assert.Equal(t, "aaaabbbccc", out)
}

func TestBarline_FillPartialWeights(t *testing.T) {
	opts := barOpts(10,
		Segment{Value: 25, Text: "aaaaaaaaaa"},
		Segment{Value: 25, Text: "bbbbbbbbbb"},
	)
	opts.NL = false
	opts.Fill = true

	out, err := PlainStyler().RenderBarline(opts)
	require.NoError(t, err)
	assert.Equal(t, "aaabbb    ", out)
}

func TestBarline_OverBudgetWritesNothing(t *testing.T) {
	opts := barOpts(10, Segment{Value: 60}, Segment{Value: 60})

	var buf bytes.Buffer
	err := (&Styler{enabled: true}).Barline(&buf, opts)
	assert.True(t, errors.Is(err, ErrOverBudget))
	assert.Zero(t, buf.Len())
}

func TestBarline_NegativeBudgetAfterSubtraction(t *testing.T) {
	opts := barOpts(3, Segment{Value: 10})
	opts.Prefix = "prefix"

	_, err := PlainStyler().RenderBarline(opts)
	assert.True(t, errors.Is(err, ErrInvalidBudget))
}

func TestBarline_InvalidColors(t *testing.T) {
	t.Run("palette", func(t *testing.T) {
		opts := barOpts(10, Segment{Value: 10})
		opts.Colors = []ColorPair{{FG: BGRed, BG: BGGreen}}
		_, err := PlainStyler().RenderBarline(opts)
		assert.True(t, errors.Is(err, ErrInvalidColor))
	})

	t.Run("segment override", func(t *testing.T) {
		opts := barOpts(10, Segment{Value: 10, Color: &ColorPair{FG: FGRed, BG: FGRed}})
		_, err := PlainStyler().RenderBarline(opts)
		assert.True(t, errors.Is(err, ErrInvalidColor))
	})

	t.Run("default background", func(t *testing.T) {
		opts := barOpts(10)
		opts.DefaultBG = FGWhite
		_, err := PlainStyler().RenderBarline(opts)
		assert.True(t, errors.Is(err, ErrInvalidColor))
	})
}

func TestLayoutBarline_ColorsArePrecomputed(t *testing.T) {
	opts := barOpts(30, Segment{Value: 10}, Segment{Value: 10}, Segment{Value: 10})
	opts.Colors = []ColorPair{{FG: FGBlack, BG: BGGreen}, {FG: FGWhite, BG: BGBlue}}

	layout, err := LayoutBarline(opts)
	require.NoError(t, err)
	assert.Equal(t, []ColorPair{opts.Colors[0], opts.Colors[1], opts.Colors[0]}, layout.Colors)
	assert.Equal(t, 30, layout.Budget)
	assert.Equal(t, []int{3, 3, 3}, layout.Allocation.Columns)

	// rendering twice gives identical output
	s := &Styler{enabled: true}
	first, err := s.RenderBarline(opts)
	require.NoError(t, err)
	second, err := s.RenderBarline(opts)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestLayoutBarline_ColorFn(t *testing.T) {
	red := ColorPair{FG: FGWhite, BG: BGRed}
	opts := barOpts(10, Segment{Value: 10}, Segment{Value: 10, Color: &ColorPair{FG: FGBlack, BG: BGCyan}})
	opts.ColorFn = func(i int, seg Segment) ColorPair { return red }

	layout, err := LayoutBarline(opts)
	require.NoError(t, err)
	assert.Equal(t, red, layout.Colors[0])
	assert.Equal(t, BGCyan, layout.Colors[1].BG)
}

func TestBarline_ZeroWidth(t *testing.T) {
	opts := barOpts(0, Segment{Value: 50, Text: "x"})
	out, err := PlainStyler().RenderBarline(opts)
	require.NoError(t, err)
	assert.Equal(t, "\n", out)
}

func TestBarline_MultibyteText(t *testing.T) {
	opts := barOpts(4, Segment{Value: 100, Text: strings.Repeat(SymbolBar, 10)})
	opts.NL = false
	out, err := PlainStyler().RenderBarline(opts)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat(SymbolBar, 4), out)
}

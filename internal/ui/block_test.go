package ui

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderBlock(t *testing.T) {
	opts := DefaultBlockOptions()
	opts.Width = 5
	opts.Text = "hi"

	plain, err := PlainStyler().RenderBlock(opts)
	require.NoError(t, err)
	assert.Equal(t, "hi   \n", plain)

	colored, err := (&Styler{enabled: true}).RenderBlock(opts)
	require.NoError(t, err)
	assert.Equal(t, "\x1b[30;100mhi   \x1b[0m\n", colored)
}

func TestRenderBlock_Errors(t *testing.T) {
	opts := DefaultBlockOptions()
	opts.BG = FGRed
	_, err := PlainStyler().RenderBlock(opts)
	assert.True(t, errors.Is(err, ErrInvalidColor))

	opts = DefaultBlockOptions()
	opts.Width = -1
	_, err = PlainStyler().RenderBlock(opts)
	assert.True(t, errors.Is(err, ErrInvalidBudget))
}

func TestRenderOverlapBox(t *testing.T) {
	opts := DefaultOverlapBoxOptions()
	opts.Width = 10
	opts.BoxPercent = 0.3
	opts.Text = "0123456789ab"

	plain, err := PlainStyler().RenderOverlapBox(opts)
	require.NoError(t, err)
	assert.Equal(t, "0123456789\n", plain)

	colored, err := (&Styler{enabled: true}).RenderOverlapBox(opts)
	require.NoError(t, err)
	assert.Equal(t, "\x1b[30;100m012\x1b[0m\x1b[37m3456789\x1b[0m\n", colored)
}

func TestRenderOverlapBox_Edges(t *testing.T) {
	opts := DefaultOverlapBoxOptions()
	opts.Width = 4
	opts.NL = false

	opts.BoxPercent = 0
	out, err := (&Styler{enabled: true}).RenderOverlapBox(opts)
	require.NoError(t, err)
	assert.Equal(t, "\x1b[37m    \x1b[0m", out)

	opts.BoxPercent = 1
	out, err = (&Styler{enabled: true}).RenderOverlapBox(opts)
	require.NoError(t, err)
	assert.Equal(t, "\x1b[30;100m    \x1b[0m", out)
}

func TestOverlapBox_Errors(t *testing.T) {
	opts := DefaultOverlapBoxOptions()
	opts.BoxPercent = 1.5

	var buf bytes.Buffer
	err := PlainStyler().OverlapBox(&buf, opts)
	assert.True(t, errors.Is(err, ErrOverBudget))
	assert.Zero(t, buf.Len())

	opts = DefaultOverlapBoxOptions()
	opts.DefaultTextColor = BGWhite
	err = PlainStyler().OverlapBox(&buf, opts)
	assert.True(t, errors.Is(err, ErrInvalidColor))
}

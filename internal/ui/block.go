package ui

import (
	"fmt"
	"io"
	"strings"
)

// BlockOptions configures Block, a full-width colored strip.
type BlockOptions struct {
	Width int
	BG    Color
	FG    Color
	Text  string
	NL    bool
}

// DefaultBlockOptions returns a 60-column gray strip with black text.
func DefaultBlockOptions() BlockOptions {
	return BlockOptions{
		Width: 60,
		BG:    BGGray,
		FG:    FGBlack,
		NL:    true,
	}
}

// RenderBlock returns the strip as a string.
func (s *Styler) RenderBlock(opts BlockOptions) (string, error) {
	if opts.Width < 0 {
		return "", fmt.Errorf("%w: width %d", ErrInvalidBudget, opts.Width)
	}
	pair := ColorPair{FG: opts.FG, BG: opts.BG}
	if err := pair.Validate(); err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(s.StartPair(pair))
	writeCells(&b, []rune(opts.Text), 0, opts.Width)
	b.WriteString(s.End())
	if opts.NL {
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// Block writes the strip to w.
func (s *Styler) Block(w io.Writer, opts BlockOptions) error {
	out, err := s.RenderBlock(opts)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

// OverlapBoxOptions configures OverlapBox: a colored box covering BoxPercent
// of the width with one run of text flowing across the box and the rest of
// the line.
type OverlapBoxOptions struct {
	Width      int
	BoxPercent float64 // 0..1

	BoxColor         Color // background of the box
	TextColor        Color // text inside the box
	DefaultTextColor Color // text after the box

	Text string
	NL   bool
}

// DefaultOverlapBoxOptions returns a 60-column line with a half-width box.
func DefaultOverlapBoxOptions() OverlapBoxOptions {
	return OverlapBoxOptions{
		Width:            60,
		BoxPercent:       0.5,
		BoxColor:         BGGray,
		TextColor:        FGBlack,
		DefaultTextColor: FGWhite,
		NL:               true,
	}
}

// RenderOverlapBox returns the box line as a string.
func (s *Styler) RenderOverlapBox(opts OverlapBoxOptions) (string, error) {
	box := ColorPair{FG: opts.TextColor, BG: opts.BoxColor}
	if err := box.Validate(); err != nil {
		return "", err
	}
	if err := CheckFG(opts.DefaultTextColor); err != nil {
		return "", err
	}

	// Two segments never need remainder correction: the box takes its floor
	// and the line keeps the rest.
	alloc, err := Allocate(opts.Width, []float64{opts.BoxPercent}, 1, false)
	if err != nil {
		return "", fmt.Errorf("overlap box: %w", err)
	}
	boxWidth := alloc.Columns[0]
	text := []rune(opts.Text)

	var b strings.Builder
	if boxWidth > 0 {
		b.WriteString(s.StartPair(box))
		writeCells(&b, text, 0, boxWidth)
		b.WriteString(s.End())
	}
	if alloc.Rest > 0 {
		b.WriteString(s.Start(opts.DefaultTextColor))
		writeCells(&b, text, boxWidth, alloc.Rest)
		b.WriteString(s.End())
	}
	if opts.NL {
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// OverlapBox writes the box line to w.
func (s *Styler) OverlapBox(w io.Writer, opts OverlapBoxOptions) error {
	out, err := s.RenderOverlapBox(opts)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

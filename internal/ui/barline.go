package ui

import (
	"fmt"
	"io"
	"strings"
)

// Segment is one weighted part of a bar.
type Segment struct {
	Value float64
	Text  string
	// Color overrides the palette for this segment when set.
	Color *ColorPair
}

// ColorFunc picks the colors of segment i.
type ColorFunc func(i int, seg Segment) ColorPair

// BarlineOptions configures Barline. Start from DefaultBarlineOptions; the
// zero value is a zero-width bar with an invalid default background.
type BarlineOptions struct {
	Width int     // total columns, prefix and suffix included when SubtractText
	Total float64 // denominator for Segment.Value
	Items []Segment

	Colors  []ColorPair // round-robin palette
	ColorFn ColorFunc   // overrides Colors when set

	DefaultBG   Color  // background of unallocated columns
	DefaultText string // text drawn over unallocated columns

	// SubtractText shrinks the budget by the prefix and suffix length.
	SubtractText bool
	// Fill hands leftover columns to the segments by largest remainder
	// instead of leaving them to the default fill.
	Fill bool

	Prefix      string
	PrefixColor Color
	Suffix      string
	SuffixColor Color

	NL bool // trailing newline
}

// DefaultBarlineOptions returns a 60-column bar over a total of 100.
func DefaultBarlineOptions() BarlineOptions {
	return BarlineOptions{
		Width:        60,
		Total:        100,
		Colors:       DefaultPalette,
		DefaultBG:    BGGray,
		SubtractText: true,
		PrefixColor:  FGWhite,
		SuffixColor:  FGWhite,
		NL:           true,
	}
}

// Validate checks everything that does not depend on the allocation.
func (o BarlineOptions) Validate() error {
	if o.Width < 0 {
		return fmt.Errorf("%w: width %d", ErrInvalidBudget, o.Width)
	}
	if err := CheckBG(o.DefaultBG); err != nil {
		return fmt.Errorf("default background: %w", err)
	}
	if err := CheckFG(o.PrefixColor); err != nil {
		return fmt.Errorf("prefix color: %w", err)
	}
	if err := CheckFG(o.SuffixColor); err != nil {
		return fmt.Errorf("suffix color: %w", err)
	}
	for i, p := range o.Colors {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("palette entry %d: %w", i, err)
		}
	}
	return nil
}

// budget is the column count left for segments.
func (o BarlineOptions) budget() (int, error) {
	width := o.Width
	if o.SubtractText {
		width -= VisibleLen(o.Prefix, true) + VisibleLen(o.Suffix, true)
	}
	if width < 0 {
		return 0, fmt.Errorf("%w: prefix and suffix need %d more columns than width %d",
			ErrInvalidBudget, -width, o.Width)
	}
	return width, nil
}

// colors resolves the color of every segment before anything is drawn.
func (o BarlineOptions) colors() ([]ColorPair, error) {
	out := AssignColors(o.Colors, len(o.Items))
	for i, seg := range o.Items {
		switch {
		case seg.Color != nil:
			out[i] = *seg.Color
		case o.ColorFn != nil:
			out[i] = o.ColorFn(i, seg)
		}
		if err := out[i].Validate(); err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
	}
	return out, nil
}

// BarlineLayout is the resolved geometry of a bar.
type BarlineLayout struct {
	Budget     int
	Allocation Allocation
	Colors     []ColorPair
}

// LayoutBarline validates opts and computes column counts and colors without
// drawing anything.
func LayoutBarline(opts BarlineOptions) (BarlineLayout, error) {
	if err := opts.Validate(); err != nil {
		return BarlineLayout{}, err
	}
	budget, err := opts.budget()
	if err != nil {
		return BarlineLayout{}, err
	}

	weights := make([]float64, len(opts.Items))
	for i, seg := range opts.Items {
		weights[i] = seg.Value
	}
	alloc, err := Allocate(budget, weights, opts.Total, opts.Fill)
	if err != nil {
		return BarlineLayout{}, err
	}

	colors, err := opts.colors()
	if err != nil {
		return BarlineLayout{}, err
	}

	return BarlineLayout{Budget: budget, Allocation: alloc, Colors: colors}, nil
}

// Barline draws a single-line stacked bar to w. Nothing is written if the
// options are invalid.
func (s *Styler) Barline(w io.Writer, opts BarlineOptions) error {
	out, err := s.RenderBarline(opts)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

// RenderBarline returns the bar as a string.
func (s *Styler) RenderBarline(opts BarlineOptions) (string, error) {
	layout, err := LayoutBarline(opts)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(s.wrap(opts.Prefix, opts.PrefixColor))

	for i, seg := range opts.Items {
		cols := layout.Allocation.Columns[i]
		if cols == 0 {
			continue
		}
		b.WriteString(s.StartPair(layout.Colors[i]))
		writeCells(&b, []rune(seg.Text), 0, cols)
		b.WriteString(s.End())
	}

	if rest := layout.Allocation.Rest; rest > 0 {
		b.WriteString(s.Start(opts.DefaultBG))
		writeCells(&b, []rune(opts.DefaultText), 0, rest)
		b.WriteString(s.End())
	}

	b.WriteString(s.wrap(opts.Suffix, opts.SuffixColor))
	if opts.NL {
		b.WriteByte('\n')
	}
	return b.String(), nil
}

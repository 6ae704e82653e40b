package ui

import (
	"fmt"
	"io"
	"strings"
)

// Header is a table column taking Percent of the table width.
type Header struct {
	Label   string
	Percent float64
}

// Row maps a header label to its cell text. Missing labels render empty.
type Row map[string]string

// Align controls where text sits inside its cell.
type Align int

const (
	AlignCenter Align = iota
	AlignLeft
)

// TableOptions configures Table.
type TableOptions struct {
	Width   int
	Headers []Header
	Rows    []Row

	// Strip measures cells with escape sequences ignored, so colored cell
	// text is not truncated early.
	Strip bool
	Align Align
}

// DefaultTableOptions returns a 60-column centered table.
func DefaultTableOptions() TableOptions {
	return TableOptions{
		Width: 60,
		Align: AlignCenter,
	}
}

// TableColumns allocates the table width across headers. Leftover columns are
// always distributed.
func TableColumns(width int, headers []Header) (Allocation, error) {
	percents := make([]float64, len(headers))
	for i, h := range headers {
		percents[i] = h.Percent
	}
	return Allocate(width, percents, 100, true)
}

// WriteTable draws the header line followed by one line per row to w.
// Nothing is written if the headers do not fit.
func WriteTable(w io.Writer, opts TableOptions) error {
	out, err := RenderTable(opts)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

// RenderTable returns the table as a string. Tables carry no colors of their
// own; colored cell text passes through.
func RenderTable(opts TableOptions) (string, error) {
	alloc, err := TableColumns(opts.Width, opts.Headers)
	if err != nil {
		return "", fmt.Errorf("table: %w", err)
	}

	var b strings.Builder
	for i, h := range opts.Headers {
		b.WriteString(fitCell(h.Label, alloc.Columns[i], opts.Strip, opts.Align))
	}

	for _, row := range opts.Rows {
		b.WriteByte('\n')
		for i, h := range opts.Headers {
			b.WriteString(fitCell(row[h.Label], alloc.Columns[i], opts.Strip, opts.Align))
		}
	}

	b.WriteByte('\n')
	return b.String(), nil
}

// fitCell truncates text to width and pads it to exactly width cells.
func fitCell(text string, width int, strip bool, align Align) string {
	text = truncate(text, width, strip)
	pad := width - VisibleLen(text, strip)
	if pad <= 0 {
		return text
	}

	left := 0
	if align == AlignCenter {
		left = pad / 2
	}
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", pad-left)
}

// padRight pads a string to the specified width.
func padRight(s string, width int) string {
	// Account for ANSI codes when calculating visible length
	visibleLen := VisibleLen(s, true)
	if visibleLen >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visibleLen)
}

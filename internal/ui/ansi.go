package ui

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
)

// ESC introduces a control sequence.
const ESC = "\x1b["

// Cursor and erase sequences used by the spinner.
const (
	CursorHide  = ESC + "?25l"
	CursorShow  = ESC + "?25h"
	StartOfLine = "\r"
	EraseLine   = ESC + "2K"

	reset = ESC + "0m"
)

// Strip removes ANSI escape sequences from s.
func Strip(s string) string {
	return ansi.Strip(s)
}

// VisibleLen is the single width measure used by every layout. With strip
// set, escape sequences are ignored and wide runes count as two cells;
// otherwise it is the rune count.
func VisibleLen(s string, strip bool) int {
	if strip {
		return ansi.StringWidth(s)
	}
	return utf8.RuneCountInString(s)
}

// truncate cuts s to at most n visible cells using the same measure as
// VisibleLen.
func truncate(s string, n int, strip bool) string {
	if n <= 0 {
		return ""
	}
	if VisibleLen(s, strip) <= n {
		return s
	}
	if strip {
		out := ansi.Truncate(s, n, "")
		if strings.Contains(out, "\x1b") {
			out += reset
		}
		return out
	}
	return string([]rune(s)[:n])
}

// writeCells writes exactly n cells, taking the i-th rune of text for cell i
// and a space once text runs out.
func writeCells(b *strings.Builder, text []rune, offset, n int) {
	for i := 0; i < n; i++ {
		if j := offset + i; j < len(text) {
			b.WriteRune(text[j])
		} else {
			b.WriteByte(' ')
		}
	}
}

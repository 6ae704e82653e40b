package ui

import (
	"io"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// ColorMode selects when escape sequences are emitted.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Styler wraps text in SGR color sequences for one output sink.
//
// Whether colors are on is decided once, when the Styler is built. A disabled
// Styler returns text untouched and emits no escape bytes at all, so output
// piped to a file is byte-for-byte the plain text. Color codes are validated
// either way.
type Styler struct {
	enabled bool
}

// NewStyler resolves mode against w. In auto mode colors are only used when w
// is a terminal and NO_COLOR is unset.
func NewStyler(w io.Writer, mode ColorMode) *Styler {
	switch mode {
	case ColorAlways:
		return &Styler{enabled: true}
	case ColorNever:
		return &Styler{enabled: false}
	default:
		return &Styler{enabled: IsTerminal(w) && !termenv.EnvNoColor()}
	}
}

// PlainStyler never emits escape sequences.
func PlainStyler() *Styler {
	return &Styler{}
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}

// TerminalWidth returns the column count of w, or fallback when w is not a
// terminal.
func TerminalWidth(w io.Writer, fallback int) int {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return fallback
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return fallback
	}
	return width
}

// Enabled reports whether escape sequences are emitted.
func (s *Styler) Enabled() bool {
	return s.enabled
}

// TextColor wraps text in a foreground color.
func (s *Styler) TextColor(fg Color, text string) (string, error) {
	if err := CheckFG(fg); err != nil {
		return "", err
	}
	return s.wrap(text, fg), nil
}

// BGColor wraps text in a background color.
func (s *Styler) BGColor(bg Color, text string) (string, error) {
	if err := CheckBG(bg); err != nil {
		return "", err
	}
	return s.wrap(text, bg), nil
}

// RedText, GreenText and YellowText are shorthands for status text.
func (s *Styler) RedText(text string) string    { return s.wrap(text, FGRed) }
func (s *Styler) GreenText(text string) string  { return s.wrap(text, FGGreen) }
func (s *Styler) YellowText(text string) string { return s.wrap(text, FGYellow) }

// Start returns the sequence that switches on the given codes. Codes must
// already be validated.
func (s *Styler) Start(codes ...Color) string {
	if !s.enabled || len(codes) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(ESC)
	for i, c := range codes {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(strconv.Itoa(int(c)))
	}
	b.WriteByte('m')
	return b.String()
}

// StartPair switches on a foreground/background pair.
func (s *Styler) StartPair(p ColorPair) string {
	return s.Start(p.FG, p.BG)
}

// End resets all attributes.
func (s *Styler) End() string {
	if !s.enabled {
		return ""
	}
	return reset
}

func (s *Styler) wrap(text string, c Color) string {
	if !s.enabled || text == "" {
		return text
	}
	return s.Start(c) + text + reset
}

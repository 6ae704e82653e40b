package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Semantic colors for CLI status lines, as ANSI codes for broad terminal
// compatibility.
const (
	ColorSuccess lipgloss.Color = "2" // Green
	ColorError   lipgloss.Color = "1" // Red
	ColorWarning lipgloss.Color = "3" // Yellow
	ColorInfo    lipgloss.Color = "6" // Cyan
)

// Text colors for content hierarchy
const (
	ColorPrimary   lipgloss.Color = "7" // White/default
	ColorSecondary lipgloss.Color = "4" // Blue
	ColorMuted     lipgloss.Color = "8" // Gray (bright black)
)

// SpinnerColors are cycled by the spinner animation.
var SpinnerColors = []lipgloss.Color{ColorInfo, ColorSecondary, ColorSuccess, ColorWarning}

// SuccessStyle returns the style for success messages.
func SuccessStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorSuccess)
}

// ErrorStyle returns the style for error messages.
func ErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorError)
}

// WarningStyle returns the style for warnings.
func WarningStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorWarning)
}

// MutedStyle returns the style for secondary text such as timings and paths.
func MutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorMuted)
}

// DisableColors switches lipgloss to monochrome output (--no-color, NO_COLOR).
func DisableColors() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// PrintWarning writes a warning line to w, usually the command's stderr.
func PrintWarning(w io.Writer, msg string) {
	fmt.Fprintln(w, WarningStyle().Render(SymbolWarning+" "+msg))
}

// Color is an SGR color parameter as written inside "ESC [ <n> m".
type Color int

// Foreground colors.
const (
	FGBlack Color = iota + 30
	FGRed
	FGGreen
	FGYellow
	FGBlue
	FGMagenta
	FGCyan
	FGWhite
)

// Bright foreground colors.
const (
	FGBlackBright Color = iota + 90
	FGRedBright
	FGGreenBright
	FGYellowBright
	FGBlueBright
	FGMagentaBright
	FGCyanBright
	FGWhiteBright

	FGGray = FGBlackBright
	FGGrey = FGBlackBright
)

// Background colors.
const (
	BGBlack Color = iota + 40
	BGRed
	BGGreen
	BGYellow
	BGBlue
	BGMagenta
	BGCyan
	BGWhite
)

// Bright background colors.
const (
	BGBlackBright Color = iota + 100
	BGRedBright
	BGGreenBright
	BGYellowBright
	BGBlueBright
	BGMagentaBright
	BGCyanBright
	BGWhiteBright

	BGGray = BGBlackBright
	BGGrey = BGBlackBright
)

var colorNames = []string{"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white"}

// IsFG reports whether c is a supported foreground color.
func (c Color) IsFG() bool {
	return (c >= FGBlack && c <= FGWhite) || (c >= FGBlackBright && c <= FGWhiteBright)
}

// IsBG reports whether c is a supported background color.
func (c Color) IsBG() bool {
	return (c >= BGBlack && c <= BGWhite) || (c >= BGBlackBright && c <= BGWhiteBright)
}

func (c Color) String() string {
	var base Color
	var bright bool
	switch {
	case c >= FGBlack && c <= FGWhite:
		base = FGBlack
	case c >= FGBlackBright && c <= FGWhiteBright:
		base, bright = FGBlackBright, true
	case c >= BGBlack && c <= BGWhite:
		base = BGBlack
	case c >= BGBlackBright && c <= BGWhiteBright:
		base, bright = BGBlackBright, true
	default:
		return fmt.Sprintf("color(%d)", int(c))
	}
	name := colorNames[c-base]
	if bright {
		name += "-bright"
	}
	return name
}

// CheckFG returns ErrInvalidColor unless c is a foreground color.
func CheckFG(c Color) error {
	if !c.IsFG() {
		return fmt.Errorf("%w: %d is not a foreground color", ErrInvalidColor, int(c))
	}
	return nil
}

// CheckBG returns ErrInvalidColor unless c is a background color.
func CheckBG(c Color) error {
	if !c.IsBG() {
		return fmt.Errorf("%w: %d is not a background color", ErrInvalidColor, int(c))
	}
	return nil
}

// ParseColor maps a name like "green", "cyan-bright" or "gray" to its
// foreground (bg=false) or background code.
func ParseColor(name string, bg bool) (Color, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "gray" || name == "grey" {
		name = "black-bright"
	}

	bright := strings.HasSuffix(name, "-bright")
	name = strings.TrimSuffix(name, "-bright")

	for i, n := range colorNames {
		if n != name {
			continue
		}
		c := FGBlack + Color(i)
		if bright {
			c += FGBlackBright - FGBlack
		}
		if bg {
			c += BGBlack - FGBlack
		}
		return c, nil
	}
	return 0, fmt.Errorf("%w: unknown color name %q", ErrInvalidColor, name)
}

// ColorPair is the foreground/background combination for one segment.
type ColorPair struct {
	FG Color
	BG Color
}

// Validate checks both halves of the pair.
func (p ColorPair) Validate() error {
	if err := CheckFG(p.FG); err != nil {
		return err
	}
	return CheckBG(p.BG)
}

// DefaultPalette is used when a bar has no palette of its own.
var DefaultPalette = []ColorPair{
	{FG: FGBlack, BG: BGGreen},
	{FG: FGBlack, BG: BGYellow},
	{FG: FGBlack, BG: BGCyan},
	{FG: FGWhite, BG: BGBlue},
	{FG: FGWhite, BG: BGMagenta},
	{FG: FGWhite, BG: BGRed},
}

// ParsePalette reads palette entries written as "bg" or "fg/bg", for example
// "green" or "white/blue". A bare background gets a black foreground, or
// white on the dark backgrounds blue, magenta, red and black.
func ParsePalette(names []string) ([]ColorPair, error) {
	out := make([]ColorPair, 0, len(names))
	for _, name := range names {
		fgName, bgName, hasFG := strings.Cut(name, "/")
		if !hasFG {
			bgName = fgName
		}

		bg, err := ParseColor(bgName, true)
		if err != nil {
			return nil, err
		}

		fg := FGBlack
		switch bg {
		case BGBlack, BGBlue, BGMagenta, BGRed:
			fg = FGWhite
		}
		if hasFG {
			if fg, err = ParseColor(fgName, false); err != nil {
				return nil, err
			}
		}
		out = append(out, ColorPair{FG: fg, BG: bg})
	}
	return out, nil
}

// AssignColors precomputes a round-robin color sequence of length n.
// An empty palette falls back to DefaultPalette.
func AssignColors(palette []ColorPair, n int) []ColorPair {
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	out := make([]ColorPair, n)
	for i := range out {
		out[i] = palette[i%len(palette)]
	}
	return out
}

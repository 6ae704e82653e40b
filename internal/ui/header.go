package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HeaderInfo contains information to display in the header.
type HeaderInfo struct {
	Title   string // e.g. "chain status"
	Network string
	Target  string // URL the data came from
}

// HeaderWidth is the default width of the header divider
const HeaderWidth = 50

// RenderHeader renders a title line, an optional source line and a divider.
func RenderHeader(info HeaderInfo) string {
	titleStyle := lipgloss.NewStyle().Foreground(ColorInfo).Bold(true)
	networkStyle := lipgloss.NewStyle().Foreground(ColorSecondary)

	var output strings.Builder

	output.WriteString(titleStyle.Render(info.Title))
	if info.Network != "" {
		output.WriteString(" ")
		output.WriteString(networkStyle.Render("(" + info.Network + ")"))
	}
	output.WriteString("\n")

	if info.Target != "" {
		output.WriteString(MutedStyle().Render(info.Target))
		output.WriteString("\n")
	}

	output.WriteString(MutedStyle().Render(strings.Repeat("━", HeaderWidth)))
	output.WriteString("\n")

	return output.String()
}

// PrintHeader writes the header to w.
func PrintHeader(w io.Writer, info HeaderInfo) {
	fmt.Fprint(w, RenderHeader(info))
}

// KeyValue is one line of a RenderKeyValues listing.
type KeyValue struct {
	Key   string
	Value string
}

// RenderKeyValues lines up keys in a column, one pair per line.
func RenderKeyValues(pairs []KeyValue) string {
	width := 0
	for _, p := range pairs {
		if n := VisibleLen(p.Key, true); n > width {
			width = n
		}
	}

	var b strings.Builder
	for _, p := range pairs {
		b.WriteString("  ")
		b.WriteString(MutedStyle().Render(padRight(p.Key, width+2)))
		b.WriteString(p.Value)
		b.WriteByte('\n')
	}
	return b.String()
}

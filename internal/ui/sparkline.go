package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// sparkRunes are the eight bar heights, lowest first.
var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// RenderSparkline draws the last width values of data as bar characters
// scaled between the smallest and largest of them. A flat series sits at
// mid height. An empty color leaves the line unstyled.
func RenderSparkline(data []float64, width int, color lipgloss.Color) string {
	if len(data) == 0 || width <= 0 {
		return ""
	}
	if len(data) > width {
		data = data[len(data)-width:]
	}

	lo, hi := data[0], data[0]
	for _, v := range data {
		lo = min(lo, v)
		hi = max(hi, v)
	}

	top := len(sparkRunes) - 1
	var sb strings.Builder
	for _, v := range data {
		level := len(sparkRunes) / 2
		if hi > lo {
			level = int((v - lo) / (hi - lo) * float64(top))
			level = min(max(level, 0), top)
		}
		sb.WriteRune(sparkRunes[level])
	}

	if color == "" {
		return sb.String()
	}
	return lipgloss.NewStyle().Foreground(color).Render(sb.String())
}

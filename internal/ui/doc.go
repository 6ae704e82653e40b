// Package ui renders hswu's terminal output: proportional bars, tables,
// colored strips, status headers, a spinner for long fetches and the
// refresh indicator of watch mode.
//
// # Column Allocation
//
// Every layout starts from a fixed column budget. Allocate splits that budget
// among weighted segments with the largest-remainder method: each segment
// gets floor(budget*weight/total) columns and, when filling, the leftover
// columns go one at a time to the largest fractional remainders (ties to the
// earlier segment). The result is deterministic for identical inputs.
//
//	a, _ := ui.Allocate(10, []float64{34, 33, 33}, 100, true)
//	// a.Columns == [4 3 3], a.Rest == 0
//
// Weights above the total fail with ErrOverBudget and a negative budget with
// ErrInvalidBudget, in both cases before anything is written.
//
// # Widgets
//
//	Barline     - stacked bar, one colored run per segment, gray fill for the rest
//	Table       - columns sized by header percentage, cells truncated and centered
//	Block       - a single full-width colored strip
//	OverlapBox  - a colored box over part of a line of text
//	Sparkline   - a series scaled onto eight bar heights
//
// Widgets build their output in memory and write it in one call, so a
// failing layout never leaves half a line on the terminal.
//
// # Colors
//
// Widget colors are raw SGR codes (FGGreen, BGGray, ...) wrapped by a
// Styler. NewStyler decides once whether escapes are used: in auto mode only
// for a terminal with NO_COLOR unset. A disabled Styler passes text through
// untouched, so piped output never contains escape bytes.
//
// Status lines use lipgloss styles (SuccessStyle, ErrorStyle, MutedStyle);
// DisableColors switches lipgloss to plain output for --no-color.
//
// # Width Measurement
//
// VisibleLen is the one width function used everywhere. With strip set it
// ignores escape sequences (so colored cell text measures by what is seen),
// otherwise it counts runes.
package ui

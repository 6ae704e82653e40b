package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// RefreshFrames are the spinner frames shown while a refresh is in flight.
var RefreshFrames = spinner.Spinner{
	Frames: []string{"◐", "◓", "◑", "◒"},
	FPS:    time.Second / 10,
}

// RefreshState is the state of a RefreshIndicator.
type RefreshState int

const (
	RefreshIdle RefreshState = iota
	RefreshFetching
	RefreshOK
	RefreshFailed
)

// RefreshIndicator is a Bubble Tea component for the footer of a view that
// refetches periodically: a spinner while fetching, then the time of the last
// successful update or the last error.
type RefreshIndicator struct {
	spinner spinner.Model

	State       RefreshState
	LastUpdate  time.Time
	LastError   string
	LastElapsed time.Duration

	started time.Time
}

// NewRefreshIndicator creates an idle indicator.
func NewRefreshIndicator() RefreshIndicator {
	sp := spinner.New()
	sp.Spinner = RefreshFrames
	sp.Style = lipgloss.NewStyle().Foreground(ColorSecondary)
	return RefreshIndicator{spinner: sp}
}

// Begin marks a fetch as started and returns the spinner tick.
func (r *RefreshIndicator) Begin(now time.Time) tea.Cmd {
	r.State = RefreshFetching
	r.started = now
	return r.spinner.Tick
}

// Done records the outcome of the fetch started by Begin.
func (r *RefreshIndicator) Done(now time.Time, err error) {
	r.LastElapsed = now.Sub(r.started)
	if err != nil {
		r.State = RefreshFailed
		r.LastError = err.Error()
		return
	}
	r.State = RefreshOK
	r.LastUpdate = now
	r.LastError = ""
}

// Update advances the spinner while fetching.
func (r RefreshIndicator) Update(msg tea.Msg) (RefreshIndicator, tea.Cmd) {
	if r.State != RefreshFetching {
		return r, nil
	}
	if tick, ok := msg.(spinner.TickMsg); ok {
		var cmd tea.Cmd
		r.spinner, cmd = r.spinner.Update(tick)
		return r, cmd
	}
	return r, nil
}

// View renders the indicator line.
func (r RefreshIndicator) View() string {
	switch r.State {
	case RefreshFetching:
		return r.spinner.View() + " refreshing..."
	case RefreshOK:
		return SuccessStyle().Render(SymbolComplete) + " updated " + r.LastUpdate.Format("15:04:05") +
			" " + MutedStyle().Render(formatDuration(r.LastElapsed))
	case RefreshFailed:
		line := ErrorStyle().Render(SymbolFail) + " " + r.LastError
		if !r.LastUpdate.IsZero() {
			line += MutedStyle().Render(" (last update " + r.LastUpdate.Format("15:04:05") + ")")
		}
		return line
	default:
		return MutedStyle().Render(SymbolPending + " waiting")
	}
}

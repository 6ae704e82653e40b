package ui

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// SpinnerState represents the current state of a spinner.
type SpinnerState int

const (
	SpinnerPending SpinnerState = iota
	SpinnerInProgress
	SpinnerSuccess
	SpinnerFailed
)

var spinnerFrames = []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}

// Spinner shows an animated label while a dump is fetched, with an optional
// detail (element count, bytes) that can be updated while it spins.
//
// When the output is not a terminal the animation is skipped and only the
// final line is written.
type Spinner struct {
	mu        sync.Mutex
	label     string
	detail    string
	state     SpinnerState
	frame     int
	startTime time.Time
	stopChan  chan struct{}
	doneChan  chan struct{}
	w         io.Writer
	animate   bool
	running   bool
	drawn     bool
}

// NewSpinner creates a spinner writing to w.
func NewSpinner(w io.Writer, label string) *Spinner {
	return &Spinner{
		label:   label,
		state:   SpinnerPending,
		w:       w,
		animate: IsTerminal(w),
	}
}

// SetAnimate overrides terminal detection.
func (s *Spinner) SetAnimate(animate bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.animate = animate
}

// Start begins the spinner animation.
func (s *Spinner) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.state = SpinnerInProgress
	s.startTime = time.Now()
	s.stopChan = make(chan struct{})
	s.doneChan = make(chan struct{})
	animate := s.animate
	if animate {
		fmt.Fprint(s.w, CursorHide)
	}
	s.mu.Unlock()

	if !animate {
		close(s.doneChan)
		return
	}

	s.render()
	go s.loop()
}

// Stop halts the animation without changing state.
func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stopChan)
	s.mu.Unlock()

	<-s.doneChan
}

// Success stops the spinner and marks it as successful.
func (s *Spinner) Success() {
	s.finish(SpinnerSuccess)
}

// Fail stops the spinner and marks it as failed.
func (s *Spinner) Fail() {
	s.finish(SpinnerFailed)
}

// State returns the current spinner state.
func (s *Spinner) State() SpinnerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SetDetail updates the text shown after the label.
func (s *Spinner) SetDetail(detail string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.detail = detail
}

func (s *Spinner) finish(state SpinnerState) {
	s.Stop()
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
	s.renderFinal()
}

func (s *Spinner) loop() {
	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()
	defer close(s.doneChan)

	for {
		select {
		case <-s.stopChan:
			s.mu.Lock()
			fmt.Fprint(s.w, CursorShow)
			s.mu.Unlock()
			return
		case <-ticker.C:
			s.mu.Lock()
			s.frame = (s.frame + 1) % len(spinnerFrames)
			s.mu.Unlock()
			s.render()
		}
	}
}

func (s *Spinner) render() {
	s.mu.Lock()
	defer s.mu.Unlock()

	color := SpinnerColors[(s.frame/2)%len(SpinnerColors)]
	symbol := lipgloss.NewStyle().Foreground(color).Render(spinnerFrames[s.frame])

	line := fmt.Sprintf("%s %s...", symbol, s.label)
	if s.detail != "" {
		line += " " + MutedStyle().Render(s.detail)
	}

	fmt.Fprint(s.w, StartOfLine+EraseLine+line)
	s.drawn = true
}

func (s *Spinner) renderFinal() {
	s.mu.Lock()
	defer s.mu.Unlock()

	var symbol string
	var style lipgloss.Style
	switch s.state {
	case SpinnerSuccess:
		symbol, style = SymbolComplete, SuccessStyle()
	case SpinnerFailed:
		symbol, style = SymbolFail, ErrorStyle()
	default:
		symbol, style = SymbolPending, MutedStyle()
	}

	if s.drawn {
		fmt.Fprint(s.w, StartOfLine+EraseLine)
	}

	line := style.Render(symbol) + " " + s.label
	if s.detail != "" {
		line += " " + s.detail
	}
	fmt.Fprintf(s.w, "%s %s\n", line, MutedStyle().Render(formatDuration(time.Since(s.startTime))))
}

// formatDuration formats a duration for display (e.g., "0.3s", "1.2s").
func formatDuration(d time.Duration) string {
	secs := d.Seconds()
	if secs < 0.1 {
		return fmt.Sprintf("%.2fs", secs)
	}
	return fmt.Sprintf("%.1fs", secs)
}

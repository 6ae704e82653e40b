package cli

import (
	"context"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nodech/hsw-wallet-utils/internal/ui"
	"github.com/spf13/cobra"
)

const defaultWatchInterval = 5 * time.Second

type (
	watchTickMsg struct {
		at  time.Time
		seq int
	}
	watchFetchMsg struct {
		status *StatusOutput
		err    error
		at     time.Time
	}
)

// watchFetcher produces one status snapshot.
type watchFetcher func(ctx context.Context) (*StatusOutput, error)

// watchModel redraws the status view after every fetch.
type watchModel struct {
	ctx      context.Context
	fetch    watchFetcher
	interval time.Duration
	styler   *ui.Styler
	width    int
	// fixed keeps width when the terminal is resized (ui.width set)
	fixed bool

	status    *StatusOutput
	body      string
	indicator ui.RefreshIndicator
	fetching  bool
	quitting  bool

	// seq identifies the pending tick; stale ticks left over from a manual
	// refresh are dropped.
	seq int
}

func newWatchModel(ctx context.Context, fetch watchFetcher, interval time.Duration, styler *ui.Styler, width int) watchModel {
	return watchModel{
		ctx:       ctx,
		fetch:     fetch,
		interval:  interval,
		styler:    styler,
		width:     width,
		indicator: ui.NewRefreshIndicator(),
	}
}

func (m watchModel) Init() tea.Cmd {
	return func() tea.Msg { return watchTickMsg{at: time.Now()} }
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "r":
			return m.startFetch(time.Now())
		}

	case tea.WindowSizeMsg:
		if !m.fixed && msg.Width > 0 {
			m.width = msg.Width
			m.render()
		}

	case watchTickMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		return m.startFetch(msg.at)

	case watchFetchMsg:
		m.fetching = false
		m.indicator.Done(msg.at, msg.err)
		if msg.err == nil {
			m.status = msg.status
			m.render()
		}
		m.seq++
		return m, m.tickCmd()

	default:
		var cmd tea.Cmd
		m.indicator, cmd = m.indicator.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m watchModel) View() string {
	if m.quitting {
		return ""
	}
	return m.body + "\n" + m.indicator.View() + ui.MutedStyle().Render("  r refresh · q quit") + "\n"
}

// startFetch begins a fetch unless one is already running.
func (m watchModel) startFetch(now time.Time) (tea.Model, tea.Cmd) {
	if m.fetching {
		return m, nil
	}
	m.fetching = true
	tick := m.indicator.Begin(now)
	return m, tea.Batch(tick, m.fetchCmd())
}

func (m watchModel) fetchCmd() tea.Cmd {
	ctx, fetch := m.ctx, m.fetch
	return func() tea.Msg {
		st, err := fetch(ctx)
		return watchFetchMsg{status: st, err: err, at: time.Now()}
	}
}

func (m watchModel) tickCmd() tea.Cmd {
	seq := m.seq
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return watchTickMsg{at: t, seq: seq}
	})
}

// render caches the status body so View stays cheap between fetches.
func (m *watchModel) render() {
	if m.status == nil {
		return
	}
	body, err := renderStatus(m.styler, m.width, m.status)
	if err != nil {
		m.body = ui.ErrorStyle().Render(ui.SymbolFail + " " + err.Error())
		return
	}
	m.body = body
}

// watchCommand runs the status view full screen until interrupted.
func watchCommand(cmd *cobra.Command, interval time.Duration) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	// the alt screen owns the terminal, so dump warnings are dropped
	fetch := func(ctx context.Context) (*StatusOutput, error) {
		return collectStatus(ctx, cfg, io.Discard)
	}

	model := newWatchModel(ctx, fetch, interval, newStyler(cfg, os.Stdout), outputWidth(cfg, os.Stdout))
	model.fixed = cfg.UI.Width > 0
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	if ctx.Err() != nil {
		return nil
	}
	return err
}

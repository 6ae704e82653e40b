package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/nodech/hsw-wallet-utils/internal/client"
	"github.com/nodech/hsw-wallet-utils/internal/config"
	"github.com/nodech/hsw-wallet-utils/internal/dump"
	"github.com/nodech/hsw-wallet-utils/internal/errors"
	"github.com/nodech/hsw-wallet-utils/internal/paths"
	"github.com/nodech/hsw-wallet-utils/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// StatusOutput represents the JSON output for status command.
type StatusOutput struct {
	Network    string          `json:"network"`
	Node       NodeStatus      `json:"node"`
	Wallet     WalletStatus    `json:"wallet"`
	DumpDir    string          `json:"dump_dir"`
	BlockTimes *CoverageStatus `json:"blocktimes,omitempty"`
}

// NodeStatus is the chain state reported by the node.
type NodeStatus struct {
	URL        string  `json:"url"`
	Chain      string  `json:"chain"`
	Height     int64   `json:"height"`
	Headers    int64   `json:"headers"`
	BestHash   string  `json:"best_hash"`
	MedianTime int64   `json:"median_time"`
	Progress   float64 `json:"progress"`
	Pruned     bool    `json:"pruned"`
}

// WalletStatus reports whether the wallet answers and has the names plugin.
type WalletStatus struct {
	URL         string `json:"url"`
	NamesPlugin bool   `json:"names_plugin"`
	Error       string `json:"error,omitempty"`
}

// CoverageStatus describes how much of the chain blocktimes.json covers.
type CoverageStatus struct {
	Path     string  `json:"path"`
	From     int64   `json:"from"`
	To       int64   `json:"to"`
	Count    int     `json:"count"`
	Coverage float64 `json:"coverage"`
	// Intervals are the seconds between the most recent dumped blocks.
	Intervals []int64 `json:"intervals,omitempty"`
}

// intervalSpan is how many recent block intervals status shows.
const intervalSpan = 32

// statusCommand implements the status command logic.
func statusCommand(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	st, err := collectStatus(cmd.Context(), cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if MachineMode() {
		return WriteJSONSuccess(out, st)
	}

	text, err := renderStatus(newStyler(cfg, out), outputWidth(cfg, out), st)
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, text)
	return err
}

// collectStatus queries node and wallet concurrently. A node failure fails the
// whole status; a wallet failure is reported in WalletStatus.Error. Warnings
// about the local dump go to errOut.
func collectStatus(ctx context.Context, cfg *config.Config, errOut io.Writer) (*StatusOutput, error) {
	opts := client.OptionsFromConfig(cfg)

	node := client.NewNode(cfg.NodeEndpoint(), opts)
	defer node.Close()

	wallet, err := client.NewWallet(cfg.WalletEndpoint(), opts)
	if err != nil {
		return nil, err
	}

	st := &StatusOutput{
		Network: cfg.Network,
		DumpDir: cfg.Dump.Dir,
		Node:    NodeStatus{URL: node.URL()},
		Wallet:  WalletStatus{URL: wallet.URL()},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		info, err := node.GetBlockchainInfo(gctx)
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrRPC,
				"Cannot reach the node at "+node.URL(),
				"Check that hsd is running and that --network and api_key match it")
		}
		st.Node.Chain = info.Chain
		st.Node.Height = info.Blocks
		st.Node.Headers = info.Headers
		st.Node.BestHash = info.BestBlockHash
		st.Node.MedianTime = info.MedianTime
		st.Node.Progress = info.VerificationProgress
		st.Node.Pruned = info.Pruned
		return nil
	})
	g.Go(func() error {
		has, err := wallet.HasNamesPlugin(gctx)
		if err != nil {
			st.Wallet.Error = err.Error()
			return nil
		}
		st.Wallet.NamesPlugin = has
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	st.BlockTimes = blockTimesCoverage(errOut, paths.BlockTimesFile(cfg.Dump.Dir), st.Node.Height)
	return st, nil
}

// blockTimesCoverage loads the blocktimes dump, if one exists, and relates it
// to the chain height. Unreadable files are treated as absent.
func blockTimesCoverage(errOut io.Writer, path string, height int64) *CoverageStatus {
	table, err := dump.LoadBlockTimes(path)
	if err != nil {
		if !os.IsNotExist(err) {
			ui.PrintWarning(errOut, fmt.Sprintf("ignoring %s: %v", path, err))
		}
		return nil
	}

	cov := &CoverageStatus{Path: path, Count: table.Len(), Intervals: table.Intervals(intervalSpan)}
	if lo, hi, ok := table.Range(); ok {
		cov.From, cov.To = lo, hi
	}
	if height >= 0 {
		cov.Coverage = float64(cov.Count) / float64(height+1)
		if cov.Coverage > 1 {
			cov.Coverage = 1
		}
	}
	return cov
}

// renderStatus lays the status out as a chain strip, two progress boxes and a
// key/value list.
func renderStatus(styler *ui.Styler, width int, st *StatusOutput) (string, error) {
	var b strings.Builder

	b.WriteString(ui.RenderHeader(ui.HeaderInfo{Title: "chain status", Network: st.Network, Target: st.Node.URL}))

	block := ui.DefaultBlockOptions()
	block.Width = width
	block.BG = ui.BGBlue
	block.FG = ui.FGWhite
	block.Text = fmt.Sprintf(" %s  height %s", st.Node.Chain, humanize.Comma(st.Node.Height))
	line, err := styler.RenderBlock(block)
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrRender, "Cannot draw status", "Try a wider --width")
	}
	b.WriteString(line)

	sync := ui.DefaultOverlapBoxOptions()
	sync.Width = width
	sync.BoxPercent = clampUnit(st.Node.Progress)
	sync.BoxColor = ui.BGGreen
	sync.Text = fmt.Sprintf(" sync %.2f%%  headers %s", st.Node.Progress*100, humanize.Comma(st.Node.Headers))
	line, err = styler.RenderOverlapBox(sync)
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrRender, "Cannot draw status", "Try a wider --width")
	}
	b.WriteString(line)

	if st.BlockTimes != nil {
		cov := ui.DefaultOverlapBoxOptions()
		cov.Width = width
		cov.BoxPercent = clampUnit(st.BlockTimes.Coverage)
		cov.BoxColor = ui.BGCyan
		cov.Text = fmt.Sprintf(" blocktimes %s..%s  %.1f%%",
			humanize.Comma(st.BlockTimes.From), humanize.Comma(st.BlockTimes.To), st.BlockTimes.Coverage*100)
		line, err = styler.RenderOverlapBox(cov)
		if err != nil {
			return "", errors.WrapWithCode(err, errors.ErrRender, "Cannot draw status", "Try a wider --width")
		}
		b.WriteString(line)
	}

	b.WriteString("\n")
	b.WriteString(ui.RenderKeyValues(statusPairs(st)))
	return b.String(), nil
}

func statusPairs(st *StatusOutput) []ui.KeyValue {
	plugin := ui.SuccessStyle().Render(ui.SymbolSuccess + " loaded")
	switch {
	case st.Wallet.Error != "":
		plugin = ui.ErrorStyle().Render(ui.SymbolFail + " " + st.Wallet.Error)
	case !st.Wallet.NamesPlugin:
		plugin = ui.WarningStyle().Render(ui.SymbolWarning + " not loaded")
	}

	blocktimes := ui.MutedStyle().Render("none (hswu dump blocktimes)")
	if st.BlockTimes != nil {
		blocktimes = fmt.Sprintf("%s blocks in %s", humanize.Comma(int64(st.BlockTimes.Count)), st.BlockTimes.Path)
	}

	pairs := []ui.KeyValue{
		{Key: "best hash", Value: st.Node.BestHash},
		{Key: "median time", Value: time.Unix(st.Node.MedianTime, 0).UTC().Format(time.RFC3339)},
	}
	if st.Node.Pruned {
		pairs = append(pairs, ui.KeyValue{Key: "pruned", Value: "yes"})
	}
	pairs = append(pairs,
		ui.KeyValue{Key: "wallet", Value: st.Wallet.URL},
		ui.KeyValue{Key: "names plugin", Value: plugin},
		ui.KeyValue{Key: "dump dir", Value: st.DumpDir},
		ui.KeyValue{Key: "blocktimes", Value: blocktimes},
	)
	if st.BlockTimes != nil && len(st.BlockTimes.Intervals) > 0 {
		pairs = append(pairs, ui.KeyValue{Key: "block intervals", Value: intervalsLine(st.BlockTimes.Intervals)})
	}
	return pairs
}

// intervalsLine shows recent block intervals as a sparkline and their mean.
func intervalsLine(intervals []int64) string {
	values := make([]float64, len(intervals))
	var sum int64
	for i, v := range intervals {
		values[i] = float64(v)
		sum += v
	}
	mean := time.Duration(sum/int64(len(intervals))) * time.Second
	return ui.RenderSparkline(values, intervalSpan, ui.ColorInfo) + "  " +
		ui.MutedStyle().Render("avg "+mean.String())
}

func clampUnit(x float64) float64 {
	switch {
	case x < 0:
		return 0
	case x > 1:
		return 1
	}
	return x
}

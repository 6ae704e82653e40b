package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/nodech/hsw-wallet-utils/internal/dump"
	"github.com/nodech/hsw-wallet-utils/internal/errors"
	"github.com/nodech/hsw-wallet-utils/internal/ui"
	"github.com/spf13/cobra"
)

// SummaryOptions holds options for the summary command.
type SummaryOptions struct {
	Path     string
	By       string
	Weight   string
	Top      int
	Encoding EncodingFlags
}

// SummaryOutput is the --json result of the summary command.
type SummaryOutput struct {
	Path   string         `json:"path"`
	By     string         `json:"by"`
	Weight string         `json:"weight,omitempty"`
	Count  int            `json:"count"`
	Total  float64        `json:"total"`
	Groups []SummaryGroup `json:"groups"`
}

// SummaryGroup is one row of SummaryOutput.
type SummaryGroup struct {
	Key    string  `json:"key"`
	Count  int     `json:"count"`
	Weight float64 `json:"weight"`
}

func summaryCommand(cmd *cobra.Command, opts SummaryOptions) error {
	if err := ValidateEncoding(opts.Encoding); err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	dec, closer, err := dump.OpenArray(opts.Path, opts.Encoding.Streamed(cfg.Dump.Streamed), opts.Encoding.Auto)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrDump,
			"Cannot open "+opts.Path,
			"Check the path; dumps live under "+cfg.Dump.Dir)
	}
	defer closer.Close()

	s, err := dump.Summarize(dec, dump.SummaryOptions{By: opts.By, Weight: opts.Weight})
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrDump,
			"Cannot summarize "+opts.Path,
			"If the file was written with the other encoding, pass --auto")
	}

	groups := s.Top(opts.Top)
	out := cmd.OutOrStdout()

	if MachineMode() {
		return WriteJSONSuccess(out, newSummaryOutput(opts.Path, s, groups))
	}

	ui.PrintHeader(out, ui.HeaderInfo{Title: "summary by " + opts.By, Target: opts.Path})
	palette, err := ui.ParsePalette(cfg.UI.Colors)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, "Invalid ui.colors", "Use color names like green or white/blue")
	}
	return renderSummary(out, newStyler(cfg, out), outputWidth(cfg, out), palette, s, groups)
}

func newSummaryOutput(path string, s *dump.Summary, groups []dump.Group) SummaryOutput {
	res := SummaryOutput{
		Path:   path,
		By:     s.By,
		Weight: s.WeightBy,
		Count:  s.Count,
		Total:  s.Total,
		Groups: make([]SummaryGroup, len(groups)),
	}
	for i, g := range groups {
		res.Groups[i] = SummaryGroup{Key: g.Key, Count: g.Count, Weight: g.Weight}
	}
	return res
}

// renderSummary draws the groups as one bar followed by a table whose key
// column doubles as the bar's legend.
func renderSummary(w io.Writer, styler *ui.Styler, width int, palette []ui.ColorPair, s *dump.Summary, groups []dump.Group) error {
	if s.Count == 0 {
		fmt.Fprintln(w, ui.MutedStyle().Render("(empty dump)"))
		return nil
	}

	colors := ui.AssignColors(palette, len(groups))

	if s.Total > 0 {
		bar := ui.DefaultBarlineOptions()
		bar.Width = width
		bar.Total = s.Total
		bar.Fill = true
		bar.Colors = colors
		for _, g := range groups {
			bar.Items = append(bar.Items, ui.Segment{Value: g.Weight, Text: g.Key})
		}
		if err := styler.Barline(w, bar); err != nil {
			return errors.WrapWithCode(err, errors.ErrRender, "Cannot draw the summary bar", "Try a wider --width")
		}
		fmt.Fprintln(w)
	}

	table := ui.DefaultTableOptions()
	table.Width = width
	table.Align = ui.AlignLeft
	table.Strip = true
	keyLabel, weightLabel := columnLabels(s.By, s.WeightBy)
	if s.WeightBy != "" {
		table.Headers = []ui.Header{{Label: keyLabel, Percent: 40}, {Label: "count", Percent: 20}, {Label: weightLabel, Percent: 25}, {Label: "share", Percent: 15}}
	} else {
		table.Headers = []ui.Header{{Label: keyLabel, Percent: 50}, {Label: "count", Percent: 30}, {Label: "share", Percent: 20}}
	}

	for i, g := range groups {
		key := g.Key
		if styler.Enabled() {
			key = styler.StartPair(colors[i]) + " " + styler.End() + " " + key
		}
		row := ui.Row{
			keyLabel: key,
			"count":  humanize.Comma(int64(g.Count)),
			"share":  formatShare(g.Weight, s.Total),
		}
		if s.WeightBy != "" {
			row[weightLabel] = humanize.Commaf(g.Weight)
		}
		table.Rows = append(table.Rows, row)
	}

	if err := ui.WriteTable(w, table); err != nil {
		return errors.WrapWithCode(err, errors.ErrRender, "Cannot draw the summary table", "Try a wider --width")
	}

	fmt.Fprintf(w, "\n%s\n", ui.MutedStyle().Render(fmt.Sprintf("%s elements, total %s",
		humanize.Comma(int64(s.Count)), humanize.Commaf(s.Total))))
	return nil
}

// columnLabels names the key and weight columns after their fields, falling
// back to "key" and "weight" when a field name clashes with a fixed column.
func columnLabels(by, weight string) (string, string) {
	keyLabel, weightLabel := by, weight
	if keyLabel == "count" || keyLabel == "share" || keyLabel == weight {
		keyLabel = "key"
	}
	if weightLabel == "count" || weightLabel == "share" || weightLabel == keyLabel {
		weightLabel = "weight"
	}
	return keyLabel, weightLabel
}

func formatShare(weight, total float64) string {
	if total <= 0 {
		return "-"
	}
	return strconv.FormatFloat(weight/total*100, 'f', 1, 64) + "%"
}

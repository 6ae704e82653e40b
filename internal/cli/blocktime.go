package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/nodech/hsw-wallet-utils/internal/dump"
	"github.com/nodech/hsw-wallet-utils/internal/errors"
	"github.com/nodech/hsw-wallet-utils/internal/paths"
	"github.com/nodech/hsw-wallet-utils/internal/ui"
	"github.com/spf13/cobra"
)

// BlockTimeOutput is one --json entry of the blocktime command.
type BlockTimeOutput struct {
	Height int64  `json:"height"`
	Found  bool   `json:"found"`
	Time   int64  `json:"time,omitempty"`
	Hash   string `json:"hash,omitempty"`
}

// blockTimeCommand prints the dumped time of each height. Any height missing
// from the dump makes the command exit 1 after printing the rest.
func blockTimeCommand(cmd *cobra.Command, args []string) error {
	heights := make([]int64, len(args))
	for i, arg := range args {
		h, err := ParseHeight(arg)
		if err != nil {
			return err
		}
		heights[i] = h
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	path := paths.BlockTimesFile(cfg.Dump.Dir)
	table, err := dump.LoadBlockTimes(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.New(errors.ErrDump,
				"No blocktimes dump at "+path,
				"Run 'hswu dump blocktimes' first")
		}
		return errors.WrapWithCode(err, errors.ErrDump,
			"Cannot read "+path,
			"Dump it again with 'hswu dump blocktimes'")
	}

	results := make([]BlockTimeOutput, len(heights))
	missing := 0
	for i, h := range heights {
		results[i].Height = h
		if bt, ok := table.Lookup(h); ok {
			results[i] = BlockTimeOutput{Height: h, Found: true, Time: bt.Time, Hash: bt.Hash}
		} else {
			missing++
		}
	}

	out := cmd.OutOrStdout()
	if MachineMode() {
		if err := WriteJSONSuccess(out, results); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			if !r.Found {
				fmt.Fprintf(out, "%-10d %s\n", r.Height, ui.ErrorStyle().Render(ui.SymbolFail+" not in "+path))
				continue
			}
			fmt.Fprintf(out, "%-10d %s  %s\n", r.Height,
				time.Unix(r.Time, 0).UTC().Format(time.RFC3339), ui.MutedStyle().Render(r.Hash))
		}
	}

	if missing > 0 {
		return errors.NewExitError(1)
	}
	return nil
}

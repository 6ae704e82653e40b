package cli

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/nodech/hsw-wallet-utils/internal/client"
	"github.com/nodech/hsw-wallet-utils/internal/config"
	"github.com/nodech/hsw-wallet-utils/internal/dump"
	"github.com/nodech/hsw-wallet-utils/internal/errors"
	"github.com/nodech/hsw-wallet-utils/internal/jsonarr"
	"github.com/nodech/hsw-wallet-utils/internal/logger"
	"github.com/nodech/hsw-wallet-utils/internal/paths"
	"github.com/nodech/hsw-wallet-utils/internal/ui"
	"github.com/spf13/cobra"
)

// DumpOutput is the --json result of a dump command.
type DumpOutput struct {
	Kind  string `json:"kind"`
	Path  string `json:"path"`
	Count int    `json:"count"`
	Bytes int64  `json:"bytes"`
}

type dumpFunc func(ctx context.Context, d *dump.Dumper) (*dump.Result, error)

func dumpCoinsCommand(cmd *cobra.Command, id, account string, enc EncodingFlags) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	wallet, err := client.NewWallet(cfg.WalletEndpoint(), client.OptionsFromConfig(cfg))
	if err != nil {
		return err
	}

	label := "Dumping coins of " + id
	if !paths.IsDefaultAccount(account) {
		label += "/" + account
	}
	return runDump(cmd, cfg, enc, "coins", label, func(ctx context.Context, d *dump.Dumper) (*dump.Result, error) {
		return d.Coins(ctx, wallet, id, account)
	})
}

func dumpNamesCommand(cmd *cobra.Command, id string, own bool, enc EncodingFlags) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	wallet, err := client.NewWallet(cfg.WalletEndpoint(), client.OptionsFromConfig(cfg))
	if err != nil {
		return err
	}

	return runDump(cmd, cfg, enc, "names", "Dumping names of "+id, func(ctx context.Context, d *dump.Dumper) (*dump.Result, error) {
		return d.Names(ctx, wallet, id, own)
	})
}

func dumpBlockTimesCommand(cmd *cobra.Command, opts dump.BlockTimesOptions, enc EncodingFlags) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	node := client.NewNode(cfg.NodeEndpoint(), client.OptionsFromConfig(cfg))
	defer node.Close()

	return runDump(cmd, cfg, enc, "blocktimes", "Dumping block times", func(ctx context.Context, d *dump.Dumper) (*dump.Result, error) {
		return d.BlockTimes(ctx, node, opts)
	})
}

// runDump drives one dump with a spinner on stderr and reports the written
// file on stdout.
func runDump(cmd *cobra.Command, cfg *config.Config, enc EncodingFlags, kind, label string, fn dumpFunc) error {
	d := &dump.Dumper{
		Root:     cfg.Dump.Dir,
		Streamed: enc.Streamed(cfg.Dump.Streamed),
		Log:      logger.Default(),
	}

	var spinner *ui.Spinner
	if !MachineMode() {
		spinner = ui.NewSpinner(cmd.ErrOrStderr(), label)
		d.Progress = func(count int) {
			spinner.SetDetail(humanize.Comma(int64(count)) + " elements")
		}
		spinner.Start()
	}

	res, err := fn(cmd.Context(), d)
	if err != nil {
		if spinner != nil {
			spinner.Fail()
		}
		return dumpError(err, kind)
	}
	if spinner != nil {
		spinner.Success()
	}

	out := cmd.OutOrStdout()
	if MachineMode() {
		return WriteJSONSuccess(out, DumpOutput{Kind: kind, Path: res.Path, Count: res.Count, Bytes: res.Bytes})
	}

	fmt.Fprintf(out, "%s %s %s\n",
		ui.SuccessStyle().Render(ui.SymbolSuccess),
		res.Path,
		ui.MutedStyle().Render(fmt.Sprintf("(%s elements, %s)", humanize.Comma(int64(res.Count)), humanize.Bytes(uint64(res.Bytes)))))
	return nil
}

// dumpError attaches a suggestion matching the failure.
func dumpError(err error, kind string) error {
	var suggestion string
	switch {
	case stderrors.Is(err, client.ErrUnauthorized):
		suggestion = "Check api_key in the config, HSD_API_KEY or --api-key"
	case stderrors.Is(err, client.ErrNotFound):
		suggestion = "Check the wallet id, and that the names plugin is loaded: hswu plugin check"
	case stderrors.Is(err, client.ErrTooLarge):
		suggestion = "The response exceeded limit; raise it with 'hswu config set limit <bytes>'"
	case stderrors.Is(err, jsonarr.ErrFraming), stderrors.Is(err, jsonarr.ErrMalformedJSON):
		suggestion = "The response was cut off or is not a JSON array. The previous dump was kept; try again"
	case stderrors.Is(err, context.Canceled):
		suggestion = "Interrupted. The previous dump was kept"
	default:
		suggestion = "Run with --verbose to see the requests"
	}
	return errors.WrapWithCode(err, errors.ErrDump, fmt.Sprintf("Failed to dump %s", kind), suggestion)
}

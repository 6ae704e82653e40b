package cli

import (
	"fmt"

	"github.com/nodech/hsw-wallet-utils/internal/client"
	"github.com/nodech/hsw-wallet-utils/internal/errors"
	"github.com/nodech/hsw-wallet-utils/internal/ui"
	"github.com/spf13/cobra"
)

// PluginOutput is the --json result of plugin check.
type PluginOutput struct {
	URL    string `json:"url"`
	Loaded bool   `json:"loaded"`
}

// pluginCheckCommand exits 1 without an error message when the plugin is
// missing, so it composes with && in scripts.
func pluginCheckCommand(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	wallet, err := client.NewWallet(cfg.WalletEndpoint(), client.OptionsFromConfig(cfg))
	if err != nil {
		return err
	}

	has, err := wallet.HasNamesPlugin(cmd.Context())
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrWallet,
			"Cannot reach the wallet at "+wallet.URL(),
			"Check that the hsd wallet is running and that --network and api_key match it")
	}

	out := cmd.OutOrStdout()
	if MachineMode() {
		if err := WriteJSONSuccess(out, PluginOutput{URL: wallet.URL(), Loaded: has}); err != nil {
			return err
		}
	} else if has {
		fmt.Fprintf(out, "%s names plugin loaded %s\n",
			ui.SuccessStyle().Render(ui.SymbolSuccess), ui.MutedStyle().Render(wallet.URL()))
	} else {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s names plugin not loaded at %s\n\n  Start hsd with the names dump plugin to use 'hswu dump names'.\n",
			ui.ErrorStyle().Render(ui.SymbolFail), wallet.URL())
	}

	if !has {
		return errors.NewExitError(1)
	}
	return nil
}

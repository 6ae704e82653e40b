package cli

import (
	"fmt"
	"os"

	"github.com/nodech/hsw-wallet-utils/internal/config"
	"github.com/nodech/hsw-wallet-utils/internal/errors"
	"github.com/nodech/hsw-wallet-utils/internal/ui"
	"github.com/spf13/cobra"
)

func configEnvCommand(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	env := cfg.Env()
	out := cmd.OutOrStdout()
	if MachineMode() {
		return WriteJSONSuccess(out, env)
	}
	for _, line := range config.ExportLines(env) {
		fmt.Fprintln(out, line)
	}
	return nil
}

// configSetCommand edits the config file in place and rolls the edit back if
// the result does not validate.
func configSetCommand(cmd *cobra.Command, key, value string) error {
	path, err := config.Find(Config())
	if err != nil {
		return err
	}
	if path == "" {
		return errors.New(errors.ErrConfig,
			"No config file found",
			"Run 'hswu init' to create one, or pass --config")
	}

	original, err := os.ReadFile(path)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, "Cannot read "+path, "Check file permissions")
	}

	if err := config.Set(path, key, value); err != nil {
		return err
	}

	cfg, err := config.Load(path, nil)
	if err == nil {
		err = config.Validate(cfg)
	}
	if err != nil {
		if restoreErr := os.WriteFile(path, original, 0600); restoreErr != nil {
			return errors.WrapWithCode(restoreErr, errors.ErrConfig,
				"Failed to restore "+path+" after an invalid edit",
				"Fix the file by hand")
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s %s = %s %s\n",
		ui.SuccessStyle().Render(ui.SymbolSuccess), key, value, ui.MutedStyle().Render("("+path+")"))
	return nil
}

func configKeysCommand(cmd *cobra.Command) error {
	keys := config.Keys()
	out := cmd.OutOrStdout()
	if MachineMode() {
		return WriteJSONSuccess(out, keys)
	}
	for _, k := range keys {
		fmt.Fprintln(out, k)
	}
	return nil
}

func configPathCommand(cmd *cobra.Command) error {
	path, err := config.Find(Config())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if MachineMode() {
		return WriteJSONSuccess(out, map[string]string{"path": path})
	}
	if path == "" {
		fmt.Fprintln(out, ui.MutedStyle().Render("no config file, using defaults"))
		return nil
	}
	fmt.Fprintln(out, path)
	return nil
}

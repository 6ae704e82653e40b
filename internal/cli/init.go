package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/nodech/hsw-wallet-utils/internal/config"
	"github.com/nodech/hsw-wallet-utils/internal/errors"
	"github.com/nodech/hsw-wallet-utils/internal/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// InitOptions holds options for the init command.
type InitOptions struct {
	Overwrite      bool // Overwrite existing config without asking
	Global         bool // Write the global config instead of ./.hswu.yaml
	NonInteractive bool // Skip prompts, use flags and defaults
}

// Init creates a new config file.
func Init(cmd *cobra.Command, opts InitOptions) error {
	if !ui.IsTerminal(os.Stdin) {
		opts.NonInteractive = true
	}

	configPath, err := initPath(opts.Global)
	if err != nil {
		return err
	}

	// Check for existing config
	if _, err := os.Stat(configPath); err == nil && !opts.Overwrite {
		if opts.NonInteractive {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", configPath),
				"Use --force to overwrite")
		}

		var overwrite bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", configPath)).
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !overwrite {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return nil
		}
	}

	cfg := initialConfig(cmd.Flags())

	if !opts.NonInteractive {
		if err := promptConfig(cfg); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Check terminal compatibility or use --non-interactive")
		}
	}

	if err := config.Validate(cfg); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot create "+filepath.Dir(configPath),
			"Check directory permissions")
	}
	if err := config.WriteDefault(configPath, cfg, true); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s Created %s\n\n", ui.SuccessStyle().Render(ui.SymbolSuccess), configPath)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  hswu status             # check the node and wallet")
	fmt.Fprintln(out, "  hswu dump coins <id>    # dump a wallet's coins")
	return nil
}

func initPath(global bool) (string, error) {
	if !global {
		return filepath.Join(".", config.ConfigFileName), nil
	}
	path := config.GlobalPath()
	if path == "" {
		return "", errors.New(errors.ErrConfig,
			"Cannot determine the home directory",
			"Set $HOME or create ./"+config.ConfigFileName+" without --global")
	}
	return path, nil
}

// initialConfig starts from the defaults and takes the connection flags the
// user passed explicitly.
func initialConfig(flags *pflag.FlagSet) *config.Config {
	cfg := config.DefaultConfig()

	if v, err := flags.GetString("network"); err == nil && flags.Changed("network") {
		cfg.Network = strings.ToLower(v)
	}
	if v, err := flags.GetString("api-key"); err == nil && flags.Changed("api-key") {
		cfg.APIKey = v
	}
	if v, err := flags.GetString("http-host"); err == nil && flags.Changed("http-host") {
		cfg.HTTPHost = v
	}
	if v, err := flags.GetString("url"); err == nil && flags.Changed("url") {
		cfg.URL = v
	}
	if v, err := flags.GetString("dump-dir"); err == nil && flags.Changed("dump-dir") {
		cfg.Dump.Dir = v
	}
	return cfg
}

func promptConfig(cfg *config.Config) error {
	options := make([]huh.Option[string], 0, len(config.Networks()))
	for _, n := range config.Networks() {
		label := fmt.Sprintf("%s (node %d, wallet %d)", n, config.NodePorts[n], config.WalletPorts[n])
		options = append(options, huh.NewOption(label, n))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Network").
				Description("Selects the default node and wallet ports").
				Options(options...).
				Value(&cfg.Network),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Host").
				Description("Where hsd listens").
				Placeholder("127.0.0.1").
				Value(&cfg.HTTPHost).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("host is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("API key").
				Description("hsd --api-key, leave empty if unset (HSD_API_KEY also works)").
				EchoMode(huh.EchoModePassword).
				Value(&cfg.APIKey),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Dump directory").
				Description("Where dumps are written (supports ${NETWORK}, ${USER}, ${HOME})").
				Placeholder("~/.hswu/${NETWORK}").
				Value(&cfg.Dump.Dir).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("dump directory is required")
					}
					return nil
				}),
		),
	)

	return form.Run()
}

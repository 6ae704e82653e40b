package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/nodech/hsw-wallet-utils/internal/config"
	"github.com/nodech/hsw-wallet-utils/internal/errors"
	"github.com/nodech/hsw-wallet-utils/internal/logger"
	"github.com/nodech/hsw-wallet-utils/internal/ui"
	"github.com/spf13/cobra"
)

// Global flags
var (
	cfgFile string
	verbose bool
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "hswu",
	Short: "Dump and inspect hsd wallet and chain data",
	Long: `hswu talks to an hsd node and wallet over HTTP, writes wallet and chain
dumps as JSON arrays and renders summaries of them in the terminal.

Connection settings come from .hswu.yaml (or ~/.config/hswu/config.yaml),
HSD_* environment variables and flags, in increasing order of precedence.

Examples:
  hswu status
  hswu dump coins primary --account default
  hswu summary ~/.hswu/main/dumps/w-primary/coins.json --by covenant.action --weight value`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetVerbose(verbose)
		if noColor {
			ui.DisableColors()
		}
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default ./.hswu.yaml, then ~/.config/hswu/config.yaml)")
	pf.StringP("network", "n", "", "network: main, testnet, regtest, simnet")
	pf.StringP("url", "u", "", "base URL for both node and wallet")
	pf.StringP("api-key", "k", "", "API key for node and wallet")
	pf.BoolP("ssl", "s", false, "use https when building URLs from host and port")
	pf.String("http-host", "", "host for node and wallet (default 127.0.0.1)")
	pf.Int("http-port", 0, "port for node and wallet (default: per network)")
	pf.Duration("timeout", 0, "request timeout (e.g. 30s, 2m)")
	pf.String("token", "", "wallet token")
	pf.String("dump-dir", "", "root directory for dumps")
	pf.Int("width", 0, "output width in columns (default: terminal width)")
	pf.String("color", "", "color mode: auto, always, never")
	pf.BoolVarP(&verbose, "verbose", "v", false, "log requests and decoding to stderr")
	pf.BoolVar(&noColor, "no-color", false, "disable colored output")
	pf.BoolVar(&machineMode, "json", false, "print machine-readable JSON where supported")
}

// Config returns the --config flag value.
func Config() string {
	return cfgFile
}

// loadConfig resolves the config file and merges environment and flags on
// top of it. A missing config file is fine: defaults apply.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := config.Find(Config())
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(path, cmd.Flags())
	if err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	logger.Default().Debug("config: %s network=%s", describePath(path), cfg.Network)
	return cfg, nil
}

func describePath(path string) string {
	if path == "" {
		return "(defaults)"
	}
	return path
}

// newStyler builds the widget styler for w. --no-color wins over ui.color.
func newStyler(cfg *config.Config, w io.Writer) *ui.Styler {
	if noColor {
		return ui.PlainStyler()
	}
	return ui.NewStyler(w, ui.ColorMode(cfg.UI.Color))
}

// outputWidth is ui.width, or the terminal width when that is 0.
func outputWidth(cfg *config.Config, w io.Writer) int {
	if cfg.UI.Width > 0 {
		return cfg.UI.Width
	}
	return ui.TerminalWidth(w, 80)
}

// Execute runs the root command and exits on error.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err == nil {
		return
	}

	if code, ok := errors.GetExitCode(err); ok {
		os.Exit(code)
	}

	if MachineMode() {
		_ = WriteJSONFromError(os.Stdout, err)
		os.Exit(1)
	}

	if isUnknownCommandError(err) {
		fmt.Fprintln(os.Stderr, ui.ErrorStyle().Render(ui.SymbolFail+" "+err.Error()))
		if name := extractUnknownCommand(err); name != "" {
			if suggestions := rootCmd.SuggestionsFor(name); len(suggestions) > 0 {
				fmt.Fprintf(os.Stderr, "\n  Did you mean: %s?\n", strings.Join(suggestions, ", "))
			}
		}
		fmt.Fprintln(os.Stderr, "\n  Run 'hswu --help' for usage.")
		os.Exit(1)
	}

	if _, ok := err.(*errors.Error); ok {
		fmt.Fprint(os.Stderr, err.Error())
	} else {
		fmt.Fprintln(os.Stderr, ui.ErrorStyle().Render(ui.SymbolFail+" "+err.Error()))
	}
	os.Exit(1)
}

func isUnknownCommandError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") || strings.HasPrefix(msg, "unknown flag")
}

// extractUnknownCommand pulls foo out of `unknown command "foo" for "hswu"`.
func extractUnknownCommand(err error) string {
	msg := err.Error()
	start := strings.IndexByte(msg, '"')
	if start < 0 {
		return ""
	}
	end := strings.IndexByte(msg[start+1:], '"')
	if end < 0 {
		return ""
	}
	return msg[start+1 : start+1+end]
}

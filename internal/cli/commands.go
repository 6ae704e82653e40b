package cli

import (
	"github.com/nodech/hsw-wallet-utils/internal/dump"
	"github.com/nodech/hsw-wallet-utils/internal/errors"
	"github.com/spf13/cobra"
)

// Command-specific flags
var (
	coinsAccountFlag   string
	coinsEncoding      EncodingFlags
	namesOwnFlag       bool
	namesEncoding      EncodingFlags
	blockTimesFromFlag int64
	blockTimesToFlag   int64
	blockTimesBatch    int
	blockTimesEncoding EncodingFlags
	summaryOpts        SummaryOptions
	statusWatchFlag    bool
	statusIntervalFlag string
	initOpts           InitOptions
)

// dumpCmd groups the dump subcommands
var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Write wallet and chain data to the dump directory",
	Long: `Fetch data from the hsd wallet or node and write it under dump.dir.

Each dump is validated element by element while it is written to a temp
file, and only replaces the previous dump once the whole array was received.

Files:
  <dump.dir>/dumps/w-<id>/names.json
  <dump.dir>/dumps/w-<id>/coins.json          (all accounts)
  <dump.dir>/dumps/w-<id>/coins-<account>.json
  <dump.dir>/blocktimes.json`,
}

// dumpCoinsCmd dumps the coins of a wallet
var dumpCoinsCmd = &cobra.Command{
	Use:   "coins <wallet-id>",
	Short: "Dump the coins of a wallet",
	Long: `Dump the coins of a wallet through the wallet's dump-coins endpoint.

Without --account (or with --account -1) the coins of every account are
dumped to coins.json.

Examples:
  hswu dump coins primary
  hswu dump coins primary --account cold
  hswu dump coins primary --dense`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return dumpCoinsCommand(cmd, args[0], coinsAccountFlag, coinsEncoding)
	},
}

// dumpNamesCmd dumps the names tracked by a wallet
var dumpNamesCmd = &cobra.Command{
	Use:   "names <wallet-id>",
	Short: "Dump the names tracked by a wallet",
	Long: `Dump the names a wallet is watching through the dump-names endpoint.

Examples:
  hswu dump names primary
  hswu dump names primary --own`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return dumpNamesCommand(cmd, args[0], namesOwnFlag, namesEncoding)
	},
}

// dumpBlockTimesCmd dumps block header times from the node
var dumpBlockTimesCmd = &cobra.Command{
	Use:   "blocktimes",
	Short: "Dump block times by height from the node",
	Long: `Fetch {height, time, hash} for a range of blocks over node RPC and write
them to blocktimes.json. Heights are requested in batches.

Examples:
  hswu dump blocktimes
  hswu dump blocktimes --from 100000 --to 120000
  hswu dump blocktimes --batch 500`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return dumpBlockTimesCommand(cmd, dump.BlockTimesOptions{
			From:  blockTimesFromFlag,
			To:    blockTimesToFlag,
			Batch: blockTimesBatch,
		}, blockTimesEncoding)
	},
}

// summaryCmd renders a breakdown of a dump file
var summaryCmd = &cobra.Command{
	Use:   "summary <file>",
	Short: "Summarize a dump file by one field",
	Long: `Read a dump element by element, group it by a dotted field and render the
groups as a bar and a table. With --weight, groups are weighed by a numeric
field instead of counted.

Examples:
  hswu summary coins.json --by covenant.action
  hswu summary coins.json --by address --weight value --top 10
  hswu summary names.json --by state --auto`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		summaryOpts.Path = args[0]
		return summaryCommand(cmd, summaryOpts)
	},
}

// statusCmd shows the node and wallet state
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show chain sync state and dump coverage",
	Long: `Query the node for chain info, ask the wallet about the names plugin and
show how much of the chain blocktimes.json covers.

Examples:
  hswu status
  hswu status --json
  hswu status --watch --interval 10s`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		interval, err := ParseInterval(statusIntervalFlag, defaultWatchInterval)
		if err != nil {
			return err
		}
		if statusWatchFlag {
			return watchCommand(cmd, interval)
		}
		return statusCommand(cmd)
	},
}

// pluginCmd groups wallet plugin commands
var pluginCmd = &cobra.Command{
	Use:   "plugin",
	Short: "Inspect the wallet names plugin",
}

// pluginCheckCmd checks for the names plugin
var pluginCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that the wallet exposes the names plugin",
	Long: `Query the wallet's /has-names-plugin endpoint. Exits with status 1 when
the plugin is not loaded, so it can gate scripts:

  hswu plugin check && hswu dump names primary`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return pluginCheckCommand(cmd)
	},
}

// blockTimeCmd looks heights up in blocktimes.json
var blockTimeCmd = &cobra.Command{
	Use:   "blocktime <height>...",
	Short: "Look up block times in the blocktimes dump",
	Long: `Print the time and hash of each height from blocktimes.json, without
contacting the node.

Examples:
  hswu blocktime 2016 4032`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return blockTimeCommand(cmd, args)
	},
}

// initCmd creates a config file
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a .hswu.yaml config file",
	Long: `Create a config file with the connection settings for one network.

Run in a terminal without flags to be prompted for the values.

Examples:
  hswu init
  hswu init --network regtest --api-key secret --non-interactive
  hswu init --global`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Init(cmd, initOpts)
	},
}

// configCmd groups config inspection commands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and edit the configuration",
}

var configEnvCmd = &cobra.Command{
	Use:   "env",
	Short: "Print the resolved configuration as HSD_* shell exports",
	Long: `Print the configuration after merging the file, environment and flags as
export statements other hsd tools can source.

Examples:
  eval "$(hswu config env)"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return configEnvCommand(cmd)
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set one key in the config file",
	Long: `Update a single dotted key in the config file, keeping comments.

Examples:
  hswu config set network testnet
  hswu config set wallet.token 0123abcd`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return configSetCommand(cmd, args[0], args[1])
	},
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List the valid config keys",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return configKeysCommand(cmd)
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file in use",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return configPathCommand(cmd)
	},
}

// completionCmd generates shell completion scripts
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion scripts for hswu.

Examples:
  # Bash
  hswu completion bash > /etc/bash_completion.d/hswu

  # Zsh
  hswu completion zsh > "${fpath[1]}/_hswu"

  # Fish
  hswu completion fish > ~/.config/fish/completions/hswu.fish`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(out)
		case "zsh":
			return rootCmd.GenZshCompletion(out)
		case "fish":
			return rootCmd.GenFishCompletion(out, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(out)
		default:
			return errors.New(errors.ErrExec,
				"Unknown shell: "+args[0],
				"Supported shells: bash, zsh, fish, powershell")
		}
	},
}

func init() {
	// dump coins flags
	dumpCoinsCmd.Flags().StringVarP(&coinsAccountFlag, "account", "a", "", "account name (default: all accounts)")
	AddEncodingFlags(dumpCoinsCmd, &coinsEncoding, false)

	// dump names flags
	dumpNamesCmd.Flags().BoolVar(&namesOwnFlag, "own", false, "only names owned by the wallet")
	AddEncodingFlags(dumpNamesCmd, &namesEncoding, false)

	// dump blocktimes flags
	dumpBlockTimesCmd.Flags().Int64Var(&blockTimesFromFlag, "from", 0, "first height")
	dumpBlockTimesCmd.Flags().Int64Var(&blockTimesToFlag, "to", -1, "last height (default: chain tip)")
	dumpBlockTimesCmd.Flags().IntVar(&blockTimesBatch, "batch", dump.DefaultBatchSize, "heights per RPC batch")
	AddEncodingFlags(dumpBlockTimesCmd, &blockTimesEncoding, false)

	dumpCmd.AddCommand(dumpCoinsCmd, dumpNamesCmd, dumpBlockTimesCmd)

	// summary flags
	summaryCmd.Flags().StringVar(&summaryOpts.By, "by", "", "dotted field to group by (required)")
	summaryCmd.Flags().StringVar(&summaryOpts.Weight, "weight", "", "dotted numeric field to weigh groups by")
	summaryCmd.Flags().IntVar(&summaryOpts.Top, "top", 8, "groups to show before folding the rest into 'other' (0 shows all)")
	AddEncodingFlags(summaryCmd, &summaryOpts.Encoding, true)
	_ = summaryCmd.MarkFlagRequired("by")

	// status flags
	statusCmd.Flags().BoolVarP(&statusWatchFlag, "watch", "w", false, "refresh until interrupted")
	statusCmd.Flags().StringVar(&statusIntervalFlag, "interval", "", "refresh interval for --watch (default 5s)")

	pluginCmd.AddCommand(pluginCheckCmd)

	// init flags
	initCmd.Flags().BoolVarP(&initOpts.Overwrite, "force", "f", false, "overwrite an existing config file")
	initCmd.Flags().BoolVar(&initOpts.Global, "global", false, "write ~/.config/hswu/config.yaml instead of ./.hswu.yaml")
	initCmd.Flags().BoolVar(&initOpts.NonInteractive, "non-interactive", false, "skip prompts, use flags and defaults")

	configCmd.AddCommand(configEnvCmd, configSetCmd, configKeysCmd, configPathCmd)

	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(pluginCmd)
	rootCmd.AddCommand(blockTimeCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(completionCmd)
}

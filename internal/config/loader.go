package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/nodech/hsw-wallet-utils/internal/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the per-directory config file name.
	ConfigFileName = ".hswu.yaml"
	// GlobalConfigDir is the directory for global config, relative to home.
	GlobalConfigDir = ".config/hswu"
	// GlobalConfigFile is the global config file name.
	GlobalConfigFile = "config.yaml"
	// EnvPrefix is prepended to every environment key (HSD_API_KEY, HSD_WALLET_TOKEN).
	EnvPrefix = "HSD"
)

// FlagKeys maps command-line flag names to config keys.
var FlagKeys = map[string]string{
	"network":   "network",
	"url":       "url",
	"api-key":   "api_key",
	"ssl":       "ssl",
	"http-host": "http_host",
	"http-port": "http_port",
	"timeout":   "timeout",
	"token":     "wallet.token",
	"dump-dir":  "dump.dir",
	"width":     "ui.width",
	"color":     "ui.color",
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. .hswu.yaml in the current directory
// 3. ~/.config/hswu/config.yaml
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine current directory",
			"Check directory permissions")
	}

	localConfig := filepath.Join(cwd, ConfigFileName)
	if _, err := os.Stat(localConfig); err == nil {
		return localConfig, nil
	}

	if global := GlobalPath(); global != "" {
		if _, err := os.Stat(global); err == nil {
			return global, nil
		}
	}

	return "", nil
}

// GlobalPath returns ~/.config/hswu/config.yaml, or "" without a home directory.
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
}

// Load builds the config from defaults, the file at path (skipped when path
// is empty), HSD_* environment variables and the changed flags in flags, in
// increasing order of precedence. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if os.IsNotExist(err) {
				return nil, errors.WrapWithCode(err, errors.ErrConfig,
					"Config file not found",
					"Run 'hswu init' to create a config file, or specify one with --config")
			}
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to read config file",
				"Check the file exists and is valid YAML")
		}
	}

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return nil, err
		}
	}

	return parseConfig(v, path)
}

// newViper sets up defaults and environment lookup. Every key gets a default
// so AutomaticEnv can see it during Unmarshal.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	def := DefaultConfig()
	v.SetDefault("version", def.Version)
	v.SetDefault("network", def.Network)
	v.SetDefault("ssl", def.SSL)
	v.SetDefault("http_host", def.HTTPHost)
	v.SetDefault("http_port", 0)
	v.SetDefault("url", "")
	v.SetDefault("api_key", "")
	v.SetDefault("timeout", def.Timeout)
	v.SetDefault("limit", def.Limit)
	v.SetDefault("node.url", "")
	v.SetDefault("node.port", 0)
	v.SetDefault("node.api_key", "")
	v.SetDefault("wallet.url", "")
	v.SetDefault("wallet.port", 0)
	v.SetDefault("wallet.api_key", "")
	v.SetDefault("wallet.token", "")
	v.SetDefault("dump.dir", def.Dump.Dir)
	v.SetDefault("dump.streamed", def.Dump.Streamed)
	v.SetDefault("ui.width", def.UI.Width)
	v.SetDefault("ui.color", def.UI.Color)
	v.SetDefault("ui.colors", []string{})
	return v
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range FlagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to bind flag --"+name,
				"This is a bug in hswu")
		}
	}
	return nil
}

// parseConfig converts viper config to our Config struct.
func parseConfig(v *viper.Viper, path string) (*Config, error) {
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		source := "the environment and flags"
		if path != "" {
			source = path
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the values in "+source)
	}

	cfg.Network = strings.ToLower(cfg.Network)
	cfg.Dump.Dir = ExpandTilde(Expand(cfg.Dump.Dir, cfg.Network))

	return cfg, nil
}

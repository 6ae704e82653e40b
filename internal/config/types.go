package config

import (
	"time"
)

// CurrentConfigVersion is the schema version for the config file.
const CurrentConfigVersion = 1

// DefaultLimit caps a single HTTP response body (10 GiB).
const DefaultLimit int64 = 10 << 30

// Networks hsd can run on.
const (
	NetworkMain    = "main"
	NetworkTestnet = "testnet"
	NetworkRegtest = "regtest"
	NetworkSimnet  = "simnet"
)

// NodePorts are the default node RPC/HTTP ports per network.
var NodePorts = map[string]int{
	NetworkMain:    12037,
	NetworkTestnet: 13037,
	NetworkRegtest: 14037,
	NetworkSimnet:  15037,
}

// WalletPorts are the default wallet HTTP ports per network.
var WalletPorts = map[string]int{
	NetworkMain:    12039,
	NetworkTestnet: 13039,
	NetworkRegtest: 14039,
	NetworkSimnet:  15039,
}

// Config represents the complete hswu configuration.
//
// Top-level connection settings apply to both the node and the wallet;
// the node and wallet sections override them per endpoint.
type Config struct {
	Version  int           `yaml:"version" mapstructure:"version"`
	Network  string        `yaml:"network" mapstructure:"network"`
	SSL      bool          `yaml:"ssl" mapstructure:"ssl"`
	HTTPHost string        `yaml:"http_host" mapstructure:"http_host"`
	HTTPPort int           `yaml:"http_port,omitempty" mapstructure:"http_port"`
	URL      string        `yaml:"url,omitempty" mapstructure:"url"`
	APIKey   string        `yaml:"api_key,omitempty" mapstructure:"api_key"`
	Timeout  time.Duration `yaml:"timeout" mapstructure:"timeout"`
	Limit    int64         `yaml:"limit" mapstructure:"limit"`

	Node   EndpointConfig `yaml:"node" mapstructure:"node"`
	Wallet WalletConfig   `yaml:"wallet" mapstructure:"wallet"`
	Dump   DumpConfig     `yaml:"dump" mapstructure:"dump"`
	UI     UIConfig       `yaml:"ui" mapstructure:"ui"`
}

// EndpointConfig overrides connection settings for one daemon.
type EndpointConfig struct {
	// URL, when set, wins over ssl/http_host/port.
	URL    string `yaml:"url,omitempty" mapstructure:"url"`
	Port   int    `yaml:"port,omitempty" mapstructure:"port"`
	APIKey string `yaml:"api_key,omitempty" mapstructure:"api_key"`
}

// WalletConfig adds the per-wallet token to the endpoint settings.
type WalletConfig struct {
	EndpointConfig `yaml:",inline" mapstructure:",squash"`

	// Token is sent as the token query parameter on every wallet request.
	Token string `yaml:"token,omitempty" mapstructure:"token"`
}

// DumpConfig controls where and how dumps are written.
type DumpConfig struct {
	// Dir is the root that holds dumps/ and blocktimes.json.
	// Supports ~ and ${HOME}, ${USER}, ${NETWORK}.
	Dir string `yaml:"dir" mapstructure:"dir"`

	// Streamed selects the newline-delimited array encoding for written dumps.
	Streamed bool `yaml:"streamed" mapstructure:"streamed"`
}

// UIConfig controls terminal rendering.
type UIConfig struct {
	// Width is the layout budget in columns; 0 uses the terminal width.
	Width int `yaml:"width" mapstructure:"width"`

	// Color mode: "auto", "always", or "never".
	// "auto" disables color when output is piped.
	Color string `yaml:"color" mapstructure:"color"`

	// Colors is the bar palette, as "bg" or "fg/bg" color names. Empty uses
	// the built-in palette.
	Colors []string `yaml:"colors,omitempty" mapstructure:"colors"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version:  CurrentConfigVersion,
		Network:  NetworkMain,
		HTTPHost: "127.0.0.1",
		Timeout:  0,
		Limit:    DefaultLimit,
		Dump: DumpConfig{
			Dir:      "~/.hswu/${NETWORK}",
			Streamed: true,
		},
		UI: UIConfig{
			Width: 0,
			Color: "auto",
		},
	}
}

package config

import (
	"testing"
	"time"

	"github.com/nodech/hsw-wallet-utils/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{"defaults", func(c *Config) {}, ""},
		{"future version", func(c *Config) { c.Version = CurrentConfigVersion + 1 }, "from the future"},
		{"unknown network", func(c *Config) { c.Network = "mainnet" }, "Unknown network"},
		{"negative timeout", func(c *Config) { c.Timeout = -time.Second }, "Timeout"},
		{"zero limit", func(c *Config) { c.Limit = 0 }, "limit"},
		{"port out of range", func(c *Config) { c.Wallet.Port = 70000 }, "wallet.port"},
		{"bad url scheme", func(c *Config) { c.Node.URL = "ftp://x" }, "node.url"},
		{"url without host", func(c *Config) { c.URL = "http://" }, "Invalid url"},
		{"negative width", func(c *Config) { c.UI.Width = -1 }, "ui.width"},
		{"bad color mode", func(c *Config) { c.UI.Color = "sometimes" }, "ui.color"},
		{"bad palette", func(c *Config) { c.UI.Colors = []string{"green", "orange"} }, "ui.colors"},
		{"palette", func(c *Config) { c.UI.Colors = []string{"green", "white/blue"} }, ""},
		{"empty dump dir", func(c *Config) { c.Dump.Dir = "" }, "dump.dir"},
		{"https url", func(c *Config) { c.URL = "https://node.example:12037" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)

			err := Validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.True(t, errors.IsCode(err, errors.ErrConfig))
			}
		})
	}
}

func TestNetworks(t *testing.T) {
	assert.Equal(t, []string{"main", "regtest", "simnet", "testnet"}, Networks())
}

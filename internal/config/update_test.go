package config

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/nodech/hsw-wallet-utils/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDefault_RoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ConfigFileName)

	cfg := DefaultConfig()
	cfg.Network = NetworkRegtest
	cfg.Wallet.Token = "tok"
	require.NoError(t, WriteDefault(path, cfg, false))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# hswu configuration")
	assert.Contains(t, string(data), "network: regtest")

	loaded, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, NetworkRegtest, loaded.Network)
	assert.Equal(t, "tok", loaded.Wallet.Token)
	assert.Equal(t, cfg.Limit, loaded.Limit)
	assert.NoError(t, Validate(loaded))
}

func TestWriteDefault_RefusesOverwrite(t *testing.T) {
	path := writeConfig(t, "network: main\n")

	err := WriteDefault(path, DefaultConfig(), false)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))

	require.NoError(t, WriteDefault(path, DefaultConfig(), true))
}

func TestSet(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `# my wallet box
network: main # keep this comment
wallet:
  token: old
`)

	require.NoError(t, Set(path, "wallet.token", "new"))
	require.NoError(t, Set(path, "node.port", "8080"))
	require.NoError(t, Set(path, "ssl", "true"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# my wallet box")
	assert.Contains(t, string(data), "# keep this comment")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "new", cfg.Wallet.Token)
	assert.Equal(t, 8080, cfg.Node.Port)
	assert.True(t, cfg.SSL)
}

func TestSet_EmptyFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "")

	require.NoError(t, Set(path, "network", "simnet"))

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, NetworkSimnet, cfg.Network)
}

func TestSet_UnknownKey(t *testing.T) {
	path := writeConfig(t, "network: main\n")

	err := Set(path, "wallet.colour", "x")
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestSet_NotAMapping(t *testing.T) {
	path := writeConfig(t, "wallet: plain\n")

	err := Set(path, "wallet.token", "x")
	assert.Error(t, err)
}

func TestKeys(t *testing.T) {
	keys := Keys()
	assert.Contains(t, keys, "network")
	assert.Contains(t, keys, "wallet.token")
	assert.Contains(t, keys, "ui.color")
	assert.Contains(t, keys, "ui.colors")
	assert.Contains(t, keys, "dump.streamed")
}

func TestEnv(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Network = NetworkTestnet
	cfg.APIKey = "secret"
	cfg.Wallet.Token = "tok"
	cfg.Node.Port = 8080
	cfg.Dump.Dir = "/data"

	env := cfg.Env()
	assert.Equal(t, "testnet", env["HSD_NETWORK"])
	assert.Equal(t, "secret", env["HSD_API_KEY"])
	assert.Equal(t, "tok", env["HSD_WALLET_TOKEN"])
	assert.Equal(t, "8080", env["HSD_NODE_PORT"])
	assert.Equal(t, "10737418240", env["HSD_LIMIT"])
	assert.Equal(t, "127.0.0.1", env["HSD_HTTP_HOST"])
	assert.NotContains(t, env, "HSD_HTTP_PORT", "zero values are skipped")
	assert.NotContains(t, env, "HSD_SSL", "booleans are skipped")
	assert.NotContains(t, env, "HSD_TIMEOUT")
}

func TestEnv_LoadsBack(t *testing.T) {
	clearEnv(t)

	cfg := DefaultConfig()
	cfg.Network = NetworkRegtest
	cfg.Wallet.APIKey = "wk"
	cfg.Wallet.Port = 1234
	cfg.Dump.Dir = "/data/dumps"

	for k, v := range cfg.Env() {
		t.Setenv(k, v)
	}

	loaded, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, cfg.WalletEndpoint(), loaded.WalletEndpoint())
	assert.Equal(t, cfg.NodeEndpoint(), loaded.NodeEndpoint())
	assert.Equal(t, "/data/dumps", loaded.Dump.Dir)
}

func TestExportLines(t *testing.T) {
	lines := ExportLines(map[string]string{
		"HSD_NETWORK": "main",
		"HSD_API_KEY": "it's",
	})

	assert.Equal(t, []string{
		`export HSD_API_KEY='it'\''s'`,
		`export HSD_NETWORK='main'`,
	}, lines)
}

func TestKeys_Sorted(t *testing.T) {
	keys := Keys()
	assert.True(t, sort.StringsAreSorted(keys))
}

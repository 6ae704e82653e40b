package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Env returns the non-empty string and number settings as HSD_* environment
// variables, the form Load reads back. Booleans are left out, as are zero
// ports and durations.
func (c *Config) Env() map[string]string {
	env := make(map[string]string)

	put := func(key, value string) {
		if value != "" {
			env[EnvPrefix+"_"+strings.ToUpper(strings.NewReplacer(".", "_").Replace(key))] = value
		}
	}
	putInt := func(key string, n int64) {
		if n != 0 {
			put(key, strconv.FormatInt(n, 10))
		}
	}

	put("network", c.Network)
	put("http_host", c.HTTPHost)
	putInt("http_port", int64(c.HTTPPort))
	put("url", c.URL)
	put("api_key", c.APIKey)
	if c.Timeout > 0 {
		put("timeout", c.Timeout.String())
	}
	putInt("limit", c.Limit)

	put("node.url", c.Node.URL)
	putInt("node.port", int64(c.Node.Port))
	put("node.api_key", c.Node.APIKey)

	put("wallet.url", c.Wallet.URL)
	putInt("wallet.port", int64(c.Wallet.Port))
	put("wallet.api_key", c.Wallet.APIKey)
	put("wallet.token", c.Wallet.Token)

	put("dump.dir", c.Dump.Dir)

	return env
}

// ExportLines renders env as sorted shell export statements.
func ExportLines(env map[string]string) []string {
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("export %s=%s", k, shellQuote(env[k])))
	}
	return lines
}

// shellQuote wraps s in single quotes, escaping embedded single quotes.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

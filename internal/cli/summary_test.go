package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nodech/hsw-wallet-utils/internal/dump"
	"github.com/nodech/hsw-wallet-utils/internal/errors"
	"github.com/nodech/hsw-wallet-utils/internal/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const streamedCoins = "[\n" +
	`{"value":100,"covenant":{"action":"BID"}}` + ",\n" +
	`{"value":50,"covenant":{"action":"BID"}}` + ",\n" +
	`{"value":30,"covenant":{"action":"NONE"}}` +
	"\n]"

const denseCoins = `[{"value":100,"covenant":{"action":"BID"}},{"value":30,"covenant":{"action":"NONE"}}]`

func writeDumpFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "coins.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestSummary_ByCount(t *testing.T) {
	isolate(t)
	path := writeDumpFile(t, streamedCoins)

	out, _, err := runCLI(t, "summary", path, "--by", "covenant.action", "--width", "60", "--color", "never")
	require.NoError(t, err)
	assert.Contains(t, out, "summary by covenant.action")
	assert.Contains(t, out, "BID")
	assert.Contains(t, out, "NONE")
	assert.Contains(t, out, "66.7%")
	assert.Contains(t, out, "33.3%")
	assert.Contains(t, out, "3 elements")
}

func TestSummary_ConfiguredPalette(t *testing.T) {
	isolate(t)
	path := writeDumpFile(t, streamedCoins)
	cfgPath := filepath.Join(t.TempDir(), "hswu.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("ui:\n  colors: [red, black/cyan]\n"), 0o600))

	out, _, err := runCLI(t, "summary", path, "--config", cfgPath, "--by", "covenant.action",
		"--width", "60", "--color", "always")
	require.NoError(t, err)
	assert.Contains(t, out, "\x1b[37;41m")
	assert.Contains(t, out, "\x1b[30;46m")
	assert.NotContains(t, out, "\x1b[30;42m", "built-in palette is replaced")
}

func TestSummary_BadPalette(t *testing.T) {
	isolate(t)
	path := writeDumpFile(t, streamedCoins)
	cfgPath := filepath.Join(t.TempDir(), "hswu.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("ui:\n  colors: [orange]\n"), 0o600))

	_, _, err := runCLI(t, "summary", path, "--config", cfgPath, "--by", "covenant.action")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestSummary_ByWeightJSON(t *testing.T) {
	isolate(t)
	path := writeDumpFile(t, streamedCoins)

	out, _, err := runCLI(t, "summary", path, "--by", "covenant.action", "--weight", "value", "--json")
	require.NoError(t, err)

	env := decodeEnvelope(t, out)
	require.True(t, env.Success)
	data := env.Data.(map[string]interface{})
	assert.Equal(t, float64(180), data["total"])
	assert.Equal(t, float64(3), data["count"])

	groups := data["groups"].([]interface{})
	require.Len(t, groups, 2)
	first := groups[0].(map[string]interface{})
	assert.Equal(t, "BID", first["key"])
	assert.Equal(t, float64(150), first["weight"])
}

func TestSummary_Encoding(t *testing.T) {
	isolate(t)
	path := writeDumpFile(t, denseCoins)

	_, _, err := runCLI(t, "summary", path, "--by", "covenant.action", "--color", "never")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrDump))

	out, _, err := runCLI(t, "summary", path, "--by", "covenant.action", "--auto", "--color", "never", "--width", "60")
	require.NoError(t, err)
	assert.Contains(t, out, "2 elements")

	out, _, err = runCLI(t, "summary", path, "--by", "covenant.action", "--dense", "--color", "never", "--width", "60")
	require.NoError(t, err)
	assert.Contains(t, out, "2 elements")

	_, _, err = runCLI(t, "summary", path, "--by", "covenant.action", "--dense", "--auto")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestSummary_RequiresBy(t *testing.T) {
	isolate(t)
	path := writeDumpFile(t, streamedCoins)

	_, _, err := runCLI(t, "summary", path)
	assert.Error(t, err)
}

func TestSummary_MissingFile(t *testing.T) {
	isolate(t)

	_, _, err := runCLI(t, "summary", filepath.Join(t.TempDir(), "nope.json"), "--by", "x")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrDump))
}

func TestRenderSummary_Empty(t *testing.T) {
	var b strings.Builder
	s := &dump.Summary{By: "x"}
	require.NoError(t, renderSummary(&b, ui.PlainStyler(), 40, nil, s, nil))
	assert.Contains(t, b.String(), "(empty dump)")
}

func TestColumnLabels(t *testing.T) {
	tests := []struct {
		by, weight string
		key, wt    string
	}{
		{"covenant.action", "value", "covenant.action", "value"},
		{"count", "", "key", ""},
		{"share", "value", "key", "value"},
		{"address", "count", "address", "weight"},
		{"value", "value", "key", "value"},
	}

	for _, tt := range tests {
		t.Run(tt.by+"/"+tt.weight, func(t *testing.T) {
			key, wt := columnLabels(tt.by, tt.weight)
			assert.Equal(t, tt.key, key)
			assert.Equal(t, tt.wt, wt)
		})
	}
}

func TestFormatShare(t *testing.T) {
	assert.Equal(t, "50.0%", formatShare(1, 2))
	assert.Equal(t, "66.7%", formatShare(2, 3))
	assert.Equal(t, "-", formatShare(1, 0))
}

package dump

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nodech/hsw-wallet-utils/internal/jsonarr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const coinsDump = `[
{"value":100,"covenant":{"action":"BID"}},
{"value":"50","covenant":{"action":"NONE"}},
{"value":25,"covenant":{"action":"BID"}},
{"value":5}
]`

func TestSummarize_ByCount(t *testing.T) {
	dec := jsonarr.NewDecoder(strings.NewReader(coinsDump), true)

	s, err := Summarize(dec, SummaryOptions{By: "covenant.action"})
	require.NoError(t, err)

	assert.Equal(t, 4, s.Count)
	assert.Equal(t, 4.0, s.Total)
	assert.Equal(t, []Group{
		{Key: "BID", Count: 2, Weight: 2},
		{Key: MissingKey, Count: 1, Weight: 1},
		{Key: "NONE", Count: 1, Weight: 1},
	}, s.Groups)
}

func TestSummarize_ByWeight(t *testing.T) {
	dec := jsonarr.NewDecoder(strings.NewReader(coinsDump), true)

	s, err := Summarize(dec, SummaryOptions{By: "covenant.action", Weight: "value"})
	require.NoError(t, err)

	assert.Equal(t, 180.0, s.Total)
	require.Len(t, s.Groups, 3)
	assert.Equal(t, Group{Key: "BID", Count: 2, Weight: 125}, s.Groups[0])
	assert.Equal(t, Group{Key: "NONE", Count: 1, Weight: 50}, s.Groups[1])
	assert.Equal(t, Group{Key: MissingKey, Count: 1, Weight: 5}, s.Groups[2])
}

func TestSummarize_Errors(t *testing.T) {
	_, err := Summarize(jsonarr.NewDecoder(strings.NewReader("[]"), false), SummaryOptions{})
	assert.Error(t, err)

	dec := jsonarr.NewDecoder(strings.NewReader(`[{"a":1,"v":-1}]`), false)
	_, err = Summarize(dec, SummaryOptions{By: "a", Weight: "v"})
	assert.Error(t, err)

	dec = jsonarr.NewDecoder(strings.NewReader(`[{"a":1}]`), false)
	_, err = Summarize(dec, SummaryOptions{By: "a", Weight: "v"})
	assert.Error(t, err)

	dec = jsonarr.NewDecoder(strings.NewReader("[\n{\"a\":1},\n"), true)
	_, err = Summarize(dec, SummaryOptions{By: "a"})
	assert.ErrorIs(t, err, jsonarr.ErrFraming)
}

func TestSummary_Top(t *testing.T) {
	s := &Summary{Groups: []Group{
		{Key: "a", Count: 5, Weight: 5},
		{Key: "b", Count: 3, Weight: 3},
		{Key: "c", Count: 2, Weight: 2},
		{Key: "d", Count: 1, Weight: 1},
	}}

	assert.Equal(t, []Group{
		{Key: "a", Count: 5, Weight: 5},
		{Key: "b", Count: 3, Weight: 3},
		{Key: "other", Count: 3, Weight: 3},
	}, s.Top(2))
	assert.Len(t, s.Top(0), 4)
	assert.Len(t, s.Top(10), 4)
}

func TestField(t *testing.T) {
	el := map[string]any{
		"name":  "example",
		"state": map[string]any{"phase": "BIDDING", "height": float64(10)},
	}

	v, ok := Field(el, "name")
	assert.True(t, ok)
	assert.Equal(t, "example", v)

	v, ok = Field(el, "state.phase")
	assert.True(t, ok)
	assert.Equal(t, "BIDDING", v)

	_, ok = Field(el, "state.phase.deeper")
	assert.False(t, ok)
	_, ok = Field(el, "missing")
	assert.False(t, ok)
}

func TestFormatKey(t *testing.T) {
	assert.Equal(t, "null", formatKey(nil))
	assert.Equal(t, "12", formatKey(float64(12)))
	assert.Equal(t, "0.5", formatKey(0.5))
	assert.Equal(t, "true", formatKey(true))
	assert.Equal(t, `{"a":1}`, formatKey(map[string]any{"a": float64(1)}))
	assert.Equal(t, `[1,2]`, formatKey([]any{float64(1), float64(2)}))
}

func TestOpenArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coins.json")
	require.NoError(t, os.WriteFile(path, []byte(coinsDump), 0o644))

	dec, closer, err := OpenArray(path, false, true)
	require.NoError(t, err)
	defer closer.Close()
	assert.True(t, dec.Streamed())

	s, err := Summarize(dec, SummaryOptions{By: "covenant.action"})
	require.NoError(t, err)
	assert.Equal(t, 4, s.Count)

	_, _, err = OpenArray(filepath.Join(t.TempDir(), "nope.json"), true, false)
	assert.True(t, os.IsNotExist(err))
}

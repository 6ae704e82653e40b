package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME and the working directory at fresh temp dirs and
// clears HSD_* variables, so no real config leaks into a test.
func isolate(t *testing.T) string {
	t.Helper()
	for _, kv := range os.Environ() {
		if k, _, ok := strings.Cut(kv, "="); ok && (strings.HasPrefix(k, "HSD_") || k == "HSWU_DEBUG") {
			t.Setenv(k, "")
		}
	}
	t.Setenv("HOME", t.TempDir())

	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

// resetFlags restores every flag of cmd and its children to its default so
// values set by one test don't carry over to the next.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// runCLI executes the real root command with args.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

// decodeEnvelope parses --json output.
func decodeEnvelope(t *testing.T, out string) JSONEnvelope {
	t.Helper()
	var env JSONEnvelope
	require.NoError(t, json.Unmarshal([]byte(out), &env), out)
	return env
}

type rpcCall struct {
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
	ID     json.RawMessage   `json:"id"`
}

// hsdReply mimics hsd: no "jsonrpc" field, result and error both present.
type hsdReply struct {
	Result any             `json:"result"`
	Error  any             `json:"error"`
	ID     json.RawMessage `json:"id"`
}

// fakeHSD serves the wallet routes and node RPC hswu uses from one server.
type fakeHSD struct {
	t      *testing.T
	srv    *httptest.Server
	apiKey string

	mu       sync.Mutex
	height   int64
	coins    string
	names    string
	noPlugin bool
	paths    []string
}

func newFakeHSD(t *testing.T, apiKey string) *fakeHSD {
	t.Helper()
	f := &fakeHSD{t: t, apiKey: apiKey, height: 120, coins: "[]", names: "[]"}
	f.srv = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeHSD) URL() string {
	return f.srv.URL
}

func (f *fakeHSD) requested() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.paths...)
}

func (f *fakeHSD) serve(rw http.ResponseWriter, r *http.Request) {
	if f.apiKey != "" {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "x" || pass != f.apiKey {
			rw.WriteHeader(http.StatusUnauthorized)
			return
		}
	}

	f.mu.Lock()
	f.paths = append(f.paths, r.URL.RequestURI())
	f.mu.Unlock()

	if r.Method == http.MethodPost {
		f.serveRPC(rw, r)
		return
	}

	switch {
	case r.URL.Path == "/has-names-plugin":
		if f.noPlugin {
			rw.WriteHeader(http.StatusNotFound)
			return
		}
		io.WriteString(rw, `{"has":true}`)
	case strings.HasSuffix(r.URL.Path, "/dump-coins"):
		io.WriteString(rw, f.coins)
	case strings.HasSuffix(r.URL.Path, "/dump-names"):
		io.WriteString(rw, f.names)
	default:
		rw.WriteHeader(http.StatusNotFound)
	}
}

func (f *fakeHSD) serveRPC(rw http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if !assert.NoError(f.t, err) {
		return
	}

	rw.Header().Set("Content-Type", "application/json")
	if bytes.HasPrefix(bytes.TrimSpace(body), []byte("[")) {
		var calls []rpcCall
		if !assert.NoError(f.t, json.Unmarshal(body, &calls)) {
			return
		}
		out := make([]hsdReply, len(calls))
		for i, c := range calls {
			out[i] = f.reply(c)
		}
		json.NewEncoder(rw).Encode(out)
		return
	}

	var c rpcCall
	if !assert.NoError(f.t, json.Unmarshal(body, &c)) {
		return
	}
	json.NewEncoder(rw).Encode(f.reply(c))
}

func (f *fakeHSD) reply(c rpcCall) hsdReply {
	res := hsdReply{ID: c.ID}
	switch c.Method {
	case "getblockchaininfo":
		res.Result = map[string]any{
			"chain":                "regtest",
			"blocks":               f.height,
			"headers":              f.height,
			"bestblockhash":        "00ab",
			"mediantime":           1700000000,
			"verificationprogress": 1,
			"pruned":               false,
		}
	case "getblockbyheight":
		var h int64
		if len(c.Params) > 0 {
			_ = json.Unmarshal(c.Params[0], &h)
		}
		res.Result = map[string]any{"hash": fmt.Sprintf("h%d", h), "height": h, "time": 1000 + h}
	default:
		res.Error = map[string]any{"message": "Method not found.", "code": -32601}
	}
	return res
}

package client

import (
	"io"
	"net/http"
	"time"

	"github.com/nodech/hsw-wallet-utils/internal/config"
	"github.com/nodech/hsw-wallet-utils/internal/logger"
)

// authUser is the basic auth user hsd expects alongside the API key.
const authUser = "x"

// Options configures both clients.
type Options struct {
	// Timeout for a whole request; 0 means none.
	Timeout time.Duration

	// Limit caps a response body in bytes; 0 means config.DefaultLimit.
	Limit int64

	// HTTPClient replaces the default client (tests, proxies).
	HTTPClient *http.Client

	Logger logger.Logger
}

// OptionsFromConfig takes timeout and limit from cfg.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Timeout: cfg.Timeout,
		Limit:   cfg.Limit,
	}
}

func (o Options) limit() int64 {
	if o.Limit <= 0 {
		return config.DefaultLimit
	}
	return o.Limit
}

func (o Options) logger() logger.Logger {
	if o.Logger == nil {
		return logger.Default()
	}
	return o.Logger
}

// httpClient returns a client that sets basic auth on every request.
func (o Options) httpClient(apiKey string) *http.Client {
	base := o.HTTPClient
	if base == nil {
		base = &http.Client{}
	}

	transport := base.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	return &http.Client{
		Transport:     &authTransport{apiKey: apiKey, next: transport},
		Timeout:       o.Timeout,
		CheckRedirect: base.CheckRedirect,
		Jar:           base.Jar,
	}
}

type authTransport struct {
	apiKey string
	next   http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.apiKey == "" {
		return t.next.RoundTrip(req)
	}
	req = req.Clone(req.Context())
	req.SetBasicAuth(authUser, t.apiKey)
	return t.next.RoundTrip(req)
}

// limitedBody fails with ErrTooLarge instead of silently truncating.
type limitedBody struct {
	rc        io.ReadCloser
	remaining int64
}

func newLimitedBody(rc io.ReadCloser, limit int64) *limitedBody {
	return &limitedBody{rc: rc, remaining: limit}
}

func (b *limitedBody) Read(p []byte) (int, error) {
	if b.remaining < 0 {
		return 0, ErrTooLarge
	}
	// read one byte past the limit to tell "exactly limit" from "more"
	if int64(len(p)) > b.remaining+1 {
		p = p[:b.remaining+1]
	}
	n, err := b.rc.Read(p)
	b.remaining -= int64(n)
	if b.remaining < 0 {
		return n + int(b.remaining), ErrTooLarge
	}
	return n, err
}

func (b *limitedBody) Close() error {
	return b.rc.Close()
}

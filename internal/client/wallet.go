package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"

	"github.com/nodech/hsw-wallet-utils/internal/config"
	"github.com/nodech/hsw-wallet-utils/internal/logger"
)

// Wallet is a client for the hsd wallet HTTP API.
type Wallet struct {
	base  *url.URL
	token string
	limit int64
	http  *http.Client
	log   logger.Logger
}

// NewWallet creates a wallet client for ep.
func NewWallet(ep config.Endpoint, opts Options) (*Wallet, error) {
	base, err := url.Parse(ep.URL)
	if err != nil {
		return nil, fmt.Errorf("wallet url %q: %w", ep.URL, err)
	}
	return &Wallet{
		base:  base,
		token: ep.Token,
		limit: opts.limit(),
		http:  opts.httpClient(ep.APIKey),
		log:   opts.logger(),
	}, nil
}

// URL returns the wallet base URL.
func (w *Wallet) URL() string {
	return w.base.String()
}

// Request performs a GET on endpoint and returns the body on a 200. The
// body is capped at the response limit and must be closed by the caller.
//
// A 404 returns ErrNotFound, a 401 ErrUnauthorized, any other non-200 a
// *StatusError.
func (w *Wallet) Request(ctx context.Context, endpoint string, query url.Values) (io.ReadCloser, error) {
	u := *w.base
	u.Path = path.Join("/", w.base.Path, endpoint)

	q := url.Values{}
	for k, v := range query {
		q[k] = v
	}
	if w.token != "" {
		q.Set("token", w.token)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	w.log.Debug("GET %s", u.Path)
	resp, err := w.http.Do(req)
	if err != nil {
		return nil, err
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return newLimitedBody(resp.Body, w.limit), nil
	case http.StatusNotFound:
		resp.Body.Close()
		return nil, ErrNotFound
	case http.StatusUnauthorized:
		resp.Body.Close()
		return nil, ErrUnauthorized
	default:
		resp.Body.Close()
		return nil, &StatusError{Code: resp.StatusCode}
	}
}

// DumpCoins streams the coins of wallet id as a JSON array. An empty
// account selects every account.
func (w *Wallet) DumpCoins(ctx context.Context, id, account string) (io.ReadCloser, error) {
	query := url.Values{}
	if account != "" {
		query.Set("account", account)
	}
	return w.Request(ctx, path.Join("wallet", id, "dump-coins"), query)
}

// DumpNames streams the names tracked by wallet id as a JSON array. With own
// set, only names whose owner coin belongs to the wallet are included.
func (w *Wallet) DumpNames(ctx context.Context, id string, own bool) (io.ReadCloser, error) {
	query := url.Values{}
	query.Set("own", strconv.FormatBool(own))
	return w.Request(ctx, path.Join("wallet", id, "dump-names"), query)
}

// HasNamesPlugin reports whether the dump plugin is loaded. A 404 means the
// route doesn't exist and is reported as false, not as an error.
func (w *Wallet) HasNamesPlugin(ctx context.Context) (bool, error) {
	body, err := w.Request(ctx, "has-names-plugin", nil)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	defer body.Close()

	var res struct {
		Has bool `json:"has"`
	}
	if err := json.NewDecoder(body).Decode(&res); err != nil {
		return false, fmt.Errorf("decode has-names-plugin: %w", err)
	}
	return res.Has, nil
}

// Package dump fetches wallet and chain data and writes it to the dump
// directory as JSON arrays.
//
// Every dump goes through the same pipeline: the response body is decoded
// one element at a time, each element is re-encoded into a temp file next to
// the destination, and the temp file is renamed into place once the closing
// bracket has been verified. A broken or truncated response never replaces a
// good dump.
package dump

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/nodech/hsw-wallet-utils/internal/client"
	"github.com/nodech/hsw-wallet-utils/internal/jsonarr"
	"github.com/nodech/hsw-wallet-utils/internal/logger"
	"github.com/nodech/hsw-wallet-utils/internal/paths"
)

// WalletSource streams wallet dumps. *client.Wallet implements it.
type WalletSource interface {
	DumpCoins(ctx context.Context, id, account string) (io.ReadCloser, error)
	DumpNames(ctx context.Context, id string, own bool) (io.ReadCloser, error)
}

// ChainSource reads block headers. *client.Node implements it.
type ChainSource interface {
	GetBlockchainInfo(ctx context.Context) (*client.ChainInfo, error)
	GetBlocksByHeight(ctx context.Context, heights []int64) ([]client.BlockHeader, error)
}

// Result describes a written dump.
type Result struct {
	Path  string
	Count int
	Bytes int64
}

// Dumper writes dumps under Root.
type Dumper struct {
	Root string

	// Streamed selects the newline-delimited encoding for written files.
	Streamed bool

	// Progress, when set, is called with the running element count.
	Progress func(count int)

	Log logger.Logger
}

func (d *Dumper) log() logger.Logger {
	if d.Log == nil {
		return logger.Default()
	}
	return d.Log
}

// Coins dumps the coins of wallet id (one account, or all when account is
// empty or "-1").
func (d *Dumper) Coins(ctx context.Context, w WalletSource, id, account string) (*Result, error) {
	if err := paths.ValidateID("wallet id", id); err != nil {
		return nil, err
	}
	if !paths.IsDefaultAccount(account) {
		if err := paths.ValidateID("account", account); err != nil {
			return nil, err
		}
	}

	remote := account
	if paths.IsDefaultAccount(account) {
		remote = ""
	}

	body, err := w.DumpCoins(ctx, id, remote)
	if err != nil {
		return nil, fmt.Errorf("dump coins of %s: %w", id, err)
	}
	defer body.Close()

	return d.copyArray(paths.CoinsDumpFile(d.Root, id, account), body)
}

// Names dumps the names tracked by wallet id.
func (d *Dumper) Names(ctx context.Context, w WalletSource, id string, own bool) (*Result, error) {
	if err := paths.ValidateID("wallet id", id); err != nil {
		return nil, err
	}

	body, err := w.DumpNames(ctx, id, own)
	if err != nil {
		return nil, fmt.Errorf("dump names of %s: %w", id, err)
	}
	defer body.Close()

	return d.copyArray(paths.NamesDumpFile(d.Root, id), body)
}

// copyArray validates the array in body element by element and writes it to
// dst in the configured encoding.
func (d *Dumper) copyArray(dst string, body io.Reader) (*Result, error) {
	dec := jsonarr.NewAutoDecoder(body)
	d.log().Debug("decoding %s response into %s", framingName(dec.Streamed()), dst)

	return d.writeArray(dst, func(enc *jsonarr.Encoder) error {
		_, err := jsonarr.Copy(enc, dec, d.progress)
		return err
	})
}

// writeArray runs fill against an encoder on a temp file and renames the
// file to dst when fill and Close succeed.
func (d *Dumper) writeArray(dst string, fill func(enc *jsonarr.Encoder) error) (*Result, error) {
	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create dump directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(dst)+".*")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		// no-op after a successful rename
		os.Remove(tmp.Name())
	}()

	counter := &countingWriter{w: tmp}
	enc := jsonarr.NewEncoder(counter, d.Streamed)

	if err := fill(enc); err != nil {
		tmp.Close()
		return nil, err
	}
	if err := enc.Close(); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write %s: %w", dst, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("sync %s: %w", dst, err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("close %s: %w", dst, err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return nil, fmt.Errorf("rename into %s: %w", dst, err)
	}

	d.log().Debug("wrote %d elements (%d bytes) to %s", enc.Count(), counter.n, dst)
	return &Result{Path: dst, Count: enc.Count(), Bytes: counter.n}, nil
}

func (d *Dumper) progress(count int) {
	if d.Progress != nil {
		d.Progress(count)
	}
}

func framingName(streamed bool) string {
	if streamed {
		return "streamed"
	}
	return "dense"
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

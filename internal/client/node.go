package client

import (
	"context"
	"fmt"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/jhttp"
	"github.com/nodech/hsw-wallet-utils/internal/config"
	"github.com/nodech/hsw-wallet-utils/internal/logger"
)

// Node is a JSON-RPC client for an hsd full node.
type Node struct {
	url string
	rpc *jrpc2.Client
	log logger.Logger
}

// ChainInfo is the subset of getblockchaininfo hswu shows.
type ChainInfo struct {
	Chain                string  `json:"chain"`
	Blocks               int64   `json:"blocks"`
	Headers              int64   `json:"headers"`
	BestBlockHash        string  `json:"bestblockhash"`
	MedianTime           int64   `json:"mediantime"`
	VerificationProgress float64 `json:"verificationprogress"`
	Pruned               bool    `json:"pruned"`
}

// BlockHeader is the part of getblockbyheight the block time table keeps.
type BlockHeader struct {
	Hash   string `json:"hash"`
	Height int64  `json:"height"`
	Time   int64  `json:"time"`
}

// NewNode creates a node client for ep.
func NewNode(ep config.Endpoint, opts Options) *Node {
	ch := jhttp.NewChannel(ep.URL, &jhttp.ChannelOptions{
		Client: &compatClient{next: opts.httpClient(ep.APIKey), limit: opts.limit()},
	})
	return &Node{
		url: ep.URL,
		rpc: jrpc2.NewClient(ch, nil),
		log: opts.logger(),
	}
}

// URL returns the node endpoint.
func (n *Node) URL() string {
	return n.url
}

// Close shuts the RPC client down.
func (n *Node) Close() error {
	return n.rpc.Close()
}

// Call invokes method with positional params and decodes the result.
func (n *Node) Call(ctx context.Context, method string, result any, params ...any) error {
	n.log.Debug("rpc %s %v", method, params)
	if params == nil {
		params = []any{}
	}
	if err := n.rpc.CallResult(ctx, method, params, result); err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	return nil
}

// GetBlockchainInfo returns the node's view of the chain tip.
func (n *Node) GetBlockchainInfo(ctx context.Context) (*ChainInfo, error) {
	var info ChainInfo
	if err := n.Call(ctx, "getblockchaininfo", &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// GetBlockByHeight returns the header fields of the block at height.
func (n *Node) GetBlockByHeight(ctx context.Context, height int64) (*BlockHeader, error) {
	var hdr BlockHeader
	if err := n.Call(ctx, "getblockbyheight", &hdr, height, true, false); err != nil {
		return nil, err
	}
	return &hdr, nil
}

// GetBlocksByHeight fetches heights in one JSON-RPC batch. Results keep the
// order of heights; the first failing entry fails the whole batch.
func (n *Node) GetBlocksByHeight(ctx context.Context, heights []int64) ([]BlockHeader, error) {
	if len(heights) == 0 {
		return nil, nil
	}

	specs := make([]jrpc2.Spec, len(heights))
	for i, h := range heights {
		specs[i] = jrpc2.Spec{
			Method: "getblockbyheight",
			Params: []any{h, true, false},
		}
	}

	n.log.Debug("rpc batch getblockbyheight %d..%d", heights[0], heights[len(heights)-1])
	rsps, err := n.rpc.Batch(ctx, specs)
	if err != nil {
		return nil, fmt.Errorf("getblockbyheight batch: %w", err)
	}

	out := make([]BlockHeader, len(rsps))
	for i, rsp := range rsps {
		if rerr := rsp.Error(); rerr != nil {
			return nil, fmt.Errorf("getblockbyheight %d: %w", heights[i], rerr)
		}
		if err := rsp.UnmarshalResult(&out[i]); err != nil {
			return nil, fmt.Errorf("getblockbyheight %d: %w", heights[i], err)
		}
	}
	return out, nil
}

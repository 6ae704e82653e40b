// Package client talks to an hsd node and its wallet.
//
// The wallet is reached over its HTTP API. Dump endpoints can return
// gigabytes, so their bodies are handed back as streams, capped at the
// configured response limit, for the caller to decode incrementally.
//
// The node is reached over JSON-RPC with jrpc2 on an HTTP channel. hsd
// replies without the "jsonrpc" version marker and always sends both result
// and error, so responses pass through a small normalizing adapter first.
//
// Both clients authenticate with HTTP basic auth, user "x" and the API key
// as password.
package client

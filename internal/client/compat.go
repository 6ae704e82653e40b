package client

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
)

// compatClient wraps the node HTTP client so that hsd replies look like
// strict JSON-RPC 2.0: the "jsonrpc" marker is added and exactly one of
// result and error is kept.
type compatClient struct {
	next  *http.Client
	limit int64
}

// Do implements jhttp.HTTPClient.
func (c *compatClient) Do(req *http.Request) (*http.Response, error) {
	resp, err := c.next.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		// jhttp reports the status; hsd sends a 401 with an empty body
		return resp, nil
	}

	data, err := io.ReadAll(newLimitedBody(resp.Body, c.limit))
	resp.Body.Close()
	if err != nil {
		return nil, err
	}

	fixed, err := normalizeRPC(data)
	if err != nil {
		// leave it for jrpc2 to reject
		fixed = data
	}

	resp.Body = io.NopCloser(bytes.NewReader(fixed))
	resp.ContentLength = int64(len(fixed))
	resp.Header.Del("Content-Length")
	return resp, nil
}

// normalizeRPC rewrites a single reply or a batch.
func normalizeRPC(data []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var batch []map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &batch); err != nil {
			return nil, err
		}
		for _, msg := range batch {
			normalizeMessage(msg)
		}
		return json.Marshal(batch)
	}

	var msg map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &msg); err != nil {
		return nil, err
	}
	normalizeMessage(msg)
	return json.Marshal(msg)
}

var (
	rpcVersion = json.RawMessage(`"2.0"`)
	jsonNull   = []byte("null")
)

func normalizeMessage(msg map[string]json.RawMessage) {
	msg["jsonrpc"] = rpcVersion

	if e, ok := msg["error"]; ok && !bytes.Equal(bytes.TrimSpace(e), jsonNull) {
		delete(msg, "result")
		return
	}
	delete(msg, "error")
	if _, ok := msg["result"]; !ok {
		msg["result"] = json.RawMessage(jsonNull)
	}
}

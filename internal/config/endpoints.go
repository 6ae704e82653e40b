package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// Endpoint is a resolved daemon address with its credentials.
type Endpoint struct {
	URL    string // scheme://host:port, no trailing slash
	APIKey string
	Token  string // wallet only
}

// NodeEndpoint resolves the node address for the configured network.
func (c *Config) NodeEndpoint() Endpoint {
	return Endpoint{
		URL:    c.resolveURL(c.Node.URL, c.Node.Port, NodePorts),
		APIKey: firstNonEmpty(c.Node.APIKey, c.APIKey),
	}
}

// WalletEndpoint resolves the wallet address for the configured network.
func (c *Config) WalletEndpoint() Endpoint {
	return Endpoint{
		URL:    c.resolveURL(c.Wallet.URL, c.Wallet.Port, WalletPorts),
		APIKey: firstNonEmpty(c.Wallet.APIKey, c.APIKey),
		Token:  c.Wallet.Token,
	}
}

// resolveURL picks, in order: the endpoint URL, the shared URL, or a URL
// built from ssl, http_host and the port (endpoint port, shared port, network
// default).
func (c *Config) resolveURL(endpointURL string, endpointPort int, defaults map[string]int) string {
	if u := firstNonEmpty(endpointURL, c.URL); u != "" {
		return strings.TrimRight(u, "/")
	}

	port := endpointPort
	if port == 0 {
		port = c.HTTPPort
	}
	if port == 0 {
		port = defaults[c.Network]
	}

	scheme := "http"
	if c.SSL {
		scheme = "https"
	}

	host := c.HTTPHost
	if host == "" {
		host = "127.0.0.1"
	}
	return fmt.Sprintf("%s://%s", scheme, net.JoinHostPort(host, strconv.Itoa(port)))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

package config

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/nodech/hsw-wallet-utils/internal/errors"
	"github.com/nodech/hsw-wallet-utils/internal/ui"
)

// ValidColorModes are the accepted ui.color values.
var ValidColorModes = []string{"auto", "always", "never"}

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but hswu only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Upgrade hswu or lower the version field")
	}

	if _, ok := NodePorts[cfg.Network]; !ok {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown network '%s'", cfg.Network),
			"Use one of: "+strings.Join(Networks(), ", "))
	}

	if cfg.Timeout < 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Timeout can't be negative (got %s)", cfg.Timeout),
			"Use 0 for no timeout, or a duration like 30s")
	}

	if cfg.Limit <= 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Response limit must be positive (got %d)", cfg.Limit),
			"Remove 'limit' to use the 10 GiB default")
	}

	for name, port := range map[string]int{
		"http_port":   cfg.HTTPPort,
		"node.port":   cfg.Node.Port,
		"wallet.port": cfg.Wallet.Port,
	} {
		if port < 0 || port > 65535 {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("%s %d is out of range", name, port),
				"Ports go from 1 to 65535; use 0 for the network default")
		}
	}

	for name, raw := range map[string]string{
		"url":        cfg.URL,
		"node.url":   cfg.Node.URL,
		"wallet.url": cfg.Wallet.URL,
	} {
		if err := validateURL(raw); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				fmt.Sprintf("Invalid %s '%s'", name, raw),
				"Use a full URL like http://127.0.0.1:12037")
		}
	}

	if err := validateUI(cfg.UI); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'ui' section of your config.")
	}

	if cfg.Dump.Dir == "" {
		return errors.New(errors.ErrConfig,
			"dump.dir is empty",
			"Set dump.dir or pass --dump-dir")
	}

	return nil
}

// Networks returns the known network names in sorted order.
func Networks() []string {
	names := make([]string, 0, len(NodePorts))
	for name := range NodePorts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func validateURL(raw string) error {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}

func validateUI(c UIConfig) error {
	if c.Width < 0 {
		return fmt.Errorf("ui.width can't be negative (got %d)", c.Width)
	}
	if _, err := ui.ParsePalette(c.Colors); err != nil {
		return fmt.Errorf("ui.colors: %w", err)
	}
	for _, mode := range ValidColorModes {
		if c.Color == mode {
			return nil
		}
	}
	return fmt.Errorf("ui.color '%s' isn't valid, use one of: %s", c.Color, strings.Join(ValidColorModes, ", "))
}

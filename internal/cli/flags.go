package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/nodech/hsw-wallet-utils/internal/errors"
	"github.com/spf13/cobra"
)

// EncodingFlags selects how dump files are written or read.
type EncodingFlags struct {
	Dense bool
	Auto  bool
}

// AddEncodingFlags registers --dense, and --auto when reading.
func AddEncodingFlags(cmd *cobra.Command, flags *EncodingFlags, reading bool) {
	cmd.Flags().BoolVar(&flags.Dense, "dense", false, "use the dense JSON array encoding instead of the streamed one")
	if reading {
		cmd.Flags().BoolVar(&flags.Auto, "auto", false, "detect the encoding from the file contents")
	}
}

// Streamed resolves the flags against the configured default.
func (f EncodingFlags) Streamed(configured bool) bool {
	if f.Dense {
		return false
	}
	return configured
}

// ValidateEncoding checks that --dense and --auto are not used together.
func ValidateEncoding(flags EncodingFlags) error {
	if flags.Dense && flags.Auto {
		return errors.New(errors.ErrConfig,
			"--dense and --auto cannot be used together",
			"Use --dense to force the dense encoding, or --auto to detect it, but not both.")
	}
	return nil
}

// ParseInterval parses a refresh interval. Returns fallback if the flag is
// empty.
func ParseInterval(flag string, fallback time.Duration) (time.Duration, error) {
	if flag == "" {
		return fallback, nil
	}

	d, err := time.ParseDuration(flag)
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("'%s' doesn't look like a valid interval", flag),
			"Try something like 5s, 2m, or 500ms.")
	}
	if d < time.Second {
		return 0, errors.New(errors.ErrConfig,
			fmt.Sprintf("Interval %s is too short", d),
			"Use an interval of at least 1s.")
	}
	return d, nil
}

// ParseHeight parses a non-negative block height.
func ParseHeight(s string) (int64, error) {
	h, err := strconv.ParseInt(s, 10, 64)
	if err != nil || h < 0 {
		return 0, errors.New(errors.ErrConfig,
			fmt.Sprintf("'%s' is not a block height", s),
			"Heights are non-negative integers, e.g. 2016.")
	}
	return h, nil
}

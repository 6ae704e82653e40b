package cli

import (
	"testing"
	"time"

	"github.com/nodech/hsw-wallet-utils/internal/errors"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInterval(t *testing.T) {
	tests := []struct {
		name    string
		flag    string
		want    time.Duration
		wantErr bool
	}{
		{"empty string returns fallback", "", 5 * time.Second, false},
		{"valid seconds", "10s", 10 * time.Second, false},
		{"valid minutes", "2m", 2 * time.Minute, false},
		{"complex duration", "1m30s", 90 * time.Second, false},
		{"too short", "500ms", 0, true},
		{"negative", "-5s", 0, true},
		{"missing unit", "5", 0, true},
		{"not a duration", "fast", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseInterval(tt.flag, 5*time.Second)
			if tt.wantErr {
				assert.True(t, errors.IsCode(err, errors.ErrConfig))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseHeight(t *testing.T) {
	h, err := ParseHeight("2016")
	require.NoError(t, err)
	assert.Equal(t, int64(2016), h)

	h, err = ParseHeight("0")
	require.NoError(t, err)
	assert.Zero(t, h)

	for _, bad := range []string{"-1", "abc", "1.5", ""} {
		_, err := ParseHeight(bad)
		assert.Error(t, err, bad)
	}
}

func TestEncodingFlags(t *testing.T) {
	assert.True(t, EncodingFlags{}.Streamed(true))
	assert.False(t, EncodingFlags{}.Streamed(false))
	assert.False(t, EncodingFlags{Dense: true}.Streamed(true))

	assert.NoError(t, ValidateEncoding(EncodingFlags{Dense: true}))
	assert.NoError(t, ValidateEncoding(EncodingFlags{Auto: true}))
	assert.True(t, errors.IsCode(ValidateEncoding(EncodingFlags{Dense: true, Auto: true}), errors.ErrConfig))
}

func TestAddEncodingFlags(t *testing.T) {
	var flags EncodingFlags

	writer := &cobra.Command{Use: "w"}
	AddEncodingFlags(writer, &flags, false)
	assert.NotNil(t, writer.Flags().Lookup("dense"))
	assert.Nil(t, writer.Flags().Lookup("auto"))

	reader := &cobra.Command{Use: "r"}
	AddEncodingFlags(reader, &flags, true)
	require.NoError(t, reader.Flags().Parse([]string{"--auto"}))
	assert.True(t, flags.Auto)
}

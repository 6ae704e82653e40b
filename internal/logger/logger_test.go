package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, zerolog.InfoLevel, "dump")

	l.Debug("hidden %d", 1)
	assert.Empty(t, buf.String(), "debug is below info")

	l.Info("wrote %d elements", 12)
	out := buf.String()
	assert.Contains(t, out, "wrote 12 elements")
	assert.Contains(t, out, "INF")
	assert.Contains(t, out, "component=dump")
	assert.NotContains(t, out, "\x1b[", "buffers get no color")

	buf.Reset()
	l.Warn("slow response")
	assert.Contains(t, buf.String(), "WRN")

	buf.Reset()
	l.Error("bad key")
	assert.Contains(t, buf.String(), "ERR")
}

func TestNew_DebugLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, zerolog.DebugLevel, "")

	l.Debug("GET %s", "/wallet/primary/dump-coins")
	assert.Contains(t, buf.String(), "GET /wallet/primary/dump-coins")
	assert.NotContains(t, buf.String(), "component=")
}

func TestEnvLevel(t *testing.T) {
	t.Setenv(DebugEnv, "")
	assert.Equal(t, zerolog.InfoLevel, envLevel())

	t.Setenv(DebugEnv, "1")
	assert.Equal(t, zerolog.DebugLevel, envLevel())
}

func TestSetVerbose(t *testing.T) {
	original := Default()
	defer func() {
		SetVerbose(false)
		SetDefault(original)
	}()

	t.Setenv(DebugEnv, "")
	SetVerbose(true)
	assert.Equal(t, zerolog.DebugLevel, envLevel())

	SetVerbose(false)
	assert.Equal(t, zerolog.InfoLevel, envLevel())
}

func TestNoopLogger(t *testing.T) {
	l := Noop()
	assert.NotPanics(t, func() {
		l.Debug("debug")
		l.Info("info")
		l.Warn("warn")
		l.Error("error")
	})
}

func TestBufferLogger(t *testing.T) {
	l := NewBufferLogger()

	l.Debug("debug %s", "msg")
	l.Info("info %s", "msg")
	l.Warn("warn %s", "msg")
	l.Error("error %s", "msg")

	require.Len(t, l.Messages, 4)
	assert.Equal(t, LogMessage{Level: "debug", Message: "debug msg"}, l.Messages[0])
	assert.Equal(t, LogMessage{Level: "info", Message: "info msg"}, l.Messages[1])
	assert.Equal(t, LogMessage{Level: "warn", Message: "warn msg"}, l.Messages[2])
	assert.Equal(t, LogMessage{Level: "error", Message: "error msg"}, l.Messages[3])
}

func TestBufferLogger_HasLevel(t *testing.T) {
	l := NewBufferLogger()

	assert.False(t, l.HasLevel("debug"))
	l.Debug("test")
	assert.True(t, l.HasLevel("debug"))
	assert.False(t, l.HasLevel("error"))
}

func TestBufferLogger_Clear(t *testing.T) {
	l := NewBufferLogger()

	l.Debug("test1")
	l.Info("test2")
	require.Len(t, l.Messages, 2)

	l.Clear()
	assert.Empty(t, l.Messages)
}

func TestDefault(t *testing.T) {
	original := Default()
	defer SetDefault(original)

	assert.NotNil(t, Default())

	buf := NewBufferLogger()
	SetDefault(buf)
	assert.Equal(t, buf, Default())
}

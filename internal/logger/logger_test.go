package logger

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerWritesFields(t *testing.T) {
	require.NoError(t, SetLevelString("info"))
	var buf bytes.Buffer
	l := New(&buf).Named("feedback")

	l.Info(context.Background(), "processed", String("username", "alice"), Int("delta", 16), Error(errors.New("boom")))

	out := buf.String()
	assert.Contains(t, out, "msg=processed")
	assert.Contains(t, out, "component=feedback")
	assert.Contains(t, out, "username=alice")
	assert.Contains(t, out, "delta=16")
	assert.Contains(t, out, "error=boom")
	assert.Contains(t, out, "source=logger_test.go:")
}

func TestLoggerRespectsLevel(t *testing.T) {
	require.NoError(t, SetLevelString("warn"))
	t.Cleanup(func() { _ = SetLevelString("info") })

	var buf bytes.Buffer
	l := New(&buf)
	l.Info(context.Background(), "hidden")
	l.Debug(context.Background(), "hidden too")
	assert.Empty(t, buf.String())

	l.Warn(context.Background(), "shown")
	assert.Contains(t, buf.String(), "msg=shown")
}

func TestSetLevelString(t *testing.T) {
	for _, lvl := range []string{"debug", "INFO", " warning ", "error", ""} {
		assert.NoError(t, SetLevelString(lvl), lvl)
	}
	assert.Error(t, SetLevelString("verbose"))
	require.NoError(t, SetLevelString("info"))
}

func TestGetPanicsBeforeInit(t *testing.T) {
	saved := global
	global = nil
	t.Cleanup(func() { global = saved })

	assert.Panics(t, func() { Get() })
	Init()
	assert.NotPanics(t, func() { Named("x") })
}

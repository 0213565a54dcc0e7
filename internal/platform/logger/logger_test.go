// Package logger_test contains tests for the logger package
package logger_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/phrazzld/scry-fsrs/internal/config"
	"github.com/phrazzld/scry-fsrs/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// restoreDefault puts back the default logger replaced by Setup.
func restoreDefault(t *testing.T) {
	t.Helper()
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })
}

func TestSetupLevels(t *testing.T) {
	testCases := []struct {
		level      string
		debugShown bool
		infoShown  bool
		warnShown  bool
	}{
		{level: "debug", debugShown: true, infoShown: true, warnShown: true},
		{level: "INFO", debugShown: false, infoShown: true, warnShown: true},
		{level: "warn", debugShown: false, infoShown: false, warnShown: true},
		{level: "error", debugShown: false, infoShown: false, warnShown: false},
	}

	for _, tc := range testCases {
		t.Run(tc.level, func(t *testing.T) {
			restoreDefault(t)
			buf := &logger.TestLogBuffer{}

			l, err := logger.Setup(config.LogConfig{Level: tc.level}, buf)
			require.NoError(t, err)
			require.NotNil(t, l)

			l.Debug("debug message")
			l.Info("info message")
			l.Warn("warn message")

			assert.Equal(t, tc.debugShown, contains(buf, "debug message"))
			assert.Equal(t, tc.infoShown, contains(buf, "info message"))
			assert.Equal(t, tc.warnShown, contains(buf, "warn message"))
		})
	}
}

func TestSetupInvalidLevelFallsBackToInfo(t *testing.T) {
	restoreDefault(t)
	buf := &logger.TestLogBuffer{}

	l, err := logger.Setup(config.LogConfig{Level: "verbose"}, buf)
	require.NoError(t, err)

	logger.AssertLogContains(t, buf, "invalid log level configured")
	buf.Reset()

	l.Debug("hidden")
	l.Info("shown", "component", "test")

	assert.False(t, contains(buf, "hidden"))
	logger.AssertLogField(t, buf, "msg", "shown")
	logger.AssertLogField(t, buf, "component", "test")
}

func TestSetupSetsDefault(t *testing.T) {
	restoreDefault(t)
	buf := &logger.TestLogBuffer{}

	l, err := logger.Setup(config.LogConfig{Level: "info"}, buf)
	require.NoError(t, err)

	assert.Same(t, l, slog.Default())
	slog.Info("through default")
	logger.AssertLogContains(t, buf, "through default")
}

func TestContextLogger(t *testing.T) {
	t.Parallel() // Enable parallel execution

	ctx, buf := logger.NewLogCaptureContext(t)
	logger.FromContext(ctx).Info("from context")
	logger.AssertLogField(t, buf, "msg", "from context")

	fallback, _ := logger.GetTestLogger(t)
	assert.Same(t, fallback, logger.FromContextOrDefault(context.Background(), fallback))
	assert.Same(t, fallback, logger.FromContextOrDefault(nil, fallback)) //nolint:staticcheck // nil context is tolerated
	assert.NotNil(t, logger.FromContext(context.Background()))
}

func contains(buf *logger.TestLogBuffer, s string) bool {
	entries, err := buf.GetLogEntries()
	if err != nil {
		return false
	}
	for _, e := range entries {
		if e["msg"] == s {
			return true
		}
	}
	return false
}

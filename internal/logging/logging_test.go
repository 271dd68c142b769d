package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevel(t *testing.T) {
	testCases := []struct {
		description string
		name        string
		expect      slog.Level
	}{
		{description: "debug", name: "debug", expect: slog.LevelDebug},
		{description: "upper case", name: "WARN", expect: slog.LevelWarn},
		{description: "error", name: "error", expect: slog.LevelError},
		{description: "unknown", name: "verbose", expect: slog.LevelInfo},
		{description: "empty", name: "", expect: slog.LevelInfo},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, Level(testCase.name), testCase.description)
	}
}

func TestNew(t *testing.T) {
	buffer := &bytes.Buffer{}
	logger := New(Config{Level: "warn", Format: "json"}, buffer)
	logger.Info("hidden")
	logger.Warn("shown", "pid", 7)
	assert.NotContains(t, buffer.String(), "hidden")
	assert.Contains(t, buffer.String(), `"pid":7`)

	buffer.Reset()
	New(DefaultConfig(), buffer).Info("text", "module", "scheduler")
	assert.Contains(t, buffer.String(), "module=scheduler")
}

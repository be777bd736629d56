package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Production log lines are JSON objects with level, timestamp and message
func TestProperty_ProductionLogsAreStructured(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("every production entry decodes as JSON", prop.ForAll(
		func(message string, level string) bool {
			var buf bytes.Buffer
			logger, err := build("production", "debug", zapcore.AddSync(&buf))
			if err != nil {
				return false
			}

			switch level {
			case "debug":
				logger.Debug(message, zap.String("session_id", "s-1"))
			case "warn":
				logger.Warn(message, zap.String("session_id", "s-1"))
			default:
				logger.Info(message, zap.String("session_id", "s-1"))
			}

			var entry map[string]interface{}
			if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
				return false
			}

			return entry["level"] == level &&
				entry["message"] == message &&
				entry["session_id"] == "s-1" &&
				entry["timestamp"] != nil
		},
		gen.AnyString(),
		gen.OneConstOf("debug", "info", "warn"),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestBuild_LevelFiltersEntries(t *testing.T) {
	var buf bytes.Buffer
	logger, err := build("production", "warn", zapcore.AddSync(&buf))
	require.NoError(t, err)

	logger.Info("dropped")
	logger.Warn("kept")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "kept")
}

func TestBuild_ErrorsCarryStacktrace(t *testing.T) {
	var buf bytes.Buffer
	logger, err := build("production", "", zapcore.AddSync(&buf))
	require.NoError(t, err)

	logger.Error("order insert failed", zap.String("op", "place order"))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "place order", entry["op"])
	assert.NotEmpty(t, entry["stacktrace"])
	assert.NotEmpty(t, entry["caller"])
}

func TestNew_RejectsUnknownLevel(t *testing.T) {
	_, err := New("development", "loud")
	assert.Error(t, err)

	logger, err := New("development", "DEBUG")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

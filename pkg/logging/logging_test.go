package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewWithSyncerJSON(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger, err := NewWithSyncer(Config{Level: "debug", Format: "json"}, zapcore.AddSync(&buf))
	require.NoError(t, err)

	logger.Debug("table mounted", zap.String("table", "orders"))
	require.NoError(t, logger.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "table mounted", entry["msg"])
	assert.Equal(t, "orders", entry["table"])
	assert.Equal(t, "debug", entry["level"])
}

func TestLevelFiltersEntries(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger, err := NewWithSyncer(Config{Level: "warn", Format: "console"}, zapcore.AddSync(&buf))
	require.NoError(t, err)
	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "WARN")
}

func TestValidate(t *testing.T) {
	t.Parallel()
	assert.NoError(t, Default().Validate())
	assert.Error(t, Config{Level: "loud"}.Validate())
	assert.Error(t, Config{Format: "xml"}.Validate())
	_, err := New(Config{Level: "loud"})
	assert.Error(t, err)
}

func TestNewWritesRotatedFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "backoffice.log")
	logger, err := New(Config{Level: "info", Format: "json", Filename: path, MaxSize: 1})
	require.NoError(t, err)
	logger.Info("started")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "started")
}

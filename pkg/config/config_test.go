package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Parallel()
	cfg, err := Load(LoadOptions{Lookup: env(nil)})
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
	assert.Equal(t, 10, cfg.Tables.PageSize)
	assert.Equal(t, 300*time.Millisecond, cfg.Tables.FilterDebounce)
}

func TestLoadPrecedence(t *testing.T) {
	t.Parallel()
	file := writeFile(t, "backoffice.yaml", `
server:
  addr: ":9000"
data:
  seed: 99
  orders: 10
tables:
  page_size: 20
  filter_debounce: 150ms
dashboard:
  chart_theme: walden
log:
  level: debug
  format: json
`)
	dotenv := writeFile(t, ".env", "BACKOFFICE_ORDERS=15\nBACKOFFICE_ADDR=:7000\n")

	cfg, err := Load(LoadOptions{
		Path:    file,
		EnvFile: dotenv,
		Lookup:  env(map[string]string{"BACKOFFICE_ADDR": ":6000"}),
	})
	require.NoError(t, err)
	assert.Equal(t, ":6000", cfg.Server.Addr)
	assert.Equal(t, uint64(99), cfg.Data.Seed)
	assert.Equal(t, 15, cfg.Data.Orders)
	assert.Equal(t, 12, cfg.Data.Sellers)
	assert.Equal(t, 20, cfg.Tables.PageSize)
	assert.Equal(t, 150*time.Millisecond, cfg.Tables.FilterDebounce)
	assert.Equal(t, "walden", cfg.Dashboard.ChartTheme)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadConfigPathFromEnv(t *testing.T) {
	t.Parallel()
	file := writeFile(t, "cfg.yaml", "tables:\n  page_size: 50\n")
	cfg, err := Load(LoadOptions{Lookup: env(map[string]string{"BACKOFFICE_CONFIG": file})})
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Tables.PageSize)
}

func TestLoadMissingEnvFileIsIgnored(t *testing.T) {
	t.Parallel()
	_, err := Load(LoadOptions{EnvFile: filepath.Join(t.TempDir(), ".env"), Lookup: env(nil)})
	assert.NoError(t, err)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	t.Parallel()
	file := writeFile(t, "cfg.yaml", "server:\n  port: 80\n")
	_, err := Load(LoadOptions{Path: file, Lookup: env(nil)})
	assert.Error(t, err)
}

func TestLoadRejectsBadEnv(t *testing.T) {
	t.Parallel()
	_, err := Load(LoadOptions{Lookup: env(map[string]string{
		"BACKOFFICE_ORDERS":          "many",
		"BACKOFFICE_FILTER_DEBOUNCE": "soon",
	})})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BACKOFFICE_ORDERS")
	assert.Contains(t, err.Error(), "BACKOFFICE_FILTER_DEBOUNCE")
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	t.Parallel()
	cfg := Default()
	cfg.Server.Addr = ""
	cfg.Tables.PageSize = 7
	cfg.Dashboard.ChartTheme = "neon"
	cfg.Log.Format = "xml"
	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"server.addr", "page_size", "chart theme", "format"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestLoadSessionLimits(t *testing.T) {
	t.Parallel()
	cfg, err := Load(LoadOptions{Lookup: env(map[string]string{
		"BACKOFFICE_MAX_SESSIONS": "16",
		"BACKOFFICE_SESSION_TTL":  "2m",
	})})
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.Server.MaxSessions)
	assert.Equal(t, 2*time.Minute, cfg.Server.SessionTTL)

	_, err = Load(LoadOptions{Lookup: env(map[string]string{"BACKOFFICE_MAX_SESSIONS": "0"})})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.max_sessions")
}

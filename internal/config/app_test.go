package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	require.Equal(t, "8080", cfg.HTTPServer.Port)
	require.Equal(t, 10*time.Second, cfg.HTTPClient.Timeout())
	require.Equal(t, PreferencesMemory, cfg.Preferences.Driver)
	require.Equal(t, 300, cfg.Store.FreshnessSeconds)
	require.Equal(t, 1000, cfg.Store.RetryDelayMillis)
	require.Equal(t, 10, cfg.Reachability.ProbeIntervalSeconds)
	require.Equal(t, int64(1024), cfg.Catalog.SearchCacheSize)
	require.Equal(t, int32(10), cfg.DbServer.MaxConns)
	require.Equal(t, "info", cfg.Logging.Level)
	require.NotEmpty(t, cfg.RatesAPI.BaseURL)
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeConfig(t, `
http_server:
  port: "9090"
db_server:
  host: localhost
  port: "5432"
  user: app
  pass: secret
  name: fx
preferences:
  driver: postgres
store:
  freshness_seconds: 60
`)
	t.Setenv("HTTP_PORT", "7070")
	t.Setenv("DB_HOST", "db")
	t.Setenv("RATES_API_BASE_URL", "http://rates.local/v1/currencies")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "7070", cfg.HTTPServer.Port)
	require.Equal(t, "db", cfg.DbServer.Host)
	require.Equal(t, "app", cfg.DbServer.User)
	require.Equal(t, PreferencesPostgres, cfg.Preferences.Driver)
	require.Equal(t, 60, cfg.Store.FreshnessSeconds)
	require.Equal(t, "http://rates.local/v1/currencies", cfg.RatesAPI.BaseURL)
	require.Equal(t, "debug", cfg.Logging.Level)
	require.Equal(t, "user=app password=secret host=db port=5432 dbname=fx sslmode=disable", cfg.DbServer.GetConnectionStr())
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("HTTP_CLIENT_TIMEOUT_SECONDS=3\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("HTTP_CLIENT_TIMEOUT_SECONDS") })

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, 3*time.Second, cfg.HTTPClient.Timeout())
}

func TestLoad_UnknownDriver(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PREFERENCES_DRIVER", "redis")

	_, err := Load("")
	require.ErrorContains(t, err, `unknown preferences driver "redis"`)
}

func TestLoad_MalformedFile(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeConfig(t, "http_server: [")

	_, err := Load(path)
	require.Error(t, err)
}

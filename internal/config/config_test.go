package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"PORT", "UPSTREAM_BASE_URL", "UPSTREAM_API_TOKEN", "PROXY_API_KEY",
	"HTTP_TIMEOUT_SECONDS", "SHUTDOWN_TIMEOUT_SECONDS", "DEFAULT_RANGE_DAYS",
	"CORS_ALLOW_ORIGIN", "LOG_LEVEL", "LOG_FORMAT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)

	cfg := FromEnv()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 7, cfg.DefaultRangeDays)
	assert.Equal(t, "*", cfg.AllowOrigin)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Empty(t, cfg.APIKey)
}

func TestFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("UPSTREAM_BASE_URL", "https://reports.example.com/v1/stats")
	t.Setenv("UPSTREAM_API_TOKEN", "tok")
	t.Setenv("PROXY_API_KEY", "secret")
	t.Setenv("HTTP_TIMEOUT_SECONDS", "3")
	t.Setenv("DEFAULT_RANGE_DAYS", "30")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_FORMAT", "text")

	cfg := FromEnv()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "https://reports.example.com/v1/stats", cfg.UpstreamURL)
	assert.Equal(t, "tok", cfg.UpstreamToken)
	assert.Equal(t, "secret", cfg.APIKey)
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 30, cfg.DefaultRangeDays)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.NoError(t, cfg.Validate())
}

func TestFromEnvIgnoresGarbageNumbers(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_TIMEOUT_SECONDS", "soon")
	t.Setenv("DEFAULT_RANGE_DAYS", "week")

	cfg := FromEnv()

	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 7, cfg.DefaultRangeDays)
}

func TestValidateCollectsProblems(t *testing.T) {
	cfg := Config{
		Port:             "0",
		UpstreamURL:      "not a url",
		HTTPTimeout:      0,
		ShutdownTimeout:  time.Second,
		DefaultRangeDays: 91,
		LogFormat:        "xml",
	}

	err := cfg.Validate()

	require.Error(t, err)
	for _, want := range []string{"PORT", "UPSTREAM_BASE_URL", "HTTP_TIMEOUT_SECONDS", "DEFAULT_RANGE_DAYS", "LOG_FORMAT"} {
		assert.Contains(t, err.Error(), want)
	}
	assert.NotContains(t, err.Error(), "SHUTDOWN_TIMEOUT_SECONDS")
}

func TestValidateRequiresUpstream(t *testing.T) {
	clearEnv(t)
	err := FromEnv().Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UPSTREAM_BASE_URL is required")
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "7000")
	// godotenv treats a variable set to "" as present, so drop it entirely;
	// t.Setenv in clearEnv restores the previous value afterwards.
	require.NoError(t, os.Unsetenv("UPSTREAM_BASE_URL"))
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("UPSTREAM_BASE_URL=http://upstream.local/report\nPORT=1234\n"), 0o600))

	require.NoError(t, LoadDotEnv(path))

	cfg := FromEnv()
	assert.Equal(t, "http://upstream.local/report", cfg.UpstreamURL)
	assert.Equal(t, "7000", cfg.Port, "existing env wins over .env")
}

func TestLoadDotEnvMissingFile(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "nope.env")))
}

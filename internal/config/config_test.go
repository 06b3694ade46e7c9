package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, []string{"*"}, cfg.Security.AllowedOrigins)
	assert.False(t, cfg.Security.RateLimit.Enabled)
	assert.Equal(t, "0.0.0.0:8000", cfg.ListenAddr())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("CALENDAR_SERVER_HOST", "127.0.0.1")
	t.Setenv("CALENDAR_SERVER_PORT", "9000")
	t.Setenv("CALENDAR_LOGGING_LEVEL", "debug")
	t.Setenv("CALENDAR_SECURITY_RATE_LIMIT_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Security.RateLimit.Enabled)
	assert.Equal(t, "127.0.0.1:9000", cfg.ListenAddr())
}

func TestLoadFromFileWithEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 9001
  read_timeout: 5s
logging:
  level: warn
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("CALENDAR_CONFIG_FILE", path)
	t.Setenv("CALENDAR_LOGGING_LEVEL", "error")

	cfg, err := Load()
	require.NoError(t, err)

	// File values apply, environment wins where both are set.
	assert.Equal(t, 9001, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "error", cfg.Logging.Level)
	// Untouched fields keep their defaults.
	assert.Equal(t, 60*time.Second, cfg.Server.IdleTimeout)
}

func TestLoadRejectsMissingFile(t *testing.T) {
	t.Setenv("CALENDAR_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	assert.Error(t, err)
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "port too large", mutate: func(c *Config) { c.Server.Port = 70000 }},
		{name: "negative port", mutate: func(c *Config) { c.Server.Port = -1 }},
		{name: "unknown log level", mutate: func(c *Config) { c.Logging.Level = "verbose" }},
		{name: "negative rps", mutate: func(c *Config) { c.Security.RateLimit.RPS = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

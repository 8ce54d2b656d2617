package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 8081
  env: production
database:
  driver: mysql
  url: user:pass@tcp(localhost:3306)/klarfix
jwt:
  secret: a-very-long-secret-that-is-long-enough
  ttl: 24h
payments:
  platform_fee_percent: 15
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("CONFIG_PATH", path)
	t.Setenv("SERVER_PORT", "9090")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 24*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, 15, cfg.Payments.PlatformFeePercent)
	assert.True(t, cfg.IsProduction())
	// untouched defaults survive
	assert.Equal(t, "auth_token", cfg.JWT.CookieName)
	assert.Equal(t, 5, cfg.RateLimit.ContactPerMinute)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Database.DSN = "file::memory:"
	cfg.Database.Driver = "sqlite"
	assert.Error(t, cfg.Validate(), "missing secret")

	cfg.JWT.Secret = "short"
	assert.NoError(t, cfg.Validate())

	cfg.Server.Env = "production"
	assert.Error(t, cfg.Validate(), "short secret in production")

	cfg.JWT.Secret = PlaceholderJWTSecret
	assert.Error(t, cfg.Validate(), "placeholder secret in production")

	cfg.Server.Env = "development"
	assert.NoError(t, cfg.Validate())

	cfg.Server.Env = "production"
	cfg.JWT.Secret = "a-very-long-secret-that-is-long-enough"
	assert.NoError(t, cfg.Validate())

	cfg.Server.Env = "development"
	cfg.Database.Driver = "oracle"
	assert.Error(t, cfg.Validate())
}

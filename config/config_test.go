package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "buysimply.hcl")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
environment = "production"
log_level   = "debug"

listener "api" {
  address = "127.0.0.1:8080"
}

auth {
  jwt_secret = "unit-test-secret"
  token_ttl  = "10m"
}

throttle {
  limit  = 20
  window = "30s"
}
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "127.0.0.1:8080", cfg.ListenAddress())

	ttl, err := cfg.TokenTTL()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Minute, ttl)

	window, err := cfg.ThrottleWindow()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, window)
	assert.Equal(t, 20, cfg.Throttle.Limit)
}

func TestLoadConfig_DefaultsAndEnvOverrides(t *testing.T) {
	t.Setenv("BUYSIMPLY_ENV", "production")
	t.Setenv("BUYSIMPLY_JWT_SECRET", "from-environment")

	path := writeConfig(t, `
environment = "development"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "from-environment", cfg.Auth.JWTSecret)
	assert.Equal(t, "0.0.0.0:3000", cfg.ListenAddress())

	ttl, err := cfg.TokenTTL()
	require.NoError(t, err)
	assert.Zero(t, ttl)
}

func TestLoadConfig_MissingSecret(t *testing.T) {
	t.Setenv("BUYSIMPLY_JWT_SECRET", "")

	path := writeConfig(t, `
environment = "development"
`)

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt_secret")
}

func TestLoadConfig_InvalidEnvironment(t *testing.T) {
	path := writeConfig(t, `
environment = "staging"

auth {
  jwt_secret = "unit-test-secret"
}
`)

	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestLoadConfig_InvalidTokenTTL(t *testing.T) {
	path := writeConfig(t, `
auth {
  jwt_secret = "unit-test-secret"
  token_ttl  = "ten minutes"
}
`)

	_, err := LoadConfig(path)
	require.Error(t, err)
}

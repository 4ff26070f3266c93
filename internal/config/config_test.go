package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NekroDarkmoon/Zen.A5E/internal/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "zen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoadWithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "?", cfg.Bot.DefaultPrefix)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
bot:
  display_name: "Zen Dev"
  lookup_timeout: 30s
  candidate_limit: 3
database:
  driver: sqlite
  path: ":memory:"
gateway:
  listen: ":9000"
  origin_patterns: ["localhost:*"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Zen Dev", cfg.Bot.DisplayName)
	assert.Equal(t, 30*time.Second, cfg.Bot.LookupTimeout)
	assert.Equal(t, 3, cfg.Bot.CandidateLimit)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, ":memory:", cfg.Database.Path)
	assert.Equal(t, ":9000", cfg.Gateway.Listen)
	assert.Equal(t, []string{"localhost:*"}, cfg.Gateway.OriginPatterns)
	// untouched sections keep their defaults
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "?", cfg.Bot.DefaultPrefix)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestLoadMalformedFile(t *testing.T) {
	path := writeConfig(t, "bot: [\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := writeConfig(t, `
bot:
  candidate_limit: 40
database:
  driver: mysql
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
	assert.Contains(t, err.Error(), "bot.candidate_limit")
	assert.Contains(t, err.Error(), "database.driver")
}

func TestEnvOverrides(t *testing.T) {
	env := map[string]string{
		"ZEN_DATABASE_DRIVER":         "sqlite",
		"ZEN_DATABASE_PATH":           "/var/lib/zen/zen.db",
		"ZEN_REDIS_ADDR":              "redis:6379",
		"ZEN_REDIS_DB":                "2",
		"ZEN_BOT_LOOKUP_TIMEOUT":      "45s",
		"ZEN_GATEWAY_ORIGIN_PATTERNS": "example.com, *.example.com,",
		"ZEN_LOG_MODE":                "development",
	}
	lookup := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}

	cfg := Default()
	require.NoError(t, cfg.applyEnvOverrides(lookup))

	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "/var/lib/zen/zen.db", cfg.Database.Path)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, 45*time.Second, cfg.Bot.LookupTimeout)
	assert.Equal(t, []string{"example.com", "*.example.com"}, cfg.Gateway.OriginPatterns)
	assert.Equal(t, "development", cfg.Log.Mode)
}

func TestEnvOverridesRejectBadNumbers(t *testing.T) {
	lookup := func(key string) (string, bool) {
		switch key {
		case "ZEN_REDIS_DB":
			return "two", true
		case "ZEN_BOT_LOOKUP_TIMEOUT":
			return "soon", true
		}
		return "", false
	}

	err := Default().applyEnvOverrides(lookup)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ZEN_REDIS_DB")
	assert.Contains(t, err.Error(), "ZEN_BOT_LOOKUP_TIMEOUT")
}

func TestLoadAppliesEnv(t *testing.T) {
	t.Setenv("ZEN_BOT_DISPLAY_NAME", "name-from-env")
	path := writeConfig(t, "bot:\n  display_name: name-from-file\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "name-from-env", cfg.Bot.DisplayName)
}

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("testdata/nonexistent.yaml")
	require.NoError(t, err)

	assert.Equal(t, ProviderModeMock, cfg.Provider.Mode)
	assert.Equal(t, 6, cfg.RateLimit.PerMinute)
	assert.Equal(t, 2, cfg.RateLimit.PerNumberPerMinute)
	assert.Equal(t, ":3000", cfg.Server.Address())
	assert.Empty(t, cfg.CORS.Origins())
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("DCG_SERVER_PORT", "8080")
	t.Setenv("DCG_ENVIRONMENT", "production")

	cfg, err := Load("testdata/nonexistent.yaml")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "production", cfg.Environment)
}

func TestLoadRejectsUnknownProviderMode(t *testing.T) {
	t.Setenv("DCG_PROVIDER_MODE", "carrier-pigeon")

	_, err := Load("testdata/nonexistent.yaml")
	assert.Error(t, err)
}

func TestCORSOrigins(t *testing.T) {
	c := CORSConfig{AllowedOrigins: "https://a.example.com, https://b.example.com ,"}
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, c.Origins())
}

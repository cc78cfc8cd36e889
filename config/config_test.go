package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DB_USER", "scribe")
	t.Setenv("DB_PASSWORD", "hunter2")
	t.Setenv("DB_NAME", "scribe")
	t.Setenv("JWT_SECRET", "config-test-secret")
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, 10, cfg.DB.MaxSize)
	assert.Equal(t, "config-test-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenLifetime)
	assert.Equal(t, "127.0.0.1:3000", cfg.Server.Addr())
}

func TestLoadConfigLifetimeInDays(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_EXPIRATION_DAYS", "7")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.TokenLifetime)
}

func TestLoadConfigCollectsErrors(t *testing.T) {
	setRequired(t)
	t.Setenv("DB_PORT", "not-a-number")
	t.Setenv("JWT_EXPIRATION_DAYS", "0")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PORT")
	assert.Contains(t, err.Error(), "JWT_EXPIRATION_DAYS")
}

func TestLoadConfigClampsPoolSize(t *testing.T) {
	setRequired(t)
	t.Setenv("DB_MAX_CONNECTIONS", "500")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.DB.MaxSize)
}

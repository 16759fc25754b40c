package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "peerly", cfg.AppName)
	assert.Equal(t, "peerly", cfg.JWTIssuer)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry())
	assert.Equal(t, 500, cfg.CoreValueCacheSize)
	assert.Equal(t, 5*time.Minute, cfg.CoreValueCacheTTL)
	assert.False(t, cfg.DBAutoMigrate)
	assert.True(t, cfg.MetricsEnabled)
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Config{JWTSecret: "x", JWTExpiryHours: 0, CoreValueCacheSize: 1}
	assert.Error(t, cfg.Validate())

	cfg.JWTExpiryHours = 1
	assert.NoError(t, cfg.Validate())

	cfg.CoreValueCacheSize = 0
	assert.Error(t, cfg.Validate())
}

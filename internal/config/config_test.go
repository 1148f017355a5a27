package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "testsecret")

	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "0 8 * * *", cfg.NotifyCron)
	assert.Equal(t, "testsecret", cfg.JWTSecret)
}

func TestNewConfigRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := NewConfig()
	assert.Error(t, err)
}

func TestNewConfigOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "testsecret")
	t.Setenv("PORT", "9090")
	t.Setenv("NOTIFY_CRON", "@hourly")

	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "@hourly", cfg.NotifyCron)
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "pickup-service", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
	assert.Equal(t, 300*time.Millisecond, cfg.PickupAPI.Latency())
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("PICKUP_API_LATENCY_MILLIS", "0")
	t.Setenv("AUTH_ACCESS_TOKEN_TTL_MINUTES", "15")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, time.Duration(0), cfg.PickupAPI.Latency())
	assert.Equal(t, 15, cfg.Auth.AccessTokenTTLMinutes)
}

func TestInvalidIntFallsBack(t *testing.T) {
	t.Setenv("HTTP_REQUEST_TIMEOUT_SECONDS", "not-a-number")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.App.RequestTimeoutSeconds)
}

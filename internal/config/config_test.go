package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const strongSecret = "0123456789abcdef0123456789abcdef"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", strongSecret)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 15*time.Second, cfg.GatewayTimeout)
	assert.Equal(t, 720*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.Configured(), "no gateway endpoint means setup mode")
}

func TestLoad_SecretValidation(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		t.Setenv("SESSION_SECRET", "")
		_, err := Load()
		assert.ErrorIs(t, err, ErrMissingSecret)
	})

	t.Run("too short", func(t *testing.T) {
		t.Setenv("SESSION_SECRET", "short")
		_, err := Load()
		assert.ErrorIs(t, err, ErrWeakSecret)
	})
}

func TestLoad_GatewayURL(t *testing.T) {
	t.Setenv("SESSION_SECRET", strongSecret)

	t.Run("absolute URL accepted", func(t *testing.T) {
		t.Setenv("GATEWAY_URL", "https://script.example.com/exec")
		cfg, err := Load()
		require.NoError(t, err)
		assert.True(t, cfg.Configured())
	})

	t.Run("relative URL rejected", func(t *testing.T) {
		t.Setenv("GATEWAY_URL", "not-a-url")
		_, err := Load()
		assert.ErrorIs(t, err, ErrBadGatewayURL)
	})
}

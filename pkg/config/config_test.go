package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("IMAGE_PROVIDER", "")

	cfg := FromViper(New())

	assert.Equal(t, "win", cfg.JWTIssuer)
	assert.Equal(t, 60, cfg.JWTTTLMinutes)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 60*time.Second, cfg.ImageTimeout)
	assert.Equal(t, "/media", cfg.MediaBaseURL)
	assert.Empty(t, cfg.DatabaseURL)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_URL", " postgres://win@localhost/win ")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("IMAGE_PROVIDER", " Gemini ")
	t.Setenv("IMAGE_TIMEOUT", "5s")
	t.Setenv("LOG_JSON", "true")

	cfg := FromViper(New())

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "postgres://win@localhost/win", cfg.DatabaseURL)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, ImageProviderGemini, cfg.ImageProvider)
	assert.Equal(t, 5*time.Second, cfg.ImageTimeout)
	assert.True(t, cfg.LogJSON)
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("API_BASE_URL", "")
	t.Setenv("GEMINI_TIMEOUT", "")
	t.Setenv("GOOGLE_REDIRECT_URI", "")
	t.Setenv("STATE_SECRET", "")

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "http://localhost:8080", cfg.APIBaseURL)
	assert.Equal(t, 30*time.Second, cfg.GeminiTimeout)
	assert.Equal(t, "http://localhost:8080/api/auth/callback", cfg.GoogleRedirectURI)
	assert.Equal(t, "change-me-in-production", cfg.StateSecret)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("GEMINI_TIMEOUT", "5s")
	t.Setenv("GEMINI_API_KEY", "key-123")

	cfg := Load()
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.GeminiTimeout)
	assert.Equal(t, "key-123", cfg.GeminiAPIKey)
}

func TestLoadInvalidTimeoutFallsBack(t *testing.T) {
	t.Setenv("GEMINI_TIMEOUT", "soon")

	cfg := Load()
	assert.Equal(t, 30*time.Second, cfg.GeminiTimeout)
}

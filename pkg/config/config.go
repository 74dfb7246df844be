package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port               string
	APIBaseURL         string
	GeminiAPIKey       string
	GeminiTimeout      time.Duration
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURI  string
	LineChannelToken   string
	LineChannelSecret  string
	StateSecret        string
	DatabaseURL        string
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	geminiTimeout := 30 * time.Second
	if raw := os.Getenv("GEMINI_TIMEOUT"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			geminiTimeout = parsed
		}
	}

	return &Config{
		Port:               getEnv("PORT", "8080"),
		APIBaseURL:         getEnv("API_BASE_URL", "http://localhost:8080"),
		GeminiAPIKey:       getEnv("GEMINI_API_KEY", os.Getenv("GENERATIVE_API_KEY")),
		GeminiTimeout:      geminiTimeout,
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURI:  getEnv("GOOGLE_REDIRECT_URI", "http://localhost:8080/api/auth/callback"),
		LineChannelToken:   getEnv("LINE_CHANNEL_TOKEN", ""),
		LineChannelSecret:  getEnv("LINE_CHANNEL_SECRET", ""),
		StateSecret:        getEnv("STATE_SECRET", "change-me-in-production"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

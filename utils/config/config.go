package config

import (
	"errors"
	"os"
)

// ErrMissingAPIKey is returned when GEMINI_API_KEY is not set.
var ErrMissingAPIKey = errors.New("GEMINI_API_KEY is not set")

type Config struct {
	// Server
	Port      string
	BodyLimit string

	// Gemini
	GeminiAPIKey     string
	GeminiModel      string
	GeminiAPIVersion string
	GeminiBaseURL    string
}

// Load reads the process configuration from the environment. Callers are
// expected to have loaded any .env file beforehand.
func Load() (*Config, error) {
	cfg := &Config{
		Port:             getEnvOrDefault("PORT", "5000"),
		BodyLimit:        getEnvOrDefault("BODY_LIMIT", "10M"),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		GeminiModel:      getEnvOrDefault("GEMINI_MODEL", "gemini-2.0-flash"),
		GeminiAPIVersion: getEnvOrDefault("GEMINI_API_VERSION", "v1beta"),
		GeminiBaseURL:    os.Getenv("GEMINI_BASE_URL"),
	}

	if cfg.GeminiAPIKey == "" {
		return nil, ErrMissingAPIKey
	}
	return cfg, nil
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

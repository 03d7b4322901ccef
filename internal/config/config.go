package config

import (
	"fmt"
	"os"
)

// Config holds everything the binaries read from the environment.
type Config struct {
	DatabaseURL    string
	ServerPort     string
	AllowedOrigins string
	OpenAIAPIKey   string

	LogLevel  string
	LogFormat string
}

// Load reads configuration from the environment. DATABASE_URL is the only
// required value; everything else has a sensible default.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", ""),
		OpenAIAPIKey:   getEnv("OPENAI_API_KEY", ""),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "console"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

package config

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds application configuration for the commands in cmd/.
// Transport-level settings (base URL, org token) live in the api package;
// this only covers process-wide concerns.
type Config struct {
	ServiceURL string
	LogLevel   zerolog.Level
}

// Load loads application configuration from environment variables.
func Load() *Config {
	return &Config{
		ServiceURL: getEnvOrDefault("PEOPLELENS_BASE_URL", "https://api.peoplelens.io"),
		LogLevel:   getLogLevel(),
	}
}

// Init initializes all application dependencies.
func (c *Config) Init() {
	InitLogger()
	SetLogLevel(c.LogLevel)

	log.Info().
		Str("service_url", c.ServiceURL).
		Str("log_level", c.LogLevel.String()).
		Msg("Application configuration loaded")
}

// getEnvOrDefault returns environment variable value or default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getLogLevel parses log level from environment or returns default.
func getLogLevel() zerolog.Level {
	switch os.Getenv("LOG_LEVEL") {
	case "debug", "DEBUG":
		return zerolog.DebugLevel
	case "info", "INFO":
		return zerolog.InfoLevel
	case "warn", "WARN":
		return zerolog.WarnLevel
	case "error", "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

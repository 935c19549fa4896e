package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

type Config struct {
	DatabasePath string
	DatabaseURL  string
	APIToken     string
	LogLevel     string
	Port         string
}

func Load() (Config, error) {
	config := Config{
		DatabasePath: envOrDefault("DATABASE_PATH", "./data/orchid-care.db"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		APIToken:     os.Getenv("API_TOKEN"),
		LogLevel:     envOrDefault("LOG_LEVEL", "info"),
		Port:         envOrDefault("PORT", "8080"),
	}

	if config.APIToken == "" {
		return Config{}, fmt.Errorf("API_TOKEN is required")
	}
	if _, err := ParseLogLevel(config.LogLevel); err != nil {
		return Config{}, err
	}

	return config, nil
}

// UsePostgres reports whether DATABASE_URL points at a Postgres server.
func (config Config) UsePostgres() bool {
	return strings.HasPrefix(config.DatabaseURL, "postgres://") ||
		strings.HasPrefix(config.DatabaseURL, "postgresql://")
}

func ParseLogLevel(value string) (slog.Level, error) {
	switch strings.ToLower(value) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown LOG_LEVEL %q", value)
}

func envOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

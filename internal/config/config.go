// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Store drivers.
const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

type Config struct {
	Addr            string
	WebDir          string
	VerifyPasswords bool
	Store           StoreConfig
	Log             LogConfig
}

type StoreConfig struct {
	Driver      string
	Path        string
	DatabaseURL string
}

type LogConfig struct {
	Level  slog.Level
	Format string // "text" or "json"
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Load reads an optional .env file and then the environment. The result is
// not validated; callers apply their overrides and then call Validate.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	verify, err := strconv.ParseBool(getEnvOrDefault("SLIMTRACK_VERIFY_PASSWORDS", "false"))
	if err != nil {
		return nil, fmt.Errorf("SLIMTRACK_VERIFY_PASSWORDS: %w", err)
	}

	cfg := &Config{
		Addr:            getEnvOrDefault("SLIMTRACK_ADDR", "127.0.0.1:8080"),
		WebDir:          getEnvOrDefault("SLIMTRACK_WEB_DIR", "web"),
		VerifyPasswords: verify,
		Store: StoreConfig{
			Driver:      getEnvOrDefault("SLIMTRACK_STORE", StoreSQLite),
			Path:        getEnvOrDefault("SLIMTRACK_DB_PATH", "slimtrack.db"),
			DatabaseURL: os.Getenv("DATABASE_URL"),
		},
		Log: LogConfig{
			Level:  parseLogLevel(getEnvOrDefault("SLIMTRACK_LOG_LEVEL", "info")),
			Format: getEnvOrDefault("SLIMTRACK_LOG_FORMAT", "text"),
		},
	}
	return cfg, nil
}

// Validate checks the store and log settings.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case StoreMemory, StoreSQLite:
	case StorePostgres:
		if c.Store.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres store")
		}
	default:
		return fmt.Errorf("unknown store %q (want memory, sqlite or postgres)", c.Store.Driver)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q (want text or json)", c.Log.Format)
	}
	return nil
}

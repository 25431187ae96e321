package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store kinds accepted in FACTORY_STORE.
const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreSurreal  = "surreal"
)

// Config holds all tool configuration
type Config struct {
	Factory  FactoryConfig
	Store    StoreConfig
	Database DatabaseConfig
	Log      LogConfig
}

// FactoryConfig holds definition loading and resolution settings
type FactoryConfig struct {
	DefinitionsPath string
	MaxResolveSteps int
}

// StoreConfig selects where created models are saved
type StoreConfig struct {
	Kind    string
	DSN     string
	Timeout time.Duration
}

// DatabaseConfig holds SurrealDB connection settings
type DatabaseConfig struct {
	Host      string
	Port      string
	Namespace string
	Database  string
	User      string
	Password  string
}

// LogConfig holds slog handler settings
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	return &Config{
		Factory: FactoryConfig{
			DefinitionsPath: getEnv("FACTORY_DEFINITIONS", "tests/factories.yaml"),
			MaxResolveSteps: getIntEnv("FACTORY_MAX_RESOLVE_STEPS", 10000),
		},
		Store: StoreConfig{
			Kind:    getEnv("FACTORY_STORE", StoreMemory),
			DSN:     getEnv("FACTORY_SQL_DSN", ""),
			Timeout: getDurationEnv("FACTORY_STORE_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Host:      getEnv("DB_HOST", "localhost"),
			Port:      getEnv("DB_PORT", "8000"),
			Namespace: getEnv("DB_NAMESPACE", "factorygirl"),
			Database:  getEnv("DB_DATABASE", "test"),
			User:      getEnv("DB_USER", "root"),
			Password:  getEnv("DB_PASSWORD", "root"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
	}, nil
}

// Validate checks that all required configuration values are present and valid.
// It returns an error describing all validation failures, or nil if valid.
func (c *Config) Validate() error {
	var errs []error

	if c.Factory.MaxResolveSteps < 0 {
		errs = append(errs, errors.New("FACTORY_MAX_RESOLVE_STEPS must not be negative"))
	}

	switch c.Store.Kind {
	case StoreMemory, StoreSQLite:
	case StorePostgres:
		if c.Store.DSN == "" {
			errs = append(errs, errors.New("FACTORY_SQL_DSN is required for the postgres store"))
		}
	case StoreSurreal:
		if c.Database.Host == "" {
			errs = append(errs, errors.New("DB_HOST is required for the surreal store"))
		}
		if c.Database.Port == "" {
			errs = append(errs, errors.New("DB_PORT is required for the surreal store"))
		}
		if c.Database.Namespace == "" {
			errs = append(errs, errors.New("DB_NAMESPACE is required for the surreal store"))
		}
		if c.Database.Database == "" {
			errs = append(errs, errors.New("DB_DATABASE is required for the surreal store"))
		}
	default:
		errs = append(errs, fmt.Errorf("FACTORY_STORE must be 'memory', 'sqlite', 'postgres', or 'surreal', got '%s'", c.Store.Kind))
	}
	if c.Store.Timeout <= 0 {
		errs = append(errs, errors.New("FACTORY_STORE_TIMEOUT must be positive"))
	}

	if _, err := parseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	if c.Log.Format != "json" && c.Log.Format != "text" {
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be 'json' or 'text', got '%s'", c.Log.Format))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// SQLiteDSN returns the sqlite DSN, defaulting to a private in-memory database
func (s StoreConfig) SQLiteDSN() string {
	if s.DSN == "" {
		return ":memory:"
	}
	return s.DSN
}

// SlogLevel returns the configured level, or info when it is invalid
func (l LogConfig) SlogLevel() slog.Level {
	level, err := parseLevel(l.Level)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("LOG_LEVEL must be 'debug', 'info', 'warn', or 'error', got '%s'", s)
	}
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

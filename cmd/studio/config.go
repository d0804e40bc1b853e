package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spetersoncode/genstudio/client"
	"github.com/spetersoncode/genstudio/retry"
)

// Config holds the CLI configuration loaded from environment variables.
type Config struct {
	// Storage
	DBPath string

	// Fallback API key used when the pool has no eligible key
	FallbackKey string

	LogLevel string // debug, info, warn, error

	// Retry
	MaxAttempts          int
	RetryDelay           time.Duration
	MaxRetryDelay        time.Duration
	ResetErrorsOnSuccess bool

	// Generation
	PollInterval time.Duration
	Pacing       time.Duration
}

// LoadConfig loads configuration from environment variables.
// It loads a .env file if present (silent fail if not found).
func LoadConfig() (*Config, error) {
	godotenv.Load() // Load .env file if present

	cfg := &Config{
		DBPath:               getEnvOrDefault("STUDIO_DB", "genstudio.db"),
		FallbackKey:          getEnvOrDefault("GEMINI_API_KEY", os.Getenv("API_KEY")),
		LogLevel:             getEnvOrDefault("STUDIO_LOG_LEVEL", "info"),
		MaxAttempts:          getEnvIntOrDefault("STUDIO_MAX_ATTEMPTS", 3),
		RetryDelay:           getEnvDurationOrDefault("STUDIO_RETRY_DELAY", time.Second),
		MaxRetryDelay:        getEnvDurationOrDefault("STUDIO_MAX_RETRY_DELAY", time.Minute),
		ResetErrorsOnSuccess: getEnvBoolOrDefault("STUDIO_RESET_ERRORS_ON_SUCCESS", false),
		PollInterval:         getEnvDurationOrDefault("STUDIO_POLL_INTERVAL", 5*time.Second),
		Pacing:               getEnvDurationOrDefault("STUDIO_PACING", 0),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.MaxAttempts < 1 {
		return fmt.Errorf("STUDIO_MAX_ATTEMPTS must be at least 1, got %d", c.MaxAttempts)
	}
	if c.RetryDelay < 0 || c.MaxRetryDelay < 0 {
		return fmt.Errorf("STUDIO_RETRY_DELAY and STUDIO_MAX_RETRY_DELAY must not be negative")
	}
	if c.MaxRetryDelay > 0 && c.MaxRetryDelay < c.RetryDelay {
		return fmt.Errorf("STUDIO_MAX_RETRY_DELAY (%s) is shorter than STUDIO_RETRY_DELAY (%s)", c.MaxRetryDelay, c.RetryDelay)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("STUDIO_POLL_INTERVAL must be positive, got %s", c.PollInterval)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// RetryConfig returns the executor retry settings.
func (c *Config) RetryConfig() retry.Config {
	cfg := retry.DefaultConfig()
	cfg.MaxAttempts = c.MaxAttempts
	cfg.InitialDelay = c.RetryDelay
	cfg.MaxDelay = c.MaxRetryDelay
	return cfg
}

// ClientConfig maps the configuration onto a client.Config.
func (c *Config) ClientConfig(logger *slog.Logger, events chan<- retry.Event) client.Config {
	rc := c.RetryConfig()
	return client.Config{
		DBPath:               c.DBPath,
		FallbackKey:          c.FallbackKey,
		RetryConfig:          &rc,
		ResetErrorsOnSuccess: c.ResetErrorsOnSuccess,
		Pacing:               c.Pacing,
		PollInterval:         c.PollInterval,
		Events:               events,
		Logger:               logger,
	}
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown STUDIO_LOG_LEVEL %q (must be debug, info, warn or error)", s)
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"STUDIO_DB", "GEMINI_API_KEY", "API_KEY", "STUDIO_LOG_LEVEL",
		"STUDIO_MAX_ATTEMPTS", "STUDIO_RETRY_DELAY", "STUDIO_MAX_RETRY_DELAY",
		"STUDIO_POLL_INTERVAL", "STUDIO_PACING", "STUDIO_RESET_ERRORS_ON_SUCCESS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		clearEnv(t)

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "genstudio.db", cfg.DBPath)
		assert.Empty(t, cfg.FallbackKey)
		assert.Equal(t, 3, cfg.MaxAttempts)
		assert.Equal(t, time.Second, cfg.RetryDelay)
		assert.Equal(t, time.Minute, cfg.MaxRetryDelay)
		assert.Equal(t, 5*time.Second, cfg.PollInterval)
		assert.Zero(t, cfg.Pacing)
		assert.False(t, cfg.ResetErrorsOnSuccess)
	})

	t.Run("reads the environment", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("STUDIO_DB", "/tmp/x.db")
		t.Setenv("API_KEY", "api-key")
		t.Setenv("STUDIO_MAX_ATTEMPTS", "5")
		t.Setenv("STUDIO_RETRY_DELAY", "250ms")
		t.Setenv("STUDIO_PACING", "2s")
		t.Setenv("STUDIO_RESET_ERRORS_ON_SUCCESS", "true")
		t.Setenv("STUDIO_LOG_LEVEL", "debug")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "/tmp/x.db", cfg.DBPath)
		assert.Equal(t, "api-key", cfg.FallbackKey)
		assert.Equal(t, 5, cfg.MaxAttempts)
		assert.Equal(t, 250*time.Millisecond, cfg.RetryDelay)
		assert.Equal(t, 2*time.Second, cfg.Pacing)
		assert.True(t, cfg.ResetErrorsOnSuccess)

		rc := cfg.RetryConfig()
		assert.Equal(t, 5, rc.MaxAttempts)
		assert.Equal(t, 250*time.Millisecond, rc.InitialDelay)
		assert.Equal(t, 2.0, rc.Multiplier)
	})

	t.Run("GEMINI_API_KEY wins over API_KEY", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("GEMINI_API_KEY", "gemini")
		t.Setenv("API_KEY", "generic")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "gemini", cfg.FallbackKey)
	})

	t.Run("unparseable values fall back to defaults", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("STUDIO_MAX_ATTEMPTS", "lots")
		t.Setenv("STUDIO_POLL_INTERVAL", "soon")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, 3, cfg.MaxAttempts)
		assert.Equal(t, 5*time.Second, cfg.PollInterval)
	})
}

func TestConfigValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{MaxAttempts: 3, RetryDelay: time.Second, MaxRetryDelay: time.Minute, PollInterval: time.Second, LogLevel: "info"}
	}

	tests := []struct {
		name   string
		modify func(*Config)
		errMsg string
	}{
		{"valid", func(*Config) {}, ""},
		{"zero attempts", func(c *Config) { c.MaxAttempts = 0 }, "STUDIO_MAX_ATTEMPTS"},
		{"negative delay", func(c *Config) { c.RetryDelay = -time.Second }, "must not be negative"},
		{"max below initial", func(c *Config) { c.MaxRetryDelay = time.Millisecond }, "shorter than"},
		{"uncapped delay", func(c *Config) { c.MaxRetryDelay = 0 }, ""},
		{"zero poll interval", func(c *Config) { c.PollInterval = 0 }, "STUDIO_POLL_INTERVAL"},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, "STUDIO_LOG_LEVEL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

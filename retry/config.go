// Package retry provides the backoff schedule, failure classification and
// attempt events used by the call executor when rotating credentials.
package retry

import (
	"math"
	"math/rand"
	"time"
)

// Config is the credential rotation schedule. Each attempt may land on a
// different key; the wait between attempts grows exponentially.
type Config struct {
	// MaxAttempts bounds the calls made for one operation, first call included.
	MaxAttempts int

	// InitialDelay is the wait after the first credential failure.
	InitialDelay time.Duration

	// MaxDelay caps every wait. Zero means uncapped.
	MaxDelay time.Duration

	// Multiplier grows the wait after each further failure.
	Multiplier float64

	// Jitter scales each wait by a random factor in [1-Jitter, 1+Jitter].
	// Zero keeps waits deterministic.
	Jitter float64
}

// DefaultConfig is three attempts waiting 1s then 2s, capped at one minute,
// without jitter.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:  3,
		InitialDelay: 1 * time.Second,
		MaxDelay:     60 * time.Second,
		Multiplier:   2.0,
	}
}

// Disabled makes a single attempt with no rotation.
func Disabled() Config {
	return Config{MaxAttempts: 1}
}

// Delay is the wait after the failed attempt with the given 0-based index:
// InitialDelay * Multiplier^attempt, capped by MaxDelay, then jittered.
func (c Config) Delay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}

	multiplier := c.Multiplier
	if multiplier <= 0 {
		multiplier = 1
	}
	delay := float64(c.InitialDelay) * math.Pow(multiplier, float64(attempt))
	if c.MaxDelay > 0 && delay > float64(c.MaxDelay) {
		delay = float64(c.MaxDelay)
	}

	if c.Jitter > 0 {
		delay *= 1.0 + (rand.Float64()*2-1)*c.Jitter
	}

	return time.Duration(delay)
}

// Attempts returns MaxAttempts, treating non-positive values as one attempt.
func (c Config) Attempts() int {
	if c.MaxAttempts < 1 {
		return 1
	}
	return c.MaxAttempts
}

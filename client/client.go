package client

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spetersoncode/genstudio"
	"github.com/spetersoncode/genstudio/credential"
	"github.com/spetersoncode/genstudio/executor"
	"github.com/spetersoncode/genstudio/internal/provider/google"
	"github.com/spetersoncode/genstudio/models"
	"github.com/spetersoncode/genstudio/retry"
	"github.com/spetersoncode/genstudio/store"
	"github.com/spetersoncode/genstudio/store/sqlite"
	"github.com/spetersoncode/genstudio/studio"
)

// Config holds configuration for assembling a studio client.
type Config struct {
	// DBPath is the SQLite database holding keys and model preferences.
	// Empty keeps everything in memory for the life of the process.
	DBPath string

	// FallbackKey is used when the pool has no eligible key, typically the
	// GEMINI_API_KEY environment variable.
	FallbackKey string

	// RetryConfig configures retry behavior for quota and credential errors.
	// If nil, uses retry.DefaultConfig (3 attempts, 1s doubling backoff).
	RetryConfig *retry.Config

	// ResetErrorsOnSuccess clears a key's error count after a successful call.
	ResetErrorsOnSuccess bool

	// Pacing spaces the sequential calls of multi-image operations.
	Pacing time.Duration

	// PollInterval is the delay between video operation polls.
	// Zero uses studio.DefaultPollInterval.
	PollInterval time.Duration

	// Events is an optional channel for receiving attempt events.
	// Events are sent non-blocking; if the channel is full, events are dropped.
	Events chan<- retry.Event

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// Factory and Prober default to the Gemini API binding.
	Factory genstudio.ProviderFactory
	Prober  genstudio.Prober

	// Adapter overrides the persistence backend selected by DBPath.
	Adapter store.Adapter
}

// Client bundles the key pool, the model preferences and the studio
// operations over one persistence backend.
type Client struct {
	*studio.Service

	Keys     *credential.Store
	Selector *credential.Selector
	Models   *models.Store

	db       *sqlite.DB
	fallback bool
}

// New assembles a Client from cfg.
func New(cfg Config) (*Client, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	c := &Client{fallback: cfg.FallbackKey != ""}
	adapter := cfg.Adapter
	if adapter == nil {
		if cfg.DBPath != "" {
			db, err := sqlite.Open(cfg.DBPath)
			if err != nil {
				return nil, fmt.Errorf("open store: %w", err)
			}
			c.db = db
			adapter = sqlite.NewAdapter(db)
		} else {
			adapter = store.NewMemoryAdapter()
		}
	}

	factory := cfg.Factory
	if factory == nil {
		factory = google.Factory
	}
	prober := cfg.Prober
	if prober == nil {
		prober = google.NewProber()
	}

	c.Keys = credential.NewStore(adapter, prober, credential.WithLogger(logger))
	c.Selector = credential.NewSelector(c.Keys, cfg.FallbackKey)
	c.Models = models.NewStore(adapter)

	retryCfg := retry.DefaultConfig()
	if cfg.RetryConfig != nil {
		retryCfg = *cfg.RetryConfig
	}
	execOpts := []executor.Option{
		executor.WithConfig(retryCfg),
		executor.WithEvents(cfg.Events),
		executor.WithLogger(logger),
	}
	if cfg.ResetErrorsOnSuccess {
		execOpts = append(execOpts, executor.WithResetErrorsOnSuccess())
	}
	exec := executor.New(&credential.Pool{Store: c.Keys, Selector: c.Selector}, factory, execOpts...)

	svcOpts := []studio.Option{
		studio.WithPacing(cfg.Pacing),
		studio.WithLogger(logger),
	}
	if cfg.PollInterval > 0 {
		svcOpts = append(svcOpts, studio.WithPollInterval(cfg.PollInterval))
	}
	c.Service = studio.New(exec, c.Models, svcOpts...)

	return c, nil
}

// KeyStatus summarizes the pool for display.
type KeyStatus struct {
	Total    int
	Eligible int
	// Fallback is true when a fallback key is configured.
	Fallback bool
}

// Ready returns true if a call could obtain a credential.
func (s KeyStatus) Ready() bool {
	return s.Eligible > 0 || s.Fallback
}

// Status reports how many keys are stored and usable.
func (c *Client) Status(ctx context.Context) (KeyStatus, error) {
	creds, err := c.Keys.List(ctx)
	if err != nil {
		return KeyStatus{}, err
	}
	st := KeyStatus{Total: len(creds), Fallback: c.fallback}
	for _, cred := range creds {
		if cred.Eligible() {
			st.Eligible++
		}
	}
	return st, nil
}

// Close releases the database, if any.
func (c *Client) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

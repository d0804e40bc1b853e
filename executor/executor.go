// Package executor runs provider calls with credential rotation.
//
// Every attempt selects a credential, builds a provider bound to it and runs
// the caller's closure. Quota and auth failures are charged to the credential
// and retried with exponential backoff, possibly on a different credential.
// Everything else is terminal on first occurrence.
package executor

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/spetersoncode/genstudio"
	"github.com/spetersoncode/genstudio/credential"
	"github.com/spetersoncode/genstudio/retry"
)

// Credentials is the credential source used by the executor.
// *credential.Pool satisfies it.
type Credentials interface {
	Select(ctx context.Context) (string, error)
	RecordError(ctx context.Context, secret string) error
	ResetErrors(ctx context.Context, secret string) error
}

var _ Credentials = (*credential.Pool)(nil)

// Executor runs closures against providers bound to rotating credentials.
type Executor struct {
	creds          Credentials
	factory        genstudio.ProviderFactory
	config         retry.Config
	sleep          func(ctx context.Context, d time.Duration) error
	events         chan<- retry.Event
	logger         *slog.Logger
	resetOnSuccess bool
}

// Option configures an Executor.
type Option func(*Executor)

// WithConfig sets the retry configuration.
func WithConfig(cfg retry.Config) Option {
	return func(e *Executor) {
		e.config = cfg
	}
}

// WithMaxAttempts overrides the attempt ceiling.
func WithMaxAttempts(n int) Option {
	return func(e *Executor) {
		e.config.MaxAttempts = n
	}
}

// WithSleep replaces the backoff wait. Tests use it to record delays.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(e *Executor) {
		e.sleep = sleep
	}
}

// WithEvents sets a channel receiving attempt events. Sends never block;
// events are dropped when the channel is full.
func WithEvents(ch chan<- retry.Event) Option {
	return func(e *Executor) {
		e.events = ch
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Executor) {
		e.logger = logger
	}
}

// WithResetErrorsOnSuccess clears the error count of a credential when a call
// on it succeeds. Off by default, in which case error counts only grow.
func WithResetErrorsOnSuccess() Option {
	return func(e *Executor) {
		e.resetOnSuccess = true
	}
}

// New creates an Executor.
func New(creds Credentials, factory genstudio.ProviderFactory, opts ...Option) *Executor {
	e := &Executor{
		creds:   creds,
		factory: factory,
		config:  retry.DefaultConfig(),
		sleep:   sleepContext,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config returns the retry configuration in use.
func (e *Executor) Config() retry.Config {
	return e.config
}

// Run performs fn with rotation and retry. action names the user action for
// logs and error messages, e.g. "editing image". The returned error is always
// a *genstudio.Error.
func Run[T any](ctx context.Context, e *Executor, action string, fn func(ctx context.Context, p genstudio.Provider) (T, error)) (T, error) {
	var zero T
	requestID := uuid.NewString()
	maxAttempts := e.config.Attempts()
	logger := e.logger.With("request_id", requestID, "action", action)

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, Terminal(action, err)
		}

		secret, err := e.creds.Select(ctx)
		if err != nil {
			// An empty pool stays empty; retrying cannot help.
			logger.Warn("no credential available", "error", err)
			return zero, Terminal(action, err)
		}
		masked := credential.Mask(secret)

		retry.Emit(e.events, retry.Event{
			Type:        retry.EventAttemptStart,
			RequestID:   requestID,
			Action:      action,
			Credential:  masked,
			Attempt:     attempt + 1,
			MaxAttempts: maxAttempts,
		})

		provider, err := e.factory(ctx, secret)
		if err != nil {
			logger.Error("failed to create provider", "key", masked, "error", err)
			return zero, Terminal(action, err)
		}

		result, err := fn(ctx, provider)
		if err == nil {
			retry.Emit(e.events, retry.Event{
				Type:        retry.EventSuccess,
				RequestID:   requestID,
				Action:      action,
				Credential:  masked,
				Attempt:     attempt + 1,
				MaxAttempts: maxAttempts,
			})
			if e.resetOnSuccess {
				if rerr := e.creds.ResetErrors(ctx, secret); rerr != nil {
					logger.Warn("failed to reset error count", "key", masked, "error", rerr)
				}
			}
			if attempt > 0 {
				logger.Info("succeeded after retry", "attempt", attempt+1, "key", masked)
			}
			return result, nil
		}

		lastErr = err
		class := retry.Classify(err)

		retry.Emit(e.events, retry.Event{
			Type:        retry.EventAttemptFailed,
			RequestID:   requestID,
			Action:      action,
			Credential:  masked,
			Attempt:     attempt + 1,
			MaxAttempts: maxAttempts,
			Error:       err,
			Class:       class,
		})

		if !class.Retryable() {
			logger.Debug("terminal failure", "attempt", attempt+1, "key", masked, "error", err)
			return zero, Terminal(action, err)
		}

		logger.Warn("credential failure", "class", class, "attempt", attempt+1, "max_attempts", maxAttempts, "key", masked, "error", err)
		if rerr := e.creds.RecordError(ctx, secret); rerr != nil {
			logger.Warn("failed to record credential error", "key", masked, "error", rerr)
		}

		// Don't sleep after the last attempt
		if attempt < maxAttempts-1 {
			delay := e.config.Delay(attempt)
			retry.Emit(e.events, retry.Event{
				Type:        retry.EventRetrying,
				RequestID:   requestID,
				Action:      action,
				Credential:  masked,
				Attempt:     attempt + 1,
				MaxAttempts: maxAttempts,
				Class:       class,
				Delay:       delay,
			})
			if err := e.sleep(ctx, delay); err != nil {
				return zero, Terminal(action, err)
			}
		}
	}

	retry.Emit(e.events, retry.Event{
		Type:        retry.EventExhausted,
		RequestID:   requestID,
		Action:      action,
		Attempt:     maxAttempts,
		MaxAttempts: maxAttempts,
		Error:       lastErr,
		Class:       retry.Classify(lastErr),
	})
	logger.Error("attempts exhausted", "max_attempts", maxAttempts, "error", lastErr)

	return zero, Terminal(action, lastErr)
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

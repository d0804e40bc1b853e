package credential

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/spetersoncode/genstudio"
	"github.com/spetersoncode/genstudio/store"
)

// Store is the persisted collection of credentials. Every mutation rewrites
// the whole collection through the adapter under an in-process lock.
type Store struct {
	mu      sync.Mutex
	adapter store.Adapter
	prober  genstudio.Prober
	now     func() time.Time
	logger  *slog.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithClock sets the time source used for LastUsedAt stamps.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

// WithLogger sets the logger used for store events.
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore creates a Store persisting to adapter and validating new secrets
// with prober.
func NewStore(adapter store.Adapter, prober genstudio.Prober, opts ...StoreOption) *Store {
	s := &Store{
		adapter: adapter,
		prober:  prober,
		now:     time.Now,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns a snapshot of all stored credentials in insertion order.
func (s *Store) List(ctx context.Context) ([]Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Add validates secret with the prober and stores it. It returns true if the
// secret authenticated. A rejected secret is stored invalid and inactive so
// the user can see it. A probe that reached no verdict stores nothing and
// returns an error wrapping genstudio.ErrProbeFailed.
func (s *Store) Add(ctx context.Context, secret string) (bool, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return false, fmt.Errorf("add credential: empty secret")
	}

	creds, err := s.List(ctx)
	if err != nil {
		return false, err
	}
	if indexOf(creds, secret) >= 0 {
		return false, ErrDuplicate
	}

	// The probe is a network call; keep it outside the lock.
	result := s.prober.Probe(ctx, secret)
	switch result.Status {
	case genstudio.ProbeValid, genstudio.ProbeInvalid:
	default:
		s.logger.Warn("credential probe failed", "key", Mask(secret), "error", result.Err)
		if result.Err == nil {
			return false, fmt.Errorf("add credential: %w", genstudio.ErrProbeFailed)
		}
		return false, fmt.Errorf("add credential: %w: %w", genstudio.ErrProbeFailed, result.Err)
	}

	valid := result.Status == genstudio.ProbeValid
	err = s.update(ctx, func(creds []Credential) ([]Credential, error) {
		if indexOf(creds, secret) >= 0 {
			return nil, ErrDuplicate
		}
		return append(creds, Credential{
			Secret:     secret,
			Valid:      valid,
			Active:     valid,
			LastUsedAt: s.now(),
		}), nil
	})
	if err != nil {
		return false, err
	}

	s.logger.Info("credential added", "key", Mask(secret), "valid", valid)
	return valid, nil
}

// Remove deletes secret. Removing an unknown secret is not an error.
func (s *Store) Remove(ctx context.Context, secret string) error {
	return s.update(ctx, func(creds []Credential) ([]Credential, error) {
		return slices.DeleteFunc(creds, func(c Credential) bool { return c.Secret == secret }), nil
	})
}

// SetActive sets the active flag of secret.
func (s *Store) SetActive(ctx context.Context, secret string, active bool) error {
	return s.modify(ctx, secret, func(c *Credential) { c.Active = active })
}

// Toggle flips the active flag of secret.
func (s *Store) Toggle(ctx context.Context, secret string) error {
	return s.modify(ctx, secret, func(c *Credential) { c.Active = !c.Active })
}

// RecordUsage stamps secret as used now.
func (s *Store) RecordUsage(ctx context.Context, secret string) error {
	return s.modify(ctx, secret, func(c *Credential) { c.LastUsedAt = s.now() })
}

// RecordError increments the error count of secret.
func (s *Store) RecordError(ctx context.Context, secret string) error {
	return s.modify(ctx, secret, func(c *Credential) { c.ErrorCount++ })
}

// ResetErrors clears the error count of secret.
func (s *Store) ResetErrors(ctx context.Context, secret string) error {
	return s.modify(ctx, secret, func(c *Credential) { c.ErrorCount = 0 })
}

// modify applies fn to the stored record for secret. Unknown secrets are a
// no-op, which covers the unstored environment fallback key.
func (s *Store) modify(ctx context.Context, secret string, fn func(*Credential)) error {
	return s.update(ctx, func(creds []Credential) ([]Credential, error) {
		if i := indexOf(creds, secret); i >= 0 {
			fn(&creds[i])
		}
		return creds, nil
	})
}

// update performs a locked read-modify-write of the whole collection.
func (s *Store) update(ctx context.Context, fn func([]Credential) ([]Credential, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	creds, err := s.load(ctx)
	if err != nil {
		return err
	}
	creds, err = fn(creds)
	if err != nil {
		return err
	}
	return s.save(ctx, creds)
}

func (s *Store) load(ctx context.Context) ([]Credential, error) {
	raw, ok, err := s.adapter.Get(ctx, store.KeyCredentials)
	if err != nil {
		return nil, fmt.Errorf("load credentials: %w", err)
	}
	if !ok || len(raw) == 0 {
		return []Credential{}, nil
	}
	var creds []Credential
	if err := json.Unmarshal(raw, &creds); err != nil {
		return nil, fmt.Errorf("decode credentials: %w", err)
	}
	if creds == nil {
		creds = []Credential{}
	}
	return creds, nil
}

func (s *Store) save(ctx context.Context, creds []Credential) error {
	raw, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}
	if err := s.adapter.Set(ctx, store.KeyCredentials, raw); err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}
	return nil
}

func indexOf(creds []Credential, secret string) int {
	return slices.IndexFunc(creds, func(c Credential) bool { return c.Secret == secret })
}

// Package store provides pluggable persistence for the studio's JSON records.
//
// Records are small JSON documents kept under stable keys and rewritten in
// full on every mutation. The in-memory adapter backs tests and ephemeral
// sessions; see [github.com/spetersoncode/genstudio/store/sqlite] for a
// durable backend.
package store

import (
	"context"
	"encoding/json"
)

// Adapter defines the interface for persistence backends.
// Implementations must be thread-safe.
type Adapter interface {
	// Get retrieves a value by key. Returns nil, false, nil if not found.
	Get(ctx context.Context, key string) (json.RawMessage, bool, error)

	// Set stores a value by key, replacing any previous value.
	Set(ctx context.Context, key string, value json.RawMessage) error

	// Delete removes a key. No error if key doesn't exist.
	Delete(ctx context.Context, key string) error
}

// Keys under which the studio persists its records.
const (
	KeyCredentials = "genstudio-api-keys"
	KeyModelConfig = "genstudio-model-config"
)

// Package credential manages the pool of user-supplied API keys: validation
// on registration, per-key usage and error accounting, and least-loaded
// selection for each outbound call.
package credential

import (
	"errors"
	"time"
)

// ErrDuplicate is returned by Store.Add when the secret is already registered.
var ErrDuplicate = errors.New("credential already registered")

// Credential is one stored API key and its health record.
type Credential struct {
	Secret     string    `json:"key"`
	Valid      bool      `json:"isValid"`
	Active     bool      `json:"isActive"`
	LastUsedAt time.Time `json:"lastUsedAt"`
	ErrorCount int       `json:"errorCount"`
}

// Eligible returns true if the credential may be selected.
func (c Credential) Eligible() bool {
	return c.Active && c.Valid
}

// Masked returns the secret with everything but a short prefix hidden.
func (c Credential) Masked() string {
	return Mask(c.Secret)
}

// Mask hides all but the first few characters of a secret for logging.
func Mask(secret string) string {
	const visible = 6
	if len(secret) <= visible {
		return "***"
	}
	return secret[:visible] + "..."
}

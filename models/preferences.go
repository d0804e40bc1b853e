package models

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/spetersoncode/genstudio/store"
)

// Preferences names the model used for each selectable capability.
type Preferences struct {
	Text      string `json:"textModel"`
	ImageGen  string `json:"imageGenModel"`
	ImageEdit string `json:"imageEditModel"`
}

// Defaults returns the built-in preferences.
func Defaults() Preferences {
	return Preferences{
		Text:      Gemini25Flash.String(),
		ImageGen:  Imagen3.String(),
		ImageEdit: Gemini25FlashImage.String(),
	}
}

// For returns the model id for capability.
func (p Preferences) For(capability Capability) string {
	switch capability {
	case CapabilityText:
		return p.Text
	case CapabilityImageGen:
		return p.ImageGen
	case CapabilityImageEdit:
		return p.ImageEdit
	}
	return ""
}

// withDefaults fills empty fields from Defaults.
func (p Preferences) withDefaults() Preferences {
	d := Defaults()
	if p.Text == "" {
		p.Text = d.Text
	}
	if p.ImageGen == "" {
		p.ImageGen = d.ImageGen
	}
	if p.ImageEdit == "" {
		p.ImageEdit = d.ImageEdit
	}
	return p
}

// Store persists Preferences through a store.Adapter. Identifiers are not
// validated against the catalog or the provider.
type Store struct {
	mu      sync.Mutex
	adapter store.Adapter
}

// NewStore creates a preference store.
func NewStore(adapter store.Adapter) *Store {
	return &Store{adapter: adapter}
}

// Load returns the stored preferences merged over the defaults. A missing or
// unreadable record yields the defaults.
func (s *Store) Load(ctx context.Context) (Preferences, error) {
	raw, ok, err := s.adapter.Get(ctx, store.KeyModelConfig)
	if err != nil {
		return Defaults(), fmt.Errorf("load model preferences: %w", err)
	}
	if !ok {
		return Defaults(), nil
	}
	var p Preferences
	if err := json.Unmarshal(raw, &p); err != nil {
		return Defaults(), nil
	}
	return p.withDefaults(), nil
}

// Save replaces the stored preferences.
func (s *Store) Save(ctx context.Context, p Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, p)
}

// Set changes the model for one capability.
func (s *Store) Set(ctx context.Context, capability Capability, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.Load(ctx)
	if err != nil {
		return err
	}
	switch capability {
	case CapabilityText:
		p.Text = id
	case CapabilityImageGen:
		p.ImageGen = id
	case CapabilityImageEdit:
		p.ImageEdit = id
	default:
		return fmt.Errorf("unknown capability %q", capability)
	}
	return s.save(ctx, p)
}

func (s *Store) save(ctx context.Context, p Preferences) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode model preferences: %w", err)
	}
	if err := s.adapter.Set(ctx, store.KeyModelConfig, raw); err != nil {
		return fmt.Errorf("save model preferences: %w", err)
	}
	return nil
}

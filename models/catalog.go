package models

import (
	"fmt"
	"slices"
)

// Capability names a user-selectable model slot.
type Capability string

const (
	CapabilityText      Capability = "text"
	CapabilityImageGen  Capability = "imageGen"
	CapabilityImageEdit Capability = "imageEdit"
)

// Capabilities lists the selectable capabilities in display order.
var Capabilities = []Capability{CapabilityText, CapabilityImageGen, CapabilityImageEdit}

// ParseCapability accepts a capability name, case-sensitive, with a few
// command-line friendly aliases.
func ParseCapability(s string) (Capability, error) {
	switch s {
	case "text", "textModel":
		return CapabilityText, nil
	case "imageGen", "image-gen", "imageGenModel":
		return CapabilityImageGen, nil
	case "imageEdit", "image-edit", "imageEditModel":
		return CapabilityImageEdit, nil
	}
	return "", fmt.Errorf("unknown capability %q", s)
}

// Model is a selectable remote model.
type Model struct {
	id         string
	name       string
	capability Capability
}

// String returns the API identifier for this model.
func (m Model) String() string { return m.id }

// Name returns the display name.
func (m Model) Name() string { return m.name }

// Capability returns the slot this model serves.
func (m Model) Capability() Capability { return m.capability }

// Gemini text models
var (
	Gemini25Flash       = Model{id: "gemini-2.5-flash", name: "Gemini 2.5 Flash", capability: CapabilityText}
	Gemini3FlashPreview = Model{id: "gemini-3-flash-preview", name: "Gemini 3 Flash (Preview)", capability: CapabilityText}
	Gemini3ProPreview   = Model{id: "gemini-3-pro-preview", name: "Gemini 3 Pro (Preview)", capability: CapabilityText}
)

// Imagen generation models
var (
	Imagen3     = Model{id: "imagen-3.0-generate-001", name: "Imagen 3", capability: CapabilityImageGen}
	Imagen3Fast = Model{id: "imagen-3.0-fast-generate-001", name: "Imagen 3 Fast", capability: CapabilityImageGen}
)

// Image editing models
var (
	Gemini25FlashImage = Model{id: "gemini-2.5-flash-image", name: "Gemini 2.5 Flash Image", capability: CapabilityImageEdit}
)

// Fixed model identifiers for capabilities without a user preference.
const (
	SpeechModel = "gemini-2.5-flash-preview-tts"
	VideoModel  = "veo-2.0-generate-001"
	ProbeModel  = "gemini-2.5-flash"
)

var catalog = []Model{
	Gemini25Flash, Gemini3FlashPreview, Gemini3ProPreview,
	Imagen3, Imagen3Fast,
	Gemini25FlashImage,
}

// Catalog returns the selectable models for capability.
func Catalog(capability Capability) []Model {
	var out []Model
	for _, m := range catalog {
		if m.capability == capability {
			out = append(out, m)
		}
	}
	return out
}

// Lookup finds a catalog model by id.
func Lookup(id string) (Model, bool) {
	i := slices.IndexFunc(catalog, func(m Model) bool { return m.id == id })
	if i < 0 {
		return Model{}, false
	}
	return catalog[i], true
}

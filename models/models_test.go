package models

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/spetersoncode/genstudio/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	d := Defaults()
	assert.Equal(t, "gemini-2.5-flash", d.Text)
	assert.Equal(t, "imagen-3.0-generate-001", d.ImageGen)
	assert.Equal(t, "gemini-2.5-flash-image", d.ImageEdit)
}

func TestStore_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("missing record yields defaults", func(t *testing.T) {
		p, err := NewStore(store.NewMemoryAdapter()).Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, Defaults(), p)
	})

	t.Run("partial record merges over defaults", func(t *testing.T) {
		adapter := store.NewMemoryAdapter()
		require.NoError(t, adapter.Set(ctx, store.KeyModelConfig, json.RawMessage(`{"textModel":"gemini-3-pro-preview"}`)))

		p, err := NewStore(adapter).Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, "gemini-3-pro-preview", p.Text)
		assert.Equal(t, Defaults().ImageGen, p.ImageGen)
		assert.Equal(t, Defaults().ImageEdit, p.ImageEdit)
	})

	t.Run("corrupt record yields defaults", func(t *testing.T) {
		adapter := store.NewMemoryAdapter()
		require.NoError(t, adapter.Set(ctx, store.KeyModelConfig, json.RawMessage(`"nope"`)))

		p, err := NewStore(adapter).Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, Defaults(), p)
	})
}

func TestStore_SetAndSave(t *testing.T) {
	ctx := context.Background()
	s := NewStore(store.NewMemoryAdapter())

	require.NoError(t, s.Set(ctx, CapabilityImageGen, Imagen3Fast.String()))
	p, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "imagen-3.0-fast-generate-001", p.ImageGen)
	assert.Equal(t, p.ImageGen, p.For(CapabilityImageGen))

	// Identifiers outside the catalog are accepted as-is
	require.NoError(t, s.Save(ctx, Preferences{Text: "custom-model"}))
	p, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "custom-model", p.Text)
	assert.Equal(t, Defaults().ImageGen, p.ImageGen)

	assert.Error(t, s.Set(ctx, Capability("audio"), "x"))
}

func TestCatalog(t *testing.T) {
	tests := []struct {
		capability Capability
		expected   []string
	}{
		{CapabilityText, []string{"gemini-2.5-flash", "gemini-3-flash-preview", "gemini-3-pro-preview"}},
		{CapabilityImageGen, []string{"imagen-3.0-generate-001", "imagen-3.0-fast-generate-001"}},
		{CapabilityImageEdit, []string{"gemini-2.5-flash-image"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.capability), func(t *testing.T) {
			var ids []string
			for _, m := range Catalog(tt.capability) {
				assert.Equal(t, tt.capability, m.Capability())
				assert.NotEmpty(t, m.Name())
				ids = append(ids, m.String())
			}
			assert.Equal(t, tt.expected, ids)
		})
	}

	m, ok := Lookup("imagen-3.0-fast-generate-001")
	assert.True(t, ok)
	assert.Equal(t, Imagen3Fast, m)
	_, ok = Lookup("gpt-4")
	assert.False(t, ok)
}

func TestParseCapability(t *testing.T) {
	c, err := ParseCapability("image-edit")
	require.NoError(t, err)
	assert.Equal(t, CapabilityImageEdit, c)

	_, err = ParseCapability("video")
	assert.Error(t, err)
}

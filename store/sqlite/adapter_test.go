package sqlite

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/spetersoncode/genstudio/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdapter_GetMissing(t *testing.T) {
	adapter := NewAdapter(setupTestDB(t))

	raw, ok, err := adapter.Get(context.Background(), store.KeyCredentials)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, raw)
}

func TestAdapter_SetAndGet(t *testing.T) {
	adapter := NewAdapter(setupTestDB(t))
	ctx := context.Background()

	err := adapter.Set(ctx, store.KeyCredentials, json.RawMessage(`[{"key":"k1","isValid":true}]`))
	require.NoError(t, err)

	raw, ok, err := adapter.Get(ctx, store.KeyCredentials)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `[{"key":"k1","isValid":true}]`, string(raw))
}

func TestAdapter_UpsertOverwrites(t *testing.T) {
	adapter := NewAdapter(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, adapter.Set(ctx, store.KeyModelConfig, json.RawMessage(`{"textModel":"old"}`)))
	require.NoError(t, adapter.Set(ctx, store.KeyModelConfig, json.RawMessage(`{"textModel":"new"}`)))

	raw, ok, err := adapter.Get(ctx, store.KeyModelConfig)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"textModel":"new"}`, string(raw))
}

func TestAdapter_RejectsInvalidJSON(t *testing.T) {
	adapter := NewAdapter(setupTestDB(t))

	err := adapter.Set(context.Background(), "k", json.RawMessage(`{not json`))
	assert.Error(t, err)
}

func TestAdapter_Delete(t *testing.T) {
	adapter := NewAdapter(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, adapter.Set(ctx, "k", json.RawMessage(`1`)))
	require.NoError(t, adapter.Delete(ctx, "k"))

	_, ok, err := adapter.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting a missing key is not an error
	require.NoError(t, adapter.Delete(ctx, "k"))
}

func TestOpen_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "studio.db")
	ctx := context.Background()

	db, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, NewAdapter(db).Set(ctx, store.KeyCredentials, json.RawMessage(`["persisted"]`)))
	require.NoError(t, db.Close())

	// Reopening runs migrations again; already-applied migrations are skipped
	db, err = Open(path)
	require.NoError(t, err)
	defer db.Close()
	assert.Equal(t, path, db.Path())

	raw, ok, err := NewAdapter(db).Get(ctx, store.KeyCredentials)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `["persisted"]`, string(raw))
}

package kvstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskflow/core/internal/domain/entities"
)

func TestFileStoreRoundtrip(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewFileStore(dir)
	require.NoError(t, err)

	_, ok, err := store.Get(ctx, "tasks")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "tasks", []byte(`[{"id":1}]`)))

	got, ok, err := store.Get(ctx, "tasks")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[{"id":1}]`, string(got))

	require.NoError(t, store.Delete(ctx, "tasks"))
	_, ok, err = store.Get(ctx, "tasks")
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting an absent key is fine.
	assert.NoError(t, store.Delete(ctx, "tasks"))
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "user", []byte(`{"name":"ada"}`)))
	require.NoError(t, store.Close())

	reopened, err := NewFileStore(dir)
	require.NoError(t, err)
	got, ok, err := reopened.Get(ctx, "user")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"name":"ada"}`, string(got))
}

func TestFileStoreCorruptFileFallsBackToEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "store.json"), []byte("not json at all"), 0o644))

	store, err := NewFileStore(dir)
	require.NoError(t, err)

	_, ok, err := store.Get(context.Background(), "tasks")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStoreClosedRejectsEverything(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Close())

	_, _, err = store.Get(ctx, "k")
	assert.ErrorIs(t, err, entities.ErrStoreClosed)
	assert.ErrorIs(t, store.Set(ctx, "k", []byte(`1`)), entities.ErrStoreClosed)
	assert.ErrorIs(t, store.Delete(ctx, "k"), entities.ErrStoreClosed)
	assert.ErrorIs(t, store.Flush(ctx), entities.ErrStoreClosed)
	assert.ErrorIs(t, store.Close(), entities.ErrStoreClosed)
}

func TestMemoryStoreLifecycle(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", []byte(`"v"`)))

	got, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `"v"`, string(got))

	// The stored value is a copy, not an alias of the caller's slice.
	value := []byte(`"w"`)
	require.NoError(t, store.Set(ctx, "k", value))
	value[1] = 'x'
	got, _, err = store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `"w"`, string(got))

	require.NoError(t, store.Flush(ctx))
	require.NoError(t, store.Close())

	_, _, err = store.Get(ctx, "k")
	assert.ErrorIs(t, err, entities.ErrStoreClosed)
	assert.ErrorIs(t, store.Set(ctx, "k", nil), entities.ErrStoreClosed)
}

package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketbeam/tracking/pkg/storage"
)

type record struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// storeUnderTest exercises the Store contract shared by all implementations.
func storeUnderTest(t *testing.T, store storage.Store) {
	ctx := context.Background()

	t.Run("load missing key", func(t *testing.T) {
		var out record
		assert.ErrorIs(t, store.Load(ctx, "absent", &out), storage.ErrNotFound)
	})

	t.Run("save and load round trip", func(t *testing.T) {
		in := record{Name: "visitor", Count: 3}
		require.NoError(t, store.Save(ctx, "rec", in))

		var out record
		require.NoError(t, store.Load(ctx, "rec", &out))
		assert.Equal(t, in, out)
	})

	t.Run("save overwrites whole record", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "rec", record{Name: "first", Count: 1}))
		require.NoError(t, store.Save(ctx, "rec", record{Name: "second"}))

		var out record
		require.NoError(t, store.Load(ctx, "rec", &out))
		assert.Equal(t, "second", out.Name)
		assert.Zero(t, out.Count, "stale fields must not survive an overwrite")
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "gone", record{Name: "x"}))
		require.NoError(t, store.Delete(ctx, "gone"))
		require.NoError(t, store.Delete(ctx, "gone"))

		var out record
		assert.ErrorIs(t, store.Load(ctx, "gone", &out), storage.ErrNotFound)
	})

	t.Run("empty key rejected", func(t *testing.T) {
		assert.ErrorIs(t, store.Save(ctx, "", record{}), storage.ErrInvalidKey)
		assert.ErrorIs(t, store.Load(ctx, "", &record{}), storage.ErrInvalidKey)
	})
}

func TestMemory(t *testing.T) {
	storeUnderTest(t, storage.NewMemory())

	t.Run("corrupt record reads as absent", func(t *testing.T) {
		ctx := context.Background()
		store := storage.NewMemory()
		require.NoError(t, store.Save(ctx, "rec", "not an object"))

		var out record
		assert.ErrorIs(t, store.Load(ctx, "rec", &out), storage.ErrNotFound)
	})
}

func TestFile(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewFile(dir)
	require.NoError(t, err)

	storeUnderTest(t, store)

	t.Run("corrupt file reads as absent", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{nope"), 0o600))

		var out record
		assert.ErrorIs(t, store.Load(context.Background(), "bad", &out), storage.ErrNotFound)
	})

	t.Run("path traversal rejected", func(t *testing.T) {
		assert.ErrorIs(t, store.Save(context.Background(), "../escape", record{}), storage.ErrInvalidKey)
	})

	t.Run("survives reopen", func(t *testing.T) {
		ctx := context.Background()
		require.NoError(t, store.Save(ctx, "durable", record{Name: "kept"}))

		reopened, err := storage.NewFile(dir)
		require.NoError(t, err)

		var out record
		require.NoError(t, reopened.Load(ctx, "durable", &out))
		assert.Equal(t, "kept", out.Name)
	})
}

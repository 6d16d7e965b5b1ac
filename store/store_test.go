package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runStoreContract(t *testing.T, kv KeyValueStore) {
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		value, found, err := kv.Get(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, found)
		assert.Empty(t, value)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, kv.Set(ctx, "eduassist_chats", `[{"id":"1"}]`))

		value, found, err := kv.Get(ctx, "eduassist_chats")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, `[{"id":"1"}]`, value)
	})

	t.Run("overwrite", func(t *testing.T) {
		require.NoError(t, kv.Set(ctx, "eduassist_chats", `[]`))

		value, _, err := kv.Get(ctx, "eduassist_chats")
		require.NoError(t, err)
		assert.Equal(t, `[]`, value)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, kv.Delete(ctx, "eduassist_chats"))
		require.NoError(t, kv.Delete(ctx, "eduassist_chats"))

		_, found, err := kv.Get(ctx, "eduassist_chats")
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestMemoryStore(t *testing.T) {
	runStoreContract(t, NewMemoryStore())
}

func TestMemoryStore_Closed(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryStore()
	require.NoError(t, kv.Close())

	_, _, err := kv.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, kv.Set(ctx, "k", "v"), ErrClosed)
	assert.ErrorIs(t, kv.Delete(ctx, "k"), ErrClosed)
}

func TestSQLiteStore_InMemory(t *testing.T) {
	kv, err := OpenSQLite("file::memory:")
	require.NoError(t, err)
	defer kv.Close()

	runStoreContract(t, kv)
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "eduassist.db")

	kv, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, kv.Set(ctx, "eduassist_queries", `[{"id":"q1"}]`))
	require.NoError(t, kv.Close())

	reopened, err := OpenSQLite(path)
	require.NoError(t, err)
	defer reopened.Close()

	value, found, err := reopened.Get(ctx, "eduassist_queries")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[{"id":"q1"}]`, value)
}

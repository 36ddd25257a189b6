package lookupcache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestInMemoryStore(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("get after put round-trips", func(t *testing.T) {
		store := NewInMemoryStore()
		entry := Entry{Key: "k", Payload: []byte("v"), CreatedAt: now, ValidUntil: now.Add(time.Hour)}
		require.NoError(t, store.Put(ctx, entry))

		got, err := store.Get(ctx, "k")
		require.NoError(t, err)
		require.Equal(t, entry, got)
	})

	t.Run("missing key is a typed not found", func(t *testing.T) {
		store := NewInMemoryStore()
		_, err := store.Get(ctx, "absent")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("touch increments access count only", func(t *testing.T) {
		store := NewInMemoryStore()
		require.NoError(t, store.Put(ctx, Entry{Key: "k", CreatedAt: now, ValidUntil: now.Add(time.Hour)}))
		require.NoError(t, store.Touch(ctx, "k"))
		require.NoError(t, store.Touch(ctx, "k"))

		got, err := store.Get(ctx, "k")
		require.NoError(t, err)
		require.Equal(t, int64(2), got.AccessCount)
		require.Equal(t, now, got.CreatedAt)
	})

	t.Run("touch on a missing key reports not found", func(t *testing.T) {
		store := NewInMemoryStore()
		require.ErrorIs(t, store.Touch(ctx, "absent"), ErrNotFound)
	})

	t.Run("delete expired removes only stale entries", func(t *testing.T) {
		store := NewInMemoryStore()
		require.NoError(t, store.Put(ctx, Entry{Key: "fresh", ValidUntil: now.Add(time.Hour)}))
		require.NoError(t, store.Put(ctx, Entry{Key: "stale", ValidUntil: now.Add(-time.Hour)}))

		deleted, err := store.DeleteExpired(ctx, now)
		require.NoError(t, err)
		require.Equal(t, 1, deleted)

		_, err = store.Get(ctx, "fresh")
		require.NoError(t, err)
		_, err = store.Get(ctx, "stale")
		require.ErrorIs(t, err, ErrNotFound)
	})
}

package storage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	store, err := NewRedisStore(mr.Addr(), "", "test", ttl)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, mr
}

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestRedisStore(t, 0)

	require.NoError(t, store.Ping(ctx))

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set(ctx, "k", "v"))
	value, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", value)

	raw, err := mr.Get("test:k")
	require.NoError(t, err)
	assert.Equal(t, "v", raw)

	require.NoError(t, store.Remove(ctx, "k"))
	_, err = store.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_TTL(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestRedisStore(t, time.Hour)

	require.NoError(t, store.Set(ctx, "k", "v"))
	assert.Equal(t, time.Hour, mr.TTL("test:k"))

	mr.FastForward(2 * time.Hour)
	_, err := store.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNewRedisStore_RequiresAddr(t *testing.T) {
	_, err := NewRedisStore("  ", "", "", 0)
	assert.Error(t, err)
}

func TestRedisStore_Stats(t *testing.T) {
	store, _ := newTestRedisStore(t, 0)
	require.NoError(t, store.Ping(context.Background()))

	stats := store.Stats()
	assert.Equal(t, "redis", stats["backend"])
	assert.EqualValues(t, 1, stats["total_conns"])
	assert.EqualValues(t, 0, stats["timeouts"])
}

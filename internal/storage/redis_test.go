package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"shoe-storefront/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return mr, client
}

func TestRedisStore_SetGetDelete(t *testing.T) {
	_, client := newTestRedis(t)
	store := NewRedisStore(client, time.Hour)
	ctx := context.Background()
	key := SessionKey("abc", RecordCart)

	_, err := store.Get(ctx, key)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set(ctx, key, []byte(`[]`)))

	value, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(value))

	require.NoError(t, store.Delete(ctx, key))
	_, err = store.Get(ctx, key)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_WritesRefreshTTL(t *testing.T) {
	mr, client := newTestRedis(t)
	store := NewRedisStore(client, time.Hour)
	ctx := context.Background()
	key := SessionKey("abc", RecordRecentlyViewed)

	require.NoError(t, store.Set(ctx, key, []byte(`[]`)))
	mr.FastForward(30 * time.Minute)
	require.NoError(t, store.Set(ctx, key, []byte(`[1]`)))
	mr.FastForward(45 * time.Minute)

	value, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, `[1]`, string(value))

	mr.FastForward(time.Hour)
	_, err = store.Get(ctx, key)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_UnavailableServer(t *testing.T) {
	mr, client := newTestRedis(t)
	store := NewRedisStore(client, 0)
	mr.Close()

	_, err := store.Get(context.Background(), "k")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestLoadJSON_CorruptContent(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "k", []byte("{not json")))

	var out []map[string]interface{}
	err := LoadJSON(ctx, store, "k", &out)
	assert.ErrorIs(t, err, domain.ErrStorageCorrupt)
}

func TestSaveJSON_RoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, SaveJSON(ctx, store, "k", []string{"a", "b"}))

	var out []string
	require.NoError(t, LoadJSON(ctx, store, "k", &out))
	assert.Equal(t, []string{"a", "b"}, out)
}

package favourites

import (
	"context"
	"testing"

	"shoe-storefront/internal/domain"
	"shoe-storefront/internal/storage"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func shoe(name string) *domain.Product {
	return &domain.Product{ID: uuid.New(), Name: name, Brand: "Nike", Price: 25000}
}

func TestList_ToggleAddsThenRemoves(t *testing.T) {
	l := NewList(storage.NewMemoryStore(), "s1", zap.NewNop())
	ctx := context.Background()
	p := shoe("Air Max")

	saved, entries, err := l.Toggle(ctx, p)
	require.NoError(t, err)
	assert.True(t, saved)
	require.Len(t, entries, 1)
	assert.Equal(t, p.ID, entries[0].ID)

	ok, err := l.Contains(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	saved, entries, err = l.Toggle(ctx, p)
	require.NoError(t, err)
	assert.False(t, saved)
	assert.Empty(t, entries)
}

func TestList_NewestFirst(t *testing.T) {
	l := NewList(storage.NewMemoryStore(), "s1", zap.NewNop())
	ctx := context.Background()
	first, second := shoe("First"), shoe("Second")

	_, _, _ = l.Toggle(ctx, first)
	_, entries, err := l.Toggle(ctx, second)
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, second.ID, entries[0].ID)
	assert.Equal(t, first.ID, entries[1].ID)
}

func TestList_RemoveUnknownIsNoop(t *testing.T) {
	l := NewList(storage.NewMemoryStore(), "s1", zap.NewNop())
	ctx := context.Background()
	_, _, _ = l.Toggle(ctx, shoe("Kept"))

	entries, err := l.Remove(ctx, uuid.New())
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestList_SessionsAreIsolated(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()
	_, _, _ = NewList(store, "a", zap.NewNop()).Toggle(ctx, shoe("Mine"))

	entries, err := NewList(store, "b", zap.NewNop()).Entries(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestList_StoreOutageIsCollaboratorError(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	l := NewList(storage.NewRedisStore(client, 0), "s1", zap.NewNop())
	mr.Close()

	_, _, err := l.Toggle(context.Background(), shoe("Unreachable"))
	require.Error(t, err)
	assert.True(t, domain.IsCollaborator(err))
}

package recent

import (
	"context"
	"fmt"
	"testing"
	"time"

	"shoe-storefront/internal/domain"
	"shoe-storefront/internal/storage"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func product(n int) *domain.Product {
	return &domain.Product{
		ID:       uuid.MustParse(fmt.Sprintf("00000000-0000-0000-0000-%012d", n)),
		Name:     fmt.Sprintf("Shoe %d", n),
		Brand:    "Brand",
		Category: "Running",
		Price:    int64(1000 * n),
		Image:    fmt.Sprintf("https://cdn.example.com/%d.jpg", n),
	}
}

func newTestBuffer(store storage.Store) *Buffer {
	b := NewBuffer(store, "session", MaxItems, zap.NewNop())
	clock := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	b.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return b
}

func TestBuffer_ElevenViewsKeepTenMostRecent(t *testing.T) {
	b := newTestBuffer(storage.NewMemoryStore())
	ctx := context.Background()

	for i := 1; i <= 11; i++ {
		_, err := b.Record(ctx, product(i))
		require.NoError(t, err)
	}

	entries, err := b.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 10)
	assert.Equal(t, product(11).ID, entries[0].ID)
	assert.Equal(t, product(2).ID, entries[9].ID)
}

func TestBuffer_ReviewMovesToFrontWithoutGrowing(t *testing.T) {
	b := newTestBuffer(storage.NewMemoryStore())
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		_, _ = b.Record(ctx, product(i))
	}
	entries, err := b.Record(ctx, product(1))
	require.NoError(t, err)

	require.Len(t, entries, 3)
	assert.Equal(t, product(1).ID, entries[0].ID)
	assert.Equal(t, product(3).ID, entries[1].ID)
	assert.Equal(t, product(2).ID, entries[2].ID)
}

func TestBuffer_EntryProjection(t *testing.T) {
	b := newTestBuffer(storage.NewMemoryStore())
	entries, err := b.Record(context.Background(), product(7))
	require.NoError(t, err)

	e := entries[0]
	assert.Equal(t, "Shoe 7", e.Name)
	assert.Equal(t, int64(7000), e.Price)
	assert.Equal(t, "Running", e.Category)
	assert.Equal(t, "https://cdn.example.com/7.jpg", e.Image)
	assert.False(t, e.ViewedAt.IsZero())
}

func TestBuffer_CorruptRecordReadsAsEmpty(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, storage.SessionKey("session", storage.RecordRecentlyViewed), []byte("{not json")))

	b := newTestBuffer(store)
	entries, err := b.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)

	entries, err = b.Record(ctx, product(1))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestBuffer_RemoveAndClear(t *testing.T) {
	b := newTestBuffer(storage.NewMemoryStore())
	ctx := context.Background()
	_, _ = b.Record(ctx, product(1))
	_, _ = b.Record(ctx, product(2))

	entries, err := b.Remove(ctx, product(1).ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, product(2).ID, entries[0].ID)

	entries, err = b.Remove(ctx, uuid.New())
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	require.NoError(t, b.Clear(ctx))
	entries, err = b.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

// The buffer stays unique by id, bounded and most-recent-first for any view sequence
func TestProperty_PushKeepsBufferBoundedAndUnique(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("unique, at most MaxItems, last view first", prop.ForAll(
		func(views []int) bool {
			var entries []domain.RecentlyViewedEntry
			for _, v := range views {
				entries = Push(entries, EntryFor(product(v), time.Now()), MaxItems)
			}

			if len(entries) > MaxItems {
				return false
			}
			seen := map[uuid.UUID]bool{}
			for _, e := range entries {
				if seen[e.ID] {
					return false
				}
				seen[e.ID] = true
			}
			if len(views) > 0 && entries[0].ID != product(views[len(views)-1]).ID {
				return false
			}
			return true
		},
		gen.SliceOf(gen.IntRange(1, 25)),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Package recent keeps a per-session, most-recent-first list of viewed products.
package recent

import (
	"context"
	"errors"
	"time"

	"shoe-storefront/internal/domain"
	"shoe-storefront/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaxItems is the default capacity of the buffer
const MaxItems = 10

// Push moves e to the front of entries, dropping any older entry with the same id
// and truncating the result to max entries
func Push(entries []domain.RecentlyViewedEntry, e domain.RecentlyViewedEntry, max int) []domain.RecentlyViewedEntry {
	next := make([]domain.RecentlyViewedEntry, 0, len(entries)+1)
	next = append(next, e)
	next = append(next, Without(entries, e.ID)...)
	if max > 0 && len(next) > max {
		next = next[:max]
	}
	return next
}

// Without returns entries minus the one with the given id
func Without(entries []domain.RecentlyViewedEntry, id uuid.UUID) []domain.RecentlyViewedEntry {
	next := make([]domain.RecentlyViewedEntry, 0, len(entries))
	for _, e := range entries {
		if e.ID != id {
			next = append(next, e)
		}
	}
	return next
}

// EntryFor projects a product into a buffer entry
func EntryFor(p *domain.Product, viewedAt time.Time) domain.RecentlyViewedEntry {
	return domain.RecentlyViewedEntry{
		ID:       p.ID,
		Name:     p.Name,
		Image:    p.Image,
		Price:    p.Price,
		Brand:    p.Brand,
		Category: p.Category,
		ViewedAt: viewedAt.UTC(),
	}
}

// Buffer is the recently-viewed list of one session. Every mutation overwrites
// the stored list.
type Buffer struct {
	store  storage.Store
	key    string
	max    int
	now    func() time.Time
	logger *zap.Logger
}

// NewBuffer creates the buffer for sessionID holding at most max entries
func NewBuffer(store storage.Store, sessionID string, max int, logger *zap.Logger) *Buffer {
	if max <= 0 {
		max = MaxItems
	}
	return &Buffer{
		store:  store,
		key:    storage.SessionKey(sessionID, storage.RecordRecentlyViewed),
		max:    max,
		now:    time.Now,
		logger: logger,
	}
}

// List returns the stored entries. Absent or corrupt records read as empty.
func (b *Buffer) List(ctx context.Context) ([]domain.RecentlyViewedEntry, error) {
	var entries []domain.RecentlyViewedEntry
	if err := storage.LoadJSON(ctx, b.store, b.key, &entries); err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			return []domain.RecentlyViewedEntry{}, nil
		case errors.Is(err, domain.ErrStorageCorrupt):
			b.logger.Warn("Discarding corrupt recently viewed record", zap.String("key", b.key), zap.Error(err))
			return []domain.RecentlyViewedEntry{}, nil
		default:
			return nil, &domain.CollaboratorError{Op: "load recently viewed", Err: err}
		}
	}

	if entries == nil {
		entries = []domain.RecentlyViewedEntry{}
	}
	return entries, nil
}

// Record puts product at the front of the list
func (b *Buffer) Record(ctx context.Context, p *domain.Product) ([]domain.RecentlyViewedEntry, error) {
	entries, err := b.List(ctx)
	if err != nil {
		return nil, err
	}

	next := Push(entries, EntryFor(p, b.now()), b.max)
	if err := b.save(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

// Remove drops the entry with the given id
func (b *Buffer) Remove(ctx context.Context, id uuid.UUID) ([]domain.RecentlyViewedEntry, error) {
	entries, err := b.List(ctx)
	if err != nil {
		return nil, err
	}

	next := Without(entries, id)
	if err := b.save(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

// Clear removes the stored list
func (b *Buffer) Clear(ctx context.Context) error {
	if err := b.store.Delete(ctx, b.key); err != nil {
		return &domain.CollaboratorError{Op: "clear recently viewed", Err: err}
	}
	return nil
}

func (b *Buffer) save(ctx context.Context, entries []domain.RecentlyViewedEntry) error {
	if err := storage.SaveJSON(ctx, b.store, b.key, entries); err != nil {
		return &domain.CollaboratorError{Op: "save recently viewed", Err: err}
	}
	return nil
}

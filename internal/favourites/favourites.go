// Package favourites stores the products a session has saved for later.
package favourites

import (
	"context"
	"errors"
	"time"

	"shoe-storefront/internal/domain"
	"shoe-storefront/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// List is the favourites record of one session
type List struct {
	store  storage.Store
	key    string
	now    func() time.Time
	logger *zap.Logger
}

func NewList(store storage.Store, sessionID string, logger *zap.Logger) *List {
	return &List{
		store:  store,
		key:    storage.SessionKey(sessionID, storage.RecordFavourites),
		now:    time.Now,
		logger: logger,
	}
}

// Entries returns the saved products, newest first
func (l *List) Entries(ctx context.Context) ([]domain.FavouriteEntry, error) {
	var entries []domain.FavouriteEntry
	if err := storage.LoadJSON(ctx, l.store, l.key, &entries); err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			return []domain.FavouriteEntry{}, nil
		case errors.Is(err, domain.ErrStorageCorrupt):
			l.logger.Warn("Discarding corrupt favourites record", zap.String("key", l.key), zap.Error(err))
			return []domain.FavouriteEntry{}, nil
		default:
			return nil, &domain.CollaboratorError{Op: "load favourites", Err: err}
		}
	}

	if entries == nil {
		entries = []domain.FavouriteEntry{}
	}
	return entries, nil
}

// Contains reports whether id is saved
func (l *List) Contains(ctx context.Context, id uuid.UUID) (bool, error) {
	entries, err := l.Entries(ctx)
	if err != nil {
		return false, err
	}
	return indexOf(entries, id) >= 0, nil
}

// Toggle saves the product, or removes it when already saved. The returned bool
// is true when the product is saved after the call.
func (l *List) Toggle(ctx context.Context, p *domain.Product) (bool, []domain.FavouriteEntry, error) {
	entries, err := l.Entries(ctx)
	if err != nil {
		return false, nil, err
	}

	var (
		next  []domain.FavouriteEntry
		saved bool
	)
	if i := indexOf(entries, p.ID); i >= 0 {
		next = append(append([]domain.FavouriteEntry{}, entries[:i]...), entries[i+1:]...)
	} else {
		entry := domain.FavouriteEntry{
			ID:      p.ID,
			Name:    p.Name,
			Image:   p.Image,
			Price:   p.Price,
			Brand:   p.Brand,
			AddedAt: l.now().UTC(),
		}
		next = append([]domain.FavouriteEntry{entry}, entries...)
		saved = true
	}

	if err := l.save(ctx, next); err != nil {
		return false, nil, err
	}
	return saved, next, nil
}

// Remove drops id from the list
func (l *List) Remove(ctx context.Context, id uuid.UUID) ([]domain.FavouriteEntry, error) {
	entries, err := l.Entries(ctx)
	if err != nil {
		return nil, err
	}

	i := indexOf(entries, id)
	if i < 0 {
		return entries, nil
	}

	next := append(append([]domain.FavouriteEntry{}, entries[:i]...), entries[i+1:]...)
	if err := l.save(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

func (l *List) save(ctx context.Context, entries []domain.FavouriteEntry) error {
	if entries == nil {
		entries = []domain.FavouriteEntry{}
	}
	if err := storage.SaveJSON(ctx, l.store, l.key, entries); err != nil {
		return &domain.CollaboratorError{Op: "save favourites", Err: err}
	}
	return nil
}

func indexOf(entries []domain.FavouriteEntry, id uuid.UUID) int {
	for i, e := range entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

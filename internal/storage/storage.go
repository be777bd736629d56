package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"shoe-storefront/internal/domain"
)

// Record names for the per-session durable records
const (
	RecordCart           = "cart"
	RecordRecentlyViewed = "recentlyViewed"
	RecordFavourites     = "favourites"
)

var (
	ErrNotFound = errors.New("storage record not found")
)

// Store is a durable keyed record store. Values are opaque blobs; the caller owns their schema.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// SessionKey builds the key of a session record
func SessionKey(sessionID, record string) string {
	return "storefront:" + sessionID + ":" + record
}

// LoadJSON reads key and decodes it into v. Missing records return ErrNotFound,
// undecodable content returns an error wrapping domain.ErrStorageCorrupt.
func LoadJSON(ctx context.Context, s Store, key string, v interface{}) error {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrStorageCorrupt, key, err)
	}

	return nil
}

// SaveJSON encodes v and overwrites key with it
func SaveJSON(ctx context.Context, s Store, key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}

	if err := s.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}

	return nil
}

package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"shoe-storefront/internal/domain"
	"shoe-storefront/internal/storage"

	"go.uber.org/zap"
)

// Decode parses a stored cart. The content must be a JSON array of objects that
// each carry at least "id" and "price"; anything else is reported as corrupt.
// Lines repeating a (product, size) pair are merged and quantities are clamped
// to 1..MaxLineQuantity.
func Decode(raw []byte) (domain.Cart, error) {
	var objects []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &objects); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageCorrupt, err)
	}

	for i, obj := range objects {
		if obj == nil {
			return nil, fmt.Errorf("%w: line %d is not an object", domain.ErrStorageCorrupt, i)
		}
		if _, ok := obj["id"]; !ok {
			return nil, fmt.Errorf("%w: line %d has no id", domain.ErrStorageCorrupt, i)
		}
		if _, ok := obj["price"]; !ok {
			return nil, fmt.Errorf("%w: line %d has no price", domain.ErrStorageCorrupt, i)
		}
	}

	var lines domain.Cart
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageCorrupt, err)
	}

	merged := make(domain.Cart, 0, len(lines))
	for _, line := range lines {
		line.Quantity = ClampQuantity(line.Quantity)
		if i := indexOf(merged, line); i >= 0 {
			merged[i].Quantity = ClampQuantity(merged[i].Quantity + line.Quantity)
			continue
		}
		merged = append(merged, line)
	}

	if _, err := merged.Subtotal(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageCorrupt, err)
	}
	return merged, nil
}

func indexOf(c domain.Cart, line domain.CartLine) int {
	for i := range c {
		if c[i].Matches(line.ProductID, line.Size) {
			return i
		}
	}
	return -1
}

// Load hydrates the cart of a session. Missing or corrupt records yield an empty
// cart; only storage failures are returned.
func Load(ctx context.Context, store storage.Store, sessionID string, logger *zap.Logger) (domain.Cart, error) {
	key := storage.SessionKey(sessionID, storage.RecordCart)

	raw, err := store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return domain.Cart{}, nil
		}
		return nil, &domain.CollaboratorError{Op: "load cart", Err: err}
	}

	lines, err := Decode(raw)
	if err != nil {
		logger.Warn("Discarding corrupt cart record",
			zap.String("key", key),
			zap.Error(err),
		)
		return domain.Cart{}, nil
	}

	return lines, nil
}

// Persist returns a hook that overwrites the session's cart record with every new cart
func Persist(store storage.Store, sessionID string) ChangeHook {
	key := storage.SessionKey(sessionID, storage.RecordCart)
	return func(ctx context.Context, c domain.Cart) error {
		if c == nil {
			c = domain.Cart{}
		}
		return storage.SaveJSON(ctx, store, key, c)
	}
}

// Open hydrates a session cart and returns a Store that persists every mutation
func Open(ctx context.Context, store storage.Store, sessionID string, logger *zap.Logger) (*Store, error) {
	lines, err := Load(ctx, store, sessionID, logger)
	if err != nil {
		return nil, err
	}
	return NewStore(lines, Persist(store, sessionID)), nil
}

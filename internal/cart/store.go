package cart

import (
	"context"
	"sync"

	"shoe-storefront/internal/domain"

	"github.com/google/uuid"
)

// ChangeHook is called with the next cart before a mutation is committed.
// A hook error aborts the mutation and leaves the current cart in place.
type ChangeHook func(ctx context.Context, c domain.Cart) error

// Store owns a cart and serialises every mutation through its hooks
type Store struct {
	mu    sync.Mutex
	lines domain.Cart
	hooks []ChangeHook
}

// NewStore creates a Store holding initial
func NewStore(initial domain.Cart, hooks ...ChangeHook) *Store {
	return &Store{
		lines: clone(initial),
		hooks: hooks,
	}
}

// OnChange registers a hook run on every mutation
func (s *Store) OnChange(hook ChangeHook) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, hook)
}

// Cart returns a copy of the current lines
func (s *Store) Cart() domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.lines)
}

func (s *Store) Subtotal() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Subtotal(s.lines)
}

func (s *Store) AddLine(ctx context.Context, product *domain.Product, size string) (domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := AddLine(s.lines, product, size)
	if err != nil {
		return clone(s.lines), err
	}
	return s.commit(ctx, next)
}

func (s *Store) RemoveLine(ctx context.Context, productID uuid.UUID, size string) (domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(ctx, RemoveLine(s.lines, productID, size))
}

func (s *Store) SetQuantity(ctx context.Context, productID uuid.UUID, size string, quantity int) (domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := SetQuantity(s.lines, productID, size, quantity)
	if err != nil {
		return clone(s.lines), err
	}
	return s.commit(ctx, next)
}

// Clear empties the cart
func (s *Store) Clear(ctx context.Context) (domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(ctx, domain.Cart{})
}

// commit must be called with s.mu held
func (s *Store) commit(ctx context.Context, next domain.Cart) (domain.Cart, error) {
	for _, hook := range s.hooks {
		if err := hook(ctx, next); err != nil {
			return clone(s.lines), &domain.CollaboratorError{Op: "persist cart", Err: err}
		}
	}

	s.lines = next
	return clone(next), nil
}

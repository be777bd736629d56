// Package repotest provides in-memory repositories for service and handler tests.
// Setting Err on a repository makes its calls fail as an unreachable database would.
package repotest

import (
	"context"
	"sort"
	"strings"
	"sync"

	"shoe-storefront/internal/domain"
	"shoe-storefront/internal/repository"

	"github.com/google/uuid"
)

var (
	_ repository.UserRepository         = (*UserRepository)(nil)
	_ repository.RefreshTokenRepository = (*RefreshTokenRepository)(nil)
	_ repository.ProductRepository      = (*ProductRepository)(nil)
	_ repository.OrderRepository        = (*OrderRepository)(nil)
)

// UserRepository keys users by email
type UserRepository struct {
	mu    sync.Mutex
	Users map[string]*domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{Users: make(map[string]*domain.User)}
}

func (m *UserRepository) Create(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.Users[user.Email]; exists {
		return repository.ErrUserAlreadyExists
	}
	m.Users[user.Email] = user
	return nil
}

func (m *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, exists := m.Users[email]
	if !exists {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func (m *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.Users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

// RefreshTokenRepository keys refresh tokens by their token string
type RefreshTokenRepository struct {
	mu     sync.Mutex
	Tokens map[string]*domain.RefreshToken
}

func NewRefreshTokenRepository() *RefreshTokenRepository {
	return &RefreshTokenRepository{Tokens: make(map[string]*domain.RefreshToken)}
}

func (m *RefreshTokenRepository) Create(ctx context.Context, token *domain.RefreshToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Tokens[token.Token] = token
	return nil
}

func (m *RefreshTokenRepository) FindByToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	refreshToken, exists := m.Tokens[token]
	if !exists {
		return nil, repository.ErrRefreshTokenNotFound
	}
	if refreshToken.Revoked {
		return nil, repository.ErrRefreshTokenRevoked
	}
	return refreshToken, nil
}

func (m *RefreshTokenRepository) Revoke(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	refreshToken, exists := m.Tokens[token]
	if !exists {
		return repository.ErrRefreshTokenNotFound
	}
	refreshToken.Revoked = true
	return nil
}

func (m *RefreshTokenRepository) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, token := range m.Tokens {
		if token.UserID == userID {
			token.Revoked = true
		}
	}
	return nil
}

// ProductRepository holds products newest first
type ProductRepository struct {
	mu       sync.Mutex
	Products []*domain.Product
	Err      error
}

func NewProductRepository(products ...*domain.Product) *ProductRepository {
	return &ProductRepository{Products: products}
}

func (m *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Products = append([]*domain.Product{product}, m.Products...)
	return nil
}

func (m *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	for i, p := range m.Products {
		if p.ID == product.ID {
			m.Products[i] = product
			return nil
		}
	}
	return repository.ErrProductNotFound
}

func (m *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	for i, p := range m.Products {
		if p.ID == id {
			m.Products = append(m.Products[:i], m.Products[i+1:]...)
			return nil
		}
	}
	return repository.ErrProductNotFound
}

func (m *ProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	for _, p := range m.Products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, repository.ErrProductNotFound
}

func (m *ProductRepository) FetchAll(ctx context.Context, limit int) ([]*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := append([]*domain.Product{}, m.Products...)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// QuickSearch matches name, brand and category case-insensitively
func (m *ProductRepository) QuickSearch(ctx context.Context, query string, limit int) ([]*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	q := strings.ToLower(query)
	out := []*domain.Product{}
	for _, p := range m.Products {
		if strings.Contains(strings.ToLower(p.Name+" "+p.Brand+" "+p.Category), q) {
			out = append(out, p)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *ProductRepository) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Products), m.Err
}

// OrderRepository lists orders newest first by CreatedAt
type OrderRepository struct {
	mu     sync.Mutex
	Orders []*domain.Order
	Err    error
}

func NewOrderRepository(orders ...*domain.Order) *OrderRepository {
	return &OrderRepository{Orders: orders}
}

func (m *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Orders = append(m.Orders, order)
	return nil
}

func (m *OrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.Orders {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, repository.ErrOrderNotFound
}

func (m *OrderRepository) List(ctx context.Context) ([]*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sorted()
}

func (m *OrderRepository) ListByEmail(ctx context.Context, email string) ([]*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all, err := m.sorted()
	if err != nil {
		return nil, err
	}
	out := []*domain.Order{}
	for _, o := range all {
		if o.CustomerEmail == email {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *OrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.Orders {
		if o.ID == id {
			o.Status = status
			return o, nil
		}
	}
	return nil, repository.ErrOrderNotFound
}

// sorted must be called with m.mu held
func (m *OrderRepository) sorted() ([]*domain.Order, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	out := append([]*domain.Order{}, m.Orders...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

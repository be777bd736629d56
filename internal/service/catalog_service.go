package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"shoe-storefront/internal/catalog"
	"shoe-storefront/internal/domain"
	"shoe-storefront/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CatalogSettings holds the storefront browsing defaults
type CatalogSettings struct {
	PageSize     int
	SearchLimit  int
	LatestLimit  int
	DefaultPrice domain.PriceRange
}

// DefaultCatalogSettings mirrors the storefront's product page
func DefaultCatalogSettings() CatalogSettings {
	return CatalogSettings{
		PageSize:     6,
		SearchLimit:  catalog.QuickSearchLimit,
		LatestLimit:  4,
		DefaultPrice: domain.PriceRange{Min: 12000, Max: 800000},
	}
}

// BrowseQuery is one request for a page of the filtered catalog. The price
// interval comes from MinPrice and MaxPrice; a nil bound takes the configured default.
type BrowseQuery struct {
	Criteria domain.FilterCriteria
	MinPrice *int64
	MaxPrice *int64
	Page     int
	PageSize int
}

// CatalogPage is a page of filtered products plus what the filter panel needs to render
type CatalogPage struct {
	Items     []*domain.Product     `json:"items"`
	Total     int                   `json:"total"`
	Page      int                   `json:"page"`
	PageSize  int                   `json:"pageSize"`
	PageCount int                   `json:"pageCount"`
	Window    []catalog.PageToken   `json:"window"`
	Brands    []string              `json:"brands"`
	Criteria  domain.FilterCriteria `json:"criteria"`
}

// ProductInput carries the admin-editable attributes of a product
type ProductInput struct {
	Name             string
	Brand            string
	Category         string
	Type             domain.ShoeType
	Gender           domain.Gender
	Price            int64
	Stock            int
	Status           domain.StockStatus
	Sizes            []string
	Image            string
	ShortDescription string
}

// CatalogService serves the storefront catalog and the admin product editor
type CatalogService interface {
	Browse(ctx context.Context, q BrowseQuery) (*CatalogPage, error)
	Latest(ctx context.Context, limit int) ([]*domain.Product, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	QuickSearch(ctx context.Context, query string) ([]*domain.Product, error)
	CreateProduct(ctx context.Context, in ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, in ProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

type catalogService struct {
	products repository.ProductRepository
	settings CatalogSettings
	logger   *zap.Logger
	now      func() time.Time
}

func NewCatalogService(products repository.ProductRepository, settings CatalogSettings, logger *zap.Logger) CatalogService {
	defaults := DefaultCatalogSettings()
	if settings.PageSize <= 0 {
		settings.PageSize = defaults.PageSize
	}
	if settings.SearchLimit <= 0 {
		settings.SearchLimit = defaults.SearchLimit
	}
	if settings.LatestLimit <= 0 {
		settings.LatestLimit = defaults.LatestLimit
	}
	if settings.DefaultPrice == (domain.PriceRange{}) {
		settings.DefaultPrice = defaults.DefaultPrice
	}

	return &catalogService{
		products: products,
		settings: settings,
		logger:   logger,
		now:      time.Now,
	}
}

// Browse filters the whole catalog and returns the requested page. Pages past the
// end are empty rather than an error.
func (s *catalogService) Browse(ctx context.Context, q BrowseQuery) (*CatalogPage, error) {
	all, err := s.products.FetchAll(ctx, 0)
	if err != nil {
		return nil, &domain.CollaboratorError{Op: "fetch products", Err: err}
	}

	criteria := s.withDefaults(q)
	if criteria.PriceRange.Min > criteria.PriceRange.Max {
		return nil, domain.NewValidationError("min_price must not exceed max_price")
	}

	pageSize := q.PageSize
	if pageSize <= 0 {
		pageSize = s.settings.PageSize
	}
	page := q.Page
	if page < 1 {
		page = 1
	}

	filtered := catalog.ApplyFilters(all, criteria)
	pageCount := catalog.PageCount(len(filtered), pageSize)

	return &CatalogPage{
		Items:     catalog.Paginate(filtered, pageSize, page),
		Total:     len(filtered),
		Page:      page,
		PageSize:  pageSize,
		PageCount: pageCount,
		Window:    catalog.PageWindow(page, pageCount),
		Brands:    catalog.Brands(all),
		Criteria:  criteria,
	}, nil
}

func (s *catalogService) withDefaults(q BrowseQuery) domain.FilterCriteria {
	c := q.Criteria
	if c.Type == "" {
		c.Type = domain.AllTypes
	}
	if c.Gender == "" {
		c.Gender = domain.AnyGender
	}
	if c.Brand == "" {
		c.Brand = domain.AllBrands
	}
	c.PriceRange = s.settings.DefaultPrice
	if q.MinPrice != nil {
		c.PriceRange.Min = *q.MinPrice
	}
	if q.MaxPrice != nil {
		c.PriceRange.Max = *q.MaxPrice
	}
	return c
}

// Latest returns the newest products, the home page's new arrivals
func (s *catalogService) Latest(ctx context.Context, limit int) ([]*domain.Product, error) {
	if limit <= 0 {
		limit = s.settings.LatestLimit
	}

	products, err := s.products.FetchAll(ctx, limit)
	if err != nil {
		return nil, &domain.CollaboratorError{Op: "fetch latest products", Err: err}
	}
	return products, nil
}

func (s *catalogService) Get(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, err
		}
		return nil, &domain.CollaboratorError{Op: "fetch product", Err: err}
	}
	return product, nil
}

// QuickSearch returns up to SearchLimit matches. Queries shorter than
// catalog.MinQueryLength return no results without touching the store.
func (s *catalogService) QuickSearch(ctx context.Context, query string) ([]*domain.Product, error) {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < catalog.MinQueryLength {
		return []*domain.Product{}, nil
	}

	products, err := s.products.QuickSearch(ctx, query, s.settings.SearchLimit)
	if err != nil {
		return nil, &domain.CollaboratorError{Op: "search products", Err: err}
	}
	return products, nil
}

func (s *catalogService) CreateProduct(ctx context.Context, in ProductInput) (*domain.Product, error) {
	if err := validateProductInput(in); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	product := &domain.Product{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
	applyProductInput(product, in)

	if err := s.products.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info("Product created", zap.String("product_id", product.ID.String()), zap.String("name", product.Name))
	return product, nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, id uuid.UUID, in ProductInput) (*domain.Product, error) {
	if err := validateProductInput(in); err != nil {
		return nil, err
	}

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	applyProductInput(product, in)
	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("Product updated", zap.String("product_id", id.String()))
	return product, nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Product deleted", zap.String("product_id", id.String()))
	return nil
}

func validateProductInput(in ProductInput) error {
	fields := map[string]string{}

	if strings.TrimSpace(in.Name) == "" {
		fields["name"] = "Name is required."
	}
	if !domain.ValidShoeType(in.Type) {
		fields["type"] = "Type must be one of sneakers, loafers, heels, sandals."
	}
	if !domain.ValidGender(in.Gender) {
		fields["gender"] = "Gender must be one of male, female, unisex."
	}
	if in.Price < 0 {
		fields["price"] = "Price must not be negative."
	}
	if in.Stock < 0 {
		fields["stock"] = "Stock must not be negative."
	}
	if in.Status != "" && !domain.ValidStockStatus(in.Status) {
		fields["status"] = "Status must be one of In Stock, Low Stock, Out of Stock."
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Message: "product is invalid", Fields: fields}
	}
	return nil
}

// applyProductInput copies in onto p, deriving the status from stock when none is given
func applyProductInput(p *domain.Product, in ProductInput) {
	p.Name = strings.TrimSpace(in.Name)
	p.Brand = strings.TrimSpace(in.Brand)
	p.Category = strings.TrimSpace(in.Category)
	p.Type = in.Type
	p.Gender = in.Gender
	p.Price = in.Price
	p.Stock = in.Stock
	p.Image = strings.TrimSpace(in.Image)
	p.ShortDescription = strings.TrimSpace(in.ShortDescription)

	p.Sizes = make([]string, 0, len(in.Sizes))
	seen := map[string]bool{}
	for _, size := range in.Sizes {
		size = strings.TrimSpace(size)
		if size == "" || seen[size] {
			continue
		}
		seen[size] = true
		p.Sizes = append(p.Sizes, size)
	}

	p.Status = in.Status
	if p.Status == "" {
		p.Status = domain.StatusForStock(in.Stock)
	}
}

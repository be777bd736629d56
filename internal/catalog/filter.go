// Package catalog holds the storefront's client-side catalog logic: filtering,
// pagination, the page-number window and debounced quick search.
package catalog

import (
	"shoe-storefront/internal/domain"
)

// ApplyFilters returns the products matching every predicate of criteria, in input order.
// Empty type, gender or brand values behave like "all"/"any".
func ApplyFilters(products []*domain.Product, criteria domain.FilterCriteria) []*domain.Product {
	out := make([]*domain.Product, 0, len(products))
	for _, p := range products {
		if matches(p, criteria) {
			out = append(out, p)
		}
	}
	return out
}

func matches(p *domain.Product, c domain.FilterCriteria) bool {
	typeOK := c.Type == "" || c.Type == domain.AllTypes || string(p.Type) == c.Type
	genderOK := c.Gender == "" || c.Gender == domain.AnyGender || string(p.Gender) == c.Gender
	brandOK := c.Brand == "" || c.Brand == domain.AllBrands || p.Brand == c.Brand
	priceOK := p.Price >= c.PriceRange.Min && p.Price <= c.PriceRange.Max

	return typeOK && genderOK && brandOK && priceOK
}

// Brands lists "all" followed by each distinct non-empty brand in first-seen order
func Brands(products []*domain.Product) []string {
	brands := []string{domain.AllBrands}
	seen := make(map[string]bool)
	for _, p := range products {
		if p.Brand == "" || seen[p.Brand] {
			continue
		}
		seen[p.Brand] = true
		brands = append(brands, p.Brand)
	}
	return brands
}

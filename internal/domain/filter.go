package domain

const (
	// AllTypes disables the type predicate
	AllTypes = "all"
	// AnyGender disables the gender predicate
	AnyGender = "any"
	// AllBrands disables the brand predicate
	AllBrands = "all"
)

// PriceRange is an inclusive price interval
type PriceRange struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// FilterCriteria selects the visible subset of the catalog
type FilterCriteria struct {
	Type       string     `json:"type"`
	Gender     string     `json:"gender"`
	Brand      string     `json:"brand"`
	PriceRange PriceRange `json:"priceRange"`
}

// DefaultFilterCriteria returns criteria that match every product inside the given price range
func DefaultFilterCriteria(minPrice, maxPrice int64) FilterCriteria {
	return FilterCriteria{
		Type:       AllTypes,
		Gender:     AnyGender,
		Brand:      AllBrands,
		PriceRange: PriceRange{Min: minPrice, Max: maxPrice},
	}
}

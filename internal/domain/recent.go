package domain

import (
	"time"

	"github.com/google/uuid"
)

// RecentlyViewedEntry is a projection of a product recorded when its detail page is opened
type RecentlyViewedEntry struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Image    string    `json:"image"`
	Price    int64     `json:"price"`
	Brand    string    `json:"brand"`
	Category string    `json:"category"`
	ViewedAt time.Time `json:"viewedAt"`
}

// FavouriteEntry is a saved product in the favourites list
type FavouriteEntry struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Image   string    `json:"image"`
	Price   int64     `json:"price"`
	Brand   string    `json:"brand"`
	AddedAt time.Time `json:"addedAt"`
}

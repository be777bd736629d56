package domain

import (
	"time"

	"github.com/google/uuid"
)

// ShoeType is the kind of footwear a product belongs to
type ShoeType string

const (
	TypeSneakers ShoeType = "sneakers"
	TypeLoafers  ShoeType = "loafers"
	TypeHeels    ShoeType = "heels"
	TypeSandals  ShoeType = "sandals"
)

// Gender is the audience a product is made for
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderUnisex Gender = "unisex"
)

// StockStatus is the availability label shown on a product
type StockStatus string

const (
	StatusInStock    StockStatus = "In Stock"
	StatusLowStock   StockStatus = "Low Stock"
	StatusOutOfStock StockStatus = "Out of Stock"
)

// LowStockThreshold is the stock level at or below which a product counts as low stock
const LowStockThreshold = 5

// Product represents a product in the catalog
type Product struct {
	ID               uuid.UUID   `json:"id" db:"id"`
	Name             string      `json:"name" db:"name"`
	Brand            string      `json:"brand" db:"brand"`
	Category         string      `json:"category" db:"category"`
	Type             ShoeType    `json:"type" db:"type"`
	Gender           Gender      `json:"gender" db:"gender"`
	Price            int64       `json:"price" db:"price"`
	Stock            int         `json:"stock" db:"stock"`
	Status           StockStatus `json:"status" db:"status"`
	Sizes            []string    `json:"sizes" db:"sizes"`
	Image            string      `json:"image" db:"image"`
	ShortDescription string      `json:"shortDescription" db:"short_description"`
	CreatedAt        time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at" db:"updated_at"`
}

// HasSize reports whether size is one of the product's offered sizes
func (p *Product) HasSize(size string) bool {
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}

// StatusForStock derives the availability label from a stock count
func StatusForStock(stock int) StockStatus {
	switch {
	case stock <= 0:
		return StatusOutOfStock
	case stock <= LowStockThreshold:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

func ValidShoeType(t ShoeType) bool {
	switch t {
	case TypeSneakers, TypeLoafers, TypeHeels, TypeSandals:
		return true
	}
	return false
}

func ValidGender(g Gender) bool {
	switch g {
	case GenderMale, GenderFemale, GenderUnisex:
		return true
	}
	return false
}

func ValidStockStatus(s StockStatus) bool {
	switch s {
	case StatusInStock, StatusLowStock, StatusOutOfStock:
		return true
	}
	return false
}

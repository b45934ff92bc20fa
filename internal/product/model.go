package product

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the availability bucket a product falls into.
type Status string

const (
	StatusInStock  Status = "in_stock"
	StatusPreOrder Status = "pre_order"
)

// Product is a catalog entry. Values are treated as immutable once sanitized.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Brand       string          `json:"brand"`
	Category    string          `json:"category"`
	Subcategory string          `json:"subcategory"`
	Price       decimal.Decimal `json:"price"`
	MinOrder    int             `json:"minOrder"`
	Stock       int             `json:"stock"`
	Unit        string          `json:"unit,omitempty"`
	Image       string          `json:"image,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// Status reports InStock when stock is positive, PreOrder otherwise.
func (p Product) Status() Status {
	if p.Stock > 0 {
		return StatusInStock
	}
	return StatusPreOrder
}

// DefaultQuantity is the quantity "add to cart" uses when none is given.
func (p Product) DefaultQuantity() int {
	if p.MinOrder < 1 {
		return 1
	}
	return p.MinOrder
}

// FindByID returns the product with the given id.
func FindByID(products []Product, id string) (Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

package catalog

import (
	"wholesale-be/internal/product"

	"github.com/shopspring/decimal"
)

// SortKey selects the ordering applied after filtering.
type SortKey string

const (
	SortFeatured  SortKey = "featured"
	SortPriceAsc  SortKey = "price_asc"
	SortPriceDesc SortKey = "price_desc"
	SortNewest    SortKey = "newest"
	SortNameAsc   SortKey = "name_asc"
)

func (k SortKey) Valid() bool {
	switch k {
	case "", SortFeatured, SortPriceAsc, SortPriceDesc, SortNewest, SortNameAsc:
		return true
	}
	return false
}

// PriceRange bounds are inclusive; a nil bound is unset.
type PriceRange struct {
	Min *decimal.Decimal
	Max *decimal.Decimal
}

func (r PriceRange) contains(price decimal.Decimal) bool {
	if r.Min != nil && price.LessThan(*r.Min) {
		return false
	}
	if r.Max != nil && price.GreaterThan(*r.Max) {
		return false
	}
	return true
}

// Validate reports ErrInvalidPriceRange when both bounds are set and min > max.
// Query accepts such a range regardless and matches nothing.
func (r PriceRange) Validate() error {
	if r.Min != nil && r.Max != nil && r.Min.GreaterThan(*r.Max) {
		return ErrInvalidPriceRange
	}
	return nil
}

// FilterSpec is the full set of directives a page applies to its products.
// The zero value matches everything in input order.
type FilterSpec struct {
	Brands     Set[string]
	Categories Set[string]
	Statuses   Set[product.Status]
	Price      PriceRange
	Query      string
	Sort       SortKey
}

// requiredStatus returns the status products must have, if the selection
// narrows anything. Selecting both statuses is the same as selecting none.
func (s FilterSpec) requiredStatus() (product.Status, bool) {
	inStock := s.Statuses.Has(product.StatusInStock)
	preOrder := s.Statuses.Has(product.StatusPreOrder)
	switch {
	case inStock && !preOrder:
		return product.StatusInStock, true
	case preOrder && !inStock:
		return product.StatusPreOrder, true
	}
	return "", false
}

// Classifier extracts the classification a page filters on.
type Classifier func(product.Product) string

func ByCategory(p product.Product) string    { return p.Category }
func BySubcategory(p product.Product) string { return p.Subcategory }

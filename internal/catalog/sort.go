package catalog

import (
	"slices"
	"strings"

	"wholesale-be/internal/product"
)

// sortProducts orders products in place. The sort is stable so equal keys
// keep their collection order; Featured leaves the order untouched.
func sortProducts(products []product.Product, key SortKey) {
	var cmp func(a, b product.Product) int

	switch key {
	case SortPriceAsc:
		cmp = func(a, b product.Product) int { return a.Price.Cmp(b.Price) }
	case SortPriceDesc:
		cmp = func(a, b product.Product) int { return b.Price.Cmp(a.Price) }
	case SortNameAsc:
		cmp = func(a, b product.Product) int { return strings.Compare(a.Name, b.Name) }
	case SortNewest:
		// Products without a creation time sort as the oldest.
		cmp = func(a, b product.Product) int { return b.CreatedAt.Compare(a.CreatedAt) }
	default:
		return
	}

	slices.SortStableFunc(products, cmp)
}

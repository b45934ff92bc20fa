package catalog

import (
	"cmp"
	"slices"

	"wholesale-be/internal/product"

	"github.com/shopspring/decimal"
)

type FacetCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Facets summarises a collection for building filter controls.
type Facets struct {
	Brands     []FacetCount     `json:"brands"`
	Categories []FacetCount     `json:"categories"`
	Statuses   []FacetCount     `json:"statuses"`
	MinPrice   *decimal.Decimal `json:"minPrice,omitempty"`
	MaxPrice   *decimal.Decimal `json:"maxPrice,omitempty"`
}

// Facets counts products per brand, classification and status, and finds the
// price bounds. Empty brand or classification values are not counted.
func (e Engine) Facets(products []product.Product) Facets {
	brands := map[string]int{}
	classes := map[string]int{}
	statuses := map[string]int{}

	var f Facets
	for i, p := range products {
		if p.Brand != "" {
			brands[p.Brand]++
		}
		if c := e.classify(p); c != "" {
			classes[c]++
		}
		statuses[string(p.Status())]++

		if i == 0 || p.Price.LessThan(*f.MinPrice) {
			price := p.Price
			f.MinPrice = &price
		}
		if i == 0 || p.Price.GreaterThan(*f.MaxPrice) {
			price := p.Price
			f.MaxPrice = &price
		}
	}

	f.Brands = counts(brands)
	f.Categories = counts(classes)
	f.Statuses = counts(statuses)
	return f
}

func counts(m map[string]int) []FacetCount {
	out := make([]FacetCount, 0, len(m))
	for v, n := range m {
		out = append(out, FacetCount{Value: v, Count: n})
	}
	slices.SortFunc(out, func(a, b FacetCount) int { return cmp.Compare(a.Value, b.Value) })
	return out
}

package catalog

import (
	"strings"

	"wholesale-be/internal/product"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Engine filters and orders product collections. It holds no state beyond
// its classifier and is safe to share.
type Engine struct {
	classify Classifier
}

// NewEngine returns an engine filtering categories through classify.
// A nil classifier means ByCategory.
func NewEngine(classify Classifier) Engine {
	if classify == nil {
		classify = ByCategory
	}
	return Engine{classify: classify}
}

// Query applies spec with the category-level engine.
func Query(products []product.Product, spec FilterSpec) []product.Product {
	return NewEngine(ByCategory).Query(products, spec)
}

// Query returns the products matching every dimension of spec, ordered by
// spec.Sort. The input slice is never modified.
func (e Engine) Query(products []product.Product, spec FilterSpec) []product.Product {
	m := e.matcher(spec)

	out := make([]product.Product, 0, len(products))
	for _, p := range products {
		if m.match(p) {
			out = append(out, p)
		}
	}

	sortProducts(out, spec.Sort)
	return out
}

type matcher struct {
	spec     FilterSpec
	classify Classifier
	status   product.Status
	byStatus bool
	query    string
	lower    cases.Caser
}

func (e Engine) matcher(spec FilterSpec) *matcher {
	m := &matcher{
		spec:     spec,
		classify: e.classify,
		lower:    cases.Lower(language.Und),
	}
	m.status, m.byStatus = spec.requiredStatus()
	if spec.Query != "" {
		m.query = m.lower.String(spec.Query)
	}
	return m
}

func (m *matcher) match(p product.Product) bool {
	if !m.spec.Brands.allows(p.Brand) {
		return false
	}
	if !m.spec.Categories.allows(m.classify(p)) {
		return false
	}
	if m.byStatus && p.Status() != m.status {
		return false
	}
	if !m.spec.Price.contains(p.Price) {
		return false
	}
	return m.matchText(p)
}

func (m *matcher) matchText(p product.Product) bool {
	if m.query == "" {
		return true
	}
	for _, field := range [...]string{p.Name, p.Brand, p.Category} {
		if strings.Contains(m.lower.String(field), m.query) {
			return true
		}
	}
	return false
}

package catalog

import (
	"fmt"
	"net/url"
	"strings"

	"wholesale-be/internal/product"

	"github.com/shopspring/decimal"
)

// Query-string parameters mirroring the filter dimensions.
const (
	ParamBrand    = "brand"
	ParamCategory = "category"
	ParamStatus   = "status"
	ParamMinPrice = "minPrice"
	ParamMaxPrice = "maxPrice"
	ParamQuery    = "q"
	ParamSort     = "sort"
)

// DecodeValues reads a FilterSpec from query parameters. Multi-valued
// dimensions are comma-joined; repeated parameters are merged.
func DecodeValues(v url.Values) (FilterSpec, error) {
	spec := FilterSpec{
		Brands:     NewSet(splitList(v[ParamBrand])...),
		Categories: NewSet(splitList(v[ParamCategory])...),
		Statuses:   NewSet[product.Status](),
		Query:      strings.TrimSpace(v.Get(ParamQuery)),
		Sort:       SortKey(strings.ToLower(strings.TrimSpace(v.Get(ParamSort)))),
	}

	for _, token := range splitList(v[ParamStatus]) {
		status := product.Status(strings.ToLower(token))
		if status != product.StatusInStock && status != product.StatusPreOrder {
			return FilterSpec{}, fmt.Errorf("%w: %s=%q", ErrInvalidFilter, ParamStatus, token)
		}
		spec.Statuses[status] = struct{}{}
	}

	if !spec.Sort.Valid() {
		return FilterSpec{}, fmt.Errorf("%w: %s=%q", ErrInvalidFilter, ParamSort, spec.Sort)
	}
	if spec.Sort == "" {
		spec.Sort = SortFeatured
	}

	var err error
	if spec.Price.Min, err = parseBound(v, ParamMinPrice); err != nil {
		return FilterSpec{}, err
	}
	if spec.Price.Max, err = parseBound(v, ParamMaxPrice); err != nil {
		return FilterSpec{}, err
	}

	return spec, nil
}

// EncodeValues is the inverse of DecodeValues. Output is deterministic so the
// encoded query string can be used as a shareable link.
func EncodeValues(spec FilterSpec) url.Values {
	v := url.Values{}
	if len(spec.Brands) > 0 {
		v.Set(ParamBrand, strings.Join(Sorted(spec.Brands), ","))
	}
	if len(spec.Categories) > 0 {
		v.Set(ParamCategory, strings.Join(Sorted(spec.Categories), ","))
	}
	if len(spec.Statuses) > 0 {
		statuses := Sorted(spec.Statuses)
		tokens := make([]string, len(statuses))
		for i, s := range statuses {
			tokens[i] = string(s)
		}
		v.Set(ParamStatus, strings.Join(tokens, ","))
	}
	if spec.Price.Min != nil {
		v.Set(ParamMinPrice, spec.Price.Min.String())
	}
	if spec.Price.Max != nil {
		v.Set(ParamMaxPrice, spec.Price.Max.String())
	}
	if spec.Query != "" {
		v.Set(ParamQuery, spec.Query)
	}
	if spec.Sort != "" && spec.Sort != SortFeatured {
		v.Set(ParamSort, string(spec.Sort))
	}
	return v
}

func splitList(values []string) []string {
	var out []string
	for _, raw := range values {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func parseBound(v url.Values, key string) (*decimal.Decimal, error) {
	raw := strings.TrimSpace(v.Get(key))
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		return nil, fmt.Errorf("%w: %s=%q", ErrInvalidFilter, key, raw)
	}
	return &d, nil
}

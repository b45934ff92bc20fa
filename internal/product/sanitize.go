package product

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RawProduct is a catalog entry as the backend sends it, before sanitizing.
type RawProduct struct {
	ID          any              `json:"id"`
	Name        string           `json:"name"`
	Brand       string           `json:"brand"`
	Category    string           `json:"category"`
	Subcategory string           `json:"subcategory"`
	Price       *decimal.Decimal `json:"price"`
	MinOrder    *int             `json:"minOrder"`
	Stock       *int             `json:"stock"`
	Unit        string           `json:"unit"`
	Image       string           `json:"image"`
	CreatedAt   string           `json:"createdAt"`
}

// Rejection records why an entry did not make it into the catalog.
type Rejection struct {
	Index  int
	ID     string
	Reason string
}

// DecodeCatalog parses a JSON array of products. Entries that fail to decode
// are reported as rejections instead of failing the whole payload.
func DecodeCatalog(data []byte) ([]Product, []Rejection, error) {
	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	raws := make([]RawProduct, 0, len(entries))
	var rejected []Rejection
	indexes := make([]int, 0, len(entries))

	for i, entry := range entries {
		dec := json.NewDecoder(bytes.NewReader(entry))
		dec.UseNumber()

		var raw RawProduct
		if err := dec.Decode(&raw); err != nil {
			rejected = append(rejected, Rejection{Index: i, Reason: RejectMalformed})
			continue
		}
		raws = append(raws, raw)
		indexes = append(indexes, i)
	}

	products, more := Sanitize(raws)
	for _, r := range more {
		r.Index = indexes[r.Index]
		rejected = append(rejected, r)
	}
	return products, rejected, nil
}

// Sanitize turns raw entries into products, preserving input order.
//
// Entries without an id or name, or with an absent or negative price, are
// dropped. A minimum order below one becomes one, negative stock becomes zero,
// and only the first entry for a given id is kept.
func Sanitize(raws []RawProduct) ([]Product, []Rejection) {
	products := make([]Product, 0, len(raws))
	seen := make(map[string]struct{}, len(raws))
	var rejected []Rejection

	for i, raw := range raws {
		id := normalizeID(raw.ID)
		switch {
		case id == "":
			rejected = append(rejected, Rejection{Index: i, Reason: RejectMissingID})
			continue
		case strings.TrimSpace(raw.Name) == "":
			rejected = append(rejected, Rejection{Index: i, ID: id, Reason: RejectMissingName})
			continue
		case raw.Price == nil || raw.Price.IsNegative():
			rejected = append(rejected, Rejection{Index: i, ID: id, Reason: RejectInvalidPrice})
			continue
		}
		if _, dup := seen[id]; dup {
			rejected = append(rejected, Rejection{Index: i, ID: id, Reason: RejectDuplicateID})
			continue
		}
		seen[id] = struct{}{}

		p := Product{
			ID:          id,
			Name:        strings.TrimSpace(raw.Name),
			Brand:       strings.TrimSpace(raw.Brand),
			Category:    strings.TrimSpace(raw.Category),
			Subcategory: strings.TrimSpace(raw.Subcategory),
			Price:       *raw.Price,
			MinOrder:    1,
			Unit:        raw.Unit,
			Image:       raw.Image,
		}
		if raw.MinOrder != nil && *raw.MinOrder > 1 {
			p.MinOrder = *raw.MinOrder
		}
		if raw.Stock != nil && *raw.Stock > 0 {
			p.Stock = *raw.Stock
		}
		if raw.CreatedAt != "" {
			if ts, err := time.Parse(time.RFC3339, raw.CreatedAt); err == nil {
				p.CreatedAt = ts
			}
		}

		products = append(products, p)
	}

	return products, rejected
}

func normalizeID(v any) string {
	switch id := v.(type) {
	case string:
		return strings.TrimSpace(id)
	case json.Number:
		return id.String()
	case float64:
		return decimal.NewFromFloat(id).String()
	default:
		return ""
	}
}

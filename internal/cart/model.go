package cart

import (
	"wholesale-be/internal/product"

	"github.com/shopspring/decimal"
)

// Line is one row of a cart, keyed by ProductID. Quantity is always at least one.
type Line struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Brand     string          `json:"brand"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Image     string          `json:"image,omitempty"`
	Unit      string          `json:"unit,omitempty"`
	Quantity  int             `json:"quantity"`
}

// LineFromProduct snapshots p into a line carrying its default quantity.
func LineFromProduct(p product.Product) Line {
	return Line{
		ProductID: p.ID,
		Name:      p.Name,
		Brand:     p.Brand,
		UnitPrice: p.Price,
		Image:     p.Image,
		Unit:      p.Unit,
		Quantity:  p.DefaultQuantity(),
	}
}

// Total is UnitPrice × Quantity, unrounded.
func (l Line) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

func (l Line) equal(o Line) bool {
	return l.ProductID == o.ProductID &&
		l.Name == o.Name &&
		l.Brand == o.Brand &&
		l.UnitPrice.Equal(o.UnitPrice) &&
		l.Image == o.Image &&
		l.Unit == o.Unit &&
		l.Quantity == o.Quantity
}

func (l Line) validate() error {
	switch {
	case l.ProductID == "":
		return ErrInvalidLine
	case l.Quantity < 1:
		return ErrInvalidQuantity
	case l.UnitPrice.IsNegative():
		return ErrInvalidLine
	}
	return nil
}

package cart

import "github.com/shopspring/decimal"

// Pricing holds the shipping rule applied to a cart's subtotal.
type Pricing struct {
	FreeShippingThreshold decimal.Decimal
	ShippingFee           decimal.Decimal
}

func DefaultPricing() Pricing {
	return Pricing{
		FreeShippingThreshold: decimal.NewFromInt(500),
		ShippingFee:           decimal.NewFromInt(25),
	}
}

// Totals is derived from a cart and never stored. Amounts are exact.
type Totals struct {
	ItemCount   int
	Subtotal    decimal.Decimal
	ShippingFee decimal.Decimal
	GrandTotal  decimal.Decimal
}

// Totals sums line totals exactly. Shipping is waived once the subtotal
// reaches the threshold and charged below it, the empty cart included.
func (c Cart) Totals(p Pricing) Totals {
	t := Totals{Subtotal: decimal.Zero, ShippingFee: decimal.Zero}
	for _, l := range c.lines {
		t.ItemCount += l.Quantity
		t.Subtotal = t.Subtotal.Add(l.Total())
	}

	if t.Subtotal.LessThan(p.FreeShippingThreshold) {
		t.ShippingFee = p.ShippingFee
	}
	t.GrandTotal = t.Subtotal.Add(t.ShippingFee)
	return t
}

// DisplayTotals is Totals rounded to cents for presentation.
type DisplayTotals struct {
	ItemCount    int    `json:"itemCount"`
	Subtotal     string `json:"subtotal"`
	ShippingFee  string `json:"shippingFee"`
	GrandTotal   string `json:"grandTotal"`
	FreeShipping bool   `json:"freeShipping"`
}

func (t Totals) Display() DisplayTotals {
	return DisplayTotals{
		ItemCount:    t.ItemCount,
		Subtotal:     t.Subtotal.StringFixed(2),
		ShippingFee:  t.ShippingFee.StringFixed(2),
		GrandTotal:   t.GrandTotal.StringFixed(2),
		FreeShipping: t.ShippingFee.IsZero(),
	}
}

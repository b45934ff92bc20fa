package cart

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotals_Threshold(t *testing.T) {
	pricing := DefaultPricing()

	cases := []struct {
		name     string
		lines    []Line
		fee      string
		grand    string
		subtotal string
	}{
		{"just below", []Line{line("1", "499.99")}, "25.00", "524.99", "499.99"},
		{"exactly at", []Line{line("1", "500.00")}, "0.00", "500.00", "500.00"},
		{"above", []Line{line("1", "250"), line("2", "250.01")}, "0.00", "500.01", "500.01"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := New(tc.lines...)
			require.NoError(t, err)

			d := c.Totals(pricing).Display()
			assert.Equal(t, tc.subtotal, d.Subtotal)
			assert.Equal(t, tc.fee, d.ShippingFee)
			assert.Equal(t, tc.grand, d.GrandTotal)
		})
	}
}

func TestTotals_Empty(t *testing.T) {
	tot := Cart{}.Totals(DefaultPricing())
	assert.Equal(t, 0, tot.ItemCount)
	assert.True(t, tot.Subtotal.IsZero())
	assert.Equal(t, "25.00", tot.Display().ShippingFee)
	assert.Equal(t, "25.00", tot.Display().GrandTotal)
	assert.False(t, tot.Display().FreeShipping)
}

func TestTotals_Exact(t *testing.T) {
	// 0.1 × 3 and friends must not drift.
	c, err := New(line("a", "0.10"), line("b", "0.20"))
	require.NoError(t, err)
	c = c.UpdateQuantity("a", 3)

	tot := c.Totals(DefaultPricing())
	assert.Equal(t, 4, tot.ItemCount)
	assert.True(t, tot.Subtotal.Equal(decimal.RequireFromString("0.5")))
	assert.True(t, tot.GrandTotal.Equal(decimal.RequireFromString("25.5")))
}

func TestTotals_OrderIndependent(t *testing.T) {
	r := rand.New(rand.NewSource(99))
	pricing := DefaultPricing()

	for i := 0; i < 50; i++ {
		var lines []Line
		want := decimal.Zero
		n := 1 + r.Intn(10)
		for j := 0; j < n; j++ {
			l := line(string(rune('a'+j)), decimal.New(int64(r.Intn(100000)), -2).String())
			l.Quantity = 1 + r.Intn(20)
			lines = append(lines, l)
			want = want.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
		}

		forward, err := New(lines...)
		require.NoError(t, err)

		reversed := make([]Line, len(lines))
		for k, l := range lines {
			reversed[len(lines)-1-k] = l
		}
		backward, err := New(reversed...)
		require.NoError(t, err)

		a, b := forward.Totals(pricing), backward.Totals(pricing)
		require.True(t, a.Subtotal.Equal(want))
		require.True(t, a.Subtotal.Equal(b.Subtotal))
		require.Equal(t, a.Subtotal.GreaterThanOrEqual(pricing.FreeShippingThreshold), a.ShippingFee.IsZero())
	}
}

func TestTotals_CustomPricing(t *testing.T) {
	c, err := New(line("1", "80"))
	require.NoError(t, err)

	p := Pricing{FreeShippingThreshold: decimal.NewFromInt(50), ShippingFee: decimal.NewFromInt(9)}
	assert.True(t, c.Totals(p).ShippingFee.IsZero())

	p.FreeShippingThreshold = decimal.NewFromInt(100)
	assert.Equal(t, "89.00", c.Totals(p).Display().GrandTotal)
	assert.False(t, c.Totals(p).Display().FreeShipping)
}

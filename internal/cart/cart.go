package cart

import (
	"fmt"
	"math"
	"slices"
)

// Cart is an immutable list of lines. Operations return a new Cart and never
// modify the receiver; the zero value is an empty cart.
type Cart struct {
	lines []Line
}

// New builds a cart from lines, merging repeated product ids.
func New(lines ...Line) (Cart, error) {
	var c Cart
	for _, l := range lines {
		next, err := c.AddItem(l, l.Quantity)
		if err != nil {
			return Cart{}, err
		}
		c = next
	}
	return c, nil
}

// Lines returns a copy of the cart's lines in insertion order.
func (c Cart) Lines() []Line {
	return slices.Clone(c.lines)
}

func (c Cart) Len() int { return len(c.lines) }

func (c Cart) IsEmpty() bool { return len(c.lines) == 0 }

func (c Cart) Find(productID string) (Line, bool) {
	if i := c.index(productID); i >= 0 {
		return c.lines[i], true
	}
	return Line{}, false
}

// Equal reports whether both carts hold the same lines in the same order.
func (c Cart) Equal(o Cart) bool {
	return slices.EqualFunc(c.lines, o.lines, Line.equal)
}

// AddItem appends line with the given quantity, or increments the existing
// line for the same product. A quantity below one or a line without a product
// id is a caller bug and is reported rather than corrected.
func (c Cart) AddItem(line Line, quantity int) (Cart, error) {
	if line.ProductID == "" {
		return c, ErrInvalidLine
	}
	if quantity < 1 {
		return c, fmt.Errorf("%w: %d", ErrInvalidQuantity, quantity)
	}
	if line.UnitPrice.IsNegative() {
		return c, fmt.Errorf("%w: negative unit price", ErrInvalidLine)
	}

	lines := c.Lines()
	if i := c.index(line.ProductID); i >= 0 {
		if lines[i].Quantity > math.MaxInt-quantity {
			return c, fmt.Errorf("%w: %d more of %s overflows", ErrInvalidQuantity, quantity, line.ProductID)
		}
		lines[i].Quantity += quantity
		return Cart{lines: lines}, nil
	}

	line.Quantity = quantity
	return Cart{lines: append(lines, line)}, nil
}

// UpdateQuantity sets the line's quantity exactly. Zero or less removes the
// line. A missing id or an unchanged quantity returns c itself.
func (c Cart) UpdateQuantity(productID string, quantity int) Cart {
	i := c.index(productID)
	if i < 0 {
		return c
	}
	if quantity <= 0 {
		return c.RemoveItem(productID)
	}
	if c.lines[i].Quantity == quantity {
		return c
	}

	lines := c.Lines()
	lines[i].Quantity = quantity
	return Cart{lines: lines}
}

// RemoveItem drops the line for productID; a missing id returns c itself.
func (c Cart) RemoveItem(productID string) Cart {
	i := c.index(productID)
	if i < 0 {
		return c
	}
	return Cart{lines: slices.Delete(c.Lines(), i, i+1)}
}

func (c Cart) Clear() Cart {
	if c.IsEmpty() {
		return c
	}
	return Cart{}
}

func (c Cart) index(productID string) int {
	return slices.IndexFunc(c.lines, func(l Line) bool { return l.ProductID == productID })
}

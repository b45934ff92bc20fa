package cart

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Encode serialises the cart as a JSON array of lines.
func Encode(c Cart) ([]byte, error) {
	lines := c.lines
	if lines == nil {
		lines = []Line{}
	}
	return json.Marshal(lines)
}

// Decode parses a stored cart. Empty input is an empty cart. Corrupt input or
// lines breaking cart invariants yield an empty cart with ErrCorruptCart.
func Decode(data []byte) (Cart, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Cart{}, nil
	}

	var lines []Line
	if err := json.Unmarshal(data, &lines); err != nil {
		return Cart{}, fmt.Errorf("%w: %v", ErrCorruptCart, err)
	}

	seen := make(map[string]struct{}, len(lines))
	for i, l := range lines {
		if err := l.validate(); err != nil {
			return Cart{}, fmt.Errorf("%w: line %d: %v", ErrCorruptCart, i, err)
		}
		if _, dup := seen[l.ProductID]; dup {
			return Cart{}, fmt.Errorf("%w: duplicate product %q", ErrCorruptCart, l.ProductID)
		}
		seen[l.ProductID] = struct{}{}
	}

	if len(lines) == 0 {
		return Cart{}, nil
	}
	return Cart{lines: lines}, nil
}

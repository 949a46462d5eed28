// Package cart tracks the items and quantities selected for one order draft.
package cart

import (
	"errors"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/example/laundryhub/pkg/catalog"
)

// ErrQuoteRequired marks items that cannot be priced up front. They go through
// the quote-request flow instead of the cart.
var ErrQuoteRequired = errors.New("item requires a quote and cannot be added to the cart")

type Line struct {
	Item     catalog.Item `json:"item"`
	Quantity int          `json:"quantity"`
}

// Cart maps item ID to a line. The zero value is not usable; call New.
type Cart struct {
	Lines map[string]Line `json:"lines"`
}

func New() *Cart {
	return &Cart{Lines: make(map[string]Line)}
}

// SetQuantity adjusts an item's quantity by delta, clamped at zero. A quantity
// of zero removes the line entirely. There is no upper bound.
func (c *Cart) SetQuantity(item catalog.Item, delta int) error {
	if item.QuoteRequired {
		return ErrQuoteRequired
	}

	line := c.Lines[item.ID]
	qty := line.Quantity + delta
	if qty <= 0 {
		delete(c.Lines, item.ID)
		return nil
	}

	c.Lines[item.ID] = Line{Item: item, Quantity: qty}
	return nil
}

// TotalAmount sums quantity times unit price over all lines.
func (c *Cart) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.Lines {
		total = total.Add(line.Item.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}

// TotalItemCount sums quantities across all lines.
func (c *Cart) TotalItemCount() int {
	count := 0
	for _, line := range c.Lines {
		count += line.Quantity
	}
	return count
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// SortedLines returns the lines ordered by item ID for stable display and
// persistence order.
func (c *Cart) SortedLines() []Line {
	out := make([]Line, 0, len(c.Lines))
	for _, line := range c.Lines {
		out = append(out, line)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Item.ID < out[j].Item.ID })
	return out
}

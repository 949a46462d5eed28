// Package pricing computes the order totals. Dutch VAT applies at the standard
// rate; pickup and delivery are free so shipping is always zero.
package pricing

import "github.com/shopspring/decimal"

// VATRate is the standard 21% rate.
var VATRate = decimal.New(21, -2)

type Breakdown struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
}

// Compute derives tax and total from a subtotal. The tax line is rounded to
// cents; the subtotal is already a sum of cent-precision prices.
func Compute(subtotal decimal.Decimal) Breakdown {
	tax := subtotal.Mul(VATRate).Round(2)
	shipping := decimal.Zero
	return Breakdown{
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: shipping,
		Total:    subtotal.Add(tax).Add(shipping),
	}
}

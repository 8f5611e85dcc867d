// Package billing holds the cart and the totals arithmetic behind a bill.
package billing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// CartLine is one distinct menu item in a cart being composed
type CartLine struct {
	MenuItemID uuid.UUID
	Name       string
	UnitPrice  decimal.Decimal
	Quantity   int
	Category   string
}

// LineTotal is unit price times quantity
func (l CartLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Totals is the money breakdown of a cart
type Totals struct {
	Subtotal  decimal.Decimal
	TaxAmount decimal.Decimal
	Discount  decimal.Decimal
	Total     decimal.Decimal
}

// CalculateTotals returns subtotal, tax and total for a cart.
// No rounding is applied and the discount is not clamped: a negative
// discount raises the total and one above the subtotal makes it negative.
func CalculateTotals(lines []CartLine, taxPercentage, discount decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.LineTotal())
	}
	tax := subtotal.Mul(taxPercentage).Div(hundred)

	return Totals{
		Subtotal:  subtotal,
		TaxAmount: tax,
		Discount:  discount,
		Total:     subtotal.Add(tax).Sub(discount),
	}
}

// Package receipt turns raw OCR text lines into structured receipt data.
//
// The parser is deliberately best-effort: scanned receipts produce noisy
// text, so malformed or ambiguous lines degrade to fewer items rather than
// errors. Callers are expected to let the user review and edit the result.
package receipt

import "github.com/shopspring/decimal"

// LineItem is one purchasable entry on a receipt.
type LineItem struct {
	// ID is the unique identifier for the item (UUID format).
	// Empty until the item is persisted.
	ID string

	// Name is the free-text label of the item (e.g., "Flat White").
	Name string

	// UnitPrice is the pre-tax price of a single unit. Never negative.
	UnitPrice decimal.Decimal

	// Quantity is the number of units. Always >= 1; the parser defaults it to 1.
	Quantity int

	// Assigned is the set of friend names splitting this item.
	// Empty until the user assigns friends.
	Assigned []string
}

// Total returns UnitPrice multiplied by Quantity.
func (li LineItem) Total() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Receipt is a working receipt: an ordered list of line items plus
// auxiliary metadata picked up during parsing.
type Receipt struct {
	// Items in input/display order.
	Items []LineItem

	// DateLine is the first scanned line mentioning a date, if any.
	// Informational only.
	DateLine string
}

// Subtotal is the sum of all item totals regardless of assignment.
// It is always derived from Items, never stored.
func (r Receipt) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range r.Items {
		sum = sum.Add(item.Total())
	}
	return sum
}

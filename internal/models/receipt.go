package models

import (
	"github.com/shopspring/decimal"

	"github.com/billbuddy/backend/internal/receipt"
)

// Receipt is a persisted working receipt.
type Receipt struct {
	// ID is the unique identifier for the receipt (UUID format).
	ID string

	// OwnerID is the account that created the receipt.
	OwnerID string

	// Title is the human-readable name. Auto-generated from the participants
	// when left blank.
	Title string

	// Items are the line items, in display order, with their friend
	// assignments.
	Items []receipt.LineItem

	// DateLine is the auxiliary date text the parser picked up, if any.
	DateLine string

	// PayerID is the participant who fronted the money. Optional; balance
	// aggregation skips receipts without one.
	PayerID string

	// Participants is the list of friend names splitting this receipt.
	Participants []string

	// CreatedAt is the Unix timestamp when the receipt was created.
	CreatedAt int64
}

// Subtotal is the sum of all item totals regardless of assignment,
// always recomputed from the items.
func (r *Receipt) Subtotal() decimal.Decimal {
	return receipt.Receipt{Items: r.Items}.Subtotal()
}

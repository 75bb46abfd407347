package models

import "github.com/shopspring/decimal"

// Settlement is a recorded payment between two friends that clears debt.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string

	// OwnerID is the account that recorded the settlement.
	OwnerID string

	// FromName is the friend who paid.
	FromName string

	// ToName is the friend who received the payment.
	ToName string

	// Amount is the payment amount.
	Amount decimal.Decimal

	// Note is an optional description.
	Note string

	// CreatedAt is the Unix timestamp when the settlement was recorded.
	CreatedAt int64
}

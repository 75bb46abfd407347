package models

import "github.com/shopspring/decimal"

// Reminder is a scheduled payment reminder: "nudge FriendName about Amount
// at DueAt". Delivery is handled by an external notification collaborator;
// the backend only schedules and tracks them.
type Reminder struct {
	// ID is the unique identifier for the reminder (UUID format).
	ID string

	// OwnerID is the account that scheduled the reminder.
	OwnerID string

	// FriendName is who the reminder is about.
	FriendName string

	// Amount is the outstanding amount the reminder refers to.
	Amount decimal.Decimal

	// Note is an optional message included with the reminder.
	Note string

	// DueAt is the Unix timestamp the reminder becomes due.
	DueAt int64

	// SentAt is the Unix timestamp the reminder was handed to the sender,
	// or 0 while still pending.
	SentAt int64
}

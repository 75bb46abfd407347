package models

// Friend is an entry in a user's friend directory. Friends do not need
// accounts of their own; they are names the owner splits bills with,
// optionally with an email for payment requests.
type Friend struct {
	// ID is the unique identifier for the entry (UUID format).
	ID string

	// OwnerID is the account this directory entry belongs to.
	OwnerID string

	// Name is the display name used in assignments and splits.
	Name string

	// Email is optional, used when sending payment requests.
	Email string

	// CreatedAt is the Unix timestamp when the friend was added.
	CreatedAt int64
}

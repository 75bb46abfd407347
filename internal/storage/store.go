// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/billbuddy/backend/internal/models"
)

// Store defines the interface for backend storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the API layer.
type Store interface {
	// CreateReceipt persists a new receipt. ID, CreatedAt, and Title are
	// populated by the store when left unset.
	CreateReceipt(ctx context.Context, rec *models.Receipt) error

	// GetReceipt retrieves a receipt by its ID, including items and
	// assignments. Returns an error if the receipt is not found.
	GetReceipt(ctx context.Context, receiptID string) (*models.Receipt, error)

	// UpdateReceipt replaces an existing receipt's contents.
	// Returns an error if the receipt is not found.
	UpdateReceipt(ctx context.Context, rec *models.Receipt) error

	// DeleteReceipt removes a receipt and its items.
	DeleteReceipt(ctx context.Context, receiptID string) error

	// ListReceiptsByOwner returns the owner's receipts, newest first.
	ListReceiptsByOwner(ctx context.Context, ownerID string) ([]*models.Receipt, error)

	// CreateUser inserts a new user account.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email.
	// Returns (nil, nil) when no such user exists.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by ID.
	// Returns (nil, nil) when no such user exists.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// AddFriend inserts a friend directory entry.
	AddFriend(ctx context.Context, friend *models.Friend) error

	// ListFriends returns the owner's friends ordered by name.
	ListFriends(ctx context.Context, ownerID string) ([]*models.Friend, error)

	// RemoveFriend deletes a friend entry owned by ownerID.
	RemoveFriend(ctx context.Context, ownerID, friendID string) error

	// CreateReminder schedules a payment reminder.
	CreateReminder(ctx context.Context, reminder *models.Reminder) error

	// ListReminders returns the owner's reminders, soonest due first.
	ListReminders(ctx context.Context, ownerID string) ([]*models.Reminder, error)

	// DueReminders returns unsent reminders due at or before now.
	DueReminders(ctx context.Context, now int64) ([]*models.Reminder, error)

	// MarkReminderSent records that a reminder was handed to the sender.
	MarkReminderSent(ctx context.Context, reminderID string, sentAt int64) error

	// CreateSettlement records a payment between friends.
	CreateSettlement(ctx context.Context, settlement *models.Settlement) error

	// ListSettlements returns the owner's settlements, newest first.
	ListSettlements(ctx context.Context, ownerID string) ([]*models.Settlement, error)

	// Close releases any resources held by the store.
	Close() error
}

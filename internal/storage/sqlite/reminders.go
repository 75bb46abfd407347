package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/billbuddy/backend/internal/models"
)

// CreateReminder schedules a payment reminder.
func (s *SQLiteStore) CreateReminder(ctx context.Context, reminder *models.Reminder) error {
	if reminder.ID == "" {
		reminder.ID = uuid.New().String()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO reminders (id, owner_id, friend_name, amount, note, due_at, sent_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		reminder.ID,
		reminder.OwnerID,
		reminder.FriendName,
		reminder.Amount.String(),
		reminder.Note,
		reminder.DueAt,
		reminder.SentAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create reminder: %w", err)
	}
	return nil
}

// ListReminders returns the owner's reminders, soonest due first.
func (s *SQLiteStore) ListReminders(ctx context.Context, ownerID string) ([]*models.Reminder, error) {
	return s.queryReminders(ctx,
		"SELECT id, owner_id, friend_name, amount, note, due_at, sent_at FROM reminders WHERE owner_id = ? ORDER BY due_at",
		ownerID,
	)
}

// DueReminders returns unsent reminders due at or before now, across all
// owners, ordered by due time.
func (s *SQLiteStore) DueReminders(ctx context.Context, now int64) ([]*models.Reminder, error) {
	return s.queryReminders(ctx,
		"SELECT id, owner_id, friend_name, amount, note, due_at, sent_at FROM reminders WHERE sent_at = 0 AND due_at <= ? ORDER BY due_at",
		now,
	)
}

func (s *SQLiteStore) queryReminders(ctx context.Context, query string, arg any) ([]*models.Reminder, error) {
	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query reminders: %w", err)
	}
	defer rows.Close()

	var reminders []*models.Reminder
	for rows.Next() {
		r := &models.Reminder{}
		var amount string
		if err := rows.Scan(&r.ID, &r.OwnerID, &r.FriendName, &amount, &r.Note, &r.DueAt, &r.SentAt); err != nil {
			return nil, fmt.Errorf("failed to scan reminder: %w", err)
		}
		r.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("corrupt amount %q for reminder %s: %w", amount, r.ID, err)
		}
		reminders = append(reminders, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reminders: %w", err)
	}

	return reminders, nil
}

// MarkReminderSent records the hand-off time for a reminder.
func (s *SQLiteStore) MarkReminderSent(ctx context.Context, reminderID string, sentAt int64) error {
	if sentAt == 0 {
		sentAt = time.Now().Unix()
	}
	res, err := s.db.ExecContext(ctx,
		"UPDATE reminders SET sent_at = ? WHERE id = ? AND sent_at = 0",
		sentAt, reminderID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark reminder sent: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("reminder not found or already sent: %s", reminderID)
	}
	return nil
}

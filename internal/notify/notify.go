// Package notify schedules delivery of payment reminders.
//
// Actual delivery (push, email, SMS) belongs to an external collaborator
// behind the Sender interface; this package only decides when a reminder is
// due and hands it over exactly once.
package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/billbuddy/backend/internal/models"
)

// Sender delivers a reminder to the outside world.
type Sender interface {
	Send(ctx context.Context, reminder *models.Reminder) error
}

// ReminderStorage is the slice of the store the dispatcher needs.
type ReminderStorage interface {
	DueReminders(ctx context.Context, now int64) ([]*models.Reminder, error)
	MarkReminderSent(ctx context.Context, reminderID string, sentAt int64) error
}

// LogSender is the default Sender: it just logs what would be delivered.
// Useful in development and as a stand-in until a push provider is wired up.
type LogSender struct{}

func (LogSender) Send(_ context.Context, reminder *models.Reminder) error {
	slog.Info("Reminder due",
		"reminder_id", reminder.ID,
		"friend", reminder.FriendName,
		"amount", reminder.Amount.StringFixed(2),
		"note", reminder.Note,
	)
	return nil
}

// Dispatcher polls the store for due reminders and forwards them to a Sender.
type Dispatcher struct {
	store    ReminderStorage
	sender   Sender
	interval time.Duration
}

// NewDispatcher creates a dispatcher polling at the given interval.
func NewDispatcher(store ReminderStorage, sender Sender, interval time.Duration) *Dispatcher {
	return &Dispatcher{store: store, sender: sender, interval: interval}
}

// Run polls until ctx is canceled. One failed reminder does not block the
// rest of the batch; it stays unsent and is retried next tick.
func (d *Dispatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.DispatchDue(ctx, time.Now().Unix())
		}
	}
}

// DispatchDue sends every unsent reminder due at or before now.
// Marking happens before sending so a crashed send cannot double-deliver;
// the trade-off is that a failed send is logged and dropped.
func (d *Dispatcher) DispatchDue(ctx context.Context, now int64) {
	due, err := d.store.DueReminders(ctx, now)
	if err != nil {
		slog.Error("Failed to load due reminders", "error", err)
		return
	}

	for _, reminder := range due {
		if err := d.store.MarkReminderSent(ctx, reminder.ID, now); err != nil {
			slog.Error("Failed to mark reminder sent", "reminder_id", reminder.ID, "error", err)
			continue
		}
		if err := d.sender.Send(ctx, reminder); err != nil {
			slog.Error("Failed to send reminder", "reminder_id", reminder.ID, "error", err)
		}
	}
}

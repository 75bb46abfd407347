package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/billbuddy/backend/internal/models"
	"github.com/billbuddy/backend/internal/receipt"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStoreReceipts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateReceipt generates ID and title", func(t *testing.T) {
		rec := &models.Receipt{
			OwnerID:      "owner-1",
			Participants: []string{"Alex", "Bella"},
			Items: []receipt.LineItem{
				{Name: "Pizza", UnitPrice: decimal.RequireFromString("20.00"), Quantity: 1, Assigned: []string{"Alex", "Bella"}},
				{Name: "Beer", UnitPrice: decimal.RequireFromString("5.00"), Quantity: 2, Assigned: []string{"Bella"}},
			},
		}

		if err := store.CreateReceipt(ctx, rec); err != nil {
			t.Fatalf("CreateReceipt failed: %v", err)
		}

		if rec.ID == "" {
			t.Error("Expected receipt ID to be generated")
		}
		if rec.Title != "Split with Alex, Bella" {
			t.Errorf("Title = %q, want auto-generated participant title", rec.Title)
		}
		if rec.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}
	})

	t.Run("GetReceipt round-trips items in order with exact prices", func(t *testing.T) {
		original := &models.Receipt{
			OwnerID:      "owner-1",
			Title:        "Test Dinner",
			DateLine:     "Date: 23/04/2025",
			PayerID:      "Charlie",
			Participants: []string{"Charlie", "Diana"},
			Items: []receipt.LineItem{
				{Name: "Steak", UnitPrice: decimal.RequireFromString("30.50"), Quantity: 1, Assigned: []string{"Charlie"}},
				{Name: "Salad", UnitPrice: decimal.RequireFromString("20.25"), Quantity: 1, Assigned: []string{"Diana"}},
				{Name: "Water", UnitPrice: decimal.RequireFromString("0.00"), Quantity: 1},
			},
		}

		if err := store.CreateReceipt(ctx, original); err != nil {
			t.Fatalf("CreateReceipt failed: %v", err)
		}

		retrieved, err := store.GetReceipt(ctx, original.ID)
		if err != nil {
			t.Fatalf("GetReceipt failed: %v", err)
		}

		if retrieved.Title != "Test Dinner" || retrieved.DateLine != "Date: 23/04/2025" || retrieved.PayerID != "Charlie" {
			t.Errorf("receipt fields did not round-trip: %+v", retrieved)
		}
		if len(retrieved.Items) != 3 {
			t.Fatalf("got %d items, want 3", len(retrieved.Items))
		}
		for i, want := range []string{"Steak", "Salad", "Water"} {
			if retrieved.Items[i].Name != want {
				t.Errorf("item %d = %q, want %q (order not preserved)", i, retrieved.Items[i].Name, want)
			}
		}
		if !retrieved.Items[0].UnitPrice.Equal(decimal.RequireFromString("30.5")) {
			t.Errorf("Steak price = %s, want 30.5", retrieved.Items[0].UnitPrice)
		}
		if len(retrieved.Items[0].Assigned) != 1 || retrieved.Items[0].Assigned[0] != "Charlie" {
			t.Errorf("Steak assignments = %v, want [Charlie]", retrieved.Items[0].Assigned)
		}
		if len(retrieved.Items[2].Assigned) != 0 {
			t.Errorf("Water should be unassigned, got %v", retrieved.Items[2].Assigned)
		}
		if !retrieved.Subtotal().Equal(decimal.RequireFromString("50.75")) {
			t.Errorf("Subtotal = %s, want 50.75", retrieved.Subtotal())
		}
	})

	t.Run("GetReceipt unknown ID fails", func(t *testing.T) {
		if _, err := store.GetReceipt(ctx, "nope"); err == nil {
			t.Error("expected error for unknown receipt")
		}
	})

	t.Run("UpdateReceipt rewrites items", func(t *testing.T) {
		rec := &models.Receipt{
			OwnerID:      "owner-2",
			Participants: []string{"Alex"},
			Items: []receipt.LineItem{
				{Name: "Coffee", UnitPrice: decimal.RequireFromString("4.50"), Quantity: 1},
			},
		}
		if err := store.CreateReceipt(ctx, rec); err != nil {
			t.Fatalf("CreateReceipt failed: %v", err)
		}

		rec.Title = "Morning run"
		rec.Items = []receipt.LineItem{
			{Name: "Coffee", UnitPrice: decimal.RequireFromString("4.50"), Quantity: 2, Assigned: []string{"Alex"}},
			{Name: "Bagel", UnitPrice: decimal.RequireFromString("3.25"), Quantity: 1, Assigned: []string{"Alex"}},
		}
		if err := store.UpdateReceipt(ctx, rec); err != nil {
			t.Fatalf("UpdateReceipt failed: %v", err)
		}

		retrieved, err := store.GetReceipt(ctx, rec.ID)
		if err != nil {
			t.Fatalf("GetReceipt failed: %v", err)
		}
		if retrieved.Title != "Morning run" {
			t.Errorf("Title = %q, want %q", retrieved.Title, "Morning run")
		}
		if len(retrieved.Items) != 2 {
			t.Fatalf("got %d items after update, want 2", len(retrieved.Items))
		}
		if retrieved.Items[0].Quantity != 2 {
			t.Errorf("Coffee quantity = %d, want 2", retrieved.Items[0].Quantity)
		}
	})

	t.Run("UpdateReceipt unknown ID fails", func(t *testing.T) {
		rec := &models.Receipt{ID: "missing", Title: "x"}
		if err := store.UpdateReceipt(ctx, rec); err == nil {
			t.Error("expected error for unknown receipt")
		}
	})

	t.Run("DeleteReceipt removes receipt and items", func(t *testing.T) {
		rec := &models.Receipt{
			OwnerID: "owner-3",
			Items: []receipt.LineItem{
				{Name: "Toast", UnitPrice: decimal.RequireFromString("6.00"), Quantity: 1},
			},
		}
		if err := store.CreateReceipt(ctx, rec); err != nil {
			t.Fatalf("CreateReceipt failed: %v", err)
		}
		if err := store.DeleteReceipt(ctx, rec.ID); err != nil {
			t.Fatalf("DeleteReceipt failed: %v", err)
		}
		if _, err := store.GetReceipt(ctx, rec.ID); err == nil {
			t.Error("expected error after delete")
		}
		if err := store.DeleteReceipt(ctx, rec.ID); err == nil {
			t.Error("expected error deleting twice")
		}
	})

	t.Run("ListReceiptsByOwner scopes to owner", func(t *testing.T) {
		for _, owner := range []string{"lister", "lister", "someone-else"} {
			rec := &models.Receipt{OwnerID: owner, Participants: []string{"Alex"}}
			if err := store.CreateReceipt(ctx, rec); err != nil {
				t.Fatalf("CreateReceipt failed: %v", err)
			}
		}

		receipts, err := store.ListReceiptsByOwner(ctx, "lister")
		if err != nil {
			t.Fatalf("ListReceiptsByOwner failed: %v", err)
		}
		if len(receipts) != 2 {
			t.Errorf("got %d receipts, want 2", len(receipts))
		}
	})
}

func TestSQLiteStoreUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := models.NewUser("alex@example.com", "Alex", "hash")
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	t.Run("GetUserByEmail", func(t *testing.T) {
		got, err := store.GetUserByEmail(ctx, "alex@example.com")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if got == nil || got.ID != user.ID || got.DisplayName != "Alex" {
			t.Errorf("got %+v, want created user", got)
		}
	})

	t.Run("GetUserByEmail missing returns nil", func(t *testing.T) {
		got, err := store.GetUserByEmail(ctx, "nobody@example.com")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if got != nil {
			t.Errorf("got %+v, want nil", got)
		}
	})

	t.Run("GetUserByID", func(t *testing.T) {
		got, err := store.GetUserByID(ctx, user.ID)
		if err != nil {
			t.Fatalf("GetUserByID failed: %v", err)
		}
		if got == nil || got.Email != "alex@example.com" {
			t.Errorf("got %+v, want created user", got)
		}
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		dup := models.NewUser("alex@example.com", "Other Alex", "hash2")
		if err := store.CreateUser(ctx, dup); err == nil {
			t.Error("expected unique constraint error")
		}
	})
}

func TestSQLiteStoreFriends(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"Charlie", "Alex", "Bella"} {
		if err := store.AddFriend(ctx, &models.Friend{OwnerID: "owner-1", Name: name}); err != nil {
			t.Fatalf("AddFriend(%s) failed: %v", name, err)
		}
	}

	friends, err := store.ListFriends(ctx, "owner-1")
	if err != nil {
		t.Fatalf("ListFriends failed: %v", err)
	}
	if len(friends) != 3 {
		t.Fatalf("got %d friends, want 3", len(friends))
	}
	for i, want := range []string{"Alex", "Bella", "Charlie"} {
		if friends[i].Name != want {
			t.Errorf("friend %d = %q, want %q", i, friends[i].Name, want)
		}
	}

	t.Run("duplicate name per owner rejected", func(t *testing.T) {
		if err := store.AddFriend(ctx, &models.Friend{OwnerID: "owner-1", Name: "Alex"}); err == nil {
			t.Error("expected unique constraint error")
		}
	})

	t.Run("same name under another owner is fine", func(t *testing.T) {
		if err := store.AddFriend(ctx, &models.Friend{OwnerID: "owner-2", Name: "Alex"}); err != nil {
			t.Errorf("AddFriend failed: %v", err)
		}
	})

	t.Run("RemoveFriend checks ownership", func(t *testing.T) {
		if err := store.RemoveFriend(ctx, "owner-2", friends[0].ID); err == nil {
			t.Error("expected error removing someone else's friend")
		}
		if err := store.RemoveFriend(ctx, "owner-1", friends[0].ID); err != nil {
			t.Errorf("RemoveFriend failed: %v", err)
		}
	})
}

func TestSQLiteStoreReminders(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	due := &models.Reminder{
		OwnerID:    "owner-1",
		FriendName: "Bella",
		Amount:     decimal.RequireFromString("12.50"),
		Note:       "dinner last week",
		DueAt:      100,
	}
	future := &models.Reminder{
		OwnerID:    "owner-1",
		FriendName: "Charlie",
		Amount:     decimal.RequireFromString("3.00"),
		DueAt:      9999,
	}
	for _, r := range []*models.Reminder{due, future} {
		if err := store.CreateReminder(ctx, r); err != nil {
			t.Fatalf("CreateReminder failed: %v", err)
		}
	}

	t.Run("DueReminders returns only due unsent", func(t *testing.T) {
		got, err := store.DueReminders(ctx, 500)
		if err != nil {
			t.Fatalf("DueReminders failed: %v", err)
		}
		if len(got) != 1 || got[0].FriendName != "Bella" {
			t.Fatalf("got %+v, want just Bella's reminder", got)
		}
		if !got[0].Amount.Equal(decimal.RequireFromString("12.5")) {
			t.Errorf("amount = %s, want 12.5", got[0].Amount)
		}
	})

	t.Run("MarkReminderSent removes from due set", func(t *testing.T) {
		if err := store.MarkReminderSent(ctx, due.ID, 501); err != nil {
			t.Fatalf("MarkReminderSent failed: %v", err)
		}
		got, err := store.DueReminders(ctx, 500)
		if err != nil {
			t.Fatalf("DueReminders failed: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("got %+v, want none", got)
		}
		if err := store.MarkReminderSent(ctx, due.ID, 502); err == nil {
			t.Error("expected error marking twice")
		}
	})

	t.Run("ListReminders returns all for owner", func(t *testing.T) {
		got, err := store.ListReminders(ctx, "owner-1")
		if err != nil {
			t.Fatalf("ListReminders failed: %v", err)
		}
		if len(got) != 2 {
			t.Errorf("got %d reminders, want 2", len(got))
		}
	})
}

func TestSQLiteStoreSettlements(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	st := &models.Settlement{
		OwnerID:  "owner-1",
		FromName: "Bella",
		ToName:   "Alex",
		Amount:   decimal.RequireFromString("10.00"),
		Note:     "paid back for lunch",
	}
	if err := store.CreateSettlement(ctx, st); err != nil {
		t.Fatalf("CreateSettlement failed: %v", err)
	}

	got, err := store.ListSettlements(ctx, "owner-1")
	if err != nil {
		t.Fatalf("ListSettlements failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d settlements, want 1", len(got))
	}
	if got[0].FromName != "Bella" || got[0].ToName != "Alex" || !got[0].Amount.Equal(decimal.RequireFromString("10")) {
		t.Errorf("settlement did not round-trip: %+v", got[0])
	}
}

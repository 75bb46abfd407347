package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/billbuddy/backend/internal/models"
	"github.com/billbuddy/backend/internal/receipt"
)

// CreateReceipt persists a new receipt with its items, assignments, and
// participants in a single transaction.
func (s *SQLiteStore) CreateReceipt(ctx context.Context, rec *models.Receipt) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt == 0 {
		rec.CreatedAt = time.Now().Unix()
	}
	if rec.Title == "" {
		rec.Title = generateTitle(rec.Participants)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO receipts (id, owner_id, title, date_line, payer_id, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		rec.ID, rec.OwnerID, rec.Title, rec.DateLine, rec.PayerID, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert receipt: %w", err)
	}

	if err := insertReceiptContents(ctx, tx, rec); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// UpdateReceipt replaces an existing receipt's row and rewrites its items,
// assignments, and participants.
func (s *SQLiteStore) UpdateReceipt(ctx context.Context, rec *models.Receipt) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"UPDATE receipts SET title = ?, date_line = ?, payer_id = ? WHERE id = ?",
		rec.Title, rec.DateLine, rec.PayerID, rec.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update receipt: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("receipt not found: %s", rec.ID)
	}

	// Rewrite dependent rows rather than diffing them; receipts are small.
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM items WHERE receipt_id = ?", rec.ID); err != nil {
		return fmt.Errorf("failed to clear items: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM participants WHERE receipt_id = ?", rec.ID); err != nil {
		return fmt.Errorf("failed to clear participants: %w", err)
	}

	if err := insertReceiptContents(ctx, tx, rec); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func insertReceiptContents(ctx context.Context, tx *sql.Tx, rec *models.Receipt) error {
	for _, name := range rec.Participants {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO participants (receipt_id, name) VALUES (?, ?)",
			rec.ID, name,
		); err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}

	for i := range rec.Items {
		item := &rec.Items[i]
		if item.ID == "" {
			item.ID = uuid.New().String()
		}

		if _, err := tx.ExecContext(ctx,
			"INSERT INTO items (id, receipt_id, position, name, unit_price, quantity) VALUES (?, ?, ?, ?, ?, ?)",
			item.ID, rec.ID, i, item.Name, item.UnitPrice.String(), item.Quantity,
		); err != nil {
			return fmt.Errorf("failed to insert item: %w", err)
		}

		for _, friend := range item.Assigned {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO item_assignments (item_id, friend) VALUES (?, ?)",
				item.ID, friend,
			); err != nil {
				return fmt.Errorf("failed to insert item assignment: %w", err)
			}
		}
	}

	return nil
}

// GetReceipt retrieves a receipt by ID, including items, assignments, and
// participants.
func (s *SQLiteStore) GetReceipt(ctx context.Context, receiptID string) (*models.Receipt, error) {
	rec := &models.Receipt{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, owner_id, title, date_line, payer_id, created_at FROM receipts WHERE id = ?",
		receiptID,
	).Scan(&rec.ID, &rec.OwnerID, &rec.Title, &rec.DateLine, &rec.PayerID, &rec.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("receipt not found: %s", receiptID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get receipt: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT name FROM participants WHERE receipt_id = ? ORDER BY name",
		receiptID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		rec.Participants = append(rec.Participants, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}

	items, err := s.receiptItems(ctx, receiptID)
	if err != nil {
		return nil, err
	}
	rec.Items = items

	return rec, nil
}

func (s *SQLiteStore) receiptItems(ctx context.Context, receiptID string) ([]receipt.LineItem, error) {
	itemRows, err := s.db.QueryContext(ctx,
		"SELECT id, name, unit_price, quantity FROM items WHERE receipt_id = ? ORDER BY position",
		receiptID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get items: %w", err)
	}
	defer itemRows.Close()

	var items []receipt.LineItem
	for itemRows.Next() {
		var item receipt.LineItem
		var price string
		if err := itemRows.Scan(&item.ID, &item.Name, &price, &item.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		item.UnitPrice, err = decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("corrupt unit price %q for item %s: %w", price, item.ID, err)
		}
		items = append(items, item)
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}

	for i := range items {
		assignRows, err := s.db.QueryContext(ctx,
			"SELECT friend FROM item_assignments WHERE item_id = ? ORDER BY friend",
			items[i].ID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to get item assignments: %w", err)
		}

		for assignRows.Next() {
			var friend string
			if err := assignRows.Scan(&friend); err != nil {
				assignRows.Close()
				return nil, fmt.Errorf("failed to scan assignment: %w", err)
			}
			items[i].Assigned = append(items[i].Assigned, friend)
		}
		if err := assignRows.Err(); err != nil {
			assignRows.Close()
			return nil, fmt.Errorf("failed to iterate assignments: %w", err)
		}
		assignRows.Close()
	}

	return items, nil
}

// DeleteReceipt removes a receipt; items, assignments, and participants go
// with it via ON DELETE CASCADE.
func (s *SQLiteStore) DeleteReceipt(ctx context.Context, receiptID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM receipts WHERE id = ?", receiptID)
	if err != nil {
		return fmt.Errorf("failed to delete receipt: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("receipt not found: %s", receiptID)
	}
	return nil
}

// ListReceiptsByOwner returns the owner's receipts, newest first, with their
// items loaded.
func (s *SQLiteStore) ListReceiptsByOwner(ctx context.Context, ownerID string) ([]*models.Receipt, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id FROM receipts WHERE owner_id = ? ORDER BY created_at DESC, id",
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list receipts: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan receipt id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate receipts: %w", err)
	}

	receipts := make([]*models.Receipt, 0, len(ids))
	for _, id := range ids {
		rec, err := s.GetReceipt(ctx, id)
		if err != nil {
			return nil, err
		}
		receipts = append(receipts, rec)
	}
	return receipts, nil
}

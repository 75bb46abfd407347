package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/billbuddy/backend/internal/models"
)

// CreateSettlement records a payment between friends.
func (s *SQLiteStore) CreateSettlement(ctx context.Context, settlement *models.Settlement) error {
	if settlement.ID == "" {
		settlement.ID = uuid.New().String()
	}
	if settlement.CreatedAt == 0 {
		settlement.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO settlements (id, owner_id, from_name, to_name, amount, note, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		settlement.ID,
		settlement.OwnerID,
		settlement.FromName,
		settlement.ToName,
		settlement.Amount.String(),
		settlement.Note,
		settlement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create settlement: %w", err)
	}
	return nil
}

// ListSettlements returns the owner's settlements, newest first.
func (s *SQLiteStore) ListSettlements(ctx context.Context, ownerID string) ([]*models.Settlement, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, owner_id, from_name, to_name, amount, note, created_at FROM settlements WHERE owner_id = ? ORDER BY created_at DESC, id",
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	defer rows.Close()

	var settlements []*models.Settlement
	for rows.Next() {
		st := &models.Settlement{}
		var amount string
		if err := rows.Scan(&st.ID, &st.OwnerID, &st.FromName, &st.ToName, &amount, &st.Note, &st.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}
		st.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("corrupt amount %q for settlement %s: %w", amount, st.ID, err)
		}
		settlements = append(settlements, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settlements: %w", err)
	}

	return settlements, nil
}

package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/billbuddy/backend/internal/models"
)

// AddFriend inserts a friend directory entry. Duplicate names per owner are
// rejected by the unique constraint.
func (s *SQLiteStore) AddFriend(ctx context.Context, friend *models.Friend) error {
	if friend.ID == "" {
		friend.ID = uuid.New().String()
	}
	if friend.CreatedAt == 0 {
		friend.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO friends (id, owner_id, name, email, created_at) VALUES (?, ?, ?, ?, ?)",
		friend.ID, friend.OwnerID, friend.Name, friend.Email, friend.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to add friend: %w", err)
	}
	return nil
}

// ListFriends returns the owner's friends ordered by name.
func (s *SQLiteStore) ListFriends(ctx context.Context, ownerID string) ([]*models.Friend, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, owner_id, name, email, created_at FROM friends WHERE owner_id = ? ORDER BY name",
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list friends: %w", err)
	}
	defer rows.Close()

	var friends []*models.Friend
	for rows.Next() {
		f := &models.Friend{}
		if err := rows.Scan(&f.ID, &f.OwnerID, &f.Name, &f.Email, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan friend: %w", err)
		}
		friends = append(friends, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate friends: %w", err)
	}

	return friends, nil
}

// RemoveFriend deletes a friend entry owned by ownerID.
func (s *SQLiteStore) RemoveFriend(ctx context.Context, ownerID, friendID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM friends WHERE id = ? AND owner_id = ?",
		friendID, ownerID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove friend: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("friend not found: %s", friendID)
	}
	return nil
}

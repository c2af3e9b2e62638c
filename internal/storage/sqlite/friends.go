package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mmynk/tabsplit/internal/models"
	"github.com/mmynk/tabsplit/internal/storage"
)

// AddFriendship inserts owner→friend and friend→owner. The reverse link is
// left untouched if it already exists, e.g. after owner removed friend once.
func (s *SQLiteStore) AddFriendship(ctx context.Context, owner, friend *models.User) error {
	now := time.Now().Unix()
	return s.inTx(ctx, nil, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO friends (owner_id, friend_id, friend_name, created_at) VALUES (?, ?, ?, ?)",
			owner.ID, friend.ID, friend.Name, now,
		)
		if isConstraint(err) {
			return fmt.Errorf("friend link %s -> %s: %w", owner.ID, friend.ID, storage.ErrDuplicate)
		}
		if err != nil {
			return fmt.Errorf("failed to insert friend link: %w", err)
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO friends (owner_id, friend_id, friend_name, created_at) VALUES (?, ?, ?, ?)
			 ON CONFLICT (owner_id, friend_id) DO NOTHING`,
			friend.ID, owner.ID, owner.Name, now,
		)
		if err != nil {
			return fmt.Errorf("failed to insert reverse friend link: %w", err)
		}
		return nil
	})
}

// RemoveFriendLink deletes a single directed link.
func (s *SQLiteStore) RemoveFriendLink(ctx context.Context, ownerID, friendID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM friends WHERE owner_id = ? AND friend_id = ?",
		ownerID, friendID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete friend link: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted friend link: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("friend link %s -> %s: %w", ownerID, friendID, storage.ErrNotFound)
	}
	return nil
}

// ListFriends retrieves a user's friend links.
func (s *SQLiteStore) ListFriends(ctx context.Context, ownerID string) ([]*models.FriendLink, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT owner_id, friend_id, friend_name, created_at
		 FROM friends WHERE owner_id = ? ORDER BY friend_name, friend_id`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list friends: %w", err)
	}
	defer rows.Close()

	var links []*models.FriendLink
	for rows.Next() {
		link := &models.FriendLink{}
		if err := rows.Scan(&link.OwnerID, &link.FriendID, &link.FriendName, &link.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan friend link: %w", err)
		}
		links = append(links, link)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate friends: %w", err)
	}

	return links, nil
}

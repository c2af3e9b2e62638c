package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/tabsplit/internal/models"
	"github.com/mmynk/tabsplit/internal/storage"
)

// CreateBill persists a new bill to the database.
func (s *SQLiteStore) CreateBill(ctx context.Context, bill *models.Bill) error {
	// Generate IDs if not set
	if bill.ID == "" {
		bill.ID = uuid.New().String()
	}
	if bill.CreatedAt == 0 {
		bill.CreatedAt = time.Now().Unix()
	}
	for i := range bill.Items {
		if bill.Items[i].ID == "" {
			bill.Items[i].ID = uuid.New().String()
		}
	}

	return s.inTx(ctx, nil, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO bills (id, payment_user_id, restaurant_name, total_amount, resolved, created_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			bill.ID, bill.PaymentUserID, bill.RestaurantName, bill.TotalAmount, bill.Resolved, bill.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert bill: %w", err)
		}

		for pos, userID := range bill.Participants {
			_, err = tx.ExecContext(ctx,
				"INSERT INTO bill_participants (bill_id, user_id, position) VALUES (?, ?, ?)",
				bill.ID, userID, pos,
			)
			if err != nil {
				return fmt.Errorf("failed to insert participant: %w", err)
			}
		}

		for pos, item := range bill.Items {
			_, err = tx.ExecContext(ctx,
				"INSERT INTO items (id, bill_id, position, name, price) VALUES (?, ?, ?, ?, ?)",
				item.ID, bill.ID, pos, item.Name, item.Price,
			)
			if err != nil {
				return fmt.Errorf("failed to insert item: %w", err)
			}
		}

		return writeClaims(ctx, tx, bill.Items)
	})
}

// GetBill retrieves a bill by ID, including all items, claims and participants.
func (s *SQLiteStore) GetBill(ctx context.Context, billID string) (*models.Bill, error) {
	return loadBill(ctx, s.db, billID)
}

// MutateBill applies fn to a freshly loaded bill and persists the result
// within a single transaction.
func (s *SQLiteStore) MutateBill(ctx context.Context, billID string, fn storage.MutateFunc) (*models.Bill, error) {
	var result *models.Bill
	err := s.inTx(ctx, nil, func(tx *sql.Tx) error {
		bill, err := loadBill(ctx, tx, billID)
		if err != nil {
			return err
		}

		changed, err := fn(bill)
		if err != nil {
			return err
		}
		result = bill
		if !changed {
			return nil
		}

		if _, err := tx.ExecContext(ctx,
			"UPDATE bills SET resolved = ? WHERE id = ?",
			bill.Resolved, bill.ID,
		); err != nil {
			return fmt.Errorf("failed to update bill: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			"DELETE FROM item_claims WHERE item_id IN (SELECT id FROM items WHERE bill_id = ?)",
			bill.ID,
		); err != nil {
			return fmt.Errorf("failed to clear item claims: %w", err)
		}
		return writeClaims(ctx, tx, bill.Items)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ListBillsByPayer retrieves the bills a user paid for.
func (s *SQLiteStore) ListBillsByPayer(ctx context.Context, userID string, resolved *bool) ([]*models.Bill, error) {
	var bills []*models.Bill
	err := s.inTx(ctx, nil, func(tx *sql.Tx) error {
		var err error
		bills, err = listBills(ctx, tx, outgoingQuery, userID, resolved)
		return err
	})
	return bills, err
}

// ListBillsByParticipant retrieves the bills a user takes part in without paying.
func (s *SQLiteStore) ListBillsByParticipant(ctx context.Context, userID string, resolved *bool) ([]*models.Bill, error) {
	var bills []*models.Bill
	err := s.inTx(ctx, nil, func(tx *sql.Tx) error {
		var err error
		bills, err = listBills(ctx, tx, incomingQuery, userID, resolved)
		return err
	})
	return bills, err
}

// BillsForUser reads outgoing and incoming bills in one transaction.
func (s *SQLiteStore) BillsForUser(ctx context.Context, userID string) (outgoing, incoming []*models.Bill, err error) {
	err = s.inTx(ctx, nil, func(tx *sql.Tx) error {
		var err error
		if outgoing, err = listBills(ctx, tx, outgoingQuery, userID, nil); err != nil {
			return err
		}
		incoming, err = listBills(ctx, tx, incomingQuery, userID, nil)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return outgoing, incoming, nil
}

const (
	outgoingQuery = "SELECT id FROM bills WHERE payment_user_id = ?"
	incomingQuery = `SELECT b.id FROM bills b
		JOIN bill_participants p ON p.bill_id = b.id
		WHERE p.user_id = ? AND b.payment_user_id <> p.user_id`
)

// listBills runs an ID query, then loads each bill. The ID rows are drained
// before loading so only one result set is open at a time.
func listBills(ctx context.Context, q querier, base, userID string, resolved *bool) ([]*models.Bill, error) {
	query := base
	args := []any{userID}
	if resolved != nil {
		if base == incomingQuery {
			query += " AND b.resolved = ?"
		} else {
			query += " AND resolved = ?"
		}
		args = append(args, *resolved)
	}
	if base == incomingQuery {
		query += " ORDER BY b.created_at DESC, b.id"
	} else {
		query += " ORDER BY created_at DESC, id"
	}

	ids, err := queryStrings(ctx, q, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}

	bills := make([]*models.Bill, 0, len(ids))
	for _, id := range ids {
		bill, err := loadBill(ctx, q, id)
		if err != nil {
			return nil, err
		}
		bills = append(bills, bill)
	}
	return bills, nil
}

// loadBill reads a bill with its participants, items and claims.
func loadBill(ctx context.Context, q querier, billID string) (*models.Bill, error) {
	bill := &models.Bill{}
	err := q.QueryRowContext(ctx,
		`SELECT id, payment_user_id, restaurant_name, total_amount, resolved, created_at
		 FROM bills WHERE id = ?`,
		billID,
	).Scan(&bill.ID, &bill.PaymentUserID, &bill.RestaurantName, &bill.TotalAmount, &bill.Resolved, &bill.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("bill not found: %s: %w", billID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}

	bill.Participants, err = queryStrings(ctx, q,
		"SELECT user_id FROM bill_participants WHERE bill_id = ? ORDER BY position",
		billID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}

	itemRows, err := q.QueryContext(ctx,
		"SELECT id, name, price FROM items WHERE bill_id = ? ORDER BY position",
		billID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get items: %w", err)
	}
	index := make(map[string]int)
	for itemRows.Next() {
		var item models.Item
		if err := itemRows.Scan(&item.ID, &item.Name, &item.Price); err != nil {
			itemRows.Close()
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		index[item.ID] = len(bill.Items)
		bill.Items = append(bill.Items, item)
	}
	itemRows.Close()
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}

	claimRows, err := q.QueryContext(ctx,
		`SELECT c.item_id, c.user_id FROM item_claims c
		 JOIN items i ON i.id = c.item_id
		 WHERE i.bill_id = ?
		 ORDER BY c.item_id, c.position`,
		billID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get item claims: %w", err)
	}
	defer claimRows.Close()

	for claimRows.Next() {
		var itemID, userID string
		if err := claimRows.Scan(&itemID, &userID); err != nil {
			return nil, fmt.Errorf("failed to scan claim: %w", err)
		}
		if i, ok := index[itemID]; ok {
			bill.Items[i].ClaimedBy = append(bill.Items[i].ClaimedBy, userID)
		}
	}
	if err := claimRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate claims: %w", err)
	}

	return bill, nil
}

// writeClaims inserts every item's claimants in order.
func writeClaims(ctx context.Context, tx *sql.Tx, items []models.Item) error {
	for _, item := range items {
		for pos, userID := range item.ClaimedBy {
			_, err := tx.ExecContext(ctx,
				"INSERT INTO item_claims (item_id, user_id, position) VALUES (?, ?, ?)",
				item.ID, userID, pos,
			)
			if err != nil {
				return fmt.Errorf("failed to insert item claim: %w", err)
			}
		}
	}
	return nil
}

// queryStrings drains a single-column result set.
func queryStrings(ctx context.Context, q querier, query string, args ...any) ([]string, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/tabsplit/internal/models"
)

var (
	// ErrNotFound is returned (wrapped) when a bill or friend link does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned (wrapped) when a unique row already exists.
	ErrDuplicate = errors.New("already exists")
)

// MutateFunc changes a bill loaded inside a transaction. It reports whether
// anything changed; returning an error aborts the transaction.
type MutateFunc func(bill *models.Bill) (changed bool, err error)

// BillStore persists bills with their items and claims.
type BillStore interface {
	// CreateBill persists a new bill with its items in one transaction.
	// bill.ID, bill.CreatedAt and every item ID are populated by the store.
	CreateBill(ctx context.Context, bill *models.Bill) error

	// GetBill retrieves a bill by its ID.
	// Returns an error wrapping ErrNotFound if the bill does not exist.
	GetBill(ctx context.Context, billID string) (*models.Bill, error)

	// MutateBill loads a bill, passes it to fn and saves its claims and
	// resolved flag, all in one transaction. Nothing is written when fn fails
	// or reports no change. Returns the bill as stored afterwards.
	MutateBill(ctx context.Context, billID string, fn MutateFunc) (*models.Bill, error)

	// ListBillsByPayer returns bills paid by userID, newest first.
	// A non-nil resolved filters on the resolved flag.
	ListBillsByPayer(ctx context.Context, userID string, resolved *bool) ([]*models.Bill, error)

	// ListBillsByParticipant returns bills listing userID as a participant
	// but paid by someone else, newest first.
	ListBillsByParticipant(ctx context.Context, userID string, resolved *bool) ([]*models.Bill, error)

	// BillsForUser returns every bill paid by userID (outgoing) and every
	// bill where userID participates without paying (incoming), pending and
	// resolved, read from one consistent snapshot.
	BillsForUser(ctx context.Context, userID string) (outgoing, incoming []*models.Bill, err error)
}

// UserStore persists user accounts.
type UserStore interface {
	// CreateUser inserts a user. Returns an error wrapping ErrDuplicate if
	// the email is taken.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail returns nil and no error if no user has that email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID returns nil and no error if the user does not exist.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// GetUsersByIDs returns the users that exist, keyed by ID.
	GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)
}

// FriendStore persists directed friend links.
type FriendStore interface {
	// AddFriendship creates owner→friend and, if missing, friend→owner.
	// Returns an error wrapping ErrDuplicate if owner→friend already exists.
	AddFriendship(ctx context.Context, owner, friend *models.User) error

	// RemoveFriendLink deletes owner→friend only. The reverse link stays.
	// Returns an error wrapping ErrNotFound if there was no such link.
	RemoveFriendLink(ctx context.Context, ownerID, friendID string) error

	// ListFriends returns ownerID's outgoing links ordered by friend name.
	ListFriends(ctx context.Context, ownerID string) ([]*models.FriendLink, error)
}

// Store combines every storage concern behind one backend.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	BillStore
	UserStore
	FriendStore

	// Close releases any resources held by the store.
	Close() error
}

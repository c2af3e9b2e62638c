package models

import "slices"

// Bill represents one restaurant charge paid by a single user and shared
// with a list of participants who claim the items they consumed.
type Bill struct {
	// ID is the unique identifier for the bill (UUID format).
	ID string

	// PaymentUserID is the user who paid. Fixed at creation.
	PaymentUserID string

	// RestaurantName is where the bill was incurred.
	RestaurantName string

	// TotalAmount is the amount actually charged. It may differ from the sum
	// of item prices (tax, tip); claims are split on item prices only.
	TotalAmount float64

	// Participants are the user IDs eligible to claim items. Fixed at creation.
	// The payer may or may not be listed.
	Participants []string

	// Items are the line items, in the order they were entered.
	Items []Item

	// Resolved marks the bill as settled, either because every item has been
	// claimed or because the payer said so.
	Resolved bool

	// CreatedAt is the Unix timestamp when the bill was created.
	CreatedAt int64
}

// Item represents a single line item on a bill.
type Item struct {
	// ID is assigned by the store when the bill is created.
	ID string

	Name string

	// Price is non-negative.
	Price float64

	// ClaimedBy is the set of user IDs who consumed this item, in claim order.
	// The price is split evenly among them. Empty means unclaimed.
	ClaimedBy []string
}

// IsPayer reports whether userID paid the bill.
func (b *Bill) IsPayer(userID string) bool {
	return b.PaymentUserID == userID
}

// IsParticipant reports whether userID is listed as a participant.
func (b *Bill) IsParticipant(userID string) bool {
	return slices.Contains(b.Participants, userID)
}

// CanView reports whether userID may read the bill: the payer or any participant.
func (b *Bill) CanView(userID string) bool {
	return b.IsPayer(userID) || b.IsParticipant(userID)
}

// ItemIndex returns the position of the item with the given ID, or -1.
func (b *Bill) ItemIndex(itemID string) int {
	for i := range b.Items {
		if b.Items[i].ID == itemID {
			return i
		}
	}
	return -1
}

// IsClaimedBy reports whether userID is among the item's claimants.
func (it *Item) IsClaimedBy(userID string) bool {
	return slices.Contains(it.ClaimedBy, userID)
}

package models

// FriendLink is one direction of a friendship: OwnerID lists FriendID as a friend.
// A friendship is stored as two independent links, one per direction.
type FriendLink struct {
	OwnerID string

	FriendID string

	// FriendName is the friend's display name when the link was created.
	// It is a snapshot and is not refreshed afterwards.
	FriendName string

	CreatedAt int64
}

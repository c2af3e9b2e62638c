// Package models defines the core domain models for tabsplit.
//
// # Models
//
//   - User: a registered account; the identity every operation runs as
//   - FriendLink: one directed edge of a friendship
//   - Bill: a restaurant charge paid by one user and shared with participants
//   - Item: a priced line item on a bill, claimed by the users who consumed it
//
// # Relationships
//
// Relationships are ID strings, never pointers. A friendship between A and B
// is two independent FriendLink rows (A→B and B→A). A bill references its
// payer and participants by user ID, and each item records its claimants by
// user ID.
//
// # Mutability
//
// A bill and its items are created together. Afterwards only Item.ClaimedBy
// and Bill.Resolved change; nothing is deleted.
package models

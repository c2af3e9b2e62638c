// Package claims holds the rules for mutating a stored bill: who may change
// which item claims, and when a bill becomes resolved.
//
// Functions here operate on an in-memory *models.Bill that the caller loaded
// inside a storage transaction. They validate the whole change before
// touching the bill, so a rejected change leaves it untouched.
package claims

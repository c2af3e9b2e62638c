package claims

import (
	"github.com/mmynk/tabsplit/internal/apperr"
	"github.com/mmynk/tabsplit/internal/models"
)

// State is the settlement state of a bill.
type State string

const (
	StatePending  State = "pending"
	StateResolved State = "resolved"
)

// StateOf returns the bill's state.
func StateOf(bill *models.Bill) State {
	if bill.Resolved {
		return StateResolved
	}
	return StatePending
}

// FullyClaimed reports whether every item has at least one claimant.
// A bill with no items is never fully claimed.
func FullyClaimed(bill *models.Bill) bool {
	if len(bill.Items) == 0 {
		return false
	}
	for _, item := range bill.Items {
		if len(item.ClaimedBy) == 0 {
			return false
		}
	}
	return true
}

// AutoResolve moves a pending, fully claimed bill to resolved.
// It reports whether the state changed. Resolved bills are left alone.
func AutoResolve(bill *models.Bill) bool {
	if bill.Resolved || !FullyClaimed(bill) {
		return false
	}
	bill.Resolved = true
	return true
}

// SetResolved applies an explicit resolved value from requesterID.
//
// Only the payer may set it. true resolves the bill even with unclaimed
// items. false is accepted only while the bill is still pending, where it
// changes nothing: there is no way back from resolved.
func SetResolved(bill *models.Bill, requesterID string, resolved bool) (bool, error) {
	if !bill.IsPayer(requesterID) {
		return false, apperr.Forbidden("only the payer can change whether a bill is resolved")
	}
	if resolved {
		if bill.Resolved {
			return false, nil
		}
		bill.Resolved = true
		return true, nil
	}
	if bill.Resolved {
		return false, apperr.Validation("resolved bills cannot be reopened")
	}
	return false, nil
}

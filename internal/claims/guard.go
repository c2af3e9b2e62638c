package claims

import (
	"slices"

	"github.com/mmynk/tabsplit/internal/apperr"
	"github.com/mmynk/tabsplit/internal/models"
)

const msgOwnClaims = "you can only update your own claims"

// ItemPatch is the client's view of one item in a whole-array update.
// Name and Price are optional; when set they must match the stored item.
type ItemPatch struct {
	ID        string
	Name      string
	Price     *float64
	ClaimedBy []string
}

// IsEligible reports whether userID may appear in an item's claimants:
// the payer or a participant.
func IsEligible(bill *models.Bill, userID string) bool {
	return bill.CanView(userID)
}

// ApplyItemsPatch validates and applies a whole-array claims update.
//
// A non-payer may only add or remove their own ID in each item's claimants;
// any other difference rejects the entire patch as forbidden. The payer's
// claimant lists are taken as given. Items not named in the patch keep their
// claims. Item IDs, names and prices never change.
//
// It reports whether any claim changed.
func ApplyItemsPatch(bill *models.Bill, requesterID string, patch []ItemPatch) (bool, error) {
	isPayer := bill.IsPayer(requesterID)
	next := make(map[int][]string, len(patch))

	for _, p := range patch {
		idx := bill.ItemIndex(p.ID)
		if idx < 0 {
			if !isPayer {
				return false, apperr.Forbidden(msgOwnClaims)
			}
			return false, apperr.Validation("unknown item: %s", p.ID)
		}
		if _, dup := next[idx]; dup {
			return false, apperr.Validation("item %s appears more than once", p.ID)
		}
		old := bill.Items[idx]

		if (p.Name != "" && p.Name != old.Name) || (p.Price != nil && *p.Price != old.Price) {
			if !isPayer {
				return false, apperr.Forbidden(msgOwnClaims)
			}
			return false, apperr.Validation("item %s: name and price cannot be changed", p.ID)
		}

		claimants := dedupe(p.ClaimedBy)
		if isPayer {
			next[idx] = claimants
		} else {
			added, removed := diff(old.ClaimedBy, claimants)
			if !onlySelf(added, requesterID) || !onlySelf(removed, requesterID) {
				return false, apperr.Forbidden(msgOwnClaims)
			}
			next[idx] = applyDelta(old.ClaimedBy, requesterID, len(added) > 0, len(removed) > 0)
		}

		for _, userID := range next[idx] {
			if !IsEligible(bill, userID) {
				return false, apperr.Validation("user %s is not a participant on this bill", userID)
			}
		}
	}

	changed := false
	for idx, claimants := range next {
		if !slices.Equal(bill.Items[idx].ClaimedBy, claimants) {
			bill.Items[idx].ClaimedBy = claimants
			changed = true
		}
	}
	return changed, nil
}

// ToggleClaim adds (claim=true) or removes userID from one item's claimants.
// It is idempotent and touches no other claim. It reports whether the item
// changed.
func ToggleClaim(bill *models.Bill, itemID, userID string, claim bool) (bool, error) {
	if !IsEligible(bill, userID) {
		return false, apperr.NotAuthorized("you are not a participant on this bill")
	}
	idx := bill.ItemIndex(itemID)
	if idx < 0 {
		return false, apperr.NotFound("item not found: %s", itemID)
	}

	item := &bill.Items[idx]
	has := item.IsClaimedBy(userID)
	switch {
	case claim && !has:
		item.ClaimedBy = append(item.ClaimedBy, userID)
	case !claim && has:
		item.ClaimedBy = slices.DeleteFunc(item.ClaimedBy, func(id string) bool { return id == userID })
	default:
		return false, nil
	}
	return true, nil
}

// diff returns the IDs present only in next (added) and only in prev (removed).
func diff(prev, next []string) (added, removed []string) {
	for _, id := range next {
		if !slices.Contains(prev, id) {
			added = append(added, id)
		}
	}
	for _, id := range prev {
		if !slices.Contains(next, id) {
			removed = append(removed, id)
		}
	}
	return added, removed
}

func onlySelf(ids []string, self string) bool {
	return len(ids) == 0 || (len(ids) == 1 && ids[0] == self)
}

// applyDelta rebuilds a claimant list from the stored one so that other
// users' claims keep their order regardless of how the client sent them.
func applyDelta(prev []string, self string, add, remove bool) []string {
	out := make([]string, 0, len(prev)+1)
	for _, id := range prev {
		if remove && id == self {
			continue
		}
		out = append(out, id)
	}
	if add {
		out = append(out, self)
	}
	return out
}

func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || slices.Contains(out, id) {
			continue
		}
		out = append(out, id)
	}
	return out
}

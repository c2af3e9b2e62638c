package calculator

import (
	"slices"

	"github.com/mmynk/tabsplit/internal/models"
)

// ItemShare returns what each claimant of an item owes for it:
// the price split evenly across every current claimant.
// An unclaimed item has no share.
func ItemShare(item models.Item) float64 {
	if len(item.ClaimedBy) == 0 {
		return 0
	}
	return item.Price / float64(len(item.ClaimedBy))
}

// UserShare computes how much of a bill's item prices the user consumed,
// regardless of who paid. The result is unrounded.
func UserShare(bill *models.Bill, userID string) float64 {
	var total float64
	for _, item := range bill.Items {
		if slices.Contains(item.ClaimedBy, userID) {
			total += ItemShare(item)
		}
	}
	return total
}

// ClaimedSubtotal is the sum of prices of items with at least one claimant.
func ClaimedSubtotal(bill *models.Bill) float64 {
	var total float64
	for _, item := range bill.Items {
		if len(item.ClaimedBy) > 0 {
			total += item.Price
		}
	}
	return total
}

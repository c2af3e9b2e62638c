package calculator

import (
	"slices"
	"sort"

	"github.com/mmynk/tabsplit/internal/models"
)

// Balances maps a counterparty user ID to a signed amount, from the point of
// view of one user: positive means the counterparty owes that user, negative
// means that user owes the counterparty. Zero means settled up.
type Balances map[string]float64

// CounterpartyBalance is one entry of Balances in a stable order.
type CounterpartyBalance struct {
	UserID string
	Amount float64
}

// CalculateBalances computes userID's balance with every counterparty.
//
// outgoing are the bills userID paid; incoming are bills where userID is a
// participant but not the payer. Both pending and resolved bills count.
//
// Algorithm:
//   - Outgoing: for each item, every claimant other than userID owes their
//     even share (price / number of claimants) to userID. An item claimed by
//     nobody, or by userID alone, contributes nothing.
//   - Incoming: for each item userID claimed, userID owes their even share
//     to the bill's payer.
//
// The computation is per user and per bill role, not a ledger: the result for
// A about B is not necessarily the negation of the result for B about A.
// No rounding is applied.
func CalculateBalances(userID string, outgoing, incoming []*models.Bill) Balances {
	balances := make(Balances)

	for _, bill := range outgoing {
		for _, item := range bill.Items {
			if len(item.ClaimedBy) == 0 {
				continue
			}
			share := ItemShare(item)
			for _, claimant := range item.ClaimedBy {
				if claimant == userID {
					continue
				}
				balances[claimant] += share
			}
		}
	}

	for _, bill := range incoming {
		// A bill the user paid is never incoming.
		if bill.PaymentUserID == userID {
			continue
		}
		for _, item := range bill.Items {
			if !slices.Contains(item.ClaimedBy, userID) {
				continue
			}
			balances[bill.PaymentUserID] -= ItemShare(item)
		}
	}

	return balances
}

// Sorted returns the balances ordered by counterparty ID.
func (b Balances) Sorted() []CounterpartyBalance {
	out := make([]CounterpartyBalance, 0, len(b))
	for userID, amount := range b {
		out = append(out, CounterpartyBalance{UserID: userID, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out
}

// Totals splits the balances into what others owe the user (owedToYou, >= 0)
// and what the user owes others (youOwe, >= 0).
func (b Balances) Totals() (owedToYou, youOwe float64) {
	for _, amount := range b {
		if amount > 0 {
			owedToYou += amount
		} else {
			youOwe -= amount
		}
	}
	return owedToYou, youOwe
}

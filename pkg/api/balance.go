package api

// Balance is the net amount between the requester and one counterparty.
// Positive means the counterparty owes the requester.
type Balance struct {
	UserID string  `json:"userId"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	// Display is Amount rounded half-even to cents.
	Display string `json:"display"`
}

type GetBalancesRequest struct{}

type GetBalancesResponse struct {
	Balances       []*Balance `json:"balances"`
	TotalOwedToYou float64    `json:"totalOwedToYou"`
	TotalYouOwe    float64    `json:"totalYouOwe"`
}

package api

// Item is one priced line of a bill and the users who claimed it.
type Item struct {
	ItemID    string   `json:"itemId"`
	Name      string   `json:"name"`
	Price     float64  `json:"price"`
	ClaimedBy []string `json:"claimedBy"`
}

// Bill is a bill as seen by the requesting user.
type Bill struct {
	ID             string   `json:"id"`
	PaymentUserID  string   `json:"paymentUserId"`
	RestaurantName string   `json:"restaurantName"`
	TotalAmount    float64  `json:"totalAmount"`
	Participants   []string `json:"participants"`
	Items          []*Item  `json:"items"`
	Resolved       bool     `json:"resolved"`
	// Status is "pending" or "resolved".
	Status string `json:"status"`
	// YourShare is the requester's unrounded share of the claimed items.
	YourShare       float64 `json:"yourShare"`
	ClaimedSubtotal float64 `json:"claimedSubtotal"`
	CreatedAt       int64   `json:"createdAt"`
}

// NewItem describes an item at bill creation.
type NewItem struct {
	Name      string   `json:"name" validate:"required"`
	Price     float64  `json:"price" validate:"gte=0"`
	ClaimedBy []string `json:"claimedBy,omitempty"`
}

type CreateBillRequest struct {
	RestaurantName string     `json:"restaurantName" validate:"required"`
	TotalAmount    float64    `json:"totalAmount" validate:"gte=0"`
	Items          []*NewItem `json:"items" validate:"required,min=1,dive,required"`
	Participants   []string   `json:"participants" validate:"dive,required"`
}

type CreateBillResponse struct {
	Bill *Bill `json:"bill"`
}

type GetBillRequest struct {
	BillID string `json:"billId"`
}

type GetBillResponse struct {
	Bill *Bill `json:"bill"`
}

// ItemPatch is one entry of a whole-array update. Name and Price, when sent,
// must equal the stored values.
type ItemPatch struct {
	ItemID    string   `json:"itemId"`
	Name      string   `json:"name,omitempty"`
	Price     *float64 `json:"price,omitempty"`
	ClaimedBy []string `json:"claimedBy"`
}

// UpdateBillRequest carries a claims patch, a resolved value, or both.
// A nil Items leaves claims alone; a nil Resolved leaves the state alone.
type UpdateBillRequest struct {
	BillID   string       `json:"billId"`
	Items    []*ItemPatch `json:"items,omitempty"`
	Resolved *bool        `json:"resolved,omitempty"`
}

type UpdateBillResponse struct {
	Bill *Bill `json:"bill"`
}

type ToggleClaimRequest struct {
	BillID string `json:"billId"`
	ItemID string `json:"itemId"`
	// Claim adds the requester when true and removes them when false.
	Claim bool `json:"claim"`
}

type ToggleClaimResponse struct {
	Bill *Bill `json:"bill"`
}

type SetResolvedRequest struct {
	BillID   string `json:"billId"`
	Resolved bool   `json:"resolved"`
}

type SetResolvedResponse struct {
	Bill *Bill `json:"bill"`
}

// ListBillsRequest filters by resolved state when Resolved is set.
type ListBillsRequest struct {
	Resolved *bool `json:"resolved,omitempty"`
}

type ListBillsResponse struct {
	Bills []*Bill `json:"bills"`
}

package service

import (
	"github.com/mmynk/tabsplit/internal/calculator"
	"github.com/mmynk/tabsplit/internal/claims"
	"github.com/mmynk/tabsplit/internal/models"
	"github.com/mmynk/tabsplit/pkg/api"
)

// billView renders a bill for viewerID.
func billView(bill *models.Bill, viewerID string) *api.Bill {
	items := make([]*api.Item, len(bill.Items))
	for i, item := range bill.Items {
		claimedBy := item.ClaimedBy
		if claimedBy == nil {
			claimedBy = []string{}
		}
		items[i] = &api.Item{
			ItemID:    item.ID,
			Name:      item.Name,
			Price:     item.Price,
			ClaimedBy: claimedBy,
		}
	}
	participants := bill.Participants
	if participants == nil {
		participants = []string{}
	}
	return &api.Bill{
		ID:              bill.ID,
		PaymentUserID:   bill.PaymentUserID,
		RestaurantName:  bill.RestaurantName,
		TotalAmount:     bill.TotalAmount,
		Participants:    participants,
		Items:           items,
		Resolved:        bill.Resolved,
		Status:          string(claims.StateOf(bill)),
		YourShare:       calculator.UserShare(bill, viewerID),
		ClaimedSubtotal: calculator.ClaimedSubtotal(bill),
		CreatedAt:       bill.CreatedAt,
	}
}

func billViews(bills []*models.Bill, viewerID string) []*api.Bill {
	out := make([]*api.Bill, len(bills))
	for i, bill := range bills {
		out[i] = billView(bill, viewerID)
	}
	return out
}

func userView(user *models.User) *api.User {
	return &api.User{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
	}
}

func friendView(link *models.FriendLink) *api.Friend {
	return &api.Friend{
		UserID:    link.FriendID,
		Name:      link.FriendName,
		CreatedAt: link.CreatedAt,
	}
}

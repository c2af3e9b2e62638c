package service

import (
	"context"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/tabsplit/internal/calculator"
	"github.com/mmynk/tabsplit/internal/storage"
	"github.com/mmynk/tabsplit/pkg/api"
	"github.com/mmynk/tabsplit/pkg/api/apiconnect"
)

// BalanceService implements the Connect BalanceService.
type BalanceService struct {
	apiconnect.UnimplementedBalanceServiceHandler
	store storage.Store
}

// NewBalanceService creates a new BalanceService with the given storage backend.
func NewBalanceService(store storage.Store) *BalanceService {
	return &BalanceService{store: store}
}

// GetBalances nets what the caller and each counterparty owe across every
// pending and resolved bill touching the caller.
func (s *BalanceService) GetBalances(ctx context.Context, _ *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	outgoing, incoming, err := s.store.BillsForUser(ctx, userID)
	if err != nil {
		return nil, toConnectError("GetBalances", err)
	}
	balances := calculator.CalculateBalances(userID, outgoing, incoming)

	names, err := s.counterpartyNames(ctx, userID, balances)
	if err != nil {
		return nil, toConnectError("GetBalances", err)
	}

	entries := make([]*api.Balance, 0, len(balances))
	for _, b := range balances.Sorted() {
		entries = append(entries, &api.Balance{
			UserID:  b.UserID,
			Name:    names[b.UserID],
			Amount:  b.Amount,
			Display: displayAmount(b.Amount),
		})
	}
	owedToYou, youOwe := balances.Totals()

	return connect.NewResponse(&api.GetBalancesResponse{
		Balances:       entries,
		TotalOwedToYou: owedToYou,
		TotalYouOwe:    youOwe,
	}), nil
}

// counterpartyNames prefers the caller's friend snapshot and falls back to
// the user record. Unknown IDs get no name.
func (s *BalanceService) counterpartyNames(ctx context.Context, userID string, balances calculator.Balances) (map[string]string, error) {
	names := make(map[string]string, len(balances))

	friends, err := s.store.ListFriends(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, f := range friends {
		if _, ok := balances[f.FriendID]; ok {
			names[f.FriendID] = f.FriendName
		}
	}

	var missing []string
	for id := range balances {
		if _, ok := names[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return names, nil
	}

	users, err := s.store.GetUsersByIDs(ctx, missing)
	if err != nil {
		return nil, err
	}
	for id, u := range users {
		names[id] = u.Name
	}
	return names, nil
}

// displayAmount rounds half-even to cents.
func displayAmount(amount float64) string {
	return decimal.NewFromFloat(amount).StringFixedBank(2)
}

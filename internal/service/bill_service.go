package service

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/tabsplit/internal/apperr"
	"github.com/mmynk/tabsplit/internal/claims"
	"github.com/mmynk/tabsplit/internal/metrics"
	"github.com/mmynk/tabsplit/internal/models"
	"github.com/mmynk/tabsplit/internal/storage"
	"github.com/mmynk/tabsplit/pkg/api"
	"github.com/mmynk/tabsplit/pkg/api/apiconnect"
)

// BillService implements the Connect BillService.
type BillService struct {
	apiconnect.UnimplementedBillServiceHandler
	store   storage.Store
	metrics *metrics.Collector
}

// NewBillService creates a new BillService with the given storage backend.
func NewBillService(store storage.Store, collector *metrics.Collector) *BillService {
	return &BillService{store: store, metrics: collector}
}

// CreateBill records a new bill paid by the caller.
func (s *BillService) CreateBill(ctx context.Context, req *connect.Request[api.CreateBillRequest]) (*connect.Response[api.CreateBillResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	bill, err := newBill(userID, req.Msg)
	if err != nil {
		return nil, toConnectError("CreateBill", err)
	}
	autoResolved := claims.AutoResolve(bill)

	if err := s.store.CreateBill(ctx, bill); err != nil {
		return nil, toConnectError("CreateBill", err)
	}

	s.metrics.BillsCreated.Inc()
	if autoResolved {
		s.metrics.BillsResolved.WithLabelValues("auto").Inc()
	}
	slog.Info("Bill created",
		"bill_id", bill.ID,
		"payer", userID,
		"items", len(bill.Items),
		"participants", len(bill.Participants),
		"resolved", bill.Resolved,
	)

	return connect.NewResponse(&api.CreateBillResponse{Bill: billView(bill, userID)}), nil
}

// newBill validates a create request and builds the bill to store. The payer
// is always the caller.
func newBill(payerID string, msg *api.CreateBillRequest) (*models.Bill, error) {
	if err := validateMessage(msg); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(msg.RestaurantName)
	if name == "" {
		return nil, apperr.Validation("restaurant name is required")
	}

	bill := &models.Bill{
		PaymentUserID:  payerID,
		RestaurantName: name,
		TotalAmount:    msg.TotalAmount,
		Participants:   uniqueIDs(msg.Participants),
		Items:          make([]models.Item, 0, len(msg.Items)),
	}

	for i, item := range msg.Items {
		itemName := strings.TrimSpace(item.Name)
		if itemName == "" {
			return nil, apperr.Validation("item %d: name is required", i+1)
		}
		claimedBy := uniqueIDs(item.ClaimedBy)
		for _, id := range claimedBy {
			if !claims.IsEligible(bill, id) {
				return nil, apperr.Validation("item %d: user %s is not a participant on this bill", i+1, id)
			}
		}
		bill.Items = append(bill.Items, models.Item{
			Name:      itemName,
			Price:     item.Price,
			ClaimedBy: claimedBy,
		})
	}

	return bill, nil
}

// GetBill returns a bill the caller pays for or participates in.
func (s *BillService) GetBill(ctx context.Context, req *connect.Request[api.GetBillRequest]) (*connect.Response[api.GetBillResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	bill, err := s.store.GetBill(ctx, req.Msg.BillID)
	if err != nil {
		return nil, toConnectError("GetBill", err)
	}
	if !bill.CanView(userID) {
		return nil, toConnectError("GetBill", apperr.NotAuthorized("you do not have access to this bill"))
	}

	return connect.NewResponse(&api.GetBillResponse{Bill: billView(bill, userID)}), nil
}

// UpdateBill applies a whole-array claims patch and/or an explicit resolved
// value. The patch is checked against the stored bill inside the same
// transaction that saves it, so nothing is applied unless all of it is valid.
func (s *BillService) UpdateBill(ctx context.Context, req *connect.Request[api.UpdateBillRequest]) (*connect.Response[api.UpdateBillResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	var patch []claims.ItemPatch
	if req.Msg.Items != nil {
		patch = make([]claims.ItemPatch, 0, len(req.Msg.Items))
		for _, item := range req.Msg.Items {
			if item == nil {
				return nil, toConnectError("UpdateBill", apperr.Validation("items must not contain null entries"))
			}
			patch = append(patch, claims.ItemPatch{
				ID:        item.ItemID,
				Name:      item.Name,
				Price:     item.Price,
				ClaimedBy: item.ClaimedBy,
			})
		}
	}

	var outcome mutation
	bill, err := s.store.MutateBill(ctx, req.Msg.BillID, func(bill *models.Bill) (bool, error) {
		if !bill.CanView(userID) {
			return false, apperr.NotAuthorized("you do not have access to this bill")
		}
		if patch != nil {
			changed, err := claims.ApplyItemsPatch(bill, userID, patch)
			if err != nil {
				return false, err
			}
			outcome.claimsChanged = changed
		}
		if req.Msg.Resolved != nil {
			changed, err := claims.SetResolved(bill, userID, *req.Msg.Resolved)
			if err != nil {
				return false, err
			}
			outcome.resolvedByPayer = changed
		}
		if outcome.claimsChanged {
			outcome.autoResolved = claims.AutoResolve(bill)
		}
		return outcome.changed(), nil
	})
	if err != nil {
		return nil, toConnectError("UpdateBill", err)
	}

	s.record(bill, userID, "patch", outcome)
	return connect.NewResponse(&api.UpdateBillResponse{Bill: billView(bill, userID)}), nil
}

// ToggleClaim adds or removes the caller on one item.
func (s *BillService) ToggleClaim(ctx context.Context, req *connect.Request[api.ToggleClaimRequest]) (*connect.Response[api.ToggleClaimResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	var outcome mutation
	bill, err := s.store.MutateBill(ctx, req.Msg.BillID, func(bill *models.Bill) (bool, error) {
		changed, err := claims.ToggleClaim(bill, req.Msg.ItemID, userID, req.Msg.Claim)
		if err != nil {
			return false, err
		}
		outcome.claimsChanged = changed
		if changed {
			outcome.autoResolved = claims.AutoResolve(bill)
		}
		return outcome.changed(), nil
	})
	if err != nil {
		return nil, toConnectError("ToggleClaim", err)
	}

	s.record(bill, userID, "toggle", outcome)
	return connect.NewResponse(&api.ToggleClaimResponse{Bill: billView(bill, userID)}), nil
}

// SetResolved lets the payer mark a bill resolved.
func (s *BillService) SetResolved(ctx context.Context, req *connect.Request[api.SetResolvedRequest]) (*connect.Response[api.SetResolvedResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	var outcome mutation
	bill, err := s.store.MutateBill(ctx, req.Msg.BillID, func(bill *models.Bill) (bool, error) {
		if !bill.CanView(userID) {
			return false, apperr.NotAuthorized("you do not have access to this bill")
		}
		changed, err := claims.SetResolved(bill, userID, req.Msg.Resolved)
		outcome.resolvedByPayer = changed
		return changed, err
	})
	if err != nil {
		return nil, toConnectError("SetResolved", err)
	}

	s.record(bill, userID, "", outcome)
	return connect.NewResponse(&api.SetResolvedResponse{Bill: billView(bill, userID)}), nil
}

// ListIncomingBills returns bills the caller takes part in but did not pay.
func (s *BillService) ListIncomingBills(ctx context.Context, req *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	bills, err := s.store.ListBillsByParticipant(ctx, userID, req.Msg.Resolved)
	if err != nil {
		return nil, toConnectError("ListIncomingBills", err)
	}
	return connect.NewResponse(&api.ListBillsResponse{Bills: billViews(bills, userID)}), nil
}

// ListOutgoingBills returns bills the caller paid.
func (s *BillService) ListOutgoingBills(ctx context.Context, req *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	bills, err := s.store.ListBillsByPayer(ctx, userID, req.Msg.Resolved)
	if err != nil {
		return nil, toConnectError("ListOutgoingBills", err)
	}
	return connect.NewResponse(&api.ListBillsResponse{Bills: billViews(bills, userID)}), nil
}

// mutation records what a MutateBill callback changed.
type mutation struct {
	claimsChanged   bool
	autoResolved    bool
	resolvedByPayer bool
}

func (m mutation) changed() bool {
	return m.claimsChanged || m.autoResolved || m.resolvedByPayer
}

// record logs and counts a committed mutation.
func (s *BillService) record(bill *models.Bill, userID, kind string, m mutation) {
	if !m.changed() {
		return
	}
	if m.claimsChanged {
		s.metrics.ClaimUpdates.WithLabelValues(kind).Inc()
	}
	switch {
	case m.resolvedByPayer:
		s.metrics.BillsResolved.WithLabelValues("payer").Inc()
	case m.autoResolved:
		s.metrics.BillsResolved.WithLabelValues("auto").Inc()
	}
	slog.Info("Bill updated",
		"bill_id", bill.ID,
		"user_id", userID,
		"claims_changed", m.claimsChanged,
		"resolved", bill.Resolved,
	)
}

// uniqueIDs drops blanks and repeats, keeping first occurrences in order.
func uniqueIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || slices.Contains(out, id) {
			continue
		}
		out = append(out, id)
	}
	return out
}

package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/tabsplit/pkg/api"
)

// BillServiceName is the fully-qualified name of the BillService service.
const BillServiceName = "tabsplit.v1.BillService"

// These constants are the fully-qualified names of the RPCs defined in BillService.
const (
	BillServiceCreateBillProcedure        = "/tabsplit.v1.BillService/CreateBill"
	BillServiceGetBillProcedure           = "/tabsplit.v1.BillService/GetBill"
	BillServiceUpdateBillProcedure        = "/tabsplit.v1.BillService/UpdateBill"
	BillServiceToggleClaimProcedure       = "/tabsplit.v1.BillService/ToggleClaim"
	BillServiceSetResolvedProcedure       = "/tabsplit.v1.BillService/SetResolved"
	BillServiceListIncomingBillsProcedure = "/tabsplit.v1.BillService/ListIncomingBills"
	BillServiceListOutgoingBillsProcedure = "/tabsplit.v1.BillService/ListOutgoingBills"
)

// BillServiceClient is a client for the tabsplit.v1.BillService service.
type BillServiceClient interface {
	CreateBill(context.Context, *connect.Request[api.CreateBillRequest]) (*connect.Response[api.CreateBillResponse], error)
	GetBill(context.Context, *connect.Request[api.GetBillRequest]) (*connect.Response[api.GetBillResponse], error)
	UpdateBill(context.Context, *connect.Request[api.UpdateBillRequest]) (*connect.Response[api.UpdateBillResponse], error)
	ToggleClaim(context.Context, *connect.Request[api.ToggleClaimRequest]) (*connect.Response[api.ToggleClaimResponse], error)
	SetResolved(context.Context, *connect.Request[api.SetResolvedRequest]) (*connect.Response[api.SetResolvedResponse], error)
	ListIncomingBills(context.Context, *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error)
	ListOutgoingBills(context.Context, *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error)
}

// NewBillServiceClient constructs a client for the tabsplit.v1.BillService service.
//
// The URL supplied here should be the base URL for the Connect server
// (for example, http://api.acme.com or https://acme.com/grpc).
func NewBillServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) BillServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &billServiceClient{
		createBill:        connect.NewClient[api.CreateBillRequest, api.CreateBillResponse](httpClient, baseURL+BillServiceCreateBillProcedure, opts...),
		getBill:           connect.NewClient[api.GetBillRequest, api.GetBillResponse](httpClient, baseURL+BillServiceGetBillProcedure, opts...),
		updateBill:        connect.NewClient[api.UpdateBillRequest, api.UpdateBillResponse](httpClient, baseURL+BillServiceUpdateBillProcedure, opts...),
		toggleClaim:       connect.NewClient[api.ToggleClaimRequest, api.ToggleClaimResponse](httpClient, baseURL+BillServiceToggleClaimProcedure, opts...),
		setResolved:       connect.NewClient[api.SetResolvedRequest, api.SetResolvedResponse](httpClient, baseURL+BillServiceSetResolvedProcedure, opts...),
		listIncomingBills: connect.NewClient[api.ListBillsRequest, api.ListBillsResponse](httpClient, baseURL+BillServiceListIncomingBillsProcedure, opts...),
		listOutgoingBills: connect.NewClient[api.ListBillsRequest, api.ListBillsResponse](httpClient, baseURL+BillServiceListOutgoingBillsProcedure, opts...),
	}
}

type billServiceClient struct {
	createBill        *connect.Client[api.CreateBillRequest, api.CreateBillResponse]
	getBill           *connect.Client[api.GetBillRequest, api.GetBillResponse]
	updateBill        *connect.Client[api.UpdateBillRequest, api.UpdateBillResponse]
	toggleClaim       *connect.Client[api.ToggleClaimRequest, api.ToggleClaimResponse]
	setResolved       *connect.Client[api.SetResolvedRequest, api.SetResolvedResponse]
	listIncomingBills *connect.Client[api.ListBillsRequest, api.ListBillsResponse]
	listOutgoingBills *connect.Client[api.ListBillsRequest, api.ListBillsResponse]
}

// CreateBill calls tabsplit.v1.BillService.CreateBill.
func (c *billServiceClient) CreateBill(ctx context.Context, req *connect.Request[api.CreateBillRequest]) (*connect.Response[api.CreateBillResponse], error) {
	return c.createBill.CallUnary(ctx, req)
}

// GetBill calls tabsplit.v1.BillService.GetBill.
func (c *billServiceClient) GetBill(ctx context.Context, req *connect.Request[api.GetBillRequest]) (*connect.Response[api.GetBillResponse], error) {
	return c.getBill.CallUnary(ctx, req)
}

// UpdateBill calls tabsplit.v1.BillService.UpdateBill.
func (c *billServiceClient) UpdateBill(ctx context.Context, req *connect.Request[api.UpdateBillRequest]) (*connect.Response[api.UpdateBillResponse], error) {
	return c.updateBill.CallUnary(ctx, req)
}

// ToggleClaim calls tabsplit.v1.BillService.ToggleClaim.
func (c *billServiceClient) ToggleClaim(ctx context.Context, req *connect.Request[api.ToggleClaimRequest]) (*connect.Response[api.ToggleClaimResponse], error) {
	return c.toggleClaim.CallUnary(ctx, req)
}

// SetResolved calls tabsplit.v1.BillService.SetResolved.
func (c *billServiceClient) SetResolved(ctx context.Context, req *connect.Request[api.SetResolvedRequest]) (*connect.Response[api.SetResolvedResponse], error) {
	return c.setResolved.CallUnary(ctx, req)
}

// ListIncomingBills calls tabsplit.v1.BillService.ListIncomingBills.
func (c *billServiceClient) ListIncomingBills(ctx context.Context, req *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error) {
	return c.listIncomingBills.CallUnary(ctx, req)
}

// ListOutgoingBills calls tabsplit.v1.BillService.ListOutgoingBills.
func (c *billServiceClient) ListOutgoingBills(ctx context.Context, req *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error) {
	return c.listOutgoingBills.CallUnary(ctx, req)
}

// BillServiceHandler is an implementation of the tabsplit.v1.BillService service.
type BillServiceHandler interface {
	CreateBill(context.Context, *connect.Request[api.CreateBillRequest]) (*connect.Response[api.CreateBillResponse], error)
	GetBill(context.Context, *connect.Request[api.GetBillRequest]) (*connect.Response[api.GetBillResponse], error)
	UpdateBill(context.Context, *connect.Request[api.UpdateBillRequest]) (*connect.Response[api.UpdateBillResponse], error)
	ToggleClaim(context.Context, *connect.Request[api.ToggleClaimRequest]) (*connect.Response[api.ToggleClaimResponse], error)
	SetResolved(context.Context, *connect.Request[api.SetResolvedRequest]) (*connect.Response[api.SetResolvedResponse], error)
	ListIncomingBills(context.Context, *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error)
	ListOutgoingBills(context.Context, *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error)
}

// NewBillServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewBillServiceHandler(svc BillServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	createBillHandler := connect.NewUnaryHandler(BillServiceCreateBillProcedure, svc.CreateBill, opts...)
	getBillHandler := connect.NewUnaryHandler(BillServiceGetBillProcedure, svc.GetBill, opts...)
	updateBillHandler := connect.NewUnaryHandler(BillServiceUpdateBillProcedure, svc.UpdateBill, opts...)
	toggleClaimHandler := connect.NewUnaryHandler(BillServiceToggleClaimProcedure, svc.ToggleClaim, opts...)
	setResolvedHandler := connect.NewUnaryHandler(BillServiceSetResolvedProcedure, svc.SetResolved, opts...)
	listIncomingBillsHandler := connect.NewUnaryHandler(BillServiceListIncomingBillsProcedure, svc.ListIncomingBills, opts...)
	listOutgoingBillsHandler := connect.NewUnaryHandler(BillServiceListOutgoingBillsProcedure, svc.ListOutgoingBills, opts...)
	return "/tabsplit.v1.BillService/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case BillServiceCreateBillProcedure:
			createBillHandler.ServeHTTP(w, r)
		case BillServiceGetBillProcedure:
			getBillHandler.ServeHTTP(w, r)
		case BillServiceUpdateBillProcedure:
			updateBillHandler.ServeHTTP(w, r)
		case BillServiceToggleClaimProcedure:
			toggleClaimHandler.ServeHTTP(w, r)
		case BillServiceSetResolvedProcedure:
			setResolvedHandler.ServeHTTP(w, r)
		case BillServiceListIncomingBillsProcedure:
			listIncomingBillsHandler.ServeHTTP(w, r)
		case BillServiceListOutgoingBillsProcedure:
			listOutgoingBillsHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedBillServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedBillServiceHandler struct{}

func (UnimplementedBillServiceHandler) CreateBill(context.Context, *connect.Request[api.CreateBillRequest]) (*connect.Response[api.CreateBillResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tabsplit.v1.BillService.CreateBill is not implemented"))
}

func (UnimplementedBillServiceHandler) GetBill(context.Context, *connect.Request[api.GetBillRequest]) (*connect.Response[api.GetBillResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tabsplit.v1.BillService.GetBill is not implemented"))
}

func (UnimplementedBillServiceHandler) UpdateBill(context.Context, *connect.Request[api.UpdateBillRequest]) (*connect.Response[api.UpdateBillResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tabsplit.v1.BillService.UpdateBill is not implemented"))
}

func (UnimplementedBillServiceHandler) ToggleClaim(context.Context, *connect.Request[api.ToggleClaimRequest]) (*connect.Response[api.ToggleClaimResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tabsplit.v1.BillService.ToggleClaim is not implemented"))
}

func (UnimplementedBillServiceHandler) SetResolved(context.Context, *connect.Request[api.SetResolvedRequest]) (*connect.Response[api.SetResolvedResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tabsplit.v1.BillService.SetResolved is not implemented"))
}

func (UnimplementedBillServiceHandler) ListIncomingBills(context.Context, *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tabsplit.v1.BillService.ListIncomingBills is not implemented"))
}

func (UnimplementedBillServiceHandler) ListOutgoingBills(context.Context, *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tabsplit.v1.BillService.ListOutgoingBills is not implemented"))
}

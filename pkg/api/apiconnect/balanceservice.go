package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/tabsplit/pkg/api"
)

// BalanceServiceName is the fully-qualified name of the BalanceService service.
const BalanceServiceName = "tabsplit.v1.BalanceService"

// These constants are the fully-qualified names of the RPCs defined in BalanceService.
const (
	BalanceServiceGetBalancesProcedure = "/tabsplit.v1.BalanceService/GetBalances"
)

// BalanceServiceClient is a client for the tabsplit.v1.BalanceService service.
type BalanceServiceClient interface {
	GetBalances(context.Context, *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error)
}

// NewBalanceServiceClient constructs a client for the tabsplit.v1.BalanceService service.
//
// The URL supplied here should be the base URL for the Connect server
// (for example, http://api.acme.com or https://acme.com/grpc).
func NewBalanceServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) BalanceServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &balanceServiceClient{
		getBalances: connect.NewClient[api.GetBalancesRequest, api.GetBalancesResponse](httpClient, baseURL+BalanceServiceGetBalancesProcedure, opts...),
	}
}

type balanceServiceClient struct {
	getBalances *connect.Client[api.GetBalancesRequest, api.GetBalancesResponse]
}

// GetBalances calls tabsplit.v1.BalanceService.GetBalances.
func (c *balanceServiceClient) GetBalances(ctx context.Context, req *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error) {
	return c.getBalances.CallUnary(ctx, req)
}

// BalanceServiceHandler is an implementation of the tabsplit.v1.BalanceService service.
type BalanceServiceHandler interface {
	GetBalances(context.Context, *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error)
}

// NewBalanceServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewBalanceServiceHandler(svc BalanceServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	getBalancesHandler := connect.NewUnaryHandler(BalanceServiceGetBalancesProcedure, svc.GetBalances, opts...)
	return "/tabsplit.v1.BalanceService/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case BalanceServiceGetBalancesProcedure:
			getBalancesHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedBalanceServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedBalanceServiceHandler struct{}

func (UnimplementedBalanceServiceHandler) GetBalances(context.Context, *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tabsplit.v1.BalanceService.GetBalances is not implemented"))
}

package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/tabsplit/pkg/api"
)

// FriendServiceName is the fully-qualified name of the FriendService service.
const FriendServiceName = "tabsplit.v1.FriendService"

// These constants are the fully-qualified names of the RPCs defined in FriendService.
const (
	FriendServiceAddFriendProcedure    = "/tabsplit.v1.FriendService/AddFriend"
	FriendServiceRemoveFriendProcedure = "/tabsplit.v1.FriendService/RemoveFriend"
	FriendServiceListFriendsProcedure  = "/tabsplit.v1.FriendService/ListFriends"
)

// FriendServiceClient is a client for the tabsplit.v1.FriendService service.
type FriendServiceClient interface {
	AddFriend(context.Context, *connect.Request[api.AddFriendRequest]) (*connect.Response[api.AddFriendResponse], error)
	RemoveFriend(context.Context, *connect.Request[api.RemoveFriendRequest]) (*connect.Response[api.RemoveFriendResponse], error)
	ListFriends(context.Context, *connect.Request[api.ListFriendsRequest]) (*connect.Response[api.ListFriendsResponse], error)
}

// NewFriendServiceClient constructs a client for the tabsplit.v1.FriendService service.
//
// The URL supplied here should be the base URL for the Connect server
// (for example, http://api.acme.com or https://acme.com/grpc).
func NewFriendServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) FriendServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &friendServiceClient{
		addFriend:    connect.NewClient[api.AddFriendRequest, api.AddFriendResponse](httpClient, baseURL+FriendServiceAddFriendProcedure, opts...),
		removeFriend: connect.NewClient[api.RemoveFriendRequest, api.RemoveFriendResponse](httpClient, baseURL+FriendServiceRemoveFriendProcedure, opts...),
		listFriends:  connect.NewClient[api.ListFriendsRequest, api.ListFriendsResponse](httpClient, baseURL+FriendServiceListFriendsProcedure, opts...),
	}
}

type friendServiceClient struct {
	addFriend    *connect.Client[api.AddFriendRequest, api.AddFriendResponse]
	removeFriend *connect.Client[api.RemoveFriendRequest, api.RemoveFriendResponse]
	listFriends  *connect.Client[api.ListFriendsRequest, api.ListFriendsResponse]
}

// AddFriend calls tabsplit.v1.FriendService.AddFriend.
func (c *friendServiceClient) AddFriend(ctx context.Context, req *connect.Request[api.AddFriendRequest]) (*connect.Response[api.AddFriendResponse], error) {
	return c.addFriend.CallUnary(ctx, req)
}

// RemoveFriend calls tabsplit.v1.FriendService.RemoveFriend.
func (c *friendServiceClient) RemoveFriend(ctx context.Context, req *connect.Request[api.RemoveFriendRequest]) (*connect.Response[api.RemoveFriendResponse], error) {
	return c.removeFriend.CallUnary(ctx, req)
}

// ListFriends calls tabsplit.v1.FriendService.ListFriends.
func (c *friendServiceClient) ListFriends(ctx context.Context, req *connect.Request[api.ListFriendsRequest]) (*connect.Response[api.ListFriendsResponse], error) {
	return c.listFriends.CallUnary(ctx, req)
}

// FriendServiceHandler is an implementation of the tabsplit.v1.FriendService service.
type FriendServiceHandler interface {
	AddFriend(context.Context, *connect.Request[api.AddFriendRequest]) (*connect.Response[api.AddFriendResponse], error)
	RemoveFriend(context.Context, *connect.Request[api.RemoveFriendRequest]) (*connect.Response[api.RemoveFriendResponse], error)
	ListFriends(context.Context, *connect.Request[api.ListFriendsRequest]) (*connect.Response[api.ListFriendsResponse], error)
}

// NewFriendServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewFriendServiceHandler(svc FriendServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	addFriendHandler := connect.NewUnaryHandler(FriendServiceAddFriendProcedure, svc.AddFriend, opts...)
	removeFriendHandler := connect.NewUnaryHandler(FriendServiceRemoveFriendProcedure, svc.RemoveFriend, opts...)
	listFriendsHandler := connect.NewUnaryHandler(FriendServiceListFriendsProcedure, svc.ListFriends, opts...)
	return "/tabsplit.v1.FriendService/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case FriendServiceAddFriendProcedure:
			addFriendHandler.ServeHTTP(w, r)
		case FriendServiceRemoveFriendProcedure:
			removeFriendHandler.ServeHTTP(w, r)
		case FriendServiceListFriendsProcedure:
			listFriendsHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedFriendServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedFriendServiceHandler struct{}

func (UnimplementedFriendServiceHandler) AddFriend(context.Context, *connect.Request[api.AddFriendRequest]) (*connect.Response[api.AddFriendResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tabsplit.v1.FriendService.AddFriend is not implemented"))
}

func (UnimplementedFriendServiceHandler) RemoveFriend(context.Context, *connect.Request[api.RemoveFriendRequest]) (*connect.Response[api.RemoveFriendResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tabsplit.v1.FriendService.RemoveFriend is not implemented"))
}

func (UnimplementedFriendServiceHandler) ListFriends(context.Context, *connect.Request[api.ListFriendsRequest]) (*connect.Response[api.ListFriendsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tabsplit.v1.FriendService.ListFriends is not implemented"))
}

package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/tabsplit/internal/apperr"
	"github.com/mmynk/tabsplit/internal/metrics"
	"github.com/mmynk/tabsplit/internal/middleware"
	"github.com/mmynk/tabsplit/internal/models"
	"github.com/mmynk/tabsplit/internal/storage/sqlite"
	"github.com/mmynk/tabsplit/pkg/api/apiconnect"
)

// testUserHeader names the caller in tests in place of a bearer token.
const testUserHeader = "X-Test-User"

// testAuthInterceptor returns a Connect interceptor that sets the user ID
// from the test header in the context.
func testAuthInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if userID := req.Header().Get(testUserHeader); userID != "" {
				ctx = middleware.WithUser(ctx, userID, "")
			}
			return next(ctx, req)
		}
	}
}

// asUser returns a client interceptor that sends the test header.
func asUser(userID string) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			req.Header().Set(testUserHeader, userID)
			return next(ctx, req)
		}
	}
}

type testEnv struct {
	store   *sqlite.SQLiteStore
	metrics *metrics.Collector
	server  *httptest.Server
}

// setupTestServer serves bill, balance and friend services over an
// httptest server backed by a temp SQLite database.
func setupTestServer(t *testing.T) *testEnv {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	collector := metrics.New()

	opts := connect.WithInterceptors(testAuthInterceptor())
	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewBillServiceHandler(NewBillService(store, collector), opts))
	mux.Handle(apiconnect.NewBalanceServiceHandler(NewBalanceService(store), opts))
	mux.Handle(apiconnect.NewFriendServiceHandler(NewFriendService(store, collector), opts))

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return &testEnv{store: store, metrics: collector, server: server}
}

func (e *testEnv) bills(userID string) apiconnect.BillServiceClient {
	return apiconnect.NewBillServiceClient(http.DefaultClient, e.server.URL, connect.WithInterceptors(asUser(userID)))
}

func (e *testEnv) balances(userID string) apiconnect.BalanceServiceClient {
	return apiconnect.NewBalanceServiceClient(http.DefaultClient, e.server.URL, connect.WithInterceptors(asUser(userID)))
}

func (e *testEnv) friends(userID string) apiconnect.FriendServiceClient {
	return apiconnect.NewFriendServiceClient(http.DefaultClient, e.server.URL, connect.WithInterceptors(asUser(userID)))
}

// createUser stores a user directly and returns it.
func (e *testEnv) createUser(t *testing.T, name, email string) *models.User {
	t.Helper()
	user := models.NewUser(email, name, "not-a-real-hash")
	if err := e.store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	return user
}

// assertErrorKind checks the Connect code and the Error-Kind metadata.
func assertErrorKind(t *testing.T, err error, code connect.Code, kind apperr.Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", kind)
	}
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		t.Fatalf("expected connect error, got %T: %v", err, err)
	}
	if connectErr.Code() != code {
		t.Errorf("expected code %v, got %v (%s)", code, connectErr.Code(), connectErr.Message())
	}
	if got := connectErr.Meta().Get(ErrorKindHeader); got != string(kind) {
		t.Errorf("expected error kind %q, got %q", kind, got)
	}
}

func ptr[T any](v T) *T { return &v }

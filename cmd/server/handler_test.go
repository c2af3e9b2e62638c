package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/tabsplit/internal/config"
	"github.com/mmynk/tabsplit/internal/metrics"
	"github.com/mmynk/tabsplit/internal/storage/sqlite"
	"github.com/mmynk/tabsplit/pkg/api"
	"github.com/mmynk/tabsplit/pkg/api/apiconnect"
)

// bearer returns a client interceptor that sends the given token.
func bearer(token string) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			req.Header().Set("Authorization", "Bearer "+token)
			return next(ctx, req)
		}
	}
}

func TestHandler(t *testing.T) {
	store, err := sqlite.New(filepath.Join(t.TempDir(), "server.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer store.Close()

	server := httptest.NewServer(newHandler(config.Default(), store, metrics.New()))
	defer server.Close()
	ctx := context.Background()

	t.Run("healthz", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/healthz")
		if err != nil {
			t.Fatalf("GET /healthz failed: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("expected 200, got %d", resp.StatusCode)
		}
	})

	accounts := apiconnect.NewAccountServiceClient(http.DefaultClient, server.URL)
	register := func(email, name string) *api.RegisterResponse {
		resp, err := accounts.Register(ctx, connect.NewRequest(&api.RegisterRequest{
			Email: email, Name: name, Password: "correct-horse-battery",
		}))
		if err != nil {
			t.Fatalf("Register %s failed: %v", name, err)
		}
		return resp.Msg
	}
	payer := register("payer@example.com", "Payer")
	alice := register("alice@example.com", "Alice")

	payerBills := apiconnect.NewBillServiceClient(http.DefaultClient, server.URL, connect.WithInterceptors(bearer(payer.Token)))
	aliceBills := apiconnect.NewBillServiceClient(http.DefaultClient, server.URL, connect.WithInterceptors(bearer(alice.Token)))

	if _, err := apiconnect.NewBillServiceClient(http.DefaultClient, server.URL).ListOutgoingBills(ctx,
		connect.NewRequest(&api.ListBillsRequest{})); connect.CodeOf(err) != connect.CodeUnauthenticated {
		t.Fatalf("expected unauthenticated without a token, got %v", err)
	}

	created, err := payerBills.CreateBill(ctx, connect.NewRequest(&api.CreateBillRequest{
		RestaurantName: "Diner",
		TotalAmount:    30,
		Items:          []*api.NewItem{{Name: "Burger", Price: 30}},
		Participants:   []string{alice.User.ID},
	}))
	if err != nil {
		t.Fatalf("CreateBill failed: %v", err)
	}
	bill := created.Msg.Bill

	toggled, err := aliceBills.ToggleClaim(ctx, connect.NewRequest(&api.ToggleClaimRequest{
		BillID: bill.ID, ItemID: bill.Items[0].ItemID, Claim: true,
	}))
	if err != nil {
		t.Fatalf("ToggleClaim failed: %v", err)
	}
	if !toggled.Msg.Bill.Resolved {
		t.Error("expected the bill to resolve")
	}

	balances := apiconnect.NewBalanceServiceClient(http.DefaultClient, server.URL, connect.WithInterceptors(bearer(payer.Token)))
	got, err := balances.GetBalances(ctx, connect.NewRequest(&api.GetBalancesRequest{}))
	if err != nil {
		t.Fatalf("GetBalances failed: %v", err)
	}
	if len(got.Msg.Balances) != 1 || got.Msg.Balances[0].Name != "Alice" || got.Msg.Balances[0].Display != "30.00" {
		t.Errorf("unexpected balances: %+v", got.Msg.Balances)
	}

	t.Run("metrics", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/metrics")
		if err != nil {
			t.Fatalf("GET /metrics failed: %v", err)
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		for _, want := range []string{
			"tabsplit_bills_created_total 1",
			`tabsplit_bills_resolved_total{trigger="auto"} 1`,
			`tabsplit_claim_updates_total{kind="toggle"} 1`,
		} {
			if !strings.Contains(string(body), want) {
				t.Errorf("metrics output missing %q", want)
			}
		}
	})
}

func TestLoadConfigFlags(t *testing.T) {
	for _, key := range []string{"ADDR", "DB_PATH", "JWT_SECRET", "TOKEN_TTL", "LOG_LEVEL", "LOG_FORMAT", "CORS_ORIGIN"} {
		t.Setenv(key, "")
	}
	t.Setenv("DB_PATH", "/tmp/from-env.db")

	cmd := newRootCommand()
	if err := cmd.ParseFlags([]string{"--addr", ":9999", "--log-level", "debug"}); err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}
	opts := &options{addr: ":9999", logLevel: "debug"}

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.Server.Addr != ":9999" || cfg.Log.Level != "debug" {
		t.Errorf("expected flags to win, got %+v", cfg)
	}
	if cfg.Database.Path != "/tmp/from-env.db" {
		t.Errorf("expected env db path, got %q", cfg.Database.Path)
	}
}

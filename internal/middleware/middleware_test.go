package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/tabsplit/internal/auth"
	"github.com/mmynk/tabsplit/internal/metrics"
	"github.com/mmynk/tabsplit/internal/models"
	"github.com/mmynk/tabsplit/pkg/api"
	"github.com/mmynk/tabsplit/pkg/api/apiconnect"
	"github.com/mmynk/tabsplit/pkg/logging"
)

// whoAmI echoes the identity the interceptors put on the context.
type whoAmI struct {
	apiconnect.UnimplementedAccountServiceHandler
}

func (whoAmI) GetCurrentUser(ctx context.Context, _ *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.GetCurrentUserResponse], error) {
	return connect.NewResponse(&api.GetCurrentUserResponse{
		User: &api.User{ID: GetUserID(ctx), Email: GetEmail(ctx)},
	}), nil
}

func (whoAmI) Login(ctx context.Context, _ *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	return connect.NewResponse(&api.LoginResponse{User: &api.User{ID: GetUserID(ctx)}}), nil
}

func TestRequireAuth(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	collector := metrics.New()

	path, handler := apiconnect.NewAccountServiceHandler(whoAmI{}, connect.WithInterceptors(
		MetricsInterceptor(collector),
		RequireAuth(jwtManager, apiconnect.AccountServiceLoginProcedure),
		LoggingInterceptor(),
	))
	mux := http.NewServeMux()
	mux.Handle(path, handler)
	server := httptest.NewServer(mux)
	defer server.Close()

	client := apiconnect.NewAccountServiceClient(http.DefaultClient, server.URL)
	ctx := context.Background()

	token, err := jwtManager.Generate(&models.User{ID: "alice-id", Email: "alice@example.com"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	tests := []struct {
		name     string
		header   string
		wantCode connect.Code
		wantUser string
	}{
		{"valid token", "Bearer " + token, 0, "alice-id"},
		{"missing header", "", connect.CodeUnauthenticated, ""},
		{"wrong scheme", "Token " + token, connect.CodeUnauthenticated, ""},
		{"garbage token", "Bearer not-a-jwt", connect.CodeUnauthenticated, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := connect.NewRequest(&api.GetCurrentUserRequest{})
			if tt.header != "" {
				req.Header().Set("Authorization", tt.header)
			}
			resp, err := client.GetCurrentUser(ctx, req)
			if tt.wantCode != 0 {
				if connect.CodeOf(err) != tt.wantCode {
					t.Fatalf("expected %v, got %v", tt.wantCode, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("GetCurrentUser failed: %v", err)
			}
			if resp.Msg.User.ID != tt.wantUser || resp.Msg.User.Email != "alice@example.com" {
				t.Errorf("unexpected user: %+v", resp.Msg.User)
			}
		})
	}

	t.Run("public procedure skips auth", func(t *testing.T) {
		resp, err := client.Login(ctx, connect.NewRequest(&api.LoginRequest{}))
		if err != nil {
			t.Fatalf("Login failed: %v", err)
		}
		if resp.Msg.User.ID != "" {
			t.Errorf("expected no identity on a public call, got %q", resp.Msg.User.ID)
		}
	})

	rec := httptest.NewRecorder()
	collector.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if !strings.Contains(rec.Body.String(), `code="unauthenticated"`) {
		t.Error("expected unauthenticated calls to be counted")
	}
}

func TestLoggingInterceptor(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(logging.New(&buf, slog.LevelDebug, "json"))
	t.Cleanup(func() { slog.SetDefault(prev) })

	notFound := connect.NewError(connect.CodeNotFound, errors.New("bill not found"))
	notFound.Meta().Set("Error-Kind", "not_found")

	tests := []struct {
		name      string
		err       error
		wantLevel string
		wantMsg   string
		wantAttrs []string
	}{
		{"success", nil, "DEBUG", "RPC ok", nil},
		{"client error", notFound, "WARN", "RPC client error", []string{`"code":"not_found"`, `"kind":"not_found"`}},
		{"internal error", connect.NewError(connect.CodeInternal, errors.New("internal error")), "ERROR", "RPC failed", nil},
		{"plain error", errors.New("boom"), "ERROR", "RPC failed", []string{`"error":"boom"`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			next := func(context.Context, connect.AnyRequest) (connect.AnyResponse, error) {
				if tt.err != nil {
					return nil, tt.err
				}
				return connect.NewResponse(&api.GetCurrentUserResponse{}), nil
			}
			ctx := WithUser(context.Background(), "alice-id", "alice@example.com")

			_, err := LoggingInterceptor()(next)(ctx, connect.NewRequest(&api.GetCurrentUserRequest{}))
			if !errors.Is(err, tt.err) {
				t.Fatalf("expected error %v to pass through, got %v", tt.err, err)
			}

			var entry map[string]any
			if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
				t.Fatalf("expected one JSON log line, got %q: %v", buf.String(), err)
			}
			if entry["level"] != tt.wantLevel || entry["msg"] != tt.wantMsg {
				t.Errorf("expected %s %q, got %v %v", tt.wantLevel, tt.wantMsg, entry["level"], entry["msg"])
			}
			if entry["user_id"] != "alice-id" || entry["email"] != "alice@example.com" {
				t.Errorf("expected caller identity in log, got %v", entry)
			}
			for _, attr := range tt.wantAttrs {
				if !strings.Contains(buf.String(), attr) {
					t.Errorf("expected %s in %q", attr, buf.String())
				}
			}
		})
	}
}

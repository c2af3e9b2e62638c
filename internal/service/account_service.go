package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/tabsplit/internal/apperr"
	"github.com/mmynk/tabsplit/internal/auth"
	"github.com/mmynk/tabsplit/internal/storage"
	"github.com/mmynk/tabsplit/pkg/api"
	"github.com/mmynk/tabsplit/pkg/api/apiconnect"
)

// AccountService implements the Connect AccountService.
type AccountService struct {
	apiconnect.UnimplementedAccountServiceHandler
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	users         storage.UserStore
}

// NewAccountService creates a new account service.
func NewAccountService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, users storage.UserStore) *AccountService {
	return &AccountService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		users:         users,
	}
}

// Register creates a new user account and signs them in.
func (s *AccountService) Register(ctx context.Context, req *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error) {
	slog.Info("Register request", "email", req.Msg.Email)

	req.Msg.Email = strings.TrimSpace(req.Msg.Email)
	req.Msg.Name = strings.TrimSpace(req.Msg.Name)
	if err := validateMessage(req.Msg); err != nil {
		return nil, toConnectError("Register", err)
	}

	user, err := s.authenticator.Register(ctx, req.Msg.Email, req.Msg.Name, req.Msg.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrEmailExists):
			err = apperr.Conflict("%v", err)
		case errors.Is(err, auth.ErrWeakPassword), errors.Is(err, auth.ErrInvalidName):
			err = apperr.Validation("%v", err)
		}
		return nil, toConnectError("Register", err)
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		return nil, toConnectError("Register", err)
	}

	slog.Info("User registered", "user_id", user.ID)
	return connect.NewResponse(&api.RegisterResponse{User: userView(user), Token: token}), nil
}

// Login authenticates a user and returns a bearer token.
func (s *AccountService) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	if req.Msg.Email == "" || req.Msg.Password == "" {
		return nil, toConnectError("Login", apperr.Validation("email and password are required"))
	}

	user, err := s.authenticator.Authenticate(ctx, req.Msg.Email, req.Msg.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			slog.Warn("Login failed", "email", req.Msg.Email)
			return nil, toConnectError("Login", apperr.Unauthenticated("%v", err))
		}
		return nil, toConnectError("Login", err)
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		return nil, toConnectError("Login", err)
	}

	slog.Info("User logged in", "user_id", user.ID)
	return connect.NewResponse(&api.LoginResponse{User: userView(user), Token: token}), nil
}

// GetCurrentUser returns the authenticated user's account.
func (s *AccountService) GetCurrentUser(ctx context.Context, _ *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.GetCurrentUserResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, toConnectError("GetCurrentUser", err)
	}
	if user == nil {
		return nil, toConnectError("GetCurrentUser", apperr.NotFound("user not found: %s", userID))
	}

	return connect.NewResponse(&api.GetCurrentUserResponse{User: userView(user)}), nil
}

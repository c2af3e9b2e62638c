package auth

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/tabsplit/internal/models"
	"github.com/mmynk/tabsplit/internal/storage/sqlite"
)

func TestPasswordAuthenticator(t *testing.T) {
	store, err := sqlite.New(filepath.Join(t.TempDir(), "auth.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer store.Close()

	a := NewPasswordAuthenticator(store).WithCost(bcrypt.MinCost)
	ctx := context.Background()

	user, err := a.Register(ctx, "  Alice@Example.com ", "Alice", "correct-horse")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Errorf("expected normalized email, got %q", user.Email)
	}
	if user.PasswordHash == "correct-horse" {
		t.Error("password stored in plain text")
	}

	tests := []struct {
		name    string
		run     func() error
		wantErr error
	}{
		{"short password", func() error {
			_, err := a.Register(ctx, "bob@example.com", "Bob", "short")
			return err
		}, ErrWeakPassword},
		{"blank-padded short name", func() error {
			_, err := a.Register(ctx, "carol@example.com", "  c  ", "long-enough-pw")
			return err
		}, ErrInvalidName},
		{"name too long after trim", func() error {
			_, err := a.Register(ctx, "carol@example.com", " "+strings.Repeat("c", MaxNameLength+1)+" ", "long-enough-pw")
			return err
		}, ErrInvalidName},
		{"duplicate email", func() error {
			_, err := a.Register(ctx, "alice@example.com", "Alice Two", "another-password")
			return err
		}, ErrEmailExists},
		{"wrong password", func() error {
			_, err := a.Authenticate(ctx, "alice@example.com", "wrong-password")
			return err
		}, ErrInvalidCredentials},
		{"unknown email", func() error {
			_, err := a.Authenticate(ctx, "nobody@example.com", "correct-horse")
			return err
		}, ErrInvalidCredentials},
		{"login", func() error {
			_, err := a.Authenticate(ctx, "ALICE@example.com", "correct-horse")
			return err
		}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.run(); !errors.Is(err, tt.wantErr) {
				t.Errorf("got error %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// failingUserStorage fails every lookup, as a broken database would.
type failingUserStorage struct{ err error }

func (s failingUserStorage) CreateUser(context.Context, *models.User) error { return s.err }

func (s failingUserStorage) GetUserByEmail(context.Context, string) (*models.User, error) {
	return nil, s.err
}

func TestAuthenticate_StorageFailure(t *testing.T) {
	dbErr := errors.New("database is locked")
	a := NewPasswordAuthenticator(failingUserStorage{err: dbErr}).WithCost(bcrypt.MinCost)

	_, err := a.Authenticate(context.Background(), "alice@example.com", "correct-horse")
	if err == nil {
		t.Fatal("expected an error")
	}
	if errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("storage failure reported as bad credentials: %v", err)
	}
	if !errors.Is(err, dbErr) {
		t.Errorf("expected wrapped storage error, got %v", err)
	}
}

func TestRegister_TrimsName(t *testing.T) {
	store, err := sqlite.New(filepath.Join(t.TempDir(), "auth.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer store.Close()

	a := NewPasswordAuthenticator(store).WithCost(bcrypt.MinCost)
	user, err := a.Register(context.Background(), "dave@example.com", "  Dave  ", "long-enough-pw")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.Name != "Dave" {
		t.Errorf("expected trimmed name, got %q", user.Name)
	}
}

func TestJWTManager(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	user := &models.User{ID: "user-1", Email: "a@example.com"}

	token, err := m.Generate(user)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.UserID != "user-1" || claims.Email != "a@example.com" {
		t.Errorf("unexpected claims: %+v", claims)
	}

	other := NewJWTManager("other-secret", time.Hour)
	if _, err := other.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for wrong secret, got %v", err)
	}

	expired := NewJWTManager("test-secret", -time.Minute)
	stale, err := expired.Generate(user)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if _, err := m.Validate(stale); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

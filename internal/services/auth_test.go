package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gestion-rh/apiserver/internal/logger"
	"github.com/gestion-rh/apiserver/internal/store"
	"github.com/gestion-rh/apiserver/types"
	"golang.org/x/crypto/bcrypt"
)

// stubUserRepo serves users from memory, keyed by email.
type stubUserRepo struct {
	users map[string]types.User
}

func (r *stubUserRepo) List(ctx context.Context) ([]types.User, error) {
	users := make([]types.User, 0, len(r.users))
	for _, user := range r.users {
		users = append(users, user)
	}
	return users, nil
}

func (r *stubUserRepo) GetByID(ctx context.Context, id int) (types.User, error) {
	for _, user := range r.users {
		if user.ID == id {
			return user, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (r *stubUserRepo) GetByEmail(ctx context.Context, email string) (types.User, error) {
	if user, ok := r.users[email]; ok {
		return user, nil
	}
	return types.User{}, store.ErrNotFound
}

func (r *stubUserRepo) Create(ctx context.Context, user types.User) (types.User, error) {
	user.ID = len(r.users) + 1
	r.users[user.Email] = user
	return user, nil
}

func newAuthServiceForTest(t *testing.T, users ...types.User) *AuthService {
	t.Helper()

	repo := &stubUserRepo{users: make(map[string]types.User)}
	for _, user := range users {
		repo.users[user.Email] = user
	}
	return NewAuthService(repo, "test-secret", 30*time.Minute, 24*time.Hour, logger.New("critical"), nil)
}

func testUser(t *testing.T, role string) types.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("Secret123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt.GenerateFromPassword: %v", err)
	}
	return types.User{
		ID:        7,
		LastName:  "Dupont",
		FirstName: "Marie",
		Email:     "marie.dupont@example.com",
		Role:      role,
		Password:  string(hashed),
	}
}

func TestAuthenticateCarriesClaims(t *testing.T) {
	service := newAuthServiceForTest(t, testUser(t, "manager"))

	result, err := service.Authenticate(context.Background(), "marie.dupont@example.com", "Secret123")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if result.Role != types.RoleManager {
		t.Fatalf("expected normalized role %s, got %s", types.RoleManager, result.Role)
	}

	claims, err := service.ParseToken(result.AccessToken)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != 7 || claims.Email != "marie.dupont@example.com" || claims.Role != types.RoleManager {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.TokenType != tokenTypeAccess {
		t.Fatalf("expected access token type, got %s", claims.TokenType)
	}

	refreshClaims, err := service.ParseToken(result.RefreshToken)
	if err != nil {
		t.Fatalf("ParseToken refresh: %v", err)
	}
	if refreshClaims.TokenType != tokenTypeRefresh {
		t.Fatalf("expected refresh token type, got %s", refreshClaims.TokenType)
	}
}

func TestAuthenticateMissingCredentials(t *testing.T) {
	service := newAuthServiceForTest(t)

	if _, err := service.Authenticate(context.Background(), "", "Secret123"); !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
	if _, err := service.Authenticate(context.Background(), "marie.dupont@example.com", ""); !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
}

func TestAuthenticateUnknownEmailAndWrongPasswordShareError(t *testing.T) {
	service := newAuthServiceForTest(t, testUser(t, "ADMIN"))

	_, unknownErr := service.Authenticate(context.Background(), "absent@example.com", "Secret123")
	_, wrongErr := service.Authenticate(context.Background(), "marie.dupont@example.com", "bad-password")

	if !errors.Is(unknownErr, ErrInvalidCredentials) || !errors.Is(wrongErr, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for both, got %v and %v", unknownErr, wrongErr)
	}
}

func TestAuthenticateRejectsRoleOutsideEnumeration(t *testing.T) {
	service := newAuthServiceForTest(t, testUser(t, "DIRECTEUR"))

	if _, err := service.Authenticate(context.Background(), "marie.dupont@example.com", "Secret123"); !errors.Is(err, ErrRoleNotAllowed) {
		t.Fatalf("expected ErrRoleNotAllowed, got %v", err)
	}
}

func TestRefreshRejectsTamperedToken(t *testing.T) {
	service := newAuthServiceForTest(t, testUser(t, "ADMIN"))

	result, err := service.Authenticate(context.Background(), "marie.dupont@example.com", "Secret123")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}

	tampered := result.RefreshToken[:len(result.RefreshToken)-2] + "xx"
	if _, err := service.Refresh(context.Background(), tampered); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

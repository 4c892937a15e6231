package services

import (
	"context"
	"errors"
	"strings"

	"github.com/gestion-rh/apiserver/internal/store"
	"github.com/gestion-rh/apiserver/types"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	List(ctx context.Context) ([]types.User, error)
	GetByID(ctx context.Context, id int) (types.User, error)
	GetByEmail(ctx context.Context, email string) (types.User, error)
	Create(ctx context.Context, user types.User) (types.User, error)
}

// UserService encapsulates user-account use-cases.
type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) List(ctx context.Context) ([]types.User, error) {
	return s.repo.List(ctx)
}

// Create validates the account fields, hashes the password and persists the
// user. Validation failures are returned as a *types.ValidationError and
// nothing is written.
func (s *UserService) Create(ctx context.Context, user types.User) (types.User, error) {
	user.LastName = strings.TrimSpace(user.LastName)
	user.FirstName = strings.TrimSpace(user.FirstName)
	user.Email = strings.TrimSpace(user.Email)

	validation := types.NewValidationError()
	if user.LastName == "" {
		validation.Add("nom", types.MsgFieldRequired)
	}
	if user.FirstName == "" {
		validation.Add("prenom", types.MsgFieldRequired)
	}
	if user.Email == "" {
		validation.Add("email", types.MsgFieldRequired)
	}
	if user.Password == "" {
		validation.Add("mot_de_passe", types.MsgFieldRequired)
	}

	if user.Role == "" {
		user.Role = types.DefaultRole
	} else {
		user.Role = types.NormalizeRole(user.Role)
		if !types.IsValidRole(user.Role) {
			validation.Add("role", types.MsgInvalidRole)
		}
	}

	if user.Email != "" {
		if _, err := s.repo.GetByEmail(ctx, user.Email); err == nil {
			validation.Add("email", types.MsgValueExists)
		} else if !errors.Is(err, store.ErrNotFound) {
			return types.User{}, err
		}
	}

	if validation.HasErrors() {
		return types.User{}, validation
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return types.User{}, err
	}
	user.Password = string(hashed)

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		// Backstop for a concurrent insert racing the uniqueness pre-check.
		var duplicate *store.DuplicateError
		if errors.As(err, &duplicate) {
			validation.Add(duplicate.Field, types.MsgValueExists)
			return types.User{}, validation
		}
		return types.User{}, err
	}
	return created, nil
}

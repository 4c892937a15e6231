package services

import (
	"context"
	"errors"
	"strings"

	"github.com/gestion-rh/apiserver/internal/store"
	"github.com/gestion-rh/apiserver/types"
)

// EmployeeRepository defines persistence operations for employee profiles.
type EmployeeRepository interface {
	List(ctx context.Context) ([]types.Employee, error)
	GetByID(ctx context.Context, id int) (types.Employee, error)
	GetByBarcode(ctx context.Context, barcode string) (types.Employee, error)
	Create(ctx context.Context, employee types.Employee) (types.Employee, error)
	SetPhoto(ctx context.Context, id int, key string) error
}

// EmployeeService encapsulates employee use-cases.
type EmployeeService struct {
	repo  EmployeeRepository
	users UserRepository
	teams TeamRepository
}

func NewEmployeeService(repo EmployeeRepository, users UserRepository, teams TeamRepository) *EmployeeService {
	return &EmployeeService{repo: repo, users: users, teams: teams}
}

func (s *EmployeeService) List(ctx context.Context) ([]types.Employee, error) {
	return s.repo.List(ctx)
}

func (s *EmployeeService) GetByID(ctx context.Context, id int) (types.Employee, error) {
	return s.repo.GetByID(ctx, id)
}

// Create validates the profile fields and persists the employee. The barcode
// must be unique and the referenced user (and team, when given) must exist.
// Validation failures are returned as a *types.ValidationError and nothing is
// written.
func (s *EmployeeService) Create(ctx context.Context, employee types.Employee) (types.Employee, error) {
	employee.Barcode = strings.TrimSpace(employee.Barcode)

	validation := types.NewValidationError()
	if employee.Barcode == "" {
		validation.Add("code_barre", types.MsgFieldRequired)
	}
	if employee.UserID == 0 {
		validation.Add("id_utilisateur", types.MsgFieldRequired)
	}
	if employee.StartDate.IsZero() {
		validation.Add("date_debut", types.MsgFieldRequired)
	}

	if employee.UserID != 0 {
		if _, err := s.users.GetByID(ctx, employee.UserID); err != nil {
			if !errors.Is(err, store.ErrNotFound) {
				return types.Employee{}, err
			}
			validation.Add("id_utilisateur", types.MsgUnknownRelation)
		}
	}

	if employee.TeamID != nil {
		if _, err := s.teams.GetByID(ctx, *employee.TeamID); err != nil {
			if !errors.Is(err, store.ErrNotFound) {
				return types.Employee{}, err
			}
			validation.Add("id_equipe", types.MsgUnknownRelation)
		}
	}

	if employee.Barcode != "" {
		if _, err := s.repo.GetByBarcode(ctx, employee.Barcode); err == nil {
			validation.Add("code_barre", types.MsgValueExists)
		} else if !errors.Is(err, store.ErrNotFound) {
			return types.Employee{}, err
		}
	}

	if validation.HasErrors() {
		return types.Employee{}, validation
	}

	created, err := s.repo.Create(ctx, employee)
	if err != nil {
		// Backstop for a concurrent insert racing the uniqueness pre-check.
		var duplicate *store.DuplicateError
		if errors.As(err, &duplicate) {
			validation.Add(duplicate.Field, types.MsgValueExists)
			return types.Employee{}, validation
		}
		return types.Employee{}, err
	}
	return created, nil
}

// SetPhoto records the storage key of the employee photo.
func (s *EmployeeService) SetPhoto(ctx context.Context, id int, key string) error {
	return s.repo.SetPhoto(ctx, id, key)
}

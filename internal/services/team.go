package services

import (
	"context"
	"strings"

	"github.com/gestion-rh/apiserver/types"
)

// TeamRepository defines persistence operations for teams.
type TeamRepository interface {
	List(ctx context.Context) ([]types.Team, error)
	GetByID(ctx context.Context, id int) (types.Team, error)
	Create(ctx context.Context, team types.Team) (types.Team, error)
}

// TeamService encapsulates team use-cases.
type TeamService struct {
	repo TeamRepository
}

func NewTeamService(repo TeamRepository) *TeamService {
	return &TeamService{repo: repo}
}

func (s *TeamService) List(ctx context.Context) ([]types.Team, error) {
	return s.repo.List(ctx)
}

func (s *TeamService) Create(ctx context.Context, team types.Team) (types.Team, error) {
	team.Name = strings.TrimSpace(team.Name)

	validation := types.NewValidationError()
	if team.Name == "" {
		validation.Add("nom", types.MsgFieldRequired)
	}
	if validation.HasErrors() {
		return types.Team{}, validation
	}

	return s.repo.Create(ctx, team)
}

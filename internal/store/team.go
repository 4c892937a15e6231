package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gestion-rh/apiserver/types"
)

// TeamRepository handles persistence for teams.
type TeamRepository struct {
	db *sql.DB
}

func NewTeamRepository(db *sql.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) List(ctx context.Context) ([]types.Team, error) {
	const query = `
		SELECT id_equipe, nom, description, date_creation
		FROM "EQUIPE"
		ORDER BY id_equipe`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]types.Team, 0)
	for rows.Next() {
		var team types.Team
		if err := rows.Scan(
			&team.ID,
			&team.Name,
			&team.Description,
			&team.CreatedAt,
		); err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, id int) (types.Team, error) {
	const query = `
		SELECT id_equipe, nom, description, date_creation
		FROM "EQUIPE"
		WHERE id_equipe = $1`
	var team types.Team
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&team.ID,
		&team.Name,
		&team.Description,
		&team.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Team{}, ErrNotFound
		}
		return types.Team{}, err
	}
	return team, nil
}

func (r *TeamRepository) Create(ctx context.Context, team types.Team) (types.Team, error) {
	team.CreatedAt = time.Now()

	const query = `
		INSERT INTO "EQUIPE" (nom, description, date_creation)
		VALUES ($1, $2, $3)
		RETURNING id_equipe`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		team.Name,
		team.Description,
		team.CreatedAt,
	).Scan(&team.ID); err != nil {
		return types.Team{}, err
	}
	return team, nil
}

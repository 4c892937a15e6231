package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gestion-rh/apiserver/types"
)

// UserRepository handles persistence for user accounts.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) List(ctx context.Context) ([]types.User, error) {
	const query = `
		SELECT id_utilisateur, nom, prenom, email, date_creation, role, mot_de_passe
		FROM "UTILISATEUR"
		ORDER BY id_utilisateur`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]types.User, 0)
	for rows.Next() {
		var user types.User
		if err := rows.Scan(
			&user.ID,
			&user.LastName,
			&user.FirstName,
			&user.Email,
			&user.CreatedAt,
			&user.Role,
			&user.Password,
		); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int) (types.User, error) {
	const query = `
		SELECT id_utilisateur, nom, prenom, email, date_creation, role, mot_de_passe
		FROM "UTILISATEUR"
		WHERE id_utilisateur = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (types.User, error) {
	const query = `
		SELECT id_utilisateur, nom, prenom, email, date_creation, role, mot_de_passe
		FROM "UTILISATEUR"
		WHERE email = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *UserRepository) Create(ctx context.Context, user types.User) (types.User, error) {
	user.CreatedAt = time.Now()

	const query = `
		INSERT INTO "UTILISATEUR" (nom, prenom, email, date_creation, role, mot_de_passe)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id_utilisateur`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		user.LastName,
		user.FirstName,
		user.Email,
		user.CreatedAt,
		user.Role,
		user.Password,
	).Scan(&user.ID); err != nil {
		return types.User{}, duplicateField(err)
	}
	return user, nil
}

func (r *UserRepository) scanOne(row *sql.Row) (types.User, error) {
	var user types.User
	err := row.Scan(
		&user.ID,
		&user.LastName,
		&user.FirstName,
		&user.Email,
		&user.CreatedAt,
		&user.Role,
		&user.Password,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.User{}, ErrNotFound
		}
		return types.User{}, err
	}
	return user, nil
}

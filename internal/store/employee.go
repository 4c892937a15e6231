package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gestion-rh/apiserver/types"
)

// EmployeeRepository handles persistence for employee profiles.
type EmployeeRepository struct {
	db *sql.DB
}

func NewEmployeeRepository(db *sql.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) List(ctx context.Context) ([]types.Employee, error) {
	const query = `
		SELECT id_employe, id_equipe, photo, date_naissance, adresse, telephone,
			date_debut, date_fin, code_barre, id_utilisateur
		FROM "EMPLOYE"
		ORDER BY id_employe`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]types.Employee, 0)
	for rows.Next() {
		var employee types.Employee
		if err := rows.Scan(
			&employee.ID,
			&employee.TeamID,
			&employee.Photo,
			&employee.BirthDate,
			&employee.Address,
			&employee.Phone,
			&employee.StartDate,
			&employee.EndDate,
			&employee.Barcode,
			&employee.UserID,
		); err != nil {
			return nil, err
		}
		employees = append(employees, employee)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return employees, nil
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id int) (types.Employee, error) {
	const query = `
		SELECT id_employe, id_equipe, photo, date_naissance, adresse, telephone,
			date_debut, date_fin, code_barre, id_utilisateur
		FROM "EMPLOYE"
		WHERE id_employe = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *EmployeeRepository) GetByBarcode(ctx context.Context, barcode string) (types.Employee, error) {
	const query = `
		SELECT id_employe, id_equipe, photo, date_naissance, adresse, telephone,
			date_debut, date_fin, code_barre, id_utilisateur
		FROM "EMPLOYE"
		WHERE code_barre = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, barcode))
}

func (r *EmployeeRepository) Create(ctx context.Context, employee types.Employee) (types.Employee, error) {
	const query = `
		INSERT INTO "EMPLOYE" (id_equipe, photo, date_naissance, adresse, telephone,
			date_debut, date_fin, code_barre, id_utilisateur)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id_employe`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		employee.TeamID,
		employee.Photo,
		employee.BirthDate,
		employee.Address,
		employee.Phone,
		employee.StartDate,
		employee.EndDate,
		employee.Barcode,
		employee.UserID,
	).Scan(&employee.ID); err != nil {
		return types.Employee{}, duplicateField(err)
	}
	return employee, nil
}

// SetPhoto records the object-storage key of the employee photo.
func (r *EmployeeRepository) SetPhoto(ctx context.Context, id int, key string) error {
	const query = `UPDATE "EMPLOYE" SET photo = $1 WHERE id_employe = $2`
	result, err := r.db.ExecContext(ctx, query, key, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *EmployeeRepository) scanOne(row *sql.Row) (types.Employee, error) {
	var employee types.Employee
	err := row.Scan(
		&employee.ID,
		&employee.TeamID,
		&employee.Photo,
		&employee.BirthDate,
		&employee.Address,
		&employee.Phone,
		&employee.StartDate,
		&employee.EndDate,
		&employee.Barcode,
		&employee.UserID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Employee{}, ErrNotFound
		}
		return types.Employee{}, err
	}
	return employee, nil
}

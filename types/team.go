package types

import "time"

// Team is a record in the EQUIPE table. Employees reference zero or one team.
type Team struct {
	ID          int       `json:"id_equipe" db:"id_equipe"`
	Name        string    `json:"nom" db:"nom"`
	Description *string   `json:"description" db:"description"`
	CreatedAt   time.Time `json:"date_creation" db:"date_creation"`
}

package types

// Employee is a profile record in the EMPLOYE table, owned by a user account.
// The barcode uniquely identifies an employee across the system (badge scanning).
type Employee struct {
	ID int `json:"id_employe" db:"id_employe"`

	// TeamID references EQUIPE; nulled when the team is deleted.
	TeamID *int `json:"id_equipe" db:"id_equipe"`

	// Photo holds the object-storage key of the employee photo, if any.
	Photo *string `json:"photo" db:"photo"`

	BirthDate *Date   `json:"date_naissance" db:"date_naissance"`
	Address   *string `json:"adresse" db:"adresse"`
	Phone     *string `json:"telephone" db:"telephone"`

	StartDate Date  `json:"date_debut" db:"date_debut"`
	EndDate   *Date `json:"date_fin" db:"date_fin"`

	// Barcode is mandatory and unique (indexed).
	Barcode string `json:"code_barre" db:"code_barre"`

	// UserID references UTILISATEUR; the employee is cascade-deleted with its user.
	UserID int `json:"id_utilisateur" db:"id_utilisateur"`
}

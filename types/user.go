package types

import (
	"strings"
	"time"
)

// Roles a user account may hold. Stored upper-cased in the role column.
const (
	RoleAdmin       = "ADMIN"
	RoleEmployee    = "EMPLOYE"
	RoleManager     = "MANAGER"
	RoleResponsible = "RESPONSABLE"
)

// DefaultRole is assigned when a user is created without an explicit role.
const DefaultRole = RoleEmployee

// ValidRoles lists every role the login flow accepts.
var ValidRoles = []string{RoleAdmin, RoleEmployee, RoleManager, RoleResponsible}

// NormalizeRole upper-cases a role for comparison against ValidRoles.
func NormalizeRole(role string) string {
	return strings.ToUpper(strings.TrimSpace(role))
}

// IsValidRole reports whether the (normalized) role belongs to the fixed enumeration.
func IsValidRole(role string) bool {
	normalized := NormalizeRole(role)
	for _, valid := range ValidRoles {
		if normalized == valid {
			return true
		}
	}
	return false
}

// User is an identity record in the UTILISATEUR table.
// Wire and column names keep the legacy French schema.
type User struct {
	// ID is the unique identifier of the user.
	ID int `json:"id_utilisateur" db:"id_utilisateur"`

	// LastName and FirstName form the user's civil name.
	LastName  string `json:"nom" db:"nom"`
	FirstName string `json:"prenom" db:"prenom"`

	// Email is unique across all users and serves as the login identifier.
	Email string `json:"email" db:"email"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"date_creation" db:"date_creation"`

	// Role is the user's authorization tier, one of ValidRoles.
	Role string `json:"role" db:"role"`

	// Password stores the bcrypt hash of the user's password.
	// This field is never exposed in API responses.
	Password string `json:"-" db:"mot_de_passe"`
}

package store

import (
	"errors"

	"github.com/lib/pq"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// uniqueViolation is the Postgres error code for unique-constraint violations.
const uniqueViolation = "23505"

// constraint name → wire field name, for the unique constraints declared in
// the migrations.
var uniqueConstraintFields = map[string]string{
	"utilisateur_email_key":  "email",
	"employe_code_barre_key": "code_barre",
}

// DuplicateError reports a unique-constraint violation on a single field.
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string {
	return "duplicate value for field " + e.Field
}

// duplicateField maps a driver error to a DuplicateError when it is a unique
// violation on a known constraint. Other errors pass through unchanged.
func duplicateField(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
		if field, ok := uniqueConstraintFields[pqErr.Constraint]; ok {
			return &DuplicateError{Field: field}
		}
	}
	return err
}

package types

import (
	"fmt"
	"sort"
	"strings"
)

// Messages reused across entity validation, in the application's wording.
const (
	MsgFieldRequired   = "Ce champ est obligatoire."
	MsgValueExists     = "Cette valeur existe déjà."
	MsgUnknownRelation = "Cette référence n'existe pas."
	MsgInvalidRole     = "Rôle invalide."
)

// ValidationError carries per-field failure messages, keyed by wire field name.
// It is returned instead of persisting anything.
type ValidationError struct {
	Fields map[string][]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

// Add appends a message for the named field.
func (e *ValidationError) Add(field, message string) {
	e.Fields[field] = append(e.Fields[field], message)
}

// HasErrors reports whether any field failed.
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fmt.Sprintf("validation failed: %s", strings.Join(fields, ", "))
}

package services

import (
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
)

// DuplicateFieldError reports a write rejected because email or phone would
// collide with another record in the same collection
type DuplicateFieldError struct {
	Entity string
	Field  string
}

func (e *DuplicateFieldError) Error() string {
	return fmt.Sprintf("A %s with this %s already exists", e.Entity, e.Field)
}

// CategoryExistsError reports a category write rejected because the
// (name, type) pair already exists
type CategoryExistsError struct {
	Type string
}

func (e *CategoryExistsError) Error() string {
	return fmt.Sprintf("This %s already exists", e.Type)
}

// ValidationError aggregates per-field messages for a malformed entity
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, ", ")
}

// ErrInvalidCredentials is returned for a failed login
var ErrInvalidCredentials = errors.New("invalid email or password")

// IsNotFound reports whether err means the targeted document does not exist
func IsNotFound(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

// mapDuplicateKey translates a store-level unique index violation into the
// DuplicateFieldError taxonomy. The application-level pre-check usually fires
// first; this is the backstop for two writers racing past the check.
func mapDuplicateKey(err error, entity string) error {
	if err == nil || !mongo.IsDuplicateKeyError(err) {
		return err
	}
	field := "email"
	if strings.Contains(err.Error(), "phone") {
		field = "phone"
	}
	return &DuplicateFieldError{Entity: entity, Field: field}
}

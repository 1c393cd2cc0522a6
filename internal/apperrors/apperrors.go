package apperrors

import (
	"errors"
	"fmt"
)

// NotFoundError means a referenced entity does not exist in the expected state.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Entity)
	}
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

func NewNotFound(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// AuthorizationError means the actor lacks the role required for the operation.
type AuthorizationError struct {
	Reason string
}

func (e *AuthorizationError) Error() string {
	return e.Reason
}

func NewAuthorization(reason string) error {
	return &AuthorizationError{Reason: reason}
}

// ValidationError means malformed user input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func NewValidation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// DataIntegrityError means a precondition the system assumes should always
// hold was violated. Distinct from ValidationError: it signals corruption or
// a bug, not bad user input.
type DataIntegrityError struct {
	Reason string
}

func (e *DataIntegrityError) Error() string {
	return e.Reason
}

func NewDataIntegrity(reason string) error {
	return &DataIntegrityError{Reason: reason}
}

// ConcurrencyConflictError means the entity changed between read and write.
type ConcurrencyConflictError struct {
	Entity string
	ID     string
}

func (e *ConcurrencyConflictError) Error() string {
	return fmt.Sprintf("%s %s was modified concurrently", e.Entity, e.ID)
}

func NewConcurrencyConflict(entity, id string) error {
	return &ConcurrencyConflictError{Entity: entity, ID: id}
}

// Classification helpers for handlers.

func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

func IsAuthorization(err error) bool {
	var e *AuthorizationError
	return errors.As(err, &e)
}

func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

func IsDataIntegrity(err error) bool {
	var e *DataIntegrityError
	return errors.As(err, &e)
}

func IsConcurrencyConflict(err error) bool {
	var e *ConcurrencyConflictError
	return errors.As(err, &e)
}

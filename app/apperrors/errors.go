package apperrors

import (
	"errors"
	"fmt"
)

// FieldError points at a specific input field that failed validation.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// ValidationError reports bad input. Nothing is written when one is returned.
type ValidationError struct {
	Message string
	Fields  []FieldError
}

func NewValidationError(message string, fields ...FieldError) error {
	return &ValidationError{Message: message, Fields: fields}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ConflictError reports a uniqueness violation (duplicate enrollment, session
// or student identifier). The write that caused it is never partially applied.
type ConflictError struct {
	Constraint string
	Message    string
}

func NewConflictError(constraint, message string) error {
	return &ConflictError{Constraint: constraint, Message: message}
}

func (e *ConflictError) Error() string {
	return e.Message
}

// AuthorizationError reports that the acting user does not own the target
// resource. The operation is refused entirely.
type AuthorizationError struct {
	Message string
}

func NewAuthorizationError(message string) error {
	return &AuthorizationError{Message: message}
}

func (e *AuthorizationError) Error() string {
	return e.Message
}

// NotFoundError reports that the operation's target does not exist.
type NotFoundError struct {
	Resource string
}

func NewNotFoundError(resource string) error {
	return &NotFoundError{Resource: resource}
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

// StoreError wraps a storage failure after the transaction rolled back.
type StoreError struct {
	Op  string
	Err error
}

func NewStoreError(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

func IsAuthorization(err error) bool {
	var ae *AuthorizationError
	return errors.As(err, &ae)
}

func IsNotFound(err error) bool {
	var ne *NotFoundError
	return errors.As(err, &ne)
}

func IsStore(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}

// HTTPStatus maps an error to the status code handlers should answer with.
func HTTPStatus(err error) int {
	switch {
	case IsValidation(err):
		return 400
	case IsAuthorization(err):
		return 403
	case IsNotFound(err):
		return 404
	case IsConflict(err):
		return 409
	default:
		return 500
	}
}

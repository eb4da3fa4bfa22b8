// Copyright Televeda and each contributor.
// SPDX-License-Identifier: MIT

package domain

import "errors"

// ErrorType represents the semantic category of an error
type ErrorType int

const (
	ErrorTypeValidation  ErrorType = iota // Input validation errors (400 Bad Request)
	ErrorTypeNotFound                     // Resource not found errors (404 Not Found)
	ErrorTypeConflict                     // Resource conflict errors (409 Conflict)
	ErrorTypeInternal                     // Internal server errors (500 Internal Server Error)
	ErrorTypeUnavailable                  // Service unavailable errors (503 Service Unavailable)
)

// DomainError represents an error with semantic type information
type DomainError struct {
	Type    ErrorType
	Message string
	Err     error // underlying error for wrapping
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// GetErrorType returns the semantic type of an error
func GetErrorType(err error) ErrorType {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type
	}
	return ErrorTypeInternal // default fallback
}

// Error constructors for different types
func NewValidationError(message string, err ...error) *DomainError {
	return &DomainError{Type: ErrorTypeValidation, Message: message, Err: errors.Join(err...)}
}

func NewNotFoundError(message string, err ...error) *DomainError {
	return &DomainError{Type: ErrorTypeNotFound, Message: message, Err: errors.Join(err...)}
}

func NewConflictError(message string, err ...error) *DomainError {
	return &DomainError{Type: ErrorTypeConflict, Message: message, Err: errors.Join(err...)}
}

func NewInternalError(message string, err ...error) *DomainError {
	return &DomainError{Type: ErrorTypeInternal, Message: message, Err: errors.Join(err...)}
}

func NewUnavailableError(message string, err ...error) *DomainError {
	return &DomainError{Type: ErrorTypeUnavailable, Message: message, Err: errors.Join(err...)}
}

// Sentinel errors shared across services and repositories.
var (
	// ErrServiceUnavailable is returned when a service dependency is not initialized.
	ErrServiceUnavailable = NewUnavailableError("service unavailable")

	// ErrClassNotFound is returned when a scheduled class does not exist in the store.
	ErrClassNotFound = NewNotFoundError("scheduled class not found")

	// ErrCommunityNotFound is returned when a community does not exist in the store.
	ErrCommunityNotFound = NewNotFoundError("community not found")

	// ErrExceptionNotFound is returned when a visibility exception does not exist in the store.
	ErrExceptionNotFound = NewNotFoundError("visibility exception not found")

	// ErrValidationFailed is returned when a mutation request fails validation.
	ErrValidationFailed = NewValidationError("validation failed")

	// ErrRevisionMismatch is returned when an optimistic-concurrency update loses the race.
	ErrRevisionMismatch = NewConflictError("revision mismatch")

	// ErrUnmarshal is returned when stored data cannot be decoded.
	ErrUnmarshal = NewInternalError("error decoding stored data")

	// ErrInternal is a catch-all internal error.
	ErrInternal = NewInternalError("internal error")
)

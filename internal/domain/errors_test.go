// Copyright Televeda and each contributor.
// SPDX-License-Identifier: MIT

package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestDomainErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "ErrClassNotFound",
			err:      ErrClassNotFound,
			expected: "scheduled class not found",
		},
		{
			name:     "ErrCommunityNotFound",
			err:      ErrCommunityNotFound,
			expected: "community not found",
		},
		{
			name:     "ErrInternal",
			err:      ErrInternal,
			expected: "internal error",
		},
		{
			name:     "ErrRevisionMismatch",
			err:      ErrRevisionMismatch,
			expected: "revision mismatch",
		},
		{
			name:     "ErrServiceUnavailable",
			err:      ErrServiceUnavailable,
			expected: "service unavailable",
		},
		{
			name:     "ErrValidationFailed",
			err:      ErrValidationFailed,
			expected: "validation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.expected {
				t.Errorf("expected error message %q, got %q", tt.expected, tt.err.Error())
			}
		})
	}
}

func TestGetErrorType(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected ErrorType
	}{
		{
			name:     "validation error",
			err:      NewValidationError("bad input"),
			expected: ErrorTypeValidation,
		},
		{
			name:     "not found error",
			err:      NewNotFoundError("missing"),
			expected: ErrorTypeNotFound,
		},
		{
			name:     "conflict error",
			err:      NewConflictError("conflict"),
			expected: ErrorTypeConflict,
		},
		{
			name:     "unavailable error",
			err:      NewUnavailableError("down"),
			expected: ErrorTypeUnavailable,
		},
		{
			name:     "wrapped domain error",
			err:      fmt.Errorf("outer: %w", NewNotFoundError("missing")),
			expected: ErrorTypeNotFound,
		},
		{
			name:     "plain error falls back to internal",
			err:      errors.New("plain"),
			expected: ErrorTypeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetErrorType(tt.err); got != tt.expected {
				t.Errorf("expected error type %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestDomainErrorUnwrap(t *testing.T) {
	inner := errors.New("inner failure")
	err := NewInternalError("operation failed", inner)

	if !errors.Is(err, inner) {
		t.Error("expected wrapped error to match with errors.Is")
	}
	if err.Error() != "operation failed: inner failure" {
		t.Errorf("unexpected error message %q", err.Error())
	}
}

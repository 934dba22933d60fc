// Package domain contains domain entities, value objects, and domain-specific errors.
// This package should have no external dependencies except the standard library.
package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain error types for consistent error handling across the application.

var (
	// ErrNotFound is returned when a requested resource does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotConfigured is returned when the database environment is incomplete.
	ErrNotConfigured = errors.New("database not configured")

	// ErrConnectFailed is returned when the database handshake fails or times out.
	ErrConnectFailed = errors.New("database connection failed")

	// ErrStorage is returned when a statement fails against a live connection.
	ErrStorage = errors.New("storage error")
)

// DomainError wraps a base error with additional context.
// It provides a standard way to add details to domain errors.
type DomainError struct {
	// Base is the underlying error type (e.g., ErrNotFound)
	Base error

	// Message provides human-readable context
	Message string

	// Field indicates which field caused the error (for validation errors)
	Field string

	// Cause is the infrastructure error behind Base, if any.
	// It is meant for operator logs only.
	Cause error
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	var b strings.Builder
	b.WriteString(e.Base.Error())
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, " (field: %s)", e.Field)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the base error and the cause for errors.Is/As support.
func (e *DomainError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Base}
	}
	return []error{e.Base, e.Cause}
}

// NotConfiguredError reports which required variables are missing.
// Only names are kept; values never reach this type.
type NotConfiguredError struct {
	Missing []string
	Message string
}

// Error implements the error interface.
func (e *NotConfiguredError) Error() string {
	if e.Message != "" {
		return ErrNotConfigured.Error() + ": " + e.Message
	}
	return fmt.Sprintf("%s: missing %s", ErrNotConfigured, strings.Join(e.Missing, ", "))
}

// Unwrap returns ErrNotConfigured.
func (e *NotConfiguredError) Unwrap() error {
	return ErrNotConfigured
}

// NewNotFoundError creates a not found error with context.
func NewNotFoundError(resource string) *DomainError {
	return &DomainError{
		Base:    ErrNotFound,
		Message: resource,
	}
}

// NewValidationError creates a validation error for a specific field.
func NewValidationError(field, message string) *DomainError {
	return &DomainError{
		Base:    ErrInvalidInput,
		Message: message,
		Field:   field,
	}
}

// NewNotConfiguredError creates a not configured error for the given variable names.
func NewNotConfiguredError(missing []string) *NotConfiguredError {
	names := make([]string, len(missing))
	copy(names, missing)
	return &NotConfiguredError{Missing: names}
}

// NewConnectFailedError wraps a handshake failure.
func NewConnectFailedError(cause error) *DomainError {
	return &DomainError{
		Base:  ErrConnectFailed,
		Cause: cause,
	}
}

// NewStorageError wraps a failed statement with the operation that issued it.
func NewStorageError(op string, cause error) *DomainError {
	return &DomainError{
		Base:    ErrStorage,
		Message: op,
		Cause:   cause,
	}
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsNotConfigured checks if an error is a not configured error.
func IsNotConfigured(err error) bool {
	return errors.Is(err, ErrNotConfigured)
}

// IsConnectFailed checks if an error is a connection failure.
func IsConnectFailed(err error) bool {
	return errors.Is(err, ErrConnectFailed)
}

// IsStorageError checks if an error is a storage failure.
func IsStorageError(err error) bool {
	return errors.Is(err, ErrStorage)
}

// Package common defines shared constants and sentinel errors used across
// the hook, storage and dispatch layers. Callers should use errors.Is to
// match these values and errors.As to retrieve the typed kinds.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Error kinds raised to hook callers.
	ErrorMissingField  = errors.New("missing field")
	ErrorStorage       = errors.New("storage error")
	ErrorCommunication = errors.New("communication error")

	// Auth errors (invalid or malformed caller token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// NotFoundError reports a missing user or profile.
type NotFoundError struct {
	Msg string
}

// NewNotFoundError formats a NotFoundError message.
func NewNotFoundError(format string, args ...any) *NotFoundError {
	return &NotFoundError{Msg: fmt.Sprintf(format, args...)}
}

func (e *NotFoundError) Error() string { return e.Msg }

func (e *NotFoundError) Is(target error) bool { return target == ErrorNotFound }

// MissingFieldError reports a required key absent from a registration or
// request context. Reason, when set, says why a present value was unusable.
type MissingFieldError struct {
	Field  string
	Reason string
}

func (e *MissingFieldError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid field: %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("missing field: %s", e.Field)
}

func (e *MissingFieldError) Is(target error) bool { return target == ErrorMissingField }

// StorageError wraps a persistence fault. Op names the failed statement.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("db error: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrorStorage }

// CommunicationError wraps a delivery bus rejection.
type CommunicationError struct {
	Op  string
	Err error
}

func (e *CommunicationError) Error() string {
	return fmt.Sprintf("communication error: %s: %v", e.Op, e.Err)
}

func (e *CommunicationError) Unwrap() error { return e.Err }

func (e *CommunicationError) Is(target error) bool { return target == ErrorCommunication }

package common

import (
	"errors"
	"fmt"
)

// Business logic errors
var (
	// General errors
	ErrNotFound  = errors.New("resource not found")
	ErrForbidden = errors.New("forbidden")

	// ErrUnavailable marks collaborator or store failures; the only kind worth retrying
	ErrUnavailable = errors.New("service unavailable")

	// Memory errors
	ErrMemoryNotFound = fmt.Errorf("memory not found: %w", ErrNotFound)
	ErrNotMemoryOwner = fmt.Errorf("only the author can delete a memory: %w", ErrForbidden)

	// Auth errors
	ErrUnauthorized = errors.New("unauthorized")

	// Validation errors
	ErrInvalidInput    = errors.New("invalid input")
	ErrContentRequired = fmt.Errorf("content is required: %w", ErrInvalidInput)
	ErrCommentRequired = fmt.Errorf("comment content is required: %w", ErrInvalidInput)
)

// unavailableError keeps the cause while matching ErrUnavailable
type unavailableError struct {
	cause error
}

func (e *unavailableError) Error() string {
	return "service unavailable: " + e.cause.Error()
}

func (e *unavailableError) Is(target error) bool {
	return target == ErrUnavailable
}

func (e *unavailableError) Unwrap() error {
	return e.cause
}

// Unavailable wraps a collaborator failure. Domain errors pass through untouched.
func Unavailable(err error) error {
	if err == nil {
		return nil
	}
	if IsDomainError(err) || errors.Is(err, ErrUnavailable) {
		return err
	}
	return &unavailableError{cause: err}
}

// IsDomainError reports whether err is an expected outcome rather than a failure
func IsDomainError(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrForbidden)
}

package service

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation matches any *ValidationError via errors.Is.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound matches any *NotFoundError via errors.Is.
	ErrNotFound = errors.New("not found")

	// ErrAuth is wrapped by export backends when credentials are missing,
	// expired or revoked.
	ErrAuth = errors.New("auth error")
)

// ValidationError reports an invalid title or status.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "status" {
		return fmt.Sprintf("invalid status %q: %s", e.Value, e.Reason)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Is makes errors.Is(err, ErrValidation) true.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NotFoundError reports an operation on an id the store does not hold.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("task '%s' not found", e.ID)
}

// Is makes errors.Is(err, ErrNotFound) true.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ValidateTitle returns a *ValidationError if title is blank after trimming.
func ValidateTitle(title string) error {
	if NormalizeTitle(title) == "" {
		return &ValidationError{Field: "title", Reason: "task title cannot be empty"}
	}
	return nil
}

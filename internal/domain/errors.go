package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput marks input-shape failures (missing ids, malformed
	// date ranges). Wrap with a ValidationError for field detail.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUpstreamMalformed marks untrusted external data that failed to
	// parse or violated its contract (bad JSON, min>max, non-finite).
	ErrUpstreamMalformed = errors.New("upstream response malformed")
)

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

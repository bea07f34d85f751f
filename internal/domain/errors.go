package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across repositories and services.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")

	// ErrInvalidState signals an operation attempted against a record whose
	// lifecycle status does not allow it (e.g. dispatching a sent campaign).
	ErrInvalidState = errors.New("invalid state")

	// ErrEventMismatch signals a check-in token that resolves to an attendee
	// of a different event than the one being scanned.
	ErrEventMismatch = errors.New("token belongs to a different event")

	// ErrMalformedToken signals a check-in payload that does not have the
	// expected shape. It matches ErrInvalidInput as well.
	ErrMalformedToken = fmt.Errorf("%w: malformed check-in token", ErrInvalidInput)
)

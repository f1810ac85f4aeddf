package store

import "errors"

var (
	// ErrConflict is returned when a write loses to the overlap exclusion
	// constraints; it carries no detail because the conflicting row is not
	// visible to the losing transaction.
	ErrConflict = errors.New("conflict")

	ErrNotFound = errors.New("not found")

	// ErrInvalidReference is returned when an appointment names a vet or room
	// that does not exist.
	ErrInvalidReference = errors.New("invalid resource reference")
)

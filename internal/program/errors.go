package program

import "errors"

var (
	// ErrNotFound is returned when a programme does not exist.
	ErrNotFound = errors.New("program not found")

	// ErrCodeExists is returned when creating or updating a programme
	// with a code that is already taken.
	ErrCodeExists = errors.New("program code already exists")
)

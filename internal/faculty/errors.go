package faculty

import "errors"

var (
	// ErrNotFound is returned when a faculty does not exist.
	ErrNotFound = errors.New("faculty not found")

	// ErrCodeExists is returned when creating or updating a faculty
	// with a code that is already taken.
	ErrCodeExists = errors.New("faculty code already exists")
)

package student

import "errors"

var (
	// ErrNotFound is returned when a student ID does not exist.
	ErrNotFound = errors.New("student not found")

	// ErrNumberExists is returned when a registration number is already taken.
	ErrNumberExists = errors.New("student number already exists")
)

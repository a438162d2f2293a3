package auth

import (
	"errors"
	"time"
)

// User represents a registered account on the local datastore.
//
// Password holds the stored secret verbatim. The surrounding product
// keeps the whole database on the user's own device and treats the
// store itself as the trust boundary, so no hashing is applied.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"` // never serialised
	CreatedAt time.Time `json:"created_at"`
}

// Sentinel errors for auth operations.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrNoSession          = errors.New("no active session")
)

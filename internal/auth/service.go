package auth

import (
	"context"
	"errors"
	"strings"
)

// Service implements registration and credential verification on top
// of the user repository. It has no session state of its own; session
// persistence belongs to Sessions and the SessionStore collaborator.
type Service struct {
	users UserRepository
}

// NewService creates an authentication service.
func NewService(users UserRepository) *Service {
	return &Service{users: users}
}

// Register creates a new account. The email is trimmed and lowercased
// before the duplicate check, so a registered address cannot be reused
// in a different case. The unique constraint on the email column backs
// up the check under concurrent registration.
func (s *Service) Register(ctx context.Context, name, email, password string) (*User, error) {
	email = normaliseEmail(email)

	_, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, ErrEmailExists
	case !errors.Is(err, ErrUserNotFound):
		return nil, err
	}

	user := &User{
		Name:     name,
		Email:    email,
		Password: password,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	// Re-read for the engine-assigned creation timestamp.
	return s.users.GetByID(ctx, user.ID)
}

// Authenticate verifies an email/password pair and returns the matched
// account. An unknown email and a wrong password both come back as
// ErrInvalidCredentials, so callers cannot tell which part failed.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	user, err := s.users.GetByEmail(ctx, normaliseEmail(email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if user.Password != password {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func normaliseEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

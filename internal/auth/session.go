package auth

import (
	"encoding/json"
	"errors"
	"fmt"
)

// sessionKey is the fixed key the serialised user record lives under.
const sessionKey = "campus.session.user"

// ErrKeyNotFound is returned by SessionStore implementations when the
// requested key has no stored value.
var ErrKeyNotFound = errors.New("session key not found")

// SessionStore is the key-value collaborator used to persist the
// active session. Values are opaque string blobs; implementations
// never inspect them.
type SessionStore interface {
	// Get returns the value stored under key, or ErrKeyNotFound.
	Get(key string) (string, error)

	// Set stores value under key, replacing any previous value.
	Set(key, value string) error

	// Delete removes the value under key. Deleting an absent key
	// returns ErrKeyNotFound.
	Delete(key string) error
}

// Sessions persists the signed-in user under a single fixed key.
//
// The serialised record never includes the password field, so the
// session blob is safe to keep on disk alongside the datastore.
type Sessions struct {
	store SessionStore
}

// NewSessions creates a session manager over the given store.
func NewSessions(store SessionStore) *Sessions {
	return &Sessions{store: store}
}

// Save serialises the user and stores it as the active session,
// replacing any previous one.
func (s *Sessions) Save(user *User) error {
	blob, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := s.store.Set(sessionKey, string(blob)); err != nil {
		return fmt.Errorf("storing session: %w", err)
	}
	return nil
}

// Current returns the stored session user, or ErrNoSession when no
// one is signed in.
func (s *Sessions) Current() (*User, error) {
	blob, err := s.store.Get(sessionKey)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("reading session: %w", err)
	}

	var user User
	if err := json.Unmarshal([]byte(blob), &user); err != nil {
		return nil, fmt.Errorf("decoding session: %w", err)
	}
	return &user, nil
}

// Clear removes the active session. Clearing when no session exists
// is not an error.
func (s *Sessions) Clear() error {
	if err := s.store.Delete(sessionKey); err != nil && !errors.Is(err, ErrKeyNotFound) {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}

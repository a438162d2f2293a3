package auth

import (
	"errors"
	"strings"
	"testing"
)

// memStore is an in-memory SessionStore for tests.
type memStore struct {
	values map[string]string
}

func newMemStore() *memStore {
	return &memStore{values: map[string]string{}}
}

func (m *memStore) Get(key string) (string, error) {
	value, ok := m.values[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return value, nil
}

func (m *memStore) Set(key, value string) error {
	m.values[key] = value
	return nil
}

func (m *memStore) Delete(key string) error {
	if _, ok := m.values[key]; !ok {
		return ErrKeyNotFound
	}
	delete(m.values, key)
	return nil
}

func TestSessions_SaveAndCurrent(t *testing.T) {
	store := newMemStore()
	sessions := NewSessions(store)

	user := &User{ID: 7, Name: "Ada", Email: "ada@campus.test", Password: "secret"}
	if err := sessions.Save(user); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := sessions.Current()
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if got.ID != 7 || got.Name != "Ada" || got.Email != "ada@campus.test" {
		t.Errorf("session user = %+v", got)
	}

	// The password must never reach the store
	if got.Password != "" {
		t.Errorf("Password survived the round trip: %q", got.Password)
	}
	for _, blob := range store.values {
		if strings.Contains(blob, "secret") {
			t.Error("stored session blob contains the password")
		}
	}
}

func TestSessions_CurrentWithoutSession(t *testing.T) {
	sessions := NewSessions(newMemStore())

	_, err := sessions.Current()
	if !errors.Is(err, ErrNoSession) {
		t.Errorf("Current with empty store = %v, want ErrNoSession", err)
	}
}

func TestSessions_SaveReplaces(t *testing.T) {
	sessions := NewSessions(newMemStore())

	if err := sessions.Save(&User{ID: 1, Name: "First", Email: "first@campus.test"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := sessions.Save(&User{ID: 2, Name: "Second", Email: "second@campus.test"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := sessions.Current()
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if got.ID != 2 {
		t.Errorf("Current returned user %d, want 2", got.ID)
	}
}

func TestSessions_Clear(t *testing.T) {
	sessions := NewSessions(newMemStore())

	if err := sessions.Save(&User{ID: 1, Name: "Ada", Email: "ada@campus.test"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := sessions.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, err := sessions.Current(); !errors.Is(err, ErrNoSession) {
		t.Errorf("Current after Clear = %v, want ErrNoSession", err)
	}

	// Clearing again is a no-op, not an error
	if err := sessions.Clear(); err != nil {
		t.Errorf("second Clear: %v", err)
	}
}

func TestSessions_CorruptBlob(t *testing.T) {
	store := newMemStore()
	store.values[sessionKey] = "{not json"
	sessions := NewSessions(store)

	if _, err := sessions.Current(); err == nil {
		t.Error("Current with corrupt blob succeeded, want error")
	}
}

package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
)

// ─── Registration Tests ────────────────────────────────────────────

func TestRegister_API(t *testing.T) {
	_, router := testServer(t)

	w := doRequest(router, http.MethodPost, "/api/v1/auth/register", "",
		`{"name":"Ada","email":"Ada@Campus.Test","password":"secret"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("register status = %d; body: %s", w.Code, w.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp["email"] != "ada@campus.test" {
		t.Errorf("email = %v, want lowercased ada@campus.test", resp["email"])
	}
	if resp["name"] != "Ada" {
		t.Errorf("name = %v, want Ada", resp["name"])
	}

	// The password must never appear in a response
	if strings.Contains(w.Body.String(), "secret") || strings.Contains(w.Body.String(), "password") {
		t.Errorf("register response leaks the password: %s", w.Body.String())
	}
}

func TestRegister_DuplicateEmail_API(t *testing.T) {
	_, router := testServer(t)

	body := `{"name":"Ada","email":"ada@campus.test","password":"secret"}`
	if w := doRequest(router, http.MethodPost, "/api/v1/auth/register", "", body); w.Code != http.StatusCreated {
		t.Fatalf("first register status = %d", w.Code)
	}

	w := doRequest(router, http.MethodPost, "/api/v1/auth/register", "",
		`{"name":"Other","email":"ADA@CAMPUS.TEST","password":"other"}`)
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate register status = %d, want %d", w.Code, http.StatusConflict)
	}
	if !strings.Contains(w.Body.String(), "already registered") {
		t.Errorf("duplicate register body = %s, want already-registered message", w.Body.String())
	}
}

func TestRegister_Validation(t *testing.T) {
	_, router := testServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"email":"a@campus.test","password":"p"}`},
		{"missing email", `{"name":"A","password":"p"}`},
		{"malformed email", `{"name":"A","email":"not-an-email","password":"p"}`},
		{"missing password", `{"name":"A","email":"a@campus.test"}`},
		{"invalid JSON", `{broken`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, http.MethodPost, "/api/v1/auth/register", "", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d; body: %s", w.Code, http.StatusBadRequest, w.Body.String())
			}
		})
	}
}

// ─── Login and Session Tests ───────────────────────────────────────

func TestLogin(t *testing.T) {
	_, router := testServer(t)

	doRequest(router, http.MethodPost, "/api/v1/auth/register", "",
		`{"name":"Ada","email":"ada@campus.test","password":"secret"}`)

	w := doRequest(router, http.MethodPost, "/api/v1/auth/login", "",
		`{"email":"ada@campus.test","password":"secret"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d; body: %s", w.Code, w.Body.String())
	}

	var resp loginResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.AccessToken == "" {
		t.Error("access_token is empty")
	}
	if resp.TokenType != "Bearer" {
		t.Errorf("token_type = %q, want Bearer", resp.TokenType)
	}
	if resp.ExpiresIn != 15*60 {
		t.Errorf("expires_in = %d, want %d", resp.ExpiresIn, 15*60)
	}
	if resp.User == nil || resp.User.Email != "ada@campus.test" {
		t.Errorf("user = %+v, want ada@campus.test", resp.User)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	_, router := testServer(t)

	doRequest(router, http.MethodPost, "/api/v1/auth/register", "",
		`{"name":"Ada","email":"ada@campus.test","password":"secret"}`)

	w := doRequest(router, http.MethodPost, "/api/v1/auth/login", "",
		`{"email":"ada@campus.test","password":"wrong"}`)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("wrong password status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	_, router := testServer(t)

	w := doRequest(router, http.MethodPost, "/api/v1/auth/login", "",
		`{"email":"nobody@campus.test","password":"secret"}`)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("unknown email status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestSessionLifecycle(t *testing.T) {
	_, router := testServer(t)
	token := authToken(t, router)

	// Login persisted the session
	w := doRequest(router, http.MethodGet, "/api/v1/auth/session", token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("session status = %d; body: %s", w.Code, w.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp["email"] != "tester@campus.test" {
		t.Errorf("session email = %v, want tester@campus.test", resp["email"])
	}

	// Logout clears it
	w = doRequest(router, http.MethodPost, "/api/v1/auth/logout", token, "")
	if w.Code != http.StatusNoContent {
		t.Errorf("logout status = %d, want %d", w.Code, http.StatusNoContent)
	}

	// The token is still valid, but no session is persisted any more
	w = doRequest(router, http.MethodGet, "/api/v1/auth/session", token, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("session after logout status = %d, want %d", w.Code, http.StatusNotFound)
	}

	// A second logout is harmless
	w = doRequest(router, http.MethodPost, "/api/v1/auth/logout", token, "")
	if w.Code != http.StatusNoContent {
		t.Errorf("second logout status = %d, want %d", w.Code, http.StatusNoContent)
	}
}

package api

import (
	"errors"
	"net/http"

	"campus-core/internal/auth"
)

// registerRequest is the request body for POST /auth/register.
type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// loginRequest is the request body for POST /auth/login.
type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// loginResponse is the response body for POST /auth/login.
type loginResponse struct {
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	ExpiresIn   int        `json:"expires_in"`
	User        *auth.User `json:"user"`
}

// handleRegister creates a new account.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeValid(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	user, err := s.auth.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrEmailExists) {
			writeConflict(w, "email already registered")
			return
		}
		writeInternalError(w, "failed to register")
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// handleLogin verifies credentials, issues a JWT access token, and
// persists the signed-in user as the active session.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeValid(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	user, err := s.auth.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeUnauthorized(w, "invalid credentials")
			return
		}
		writeInternalError(w, "failed to authenticate")
		return
	}

	ttl := s.secCfg.JWT.AccessTokenTTL
	if ttl <= 0 {
		ttl = 60 //nolint:mnd // default one-hour access token TTL
	}

	token, err := auth.GenerateAccessToken(user, s.secCfg.JWT.Secret, ttl)
	if err != nil {
		writeInternalError(w, "failed to generate token")
		return
	}

	// Session persistence is best-effort: the token alone is enough to
	// use the API, the session file only restores sign-in on restart.
	if err := s.sessions.Save(user); err != nil {
		s.logger.Warn("failed to persist session", "error", err)
	}

	writeJSON(w, http.StatusOK, loginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   ttl * 60, // seconds
		User:        user,
	})
}

// handleLogout clears the persisted session.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Clear(); err != nil {
		writeInternalError(w, "failed to clear session")
		return
	}

	if claims, ok := claimsFrom(r.Context()); ok {
		s.logger.Info("user signed out", "email", claims.Email)
	}

	writeJSON(w, http.StatusNoContent, nil)
}

// handleSession returns the persisted session user.
func (s *Server) handleSession(w http.ResponseWriter, _ *http.Request) {
	user, err := s.sessions.Current()
	if err != nil {
		if errors.Is(err, auth.ErrNoSession) {
			writeNotFound(w, "no active session")
			return
		}
		writeInternalError(w, "failed to read session")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

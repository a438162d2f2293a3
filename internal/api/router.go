package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Health check (no auth required)
		r.Get("/health", s.handleHealth)

		// Auth endpoints (no auth required)
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)

			r.Post("/auth/logout", s.handleLogout)
			r.Get("/auth/session", s.handleSession)

			// Student endpoints
			r.Route("/students", func(r chi.Router) {
				r.Get("/", s.handleListStudents)
				r.Post("/", s.handleCreateStudent)
				r.Get("/recent", s.handleRecentStudents)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", s.handleGetStudent)
					r.Put("/", s.handleUpdateStudent)
					r.Delete("/", s.handleDeleteStudent)
				})
			})

			// Programme endpoints
			r.Route("/programs", func(r chi.Router) {
				r.Get("/", s.handleListPrograms)
				r.Post("/", s.handleCreateProgram)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", s.handleGetProgram)
					r.Put("/", s.handleUpdateProgram)
					r.Delete("/", s.handleDeleteProgram)
				})
			})

			// Faculty endpoints
			r.Route("/faculties", func(r chi.Router) {
				r.Get("/", s.handleListFaculties)
				r.Post("/", s.handleCreateFaculty)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", s.handleGetFaculty)
					r.Put("/", s.handleUpdateFaculty)
					r.Delete("/", s.handleDeleteFaculty)
				})
			})
		})
	})

	return r
}

// handleHealth returns the server health status and datastore readiness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	databaseStatus := "pending"
	if s.db.Ready() {
		databaseStatus = "ready"
		if db, err := s.db.DB(r.Context()); err == nil {
			if err := db.HealthCheck(r.Context()); err != nil {
				databaseStatus = "unhealthy"
			}
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"version":  s.version,
		"database": databaseStatus,
	})
}

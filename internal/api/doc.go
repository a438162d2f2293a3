// Package api implements the HTTP REST API for Campus Core.
//
// This package provides:
//   - REST endpoints for student, programme and faculty CRUD and search
//   - A recent-students feed for the dashboard
//   - Registration, login and session endpoints backed by the auth package
//   - JWT bearer authentication on all record endpoints
//   - Middleware stack (request ID, logging, recovery, CORS, body limit)
//
// # Architecture
//
// The server sits between the mobile/web client and the repositories.
// Handlers decode and validate request DTOs, call a repository or the
// auth service, and map sentinel errors onto HTTP statuses: not-found
// sentinels become 404, already-exists sentinels become 409, validation
// failures become 400.
//
// # Security
//
// Login issues an HS256 JWT validated by signature and expiry on every
// protected request; no token state is kept server-side. The active
// session is additionally persisted through the auth session store so
// the client can restore who is signed in across restarts.
package api

// Package auth provides account registration and sign-in for Campus Core.
//
// It is deliberately small: accounts live in the same SQLite datastore
// as the campus records, with:
//   - Email/password registration with lowercase email normalisation
//   - Plaintext secret comparison (the datastore sits on the user's
//     own device and is the trust boundary)
//   - JWT access tokens signed with HS256, validated without a DB hit
//   - A single-slot session persisted through the SessionStore
//     key-value collaborator
//
// Failed registration and sign-in surface as sentinel errors
// (ErrEmailExists, ErrInvalidCredentials) rather than distinct
// failure types, so callers branch with errors.Is.
package auth

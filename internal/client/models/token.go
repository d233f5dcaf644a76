// Package models defines the client-side data model: the credential pair, the
// session derived from it, locally authored guest entries, and the read models
// served by the backend.
package models

import "time"

// TokenPair is the access/refresh credential pair issued by the backend.
// The two tokens are only ever replaced together.
type TokenPair struct {
	Access  string
	Refresh string
}

// Session is derived from the access token's payload, never stored on its own.
// A Session is only meaningful while ExpiresAt is in the future; an expired or
// undecodable token is treated the same as having no token at all.
type Session struct {
	UserID    string
	Email     string
	ExpiresAt time.Time
	Federated bool
}

// Expired reports whether the session has passed its expiry at the given time.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// User identifies the account returned by the auth endpoints.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

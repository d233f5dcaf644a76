// Package session derives the current session from the stored access token
// and owns the process-wide session-expiry signal.
package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ahmetk3436/Daiyly-sub000/internal/client/models"
	"github.com/ahmetk3436/Daiyly-sub000/internal/common"
)

type tokenClaims struct {
	jwt.RegisteredClaims
	Email     string `json:"email"`
	Federated bool   `json:"federated"`
}

// DecodeToken extracts the session carried in the access token payload.
//
// The signature is not verified: the server is the authority on the token, the
// client only needs the claims. Malformed tokens return common.ErrInvalidToken
// and expired ones common.ErrTokenExpired; callers treat both the same as
// having no token and clear the stored credentials.
func DecodeToken(access string) (models.Session, error) {
	claims := &tokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(access, claims); err != nil {
		return models.Session{}, common.ErrInvalidToken
	}
	if claims.ExpiresAt == nil {
		return models.Session{}, common.ErrInvalidToken
	}

	s := models.Session{
		UserID:    claims.Subject,
		Email:     claims.Email,
		ExpiresAt: claims.ExpiresAt.Time,
		Federated: claims.Federated,
	}
	if s.Expired(time.Now()) {
		return models.Session{}, common.ErrTokenExpired
	}
	return s, nil
}

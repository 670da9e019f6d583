// Package jwt issues and validates the access/refresh token pair that
// authenticates Briefly API sessions.
package jwt

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the access-token payload. Refresh tokens carry only the
// registered claims; the user id rides in the subject.
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Role   string    `json:"role"`
	jwt.RegisteredClaims
}

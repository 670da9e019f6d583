package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/brieflyhq/briefly/internal/usecase/auth"
)

const (
	// UserContextKey is the echo context key for the authenticated user
	UserContextKey = "user"
	// UserIDContextKey is the echo context key for the authenticated user ID
	UserIDContextKey = "user_id"
)

// AuthMiddleware validates access tokens on protected routes
type AuthMiddleware struct {
	oauthService *auth.OAuthService
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(oauthService *auth.OAuthService) *AuthMiddleware {
	return &AuthMiddleware{oauthService: oauthService}
}

// Authenticate validates the bearer token and injects the user into the
// request context
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := extractToken(c)
		if token == "" {
			return c.JSON(http.StatusUnauthorized, map[string]string{
				"error": "missing authorization token",
			})
		}

		user, err := m.oauthService.ValidateSession(c.Request().Context(), token)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{
				"error": "invalid or expired token",
			})
		}

		c.Set(UserContextKey, user)
		c.Set(UserIDContextKey, user.ID)
		return next(c)
	}
}

// UserIDFromContext reads the authenticated user ID set by Authenticate
func UserIDFromContext(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(UserIDContextKey).(uuid.UUID)
	return id, ok
}

// extractToken reads the bearer token from the Authorization header, with
// the access_token cookie as fallback.
func extractToken(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
	}

	cookie, err := c.Cookie("access_token")
	if err == nil {
		return cookie.Value
	}
	return ""
}

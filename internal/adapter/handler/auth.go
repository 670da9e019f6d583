package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/brieflyhq/briefly/errors"
	"github.com/brieflyhq/briefly/internal/domain/entities"
	"github.com/brieflyhq/briefly/internal/infrastructure/http/middleware"
	"github.com/brieflyhq/briefly/internal/usecase/auth"
)

// Auth handles authentication HTTP requests
type Auth struct {
	oauthService *auth.OAuthService
	logger       *zap.Logger
}

// NewAuth creates a new auth handler
func NewAuth(oauthService *auth.OAuthService, logger *zap.Logger) *Auth {
	return &Auth{
		oauthService: oauthService,
		logger:       logger,
	}
}

// GoogleLogin redirects to the Google consent screen
// GET /v1/auth/google/login
func (h *Auth) GoogleLogin(c echo.Context) error {
	ctx := c.Request().Context()

	authURL, err := h.oauthService.GetGoogleAuthURL(ctx)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return c.Redirect(http.StatusTemporaryRedirect, authURL.URL)
}

// GoogleCallback completes the OAuth flow
// GET /v1/auth/google/callback
func (h *Auth) GoogleCallback(c echo.Context) error {
	ctx := c.Request().Context()

	code := c.QueryParam("code")
	state := c.QueryParam("state")
	if code == "" || state == "" {
		return handleError(c, h.logger, apperrors.ErrInvalidArgument("missing code or state parameter"))
	}

	response, err := h.oauthService.HandleGoogleCallback(ctx, &auth.GoogleCallbackRequest{
		Code:  code,
		State: state,
	})
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return handleSuccess(c, h.logger, response)
}

// RefreshToken exchanges a refresh token for a new access token
// POST /v1/auth/refresh
func (h *Auth) RefreshToken(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		RefreshToken string `json:"refresh_token" validate:"required"`
	}
	if err := bindAndValidate(c, &req); err != nil {
		return handleError(c, h.logger, err)
	}

	response, err := h.oauthService.RefreshAccessToken(ctx, req.RefreshToken)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return handleSuccess(c, h.logger, response)
}

// Logout revokes the session behind a refresh token
// POST /v1/auth/logout
func (h *Auth) Logout(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		RefreshToken string `json:"refresh_token" validate:"required"`
	}
	if err := bindAndValidate(c, &req); err != nil {
		return handleError(c, h.logger, err)
	}

	if err := h.oauthService.Logout(ctx, req.RefreshToken); err != nil {
		return handleError(c, h.logger, err)
	}
	return handleSuccess(c, h.logger, map[string]string{"status": "logged_out"})
}

// Me returns the authenticated user
// GET /v1/auth/me
func (h *Auth) Me(c echo.Context) error {
	user, ok := c.Get(middleware.UserContextKey).(*entities.User)
	if !ok {
		return handleError(c, h.logger, apperrors.ErrUnauthenticated())
	}
	return handleSuccess(c, h.logger, user.ToPublic())
}

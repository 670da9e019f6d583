package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/brieflyhq/briefly/internal/infrastructure/http/middleware"
	"github.com/brieflyhq/briefly/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg               *config.Config
	authHandler       *Auth
	meetingHandler    *Meeting
	crmHandler        *CRM
	resolutionHandler *Resolution
	documentHandler   *Document
	authMiddleware    *middleware.AuthMiddleware
}

// NewRouter creates a new router with all handlers
func NewRouter(
	cfg *config.Config,
	authHandler *Auth,
	meetingHandler *Meeting,
	crmHandler *CRM,
	resolutionHandler *Resolution,
	documentHandler *Document,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		cfg:               cfg,
		authHandler:       authHandler,
		meetingHandler:    meetingHandler,
		crmHandler:        crmHandler,
		resolutionHandler: resolutionHandler,
		documentHandler:   documentHandler,
		authMiddleware:    authMiddleware,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.GET("/health", rt.healthCheck)

	v1 := e.Group("/v1")

	rt.setupAuthRoutes(v1)

	protected := v1.Group("", rt.authMiddleware.Authenticate)
	rt.setupCRMRoutes(protected)
	rt.setupMeetingRoutes(protected)
	rt.setupResolutionRoutes(protected)
}

func (rt *Router) setupAuthRoutes(g *echo.Group) {
	authGroup := g.Group("/auth")

	authGroup.GET("/google/login", rt.authHandler.GoogleLogin)
	authGroup.GET("/google/callback", rt.authHandler.GoogleCallback)
	authGroup.POST("/refresh", rt.authHandler.RefreshToken)
	authGroup.POST("/logout", rt.authHandler.Logout, rt.authMiddleware.Authenticate)
	authGroup.GET("/me", rt.authHandler.Me, rt.authMiddleware.Authenticate)
}

func (rt *Router) setupCRMRoutes(g *echo.Group) {
	g.POST("/clients", rt.crmHandler.CreateClient)
	g.GET("/clients", rt.crmHandler.ListClients)

	g.POST("/opportunities", rt.crmHandler.CreateOpportunity)
	g.GET("/opportunities/:id/meetings", rt.crmHandler.ListMeetings)
	g.POST("/opportunities/:id/documents", rt.documentHandler.Generate)
}

func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	g.POST("/meetings", rt.meetingHandler.Ingest)
	g.GET("/meetings/:id", rt.meetingHandler.Get)
	g.POST("/meetings/:id/summarize", rt.meetingHandler.Summarize)
}

func (rt *Router) setupResolutionRoutes(g *echo.Group) {
	g.POST("/opportunities/:id/resolutions", rt.resolutionHandler.Start)
	g.GET("/resolutions/:id", rt.resolutionHandler.Get)
	g.POST("/resolutions/:id/choose", rt.resolutionHandler.Choose)
	g.POST("/resolutions/:id/confirm", rt.resolutionHandler.Confirm)
	g.POST("/resolutions/:id/cancel", rt.resolutionHandler.Cancel)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}

package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	resolutiondto "github.com/brieflyhq/briefly/internal/adapter/dto/resolution"
	"github.com/brieflyhq/briefly/internal/usecase/workflow"
)

// Resolution handles the conflict-resolution workflow requests
type Resolution struct {
	workflowService workflow.Service
	logger          *zap.Logger
}

// NewResolution creates a new resolution handler
func NewResolution(workflowService workflow.Service, logger *zap.Logger) *Resolution {
	return &Resolution{
		workflowService: workflowService,
		logger:          logger,
	}
}

// Start runs conflict detection over an opportunity and opens a session
// POST /v1/opportunities/:id/resolutions
func (h *Resolution) Start(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := currentUserID(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	opportunityID, err := pathUUID(c, "id")
	if err != nil {
		return handleError(c, h.logger, err)
	}

	session, err := h.workflowService.StartResolution(ctx, userID, opportunityID)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return handleSuccess(c, h.logger, resolutiondto.FromSession(session))
}

// Get returns the current state of a session
// GET /v1/resolutions/:id
func (h *Resolution) Get(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := currentUserID(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	sessionID, err := pathUUID(c, "id")
	if err != nil {
		return handleError(c, h.logger, err)
	}

	session, err := h.workflowService.GetResolution(ctx, userID, sessionID)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return handleSuccess(c, h.logger, resolutiondto.FromSession(session))
}

// Choose records one resolution
// POST /v1/resolutions/:id/choose
func (h *Resolution) Choose(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := currentUserID(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	sessionID, err := pathUUID(c, "id")
	if err != nil {
		return handleError(c, h.logger, err)
	}

	var req resolutiondto.ChooseRequest
	if err := bindAndValidate(c, &req); err != nil {
		return handleError(c, h.logger, err)
	}

	session, err := h.workflowService.Choose(ctx, userID, sessionID, req.FlagKey, req.Option)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return handleSuccess(c, h.logger, resolutiondto.FromSession(session))
}

// Confirm consolidates under the collected resolutions and writes back
// POST /v1/resolutions/:id/confirm
func (h *Resolution) Confirm(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := currentUserID(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	sessionID, err := pathUUID(c, "id")
	if err != nil {
		return handleError(c, h.logger, err)
	}

	result, err := h.workflowService.Confirm(ctx, userID, sessionID)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return handleSuccess(c, h.logger, &resolutiondto.ConfirmResponse{
		Session:       resolutiondto.FromSession(result.Session),
		Summary:       result.Consolidated.Summary,
		ProposalItems: result.Consolidated.ProposalItems,
	})
}

// Cancel aborts a session and discards its choices
// POST /v1/resolutions/:id/cancel
func (h *Resolution) Cancel(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := currentUserID(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	sessionID, err := pathUUID(c, "id")
	if err != nil {
		return handleError(c, h.logger, err)
	}

	session, err := h.workflowService.Cancel(ctx, userID, sessionID)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return handleSuccess(c, h.logger, resolutiondto.FromSession(session))
}

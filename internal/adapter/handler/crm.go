package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	crmdto "github.com/brieflyhq/briefly/internal/adapter/dto/crm"
	meetingdto "github.com/brieflyhq/briefly/internal/adapter/dto/meeting"
	"github.com/brieflyhq/briefly/internal/usecase/opportunity"
)

// CRM handles client and opportunity requests
type CRM struct {
	opportunityService opportunity.Service
	logger             *zap.Logger
}

// NewCRM creates a new CRM handler
func NewCRM(opportunityService opportunity.Service, logger *zap.Logger) *CRM {
	return &CRM{
		opportunityService: opportunityService,
		logger:             logger,
	}
}

// CreateClient registers a new client account
// POST /v1/clients
func (h *CRM) CreateClient(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := currentUserID(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	var req crmdto.CreateClientRequest
	if err := bindAndValidate(c, &req); err != nil {
		return handleError(c, h.logger, err)
	}

	client, err := h.opportunityService.CreateClient(ctx, userID, req.Name)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return handleSuccess(c, h.logger, crmdto.FromClient(client))
}

// ListClients lists the user's clients
// GET /v1/clients
func (h *CRM) ListClients(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := currentUserID(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	clients, err := h.opportunityService.ListClients(ctx, userID)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return handleSuccess(c, h.logger, crmdto.FromClients(clients))
}

// CreateOpportunity opens a new opportunity under a client
// POST /v1/opportunities
func (h *CRM) CreateOpportunity(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := currentUserID(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	var req crmdto.CreateOpportunityRequest
	if err := bindAndValidate(c, &req); err != nil {
		return handleError(c, h.logger, err)
	}
	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	o, err := h.opportunityService.CreateOpportunity(ctx, userID, clientID, req.Name)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return handleSuccess(c, h.logger, crmdto.FromOpportunity(o))
}

// ListMeetings lists the meetings grouped under an opportunity
// GET /v1/opportunities/:id/meetings
func (h *CRM) ListMeetings(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := currentUserID(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	opportunityID, err := pathUUID(c, "id")
	if err != nil {
		return handleError(c, h.logger, err)
	}

	meetings, err := h.opportunityService.ListMeetings(ctx, userID, opportunityID)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return handleSuccess(c, h.logger, meetingdto.FromEntities(meetings))
}

package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	meetingdto "github.com/brieflyhq/briefly/internal/adapter/dto/meeting"
	"github.com/brieflyhq/briefly/internal/usecase/opportunity"
	"github.com/brieflyhq/briefly/internal/usecase/summarize"
)

// Meeting handles meeting ingestion and summarization requests
type Meeting struct {
	opportunityService opportunity.Service
	summarizer         summarize.Service
	logger             *zap.Logger
}

// NewMeeting creates a new meeting handler
func NewMeeting(opportunityService opportunity.Service, summarizer summarize.Service, logger *zap.Logger) *Meeting {
	return &Meeting{
		opportunityService: opportunityService,
		summarizer:         summarizer,
		logger:             logger,
	}
}

// Ingest stores a new meeting with its transcript
// POST /v1/meetings
func (h *Meeting) Ingest(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := currentUserID(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	var req meetingdto.IngestMeetingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return handleError(c, h.logger, err)
	}

	input := opportunity.IngestInput{
		Title:      req.Title,
		Transcript: req.Transcript,
		CallID:     req.CallID,
	}
	if req.ClientID != nil {
		id, err := uuid.Parse(*req.ClientID)
		if err == nil {
			input.ClientID = &id
		}
	}
	if req.OpportunityID != nil {
		id, err := uuid.Parse(*req.OpportunityID)
		if err == nil {
			input.OpportunityID = &id
		}
	}

	meeting, err := h.opportunityService.IngestMeeting(ctx, userID, input)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return handleSuccess(c, h.logger, meetingdto.FromEntity(meeting))
}

// Get returns one meeting
// GET /v1/meetings/:id
func (h *Meeting) Get(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := currentUserID(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	meetingID, err := pathUUID(c, "id")
	if err != nil {
		return handleError(c, h.logger, err)
	}

	meeting, err := h.opportunityService.GetMeeting(ctx, userID, meetingID)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return handleSuccess(c, h.logger, meetingdto.FromEntity(meeting))
}

// Summarize generates the summary and proposal items for one meeting
// POST /v1/meetings/:id/summarize
func (h *Meeting) Summarize(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := currentUserID(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	meetingID, err := pathUUID(c, "id")
	if err != nil {
		return handleError(c, h.logger, err)
	}

	// Ownership check before spending reasoning-service budget.
	if _, err := h.opportunityService.GetMeeting(ctx, userID, meetingID); err != nil {
		return handleError(c, h.logger, err)
	}

	meeting, err := h.summarizer.Summarize(ctx, meetingID)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return handleSuccess(c, h.logger, meetingdto.FromEntity(meeting))
}

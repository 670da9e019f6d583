package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	crmdto "github.com/brieflyhq/briefly/internal/adapter/dto/crm"
	"github.com/brieflyhq/briefly/internal/usecase/workflow"
)

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Document handles document generation requests
type Document struct {
	workflowService workflow.Service
	logger          *zap.Logger
}

// NewDocument creates a new document handler
func NewDocument(workflowService workflow.Service, logger *zap.Logger) *Document {
	return &Document{
		workflowService: workflowService,
		logger:          logger,
	}
}

// Generate assembles a document over an opportunity and streams it as a
// file download
// POST /v1/opportunities/:id/documents
func (h *Document) Generate(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := currentUserID(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	opportunityID, err := pathUUID(c, "id")
	if err != nil {
		return handleError(c, h.logger, err)
	}

	var req crmdto.GenerateDocumentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return handleError(c, h.logger, err)
	}

	generated, err := h.workflowService.GenerateDocument(ctx, userID, opportunityID, req.Kind, req.Title)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	doc := generated.Document

	h.logger.Info("document download",
		zap.String("request_id", getRequestID(c)),
		zap.String("opportunity_id", opportunityID.String()),
		zap.String("filename", doc.Filename),
	)

	if generated.ArchiveURL != "" {
		c.Response().Header().Set("X-Archive-Url", generated.ArchiveURL)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, doc.Filename))
	return c.Blob(http.StatusOK, docxContentType, doc.Content)
}

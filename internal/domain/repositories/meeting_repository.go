package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/brieflyhq/briefly/internal/domain/entities"
)

// MeetingRepository defines the interface for meeting data access. It is the
// only owner of meeting rows; the workflow and document layers read through
// it and write back consolidated results through WriteConsolidated.
type MeetingRepository interface {
	// Create creates a new meeting
	Create(ctx context.Context, meeting *entities.Meeting) error

	// FindByID finds a meeting by ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error)

	// FindByIDs finds meetings by IDs, preserving the requested order
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.Meeting, error)

	// FindByOpportunityID lists all meetings grouped under an opportunity
	FindByOpportunityID(ctx context.Context, opportunityID uuid.UUID) ([]*entities.Meeting, error)

	// Update updates a meeting
	Update(ctx context.Context, meeting *entities.Meeting) error

	// WriteSummary atomically stores the summarizer output (summary and
	// proposal items together, never one without the other)
	WriteSummary(ctx context.Context, meetingID uuid.UUID, summary string, items []string) error

	// WriteConsolidated atomically stores the consolidated summary and the
	// merged proposal items on one meeting
	WriteConsolidated(ctx context.Context, meetingID uuid.UUID, summary string, items []string) error
}

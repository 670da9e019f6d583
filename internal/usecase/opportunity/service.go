package opportunity

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/brieflyhq/briefly/errors"
	"github.com/brieflyhq/briefly/internal/domain/entities"
	"github.com/brieflyhq/briefly/internal/domain/repositories"
	"github.com/brieflyhq/briefly/internal/infrastructure/external/comms"
)

// TranscriptSource fetches call transcripts from the communications API
type TranscriptSource interface {
	Configured() bool
	FetchTranscript(ctx context.Context, callID string) (*comms.CallRecord, error)
}

// IngestInput describes one meeting to ingest. Either Transcript or CallID
// must be set; CallID pulls the transcript from the communications API.
type IngestInput struct {
	Title         string
	Transcript    string
	CallID        string
	ClientID      *uuid.UUID
	OpportunityID *uuid.UUID
}

// Service manages the client / opportunity / meeting aggregate
type Service interface {
	CreateClient(ctx context.Context, userID uuid.UUID, name string) (*entities.Client, error)
	ListClients(ctx context.Context, userID uuid.UUID) ([]*entities.Client, error)
	CreateOpportunity(ctx context.Context, userID, clientID uuid.UUID, name string) (*entities.Opportunity, error)
	ListMeetings(ctx context.Context, userID, opportunityID uuid.UUID) ([]*entities.Meeting, error)
	IngestMeeting(ctx context.Context, userID uuid.UUID, input IngestInput) (*entities.Meeting, error)
	GetMeeting(ctx context.Context, userID, meetingID uuid.UUID) (*entities.Meeting, error)
}

type service struct {
	clientRepo      repositories.ClientRepository
	opportunityRepo repositories.OpportunityRepository
	meetingRepo     repositories.MeetingRepository
	transcripts     TranscriptSource
	logger          *zap.Logger
}

// NewService constructs the opportunity service
func NewService(
	clientRepo repositories.ClientRepository,
	opportunityRepo repositories.OpportunityRepository,
	meetingRepo repositories.MeetingRepository,
	transcripts TranscriptSource,
	logger *zap.Logger,
) Service {
	return &service{
		clientRepo:      clientRepo,
		opportunityRepo: opportunityRepo,
		meetingRepo:     meetingRepo,
		transcripts:     transcripts,
		logger:          logger,
	}
}

// CreateClient registers a new client account for the user
func (s *service) CreateClient(ctx context.Context, userID uuid.UUID, name string) (*entities.Client, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.ErrInvalidArgument("client name is required")
	}
	client := entities.NewClient(userID, name)
	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// ListClients lists the user's clients
func (s *service) ListClients(ctx context.Context, userID uuid.UUID) ([]*entities.Client, error) {
	return s.clientRepo.FindByOwnerID(ctx, userID)
}

// CreateOpportunity opens a new opportunity under one of the user's clients.
// Opportunities are immutable once created; only their meeting membership
// grows.
func (s *service) CreateOpportunity(ctx context.Context, userID, clientID uuid.UUID, name string) (*entities.Opportunity, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.ErrInvalidArgument("opportunity name is required")
	}
	client, err := s.clientRepo.FindByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client.OwnerID != userID {
		return nil, apperrors.ErrForbidden("client belongs to another user")
	}
	opportunity := entities.NewOpportunity(clientID, name)
	if err := s.opportunityRepo.Create(ctx, opportunity); err != nil {
		return nil, err
	}
	return opportunity, nil
}

// ListMeetings lists the meetings grouped under an opportunity
func (s *service) ListMeetings(ctx context.Context, userID, opportunityID uuid.UUID) ([]*entities.Meeting, error) {
	opportunity, err := s.opportunityRepo.FindByID(ctx, opportunityID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeClient(ctx, userID, opportunity.ClientID); err != nil {
		return nil, err
	}
	return s.meetingRepo.FindByOpportunityID(ctx, opportunityID)
}

// IngestMeeting stores a new meeting with its transcript, either supplied
// inline or pulled from the communications API by call ID.
func (s *service) IngestMeeting(ctx context.Context, userID uuid.UUID, input IngestInput) (*entities.Meeting, error) {
	if input.Transcript == "" && input.CallID == "" {
		return nil, apperrors.ErrInvalidArgument("either transcript or call_id is required")
	}
	if input.Transcript != "" && input.CallID != "" {
		return nil, apperrors.ErrInvalidArgument("transcript and call_id are mutually exclusive")
	}
	if input.OpportunityID != nil {
		opportunity, err := s.opportunityRepo.FindByID(ctx, *input.OpportunityID)
		if err != nil {
			return nil, err
		}
		if err := s.authorizeClient(ctx, userID, opportunity.ClientID); err != nil {
			return nil, err
		}
		if input.ClientID == nil {
			input.ClientID = &opportunity.ClientID
		}
	}
	if input.ClientID != nil {
		if err := s.authorizeClient(ctx, userID, *input.ClientID); err != nil {
			return nil, err
		}
	}

	title := strings.TrimSpace(input.Title)
	transcript := input.Transcript
	source := "upload"
	var externalCallID *string

	if input.CallID != "" {
		if !s.transcripts.Configured() {
			return nil, apperrors.ErrExternalAPIFailed("comms", nil)
		}
		record, err := s.transcripts.FetchTranscript(ctx, input.CallID)
		if err != nil {
			s.logger.Error("transcript pull failed",
				zap.String("call_id", input.CallID),
				zap.Error(err),
			)
			return nil, apperrors.ErrExternalAPIFailed("comms", err)
		}
		transcript = record.Transcript
		source = "comms"
		externalCallID = &record.ID
		if title == "" {
			title = record.Subject
		}
	}
	if title == "" {
		return nil, apperrors.ErrInvalidArgument("meeting title is required")
	}

	meeting := entities.NewMeeting(userID, title)
	meeting.ClientID = input.ClientID
	meeting.OpportunityID = input.OpportunityID
	meeting.Transcript = &transcript
	meeting.Source = source
	meeting.ExternalCallID = externalCallID

	if err := s.meetingRepo.Create(ctx, meeting); err != nil {
		return nil, err
	}

	s.logger.Info("meeting ingested",
		zap.String("meeting_id", meeting.ID.String()),
		zap.String("source", source),
	)
	return meeting, nil
}

// GetMeeting returns one of the user's meetings
func (s *service) GetMeeting(ctx context.Context, userID, meetingID uuid.UUID) (*entities.Meeting, error) {
	meeting, err := s.meetingRepo.FindByID(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	if meeting.UserID != userID {
		return nil, apperrors.ErrForbidden("meeting belongs to another user")
	}
	return meeting, nil
}

func (s *service) authorizeClient(ctx context.Context, userID, clientID uuid.UUID) error {
	client, err := s.clientRepo.FindByID(ctx, clientID)
	if err != nil {
		return err
	}
	if client.OwnerID != userID {
		return apperrors.ErrForbidden("client belongs to another user")
	}
	return nil
}

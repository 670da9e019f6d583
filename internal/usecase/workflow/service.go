package workflow

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	apperrors "github.com/brieflyhq/briefly/errors"
	"github.com/brieflyhq/briefly/internal/domain/entities"
	"github.com/brieflyhq/briefly/internal/domain/repositories"
	"github.com/brieflyhq/briefly/internal/usecase/document"
)

const (
	detectionCacheTTL = 10 * time.Minute
	archiveURLExpiry  = 7 * 24 * time.Hour
)

// DocumentArchive is the slice of object storage the workflow needs
type DocumentArchive interface {
	UploadDocument(ctx context.Context, objectName string, data []byte, contentType string) error
	DocumentURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
}

// ConflictDetector finds contradictions between meeting summaries
type ConflictDetector interface {
	Detect(ctx context.Context, summaries []string) (*entities.DetectionResult, error)
}

// SummaryConsolidator merges summaries under a complete resolution set
type SummaryConsolidator interface {
	Consolidate(ctx context.Context, summaries []string, flags []entities.Flag, resolutions entities.ResolutionSet) (*entities.ProposedSummary, error)
}

// Service orchestrates the resolution workflow for one opportunity:
// detect conflicts, collect the user's resolutions, consolidate, write the
// result back onto the meetings, and assemble documents.
type Service interface {
	StartResolution(ctx context.Context, userID, opportunityID uuid.UUID) (*entities.ResolutionSession, error)
	GetResolution(ctx context.Context, userID, sessionID uuid.UUID) (*entities.ResolutionSession, error)
	Choose(ctx context.Context, userID, sessionID uuid.UUID, flagKey, option string) (*entities.ResolutionSession, error)
	Confirm(ctx context.Context, userID, sessionID uuid.UUID) (*ConfirmResult, error)
	Cancel(ctx context.Context, userID, sessionID uuid.UUID) (*entities.ResolutionSession, error)
	GenerateDocument(ctx context.Context, userID, opportunityID uuid.UUID, kind, title string) (*GeneratedDocument, error)
}

// GeneratedDocument pairs the assembled document with the presigned URL of
// its archived copy. ArchiveURL is empty when archiving was skipped or failed.
type GeneratedDocument struct {
	Document   *document.Document
	ArchiveURL string
}

// ConfirmResult is what a successful confirm returns: the closed session and
// the consolidated summary now persisted on every meeting.
type ConfirmResult struct {
	Session      *entities.ResolutionSession
	Consolidated *entities.ProposedSummary
}

type service struct {
	meetingRepo     repositories.MeetingRepository
	opportunityRepo repositories.OpportunityRepository
	clientRepo      repositories.ClientRepository
	sessionRepo     repositories.ResolutionSessionRepository
	detector        ConflictDetector
	consolidator    SummaryConsolidator
	assembler       *document.Assembler
	archive         DocumentArchive
	detectionCache  *gocache.Cache
	logger          *zap.Logger
}

// NewService constructs the workflow service
func NewService(
	meetingRepo repositories.MeetingRepository,
	opportunityRepo repositories.OpportunityRepository,
	clientRepo repositories.ClientRepository,
	sessionRepo repositories.ResolutionSessionRepository,
	detector ConflictDetector,
	consolidator SummaryConsolidator,
	assembler *document.Assembler,
	archive DocumentArchive,
	logger *zap.Logger,
) Service {
	return &service{
		meetingRepo:     meetingRepo,
		opportunityRepo: opportunityRepo,
		clientRepo:      clientRepo,
		sessionRepo:     sessionRepo,
		detector:        detector,
		consolidator:    consolidator,
		assembler:       assembler,
		archive:         archive,
		detectionCache:  gocache.New(detectionCacheTTL, 2*detectionCacheTTL),
		logger:          logger,
	}
}

// StartResolution runs conflict detection over every meeting of the
// opportunity and opens a collecting session. Every meeting must already be
// summarized; a missing summary is insufficient input, not an empty string.
// Detection results are memoized per summary set so reopening the resolution
// view does not re-run the reasoning service.
func (s *service) StartResolution(ctx context.Context, userID, opportunityID uuid.UUID) (*entities.ResolutionSession, error) {
	opportunity, err := s.opportunityRepo.FindByID(ctx, opportunityID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeOpportunity(ctx, userID, opportunity); err != nil {
		return nil, err
	}

	meetings, err := s.meetingRepo.FindByOpportunityID(ctx, opportunityID)
	if err != nil {
		return nil, err
	}

	meetingIDs := make([]uuid.UUID, 0, len(meetings))
	summaries := make([]string, 0, len(meetings))
	summarized := 0
	for _, m := range meetings {
		meetingIDs = append(meetingIDs, m.ID)
		if m.IsSummarized() {
			summarized++
			summaries = append(summaries, *m.Summary)
		}
	}
	if len(meetings) < 2 || summarized < len(meetings) {
		return nil, apperrors.ErrInsufficientInput(summarized)
	}

	result, err := s.detect(ctx, summaries)
	if err != nil {
		return nil, err
	}

	session := entities.NewResolutionSession(userID, opportunityID, meetingIDs, summaries, result)
	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Info("resolution session opened",
		zap.String("session_id", session.ID.String()),
		zap.String("opportunity_id", opportunityID.String()),
		zap.Int("flags", len(session.Flags)),
	)
	return session, nil
}

func (s *service) detect(ctx context.Context, summaries []string) (*entities.DetectionResult, error) {
	key := summarySetKey(summaries)
	if cached, ok := s.detectionCache.Get(key); ok {
		return cached.(*entities.DetectionResult), nil
	}
	result, err := s.detector.Detect(ctx, summaries)
	if err != nil {
		return nil, err
	}
	s.detectionCache.Set(key, result, gocache.DefaultExpiration)
	return result, nil
}

// GetResolution returns the current state of a session
func (s *service) GetResolution(ctx context.Context, userID, sessionID uuid.UUID) (*entities.ResolutionSession, error) {
	return s.loadSession(ctx, userID, sessionID)
}

// Choose records one resolution and persists the session
func (s *service) Choose(ctx context.Context, userID, sessionID uuid.UUID, flagKey, option string) (*entities.ResolutionSession, error) {
	session, err := s.loadSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.Choose(flagKey, option); err != nil {
		return nil, err
	}
	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Confirm closes the session: consolidate under the confirmed resolution
// set, write the result back onto every meeting, then persist the completed
// session. Consolidation and write-back failures leave the stored session
// collecting, so the user keeps their choices and can retry.
func (s *service) Confirm(ctx context.Context, userID, sessionID uuid.UUID) (*ConfirmResult, error) {
	session, err := s.loadSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	resolutions, err := session.Confirm()
	if err != nil {
		return nil, err
	}

	consolidated, err := s.consolidator.Consolidate(ctx, session.Summaries, session.Flags, resolutions)
	if err != nil {
		return nil, err
	}

	for _, meetingID := range session.MeetingIDs {
		if err := s.meetingRepo.WriteConsolidated(ctx, meetingID, consolidated.Summary, consolidated.ProposalItems); err != nil {
			s.logger.Error("consolidated write-back failed",
				zap.String("session_id", sessionID.String()),
				zap.String("meeting_id", meetingID.String()),
				zap.Error(err),
			)
			return nil, apperrors.ErrConsolidationFailed(err)
		}
	}

	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Info("resolution confirmed",
		zap.String("session_id", sessionID.String()),
		zap.Int("meetings", len(session.MeetingIDs)),
	)
	return &ConfirmResult{Session: session, Consolidated: consolidated}, nil
}

// Cancel aborts the session and discards its choices
func (s *service) Cancel(ctx context.Context, userID, sessionID uuid.UUID) (*entities.ResolutionSession, error) {
	session, err := s.loadSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.Cancel(); err != nil {
		return nil, err
	}
	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// GenerateDocument assembles a document over the opportunity's summarized
// meetings, archives a copy, and returns the bytes for download together
// with the archive URL when the copy landed.
func (s *service) GenerateDocument(ctx context.Context, userID, opportunityID uuid.UUID, kind, title string) (*GeneratedDocument, error) {
	opportunity, err := s.opportunityRepo.FindByID(ctx, opportunityID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeOpportunity(ctx, userID, opportunity); err != nil {
		return nil, err
	}
	client, err := s.clientRepo.FindByID(ctx, opportunity.ClientID)
	if err != nil {
		return nil, err
	}

	meetings, err := s.meetingRepo.FindByOpportunityID(ctx, opportunityID)
	if err != nil {
		return nil, err
	}

	sections := make([]document.Section, 0, len(meetings))
	for _, m := range meetings {
		if !m.IsSummarized() {
			continue
		}
		sections = append(sections, document.Section{
			Summary:       *m.Summary,
			ProposalItems: m.ProposalItems,
		})
	}

	if strings.TrimSpace(title) == "" {
		title = opportunity.Name
	}
	doc, err := s.assembler.Assemble(document.Kind(kind), title, client.Name, sections)
	if err != nil {
		return nil, err
	}

	generated := &GeneratedDocument{Document: doc}
	objectName := fmt.Sprintf("documents/%s/%s", opportunityID, doc.Filename)
	if err := s.archive.UploadDocument(ctx, objectName, doc.Content,
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document"); err != nil {
		// The download still succeeds; the archive copy is best effort.
		s.logger.Warn("document archive upload failed",
			zap.String("object", objectName),
			zap.Error(err),
		)
		return generated, nil
	}

	url, err := s.archive.DocumentURL(ctx, objectName, archiveURLExpiry)
	if err != nil {
		s.logger.Warn("document archive URL failed",
			zap.String("object", objectName),
			zap.Error(err),
		)
		return generated, nil
	}
	generated.ArchiveURL = url

	return generated, nil
}

func (s *service) loadSession(ctx context.Context, userID, sessionID uuid.UUID) (*entities.ResolutionSession, error) {
	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, apperrors.ErrForbidden("resolution session belongs to another user")
	}
	return session, nil
}

func (s *service) authorizeOpportunity(ctx context.Context, userID uuid.UUID, opportunity *entities.Opportunity) error {
	client, err := s.clientRepo.FindByID(ctx, opportunity.ClientID)
	if err != nil {
		return err
	}
	if client.OwnerID != userID {
		return apperrors.ErrForbidden("opportunity belongs to another user")
	}
	return nil
}

// summarySetKey hashes an ordered summary set for detection memoization
func summarySetKey(summaries []string) string {
	h := sha256.New()
	for _, s := range summaries {
		h.Write([]byte(s))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

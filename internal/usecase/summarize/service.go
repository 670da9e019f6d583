package summarize

import (
	"context"
	"fmt"
	"strings"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/brieflyhq/briefly/errors"
	"github.com/brieflyhq/briefly/internal/domain/entities"
	"github.com/brieflyhq/briefly/internal/domain/repositories"
)

// ReasoningClient is the slice of the LLM client the summarizer needs
type ReasoningClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Service summarizes meeting transcripts
type Service interface {
	Summarize(ctx context.Context, meetingID uuid.UUID) (*entities.Meeting, error)
}

type service struct {
	meetingRepo repositories.MeetingRepository
	llm         ReasoningClient
	parser      *Parser
	logger      *zap.Logger
	semaphore   chan struct{} // limit concurrent reasoning-service calls
}

// NewService constructs a summarizer service
func NewService(meetingRepo repositories.MeetingRepository, llm ReasoningClient, logger *zap.Logger) Service {
	return &service{
		meetingRepo: meetingRepo,
		llm:         llm,
		parser:      NewParser(),
		logger:      logger,
		semaphore:   make(chan struct{}, 2), // Max 2 concurrent calls
	}
}

// Summarize generates and persists the summary and proposal items for one
// meeting. Summary and items land in a single atomic update, so readers
// never observe a half-summarized meeting. Re-summarizing overwrites the
// previous result.
func (s *service) Summarize(ctx context.Context, meetingID uuid.UUID) (*entities.Meeting, error) {
	meeting, err := s.meetingRepo.FindByID(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	if !meeting.HasTranscript() {
		return nil, apperrors.ErrTranscriptMissing(meetingID.String())
	}

	select {
	case s.semaphore <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	defer func() { <-s.semaphore }()

	prompt := buildSummaryPrompt(meeting.Title, *meeting.Transcript)

	var result *entities.ProposedSummary
	operation := func() error {
		content, err := s.llm.Complete(ctx, prompt)
		if err != nil {
			return err // transient, retry
		}
		parsed, err := s.parser.Parse(content)
		if err != nil {
			return backoff.Permanent(err)
		}
		result = parsed
		return nil
	}

	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.MaxElapsedTime = 2 * time.Minute
	if err := backoff.Retry(operation, backoff.WithContext(expBackoff, ctx)); err != nil {
		s.logger.Error("summarization failed",
			zap.String("meeting_id", meetingID.String()),
			zap.Error(err),
		)
		return nil, apperrors.ErrSummaryFailed(err)
	}

	if err := s.meetingRepo.WriteSummary(ctx, meetingID, result.Summary, result.ProposalItems); err != nil {
		return nil, err
	}

	s.logger.Info("meeting summarized",
		zap.String("meeting_id", meetingID.String()),
		zap.Int("proposal_items", len(result.ProposalItems)),
	)

	meeting.Summary = &result.Summary
	meeting.ProposalItems = result.ProposalItems
	return meeting, nil
}

func buildSummaryPrompt(title, transcript string) string {
	var b strings.Builder
	b.WriteString("You are a sales-meeting analyst. Summarize the following call transcript.\n\n")
	fmt.Fprintf(&b, "Meeting: %s\n\nTranscript:\n%s\n\n", title, transcript)
	b.WriteString(`Respond with JSON only, no prose, in exactly this shape:
{
  "summary": "<3-6 sentence overview of what was discussed and agreed>",
  "proposal_items": ["<one concrete commitment, deliverable or agreed term per entry>"]
}
Only include proposal_items that were explicitly discussed. Use the language of the transcript.`)
	return b.String()
}

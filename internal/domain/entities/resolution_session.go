package entities

import (
	"time"

	"github.com/google/uuid"

	apperrors "github.com/brieflyhq/briefly/errors"
)

// SessionState is the state of a resolution session
type SessionState string

const (
	SessionStateCollecting SessionState = "collecting"
	SessionStateComplete   SessionState = "complete"
	SessionStateCancelled  SessionState = "cancelled"
)

// ResolutionSession is one human-in-the-loop conflict-resolution attempt for
// an opportunity. It is persisted between requests so a page reload resumes
// progress. A session assumes a single writer; concurrent actors must be
// serialized by the caller.
//
// States: collecting -> complete (confirm) or cancelled (cancel). Terminal
// states reject further transitions. The session never emits a resolution
// set that is not complete with respect to its flags.
type ResolutionSession struct {
	ID            uuid.UUID     `json:"id"`
	UserID        uuid.UUID     `json:"user_id"`
	OpportunityID uuid.UUID     `json:"opportunity_id"`
	MeetingIDs    []uuid.UUID   `json:"meeting_ids"`
	Summaries     []string      `json:"summaries"`
	Flags         []Flag        `json:"flags"`
	Choices       ResolutionSet `json:"choices"`

	// DefaultSummary is the detector's own best-effort resolution. Shown to
	// the user as a hint, never persisted without confirm.
	DefaultSummary string `json:"default_summary,omitempty"`

	State     SessionState `json:"state"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// NewResolutionSession opens a collecting session over the given detection
// result.
func NewResolutionSession(userID, opportunityID uuid.UUID, meetingIDs []uuid.UUID, summaries []string, result *DetectionResult) *ResolutionSession {
	now := time.Now()
	return &ResolutionSession{
		ID:             uuid.New(),
		UserID:         userID,
		OpportunityID:  opportunityID,
		MeetingIDs:     meetingIDs,
		Summaries:      summaries,
		Flags:          result.Flags,
		Choices:        make(ResolutionSet),
		DefaultSummary: result.ProposedSummary,
		State:          SessionStateCollecting,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// FlagByKey returns the flag with the given key, if present
func (s *ResolutionSession) FlagByKey(key string) (Flag, bool) {
	for _, f := range s.Flags {
		if f.Key == key {
			return f, true
		}
	}
	return Flag{}, false
}

// IsComplete reports whether every flag has exactly one recorded choice
func (s *ResolutionSession) IsComplete() bool {
	return s.Choices.IsCompleteFor(s.Flags)
}

// Choose records (or overwrites) the resolution for one flag. Valid only
// while collecting.
func (s *ResolutionSession) Choose(flagKey, option string) error {
	if s.State != SessionStateCollecting {
		return apperrors.ErrSessionClosed(string(s.State))
	}
	flag, ok := s.FlagByKey(flagKey)
	if !ok {
		return apperrors.ErrUnknownFlag(flagKey)
	}
	if !flag.HasOption(option) {
		return apperrors.ErrInvalidOption(flagKey, option)
	}
	if s.Choices == nil {
		s.Choices = make(ResolutionSet)
	}
	s.Choices[flagKey] = option
	s.UpdatedAt = time.Now()
	return nil
}

// Confirm transitions the session to complete and emits the finished
// resolution set. It fails without any state change while choices are
// missing, so a failed confirm leaves the session collecting.
func (s *ResolutionSession) Confirm() (ResolutionSet, error) {
	if s.State != SessionStateCollecting {
		return nil, apperrors.ErrSessionClosed(string(s.State))
	}
	if !s.IsComplete() {
		return nil, apperrors.ErrIncompleteResolution(s.Choices.MissingFor(s.Flags))
	}
	s.State = SessionStateComplete
	s.UpdatedAt = time.Now()

	resolved := make(ResolutionSet, len(s.Choices))
	for k, v := range s.Choices {
		resolved[k] = v
	}
	return resolved, nil
}

// Cancel aborts the session and discards all partial choices
func (s *ResolutionSession) Cancel() error {
	if s.State != SessionStateCollecting {
		return apperrors.ErrSessionClosed(string(s.State))
	}
	s.State = SessionStateCancelled
	s.Choices = make(ResolutionSet)
	s.UpdatedAt = time.Now()
	return nil
}

package resolution

import (
	"time"

	"github.com/brieflyhq/briefly/internal/domain/entities"
)

// ChooseRequest records one resolution
type ChooseRequest struct {
	FlagKey string `json:"flag_key" validate:"required"`
	Option  string `json:"option" validate:"required"`
}

// FlagResponse is the API shape of one detected conflict
type FlagResponse struct {
	Key         string   `json:"key"`
	Description string   `json:"description"`
	Options     []string `json:"options"`
	Chosen      *string  `json:"chosen,omitempty"`
}

// SessionResponse is the API shape of a resolution session
type SessionResponse struct {
	ID             string         `json:"id"`
	OpportunityID  string         `json:"opportunity_id"`
	State          string         `json:"state"`
	Flags          []FlagResponse `json:"flags"`
	DefaultSummary string         `json:"default_summary,omitempty"`
	Complete       bool           `json:"complete"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// ConfirmResponse is the result of a confirmed resolution
type ConfirmResponse struct {
	Session       *SessionResponse `json:"session"`
	Summary       string           `json:"summary"`
	ProposalItems []string         `json:"proposal_items"`
}

// FromSession converts a resolution session to its API shape
func FromSession(s *entities.ResolutionSession) *SessionResponse {
	flags := make([]FlagResponse, 0, len(s.Flags))
	for _, f := range s.Flags {
		fr := FlagResponse{
			Key:         f.Key,
			Description: f.Description,
			Options:     f.Options,
		}
		if chosen, ok := s.Choices[f.Key]; ok {
			c := chosen
			fr.Chosen = &c
		}
		flags = append(flags, fr)
	}

	return &SessionResponse{
		ID:             s.ID.String(),
		OpportunityID:  s.OpportunityID.String(),
		State:          string(s.State),
		Flags:          flags,
		DefaultSummary: s.DefaultSummary,
		Complete:       s.IsComplete(),
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

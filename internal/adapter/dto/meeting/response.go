package meeting

import (
	"time"

	"github.com/brieflyhq/briefly/internal/domain/entities"
)

// MeetingResponse is the API shape of one meeting
type MeetingResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Source        string    `json:"source"`
	ClientID      *string   `json:"client_id,omitempty"`
	OpportunityID *string   `json:"opportunity_id,omitempty"`
	HasTranscript bool      `json:"has_transcript"`
	Summary       *string   `json:"summary,omitempty"`
	ProposalItems []string  `json:"proposal_items,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// FromEntity converts a meeting entity to its API shape
func FromEntity(m *entities.Meeting) *MeetingResponse {
	resp := &MeetingResponse{
		ID:            m.ID.String(),
		Title:         m.Title,
		Source:        m.Source,
		HasTranscript: m.HasTranscript(),
		Summary:       m.Summary,
		ProposalItems: m.ProposalItems,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	if m.ClientID != nil {
		s := m.ClientID.String()
		resp.ClientID = &s
	}
	if m.OpportunityID != nil {
		s := m.OpportunityID.String()
		resp.OpportunityID = &s
	}
	return resp
}

// FromEntities converts a list of meetings
func FromEntities(meetings []*entities.Meeting) []*MeetingResponse {
	out := make([]*MeetingResponse, 0, len(meetings))
	for _, m := range meetings {
		out = append(out, FromEntity(m))
	}
	return out
}

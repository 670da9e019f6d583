package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Meeting is the stored record for one ingested call or meeting. Transcript,
// summary and proposal items are filled in progressively: the transcript at
// ingestion, summary and items by the summarizer, and summary and items again
// by the consolidator when the meeting takes part in a multi-meeting
// resolution. Meetings are never deleted in the normal flow.
type Meeting struct {
	ID            uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID        uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;index"`
	ClientID      *uuid.UUID `json:"client_id,omitempty" gorm:"type:uuid;index"`
	OpportunityID *uuid.UUID `json:"opportunity_id,omitempty" gorm:"type:uuid;index"`

	Title          string  `json:"title" gorm:"type:varchar(255);not null"`
	Source         string  `json:"source" gorm:"type:varchar(50);default:'upload'"` // upload | comms
	ExternalCallID *string `json:"external_call_id,omitempty" gorm:"type:varchar(255);index"`

	Transcript    *string  `json:"transcript,omitempty" gorm:"type:text"`
	Summary       *string  `json:"summary,omitempty" gorm:"type:text"`
	ProposalItems []string `json:"proposal_items,omitempty" gorm:"type:jsonb;serializer:json"`

	Metadata datatypes.JSON `json:"metadata,omitempty" gorm:"type:jsonb;default:'{}'"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Meeting) TableName() string {
	return "meetings"
}

// NewMeeting creates a new meeting record with an empty summary
func NewMeeting(userID uuid.UUID, title string) *Meeting {
	return &Meeting{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     title,
		Source:    "upload",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// HasTranscript reports whether transcript text has been ingested
func (m *Meeting) HasTranscript() bool {
	return m.Transcript != nil && *m.Transcript != ""
}

// IsSummarized reports whether the summarizer has produced a summary
func (m *Meeting) IsSummarized() bool {
	return m.Summary != nil && *m.Summary != ""
}

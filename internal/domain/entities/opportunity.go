package entities

import (
	"time"

	"github.com/google/uuid"
)

// Opportunity groups the meetings of one client for joint document
// generation. Opportunities are immutable once created; only their meeting
// membership grows as new calls are ingested.
type Opportunity struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ClientID  uuid.UUID `json:"client_id" gorm:"type:uuid;not null;index"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for GORM
func (Opportunity) TableName() string {
	return "opportunities"
}

// NewOpportunity creates a new opportunity
func NewOpportunity(clientID uuid.UUID, name string) *Opportunity {
	return &Opportunity{
		ID:        uuid.New(),
		ClientID:  clientID,
		Name:      name,
		CreatedAt: time.Now(),
	}
}

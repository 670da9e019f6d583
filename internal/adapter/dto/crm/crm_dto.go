package crm

import (
	"time"

	"github.com/brieflyhq/briefly/internal/domain/entities"
)

// CreateClientRequest registers a new client account
type CreateClientRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
}

// CreateOpportunityRequest opens a new opportunity under a client
type CreateOpportunityRequest struct {
	ClientID string `json:"client_id" validate:"required,uuid"`
	Name     string `json:"name" validate:"required,min=1,max=255"`
}

// GenerateDocumentRequest asks for a document over an opportunity
type GenerateDocumentRequest struct {
	Kind  string `json:"kind" validate:"required,oneof=proposal contract"`
	Title string `json:"title" validate:"omitempty,max=255"`
}

// ClientResponse is the API shape of a client
type ClientResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// OpportunityResponse is the API shape of an opportunity
type OpportunityResponse struct {
	ID        string    `json:"id"`
	ClientID  string    `json:"client_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// FromClient converts a client entity
func FromClient(c *entities.Client) *ClientResponse {
	return &ClientResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
	}
}

// FromClients converts a list of clients
func FromClients(clients []*entities.Client) []*ClientResponse {
	out := make([]*ClientResponse, 0, len(clients))
	for _, c := range clients {
		out = append(out, FromClient(c))
	}
	return out
}

// FromOpportunity converts an opportunity entity
func FromOpportunity(o *entities.Opportunity) *OpportunityResponse {
	return &OpportunityResponse{
		ID:        o.ID.String(),
		ClientID:  o.ClientID.String(),
		Name:      o.Name,
		CreatedAt: o.CreatedAt,
	}
}

package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/brieflyhq/briefly/internal/domain/entities"
)

// OpportunityRepository defines the interface for opportunity data access
type OpportunityRepository interface {
	// Create creates a new opportunity
	Create(ctx context.Context, opportunity *entities.Opportunity) error

	// FindByID finds an opportunity by ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Opportunity, error)

	// FindByClientID lists opportunities for a client
	FindByClientID(ctx context.Context, clientID uuid.UUID) ([]*entities.Opportunity, error)
}

// ClientRepository defines the interface for client data access
type ClientRepository interface {
	// Create creates a new client
	Create(ctx context.Context, client *entities.Client) error

	// FindByID finds a client by ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Client, error)

	// FindByOwnerID lists clients owned by a user
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*entities.Client, error)
}

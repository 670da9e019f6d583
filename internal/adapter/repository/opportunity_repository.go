package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brieflyhq/briefly/internal/domain/entities"
	"github.com/brieflyhq/briefly/internal/domain/repositories"
)

// OpportunityRepository implements repositories.OpportunityRepository using GORM
type OpportunityRepository struct {
	db *gorm.DB
}

// NewOpportunityRepository creates a new opportunity repository
func NewOpportunityRepository(db *gorm.DB) repositories.OpportunityRepository {
	return &OpportunityRepository{db: db}
}

// Create creates a new opportunity
func (r *OpportunityRepository) Create(ctx context.Context, opportunity *entities.Opportunity) error {
	if err := r.db.WithContext(ctx).Create(opportunity).Error; err != nil {
		return err
	}
	return nil
}

// FindByID finds an opportunity by ID
func (r *OpportunityRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Opportunity, error) {
	var opportunity entities.Opportunity
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&opportunity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrOpportunityNotFound
		}
		return nil, err
	}
	return &opportunity, nil
}

// FindByClientID lists opportunities for a client, newest first
func (r *OpportunityRepository) FindByClientID(ctx context.Context, clientID uuid.UUID) ([]*entities.Opportunity, error) {
	var opportunities []*entities.Opportunity
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&opportunities).Error
	if err != nil {
		return nil, err
	}
	return opportunities, nil
}

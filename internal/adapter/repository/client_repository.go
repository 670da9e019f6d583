package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brieflyhq/briefly/internal/domain/entities"
	"github.com/brieflyhq/briefly/internal/domain/repositories"
)

// ClientRepository implements repositories.ClientRepository using GORM
type ClientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a new client repository
func NewClientRepository(db *gorm.DB) repositories.ClientRepository {
	return &ClientRepository{db: db}
}

// Create creates a new client
func (r *ClientRepository) Create(ctx context.Context, client *entities.Client) error {
	if err := r.db.WithContext(ctx).Create(client).Error; err != nil {
		return err
	}
	return nil
}

// FindByID finds a client by ID
func (r *ClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Client, error) {
	var client entities.Client
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&client).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrClientNotFound
		}
		return nil, err
	}
	return &client, nil
}

// FindByOwnerID lists clients owned by a user, newest first
func (r *ClientRepository) FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*entities.Client, error) {
	var clients []*entities.Client
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&clients).Error
	if err != nil {
		return nil, err
	}
	return clients, nil
}

package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/brieflyhq/briefly/internal/domain/entities"
	"github.com/brieflyhq/briefly/internal/domain/repositories"
)

const (
	resolutionSessionKeyPrefix = "resolution:session:"
	resolutionSessionTTL       = 24 * time.Hour
)

// ResolutionSessionRepository stores resolution sessions in Redis as JSON.
// Sessions expire after 24 hours; an abandoned resolution is simply dropped.
type ResolutionSessionRepository struct {
	client *redis.Client
}

// NewResolutionSessionRepository creates a new resolution session repository
func NewResolutionSessionRepository(client *redis.Client) repositories.ResolutionSessionRepository {
	return &ResolutionSessionRepository{client: client}
}

// Save stores or overwrites a session, resetting its TTL
func (r *ResolutionSessionRepository) Save(ctx context.Context, session *entities.ResolutionSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal resolution session: %w", err)
	}
	return r.client.Set(ctx, sessionKey(session.ID), data, resolutionSessionTTL).Err()
}

// FindByID finds a session by ID
func (r *ResolutionSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.ResolutionSession, error) {
	data, err := r.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, entities.ErrResolutionSessionNotFound
		}
		return nil, err
	}
	var session entities.ResolutionSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal resolution session: %w", err)
	}
	return &session, nil
}

// Delete removes a session
func (r *ResolutionSessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.client.Del(ctx, sessionKey(id)).Err()
}

func sessionKey(id uuid.UUID) string {
	return resolutionSessionKeyPrefix + id.String()
}

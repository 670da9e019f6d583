package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/brieflyhq/briefly/internal/domain/entities"
)

// ResolutionSessionRepository persists resolution sessions between requests
// so a page reload resumes a half-finished resolution instead of losing it.
type ResolutionSessionRepository interface {
	// Save stores or overwrites a session
	Save(ctx context.Context, session *entities.ResolutionSession) error

	// FindByID finds a session by ID, returning nil when absent or expired
	FindByID(ctx context.Context, id uuid.UUID) (*entities.ResolutionSession, error)

	// Delete removes a session
	Delete(ctx context.Context, id uuid.UUID) error
}

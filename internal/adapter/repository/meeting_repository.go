package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/brieflyhq/briefly/internal/domain/entities"
	"github.com/brieflyhq/briefly/internal/domain/repositories"
)

// MeetingRepository handles meeting data operations
type MeetingRepository struct {
	db *gorm.DB
}

// NewMeetingRepository creates a new meeting repository
func NewMeetingRepository(db *gorm.DB) repositories.MeetingRepository {
	return &MeetingRepository{db: db}
}

// Create creates a new meeting
func (r *MeetingRepository) Create(ctx context.Context, meeting *entities.Meeting) error {
	if meeting == nil {
		return errors.New("meeting cannot be nil")
	}
	return r.db.WithContext(ctx).Create(meeting).Error
}

// FindByID finds a meeting by ID
func (r *MeetingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	var meeting entities.Meeting
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&meeting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrMeetingNotFound
		}
		return nil, err
	}
	return &meeting, nil
}

// FindByIDs finds meetings by IDs, preserving the requested order
func (r *MeetingRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.Meeting, error) {
	var meetings []*entities.Meeting
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&meetings).Error; err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*entities.Meeting, len(meetings))
	for _, m := range meetings {
		byID[m.ID] = m
	}

	ordered := make([]*entities.Meeting, 0, len(ids))
	for _, id := range ids {
		m, ok := byID[id]
		if !ok {
			return nil, entities.ErrMeetingNotFound
		}
		ordered = append(ordered, m)
	}
	return ordered, nil
}

// FindByOpportunityID lists all meetings grouped under an opportunity
func (r *MeetingRepository) FindByOpportunityID(ctx context.Context, opportunityID uuid.UUID) ([]*entities.Meeting, error) {
	var meetings []*entities.Meeting
	if err := r.db.WithContext(ctx).
		Where("opportunity_id = ?", opportunityID).
		Order("created_at asc").
		Find(&meetings).Error; err != nil {
		return nil, err
	}
	return meetings, nil
}

// Update updates a meeting
func (r *MeetingRepository) Update(ctx context.Context, meeting *entities.Meeting) error {
	if meeting == nil {
		return errors.New("meeting cannot be nil")
	}
	return r.db.WithContext(ctx).Save(meeting).Error
}

// WriteSummary atomically stores the summarizer output. Summary and items
// land in one UPDATE so a meeting is never observed half-summarized.
func (r *MeetingRepository) WriteSummary(ctx context.Context, meetingID uuid.UUID, summary string, items []string) error {
	return r.writeSummaryAndItems(ctx, meetingID, summary, items)
}

// WriteConsolidated atomically stores the consolidated summary and items
func (r *MeetingRepository) WriteConsolidated(ctx context.Context, meetingID uuid.UUID, summary string, items []string) error {
	return r.writeSummaryAndItems(ctx, meetingID, summary, items)
}

func (r *MeetingRepository) writeSummaryAndItems(ctx context.Context, meetingID uuid.UUID, summary string, items []string) error {
	if items == nil {
		items = make([]string, 0)
	}
	result := r.db.WithContext(ctx).
		Model(&entities.Meeting{}).
		Where("id = ?", meetingID).
		Updates(map[string]interface{}{
			"summary":        summary,
			"proposal_items": jsonStrings(items),
			"updated_at":     time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entities.ErrMeetingNotFound
	}
	return nil
}

func jsonStrings(items []string) datatypes.JSON {
	b, _ := json.Marshal(items)
	return datatypes.JSON(b)
}

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brieflyhq/briefly/internal/domain/entities"
)

func newTestSessionRepo(t *testing.T) (*ResolutionSessionRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return &ResolutionSessionRepository{client: client}, mr
}

func testDetectionResult() *entities.DetectionResult {
	return &entities.DetectionResult{
		Flags: []entities.Flag{
			{
				Key:         "budget",
				Description: "Quoted budget differs between calls",
				Options:     []string{"$40k", "$55k"},
			},
		},
		ProposedSummary: "Budget settled at $55k.",
	}
}

func TestResolutionSessionRepository_SaveAndFind(t *testing.T) {
	repo, _ := newTestSessionRepo(t)
	ctx := context.Background()

	session := entities.NewResolutionSession(
		uuid.New(), uuid.New(),
		[]uuid.UUID{uuid.New(), uuid.New()},
		[]string{"summary one", "summary two"},
		testDetectionResult(),
	)
	require.NoError(t, repo.Save(ctx, session))

	got, err := repo.FindByID(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, got.ID)
	assert.Equal(t, entities.SessionStateCollecting, got.State)
	assert.Equal(t, session.MeetingIDs, got.MeetingIDs)
	assert.Len(t, got.Flags, 1)
	assert.Equal(t, "budget", got.Flags[0].Key)
}

func TestResolutionSessionRepository_FindMissing(t *testing.T) {
	repo, _ := newTestSessionRepo(t)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, entities.ErrResolutionSessionNotFound)
}

func TestResolutionSessionRepository_SavePreservesChoices(t *testing.T) {
	repo, _ := newTestSessionRepo(t)
	ctx := context.Background()

	session := entities.NewResolutionSession(
		uuid.New(), uuid.New(),
		[]uuid.UUID{uuid.New(), uuid.New()},
		[]string{"a", "b"},
		testDetectionResult(),
	)
	require.NoError(t, session.Choose("budget", "$55k"))
	require.NoError(t, repo.Save(ctx, session))

	got, err := repo.FindByID(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, "$55k", got.Choices["budget"])
	assert.True(t, got.IsComplete())
}

func TestResolutionSessionRepository_Delete(t *testing.T) {
	repo, _ := newTestSessionRepo(t)
	ctx := context.Background()

	session := entities.NewResolutionSession(
		uuid.New(), uuid.New(),
		[]uuid.UUID{uuid.New()},
		[]string{"a"},
		testDetectionResult(),
	)
	require.NoError(t, repo.Save(ctx, session))
	require.NoError(t, repo.Delete(ctx, session.ID))

	_, err := repo.FindByID(ctx, session.ID)
	assert.ErrorIs(t, err, entities.ErrResolutionSessionNotFound)
}

func TestResolutionSessionRepository_TTL(t *testing.T) {
	repo, mr := newTestSessionRepo(t)
	ctx := context.Background()

	session := entities.NewResolutionSession(
		uuid.New(), uuid.New(),
		[]uuid.UUID{uuid.New()},
		[]string{"a"},
		testDetectionResult(),
	)
	require.NoError(t, repo.Save(ctx, session))

	mr.FastForward(resolutionSessionTTL + time.Minute)

	_, err := repo.FindByID(ctx, session.ID)
	assert.ErrorIs(t, err, entities.ErrResolutionSessionNotFound)
}

package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/brieflyhq/briefly/errors"
	"github.com/brieflyhq/briefly/internal/domain/entities"
	"github.com/brieflyhq/briefly/internal/usecase/document"
)

type fakeMeetingRepo struct {
	meetings   map[uuid.UUID]*entities.Meeting
	order      []uuid.UUID
	writeErr   error
	writeCalls int
}

func newFakeMeetingRepo() *fakeMeetingRepo {
	return &fakeMeetingRepo{meetings: make(map[uuid.UUID]*entities.Meeting)}
}

func (f *fakeMeetingRepo) add(m *entities.Meeting) {
	f.meetings[m.ID] = m
	f.order = append(f.order, m.ID)
}

func (f *fakeMeetingRepo) Create(_ context.Context, m *entities.Meeting) error {
	f.add(m)
	return nil
}

func (f *fakeMeetingRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.Meeting, error) {
	m, ok := f.meetings[id]
	if !ok {
		return nil, entities.ErrMeetingNotFound
	}
	return m, nil
}

func (f *fakeMeetingRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*entities.Meeting, error) {
	out := make([]*entities.Meeting, 0, len(ids))
	for _, id := range ids {
		m, ok := f.meetings[id]
		if !ok {
			return nil, entities.ErrMeetingNotFound
		}
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeMeetingRepo) FindByOpportunityID(_ context.Context, opportunityID uuid.UUID) ([]*entities.Meeting, error) {
	out := make([]*entities.Meeting, 0)
	for _, id := range f.order {
		m := f.meetings[id]
		if m.OpportunityID != nil && *m.OpportunityID == opportunityID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMeetingRepo) Update(_ context.Context, m *entities.Meeting) error {
	f.meetings[m.ID] = m
	return nil
}

func (f *fakeMeetingRepo) WriteSummary(_ context.Context, meetingID uuid.UUID, summary string, items []string) error {
	m, ok := f.meetings[meetingID]
	if !ok {
		return entities.ErrMeetingNotFound
	}
	m.Summary = &summary
	m.ProposalItems = items
	return nil
}

func (f *fakeMeetingRepo) WriteConsolidated(ctx context.Context, meetingID uuid.UUID, summary string, items []string) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.writeCalls++
	return f.WriteSummary(ctx, meetingID, summary, items)
}

type fakeOpportunityRepo struct {
	opportunities map[uuid.UUID]*entities.Opportunity
}

func (f *fakeOpportunityRepo) Create(_ context.Context, o *entities.Opportunity) error {
	f.opportunities[o.ID] = o
	return nil
}

func (f *fakeOpportunityRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.Opportunity, error) {
	o, ok := f.opportunities[id]
	if !ok {
		return nil, entities.ErrOpportunityNotFound
	}
	return o, nil
}

func (f *fakeOpportunityRepo) FindByClientID(_ context.Context, clientID uuid.UUID) ([]*entities.Opportunity, error) {
	out := make([]*entities.Opportunity, 0)
	for _, o := range f.opportunities {
		if o.ClientID == clientID {
			out = append(out, o)
		}
	}
	return out, nil
}

type fakeClientRepo struct {
	clients map[uuid.UUID]*entities.Client
}

func (f *fakeClientRepo) Create(_ context.Context, c *entities.Client) error {
	f.clients[c.ID] = c
	return nil
}

func (f *fakeClientRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.Client, error) {
	c, ok := f.clients[id]
	if !ok {
		return nil, entities.ErrClientNotFound
	}
	return c, nil
}

func (f *fakeClientRepo) FindByOwnerID(_ context.Context, ownerID uuid.UUID) ([]*entities.Client, error) {
	out := make([]*entities.Client, 0)
	for _, c := range f.clients {
		if c.OwnerID == ownerID {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeSessionRepo struct {
	sessions map[uuid.UUID][]byte
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[uuid.UUID][]byte)}
}

// Round-trips through JSON the way the Redis store does, so stored state is
// decoupled from the caller's in-memory session.
func (f *fakeSessionRepo) Save(_ context.Context, s *entities.ResolutionSession) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	f.sessions[s.ID] = data
	return nil
}

func (f *fakeSessionRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.ResolutionSession, error) {
	data, ok := f.sessions[id]
	if !ok {
		return nil, entities.ErrResolutionSessionNotFound
	}
	var s entities.ResolutionSession
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (f *fakeSessionRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.sessions, id)
	return nil
}

type fakeDetector struct {
	result *entities.DetectionResult
	err    error
	calls  int
}

func (f *fakeDetector) Detect(_ context.Context, summaries []string) (*entities.DetectionResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeConsolidator struct {
	result *entities.ProposedSummary
	err    error
	calls  int
}

func (f *fakeConsolidator) Consolidate(_ context.Context, summaries []string, flags []entities.Flag, resolutions entities.ResolutionSet) (*entities.ProposedSummary, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeArchive struct {
	objects map[string][]byte
	err     error
	urlErr  error
}

func (f *fakeArchive) UploadDocument(_ context.Context, objectName string, data []byte, _ string) error {
	if f.err != nil {
		return f.err
	}
	if f.objects == nil {
		f.objects = make(map[string][]byte)
	}
	f.objects[objectName] = data
	return nil
}

func (f *fakeArchive) DocumentURL(_ context.Context, objectName string, _ time.Duration) (string, error) {
	if f.urlErr != nil {
		return "", f.urlErr
	}
	return "https://archive.test/" + objectName, nil
}

type fixture struct {
	svc          Service
	userID       uuid.UUID
	opportunity  *entities.Opportunity
	meetingRepo  *fakeMeetingRepo
	sessionRepo  *fakeSessionRepo
	detector     *fakeDetector
	consolidator *fakeConsolidator
	archive      *fakeArchive
	meetings     []*entities.Meeting
}

// newFixture wires the workflow over two summarized meetings with the
// access-point conflict from the product walkthrough.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	userID := uuid.New()
	client := entities.NewClient(userID, "Acme Corp")
	opportunity := entities.NewOpportunity(client.ID, "Acme Rollout")

	meetingRepo := newFakeMeetingRepo()
	meetings := make([]*entities.Meeting, 0, 2)
	for _, summary := range []string{"Meeting 1: 10 APs needed", "Meeting 2: 15 APs needed"} {
		m := entities.NewMeeting(userID, summary[:9])
		m.OpportunityID = &opportunity.ID
		m.ClientID = &client.ID
		s := summary
		m.Summary = &s
		m.ProposalItems = []string{"Install access points"}
		meetingRepo.add(m)
		meetings = append(meetings, m)
	}

	detector := &fakeDetector{result: &entities.DetectionResult{
		Flags: []entities.Flag{{
			Key:         "access_points",
			Description: "The required number of access points differs",
			Options:     []string{"10", "15"},
		}},
		ProposedSummary: "The site needs 15 APs.",
	}}
	consolidator := &fakeConsolidator{result: &entities.ProposedSummary{
		Summary:       "The customer needs 15 APs across both buildings.",
		ProposalItems: []string{"Install 15 APs"},
	}}

	clientRepo := &fakeClientRepo{clients: map[uuid.UUID]*entities.Client{client.ID: client}}
	opportunityRepo := &fakeOpportunityRepo{opportunities: map[uuid.UUID]*entities.Opportunity{opportunity.ID: opportunity}}
	sessionRepo := newFakeSessionRepo()
	archive := &fakeArchive{}

	svc := NewService(
		meetingRepo, opportunityRepo, clientRepo, sessionRepo,
		detector, consolidator,
		document.NewAssembler(zap.NewNop()), archive,
		zap.NewNop(),
	)

	return &fixture{
		svc:          svc,
		userID:       userID,
		opportunity:  opportunity,
		meetingRepo:  meetingRepo,
		sessionRepo:  sessionRepo,
		detector:     detector,
		consolidator: consolidator,
		archive:      archive,
		meetings:     meetings,
	}
}

func TestService_ResolutionEndToEnd(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	session, err := fx.svc.StartResolution(ctx, fx.userID, fx.opportunity.ID)
	require.NoError(t, err)
	require.Len(t, session.Flags, 1)
	assert.Equal(t, []string{"10", "15"}, session.Flags[0].Options)
	assert.Equal(t, entities.SessionStateCollecting, session.State)
	assert.Equal(t, "The site needs 15 APs.", session.DefaultSummary)

	_, err = fx.svc.Choose(ctx, fx.userID, session.ID, "access_points", "15")
	require.NoError(t, err)

	result, err := fx.svc.Confirm(ctx, fx.userID, session.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.SessionStateComplete, result.Session.State)
	assert.Contains(t, result.Consolidated.Summary, "15 APs")
	assert.NotContains(t, result.Consolidated.Summary, "10")

	// Write-back landed on every meeting.
	assert.Equal(t, 2, fx.meetingRepo.writeCalls)
	for _, m := range fx.meetings {
		assert.Equal(t, result.Consolidated.Summary, *m.Summary)
		assert.Equal(t, []string{"Install 15 APs"}, m.ProposalItems)
	}

	// Stored session is closed too.
	stored, err := fx.sessionRepo.FindByID(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.SessionStateComplete, stored.State)
}

func TestService_StartResolutionRequiresAllSummaries(t *testing.T) {
	fx := newFixture(t)
	fx.meetings[1].Summary = nil

	_, err := fx.svc.StartResolution(context.Background(), fx.userID, fx.opportunity.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorCode_INSUFFICIENT_INPUT, apperrors.CodeOf(err))
	assert.Zero(t, fx.detector.calls)
}

func TestService_StartResolutionMemoizesDetection(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	_, err := fx.svc.StartResolution(ctx, fx.userID, fx.opportunity.ID)
	require.NoError(t, err)
	_, err = fx.svc.StartResolution(ctx, fx.userID, fx.opportunity.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, fx.detector.calls, "same summary set must not re-run detection")
}

func TestService_ConfirmIncompleteLeavesSessionCollecting(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	session, err := fx.svc.StartResolution(ctx, fx.userID, fx.opportunity.ID)
	require.NoError(t, err)

	_, err = fx.svc.Confirm(ctx, fx.userID, session.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorCode_INCOMPLETE_RESOLUTION, apperrors.CodeOf(err))

	stored, err := fx.sessionRepo.FindByID(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.SessionStateCollecting, stored.State)
	assert.Zero(t, fx.consolidator.calls)
	assert.Zero(t, fx.meetingRepo.writeCalls)
}

func TestService_ConfirmConsolidationFailureLeavesSessionCollecting(t *testing.T) {
	fx := newFixture(t)
	fx.consolidator.err = apperrors.ErrConsolidationFailed(errors.New("dropped a resolution"))
	ctx := context.Background()

	session, err := fx.svc.StartResolution(ctx, fx.userID, fx.opportunity.ID)
	require.NoError(t, err)
	_, err = fx.svc.Choose(ctx, fx.userID, session.ID, "access_points", "15")
	require.NoError(t, err)

	_, err = fx.svc.Confirm(ctx, fx.userID, session.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorCode_CONSOLIDATION_FAILED, apperrors.CodeOf(err))

	// Choices survive so the user can retry confirm.
	stored, err := fx.sessionRepo.FindByID(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.SessionStateCollecting, stored.State)
	assert.Equal(t, "15", stored.Choices["access_points"])
	assert.Zero(t, fx.meetingRepo.writeCalls)
}

func TestService_ConfirmWriteBackFailureLeavesSessionCollecting(t *testing.T) {
	fx := newFixture(t)
	fx.meetingRepo.writeErr = errors.New("database gone")
	ctx := context.Background()

	session, err := fx.svc.StartResolution(ctx, fx.userID, fx.opportunity.ID)
	require.NoError(t, err)
	_, err = fx.svc.Choose(ctx, fx.userID, session.ID, "access_points", "15")
	require.NoError(t, err)

	_, err = fx.svc.Confirm(ctx, fx.userID, session.ID)
	require.Error(t, err)

	stored, err := fx.sessionRepo.FindByID(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.SessionStateCollecting, stored.State)
}

func TestService_ChooseInvalidOption(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	session, err := fx.svc.StartResolution(ctx, fx.userID, fx.opportunity.ID)
	require.NoError(t, err)

	_, err = fx.svc.Choose(ctx, fx.userID, session.ID, "access_points", "20")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorCode_INVALID_OPTION, apperrors.CodeOf(err))

	_, err = fx.svc.Choose(ctx, fx.userID, session.ID, "router_count", "15")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorCode_UNKNOWN_FLAG, apperrors.CodeOf(err))
}

func TestService_CancelDiscardsChoices(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	session, err := fx.svc.StartResolution(ctx, fx.userID, fx.opportunity.ID)
	require.NoError(t, err)
	_, err = fx.svc.Choose(ctx, fx.userID, session.ID, "access_points", "15")
	require.NoError(t, err)

	cancelled, err := fx.svc.Cancel(ctx, fx.userID, session.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.SessionStateCancelled, cancelled.State)
	assert.Empty(t, cancelled.Choices)

	// A closed session rejects further work.
	_, err = fx.svc.Choose(ctx, fx.userID, session.ID, "access_points", "15")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorCode_SESSION_CLOSED, apperrors.CodeOf(err))
}

func TestService_SessionOwnership(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	session, err := fx.svc.StartResolution(ctx, fx.userID, fx.opportunity.ID)
	require.NoError(t, err)

	_, err = fx.svc.Choose(ctx, uuid.New(), session.ID, "access_points", "15")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorCode_FORBIDDEN, apperrors.CodeOf(err))
}

func TestService_GenerateDocument(t *testing.T) {
	fx := newFixture(t)

	generated, err := fx.svc.GenerateDocument(context.Background(), fx.userID, fx.opportunity.ID, "proposal", "")
	require.NoError(t, err)
	assert.Equal(t, "Acme Rollout.docx", generated.Document.Filename)
	assert.NotEmpty(t, generated.Document.Content)

	// Archived under the opportunity prefix, with the archive URL surfaced.
	archived := "documents/" + fx.opportunity.ID.String() + "/Acme Rollout.docx"
	assert.Contains(t, fx.archive.objects, archived)
	assert.Equal(t, "https://archive.test/"+archived, generated.ArchiveURL)
}

func TestService_GenerateDocumentUnsupportedKind(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.svc.GenerateDocument(context.Background(), fx.userID, fx.opportunity.ID, "invoice", "")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorCode_UNSUPPORTED_DOCUMENT_TYPE, apperrors.CodeOf(err))
}

func TestService_GenerateDocumentNothingToAssemble(t *testing.T) {
	fx := newFixture(t)
	for _, m := range fx.meetings {
		m.Summary = nil
		m.ProposalItems = nil
	}

	_, err := fx.svc.GenerateDocument(context.Background(), fx.userID, fx.opportunity.ID, "proposal", "")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorCode_NOTHING_TO_ASSEMBLE, apperrors.CodeOf(err))
	assert.Empty(t, fx.archive.objects)
}

func TestService_GenerateDocumentArchiveFailureStillDownloads(t *testing.T) {
	fx := newFixture(t)
	fx.archive.err = errors.New("bucket unavailable")

	generated, err := fx.svc.GenerateDocument(context.Background(), fx.userID, fx.opportunity.ID, "proposal", "")
	require.NoError(t, err)
	assert.NotEmpty(t, generated.Document.Content)
	assert.Empty(t, generated.ArchiveURL)
}

func TestService_GenerateDocumentURLFailureStillDownloads(t *testing.T) {
	fx := newFixture(t)
	fx.archive.urlErr = errors.New("presign unavailable")

	generated, err := fx.svc.GenerateDocument(context.Background(), fx.userID, fx.opportunity.ID, "proposal", "")
	require.NoError(t, err)
	assert.NotEmpty(t, generated.Document.Content)
	assert.Empty(t, generated.ArchiveURL)

	archived := "documents/" + fx.opportunity.ID.String() + "/Acme Rollout.docx"
	assert.Contains(t, fx.archive.objects, archived)
}

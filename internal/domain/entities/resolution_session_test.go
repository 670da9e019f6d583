package entities

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/brieflyhq/briefly/errors"
)

func twoFlagResult() *DetectionResult {
	return &DetectionResult{
		Flags: []Flag{
			{Key: "budget", Description: "Budget differs", Options: []string{"$40k", "$55k"}},
			{Key: "deadline", Description: "Deadline differs", Options: []string{"March", "June"}},
		},
		ProposedSummary: "Budget $55k, delivery in June.",
	}
}

func newTestSession() *ResolutionSession {
	return NewResolutionSession(
		uuid.New(), uuid.New(),
		[]uuid.UUID{uuid.New(), uuid.New()},
		[]string{"summary one", "summary two"},
		twoFlagResult(),
	)
}

func TestResolutionSession_ChooseAndConfirm(t *testing.T) {
	s := newTestSession()
	assert.Equal(t, SessionStateCollecting, s.State)
	assert.False(t, s.IsComplete())

	require.NoError(t, s.Choose("budget", "$55k"))
	require.NoError(t, s.Choose("deadline", "June"))
	assert.True(t, s.IsComplete())

	resolved, err := s.Confirm()
	require.NoError(t, err)
	assert.Equal(t, SessionStateComplete, s.State)
	assert.Equal(t, ResolutionSet{"budget": "$55k", "deadline": "June"}, resolved)
}

func TestResolutionSession_ChooseOverwrites(t *testing.T) {
	s := newTestSession()

	require.NoError(t, s.Choose("budget", "$40k"))
	require.NoError(t, s.Choose("budget", "$55k"))
	assert.Equal(t, "$55k", s.Choices["budget"])
}

func TestResolutionSession_ChooseUnknownFlag(t *testing.T) {
	s := newTestSession()

	err := s.Choose("scope", "anything")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorCode_UNKNOWN_FLAG, apperrors.CodeOf(err))
}

func TestResolutionSession_ChooseInvalidOption(t *testing.T) {
	s := newTestSession()

	err := s.Choose("budget", "$70k")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorCode_INVALID_OPTION, apperrors.CodeOf(err))
	assert.Empty(t, s.Choices)
}

func TestResolutionSession_ConfirmIncomplete(t *testing.T) {
	s := newTestSession()
	require.NoError(t, s.Choose("budget", "$55k"))

	_, err := s.Confirm()
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorCode_INCOMPLETE_RESOLUTION, apperrors.CodeOf(err))

	// A failed confirm changes nothing.
	assert.Equal(t, SessionStateCollecting, s.State)
	assert.Equal(t, "$55k", s.Choices["budget"])
}

func TestResolutionSession_ConfirmReturnsCopy(t *testing.T) {
	s := newTestSession()
	require.NoError(t, s.Choose("budget", "$55k"))
	require.NoError(t, s.Choose("deadline", "June"))

	resolved, err := s.Confirm()
	require.NoError(t, err)

	resolved["budget"] = "tampered"
	assert.Equal(t, "$55k", s.Choices["budget"])
}

func TestResolutionSession_Cancel(t *testing.T) {
	s := newTestSession()
	require.NoError(t, s.Choose("budget", "$55k"))

	require.NoError(t, s.Cancel())
	assert.Equal(t, SessionStateCancelled, s.State)
	assert.Empty(t, s.Choices)
}

func TestResolutionSession_TerminalStatesRejectTransitions(t *testing.T) {
	confirmed := newTestSession()
	require.NoError(t, confirmed.Choose("budget", "$55k"))
	require.NoError(t, confirmed.Choose("deadline", "June"))
	_, err := confirmed.Confirm()
	require.NoError(t, err)

	cancelled := newTestSession()
	require.NoError(t, cancelled.Cancel())

	for _, s := range []*ResolutionSession{confirmed, cancelled} {
		err := s.Choose("budget", "$40k")
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrorCode_SESSION_CLOSED, apperrors.CodeOf(err))

		_, err = s.Confirm()
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrorCode_SESSION_CLOSED, apperrors.CodeOf(err))

		err = s.Cancel()
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrorCode_SESSION_CLOSED, apperrors.CodeOf(err))
	}
}

func TestResolutionSession_NoFlagsConfirmsImmediately(t *testing.T) {
	s := NewResolutionSession(
		uuid.New(), uuid.New(),
		[]uuid.UUID{uuid.New(), uuid.New()},
		[]string{"a", "b"},
		&DetectionResult{Flags: nil, ProposedSummary: "all agreed"},
	)

	resolved, err := s.Confirm()
	require.NoError(t, err)
	assert.Empty(t, resolved)
	assert.Equal(t, SessionStateComplete, s.State)
}

func TestResolutionSet_CompleteForRejectsExtras(t *testing.T) {
	flags := twoFlagResult().Flags

	complete := ResolutionSet{"budget": "$55k", "deadline": "June"}
	assert.True(t, complete.IsCompleteFor(flags))

	extra := ResolutionSet{"budget": "$55k", "deadline": "June", "scope": "full"}
	assert.False(t, extra.IsCompleteFor(flags))

	missing := ResolutionSet{"budget": "$55k"}
	assert.False(t, missing.IsCompleteFor(flags))
	assert.Equal(t, []string{"deadline"}, missing.MissingFor(flags))
}

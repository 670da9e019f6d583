package conflict

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/brieflyhq/briefly/errors"
)

type fakeLLM struct {
	response string
	err      error
	prompt   string
	calls    int
}

func (f *fakeLLM) Complete(_ context.Context, prompt string) (string, error) {
	f.calls++
	f.prompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

const detectorJSON = `{
	"flags": [
		{
			"key": "budget",
			"description": "The quoted budget differs between the two calls.",
			"options": ["$40k total", "$55k total"]
		}
	],
	"proposed_summary": "The deal closes at $55k total."
}`

func TestDetector_Detect(t *testing.T) {
	llm := &fakeLLM{response: detectorJSON}
	d := NewDetector(llm, zap.NewNop())

	result, err := d.Detect(context.Background(), []string{
		"First call: budget of $40k total agreed.",
		"Second call: budget raised to $55k total.",
	})
	require.NoError(t, err)
	require.Len(t, result.Flags, 1)
	assert.Equal(t, "budget", result.Flags[0].Key)
	assert.Equal(t, []string{"$40k total", "$55k total"}, result.Flags[0].Options)
	assert.Equal(t, "The deal closes at $55k total.", result.ProposedSummary)
	assert.Contains(t, llm.prompt, "Summary 1:")
	assert.Contains(t, llm.prompt, "Summary 2:")
}

func TestDetector_DetectNoConflicts(t *testing.T) {
	llm := &fakeLLM{response: `{"flags": [], "proposed_summary": "Both calls agree on scope and price."}`}
	d := NewDetector(llm, zap.NewNop())

	result, err := d.Detect(context.Background(), []string{"summary a", "summary b"})
	require.NoError(t, err)
	assert.Empty(t, result.Flags)
}

func TestDetector_SingleSummaryIsInsufficient(t *testing.T) {
	llm := &fakeLLM{response: detectorJSON}
	d := NewDetector(llm, zap.NewNop())

	_, err := d.Detect(context.Background(), []string{"only one"})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorCode_INSUFFICIENT_INPUT, apperrors.CodeOf(err))
	assert.Zero(t, llm.calls, "reasoning service must not be called")
}

func TestDetector_BlankSummariesAreInsufficient(t *testing.T) {
	d := NewDetector(&fakeLLM{response: detectorJSON}, zap.NewNop())

	_, err := d.Detect(context.Background(), []string{"real summary", "   "})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorCode_INSUFFICIENT_INPUT, apperrors.CodeOf(err))
}

func TestDetector_TransportFailureIsUnavailable(t *testing.T) {
	llm := &fakeLLM{err: errors.New("dial tcp: connection refused")}
	d := NewDetector(llm, zap.NewNop())

	_, err := d.Detect(context.Background(), []string{"a", "b"})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorCode_DETECTOR_UNAVAILABLE, apperrors.CodeOf(err))
}

func TestDetector_MalformedOutput(t *testing.T) {
	cases := []struct {
		name     string
		response string
	}{
		{"not json", "I could not find any conflicts, great news!"},
		{"missing flags", `{"proposed_summary": "fine"}`},
		{"missing proposed summary", `{"flags": []}`},
		{"empty flag key", `{"flags": [{"key": " ", "description": "d", "options": ["a", "b"]}], "proposed_summary": "s"}`},
		{"no options", `{"flags": [{"key": "budget", "description": "d", "options": []}], "proposed_summary": "s"}`},
		{"duplicate options", `{"flags": [{"key": "budget", "description": "d", "options": ["a", "a"]}], "proposed_summary": "s"}`},
		{"duplicate keys", `{"flags": [{"key": "budget", "description": "d", "options": ["a", "b"]}, {"key": "budget", "description": "d", "options": ["c", "d"]}], "proposed_summary": "s"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := NewDetector(&fakeLLM{response: tc.response}, zap.NewNop())
			_, err := d.Detect(context.Background(), []string{"a", "b"})
			require.Error(t, err)
			assert.Equal(t, apperrors.ErrorCode_MALFORMED_DETECTOR_OUTPUT, apperrors.CodeOf(err))
		})
	}
}

func TestDetector_ParsesFencedResponse(t *testing.T) {
	llm := &fakeLLM{response: "```json\n" + detectorJSON + "\n```"}
	d := NewDetector(llm, zap.NewNop())

	result, err := d.Detect(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	assert.Len(t, result.Flags, 1)
}

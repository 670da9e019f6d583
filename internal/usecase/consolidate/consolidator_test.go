package consolidate

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/brieflyhq/briefly/errors"
	"github.com/brieflyhq/briefly/internal/domain/entities"
)

type fakeLLM struct {
	response string
	err      error
	prompt   string
}

func (f *fakeLLM) Complete(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

var budgetFlags = []entities.Flag{
	{Key: "budget", Description: "Quoted budget differs", Options: []string{"$40k total", "$55k total"}},
}

func TestConsolidator_Consolidate(t *testing.T) {
	llm := &fakeLLM{response: `{
		"summary": "The deal closes at $55k total with rollout in Q2.",
		"proposal_items": ["Total price $55k total", "Rollout completed in Q2"]
	}`}
	c := NewConsolidator(llm, zap.NewNop())

	result, err := c.Consolidate(context.Background(),
		[]string{"Call one: $40k total.", "Call two: raised to $55k total."},
		budgetFlags,
		entities.ResolutionSet{"budget": "$55k total"},
	)
	require.NoError(t, err)
	assert.Contains(t, result.Summary, "$55k total")
	assert.Len(t, result.ProposalItems, 2)
	assert.Contains(t, llm.prompt, `use exactly "$55k total"`)
}

func TestConsolidator_NoFlags(t *testing.T) {
	llm := &fakeLLM{response: `{"summary": "Everything agreed.", "proposal_items": []}`}
	c := NewConsolidator(llm, zap.NewNop())

	result, err := c.Consolidate(context.Background(),
		[]string{"summary a", "summary b"},
		nil,
		entities.ResolutionSet{},
	)
	require.NoError(t, err)
	assert.Equal(t, "Everything agreed.", result.Summary)
}

func TestConsolidator_IncompleteResolutions(t *testing.T) {
	c := NewConsolidator(&fakeLLM{}, zap.NewNop())

	_, err := c.Consolidate(context.Background(),
		[]string{"a", "b"},
		budgetFlags,
		entities.ResolutionSet{},
	)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorCode_INCOMPLETE_RESOLUTION, apperrors.CodeOf(err))
}

func TestConsolidator_TransportFailure(t *testing.T) {
	c := NewConsolidator(&fakeLLM{err: errors.New("timeout")}, zap.NewNop())

	_, err := c.Consolidate(context.Background(),
		[]string{"a", "b"},
		budgetFlags,
		entities.ResolutionSet{"budget": "$55k total"},
	)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorCode_CONSOLIDATION_FAILED, apperrors.CodeOf(err))
}

func TestConsolidator_MalformedOutput(t *testing.T) {
	c := NewConsolidator(&fakeLLM{response: "happy to help!"}, zap.NewNop())

	_, err := c.Consolidate(context.Background(),
		[]string{"a", "b"},
		budgetFlags,
		entities.ResolutionSet{"budget": "$55k total"},
	)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorCode_CONSOLIDATION_FAILED, apperrors.CodeOf(err))
}

func TestConsolidator_DroppedResolutionFails(t *testing.T) {
	// Output talks about $40k even though the user chose $55k.
	llm := &fakeLLM{response: `{
		"summary": "The deal closes at $40k.",
		"proposal_items": ["Total price $40k"]
	}`}
	c := NewConsolidator(llm, zap.NewNop())

	_, err := c.Consolidate(context.Background(),
		[]string{"a", "b"},
		budgetFlags,
		entities.ResolutionSet{"budget": "$55k total"},
	)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorCode_CONSOLIDATION_FAILED, apperrors.CodeOf(err))
}

func TestConsolidator_ResolutionInProposalItemCounts(t *testing.T) {
	llm := &fakeLLM{response: `{
		"summary": "The pricing question was settled.",
		"proposal_items": ["Agreed on $55k total"]
	}`}
	c := NewConsolidator(llm, zap.NewNop())

	_, err := c.Consolidate(context.Background(),
		[]string{"a", "b"},
		budgetFlags,
		entities.ResolutionSet{"budget": "$55k total"},
	)
	assert.NoError(t, err)
}

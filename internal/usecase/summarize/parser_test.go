package summarize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_Parse(t *testing.T) {
	p := NewParser()

	result, err := p.Parse(`{"summary": "We agreed on the rollout plan.", "proposal_items": ["Deliver phase one by March", "Weekly status calls"]}`)
	require.NoError(t, err)
	assert.Equal(t, "We agreed on the rollout plan.", result.Summary)
	assert.Equal(t, []string{"Deliver phase one by March", "Weekly status calls"}, result.ProposalItems)
}

func TestParser_ParseMarkdownFenced(t *testing.T) {
	p := NewParser()

	result, err := p.Parse("```json\n{\"summary\": \"Short call.\", \"proposal_items\": []}\n```")
	require.NoError(t, err)
	assert.Equal(t, "Short call.", result.Summary)
	assert.Empty(t, result.ProposalItems)
}

func TestParser_ParseRejectsMissingSummary(t *testing.T) {
	p := NewParser()

	_, err := p.Parse(`{"proposal_items": ["something"]}`)
	assert.Error(t, err)
}

func TestParser_ParseRejectsBlankItem(t *testing.T) {
	p := NewParser()

	_, err := p.Parse(`{"summary": "ok", "proposal_items": ["fine", "  "]}`)
	assert.Error(t, err)
}

func TestParser_ParseRejectsNonJSON(t *testing.T) {
	p := NewParser()

	_, err := p.Parse("Sure! Here is the summary you asked for.")
	assert.Error(t, err)
}

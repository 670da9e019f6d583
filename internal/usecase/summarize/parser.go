package summarize

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/brieflyhq/briefly/internal/domain/entities"
	"github.com/brieflyhq/briefly/pkg/ai"
)

// Parser validates summarizer responses from the reasoning service
type Parser struct{}

// NewParser creates a new Parser instance
func NewParser() *Parser {
	return &Parser{}
}

type summaryResponse struct {
	Summary       string   `json:"summary"`
	ProposalItems []string `json:"proposal_items"`
}

// Parse parses a reasoning-service response into a ProposedSummary. The
// response must be a JSON object with a non-empty summary; proposal items
// are optional but each one must be non-blank.
func (p *Parser) Parse(content string) (*entities.ProposedSummary, error) {
	content = ai.ExtractJSON(content)

	var resp summaryResponse
	if err := json.Unmarshal([]byte(content), &resp); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if strings.TrimSpace(resp.Summary) == "" {
		return nil, fmt.Errorf("missing summary in response")
	}

	items := make([]string, 0, len(resp.ProposalItems))
	for _, item := range resp.ProposalItems {
		item = strings.TrimSpace(item)
		if item == "" {
			return nil, fmt.Errorf("blank proposal item in response")
		}
		items = append(items, item)
	}

	return &entities.ProposedSummary{
		Summary:       strings.TrimSpace(resp.Summary),
		ProposalItems: items,
	}, nil
}

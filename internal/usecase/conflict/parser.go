package conflict

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/brieflyhq/briefly/internal/domain/entities"
	"github.com/brieflyhq/briefly/pkg/ai"
)

// Parser validates detector responses from the reasoning service. Parsing is
// strict: any shape violation is an error, never an empty flag list.
type Parser struct{}

// NewParser creates a new Parser instance
func NewParser() *Parser {
	return &Parser{}
}

type detectorResponse struct {
	Flags []struct {
		Key         string   `json:"key"`
		Description string   `json:"description"`
		Options     []string `json:"options"`
	} `json:"flags"`
	ProposedSummary string `json:"proposed_summary"`
}

// Parse parses a reasoning-service response into a DetectionResult
func (p *Parser) Parse(content string) (*entities.DetectionResult, error) {
	content = ai.ExtractJSON(content)

	dec := json.NewDecoder(strings.NewReader(content))
	dec.DisallowUnknownFields()

	var resp detectorResponse
	if err := dec.Decode(&resp); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}
	if resp.Flags == nil {
		return nil, fmt.Errorf("missing flags field in response")
	}
	if strings.TrimSpace(resp.ProposedSummary) == "" {
		return nil, fmt.Errorf("missing proposed_summary in response")
	}

	result := &entities.DetectionResult{
		Flags:           make([]entities.Flag, 0, len(resp.Flags)),
		ProposedSummary: strings.TrimSpace(resp.ProposedSummary),
	}
	for _, f := range resp.Flags {
		result.Flags = append(result.Flags, entities.Flag{
			Key:         strings.TrimSpace(f.Key),
			Description: strings.TrimSpace(f.Description),
			Options:     f.Options,
		})
	}
	if err := result.ValidateFlags(); err != nil {
		return nil, err
	}
	return result, nil
}

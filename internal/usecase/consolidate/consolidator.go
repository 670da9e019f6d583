package consolidate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	apperrors "github.com/brieflyhq/briefly/errors"
	"github.com/brieflyhq/briefly/internal/domain/entities"
	"github.com/brieflyhq/briefly/pkg/ai"
)

// ReasoningClient is the slice of the LLM client the consolidator needs
type ReasoningClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Consolidator merges the summaries of an opportunity's meetings into one
// unified proposed summary, with the user's conflict resolutions taken as
// authoritative. It has no side effects; callers persist the result.
type Consolidator struct {
	llm    ReasoningClient
	logger *zap.Logger
}

// NewConsolidator constructs a consolidator
func NewConsolidator(llm ReasoningClient, logger *zap.Logger) *Consolidator {
	return &Consolidator{llm: llm, logger: logger}
}

type consolidatorResponse struct {
	Summary       string   `json:"summary"`
	ProposalItems []string `json:"proposal_items"`
}

// Consolidate produces the unified summary for the given ordered summaries,
// applying one chosen option per flag. The resolution set must cover every
// flag. Each chosen option must be reflected verbatim somewhere in the
// output; if the reasoning service drops or contradicts a resolution the
// call fails and may be retried.
func (c *Consolidator) Consolidate(ctx context.Context, summaries []string, flags []entities.Flag, resolutions entities.ResolutionSet) (*entities.ProposedSummary, error) {
	if len(summaries) == 0 {
		return nil, apperrors.ErrInsufficientInput(0)
	}
	if !resolutions.IsCompleteFor(flags) {
		return nil, apperrors.ErrIncompleteResolution(resolutions.MissingFor(flags))
	}

	content, err := c.llm.Complete(ctx, buildConsolidatorPrompt(summaries, flags, resolutions))
	if err != nil {
		c.logger.Error("consolidation call failed", zap.Error(err))
		return nil, apperrors.ErrConsolidationFailed(err)
	}

	result, err := parseConsolidatorResponse(content)
	if err != nil {
		c.logger.Error("consolidation returned malformed output", zap.Error(err))
		return nil, apperrors.ErrConsolidationFailed(err)
	}

	// A resolution the output does not reflect means the service ignored
	// the user's choice. That must never be persisted.
	if missing := unreflectedResolutions(result, flags, resolutions); len(missing) > 0 {
		err := fmt.Errorf("resolved options not reflected in output: %s", strings.Join(missing, ", "))
		c.logger.Error("consolidation dropped a resolution", zap.Strings("flags", missing))
		return nil, apperrors.ErrConsolidationFailed(err)
	}

	c.logger.Info("consolidation completed",
		zap.Int("summaries", len(summaries)),
		zap.Int("resolutions", len(resolutions)),
		zap.Int("proposal_items", len(result.ProposalItems)),
	)
	return result, nil
}

func parseConsolidatorResponse(content string) (*entities.ProposedSummary, error) {
	content = ai.ExtractJSON(content)

	var resp consolidatorResponse
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

// unreflectedResolutions returns the keys of flags whose chosen option text
// appears nowhere in the consolidated output, in flag order.
func unreflectedResolutions(result *entities.ProposedSummary, flags []entities.Flag, resolutions entities.ResolutionSet) []string {
	haystack := strings.ToLower(result.Summary + "\n" + strings.Join(result.ProposalItems, "\n"))

	var missing []string
	for _, f := range flags {
		chosen := strings.ToLower(strings.TrimSpace(resolutions[f.Key]))
		if chosen == "" {
			continue
		}
		if !strings.Contains(haystack, chosen) {
			missing = append(missing, f.Key)
		}
	}
	return missing
}

func buildConsolidatorPrompt(summaries []string, flags []entities.Flag, resolutions entities.ResolutionSet) string {
	var b strings.Builder
	b.WriteString("You merge the summaries of several sales calls for one deal into a single ")
	b.WriteString("unified summary and proposal-item list. Where the calls contradicted each ")
	b.WriteString("other, the user has already decided which version is correct; those ")
	b.WriteString("decisions are final and must appear verbatim in your output.\n\n")
	for i, s := range summaries {
		fmt.Fprintf(&b, "Summary %d:\n%s\n\n", i+1, s)
	}
	if len(flags) > 0 {
		b.WriteString("Resolved conflicts (authoritative):\n")
		for _, f := range flags {
			fmt.Fprintf(&b, "- %s: use exactly %q (%s)\n", f.Key, resolutions[f.Key], f.Description)
		}
		b.WriteString("\n")
	}
	b.WriteString(`Respond with JSON only, no prose, in exactly this shape:
{
  "summary": "<unified summary of the whole deal, contradictions removed>",
  "proposal_items": ["<one merged commitment or agreed term per entry, deduplicated>"]
}
Include each resolved option verbatim in the summary or in a proposal item.`)
	return b.String()
}

package conflict

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	apperrors "github.com/brieflyhq/briefly/errors"
	"github.com/brieflyhq/briefly/internal/domain/entities"
)

// ReasoningClient is the slice of the LLM client the detector needs
type ReasoningClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Detector finds contradictions between the summaries of meetings that
// belong to one opportunity. It never retries on its own; transient failures
// are reported as retryable errors and the caller decides.
type Detector struct {
	llm    ReasoningClient
	parser *Parser
	logger *zap.Logger
}

// NewDetector constructs a conflict detector
func NewDetector(llm ReasoningClient, logger *zap.Logger) *Detector {
	return &Detector{
		llm:    llm,
		parser: NewParser(),
		logger: logger,
	}
}

// Detect runs conflict detection over the given summaries, in order. At
// least two non-blank summaries are required. A result with zero flags means
// the summaries genuinely agree; a malformed reasoning-service response is
// an error, never an empty flag list.
func (d *Detector) Detect(ctx context.Context, summaries []string) (*entities.DetectionResult, error) {
	if len(summaries) < 2 {
		return nil, apperrors.ErrInsufficientInput(len(summaries))
	}
	nonBlank := 0
	for _, s := range summaries {
		if strings.TrimSpace(s) != "" {
			nonBlank++
		}
	}
	if nonBlank < 2 {
		return nil, apperrors.ErrInsufficientInput(nonBlank)
	}

	content, err := d.llm.Complete(ctx, buildDetectorPrompt(summaries))
	if err != nil {
		d.logger.Error("conflict detection call failed", zap.Error(err))
		return nil, apperrors.ErrDetectorUnavailable(err)
	}

	result, err := d.parser.Parse(content)
	if err != nil {
		d.logger.Error("conflict detection returned malformed output", zap.Error(err))
		return nil, apperrors.ErrMalformedDetectorOutput(err)
	}

	d.logger.Info("conflict detection completed",
		zap.Int("summaries", len(summaries)),
		zap.Int("flags", len(result.Flags)),
	)
	return result, nil
}

func buildDetectorPrompt(summaries []string) string {
	var b strings.Builder
	b.WriteString("You compare summaries of sales calls that belong to the same deal ")
	b.WriteString("and find points where they contradict each other (price, scope, dates, terms).\n\n")
	for i, s := range summaries {
		fmt.Fprintf(&b, "Summary %d:\n%s\n\n", i+1, s)
	}
	b.WriteString(`Respond with JSON only, no prose, in exactly this shape:
{
  "flags": [
    {
      "key": "<short snake_case identifier of the conflicting topic>",
      "description": "<one sentence describing the contradiction>",
      "options": ["<each mutually exclusive version, quoted from the summaries>"]
    }
  ],
  "proposed_summary": "<one unified summary that resolves every conflict using your best judgment>"
}
Keys must be unique. Every flag needs at least two distinct options. If the
summaries fully agree, return an empty flags array and a merged summary.`)
	return b.String()
}

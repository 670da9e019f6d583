package entities

import (
	"fmt"
	"strings"
)

// Flag is one detected discrepancy between two or more meeting summaries.
// Flags are transient: they live inside a resolution session and are never
// persisted on their own.
type Flag struct {
	Key         string   `json:"key"`
	Description string   `json:"description"`
	Options     []string `json:"options"`
}

// Validate checks the flag invariants: a non-empty key and a non-empty list
// of distinct candidate options.
func (f Flag) Validate() error {
	if strings.TrimSpace(f.Key) == "" {
		return fmt.Errorf("flag key is empty")
	}
	if len(f.Options) == 0 {
		return fmt.Errorf("flag %q has no options", f.Key)
	}
	seen := make(map[string]struct{}, len(f.Options))
	for _, opt := range f.Options {
		if opt == "" {
			return fmt.Errorf("flag %q has an empty option", f.Key)
		}
		if _, dup := seen[opt]; dup {
			return fmt.Errorf("flag %q has duplicate option %q", f.Key, opt)
		}
		seen[opt] = struct{}{}
	}
	return nil
}

// HasOption reports whether option is one of the flag's candidates
func (f Flag) HasOption(option string) bool {
	for _, opt := range f.Options {
		if opt == option {
			return true
		}
	}
	return false
}

// DetectionResult is the validated output of one conflict-detection run:
// the ordered flags plus the detector's own best-effort summary. The default
// summary is a non-binding fallback and is never written back without an
// explicit user confirmation.
type DetectionResult struct {
	Flags           []Flag `json:"flags"`
	ProposedSummary string `json:"proposed_summary"`
}

// ValidateFlags checks every flag and enforces key uniqueness across the run
func (r *DetectionResult) ValidateFlags() error {
	seen := make(map[string]struct{}, len(r.Flags))
	for _, f := range r.Flags {
		if err := f.Validate(); err != nil {
			return err
		}
		if _, dup := seen[f.Key]; dup {
			return fmt.Errorf("duplicate flag key %q", f.Key)
		}
		seen[f.Key] = struct{}{}
	}
	return nil
}

// ResolutionSet maps flag keys to the single option the user chose
type ResolutionSet map[string]string

// IsCompleteFor reports whether the set contains exactly one entry per flag
// key and no extras.
func (rs ResolutionSet) IsCompleteFor(flags []Flag) bool {
	if len(rs) != len(flags) {
		return false
	}
	for _, f := range flags {
		if _, ok := rs[f.Key]; !ok {
			return false
		}
	}
	return true
}

// MissingFor returns the flag keys that have no entry in the set, in flag
// order.
func (rs ResolutionSet) MissingFor(flags []Flag) []string {
	missing := make([]string, 0)
	for _, f := range flags {
		if _, ok := rs[f.Key]; !ok {
			missing = append(missing, f.Key)
		}
	}
	return missing
}

// ProposedSummary is the consolidator's output: one unified prose summary
// plus the merged proposal-item list with contradictions removed. It is
// ephemeral until written back onto the meeting records.
type ProposedSummary struct {
	Summary       string   `json:"summary"`
	ProposalItems []string `json:"proposal_items"`
}

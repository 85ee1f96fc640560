package stagehand

import (
	"fmt"

	"github.com/stagehand-dev/stagehand/schema"
)

// PurgeDirective names a post-phase transformation of the context view.
// Directives are independent and may combine; see [Transcript] for the exact
// semantics of each.
type PurgeDirective string

const (
	// PurgeToolCalls removes this phase's tool-result messages from the
	// context view and strips ToolCalls from this phase's assistant messages,
	// keeping their content.
	PurgeToolCalls PurgeDirective = "tool-calls"

	// PurgeAllToolCalls applies the same transformation to the entire context
	// view, erasing tool-call evidence from every phase so far.
	PurgeAllToolCalls PurgeDirective = "all-tool-calls"

	// PurgePreviousMessages truncates the context view to this phase's
	// messages only, hiding all prior phase context from later phases.
	PurgePreviousMessages PurgeDirective = "previous-messages"
)

// ParsePurgeDirective converts a string into a known PurgeDirective.
func ParsePurgeDirective(s string) (PurgeDirective, error) {
	switch d := PurgeDirective(s); d {
	case PurgeToolCalls, PurgeAllToolCalls, PurgePreviousMessages:
		return d, nil
	default:
		return "", fmt.Errorf("unknown purge directive %q", s)
	}
}

// Phase is one named step of an agent run.
//
// A run is an ordered sequence of phases executed against one persistent
// [Transcript]; each phase's output becomes visible to later phases through
// the context view unless purged.
type Phase struct {
	// Name identifies the phase in errors and hook events.
	Name string

	// Prompt is the user-message template for this phase. It may reference
	// template variables as {{var}} and must be non-empty.
	Prompt string

	// Options override the run-level options for this phase's model calls.
	Options Options

	// Purge directives applied to the context view after the phase's round
	// loop terminates. Evaluated in the order: tool-calls, all-tool-calls,
	// previous-messages, regardless of slice order.
	Purge []PurgeDirective

	// ResponseSchema, when non-nil, triggers post-hoc validation of the
	// phase's final text. Validation failure never aborts the run.
	ResponseSchema *schema.Schema

	// Tools, when non-empty, replaces the run-wide tool set for this phase.
	Tools []string
}

// validate checks the preconditions the round loop relies on.
func (p Phase) validate() error {
	if p.Name == "" {
		return fmt.Errorf("phase has no name")
	}
	if p.Prompt == "" {
		return fmt.Errorf("phase %q has an empty prompt", p.Name)
	}
	for _, d := range p.Purge {
		if _, err := ParsePurgeDirective(string(d)); err != nil {
			return fmt.Errorf("phase %q: %w", p.Name, err)
		}
	}
	return nil
}

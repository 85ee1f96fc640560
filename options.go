package stagehand

import "fmt"

// ThinkLevel expresses how much reasoning effort the model should spend.
// The engine treats it as opaque configuration; the model adapter projects it
// into whatever the provider understands.
type ThinkLevel string

const (
	ThinkOff    ThinkLevel = ""
	ThinkLow    ThinkLevel = "low"
	ThinkMedium ThinkLevel = "medium"
	ThinkHigh   ThinkLevel = "high"
)

// ParseThinkLevel converts a string into a known ThinkLevel. The empty
// string parses as ThinkOff.
func ParseThinkLevel(s string) (ThinkLevel, error) {
	switch l := ThinkLevel(s); l {
	case ThinkOff, ThinkLow, ThinkMedium, ThinkHigh:
		return l, nil
	default:
		return ThinkOff, fmt.Errorf("unknown think level %q", s)
	}
}

// Options is the layered model-call configuration. The engine resolves it in
// a fixed order: run-level base options, then the phase override, then the
// provider-specific projection inside the model adapter. Zero fields mean
// "inherit from the layer below"; pointer fields distinguish "unset" from an
// explicit zero value.
type Options struct {
	// Model selects the model identifier, e.g. "gpt-4o".
	Model string

	// Temperature controls sampling randomness.
	Temperature *float64

	// TopP controls nucleus sampling.
	TopP *float64

	// MaxTokens bounds the response length. Zero means provider default.
	MaxTokens int

	// Think selects the reasoning effort level.
	Think ThinkLevel
}

// Merge layers override on top of o and returns the result. Fields set in
// override win; unset fields inherit from o. Neither receiver nor argument is
// mutated.
func (o Options) Merge(override Options) Options {
	out := o
	if override.Model != "" {
		out.Model = override.Model
	}
	if override.Temperature != nil {
		out.Temperature = override.Temperature
	}
	if override.TopP != nil {
		out.TopP = override.TopP
	}
	if override.MaxTokens != 0 {
		out.MaxTokens = override.MaxTokens
	}
	if override.Think != ThinkOff {
		out.Think = override.Think
	}
	return out
}

// Float64 returns a pointer to v, for populating optional option fields.
func Float64(v float64) *float64 {
	return &v
}

package stagehand

import "context"

// Hooks observe execution at well-defined points. They are side-effect-only:
// nothing a hook does affects control flow, and errors cannot be returned.
// Implement any combination of the interfaces below on one struct and
// register it with hooks.Registry; the registry dispatches each event only to
// hooks implementing the matching interface.
//
// Hooks run synchronously on the engine's single thread of control, in
// registration order. A panicking hook propagates and stops the run; recover
// inside the hook if that is not acceptable.

// PhaseStartHook is notified when a phase begins, before its first round.
type PhaseStartHook interface {
	OnPhaseStart(ctx context.Context, event PhaseStartEvent)
}

// PhaseEndHook is notified after a phase completes, with the permanent-record
// messages it appended.
type PhaseEndHook interface {
	OnPhaseEnd(ctx context.Context, event PhaseEndEvent)
}

// ThinkingChunkHook receives reasoning deltas as the stream produces them.
type ThinkingChunkHook interface {
	OnThinkingChunk(ctx context.Context, event ThinkingChunkEvent)
}

// ContentChunkHook receives response-text deltas as the stream produces them.
type ContentChunkHook interface {
	OnContentChunk(ctx context.Context, event ContentChunkEvent)
}

// ToolCallHook is notified at most once per tool-call ID, as soon as the ID
// is known.
type ToolCallHook interface {
	OnToolCall(ctx context.Context, event ToolCallEvent)
}

// ToolResponseHook is notified exactly once per executed tool call with its
// final outcome.
type ToolResponseHook interface {
	OnToolResponse(ctx context.Context, event ToolResponseEvent)
}

// BeforeModelCallHook is notified before each model call.
type BeforeModelCallHook interface {
	OnBeforeModelCall(ctx context.Context, event BeforeModelCallEvent)
}

// AfterModelCallHook is notified after each model call's stream is consumed.
type AfterModelCallHook interface {
	OnAfterModelCall(ctx context.Context, event AfterModelCallEvent)
}

// ValidationHook is notified of response-schema validation outcomes.
type ValidationHook interface {
	OnValidation(ctx context.Context, event ValidationEvent)
}

// HookFirer dispatches events to registered hooks. hooks.Registry is the
// standard implementation; the interface lives here so the core does not
// depend on the hooks package.
type HookFirer interface {
	FirePhaseStart(ctx context.Context, event PhaseStartEvent)
	FirePhaseEnd(ctx context.Context, event PhaseEndEvent)
	FireThinkingChunk(ctx context.Context, event ThinkingChunkEvent)
	FireContentChunk(ctx context.Context, event ContentChunkEvent)
	FireToolCall(ctx context.Context, event ToolCallEvent)
	FireToolResponse(ctx context.Context, event ToolResponseEvent)
	FireBeforeModelCall(ctx context.Context, event BeforeModelCallEvent)
	FireAfterModelCall(ctx context.Context, event AfterModelCallEvent)
	FireValidation(ctx context.Context, event ValidationEvent)
}

// nopFirer is the HookFirer used when no hooks are registered.
type nopFirer struct{}

func (nopFirer) FirePhaseStart(context.Context, PhaseStartEvent)           {}
func (nopFirer) FirePhaseEnd(context.Context, PhaseEndEvent)               {}
func (nopFirer) FireThinkingChunk(context.Context, ThinkingChunkEvent)     {}
func (nopFirer) FireContentChunk(context.Context, ContentChunkEvent)       {}
func (nopFirer) FireToolCall(context.Context, ToolCallEvent)               {}
func (nopFirer) FireToolResponse(context.Context, ToolResponseEvent)       {}
func (nopFirer) FireBeforeModelCall(context.Context, BeforeModelCallEvent) {}
func (nopFirer) FireAfterModelCall(context.Context, AfterModelCallEvent)   {}
func (nopFirer) FireValidation(context.Context, ValidationEvent)           {}

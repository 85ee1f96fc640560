package hooks

import (
	"context"

	"github.com/stagehand-dev/stagehand"
)

// Registry manages a collection of hooks and dispatches events to them.
//
// Hooks can implement any combination of hook interfaces; they only receive
// events for the interfaces they implement, in registration order.
//
// Registry is NOT thread-safe. Register all hooks before starting a run.
// Fire methods are called by the Runner, from a single goroutine.
type Registry struct {
	hooks []any
}

var _ stagehand.HookFirer = (*Registry)(nil)

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		hooks: make([]any, 0),
	}
}

// Register adds a hook to the registry. The hook can implement any
// combination of hook interfaces.
func (r *Registry) Register(hook any) *Registry {
	r.hooks = append(r.hooks, hook)
	return r
}

// Len returns the number of registered hooks.
func (r *Registry) Len() int {
	return len(r.hooks)
}

// Clear removes all registered hooks.
func (r *Registry) Clear() {
	r.hooks = make([]any, 0)
}

// FirePhaseStart dispatches a PhaseStartEvent to all registered
// PhaseStartHook implementations.
func (r *Registry) FirePhaseStart(ctx context.Context, event stagehand.PhaseStartEvent) {
	for _, h := range r.hooks {
		if hook, ok := h.(stagehand.PhaseStartHook); ok {
			hook.OnPhaseStart(ctx, event)
		}
	}
}

// FirePhaseEnd dispatches a PhaseEndEvent to all registered PhaseEndHook
// implementations.
func (r *Registry) FirePhaseEnd(ctx context.Context, event stagehand.PhaseEndEvent) {
	for _, h := range r.hooks {
		if hook, ok := h.(stagehand.PhaseEndHook); ok {
			hook.OnPhaseEnd(ctx, event)
		}
	}
}

// FireBeforeModelCall dispatches a BeforeModelCallEvent to all registered
// BeforeModelCallHook implementations.
func (r *Registry) FireBeforeModelCall(ctx context.Context, event stagehand.BeforeModelCallEvent) {
	for _, h := range r.hooks {
		if hook, ok := h.(stagehand.BeforeModelCallHook); ok {
			hook.OnBeforeModelCall(ctx, event)
		}
	}
}

// FireAfterModelCall dispatches an AfterModelCallEvent to all registered
// AfterModelCallHook implementations.
func (r *Registry) FireAfterModelCall(ctx context.Context, event stagehand.AfterModelCallEvent) {
	for _, h := range r.hooks {
		if hook, ok := h.(stagehand.AfterModelCallHook); ok {
			hook.OnAfterModelCall(ctx, event)
		}
	}
}

// FireThinkingChunk dispatches a ThinkingChunkEvent to all registered
// ThinkingChunkHook implementations.
func (r *Registry) FireThinkingChunk(ctx context.Context, event stagehand.ThinkingChunkEvent) {
	for _, h := range r.hooks {
		if hook, ok := h.(stagehand.ThinkingChunkHook); ok {
			hook.OnThinkingChunk(ctx, event)
		}
	}
}

// FireContentChunk dispatches a ContentChunkEvent to all registered
// ContentChunkHook implementations.
func (r *Registry) FireContentChunk(ctx context.Context, event stagehand.ContentChunkEvent) {
	for _, h := range r.hooks {
		if hook, ok := h.(stagehand.ContentChunkHook); ok {
			hook.OnContentChunk(ctx, event)
		}
	}
}

// FireToolCall dispatches a ToolCallEvent to all registered ToolCallHook
// implementations. Fires exactly once per identified call, before execution.
func (r *Registry) FireToolCall(ctx context.Context, event stagehand.ToolCallEvent) {
	for _, h := range r.hooks {
		if hook, ok := h.(stagehand.ToolCallHook); ok {
			hook.OnToolCall(ctx, event)
		}
	}
}

// FireToolResponse dispatches a ToolResponseEvent to all registered
// ToolResponseHook implementations. Fires exactly once per call, with the
// final outcome after any retries.
func (r *Registry) FireToolResponse(ctx context.Context, event stagehand.ToolResponseEvent) {
	for _, h := range r.hooks {
		if hook, ok := h.(stagehand.ToolResponseHook); ok {
			hook.OnToolResponse(ctx, event)
		}
	}
}

// FireValidation dispatches a ValidationEvent to all registered
// ValidationHook implementations.
func (r *Registry) FireValidation(ctx context.Context, event stagehand.ValidationEvent) {
	for _, h := range r.hooks {
		if hook, ok := h.(stagehand.ValidationHook); ok {
			hook.OnValidation(ctx, event)
		}
	}
}

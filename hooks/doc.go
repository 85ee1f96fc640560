// Package hooks provides a registry for observing phase execution.
//
// Hooks let you watch the engine work without being part of the loop. Each
// hook interface corresponds to one event type; implement only the
// interfaces you need.
//
// # Hook Interfaces
//
// Phase lifecycle:
//   - [stagehand.PhaseStartHook] - Called when a phase begins
//   - [stagehand.PhaseEndHook] - Called when a phase completes
//
// Model call:
//   - [stagehand.BeforeModelCallHook] - Called before each model call
//   - [stagehand.AfterModelCallHook] - Called after each model call
//   - [stagehand.ThinkingChunkHook] - Called per streamed reasoning chunk
//   - [stagehand.ContentChunkHook] - Called per streamed content chunk
//
// Tool call:
//   - [stagehand.ToolCallHook] - Called when a tool call is first identified
//   - [stagehand.ToolResponseHook] - Called once per call with the final outcome
//
// Validation:
//   - [stagehand.ValidationHook] - Called after response schema validation
//
// # Creating a Hook
//
// Implement any combination of interfaces:
//
//	type MetricsHook struct{}
//
//	func (h *MetricsHook) OnToolResponse(ctx context.Context, e stagehand.ToolResponseEvent) {
//	    metrics.RecordToolCall(e.Call.Name, e.Duration)
//	}
//
//	// Compile-time check
//	var _ stagehand.ToolResponseHook = (*MetricsHook)(nil)
//
// # Registering Hooks
//
//	registry := hooks.NewRegistry()
//	registry.Register(&MetricsHook{})
//
//	runner := stagehand.NewRunner(model, tools).WithHooks(registry)
//
// Hooks observe; they cannot alter messages, retries, or termination.
package hooks

// Package tt provides shared test helpers.
package tt

import (
	"context"
	"sync"

	"github.com/stagehand-dev/stagehand"
)

// RecordingHook implements every hook interface and records the events it
// receives, in arrival order.
type RecordingHook struct {
	mu     sync.Mutex
	events []any
}

var (
	_ stagehand.PhaseStartHook      = (*RecordingHook)(nil)
	_ stagehand.PhaseEndHook        = (*RecordingHook)(nil)
	_ stagehand.BeforeModelCallHook = (*RecordingHook)(nil)
	_ stagehand.AfterModelCallHook  = (*RecordingHook)(nil)
	_ stagehand.ThinkingChunkHook   = (*RecordingHook)(nil)
	_ stagehand.ContentChunkHook    = (*RecordingHook)(nil)
	_ stagehand.ToolCallHook        = (*RecordingHook)(nil)
	_ stagehand.ToolResponseHook    = (*RecordingHook)(nil)
	_ stagehand.ValidationHook      = (*RecordingHook)(nil)
)

func (h *RecordingHook) record(event any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, event)
}

// Events returns a copy of all recorded events in order.
func (h *RecordingHook) Events() []any {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]any, len(h.events))
	copy(out, h.events)
	return out
}

func (h *RecordingHook) OnPhaseStart(_ context.Context, e stagehand.PhaseStartEvent) {
	h.record(e)
}

func (h *RecordingHook) OnPhaseEnd(_ context.Context, e stagehand.PhaseEndEvent) {
	h.record(e)
}

func (h *RecordingHook) OnBeforeModelCall(_ context.Context, e stagehand.BeforeModelCallEvent) {
	h.record(e)
}

func (h *RecordingHook) OnAfterModelCall(_ context.Context, e stagehand.AfterModelCallEvent) {
	h.record(e)
}

func (h *RecordingHook) OnThinkingChunk(_ context.Context, e stagehand.ThinkingChunkEvent) {
	h.record(e)
}

func (h *RecordingHook) OnContentChunk(_ context.Context, e stagehand.ContentChunkEvent) {
	h.record(e)
}

func (h *RecordingHook) OnToolCall(_ context.Context, e stagehand.ToolCallEvent) {
	h.record(e)
}

func (h *RecordingHook) OnToolResponse(_ context.Context, e stagehand.ToolResponseEvent) {
	h.record(e)
}

func (h *RecordingHook) OnValidation(_ context.Context, e stagehand.ValidationEvent) {
	h.record(e)
}

// EventsOf filters a RecordingHook's events down to one event type,
// preserving order.
func EventsOf[T any](h *RecordingHook) []T {
	var out []T
	for _, e := range h.Events() {
		if typed, ok := e.(T); ok {
			out = append(out, typed)
		}
	}
	return out
}

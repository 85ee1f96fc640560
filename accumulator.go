package stagehand

import (
	"sort"
	"strings"
)

// StreamAccumulator folds a round's StreamChunks into the round's assistant
// turn: accumulated content, accumulated thinking, and the set of tool calls
// merged from indexed deltas.
//
// Tool-call fragments are keyed by their slot index, not assumed to arrive
// whole: ID and Name stick once seen, Arguments concatenates in arrival
// order. Do not parse arguments incrementally; finalize with ToolCalls once
// the stream ends and parse then.
//
// The accumulator is per-round state. Create a fresh one each round so the
// at-most-once tool-call notification set cannot leak across rounds.
//
// Usage:
//
//	acc := NewStreamAccumulator()
//	for chunk := range stream.Chunks() {
//	    if chunk.Err != nil {
//	        return chunk.Err
//	    }
//	    for _, call := range acc.Add(chunk) {
//	        notify(call) // first time this call's ID became known
//	    }
//	}
//	content, calls := acc.Content(), acc.ToolCalls()
type StreamAccumulator struct {
	content  strings.Builder
	thinking strings.Builder

	slots    map[int]*ToolCall
	notified map[string]bool
}

// NewStreamAccumulator creates an empty accumulator for one round.
func NewStreamAccumulator() *StreamAccumulator {
	return &StreamAccumulator{
		slots:    make(map[int]*ToolCall),
		notified: make(map[string]bool),
	}
}

// Add merges one chunk. It returns the tool calls whose ID became non-empty
// during this Add, each reported exactly once per round; callers use this to
// fire the one-time "tool call observed" notification. The returned calls
// may still have partial names or arguments.
func (a *StreamAccumulator) Add(chunk StreamChunk) []ToolCall {
	if chunk.Content != "" {
		a.content.WriteString(chunk.Content)
	}
	if chunk.Thinking != "" {
		a.thinking.WriteString(chunk.Thinking)
	}

	var announced []ToolCall
	for _, delta := range chunk.ToolCalls {
		call, ok := a.slots[delta.Index]
		if !ok {
			call = &ToolCall{}
			a.slots[delta.Index] = call
		}
		if delta.ID != "" && call.ID == "" {
			call.ID = delta.ID
		}
		if delta.Name != "" {
			call.Name += delta.Name
		}
		if delta.Arguments != "" {
			call.Arguments += delta.Arguments
		}
		if call.ID != "" && !a.notified[call.ID] {
			a.notified[call.ID] = true
			announced = append(announced, *call)
		}
	}
	return announced
}

// Content returns the accumulated response text.
func (a *StreamAccumulator) Content() string {
	return a.content.String()
}

// Thinking returns the accumulated reasoning text.
func (a *StreamAccumulator) Thinking() string {
	return a.thinking.String()
}

// ToolCalls returns the fully merged tool calls in slot-index order.
// Call it only after the stream has ended.
func (a *StreamAccumulator) ToolCalls() []ToolCall {
	if len(a.slots) == 0 {
		return nil
	}
	indexes := make([]int, 0, len(a.slots))
	for idx := range a.slots {
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)
	calls := make([]ToolCall, 0, len(indexes))
	for _, idx := range indexes {
		calls = append(calls, *a.slots[idx])
	}
	return calls
}

// HasOutput reports whether the round produced content or tool calls, which
// decides whether an assistant message is appended at all.
func (a *StreamAccumulator) HasOutput() bool {
	return a.content.Len() > 0 || len(a.slots) > 0
}

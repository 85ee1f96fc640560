package models

import (
	"context"
	"fmt"
	"sync"

	"github.com/stagehand-dev/stagehand"
	"github.com/stagehand-dev/stagehand/internal/buffer"
)

// ScriptedTurn is one model response in a Scripted model's script.
type ScriptedTurn struct {
	// Thinking is streamed before content, in one chunk.
	Thinking string

	// Content is streamed in fragments of ChunkSize runes.
	Content string

	// Calls are emitted as tool-call deltas after content. Each call is
	// split across two deltas (identity, then arguments) to exercise
	// accumulation the way real providers fragment calls.
	Calls []stagehand.ToolCall

	// Err, if set, terminates the stream with a mid-stream error after any
	// content above.
	Err error

	// ChunkSize controls content fragmentation. Zero means one chunk.
	ChunkSize int
}

// Scripted is a deterministic StreamingModel that replays a fixed script of
// turns, one per GenerateStream call. It records every request for
// inspection. Exhausting the script is a stream error, which surfaces as a
// fatal round failure rather than hanging a test.
type Scripted struct {
	mu       sync.Mutex
	turns    []ScriptedTurn
	next     int
	requests [][]stagehand.Message
}

var _ stagehand.StreamingModel = (*Scripted)(nil)

// NewScripted creates a Scripted model that plays the given turns in order.
func NewScripted(turns ...ScriptedTurn) *Scripted {
	return &Scripted{turns: turns}
}

// Requests returns the message snapshots passed to each GenerateStream call,
// in call order.
func (m *Scripted) Requests() [][]stagehand.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]stagehand.Message, len(m.requests))
	copy(out, m.requests)
	return out
}

// Calls returns how many times GenerateStream has been called.
func (m *Scripted) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// GenerateStream implements stagehand.StreamingModel.
func (m *Scripted) GenerateStream(
	_ context.Context,
	messages []stagehand.Message,
	_ []stagehand.ToolDef,
	_ stagehand.Options,
) (stagehand.Stream, error) {
	m.mu.Lock()
	snapshot := make([]stagehand.Message, len(messages))
	copy(snapshot, messages)
	m.requests = append(m.requests, snapshot)

	exhausted := m.next >= len(m.turns)
	var turn ScriptedTurn
	if !exhausted {
		turn = m.turns[m.next]
		m.next++
	}
	callIndex := len(m.requests)
	m.mu.Unlock()

	buf := buffer.NewUnbounded[stagehand.StreamChunk]()
	go func() {
		defer buf.Close()

		if exhausted {
			buf.Push(stagehand.StreamChunk{
				Err: fmt.Errorf("scripted model: no turn for call %d", callIndex),
			})
			return
		}

		if turn.Thinking != "" {
			buf.Push(stagehand.StreamChunk{Thinking: turn.Thinking})
		}
		for _, fragment := range splitRunes(turn.Content, turn.ChunkSize) {
			buf.Push(stagehand.StreamChunk{Content: fragment})
		}
		if turn.Err != nil {
			buf.Push(stagehand.StreamChunk{Err: turn.Err})
			return
		}
		for i, call := range turn.Calls {
			buf.Push(stagehand.StreamChunk{ToolCalls: []stagehand.ToolCallDelta{
				{Index: i, ID: call.ID, Name: call.Name},
			}})
			buf.Push(stagehand.StreamChunk{ToolCalls: []stagehand.ToolCallDelta{
				{Index: i, Arguments: call.Arguments},
			}})
		}
	}()

	return chunkStream{out: buf.Out()}, nil
}

// splitRunes cuts s into fragments of at most size runes. Size zero or less
// returns s whole.
func splitRunes(s string, size int) []string {
	if s == "" {
		return nil
	}
	if size <= 0 {
		return []string{s}
	}
	runes := []rune(s)
	out := make([]string, 0, len(runes)/size+1)
	for start := 0; start < len(runes); start += size {
		end := min(start+size, len(runes))
		out = append(out, string(runes[start:end]))
	}
	return out
}

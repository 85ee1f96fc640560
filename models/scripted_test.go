package models

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stagehand-dev/stagehand"
)

func drain(t *testing.T, s stagehand.Stream) []stagehand.StreamChunk {
	t.Helper()
	var out []stagehand.StreamChunk
	for chunk := range s.Chunks() {
		out = append(out, chunk)
	}
	return out
}

func TestScripted_PlaysTurnsInOrder(t *testing.T) {
	model := NewScripted(
		ScriptedTurn{Thinking: "hmm", Content: "first"},
		ScriptedTurn{Content: "second"},
	)
	ctx := context.Background()

	stream, err := model.GenerateStream(ctx, []stagehand.Message{
		stagehand.UserMessage("one"),
	}, nil, stagehand.Options{})
	require.NoError(t, err)
	chunks := drain(t, stream)
	require.Len(t, chunks, 2)
	assert.Equal(t, "hmm", chunks[0].Thinking)
	assert.Equal(t, "first", chunks[1].Content)

	stream, err = model.GenerateStream(ctx, []stagehand.Message{
		stagehand.UserMessage("two"),
	}, nil, stagehand.Options{})
	require.NoError(t, err)
	chunks = drain(t, stream)
	require.Len(t, chunks, 1)
	assert.Equal(t, "second", chunks[0].Content)

	requests := model.Requests()
	require.Len(t, requests, 2)
	assert.Equal(t, "one", requests[0][0].Content)
	assert.Equal(t, "two", requests[1][0].Content)
}

func TestScripted_FragmentsContentAndCalls(t *testing.T) {
	model := NewScripted(
		ScriptedTurn{
			Content:   "abcdefg",
			ChunkSize: 3,
			Calls: []stagehand.ToolCall{
				{ID: "call_1", Name: "lookup", Arguments: `{"a": 1}`},
			},
		},
	)

	stream, err := model.GenerateStream(context.Background(), nil, nil, stagehand.Options{})
	require.NoError(t, err)
	chunks := drain(t, stream)

	// 3 content fragments + 2 tool-call deltas.
	require.Len(t, chunks, 5)
	assert.Equal(t, "abc", chunks[0].Content)
	assert.Equal(t, "def", chunks[1].Content)
	assert.Equal(t, "g", chunks[2].Content)

	require.Len(t, chunks[3].ToolCalls, 1)
	assert.Equal(t, "call_1", chunks[3].ToolCalls[0].ID)
	assert.Equal(t, "lookup", chunks[3].ToolCalls[0].Name)
	require.Len(t, chunks[4].ToolCalls, 1)
	assert.Equal(t, `{"a": 1}`, chunks[4].ToolCalls[0].Arguments)
}

func TestScripted_ErrorTurnAndExhaustion(t *testing.T) {
	boom := errors.New("boom")
	model := NewScripted(
		ScriptedTurn{Content: "partial", Err: boom},
	)
	ctx := context.Background()

	stream, err := model.GenerateStream(ctx, nil, nil, stagehand.Options{})
	require.NoError(t, err)
	chunks := drain(t, stream)
	require.Len(t, chunks, 2)
	assert.ErrorIs(t, chunks[1].Err, boom)

	// Past the end of the script every stream fails.
	stream, err = model.GenerateStream(ctx, nil, nil, stagehand.Options{})
	require.NoError(t, err)
	chunks = drain(t, stream)
	require.Len(t, chunks, 1)
	assert.ErrorContains(t, chunks[0].Err, "no turn")
}

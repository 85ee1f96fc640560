package stagehand

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedPhaseWithTools appends a typical phase shape: user prompt, assistant
// with tool calls, tool results, final assistant answer.
func seedPhaseWithTools(t *Transcript, prompt, answer string) {
	call := ToolCall{ID: "call_1", Name: "lookup", Arguments: `{}`}
	t.Append(UserMessage(prompt))
	t.Append(AssistantMessage("checking", call))
	t.Append(ToolResultMessage(call, "found it"))
	t.Append(AssistantMessage(answer))
}

func TestTranscript_AppendKeepsViewsInLockstep(t *testing.T) {
	tr := NewTranscript()
	tr.Append(UserMessage("hello"))
	tr.Append(AssistantMessage("hi"))

	assert.Equal(t, tr.Permanent(), tr.ContextView())
	assert.Equal(t, 2, tr.Len())
	assert.Equal(t, 2, tr.ContextLen())
}

func TestTranscript_AddSystemOnlyOnce(t *testing.T) {
	tr := NewTranscript()

	assert.True(t, tr.AddSystem("first"))
	assert.False(t, tr.AddSystem("second"))

	permanent := tr.Permanent()
	require.Len(t, permanent, 1)
	assert.Equal(t, RoleSystem, permanent[0].Role)
	assert.Equal(t, "first", permanent[0].Content)
}

func TestTranscript_PhaseMessages(t *testing.T) {
	tr := NewTranscript()
	tr.BeginPhase()
	tr.Append(UserMessage("phase one"))
	tr.Append(AssistantMessage("done one"))

	tr.BeginPhase()
	tr.Append(UserMessage("phase two"))
	tr.Append(AssistantMessage("done two"))

	msgs := tr.PhaseMessages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "phase two", msgs[0].Content)
	assert.Equal(t, "done two", msgs[1].Content)
}

func TestTranscript_PurgeToolCalls(t *testing.T) {
	tr := NewTranscript()

	// Earlier phase keeps its tool traffic.
	tr.BeginPhase()
	seedPhaseWithTools(tr, "phase one", "answer one")

	tr.BeginPhase()
	seedPhaseWithTools(tr, "phase two", "answer two")
	permanentBefore := tr.Permanent()

	tr.Purge([]PurgeDirective{PurgeToolCalls})

	// Permanent record untouched.
	assert.Equal(t, permanentBefore, tr.Permanent())

	view := tr.ContextView()
	require.Len(t, view, 7)

	// Phase one intact, including its tool message.
	assert.Equal(t, RoleTool, view[2].Role)
	assert.True(t, view[1].HasToolCalls())

	// Phase two: tool result gone, assistant stripped of calls, content kept.
	assert.Equal(t, "phase two", view[4].Content)
	assert.Equal(t, RoleAssistant, view[5].Role)
	assert.Equal(t, "checking", view[5].Content)
	assert.False(t, view[5].HasToolCalls())
	assert.Equal(t, "answer two", view[6].Content)
}

func TestTranscript_PurgeToolCallsStripsMultipleCalls(t *testing.T) {
	tr := NewTranscript()
	tr.BeginPhase()

	// One assistant turn carrying two calls, each with its own result.
	first := ToolCall{ID: "call_1", Name: "lookup", Arguments: `{"id": 1}`}
	second := ToolCall{ID: "call_2", Name: "lookup", Arguments: `{"id": 2}`}
	tr.Append(UserMessage("prompt"))
	tr.Append(AssistantMessage("checking both", first, second))
	tr.Append(ToolResultMessage(first, "result one"))
	tr.Append(ToolResultMessage(second, "result two"))
	tr.Append(AssistantMessage("answer"))

	tr.Purge([]PurgeDirective{PurgeToolCalls})

	view := tr.ContextView()
	require.Len(t, view, 3)
	assert.Equal(t, "prompt", view[0].Content)
	assert.Equal(t, "checking both", view[1].Content)
	assert.False(t, view[1].HasToolCalls())
	assert.Equal(t, "answer", view[2].Content)

	// Both calls survive in the permanent record.
	permanent := tr.Permanent()
	require.Len(t, permanent, 5)
	assert.Len(t, permanent[1].ToolCalls, 2)
}

func TestTranscript_PurgeAllToolCalls(t *testing.T) {
	tr := NewTranscript()
	tr.BeginPhase()
	seedPhaseWithTools(tr, "phase one", "answer one")
	tr.BeginPhase()
	seedPhaseWithTools(tr, "phase two", "answer two")

	tr.Purge([]PurgeDirective{PurgeAllToolCalls})

	view := tr.ContextView()
	require.Len(t, view, 6)
	for _, msg := range view {
		assert.NotEqual(t, RoleTool, msg.Role)
		assert.False(t, msg.HasToolCalls())
	}
	assert.Equal(t, "answer one", view[2].Content)
	assert.Equal(t, "answer two", view[5].Content)
}

func TestTranscript_PurgePreviousMessages(t *testing.T) {
	tr := NewTranscript()
	tr.AddSystem("system")
	tr.BeginPhase()
	seedPhaseWithTools(tr, "phase one", "answer one")

	tr.BeginPhase()
	tr.Append(UserMessage("phase two"))
	tr.Append(AssistantMessage("answer two"))

	tr.Purge([]PurgeDirective{PurgePreviousMessages})

	view := tr.ContextView()
	require.Len(t, view, 2)
	assert.Equal(t, "phase two", view[0].Content)
	assert.Equal(t, "answer two", view[1].Content)

	// Permanent record still has everything, system included.
	assert.Equal(t, 7, tr.Len())
}

func TestTranscript_PurgeCombined(t *testing.T) {
	// all-tool-calls removes tool messages before the phase boundary, which
	// must not shift what previous-messages keeps.
	tr := NewTranscript()
	tr.AddSystem("system")
	tr.BeginPhase()
	seedPhaseWithTools(tr, "phase one", "answer one")

	tr.BeginPhase()
	seedPhaseWithTools(tr, "phase two", "answer two")

	tr.Purge([]PurgeDirective{PurgeAllToolCalls, PurgePreviousMessages})

	view := tr.ContextView()
	require.Len(t, view, 3)
	assert.Equal(t, "phase two", view[0].Content)
	assert.Equal(t, "checking", view[1].Content)
	assert.False(t, view[1].HasToolCalls())
	assert.Equal(t, "answer two", view[2].Content)
}

func TestTranscript_PurgeWithNoDirectivesIsNoop(t *testing.T) {
	tr := NewTranscript()
	tr.BeginPhase()
	seedPhaseWithTools(tr, "phase", "answer")
	before := tr.ContextView()

	tr.Purge(nil)

	assert.Equal(t, before, tr.ContextView())
}

func TestTranscript_RewriteLastAssistantContent(t *testing.T) {
	tr := NewTranscript()
	tr.Append(UserMessage("question"))
	tr.Append(AssistantMessage("draft"))
	call := ToolCall{ID: "call_1", Name: "lookup"}
	tr.Append(ToolResultMessage(call, "data"))

	assert.True(t, tr.RewriteLastAssistantContent("canonical"))

	permanent := tr.Permanent()
	assert.Equal(t, "canonical", permanent[1].Content)

	empty := NewTranscript()
	assert.False(t, empty.RewriteLastAssistantContent("nothing"))
}

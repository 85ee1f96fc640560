package stagehand

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessageConstructors(t *testing.T) {
	call := ToolCall{ID: "call_1", Name: "lookup", Arguments: `{"id": 1}`}

	system := SystemMessage("sys")
	assert.Equal(t, RoleSystem, system.Role)

	user := UserMessage("hi")
	assert.Equal(t, RoleUser, user.Role)

	assistant := AssistantMessage("checking", call)
	assert.Equal(t, RoleAssistant, assistant.Role)
	assert.True(t, assistant.HasToolCalls())

	result := ToolResultMessage(call, "data")
	assert.Equal(t, RoleTool, result.Role)
	assert.Equal(t, "call_1", result.ToolCallID)
	assert.Equal(t, "lookup", result.ToolName)
	assert.Equal(t, "data", result.Content)
}

func TestMessage_WithoutToolCalls(t *testing.T) {
	call := ToolCall{ID: "call_1", Name: "lookup"}
	msg := AssistantMessage("checking", call)

	stripped := msg.WithoutToolCalls()
	assert.False(t, stripped.HasToolCalls())
	assert.Equal(t, "checking", stripped.Content)

	// The original is untouched.
	assert.True(t, msg.HasToolCalls())
}

func TestParsePurgeDirective(t *testing.T) {
	for _, valid := range []string{"tool-calls", "all-tool-calls", "previous-messages"} {
		d, err := ParsePurgeDirective(valid)
		assert.NoError(t, err)
		assert.Equal(t, PurgeDirective(valid), d)
	}

	_, err := ParsePurgeDirective("everything")
	assert.Error(t, err)
}

package stagehand

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// ToolCall is a model-issued request to invoke a named tool.
//
// During streaming the fields arrive as fragments merged by slot index (see
// [StreamAccumulator]); once the stream ends, Arguments must parse as JSON.
type ToolCall struct {
	// ID is an opaque identifier, unique within the round that created it.
	ID string

	// Name is the tool's function name. It must match a registered tool.
	Name string

	// Arguments is the accumulated arguments text. It is kept as raw text
	// until execution time, when it is parsed as JSON.
	Arguments string
}

// Message is one conversation turn.
//
// Messages are never mutated after being appended to the permanent record,
// with one exception: response-schema validation may rewrite the Content of a
// phase's last assistant message in place. Purges operate on the context view
// only and never touch the permanent record.
type Message struct {
	Role Role

	// Content is the turn's text. May be empty on assistant turns that are
	// pure tool-call requests.
	Content string

	// ToolCalls is present only on assistant turns that requested tool use.
	ToolCalls []ToolCall

	// ToolCallID and ToolName are present only on tool-result turns and
	// correlate the result to the ToolCall that produced it.
	ToolCallID string
	ToolName   string
}

// SystemMessage builds a system-role message.
func SystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// UserMessage builds a user-role message.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// AssistantMessage builds an assistant-role message with optional tool calls.
func AssistantMessage(content string, calls ...ToolCall) Message {
	return Message{Role: RoleAssistant, Content: content, ToolCalls: calls}
}

// ToolResultMessage builds a tool-result message correlated to a ToolCall.
func ToolResultMessage(call ToolCall, content string) Message {
	return Message{
		Role:       RoleTool,
		Content:    content,
		ToolCallID: call.ID,
		ToolName:   call.Name,
	}
}

// HasToolCalls reports whether the message carries tool-call requests.
func (m Message) HasToolCalls() bool {
	return len(m.ToolCalls) > 0
}

// WithoutToolCalls returns a copy of the message with the ToolCalls field
// stripped but the content kept. Used by the tool-call purge directives.
func (m Message) WithoutToolCalls() Message {
	m.ToolCalls = nil
	return m
}

// cloneMessages copies a message slice so later appends or purges on one view
// cannot alias the other.
func cloneMessages(msgs []Message) []Message {
	out := make([]Message, len(msgs))
	copy(out, msgs)
	return out
}

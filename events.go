package stagehand

import "time"

// HookEvent is a marker interface for all hook events.
type HookEvent interface {
	hookEvent()
}

// -----------------------------------------------------------------------------
// Phase Events
// -----------------------------------------------------------------------------

// PhaseStartEvent is emitted once per phase, before its first round.
type PhaseStartEvent struct {
	// Phase is the phase name.
	Phase string

	// Index is the phase's position in the run (0-based).
	Index int
}

func (PhaseStartEvent) hookEvent() {}

// PhaseEndEvent is emitted once per phase after purge and validation, with
// the permanent-record messages the phase appended.
type PhaseEndEvent struct {
	Phase string

	// Messages are the permanent-record messages appended during the phase.
	Messages []Message

	// Rounds is the number of model-call rounds the phase ran.
	Rounds int
}

func (PhaseEndEvent) hookEvent() {}

// -----------------------------------------------------------------------------
// Round / Model Call Events
// -----------------------------------------------------------------------------

// BeforeModelCallEvent is emitted before each model call.
type BeforeModelCallEvent struct {
	Phase string
	Round int

	// Messages is the context view being sent.
	Messages []Message

	// Tools is the active tool definition list.
	Tools []ToolDef

	// Options is the merged option set for this call.
	Options Options
}

func (BeforeModelCallEvent) hookEvent() {}

// AfterModelCallEvent is emitted after each model call's stream is fully
// consumed.
type AfterModelCallEvent struct {
	Phase string
	Round int

	// Content is the accumulated response text.
	Content string

	// Thinking is the accumulated reasoning text.
	Thinking string

	// ToolCalls are the fully merged tool calls of the round.
	ToolCalls []ToolCall

	// Duration is how long the call took.
	Duration time.Duration

	// Err is the stream failure, if any.
	Err error
}

func (AfterModelCallEvent) hookEvent() {}

// -----------------------------------------------------------------------------
// Streaming Chunk Events
// -----------------------------------------------------------------------------

// ThinkingChunkEvent carries one reasoning delta, forwarded as it arrives.
// Thinking text is observable but never stored in message content.
type ThinkingChunkEvent struct {
	Phase string
	Round int
	Text  string
}

func (ThinkingChunkEvent) hookEvent() {}

// ContentChunkEvent carries one response-text delta, forwarded as it arrives.
type ContentChunkEvent struct {
	Phase string
	Round int
	Text  string
}

func (ContentChunkEvent) hookEvent() {}

// -----------------------------------------------------------------------------
// Tool Events
// -----------------------------------------------------------------------------

// ToolCallEvent is emitted at most once per tool-call ID, the first time the
// ID becomes known during stream accumulation. Name and Arguments may still
// be partial at that point.
type ToolCallEvent struct {
	Phase string
	Round int
	Call  ToolCall
}

func (ToolCallEvent) hookEvent() {}

// ToolResponseEvent is emitted exactly once per executed tool call, with the
// final outcome after the retry discipline has converged.
type ToolResponseEvent struct {
	Phase string
	Round int
	Call  ToolCall

	// Result is the text appended as the call's final tool-result message:
	// the stringified tool output on success, the terminal diagnostic
	// otherwise.
	Result string

	// Err is the final execution error, nil on success.
	Err error

	// Attempts is how many execution attempts were made.
	Attempts int

	// Duration covers all attempts.
	Duration time.Duration
}

func (ToolResponseEvent) hookEvent() {}

// -----------------------------------------------------------------------------
// Validation Events
// -----------------------------------------------------------------------------

// ValidationEvent is emitted when a phase declares a response schema and the
// engine validated the final content against it. Validation failure is never
// fatal; this event is the only record of it.
type ValidationEvent struct {
	Phase string

	// Valid reports whether the content parsed and matched the schema.
	Valid bool

	// Err is the parse or validation error when Valid is false.
	Err error

	// Content is the content that was validated (the original text, not the
	// canonical rewrite).
	Content string
}

func (ValidationEvent) hookEvent() {}

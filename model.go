package stagehand

import "context"

// StreamingModel abstracts one call to a chat-completion endpoint that yields
// an incremental sequence of fragments. Implementations live outside the
// core (see the models package for a LangChainGo-backed adapter and a
// scripted one for tests); the engine only consumes the normalized stream.
//
// The returned stream must be lazy, single-pass, and finite: it terminates
// even when no content or tool call was produced. The engine does not retry
// failed calls; an error here or on a chunk aborts the current round.
type StreamingModel interface {
	GenerateStream(
		ctx context.Context,
		messages []Message,
		tools []ToolDef,
		opts Options,
	) (Stream, error)
}

// Stream is a finite sequence of StreamChunks. The channel is closed by the
// producer when the model's turn ends.
type Stream interface {
	// Chunks returns the channel of fragments. Consume it to completion;
	// an Err chunk ends the stream.
	Chunks() <-chan StreamChunk
}

// StreamChunk is one fragment of a model turn. Any combination of fields may
// be set; empty fields mean "nothing of that kind in this fragment".
type StreamChunk struct {
	// Content is a delta of the response text.
	Content string

	// Thinking is a delta of the model's reasoning text. It is forwarded to
	// observers but never stored in message content.
	Thinking string

	// ToolCalls carries indexed tool-call deltas to be merged by slot index.
	ToolCalls []ToolCallDelta

	// Err aborts the round when non-nil.
	Err error
}

// ToolCallDelta is a fragment of a tool call. The same Index may appear in
// many fragments; ID and Name stick once seen, Arguments concatenates in
// arrival order.
type ToolCallDelta struct {
	// Index is the tool call's position in the model's turn, the key under
	// which fragments accumulate.
	Index int

	// ID is the opaque tool-call identifier, possibly empty until the
	// provider emits it.
	ID string

	// Name is a fragment of the function name.
	Name string

	// Arguments is a fragment of the JSON arguments text.
	Arguments string
}

// Package models adapts concrete LLM clients to the engine's streaming
// model interface.
package models

import (
	"context"

	"github.com/tmc/langchaingo/llms"

	"github.com/stagehand-dev/stagehand"
	"github.com/stagehand-dev/stagehand/internal/buffer"
)

// LangChain wraps an llms.Model and implements stagehand.StreamingModel.
//
// Content and reasoning chunks stream as the provider emits them; tool calls
// arrive with the final response and are delivered as a single chunk of
// whole-call deltas. The returned stream buffers without bound, so a slow
// consumer never backpressures the provider connection.
//
//	llm, _ := openai.New(openai.WithToken(apiKey))
//	model := models.NewLangChain(llm)
//	runner := stagehand.NewRunner(model, tools)
type LangChain struct {
	model llms.Model
}

var _ stagehand.StreamingModel = (*LangChain)(nil)

// NewLangChain creates a LangChain adapter around the given llms.Model.
func NewLangChain(model llms.Model) *LangChain {
	return &LangChain{model: model}
}

// Unwrap returns the underlying llms.Model.
func (m *LangChain) Unwrap() llms.Model {
	return m.model
}

// GenerateStream implements stagehand.StreamingModel.
func (m *LangChain) GenerateStream(
	ctx context.Context,
	messages []stagehand.Message,
	tools []stagehand.ToolDef,
	opts stagehand.Options,
) (stagehand.Stream, error) {
	buf := buffer.NewUnbounded[stagehand.StreamChunk]()

	// streamedContent tracks whether the provider delivered content through
	// the callback. Both the callback and the check below run inside the
	// goroutine's GenerateContent call, so no locking is needed.
	streamedContent := false

	callOpts := buildCallOptions(opts, tools)
	callOpts = append(callOpts, llms.WithStreamingReasoningFunc(
		func(_ context.Context, reasoningChunk, contentChunk []byte) error {
			if len(reasoningChunk) > 0 {
				buf.Push(stagehand.StreamChunk{Thinking: string(reasoningChunk)})
			}
			if len(contentChunk) > 0 {
				streamedContent = true
				buf.Push(stagehand.StreamChunk{Content: string(contentChunk)})
			}
			return nil
		},
	))

	converted := convertMessages(messages)

	go func() {
		defer buf.Close()

		resp, err := m.model.GenerateContent(ctx, converted, callOpts...)
		if err != nil {
			buf.Push(stagehand.StreamChunk{Err: err})
			return
		}
		if resp == nil || len(resp.Choices) == 0 {
			return
		}
		choice := resp.Choices[0]

		// Providers without streaming support return everything in the
		// final response.
		if !streamedContent && choice.Content != "" {
			buf.Push(stagehand.StreamChunk{Content: choice.Content})
		}

		if len(choice.ToolCalls) > 0 {
			deltas := make([]stagehand.ToolCallDelta, 0, len(choice.ToolCalls))
			for i, tc := range choice.ToolCalls {
				delta := stagehand.ToolCallDelta{Index: i, ID: tc.ID}
				if tc.FunctionCall != nil {
					delta.Name = tc.FunctionCall.Name
					delta.Arguments = tc.FunctionCall.Arguments
				}
				deltas = append(deltas, delta)
			}
			buf.Push(stagehand.StreamChunk{ToolCalls: deltas})
		}
	}()

	return chunkStream{out: buf.Out()}, nil
}

// chunkStream exposes the buffer's output channel as a stagehand.Stream.
type chunkStream struct {
	out <-chan stagehand.StreamChunk
}

var _ stagehand.Stream = chunkStream{}

func (s chunkStream) Chunks() <-chan stagehand.StreamChunk {
	return s.out
}

// buildCallOptions maps engine options onto langchaingo call options.
// StreamThinking is requested whenever a think level is set; the streaming
// callback is appended by the caller so it always takes effect.
func buildCallOptions(opts stagehand.Options, tools []stagehand.ToolDef) []llms.CallOption {
	out := make([]llms.CallOption, 0, 8)
	if opts.Model != "" {
		out = append(out, llms.WithModel(opts.Model))
	}
	if opts.Temperature != nil {
		out = append(out, llms.WithTemperature(*opts.Temperature))
	}
	if opts.TopP != nil {
		out = append(out, llms.WithTopP(*opts.TopP))
	}
	if opts.MaxTokens > 0 {
		out = append(out, llms.WithMaxTokens(opts.MaxTokens))
	}
	if opts.Think != stagehand.ThinkOff {
		out = append(out, llms.WithStreamThinking(true))
	}
	if len(tools) > 0 {
		out = append(out, llms.WithTools(convertTools(tools)))
	}
	return out
}

func convertMessages(messages []stagehand.Message) []llms.MessageContent {
	out := make([]llms.MessageContent, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case stagehand.RoleSystem:
			out = append(out, llms.TextParts(llms.ChatMessageTypeSystem, msg.Content))
		case stagehand.RoleUser:
			out = append(out, llms.TextParts(llms.ChatMessageTypeHuman, msg.Content))
		case stagehand.RoleAssistant:
			mc := llms.MessageContent{Role: llms.ChatMessageTypeAI}
			if msg.Content != "" {
				mc.Parts = append(mc.Parts, llms.TextContent{Text: msg.Content})
			}
			for _, call := range msg.ToolCalls {
				mc.Parts = append(mc.Parts, llms.ToolCall{
					ID:   call.ID,
					Type: "function",
					FunctionCall: &llms.FunctionCall{
						Name:      call.Name,
						Arguments: call.Arguments,
					},
				})
			}
			out = append(out, mc)
		case stagehand.RoleTool:
			out = append(out, llms.MessageContent{
				Role: llms.ChatMessageTypeTool,
				Parts: []llms.ContentPart{
					llms.ToolCallResponse{
						ToolCallID: msg.ToolCallID,
						Name:       msg.ToolName,
						Content:    msg.Content,
					},
				},
			})
		}
	}
	return out
}

func convertTools(tools []stagehand.ToolDef) []llms.Tool {
	out := make([]llms.Tool, 0, len(tools))
	for _, def := range tools {
		out = append(out, llms.Tool{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        def.Name,
				Description: def.Description,
				Parameters:  def.Parameters,
			},
		})
	}
	return out
}

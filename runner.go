package stagehand

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// DefaultMaxRounds is the hard ceiling on model-call rounds per phase. It is
// a liveness guarantee, not a latency guarantee: exhausting it while the
// model still requests tool calls is fatal to the run.
const DefaultMaxRounds = 30

// Runner is the phase execution engine. It owns the conversation state for
// one agent run, alternates model calls and tool executions per phase, and
// enforces the retry and termination policy.
//
// Phases execute strictly sequentially, rounds within a phase strictly
// sequentially, and tool calls within a round strictly sequentially. The
// Runner is not safe for concurrent use; build one per run.
type Runner struct {
	model      StreamingModel
	registry   *Registry
	transcript *Transcript

	systemPrompt string
	opts         Options
	vars         map[string]string
	tp           TimeProvider
	hooks        HookFirer
	maxRounds    int
}

// NewRunner creates a Runner for one agent run. A nil registry means no
// tools are available.
func NewRunner(model StreamingModel, registry *Registry) *Runner {
	if registry == nil {
		registry = NewRegistry()
	}
	return &Runner{
		model:      model,
		registry:   registry,
		transcript: NewTranscript(),
		vars:       make(map[string]string),
		tp:         NewDefaultTimeProvider(),
		hooks:      nopFirer{},
		maxRounds:  DefaultMaxRounds,
	}
}

// WithSystemPrompt sets the system prompt template, rendered and inserted
// exactly once at the start of the first phase.
func (r *Runner) WithSystemPrompt(prompt string) *Runner {
	r.systemPrompt = prompt
	return r
}

// WithOptions sets the run-level base options. Phase options layer on top.
func (r *Runner) WithOptions(opts Options) *Runner {
	r.opts = opts
	return r
}

// WithVar binds one template variable.
func (r *Runner) WithVar(key, value string) *Runner {
	r.vars[key] = value
	return r
}

// WithVars binds a set of template variables, merging over existing ones.
func (r *Runner) WithVars(vars map[string]string) *Runner {
	for k, v := range vars {
		r.vars[k] = v
	}
	return r
}

// WithTimeProvider overrides the time source for {{CURRENT_DATE}}.
// Use a MockTimeProvider in tests.
func (r *Runner) WithTimeProvider(tp TimeProvider) *Runner {
	r.tp = tp
	return r
}

// WithHooks sets the hook dispatcher, typically a hooks.Registry.
func (r *Runner) WithHooks(firer HookFirer) *Runner {
	if firer == nil {
		firer = nopFirer{}
	}
	r.hooks = firer
	return r
}

// WithMaxRounds overrides the per-phase round ceiling.
func (r *Runner) WithMaxRounds(n int) *Runner {
	if n > 0 {
		r.maxRounds = n
	}
	return r
}

// Transcript returns the runner's message store. After a failed run it still
// holds the permanent record accumulated up to the failure, for partial
// output.
func (r *Runner) Transcript() *Transcript {
	return r.transcript
}

// PhaseResult summarizes one completed phase.
type PhaseResult struct {
	// Name is the phase name.
	Name string

	// Rounds is the number of model-call rounds the phase ran.
	Rounds int

	// ToolCalls is the number of tool invocations the phase executed.
	ToolCalls int

	// Messages are the permanent-record messages the phase appended.
	Messages []Message
}

// RunResult is the outcome of a successful run.
type RunResult struct {
	// Phases holds per-phase summaries in execution order.
	Phases []PhaseResult

	// Messages is the full permanent record.
	Messages []Message
}

// Run executes the phases in order against the runner's single Transcript.
// It returns the full permanent record on success, or the first fatal error
// (always a *PhaseError); on error, use Transcript for the partial record.
func (r *Runner) Run(ctx context.Context, phases []Phase) (*RunResult, error) {
	result := &RunResult{}
	for i, phase := range phases {
		pr, err := r.runPhase(ctx, i, phase)
		if err != nil {
			return nil, err
		}
		result.Phases = append(result.Phases, pr)
	}
	result.Messages = r.transcript.Permanent()
	return result, nil
}

// RunPhase executes a single phase and returns the permanent-record messages
// it appended. Most callers should use Run; RunPhase exists for callers that
// interleave phases with their own logic.
func (r *Runner) RunPhase(ctx context.Context, phase Phase) ([]Message, error) {
	pr, err := r.runPhase(ctx, 0, phase)
	if err != nil {
		return nil, err
	}
	return pr.Messages, nil
}

func (r *Runner) runPhase(ctx context.Context, index int, phase Phase) (PhaseResult, error) {
	if err := phase.validate(); err != nil {
		return PhaseResult{}, phaseErr(phase.Name, 0, err)
	}

	r.transcript.BeginPhase()

	// The system message goes in exactly once, at the start of the first
	// phase of the run.
	if r.systemPrompt != "" {
		r.transcript.AddSystem(RenderTemplate(r.systemPrompt, r.vars, r.tp))
	}
	r.transcript.Append(UserMessage(RenderTemplate(phase.Prompt, r.vars, r.tp)))

	r.hooks.FirePhaseStart(ctx, PhaseStartEvent{Phase: phase.Name, Index: index})

	active, defs := r.activeTools(phase)
	opts := r.opts.Merge(phase.Options)

	var (
		finalContent string
		rounds       int
		toolCalls    int
		done         bool
	)

	for round := 1; round <= r.maxRounds; round++ {
		rounds = round

		content, calls, err := r.callModel(ctx, phase, round, defs, opts)
		if err != nil {
			return PhaseResult{}, phaseErr(phase.Name, round, err)
		}

		if content != "" || len(calls) > 0 {
			r.transcript.Append(AssistantMessage(content, calls...))
		}
		// Track the last round that actually said something: an empty final
		// round must not mask earlier content from response validation.
		if content != "" {
			finalContent = content
		}

		// No tool calls means the model is done with this phase. A round
		// that produced neither content nor calls also ends the loop,
		// without appending anything.
		if len(calls) == 0 {
			done = true
			break
		}

		// Sequential execution, one tool-result message per call; the model
		// sees all results in the next round.
		for _, call := range calls {
			toolCalls++
			if err := r.executeToolCall(ctx, phase, round, active, call); err != nil {
				return PhaseResult{}, phaseErr(phase.Name, round, err)
			}
		}
	}

	if !done {
		return PhaseResult{}, phaseErr(phase.Name, r.maxRounds, fmt.Errorf(
			"%w: %d rounds with tool calls still outstanding",
			ErrMaxRounds, r.maxRounds,
		))
	}

	// Purge only reshapes what later phases see; the permanent record is
	// untouched.
	r.transcript.Purge(phase.Purge)

	r.validateResponse(ctx, phase, finalContent)

	msgs := r.transcript.PhaseMessages()
	r.hooks.FirePhaseEnd(ctx, PhaseEndEvent{
		Phase:    phase.Name,
		Messages: msgs,
		Rounds:   rounds,
	})

	return PhaseResult{
		Name:      phase.Name,
		Rounds:    rounds,
		ToolCalls: toolCalls,
		Messages:  msgs,
	}, nil
}

// activeTools resolves the phase's tool set: the phase subset replaces the
// run-wide set when non-empty.
func (r *Runner) activeTools(phase Phase) (map[string]Tool, []ToolDef) {
	names := phase.Tools
	if len(names) == 0 {
		names = r.registry.Names()
	}
	active := make(map[string]Tool, len(names))
	for _, name := range names {
		if t, ok := r.registry.Get(name); ok {
			active[name] = t
		}
	}
	return active, r.registry.Subset(names)
}

// callModel performs one round's model call and consumes the stream to
// completion, forwarding chunk observations to hooks.
func (r *Runner) callModel(
	ctx context.Context,
	phase Phase,
	round int,
	defs []ToolDef,
	opts Options,
) (string, []ToolCall, error) {
	r.hooks.FireBeforeModelCall(ctx, BeforeModelCallEvent{
		Phase:    phase.Name,
		Round:    round,
		Messages: r.transcript.ContextView(),
		Tools:    defs,
		Options:  opts,
	})

	start := time.Now()
	stream, err := r.model.GenerateStream(ctx, r.transcript.ContextView(), defs, opts)
	if err != nil {
		err = fmt.Errorf("round %d failed: %w", round, err)
		r.hooks.FireAfterModelCall(ctx, AfterModelCallEvent{
			Phase: phase.Name, Round: round, Err: err,
		})
		return "", nil, err
	}

	acc := NewStreamAccumulator()
	var streamErr error
	for chunk := range stream.Chunks() {
		if chunk.Err != nil {
			streamErr = chunk.Err
			break
		}
		if chunk.Thinking != "" {
			r.hooks.FireThinkingChunk(ctx, ThinkingChunkEvent{
				Phase: phase.Name, Round: round, Text: chunk.Thinking,
			})
		}
		if chunk.Content != "" {
			r.hooks.FireContentChunk(ctx, ContentChunkEvent{
				Phase: phase.Name, Round: round, Text: chunk.Content,
			})
		}
		for _, call := range acc.Add(chunk) {
			r.hooks.FireToolCall(ctx, ToolCallEvent{
				Phase: phase.Name, Round: round, Call: call,
			})
		}
	}
	if streamErr != nil {
		// Drain so the producer goroutine can finish.
		for range stream.Chunks() {
		}
		err := fmt.Errorf("round %d failed: %w", round, streamErr)
		r.hooks.FireAfterModelCall(ctx, AfterModelCallEvent{
			Phase: phase.Name, Round: round, Err: err, Duration: time.Since(start),
		})
		return "", nil, err
	}

	content, calls := acc.Content(), acc.ToolCalls()
	r.hooks.FireAfterModelCall(ctx, AfterModelCallEvent{
		Phase:     phase.Name,
		Round:     round,
		Content:   content,
		Thinking:  acc.Thinking(),
		ToolCalls: calls,
		Duration:  time.Since(start),
	})
	return content, calls, nil
}

// executeToolCall resolves and runs one tool call under the bounded-local
// retry discipline, appending tool-result messages as it goes.
//
// Malformed argument JSON is deterministic, so it is reported once with no
// local retry and the model is asked to correct the call. Execution errors
// are retried up to the tool's MaxRetries; every failed attempt leaves a
// diagnostic tool-result so the outcome is never silent.
func (r *Runner) executeToolCall(
	ctx context.Context,
	phase Phase,
	round int,
	active map[string]Tool,
	call ToolCall,
) error {
	tool, ok := active[call.Name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTool, call.Name)
	}

	start := time.Now()

	args, parseErr := parseToolArguments(call.Arguments)
	if parseErr != nil {
		diag := fmt.Sprintf(
			"Tool %q received invalid JSON arguments: %v. Retry the call with corrected parameters.",
			call.Name, parseErr,
		)
		r.transcript.Append(ToolResultMessage(call, diag))
		r.hooks.FireToolResponse(ctx, ToolResponseEvent{
			Phase: phase.Name, Round: round, Call: call,
			Result: diag, Err: parseErr, Attempts: 0, Duration: time.Since(start),
		})
		return nil
	}

	attempts := tool.MaxRetries() + 1
	if attempts < 1 {
		attempts = 1
	}

	var execErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		var out any
		out, execErr = tool.Execute(ctx, args)
		if execErr == nil {
			result := stringifyToolResult(out)
			r.transcript.Append(ToolResultMessage(call, result))
			r.hooks.FireToolResponse(ctx, ToolResponseEvent{
				Phase: phase.Name, Round: round, Call: call,
				Result: result, Attempts: attempt, Duration: time.Since(start),
			})
			return nil
		}
		if attempt < attempts {
			r.transcript.Append(ToolResultMessage(call, fmt.Sprintf(
				"Tool %q failed (attempt %d of %d): %v. Retrying.",
				call.Name, attempt, attempts, execErr,
			)))
		}
	}

	terminal := fmt.Sprintf(
		"Tool %q failed after %d attempts: %v",
		call.Name, attempts, execErr,
	)
	r.transcript.Append(ToolResultMessage(call, terminal))
	r.hooks.FireToolResponse(ctx, ToolResponseEvent{
		Phase: phase.Name, Round: round, Call: call,
		Result: terminal, Err: execErr, Attempts: attempts, Duration: time.Since(start),
	})
	return nil
}

// validateResponse applies the phase's response schema to its final content.
// Success rewrites the last assistant message with the canonical
// serialization; failure is reported via the validation hook and the
// original content is kept. Never fatal.
func (r *Runner) validateResponse(ctx context.Context, phase Phase, content string) {
	if phase.ResponseSchema == nil || content == "" {
		return
	}
	canonical, err := phase.ResponseSchema.ValidateJSON(content)
	if err != nil {
		r.hooks.FireValidation(ctx, ValidationEvent{
			Phase: phase.Name, Valid: false, Err: err, Content: content,
		})
		return
	}
	r.transcript.RewriteLastAssistantContent(canonical)
	r.hooks.FireValidation(ctx, ValidationEvent{
		Phase: phase.Name, Valid: true, Content: content,
	})
}

// parseToolArguments parses accumulated arguments text. An absent body is
// treated as an empty argument object, which some providers emit for
// zero-parameter tools.
func parseToolArguments(text string) (map[string]any, error) {
	if text == "" {
		return map[string]any{}, nil
	}
	var args map[string]any
	if err := json.Unmarshal([]byte(text), &args); err != nil {
		return nil, err
	}
	if args == nil {
		args = map[string]any{}
	}
	return args, nil
}

// stringifyToolResult formats a tool's output for the model: strings pass
// through verbatim, everything else is JSON-serialized.
func stringifyToolResult(out any) string {
	if s, ok := out.(string); ok {
		return s
	}
	encoded, err := json.Marshal(out)
	if err != nil {
		return fmt.Sprintf("%v", out)
	}
	return string(encoded)
}

// Package loggers provides reusable logging hooks for integration testing.
package loggers

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/stagehand-dev/stagehand"
)

// LoggerHook implements all hook interfaces and logs everything that happens
// during a run. Structured payloads are logged as YAML with block scalars
// for easy reading; nothing is truncated.
//
// Streamed chunks are written raw, without headers, so the output reads as
// the model produced it.
type LoggerHook struct {
	out io.Writer
}

var (
	_ stagehand.PhaseStartHook      = (*LoggerHook)(nil)
	_ stagehand.PhaseEndHook        = (*LoggerHook)(nil)
	_ stagehand.BeforeModelCallHook = (*LoggerHook)(nil)
	_ stagehand.AfterModelCallHook  = (*LoggerHook)(nil)
	_ stagehand.ThinkingChunkHook   = (*LoggerHook)(nil)
	_ stagehand.ContentChunkHook    = (*LoggerHook)(nil)
	_ stagehand.ToolCallHook        = (*LoggerHook)(nil)
	_ stagehand.ToolResponseHook    = (*LoggerHook)(nil)
	_ stagehand.ValidationHook      = (*LoggerHook)(nil)
)

// NewLoggerHook creates a LoggerHook that writes to stdout.
func NewLoggerHook() *LoggerHook {
	return &LoggerHook{out: os.Stdout}
}

// NewLoggerHookWithWriter creates a LoggerHook that writes to w.
func NewLoggerHookWithWriter(w io.Writer) *LoggerHook {
	return &LoggerHook{out: w}
}

func (h *LoggerHook) logEvent(name string) {
	timestamp := time.Now().Format("2006-01-02 15:04:05.000")
	fmt.Fprintf(h.out, "\n>>> [%s]: %s\n", name, timestamp)
}

func (h *LoggerHook) log(format string, args ...any) {
	fmt.Fprintf(h.out, format+"\n", args...)
}

func (h *LoggerHook) logYAML(v any) {
	data, err := yaml.Marshal(v)
	if err != nil {
		h.log("(failed to marshal: %v)", err)
		return
	}
	fmt.Fprint(h.out, string(data))
}

func (h *LoggerHook) OnPhaseStart(_ context.Context, e stagehand.PhaseStartEvent) {
	h.logEvent("PhaseStart")
	h.log("================================================================================")
	h.log("PHASE %d: %s", e.Index, e.Phase)
	h.log("================================================================================")
}

func (h *LoggerHook) OnPhaseEnd(_ context.Context, e stagehand.PhaseEndEvent) {
	h.logEvent("PhaseEnd")
	h.log("Phase: %s", e.Phase)
	h.log("Rounds: %d", e.Rounds)
	h.log("Messages appended: %d", len(e.Messages))
}

func (h *LoggerHook) OnBeforeModelCall(_ context.Context, e stagehand.BeforeModelCallEvent) {
	h.logEvent("BeforeModelCall")
	h.log("Phase: %s, Round: %d", e.Phase, e.Round)
	h.log("Context messages: %d, Tools: %d", len(e.Messages), len(e.Tools))
	h.logYAML(e.Options)
}

func (h *LoggerHook) OnAfterModelCall(_ context.Context, e stagehand.AfterModelCallEvent) {
	h.logEvent("AfterModelCall")
	h.log("Phase: %s, Round: %d, Duration: %v", e.Phase, e.Round, e.Duration)
	if e.Err != nil {
		h.log("Error: %v", e.Err)
		return
	}
	h.log("Tool calls: %d", len(e.ToolCalls))
}

func (h *LoggerHook) OnThinkingChunk(_ context.Context, e stagehand.ThinkingChunkEvent) {
	fmt.Fprint(h.out, e.Text)
}

func (h *LoggerHook) OnContentChunk(_ context.Context, e stagehand.ContentChunkEvent) {
	fmt.Fprint(h.out, e.Text)
}

func (h *LoggerHook) OnToolCall(_ context.Context, e stagehand.ToolCallEvent) {
	h.logEvent("ToolCall")
	h.log("Phase: %s, Round: %d", e.Phase, e.Round)
	h.logYAML(map[string]string{
		"id":   e.Call.ID,
		"name": e.Call.Name,
	})
}

func (h *LoggerHook) OnToolResponse(_ context.Context, e stagehand.ToolResponseEvent) {
	h.logEvent("ToolResponse")
	h.log("Phase: %s, Round: %d, Tool: %s", e.Phase, e.Round, e.Call.Name)
	h.log("Attempts: %d, Duration: %v", e.Attempts, e.Duration)
	if e.Err != nil {
		h.log("Error: %v", e.Err)
	}
	h.log("Result:")
	h.logYAML(e.Result)
}

func (h *LoggerHook) OnValidation(_ context.Context, e stagehand.ValidationEvent) {
	h.logEvent("Validation")
	h.log("Phase: %s, Valid: %v", e.Phase, e.Valid)
	if e.Err != nil {
		h.log("Error: %v", e.Err)
	}
}

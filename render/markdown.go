// Package render formats transcripts and run results for humans: terminal
// output, log files, and prompt debugging.
package render

import (
	"fmt"
	"strings"

	"github.com/stagehand-dev/stagehand"
)

// Messages renders a message sequence as markdown, one section per message.
//
// Example output:
//
//	## user
//	Find out why order #12345 is late.
//
//	## assistant
//	Checking the order.
//
//	### tool call: lookup_order (call_abc)
//	```json
//	{"order_id": "12345"}
//	```
//
//	## tool: lookup_order (call_abc)
//	{"status": "delayed"}
func Messages(msgs []stagehand.Message) string {
	var sb strings.Builder
	for i, msg := range msgs {
		if i > 0 {
			sb.WriteString("\n")
		}
		writeMessage(&sb, msg)
	}
	return sb.String()
}

func writeMessage(sb *strings.Builder, msg stagehand.Message) {
	switch msg.Role {
	case stagehand.RoleTool:
		fmt.Fprintf(sb, "## tool: %s (%s)\n", msg.ToolName, msg.ToolCallID)
	default:
		fmt.Fprintf(sb, "## %s\n", msg.Role)
	}
	if msg.Content != "" {
		sb.WriteString(msg.Content)
		sb.WriteString("\n")
	}
	for _, call := range msg.ToolCalls {
		fmt.Fprintf(sb, "\n### tool call: %s (%s)\n", call.Name, call.ID)
		sb.WriteString("```json\n")
		sb.WriteString(call.Arguments)
		sb.WriteString("\n```\n")
	}
}

// Run renders a full run result as markdown, one top-level section per
// phase.
func Run(result *stagehand.RunResult) string {
	var sb strings.Builder
	for i, phase := range result.Phases {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "# phase: %s (%d rounds, %d tool calls)\n\n",
			phase.Name, phase.Rounds, phase.ToolCalls)
		sb.WriteString(Messages(phase.Messages))
	}
	return sb.String()
}

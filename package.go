// Package stagehand is a phase execution engine for multi-step LLM agents.
//
// An agent run is a sequence of phases executed against one shared
// conversation. Each phase sends a prompt, then alternates model calls and
// tool executions until the model answers without requesting tools. Two
// views of the conversation are kept in lockstep: the permanent record,
// which holds everything for audit and final output, and the context view,
// which is what the model sees and which phases may purge to control token
// growth.
//
// # Quick Start
//
//	llm, _ := openai.New(openai.WithToken(apiKey))
//
//	tools := stagehand.NewRegistry()
//	tools.Register(stagehand.NewToolFunc(
//	    "lookup_order",
//	    "Look up order details by order ID",
//	    schema.Object(map[string]*schema.Property{
//	        "order_id": schema.String("The order ID"),
//	    }, "order_id"),
//	    func(ctx context.Context, args map[string]any) (any, error) {
//	        return lookupOrder(args["order_id"].(string))
//	    },
//	))
//
//	runner := stagehand.NewRunner(models.NewLangChain(llm), tools).
//	    WithSystemPrompt("You are a support agent. Today is {{CURRENT_DATE}}.").
//	    WithOptions(stagehand.Options{Model: "gpt-4o"})
//
//	result, err := runner.Run(ctx, []stagehand.Phase{
//	    {Name: "investigate", Prompt: "Find out why order {{ORDER_ID}} is late."},
//	    {
//	        Name:   "summarize",
//	        Prompt: "Summarize the findings as JSON.",
//	        Purge:  []stagehand.PurgeDirective{stagehand.PurgeToolCalls},
//	        ResponseSchema: summarySchema,
//	    },
//	})
//
// # Phases and Purging
//
// Later phases inherit the context the earlier ones left behind. A phase's
// Purge directives trim the context view after the phase completes:
// tool-calls drops this phase's tool traffic, all-tool-calls drops every
// phase's, previous-messages drops everything before this phase. The
// permanent record is never purged.
//
// # Observing a Run
//
// Hook interfaces (ThinkingChunkHook, ContentChunkHook, ToolCallHook,
// ToolResponseHook, PhaseEndHook, and friends) expose the run as it
// happens. Register implementations on a hooks.Registry and pass it via
// WithHooks. See the hooks package.
//
// # Errors
//
// Recoverable tool failures are fed back to the model as diagnostic tool
// results and never abort the run. Fatal conditions (model call failure,
// unknown tool, round exhaustion) surface as a *PhaseError naming the phase
// and round.
package stagehand

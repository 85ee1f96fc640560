// Package main provides an interactive CLI for exercising the engine with
// real-time streaming output, against either a scripted model or a live
// provider.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/stagehand-dev/stagehand"
	"github.com/stagehand-dev/stagehand/hooks"
	"github.com/stagehand-dev/stagehand/integrationtest/loggers"
	"github.com/stagehand-dev/stagehand/models"
	"github.com/stagehand-dev/stagehand/phasefile"
	"github.com/stagehand-dev/stagehand/render"
	"github.com/stagehand-dev/stagehand/schema"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorDim    = "\033[2m"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%sError: %v%s\n", colorRed, err, colorReset)
		os.Exit(1)
	}
}

type menuItem struct {
	name        string
	description string
	run         func(ctx context.Context, w io.Writer) error
}

func run() error {
	logDir := ".logs"
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	logFile, err := os.Create(filepath.Join(logDir, "cli_integration.log"))
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}
	defer logFile.Close()

	rl, err := readline.New(colorCyan + "Enter selection (or 'q' to quit): " + colorReset)
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	if os.Getenv("STAGEHAND_TEST_OPENAI_KEY") == "" {
		fmt.Fprintf(os.Stderr,
			"%sSTAGEHAND_TEST_OPENAI_KEY is not set; live scenarios will fail.%s\n\n",
			colorYellow, colorReset)
	}

	items := []menuItem{
		{
			name:        "scripted-support",
			description: "Two-phase support scenario against a scripted model (offline)",
			run:         runScriptedSupport,
		},
		{
			name:        "live-support",
			description: "Two-phase support scenario against a live provider",
			run:         runLiveSupport,
		},
		{
			name:        "phase-file",
			description: "Load and run a YAML phase file against a live provider",
			run:         runPhaseFile,
		},
	}

	for {
		fmt.Println()
		for i, item := range items {
			fmt.Printf("%s[%d]%s %s%s- %s%s\n",
				colorGreen, i+1, colorReset, item.name,
				colorDim, item.description, colorReset)
		}

		line, err := rl.Readline()
		if err != nil {
			return nil
		}
		line = strings.TrimSpace(line)
		if line == "q" || line == "quit" {
			return nil
		}
		choice, err := strconv.Atoi(line)
		if err != nil || choice < 1 || choice > len(items) {
			fmt.Printf("%sInvalid selection.%s\n", colorRed, colorReset)
			continue
		}

		item := items[choice-1]
		fmt.Printf("\n%sRunning %s...%s\n\n", colorCyan, item.name, colorReset)
		if err := item.run(context.Background(), logFile); err != nil {
			fmt.Printf("%sFailed: %v%s\n", colorRed, err, colorReset)
		}
	}
}

// supportTools builds the demo registry shared by the support scenarios.
func supportTools() *stagehand.Registry {
	registry := stagehand.NewRegistry()
	registry.Register(stagehand.NewToolFunc(
		"lookup_order",
		"Look up order details by order ID",
		schema.Object(map[string]*schema.Property{
			"order_id": schema.String("The order ID to look up"),
		}, "order_id"),
		func(_ context.Context, args map[string]any) (any, error) {
			return map[string]any{
				"order_id": args["order_id"],
				"status":   "delayed",
				"carrier":  "PostNL",
			}, nil
		},
	))
	registry.Register(stagehand.NewToolFunc(
		"check_shipment",
		"Check shipment status with the carrier",
		schema.Object(map[string]*schema.Property{
			"carrier":  schema.String("Carrier name"),
			"order_id": schema.String("The order ID"),
		}, "carrier", "order_id"),
		func(_ context.Context, args map[string]any) (any, error) {
			return "Shipment held at customs since Tuesday.", nil
		},
	))
	return registry
}

func supportPhases() []stagehand.Phase {
	return []stagehand.Phase{
		{
			Name:   "investigate",
			Prompt: "Find out why order {{ORDER_ID}} is late. Use the tools.",
			Purge:  []stagehand.PurgeDirective{stagehand.PurgeToolCalls},
		},
		{
			Name:   "summarize",
			Prompt: "Summarize the delay for the customer as JSON with keys status and explanation.",
			ResponseSchema: schema.MustCompile(schema.Object(map[string]*schema.Property{
				"status":      schema.String("One-word status"),
				"explanation": schema.String("Customer-facing explanation"),
			}, "status", "explanation")),
		},
	}
}

func newRunner(model stagehand.StreamingModel, w io.Writer) *stagehand.Runner {
	registry := hooks.NewRegistry()
	registry.Register(loggers.NewLoggerHook())
	registry.Register(loggers.NewLoggerHookWithWriter(w))

	return stagehand.NewRunner(model, supportTools()).
		WithSystemPrompt("You are a support agent. Today is {{CURRENT_DATE}}.").
		WithVar("ORDER_ID", "12345").
		WithHooks(registry)
}

func runScriptedSupport(ctx context.Context, w io.Writer) error {
	model := models.NewScripted(
		models.ScriptedTurn{
			Thinking: "The customer wants to know about order 12345.\n",
			Content:  "Let me check the order.",
			Calls: []stagehand.ToolCall{
				{ID: "call_1", Name: "lookup_order", Arguments: `{"order_id": "12345"}`},
			},
		},
		models.ScriptedTurn{
			Calls: []stagehand.ToolCall{
				{ID: "call_2", Name: "check_shipment", Arguments: `{"carrier": "PostNL", "order_id": "12345"}`},
			},
		},
		models.ScriptedTurn{
			Content:   "The order is held at customs since Tuesday.",
			ChunkSize: 8,
		},
		models.ScriptedTurn{
			Content:   `{"status": "delayed", "explanation": "Your parcel is held at customs since Tuesday."}`,
			ChunkSize: 16,
		},
	)
	runner := newRunner(model, w)
	return finishRun(ctx, runner, supportPhases())
}

func runLiveSupport(ctx context.Context, w io.Writer) error {
	model, err := liveModel()
	if err != nil {
		return err
	}
	runner := newRunner(model, w).
		WithOptions(stagehand.Options{Model: envOr("STAGEHAND_TEST_MODEL", "gpt-4o-mini")})
	return finishRun(ctx, runner, supportPhases())
}

func runPhaseFile(ctx context.Context, w io.Writer) error {
	path := envOr("STAGEHAND_PHASE_FILE", "phases.yaml")
	file, err := phasefile.Load(path)
	if err != nil {
		return err
	}
	model, err := liveModel()
	if err != nil {
		return err
	}
	runner := file.Apply(newRunner(model, w))
	return finishRun(ctx, runner, file.Phases)
}

func liveModel() (stagehand.StreamingModel, error) {
	key := os.Getenv("STAGEHAND_TEST_OPENAI_KEY")
	if key == "" {
		return nil, fmt.Errorf("STAGEHAND_TEST_OPENAI_KEY is not set")
	}
	opts := []openai.Option{openai.WithToken(key)}
	if base := os.Getenv("STAGEHAND_TEST_BASE_URL"); base != "" {
		opts = append(opts, openai.WithBaseURL(base))
	}
	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create provider client: %w", err)
	}
	return models.NewLangChain(llm), nil
}

func finishRun(ctx context.Context, runner *stagehand.Runner, phases []stagehand.Phase) error {
	result, err := runner.Run(ctx, phases)
	if err != nil {
		return err
	}
	fmt.Printf("\n%s--- permanent record ---%s\n", colorDim, colorReset)
	fmt.Println(render.Run(result))

	diff, err := render.ContextDiff(runner.Transcript())
	if err == nil && diff != "" {
		fmt.Printf("%s--- context view diff (what purging removed) ---%s\n", colorDim, colorReset)
		fmt.Println(diff)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

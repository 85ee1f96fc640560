package stagehand

import (
	"context"
	"fmt"
	"sort"
)

// DefaultToolRetries is the number of extra execution attempts a failing tool
// gets before the engine reports a terminal diagnostic to the model. Tools
// can override it via [ToolFunc.WithMaxRetries].
const DefaultToolRetries = 2

// Tool is a single executable unit the model can invoke by name.
//
// Tools focus on business logic only: they accept already-parsed JSON
// arguments and return a raw result. The engine handles argument parsing,
// retry discipline, and formatting of results back to the model (strings pass
// through verbatim, everything else is JSON-serialized).
type Tool interface {
	// Name returns the tool's identifier used in tool calls.
	Name() string

	// Description returns a human-readable description for the model.
	Description() string

	// ParameterSchema returns the JSON-Schema-shaped description of the
	// tool's parameters, or nil when the tool takes none.
	ParameterSchema() map[string]any

	// MaxRetries returns the number of extra attempts a failing execution
	// gets before the engine gives up on the call.
	MaxRetries() int

	// Execute runs the tool with the parsed arguments.
	Execute(ctx context.Context, args map[string]any) (any, error)
}

// ToolDef is the model-facing definition of a tool, sent alongside the
// context view on every model call.
type ToolDef struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// ToolFunc adapts a plain function into a [Tool].
type ToolFunc struct {
	name        string
	description string
	schema      map[string]any
	maxRetries  int
	fn          func(ctx context.Context, args map[string]any) (any, error)
}

// NewToolFunc creates a ToolFunc with the default retry budget.
func NewToolFunc(
	name, description string,
	schema map[string]any,
	fn func(ctx context.Context, args map[string]any) (any, error),
) *ToolFunc {
	return &ToolFunc{
		name:        name,
		description: description,
		schema:      schema,
		maxRetries:  DefaultToolRetries,
		fn:          fn,
	}
}

// WithMaxRetries overrides the tool's retry budget. Returns the tool for
// chaining.
func (t *ToolFunc) WithMaxRetries(n int) *ToolFunc {
	t.maxRetries = n
	return t
}

// Name returns the tool's identifier.
func (t *ToolFunc) Name() string { return t.name }

// Description returns the tool's description for the model.
func (t *ToolFunc) Description() string { return t.description }

// ParameterSchema returns the tool's parameter schema.
func (t *ToolFunc) ParameterSchema() map[string]any { return t.schema }

// MaxRetries returns the tool's retry budget.
func (t *ToolFunc) MaxRetries() int { return t.maxRetries }

// Execute runs the wrapped function.
func (t *ToolFunc) Execute(ctx context.Context, args map[string]any) (any, error) {
	return t.fn(ctx, args)
}

// Compile-time check that ToolFunc implements Tool.
var _ Tool = (*ToolFunc)(nil)

// Registry maps tool names to executable tools. It is treated as read-only
// configuration for the duration of a run: register every tool before calling
// [Runner.Run].
type Registry struct {
	tools map[string]Tool
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool. Panics on a nil tool, an empty name, or a duplicate
// name; registration happens at wiring time where a panic surfaces the bug
// immediately. Returns the registry for chaining.
func (r *Registry) Register(tool Tool) *Registry {
	if tool == nil {
		panic("stagehand: Register called with nil tool")
	}
	name := tool.Name()
	if name == "" {
		panic("stagehand: Register called with unnamed tool")
	}
	if _, exists := r.tools[name]; exists {
		panic(fmt.Sprintf("stagehand: tool %q already registered", name))
	}
	r.tools[name] = tool
	return r
}

// Get looks up a tool by name.
func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Names returns the registered tool names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	return len(r.tools)
}

// Defs returns the model-facing definitions of every registered tool, in
// sorted name order.
func (r *Registry) Defs() []ToolDef {
	return r.defsFor(r.Names())
}

// Subset returns the definitions for the named tools only, preserving the
// given order. Unknown names are skipped; the round loop surfaces unknown
// tools as fatal errors only when the model actually calls one.
func (r *Registry) Subset(names []string) []ToolDef {
	return r.defsFor(names)
}

func (r *Registry) defsFor(names []string) []ToolDef {
	defs := make([]ToolDef, 0, len(names))
	for _, name := range names {
		t, ok := r.tools[name]
		if !ok {
			continue
		}
		defs = append(defs, ToolDef{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters:  t.ParameterSchema(),
		})
	}
	return defs
}

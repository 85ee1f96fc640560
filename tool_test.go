package stagehand

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func namedTool(name string) *ToolFunc {
	return NewToolFunc(name, "desc "+name, nil,
		func(_ context.Context, _ map[string]any) (any, error) {
			return name, nil
		})
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry().
		Register(namedTool("beta")).
		Register(namedTool("alpha"))

	assert.Equal(t, 2, r.Len())
	assert.Equal(t, []string{"alpha", "beta"}, r.Names())

	tool, ok := r.Get("alpha")
	require.True(t, ok)
	assert.Equal(t, "alpha", tool.Name())

	_, ok = r.Get("gamma")
	assert.False(t, ok)
}

func TestRegistry_RegisterPanics(t *testing.T) {
	assert.Panics(t, func() {
		NewRegistry().Register(nil)
	})
	assert.Panics(t, func() {
		NewRegistry().Register(namedTool(""))
	})
	assert.Panics(t, func() {
		NewRegistry().Register(namedTool("dup")).Register(namedTool("dup"))
	})
}

func TestRegistry_Defs(t *testing.T) {
	r := NewRegistry().
		Register(namedTool("b")).
		Register(namedTool("a"))

	defs := r.Defs()
	require.Len(t, defs, 2)
	assert.Equal(t, "a", defs[0].Name)
	assert.Equal(t, "desc a", defs[0].Description)
	assert.Equal(t, "b", defs[1].Name)
}

func TestRegistry_Subset(t *testing.T) {
	r := NewRegistry().
		Register(namedTool("a")).
		Register(namedTool("b")).
		Register(namedTool("c"))

	// Preserves requested order, skips unknown names.
	defs := r.Subset([]string{"c", "missing", "a"})
	require.Len(t, defs, 2)
	assert.Equal(t, "c", defs[0].Name)
	assert.Equal(t, "a", defs[1].Name)
}

func TestToolFunc_Retries(t *testing.T) {
	tool := namedTool("x")
	assert.Equal(t, DefaultToolRetries, tool.MaxRetries())

	tool.WithMaxRetries(0)
	assert.Equal(t, 0, tool.MaxRetries())
}

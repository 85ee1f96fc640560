package phasefile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stagehand-dev/stagehand"
)

const fullDocument = `
system: |
  You are a support agent. Today is {{CURRENT_DATE}}.
options:
  model: gpt-4o
  temperature: 0.2
  top_p: 0.9
  max_tokens: 2048
  think: medium
vars:
  ORDER_ID: "12345"
phases:
  - name: investigate
    prompt: |
      Find out why order {{ORDER_ID}} is late.
    tools: [lookup_order, check_shipment]
    purge: [tool-calls]
  - name: summarize
    prompt: Summarize as JSON.
    options:
      temperature: 0
      think: high
    purge: [all-tool-calls, previous-messages]
    response_schema:
      type: object
      properties:
        status: {type: string}
      required: [status]
`

func TestParse_FullDocument(t *testing.T) {
	f, err := Parse([]byte(fullDocument))
	require.NoError(t, err)

	assert.Contains(t, f.System, "support agent")
	assert.Equal(t, "gpt-4o", f.Options.Model)
	require.NotNil(t, f.Options.Temperature)
	assert.Equal(t, 0.2, *f.Options.Temperature)
	require.NotNil(t, f.Options.TopP)
	assert.Equal(t, 0.9, *f.Options.TopP)
	assert.Equal(t, 2048, f.Options.MaxTokens)
	assert.Equal(t, stagehand.ThinkMedium, f.Options.Think)
	assert.Equal(t, map[string]string{"ORDER_ID": "12345"}, f.Vars)

	require.Len(t, f.Phases, 2)

	first := f.Phases[0]
	assert.Equal(t, "investigate", first.Name)
	assert.Equal(t, []string{"lookup_order", "check_shipment"}, first.Tools)
	assert.Equal(t, []stagehand.PurgeDirective{stagehand.PurgeToolCalls}, first.Purge)
	assert.Nil(t, first.ResponseSchema)

	second := f.Phases[1]
	require.NotNil(t, second.Options.Temperature)
	assert.Equal(t, 0.0, *second.Options.Temperature)
	assert.Equal(t, stagehand.ThinkHigh, second.Options.Think)
	assert.Equal(t, []stagehand.PurgeDirective{
		stagehand.PurgeAllToolCalls,
		stagehand.PurgePreviousMessages,
	}, second.Purge)

	// The schema compiled and validates.
	require.NotNil(t, second.ResponseSchema)
	_, err = second.ResponseSchema.ValidateJSON(`{"status": "ok"}`)
	assert.NoError(t, err)
	_, err = second.ResponseSchema.ValidateJSON(`{"status": 5}`)
	assert.Error(t, err)
}

func TestParse_Errors(t *testing.T) {
	type input struct {
		doc string
	}

	type expected struct {
		errContains string
	}

	tests := []struct {
		name     string
		input    input
		expected expected
	}{
		{
			name:     "no phases",
			input:    input{doc: "system: hi\n"},
			expected: expected{errContains: "no phases"},
		},
		{
			name: "phase without name",
			input: input{doc: `
phases:
  - prompt: hello
`},
			expected: expected{errContains: "missing name"},
		},
		{
			name: "phase without prompt",
			input: input{doc: `
phases:
  - name: p
`},
			expected: expected{errContains: "missing prompt"},
		},
		{
			name: "duplicate phase names",
			input: input{doc: `
phases:
  - name: p
    prompt: one
  - name: p
    prompt: two
`},
			expected: expected{errContains: "duplicate phase name"},
		},
		{
			name: "unknown purge directive",
			input: input{doc: `
phases:
  - name: p
    prompt: one
    purge: [everything]
`},
			expected: expected{errContains: "unknown purge directive"},
		},
		{
			name: "unknown think level",
			input: input{doc: `
options:
  think: maximum
phases:
  - name: p
    prompt: one
`},
			expected: expected{errContains: "unknown think level"},
		},
		{
			name: "invalid response schema",
			input: input{doc: `
phases:
  - name: p
    prompt: one
    response_schema:
      type: 42
`},
			expected: expected{errContains: "response_schema"},
		},
		{
			name:     "not YAML",
			input:    input{doc: "{{{{"},
			expected: expected{errContains: ""},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.input.doc))
			require.Error(t, err)
			if tc.expected.errContains != "" {
				assert.Contains(t, err.Error(), tc.expected.errContains)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "phases.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fullDocument), 0644))

	f, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, f.Phases, 2)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

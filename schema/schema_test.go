package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile(t *testing.T) {
	compiled, err := Compile(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name": map[string]any{"type": "string"},
		},
		"required": []string{"name"},
	})
	require.NoError(t, err)
	require.NotNil(t, compiled)

	assert.NoError(t, compiled.Validate(map[string]any{"name": "ok"}))
	assert.Error(t, compiled.Validate(map[string]any{"name": 1}))
	assert.Error(t, compiled.Validate(map[string]any{}))
}

func TestCompile_NilAndInvalid(t *testing.T) {
	compiled, err := Compile(nil)
	require.NoError(t, err)
	assert.Nil(t, compiled)

	// A nil schema accepts everything.
	assert.NoError(t, compiled.Validate("anything"))

	_, err = Compile(map[string]any{"type": 42})
	assert.Error(t, err)
}

func TestValidateJSON(t *testing.T) {
	compiled := MustCompile(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"status": map[string]any{"type": "string"},
			"count":  map[string]any{"type": "integer"},
		},
		"required": []string{"status"},
	})

	type input struct {
		text string
	}

	type expected struct {
		canonical string
		ok        bool
	}

	tests := []struct {
		name     string
		input    input
		expected expected
	}{
		{
			name:     "valid document is canonicalized",
			input:    input{text: "{\n  \"status\": \"ok\",\n  \"count\": 3\n}"},
			expected: expected{canonical: `{"count":3,"status":"ok"}`, ok: true},
		},
		{
			name:     "schema violation",
			input:    input{text: `{"status": 42}`},
			expected: expected{ok: false},
		},
		{
			name:     "not JSON at all",
			input:    input{text: "definitely not json"},
			expected: expected{ok: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			canonical, err := compiled.ValidateJSON(tt.input.text)
			if !tt.expected.ok {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected.canonical, canonical)
		})
	}
}

func TestBuilders(t *testing.T) {
	raw := Object(map[string]*Property{
		"name":  String("The name").MinLength(1),
		"age":   Integer("Age in years").Min(0).Max(150),
		"score": Number("A score"),
		"tags":  Array("Tags", String("One tag")),
		"kind":  String("Kind").Enum("a", "b"),
		"admin": Boolean("Is admin"),
	}, "name", "age")

	compiled := MustCompile(raw)

	assert.NoError(t, compiled.Validate(map[string]any{
		"name": "x",
		"age":  float64(30),
		"tags": []any{"go"},
		"kind": "a",
	}))
	assert.Error(t, compiled.Validate(map[string]any{
		"name": "",
		"age":  float64(30),
	}))
	assert.Error(t, compiled.Validate(map[string]any{
		"name": "x",
		"age":  float64(200),
	}))
	assert.Error(t, compiled.Validate(map[string]any{
		"name": "x",
		"age":  float64(30),
		"kind": "c",
	}))
}

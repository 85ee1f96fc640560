package stagehand

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRenderTemplate(t *testing.T) {
	tp := NewMockTimeProvider(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	type input struct {
		s    string
		vars map[string]string
	}

	type expected struct {
		out string
	}

	tests := []struct {
		name     string
		input    input
		expected expected
	}{
		{
			name: "substitutes variables",
			input: input{
				s:    "Order {{ORDER_ID}} for {{NAME}}",
				vars: map[string]string{"ORDER_ID": "42", "NAME": "Ada"},
			},
			expected: expected{out: "Order 42 for Ada"},
		},
		{
			name: "unknown placeholders are left as-is",
			input: input{
				s:    "Hello {{WHO}}",
				vars: map[string]string{"OTHER": "x"},
			},
			expected: expected{out: "Hello {{WHO}}"},
		},
		{
			name: "current date is bound from the time provider",
			input: input{
				s: "Today is {{CURRENT_DATE}}",
			},
			expected: expected{out: "Today is 2025-06-01"},
		},
		{
			name: "current date cannot be shadowed by vars",
			input: input{
				s:    "{{CURRENT_DATE}}",
				vars: map[string]string{"CURRENT_DATE": "1999-12-31"},
			},
			expected: expected{out: "2025-06-01"},
		},
		{
			name: "repeated placeholders all substituted",
			input: input{
				s:    "{{X}} and {{X}}",
				vars: map[string]string{"X": "y"},
			},
			expected: expected{out: "y and y"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected.out, RenderTemplate(tt.input.s, tt.input.vars, tp))
		})
	}
}

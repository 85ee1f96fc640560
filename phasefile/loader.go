// Package phasefile loads agent run definitions from YAML files.
//
// A phase file declares the system prompt, base options, template variables,
// and the phase sequence in one place, so prompt iteration does not require
// recompiling:
//
//	system: |
//	  You are a support agent. Today is {{CURRENT_DATE}}.
//	options:
//	  model: gpt-4o
//	  temperature: 0.2
//	vars:
//	  REGION: eu-west-1
//	phases:
//	  - name: investigate
//	    prompt: |
//	      Find out why order {{ORDER_ID}} is late.
//	    tools: [lookup_order, lookup_shipment]
//	    purge: [tool-calls]
//	  - name: summarize
//	    prompt: Summarize the findings as JSON.
//	    options:
//	      temperature: 0
//	    response_schema:
//	      type: object
//	      properties:
//	        status: {type: string}
//	      required: [status]
package phasefile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/stagehand-dev/stagehand"
	"github.com/stagehand-dev/stagehand/schema"
)

// File is a parsed phase file, with schemas compiled and directives
// validated.
type File struct {
	// System is the system prompt template. May be empty.
	System string

	// Options are the run-level base options.
	Options stagehand.Options

	// Vars are template variable bindings.
	Vars map[string]string

	// Phases is the run's phase sequence, in order.
	Phases []stagehand.Phase
}

// Apply configures a Runner with the file's system prompt, options, and
// vars. Phases are passed to Run separately.
func (f *File) Apply(r *stagehand.Runner) *stagehand.Runner {
	return r.
		WithSystemPrompt(f.System).
		WithOptions(f.Options).
		WithVars(f.Vars)
}

// Load reads and parses a phase file from disk.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read phase file: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return f, nil
}

// rawFile mirrors the YAML document structure before validation.
type rawFile struct {
	System  string            `yaml:"system"`
	Options rawOptions        `yaml:"options"`
	Vars    map[string]string `yaml:"vars"`
	Phases  []rawPhase        `yaml:"phases"`
}

type rawOptions struct {
	Model       string   `yaml:"model"`
	Temperature *float64 `yaml:"temperature"`
	TopP        *float64 `yaml:"top_p"`
	MaxTokens   int      `yaml:"max_tokens"`
	Think       string   `yaml:"think"`
}

type rawPhase struct {
	Name           string         `yaml:"name"`
	Prompt         string         `yaml:"prompt"`
	Tools          []string       `yaml:"tools"`
	Purge          []string       `yaml:"purge"`
	Options        rawOptions     `yaml:"options"`
	ResponseSchema map[string]any `yaml:"response_schema"`
}

// Parse parses a YAML phase file.
func Parse(data []byte) (*File, error) {
	var raw rawFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if len(raw.Phases) == 0 {
		return nil, fmt.Errorf("phase file declares no phases")
	}

	opts, err := convertOptions(raw.Options)
	if err != nil {
		return nil, fmt.Errorf("options: %w", err)
	}

	f := &File{
		System:  raw.System,
		Options: opts,
		Vars:    raw.Vars,
	}

	seen := make(map[string]bool, len(raw.Phases))
	for i, rp := range raw.Phases {
		phase, err := convertPhase(rp)
		if err != nil {
			return nil, fmt.Errorf("phase %d (%q): %w", i, rp.Name, err)
		}
		if seen[phase.Name] {
			return nil, fmt.Errorf("phase %d: duplicate phase name %q", i, phase.Name)
		}
		seen[phase.Name] = true
		f.Phases = append(f.Phases, phase)
	}
	return f, nil
}

func convertOptions(raw rawOptions) (stagehand.Options, error) {
	think, err := stagehand.ParseThinkLevel(raw.Think)
	if err != nil {
		return stagehand.Options{}, err
	}
	return stagehand.Options{
		Model:       raw.Model,
		Temperature: raw.Temperature,
		TopP:        raw.TopP,
		MaxTokens:   raw.MaxTokens,
		Think:       think,
	}, nil
}

func convertPhase(raw rawPhase) (stagehand.Phase, error) {
	if raw.Name == "" {
		return stagehand.Phase{}, fmt.Errorf("missing name")
	}
	if raw.Prompt == "" {
		return stagehand.Phase{}, fmt.Errorf("missing prompt")
	}

	opts, err := convertOptions(raw.Options)
	if err != nil {
		return stagehand.Phase{}, fmt.Errorf("options: %w", err)
	}

	phase := stagehand.Phase{
		Name:    raw.Name,
		Prompt:  raw.Prompt,
		Tools:   raw.Tools,
		Options: opts,
	}

	for _, s := range raw.Purge {
		directive, err := stagehand.ParsePurgeDirective(s)
		if err != nil {
			return stagehand.Phase{}, err
		}
		phase.Purge = append(phase.Purge, directive)
	}

	if raw.ResponseSchema != nil {
		compiled, err := schema.Compile(raw.ResponseSchema)
		if err != nil {
			return stagehand.Phase{}, fmt.Errorf("response_schema: %w", err)
		}
		phase.ResponseSchema = compiled
	}

	return phase, nil
}

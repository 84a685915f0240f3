// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package agent simulates an agent session against a stored MCP. Tool
// calls are executed by deterministic mock executors, never by real
// services, so a simulation is safe to run against any schema.
package agent

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pdiddy/mcp-explorer/pkg/types"
)

// Step is one tool invocation in a simulated session.
type Step struct {
	Tool   string         `json:"tool"`
	Input  map[string]any `json:"input"`
	Output string         `json:"output"`
}

// Transcript is the full record of a simulated session.
type Transcript struct {
	MCP    string `json:"mcp"`
	Prompt string `json:"prompt"`
	Steps  []Step `json:"steps"`
	Reply  string `json:"reply"`
}

// Simulate walks the entry's tools against the prompt and returns a
// transcript. Tools whose name or description shares a word with the
// prompt are invoked; when nothing matches, the first tool runs so a
// session always has at least one step.
func Simulate(entry types.Entry, prompt string) (Transcript, error) {
	tools, err := schemaTools(entry.Schema)
	if err != nil {
		return Transcript{}, err
	}
	if len(tools) == 0 {
		return Transcript{}, fmt.Errorf("entry %s has no tools to simulate", entry.ID)
	}

	t := Transcript{MCP: entry.Name, Prompt: prompt}
	words := promptWords(prompt)
	for _, tool := range tools {
		if !matchesPrompt(tool, words) {
			continue
		}
		t.Steps = append(t.Steps, runTool(tool, prompt))
	}
	if len(t.Steps) == 0 {
		t.Steps = append(t.Steps, runTool(tools[0], prompt))
	}

	t.Reply = fmt.Sprintf("Ran %d tool call(s) against %s.", len(t.Steps), entry.Name)
	return t, nil
}

type schemaTool struct {
	Name        string
	Description string
	Parameters  map[string]any
}

func schemaTools(schema map[string]any) ([]schemaTool, error) {
	if schema == nil {
		return nil, fmt.Errorf("entry has no schema")
	}
	raw, ok := schema["tools"].([]any)
	if !ok {
		return nil, fmt.Errorf("schema has no tools list")
	}
	var tools []schemaTool
	for _, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		t := schemaTool{}
		t.Name, _ = m["name"].(string)
		t.Description, _ = m["description"].(string)
		t.Parameters, _ = m["parameters"].(map[string]any)
		if t.Name != "" {
			tools = append(tools, t)
		}
	}
	return tools, nil
}

func promptWords(prompt string) []string {
	fields := strings.Fields(strings.ToLower(prompt))
	var words []string
	for _, f := range fields {
		f = strings.Trim(f, ".,?!\"'")
		if len(f) >= 3 {
			words = append(words, f)
		}
	}
	return words
}

func matchesPrompt(tool schemaTool, words []string) bool {
	haystack := strings.ToLower(tool.Name + " " + tool.Description)
	for _, w := range words {
		if strings.Contains(haystack, w) {
			return true
		}
	}
	return false
}

// runTool builds a deterministic mock input from the tool's declared
// parameters and dispatches to the executor for the tool's family.
func runTool(tool schemaTool, prompt string) Step {
	input := make(map[string]any, len(tool.Parameters))
	names := make([]string, 0, len(tool.Parameters))
	for name := range tool.Parameters {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		input[name] = mockValue(name, tool.Parameters[name], prompt)
	}

	return Step{
		Tool:   tool.Name,
		Input:  input,
		Output: execute(tool, input, prompt),
	}
}

// mockValue picks a plausible value for a parameter from its name, its
// declared type, and the prompt.
func mockValue(name string, decl any, prompt string) any {
	declType, _ := decl.(string)
	switch declType {
	case "number":
		return 3
	case "boolean":
		return false
	case "array":
		return []any{}
	}
	switch {
	case strings.Contains(name, "location") || strings.Contains(name, "city"):
		return "Berlin"
	case strings.Contains(name, "query") || strings.Contains(name, "text") ||
		strings.Contains(name, "message") || strings.Contains(name, "expression"):
		return prompt
	case strings.Contains(name, "unit"):
		return "metric"
	default:
		return "example"
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mcpdoc parses, classifies, validates, and enriches MCP descriptor
// documents. Classification is deliberately loose (is this worth extracting
// metadata from?) while validation is strict (does this satisfy the shape
// contract?); the two passes never share acceptance criteria.
package mcpdoc

import (
	"encoding/json"

	"go.yaml.in/yaml/v3"
)

// Format tags the syntax a document was parsed from.
type Format string

const (
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatUnknown Format = "unknown"
)

// Tool is one callable tool within a descriptor.
type Tool struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// Document is a structurally accepted MCP descriptor. Raw preserves the
// full parsed mapping for passthrough; the named fields are the subset the
// pipeline works with.
type Document struct {
	Name        string
	Version     string
	Description string
	Domain      string
	Tags        []string
	Tools       []Tool
	Format      Format
	Raw         map[string]any
}

// TryParse attempts a structured parse of text: JSON first, then YAML only
// on JSON failure. JSON is (in practice) a YAML subset, so this ordering
// keeps JSON documents from being read through the looser YAML grammar.
// The returned Format is FormatUnknown when neither parse yields a mapping.
func TryParse(text string) (map[string]any, Format) {
	var m map[string]any
	if err := json.Unmarshal([]byte(text), &m); err == nil {
		return m, FormatJSON
	}

	m = nil
	if err := yaml.Unmarshal([]byte(text), &m); err == nil && m != nil {
		return m, FormatYAML
	}
	return nil, FormatUnknown
}

// Classify parses text and applies the loose structural check: a mapping
// with a non-empty name, a non-empty tools sequence, and a name plus
// description on every tool. A false return is a normal negative outcome
// ("not an MCP"), not a fault.
func Classify(text string) (*Document, bool) {
	raw, format := TryParse(text)
	if format == FormatUnknown {
		return nil, false
	}

	name, _ := raw["name"].(string)
	if name == "" {
		return nil, false
	}

	rawTools, ok := raw["tools"].([]any)
	if !ok || len(rawTools) == 0 {
		return nil, false
	}

	tools := make([]Tool, 0, len(rawTools))
	for _, rt := range rawTools {
		tm, ok := rt.(map[string]any)
		if !ok {
			return nil, false
		}
		toolName, _ := tm["name"].(string)
		toolDesc, _ := tm["description"].(string)
		if toolName == "" || toolDesc == "" {
			return nil, false
		}
		params, _ := tm["parameters"].(map[string]any)
		tools = append(tools, Tool{Name: toolName, Description: toolDesc, Parameters: params})
	}

	doc := &Document{
		Name:   name,
		Tools:  tools,
		Format: format,
		Raw:    raw,
	}
	doc.Version, _ = raw["version"].(string)
	doc.Description, _ = raw["description"].(string)
	doc.Domain, _ = raw["domain"].(string)
	if rawTags, ok := raw["tags"].([]any); ok {
		for _, t := range rawTags {
			if s, ok := t.(string); ok && s != "" {
				doc.Tags = append(doc.Tags, s)
			}
		}
	}
	return doc, true
}

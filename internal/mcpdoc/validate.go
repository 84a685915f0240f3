// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mcpdoc

import (
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// shapeContract is the strict MCP shape contract. The relaxed variant
// drops the version requirement; everything else is shared.
const shapeContract = `{
	"type": "object",
	"required": ["name", "version", "tools"],
	"properties": {
		"name": {
			"type": "string",
			"pattern": "^[a-zA-Z0-9._-]+$",
			"minLength": 1
		},
		"version": {
			"type": "string",
			"pattern": "^\\d+\\.\\d+\\.\\d+$"
		},
		"description": {
			"type": "string"
		},
		"tools": {
			"type": "array",
			"minItems": 1,
			"items": {
				"type": "object",
				"required": ["name", "description", "parameters"],
				"properties": {
					"name": {
						"type": "string",
						"pattern": "^[a-zA-Z0-9._-]+$"
					},
					"description": {
						"type": "string",
						"minLength": 10
					},
					"parameters": {
						"type": "object"
					}
				}
			}
		}
	}
}`

// Validator checks parsed documents against the MCP shape contract.
type Validator struct {
	strict  *jsonschema.Schema
	relaxed *jsonschema.Schema
}

// NewValidator compiles the shape contract. Compilation failure is a
// programming error (the contract is a constant), so it panics.
func NewValidator() *Validator {
	return &Validator{
		strict:  mustCompile(shapeContract),
		relaxed: mustCompile(relaxedContract()),
	}
}

func mustCompile(schema string) *jsonschema.Schema {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(schema))
	if err != nil {
		panic(fmt.Sprintf("mcpdoc: parsing shape contract: %v", err))
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("mcp-contract.json", doc); err != nil {
		panic(fmt.Sprintf("mcpdoc: adding shape contract: %v", err))
	}
	compiled, err := c.Compile("mcp-contract.json")
	if err != nil {
		panic(fmt.Sprintf("mcpdoc: compiling shape contract: %v", err))
	}
	return compiled
}

// relaxedContract returns the contract with "version" no longer required.
func relaxedContract() string {
	return strings.Replace(shapeContract,
		`"required": ["name", "version", "tools"]`,
		`"required": ["name", "tools"]`, 1)
}

// Validate applies the strict shape contract. It returns nil when the
// document satisfies the contract; the error describes the first violation.
// A validated=true record must have passed this check.
func (v *Validator) Validate(raw map[string]any) error {
	return v.validate(v.strict, raw)
}

// ValidateRelaxed applies the contract without requiring a version field.
func (v *Validator) ValidateRelaxed(raw map[string]any) error {
	return v.validate(v.relaxed, raw)
}

func (v *Validator) validate(schema *jsonschema.Schema, raw map[string]any) error {
	if raw == nil {
		return fmt.Errorf("document is empty")
	}
	if err := schema.Validate(normalize(raw)); err != nil {
		return fmt.Errorf("shape contract violation: %w", err)
	}
	return nil
}

// normalize converts YAML-flavoured values (ints, map[any]any) into the
// JSON-shaped values the schema library expects.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalize(val)
		}
		return out
	case int:
		return float64(t)
	case int64:
		return float64(t)
	default:
		return v
	}
}

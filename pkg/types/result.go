// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the mcp-explorer pipeline.
package types

import "time"

// File types recognized for discovered descriptors.
const (
	FileTypeJSON    = "json"
	FileTypeYAML    = "yaml"
	FileTypeUnknown = "unknown"
)

// Result represents one discovered MCP descriptor, normalized across source
// platforms. Validated is true only when the descriptor passed the strict
// shape contract, in which case Schema holds the parsed document.
type Result struct {
	// Name is the descriptor name, never empty.
	Name string `json:"name" yaml:"name"`

	// Description is the descriptor description, possibly synthesized.
	Description string `json:"description" yaml:"description"`

	// SourceURL is the URL the descriptor was fetched from. Unique per
	// platform fetch, not globally unique.
	SourceURL string `json:"source_url" yaml:"source_url"`

	// Tags are derived labels; insertion order is not significant.
	Tags []string `json:"tags" yaml:"tags"`

	// Domain is a coarse topical category (weather, finance, ...),
	// defaulting to "general".
	Domain string `json:"domain" yaml:"domain"`

	// Validated reports whether the descriptor satisfied the strict MCP
	// shape contract.
	Validated bool `json:"validated" yaml:"validated"`

	// Schema is the parsed descriptor document, present only when Validated.
	Schema map[string]any `json:"schema,omitempty" yaml:"schema,omitempty"`

	// FileType is "json", "yaml", or "unknown".
	FileType string `json:"file_type" yaml:"file_type"`

	// Repository is the owning repository ("owner/name") when known.
	Repository string `json:"repository,omitempty" yaml:"repository,omitempty"`

	// Stars is the repository star count when the platform exposes one.
	Stars *int `json:"stars,omitempty" yaml:"stars,omitempty"`

	// SourcePlatform identifies the adapter that produced this result.
	SourcePlatform string `json:"source_platform" yaml:"source_platform"`

	// ConfidenceScore is a heuristic quality score in [0.0, 1.0].
	ConfidenceScore float64 `json:"confidence_score" yaml:"confidence_score"`
}

// Entry is a Result persisted in the local library with storage metadata.
type Entry struct {
	ID         string    `json:"id" yaml:"id"`
	Result     `yaml:",inline"`
	Popularity int       `json:"popularity" yaml:"popularity"`
	CreatedAt  time.Time `json:"created_at" yaml:"created_at"`
}

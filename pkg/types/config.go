// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make
// network requests.
type HTTPConfig struct {
	// Timeout is the total HTTP request timeout (default 30s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// ConnectTimeout bounds connection establishment (default 10s).
	ConnectTimeout time.Duration `json:"connect_timeout" yaml:"connect_timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests. Defaults
	// to a browser-like identity so raw-content hosts serve us the same
	// bytes they serve a browser.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// DiscoveryConfig holds settings for the discovery pipeline.
type DiscoveryConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults is the maximum number of results to return (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// RequestDelay is the minimum interval between requests to one
	// platform (default 1s). Each adapter owns its own budget.
	RequestDelay time.Duration `json:"request_delay" yaml:"request_delay"`

	// MinConfidence drops results scoring below this threshold.
	MinConfidence float64 `json:"min_confidence" yaml:"min_confidence"`

	// EnableGitHub controls the GitHub code-search adapter.
	EnableGitHub bool `json:"enable_github" yaml:"enable_github"`

	// EnableHuggingFace controls the Hugging Face hub adapter.
	EnableHuggingFace bool `json:"enable_huggingface" yaml:"enable_huggingface"`

	// EnableAwesome controls the curated-list adapter.
	EnableAwesome bool `json:"enable_awesome" yaml:"enable_awesome"`

	// EnableWeb controls the general web-search adapter.
	EnableWeb bool `json:"enable_web" yaml:"enable_web"`

	// GitHubToken is an optional API token for higher rate limits.
	GitHubToken string `json:"github_token,omitempty" yaml:"github_token,omitempty"`

	// HuggingFaceToken is an optional hub token, needed only for gated or
	// private repositories.
	HuggingFaceToken string `json:"huggingface_token,omitempty" yaml:"huggingface_token,omitempty"`

	// RelevanceRank enables the query-relevance re-ranking pass.
	RelevanceRank bool `json:"relevance_rank" yaml:"relevance_rank"`
}

// CacheConfig holds settings for the search result cache.
type CacheConfig struct {
	// Dir is the directory holding the cache database (default "data").
	Dir string `json:"dir" yaml:"dir"`

	// TTL is how long a cached result list stays fresh (default 1h).
	TTL time.Duration `json:"ttl" yaml:"ttl"`
}

// LibraryConfig holds settings for the local MCP library.
type LibraryConfig struct {
	// Dir is the directory holding the library database (default "data").
	Dir string `json:"dir" yaml:"dir"`

	// MaxResults is the default maximum number of list results (default 50).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// ServerConfig holds settings for the HTTP API.
type ServerConfig struct {
	// Addr is the listen address (default ":8000").
	Addr string `json:"addr" yaml:"addr"`

	// RequestTimeout bounds each API request, including discovery fan-out
	// (default 60s).
	RequestTimeout time.Duration `json:"request_timeout" yaml:"request_timeout"`
}

// Config groups all component configurations.
type Config struct {
	Discovery DiscoveryConfig `json:"discovery" yaml:"discovery"`
	Cache     CacheConfig     `json:"cache" yaml:"cache"`
	Library   LibraryConfig   `json:"library" yaml:"library"`
	Server    ServerConfig    `json:"server" yaml:"server"`
}

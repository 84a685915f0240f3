// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package library

import (
	"context"

	"github.com/pdiddy/mcp-explorer/pkg/types"
)

func intPtr(n int) *int { return &n }

// seedEntries are the built-in examples a fresh library starts with, so
// the API and the simulator have something to show before any discovery
// run.
var seedEntries = []types.Entry{
	{
		ID: "weather-001",
		Result: types.Result{
			Name:        "weather.forecast",
			Description: "Real-time weather data and forecasting with global coverage and severe weather alerts",
			SourceURL:   "https://github.com/modelcontextprotocol/servers/tree/main/src/weather",
			Tags:        []string{"weather", "api", "forecast", "alerts"},
			Domain:      "weather",
			Validated:   true,
			Schema: map[string]any{
				"name":        "weather.forecast",
				"version":     "2.1.0",
				"description": "Advanced weather forecasting tools with real-time alerts",
				"tools": []any{
					map[string]any{
						"name":        "get_current_weather",
						"description": "Get current weather conditions for a specific location",
						"parameters":  map[string]any{"location": "string", "units": "string"},
					},
					map[string]any{
						"name":        "get_forecast",
						"description": "Get weather forecast for the next 14 days",
						"parameters":  map[string]any{"location": "string", "days": "number", "units": "string"},
					},
					map[string]any{
						"name":        "get_severe_alerts",
						"description": "Get active severe weather alerts for a region",
						"parameters":  map[string]any{"location": "string", "alert_types": "array"},
					},
				},
			},
			FileType:        types.FileTypeJSON,
			Repository:      "modelcontextprotocol/servers",
			Stars:           intPtr(1250),
			SourcePlatform:  "github",
			ConfidenceScore: 0.95,
		},
		Popularity: 95,
	},
	{
		ID: "search-002",
		Result: types.Result{
			Name:        "web.search",
			Description: "Comprehensive web search and content retrieval with multiple search engines",
			SourceURL:   "https://github.com/modelcontextprotocol/servers/tree/main/src/search",
			Tags:        []string{"search", "web", "content", "news"},
			Domain:      "data",
			Validated:   true,
			Schema: map[string]any{
				"name":        "web.search",
				"version":     "3.0.0",
				"description": "Multi-engine web search capabilities with content extraction",
				"tools": []any{
					map[string]any{
						"name":        "search_web",
						"description": "Search the web using multiple engines with ranking",
						"parameters":  map[string]any{"query": "string", "limit": "number"},
					},
					map[string]any{
						"name":        "get_page_content",
						"description": "Extract and parse content from web pages",
						"parameters":  map[string]any{"url": "string", "format": "string"},
					},
				},
			},
			FileType:        types.FileTypeJSON,
			Repository:      "modelcontextprotocol/servers",
			Stars:           intPtr(1250),
			SourcePlatform:  "github",
			ConfidenceScore: 0.92,
		},
		Popularity: 88,
	},
	{
		ID: "calc-003",
		Result: types.Result{
			Name:        "math.calculator",
			Description: "Advanced mathematical calculations, formula evaluation, and scientific computing",
			SourceURL:   "https://github.com/modelcontextprotocol/servers/tree/main/src/calculator",
			Tags:        []string{"math", "calculator", "statistics"},
			Domain:      "development",
			Validated:   true,
			Schema: map[string]any{
				"name":        "math.calculator",
				"version":     "2.5.0",
				"description": "Comprehensive mathematical computation tools with scientific functions",
				"tools": []any{
					map[string]any{
						"name":        "calculate",
						"description": "Evaluate mathematical expressions with complex operations",
						"parameters":  map[string]any{"expression": "string", "precision": "number"},
					},
					map[string]any{
						"name":        "statistical_analysis",
						"description": "Perform statistical analysis on datasets",
						"parameters":  map[string]any{"data": "array", "analysis_type": "string"},
					},
				},
			},
			FileType:        types.FileTypeJSON,
			Repository:      "modelcontextprotocol/servers",
			Stars:           intPtr(1250),
			SourcePlatform:  "github",
			ConfidenceScore: 0.89,
		},
		Popularity: 76,
	},
	{
		ID: "files-004",
		Result: types.Result{
			Name:        "filesystem.operations",
			Description: "Secure file system operations with read and write capabilities",
			SourceURL:   "https://github.com/modelcontextprotocol/servers/tree/main/src/filesystem",
			Tags:        []string{"filesystem", "files", "io"},
			Domain:      "development",
			Validated:   true,
			Schema: map[string]any{
				"name":        "filesystem.operations",
				"version":     "1.0.0",
				"description": "File system operations over a sandboxed root",
				"tools": []any{
					map[string]any{
						"name":        "read_file",
						"description": "Read the contents of a file",
						"parameters":  map[string]any{"path": "string"},
					},
					map[string]any{
						"name":        "write_file",
						"description": "Write contents to a file",
						"parameters":  map[string]any{"path": "string", "content": "string"},
					},
				},
			},
			FileType:        types.FileTypeJSON,
			Repository:      "modelcontextprotocol/servers",
			Stars:           intPtr(1250),
			SourcePlatform:  "github",
			ConfidenceScore: 0.92,
		},
		Popularity: 82,
	},
	{
		ID: "assist-005",
		Result: types.Result{
			Name:        "ai.assistant",
			Description: "AI-powered text generation, summarization, and conversation tools",
			SourceURL:   "https://huggingface.co/mcp-examples/assistant",
			Tags:        []string{"ai", "llm", "generation"},
			Domain:      "ai",
			Validated:   true,
			Schema: map[string]any{
				"name":        "ai.assistant",
				"version":     "1.2.0",
				"description": "Assistant tooling for generation and summarization",
				"tools": []any{
					map[string]any{
						"name":        "summarize_text",
						"description": "Summarize a document into a few sentences",
						"parameters":  map[string]any{"text": "string", "max_sentences": "number"},
					},
					map[string]any{
						"name":        "generate_reply",
						"description": "Generate a conversational reply to a message",
						"parameters":  map[string]any{"message": "string", "tone": "string"},
					},
				},
			},
			FileType:        types.FileTypeJSON,
			Repository:      "mcp-examples/assistant",
			Stars:           intPtr(430),
			SourcePlatform:  "huggingface",
			ConfidenceScore: 0.93,
		},
		Popularity: 93,
	},
}

// Seed inserts the built-in entries, overwriting prior copies of the same
// ids. It reports how many entries were written.
func (s *Store) Seed(ctx context.Context) (int, error) {
	for _, e := range seedEntries {
		if _, err := s.Put(ctx, e); err != nil {
			return 0, err
		}
	}
	return len(seedEntries), nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package discover

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/pdiddy/mcp-explorer/pkg/types"
)

func TestUnwrapRedirect(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{
			"//duckduckgo.com/l/?uddg=" + url.QueryEscape("https://example.org/mcp.json"),
			"https://example.org/mcp.json",
		},
		{"https://example.org/direct", "https://example.org/direct"},
		{"#fragment", "#fragment"},
	}
	for _, tt := range tests {
		if got := unwrapRedirect(tt.in); got != tt.want {
			t.Errorf("unwrapRedirect(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLooksLikeDescriptorURL(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"https://example.org/server.mcp.json", true},
		{"https://example.org/config.YAML", true},
		{"https://github.com/o/mcp-server", true},
		{"https://example.org/blog/mcp-post", false}, // mcp but not a code host
		{"https://github.com/o/r", false},            // code host but no mcp hint
	}
	for _, tt := range tests {
		if got := looksLikeDescriptorURL(tt.in); got != tt.want {
			t.Errorf("looksLikeDescriptorURL(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestWebDiscover(t *testing.T) {
	mux := http.NewServeMux()
	ts := httptest.NewServer(mux)
	defer ts.Close()

	mux.HandleFunc("/descriptor.mcp.json", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, descriptorJSON)
	})
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		target := ts.URL + "/descriptor.mcp.json"
		fmt.Fprintf(w, `<html><body>
			<a href="//duckduckgo.com/l/?uddg=%s">result</a>
			<a href="https://example.org/blog">irrelevant</a>
		</body></html>`, url.QueryEscape(target))
	})

	oldBase := duckduckgoBase
	duckduckgoBase = ts.URL + "/search"
	defer func() { duckduckgoBase = oldBase }()

	src := NewWebSource(types.DiscoveryConfig{})
	results, err := src.Discover(context.Background(), "weather", 10)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].SourcePlatform != "web" {
		t.Errorf("SourcePlatform = %q", results[0].SourcePlatform)
	}
	if results[0].Name != "weather-api" {
		t.Errorf("Name = %q", results[0].Name)
	}
}

func TestWebDiscoverUnreachable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	ts.Close()

	oldBase := duckduckgoBase
	duckduckgoBase = ts.URL
	defer func() { duckduckgoBase = oldBase }()

	src := NewWebSource(types.DiscoveryConfig{})
	if _, err := src.Discover(context.Background(), "q", 10); err == nil {
		t.Error("Discover must error when the search engine is unreachable")
	}
}

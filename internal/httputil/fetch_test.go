// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/mcp-explorer/pkg/types"
)

func testFetcher() *Fetcher {
	return NewFetcher(types.HTTPConfig{}, 0)
}

func TestFetch_ReturnsBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"name": "x"}`))
	}))
	defer ts.Close()

	body, ok := testFetcher().Fetch(context.Background(), ts.URL)
	assert.True(t, ok)
	assert.Equal(t, `{"name": "x"}`, body)
}

func TestFetch_SendsUserAgentAndHeaders(t *testing.T) {
	var gotUA, gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAuth = r.Header.Get("Authorization")
	}))
	defer ts.Close()

	f := NewFetcher(types.HTTPConfig{UserAgent: "test-agent/1.0"}, 0)
	f.SetHeader("Authorization", "Bearer tok")
	_, ok := f.Fetch(context.Background(), ts.URL)

	assert.True(t, ok)
	assert.Equal(t, "test-agent/1.0", gotUA)
	assert.Equal(t, "Bearer tok", gotAuth)
}

func TestFetch_NonSuccessStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer ts.Close()

	_, ok := testFetcher().Fetch(context.Background(), ts.URL)
	assert.False(t, ok)
}

func TestFetch_UnreachableHost(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	ts.Close() // closed before use

	_, ok := testFetcher().Fetch(context.Background(), ts.URL)
	assert.False(t, ok)
}

func TestFetch_BadURL(t *testing.T) {
	_, ok := testFetcher().Fetch(context.Background(), "://not-a-url")
	assert.False(t, ok)
}

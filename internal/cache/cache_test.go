// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/pdiddy/mcp-explorer/pkg/types"
)

func testStore(t *testing.T, ttl time.Duration) *Store {
	t.Helper()
	s, err := New(types.CacheConfig{Dir: t.TempDir(), TTL: ttl})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestKeyNormalization(t *testing.T) {
	base := Key("weather tools", 20, []string{"github", "web"}, 0)

	same := []struct {
		name    string
		query   string
		sources []string
	}{
		{"case insensitive", "Weather TOOLS", []string{"github", "web"}},
		{"collapsed whitespace", "  weather   tools ", []string{"github", "web"}},
		{"source order", "weather tools", []string{"web", "github"}},
	}
	for _, tt := range same {
		if got := Key(tt.query, 20, tt.sources, 0); got != base {
			t.Errorf("%s: key differs", tt.name)
		}
	}

	different := []string{
		Key("weather", 20, []string{"github", "web"}, 0),
		Key("weather tools", 10, []string{"github", "web"}, 0),
		Key("weather tools", 20, []string{"github"}, 0),
		Key("weather tools", 20, []string{"github", "web"}, 0.5),
	}
	for i, k := range different {
		if k == base {
			t.Errorf("variant %d: key should differ", i)
		}
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	s := testStore(t, time.Hour)
	ctx := context.Background()

	stars := 42
	results := []types.Result{
		{
			Name:            "weather-api",
			Description:     "d",
			SourceURL:       "https://github.com/o/r/blob/main/x.mcp.json",
			Tags:            []string{"weather", "api"},
			Domain:          "weather",
			Validated:       true,
			Schema:          map[string]any{"name": "weather-api"},
			FileType:        "json",
			Stars:           &stars,
			SourcePlatform:  "github",
			ConfidenceScore: 0.9,
		},
	}

	key := Key("weather", 20, []string{"github"}, 0)
	if err := s.Put(ctx, key, results); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok, err := s.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("Get: expected a hit")
	}
	if len(got) != 1 || got[0].Name != "weather-api" || !got[0].Validated {
		t.Errorf("Get = %+v", got)
	}
	if got[0].Stars == nil || *got[0].Stars != 42 {
		t.Errorf("Stars not preserved: %+v", got[0].Stars)
	}
}

func TestGetMiss(t *testing.T) {
	s := testStore(t, time.Hour)
	_, ok, err := s.Get(context.Background(), Key("nothing", 20, nil, 0))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Error("Get reported a hit for an absent key")
	}
}

func TestPutOverwrites(t *testing.T) {
	s := testStore(t, time.Hour)
	ctx := context.Background()
	key := Key("q", 20, nil, 0)

	if err := s.Put(ctx, key, []types.Result{{Name: "old"}}); err != nil {
		t.Fatal(err)
	}
	if err := s.Put(ctx, key, []types.Result{{Name: "new"}}); err != nil {
		t.Fatal(err)
	}

	got, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if len(got) != 1 || got[0].Name != "new" {
		t.Errorf("Get = %+v, want the overwritten entry", got)
	}
}

func TestExpiry(t *testing.T) {
	s := testStore(t, time.Hour)
	ctx := context.Background()
	key := Key("q", 20, nil, 0)

	if err := s.Put(ctx, key, []types.Result{{Name: "x"}}); err != nil {
		t.Fatal(err)
	}

	// Advance the clock past the TTL.
	old := now
	now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	defer func() { now = old }()

	_, ok, err := s.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Error("Get returned an expired entry")
	}

	// The expired row must be gone even at the original clock.
	now = old
	_, ok, err = s.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get after eviction: %v", err)
	}
	if ok {
		t.Error("expired entry was not evicted")
	}
}

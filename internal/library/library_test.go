// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package library

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"strings"
	"testing"

	"github.com/pdiddy/mcp-explorer/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(types.LibraryConfig{Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func entry(name, url, domain string, popularity int) types.Entry {
	return types.Entry{
		Result: types.Result{
			Name:            name,
			Description:     "desc of " + name,
			SourceURL:       url,
			Domain:          domain,
			Tags:            []string{"t1"},
			SourcePlatform:  "github",
			ConfidenceScore: 0.8,
			FileType:        "json",
		},
		Popularity: popularity,
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	in := entry("weather", "https://x.org/1", "weather", 5)
	in.Schema = map[string]any{"name": "weather", "tools": []any{}}
	in.Validated = true

	stored, err := s.Put(ctx, in)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if stored.ID == "" {
		t.Fatal("Put did not assign an id")
	}
	if !strings.HasPrefix(stored.ID, "github-") {
		t.Errorf("id %q did not derive from the platform", stored.ID)
	}

	got, err := s.Get(ctx, stored.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "weather" || got.Domain != "weather" || !got.Validated {
		t.Errorf("Get = %+v", got)
	}
	if got.Schema == nil || got.Schema["name"] != "weather" {
		t.Errorf("schema not preserved: %+v", got.Schema)
	}
	if len(got.Tags) != 1 || got.Tags[0] != "t1" {
		t.Errorf("tags not preserved: %+v", got.Tags)
	}
	if got.CreatedAt.IsZero() {
		t.Error("created_at not set")
	}
}

func TestStarsRoundTrip(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	zero := 0
	withZero := entry("zero-stars", "https://x.org/z", "weather", 0)
	withZero.Stars = &zero
	unknown := entry("no-stars", "https://x.org/u", "weather", 0)

	storedZero, err := s.Put(ctx, withZero)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	storedUnknown, err := s.Put(ctx, unknown)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}

	// A reported zero-star count is a fact; an absent count is not.
	got, err := s.Get(ctx, storedZero.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Stars == nil || *got.Stars != 0 {
		t.Errorf("known zero count lost: %v", got.Stars)
	}

	got, err = s.Get(ctx, storedUnknown.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Stars != nil {
		t.Errorf("unknown count came back as %d", *got.Stars)
	}
}

func TestPutRejectsEmptyName(t *testing.T) {
	s := testStore(t)
	if _, err := s.Put(context.Background(), types.Entry{}); err == nil {
		t.Error("Put accepted an entry without a name")
	}
}

func TestGetNotFound(t *testing.T) {
	s := testStore(t)
	if _, err := s.Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get err = %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	stored, err := s.Put(ctx, entry("x", "https://x.org/1", "general", 0))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, stored.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, stored.ID); !errors.Is(err, ErrNotFound) {
		t.Error("entry still present after delete")
	}
	if err := s.Delete(ctx, stored.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete err = %v, want ErrNotFound", err)
	}
}

func TestImportResultsSkipsDuplicates(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	results := []types.Result{
		{Name: "weather", SourceURL: "https://x.org/1", SourcePlatform: "github"},
		{Name: "notes", SourceURL: "https://x.org/2", SourcePlatform: "web"},
	}
	n, err := s.ImportResults(ctx, results)
	if err != nil {
		t.Fatalf("ImportResults: %v", err)
	}
	if n != 2 {
		t.Errorf("imported %d, want 2", n)
	}

	// Same identity pair (case-folded name, source URL) must be skipped.
	again := []types.Result{
		{Name: "Weather", SourceURL: "https://x.org/1", SourcePlatform: "github"},
		{Name: "weather", SourceURL: "https://x.org/3", SourcePlatform: "github"},
	}
	n, err = s.ImportResults(ctx, again)
	if err != nil {
		t.Fatalf("second ImportResults: %v", err)
	}
	if n != 1 {
		t.Errorf("imported %d on second run, want 1", n)
	}

	total, err := s.Count(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if total != 3 {
		t.Errorf("Count = %d, want 3", total)
	}
}

func TestListFiltersAndSorts(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	for _, e := range []types.Entry{
		entry("a", "https://x.org/1", "weather", 10),
		entry("b", "https://x.org/2", "weather", 30),
		entry("c", "https://x.org/3", "finance", 20),
	} {
		if _, err := s.Put(ctx, e); err != nil {
			t.Fatal(err)
		}
	}

	weather, err := s.List(ctx, ListOptions{Domain: "weather"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(weather) != 2 || weather[0].Name != "b" || weather[1].Name != "a" {
		t.Errorf("domain filter + popularity sort = %+v", weather)
	}

	byName, err := s.List(ctx, ListOptions{SortBy: "name"})
	if err != nil {
		t.Fatal(err)
	}
	if len(byName) != 3 || byName[0].Name != "a" || byName[2].Name != "c" {
		t.Errorf("name sort = %+v", byName)
	}

	limited, err := s.List(ctx, ListOptions{Limit: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 1 || limited[0].Name != "b" {
		t.Errorf("limit = %+v", limited)
	}

	if _, err := s.List(ctx, ListOptions{SortBy: "bogus"}); err == nil {
		t.Error("List accepted an unknown sort")
	}
}

func TestListValidatedFilter(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	valid := entry("v", "https://x.org/1", "general", 0)
	valid.Validated = true
	invalid := entry("i", "https://x.org/2", "general", 0)
	for _, e := range []types.Entry{valid, invalid} {
		if _, err := s.Put(ctx, e); err != nil {
			t.Fatal(err)
		}
	}

	yes := true
	got, err := s.List(ctx, ListOptions{Validated: &yes})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Name != "v" {
		t.Errorf("validated filter = %+v", got)
	}
}

func TestSearchMatchesNameDescriptionTags(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	byName := entry("weather-api", "https://x.org/1", "weather", 0)
	byTag := entry("other", "https://x.org/2", "general", 0)
	byTag.Tags = []string{"weather"}
	miss := entry("unrelated", "https://x.org/3", "general", 0)
	miss.Description = "nothing to see"
	miss.Tags = nil
	for _, e := range []types.Entry{byName, byTag, miss} {
		if _, err := s.Put(ctx, e); err != nil {
			t.Fatal(err)
		}
	}

	got, err := s.Search(ctx, "WEATHER", 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("Search matched %d entries, want 2: %+v", len(got), got)
	}

	if _, err := s.Search(ctx, "  ", 0); err == nil {
		t.Error("Search accepted an empty query")
	}
}

func TestIncrementPopularity(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	stored, err := s.Put(ctx, entry("x", "https://x.org/1", "general", 7))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.IncrementPopularity(ctx, stored.ID); err != nil {
		t.Fatalf("IncrementPopularity: %v", err)
	}
	got, err := s.Get(ctx, stored.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Popularity != 8 {
		t.Errorf("Popularity = %d, want 8", got.Popularity)
	}

	if err := s.IncrementPopularity(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestShareLinks(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	stored, err := s.Put(ctx, entry("x", "https://x.org/1", "general", 0))
	if err != nil {
		t.Fatal(err)
	}

	token, err := s.CreateShare(ctx, stored.ID)
	if err != nil {
		t.Fatalf("CreateShare: %v", err)
	}
	if token == "" {
		t.Fatal("empty share token")
	}

	got, err := s.ResolveShare(ctx, token)
	if err != nil {
		t.Fatalf("ResolveShare: %v", err)
	}
	if got.ID != stored.ID {
		t.Errorf("ResolveShare = %q, want %q", got.ID, stored.ID)
	}

	if _, err := s.ResolveShare(ctx, "bogus"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if _, err := s.CreateShare(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("CreateShare for missing id: err = %v, want ErrNotFound", err)
	}
}

func TestSeed(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	n, err := s.Seed(ctx)
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if n != len(seedEntries) {
		t.Errorf("Seed reported %d, want %d", n, len(seedEntries))
	}

	// Seeding twice must not duplicate.
	if _, err := s.Seed(ctx); err != nil {
		t.Fatalf("second Seed: %v", err)
	}
	total, err := s.Count(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if total != len(seedEntries) {
		t.Errorf("Count = %d after double seed, want %d", total, len(seedEntries))
	}

	got, err := s.Get(ctx, "weather-001")
	if err != nil {
		t.Fatalf("Get seeded entry: %v", err)
	}
	if got.Name != "weather.forecast" || !got.Validated {
		t.Errorf("seeded entry = %+v", got)
	}
}

func TestExportCSV(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if _, err := s.Put(ctx, entry("weather", "https://x.org/1", "weather", 3)); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := s.ExportCSV(ctx, &buf); err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parsing exported CSV: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want header + 1", len(rows))
	}
	if rows[0][0] != "id" || rows[0][1] != "name" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][1] != "weather" || rows[1][3] != "weather" {
		t.Errorf("row = %v", rows[1])
	}
	if len(rows[0]) != len(rows[1]) {
		t.Error("row width differs from header")
	}
}

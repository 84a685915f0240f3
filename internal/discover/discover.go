// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package discover fans a free-text query out to all enabled source
// platforms, normalizes what comes back, deduplicates across platforms,
// ranks, and caches the final list.
package discover

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/pdiddy/mcp-explorer/internal/cache"
	"github.com/pdiddy/mcp-explorer/internal/httputil"
	"github.com/pdiddy/mcp-explorer/internal/logger"
	"github.com/pdiddy/mcp-explorer/internal/mcpdoc"
	"github.com/pdiddy/mcp-explorer/pkg/types"
)

// preferredDomains earn a small boost in relevance re-ranking.
var preferredDomains = map[string]bool{
	"ai":           true,
	"development":  true,
	"productivity": true,
}

// Source discovers candidate MCPs on one external platform. Discover
// returns an error only when the platform itself was unreachable;
// individual candidate failures are skipped, never propagated.
type Source interface {
	Name() string
	Discover(ctx context.Context, query string, limit int) ([]types.Result, error)
}

// Candidate is a URL plus context considered as a possible MCP before
// fetching. It lives only for one fetch-classify cycle inside the adapter
// that produced it.
type Candidate struct {
	// Title and Description come from the platform's search result.
	Title       string
	Description string

	// ContentURL is where the raw document text is fetched from.
	ContentURL string

	// PageURL is the human-facing URL recorded as the result's source;
	// when empty, ContentURL is recorded instead.
	PageURL string

	// Repository is the owning repository ("owner/name") when known.
	Repository string

	// Stars is the repository star count when the platform exposes one.
	Stars *int
}

func (c Candidate) sourceURL() string {
	if c.PageURL != "" {
		return c.PageURL
	}
	return c.ContentURL
}

// resolve runs one candidate through fetch, classify, extract, score, and
// validate. ok is false when the content could not be fetched or is not an
// MCP; both are normal negative outcomes.
//
// Documents that classify but fail the strict shape contract are kept with
// Validated=false: invalidity is informative, and one policy applies to
// every adapter.
func resolve(ctx context.Context, fetcher *httputil.Fetcher, validator *mcpdoc.Validator, c Candidate, platform string) (types.Result, bool) {
	text, ok := fetcher.Fetch(ctx, c.ContentURL)
	if !ok {
		return types.Result{}, false
	}

	doc, ok := mcpdoc.Classify(text)
	if !ok {
		logger.Debug("%s: %s is not an MCP", platform, c.ContentURL)
		return types.Result{}, false
	}

	meta := mcpdoc.Extract(doc, mcpdoc.Context{
		Title:       c.Title,
		Description: c.Description,
		SourceURL:   c.sourceURL(),
		Repository:  c.Repository,
	})

	score := mcpdoc.Score(doc, mcpdoc.ScoreContext{
		SourceURL:   c.sourceURL(),
		Title:       c.Title,
		Description: c.Description,
		Stars:       c.Stars,
	})

	r := types.Result{
		Name:            meta.Name,
		Description:     meta.Description,
		SourceURL:       c.sourceURL(),
		Tags:            meta.Tags,
		Domain:          meta.Domain,
		FileType:        string(doc.Format),
		Repository:      c.Repository,
		Stars:           c.Stars,
		SourcePlatform:  platform,
		ConfidenceScore: score,
	}
	if err := validator.Validate(doc.Raw); err == nil {
		r.Validated = true
		r.Schema = doc.Raw
	} else {
		logger.Debug("%s: %s failed shape contract: %v", platform, c.sourceURL(), err)
	}
	return r, true
}

// Aggregator coordinates all enabled sources and the result cache.
type Aggregator struct {
	sources []Source
	store   *cache.Store
	cfg     types.DiscoveryConfig
}

// New builds an Aggregator with one adapter per enabled platform. Each
// adapter owns its own Fetcher, and with it its own request budget. store
// may be nil to disable caching.
func New(cfg types.DiscoveryConfig, store *cache.Store) *Aggregator {
	var sources []Source
	if cfg.EnableGitHub {
		sources = append(sources, NewGitHubSource(cfg))
	}
	if cfg.EnableHuggingFace {
		sources = append(sources, NewHuggingFaceSource(cfg))
	}
	if cfg.EnableAwesome {
		sources = append(sources, NewAwesomeSource(cfg))
	}
	if cfg.EnableWeb {
		sources = append(sources, NewWebSource(cfg))
	}
	return &Aggregator{sources: sources, store: store, cfg: cfg}
}

// NewWithSources builds an Aggregator over explicit sources. Tests use this
// to inject fakes.
func NewWithSources(cfg types.DiscoveryConfig, store *cache.Store, sources ...Source) *Aggregator {
	return &Aggregator{sources: sources, store: store, cfg: cfg}
}

// SourceNames returns the enabled platform identifiers.
func (a *Aggregator) SourceNames() []string {
	return sourceNames(a.sources)
}

func sourceNames(sources []Source) []string {
	names := make([]string, len(sources))
	for i, s := range sources {
		names[i] = s.Name()
	}
	return names
}

// Options narrows a single search below the aggregator's configuration.
type Options struct {
	// Limit caps the result count; zero means the configured maximum.
	Limit int

	// Sources restricts the fan-out to the named platforms; empty means
	// every enabled source. Naming a source that is not enabled is an
	// error, not a silent skip.
	Sources []string

	// MinConfidence overrides the configured threshold; nil keeps it.
	MinConfidence *float64
}

// Search returns up to limit results for query, best first, over every
// enabled source.
func (a *Aggregator) Search(ctx context.Context, query string, limit int) ([]types.Result, error) {
	return a.SearchOptions(ctx, query, Options{Limit: limit})
}

// SearchOptions is Search with per-call narrowing. The cache is consulted
// before any network fan-out and refreshed after one; the cache key covers
// the effective source set and threshold, so narrowed searches never serve
// each other's entries. A single platform's failure degrades the result
// set; an error comes back only for an empty query, an unknown source
// name, or when every platform failed with nothing cached.
func (a *Aggregator) SearchOptions(ctx context.Context, query string, opts Options) ([]types.Result, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("query is empty")
	}

	sources, err := a.selectSources(opts.Sources)
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no source platforms enabled")
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = a.cfg.MaxResults
	}
	if limit <= 0 {
		limit = 20
	}

	minConfidence := a.cfg.MinConfidence
	if opts.MinConfidence != nil {
		minConfidence = *opts.MinConfidence
	}

	key := cache.Key(query, limit, sourceNames(sources), minConfidence)
	if a.store != nil {
		if cached, ok, err := a.store.Get(ctx, key); err != nil {
			logger.Warn("cache read failed: %v", err)
		} else if ok {
			logger.Debug("cache hit for %q", query)
			if len(cached) > limit {
				cached = cached[:limit]
			}
			return cached, nil
		}
	}

	// Results are collected per source index, not in arrival order, so the
	// concatenation (and with it first-wins dedup) is deterministic.
	bySource := make([][]types.Result, len(sources))
	errs := make([]error, len(sources))
	var wg sync.WaitGroup
	for i, s := range sources {
		wg.Add(1)
		go func(i int, s Source) {
			defer wg.Done()
			bySource[i], errs[i] = s.Discover(ctx, query, limit)
		}(i, s)
	}
	wg.Wait()

	var all []types.Result
	failures := 0
	for i, s := range sources {
		if errs[i] != nil {
			failures++
			logger.Warn("source %s failed: %v", s.Name(), errs[i])
			continue
		}
		all = append(all, bySource[i]...)
	}

	if failures == len(sources) && len(all) == 0 {
		return nil, fmt.Errorf("all %d source platforms failed", failures)
	}

	if minConfidence > 0 {
		filtered := all[:0]
		for _, r := range all {
			if r.ConfidenceScore >= minConfidence {
				filtered = append(filtered, r)
			}
		}
		all = filtered
	}

	deduped, removed := dedupe(all)
	if removed > 0 {
		logger.Debug("removed %d duplicate results", removed)
	}

	a.rank(deduped, query)

	if len(deduped) > limit {
		deduped = deduped[:limit]
	}

	if a.store != nil {
		// The truncated list is what callers see, so it is also what
		// gets cached: a hit must be byte-identical to the miss that
		// produced it.
		if err := a.store.Put(ctx, key, deduped); err != nil {
			logger.Warn("cache write failed: %v", err)
		}
	}

	return deduped, nil
}

// selectSources resolves a requested platform-name subset against the
// enabled sources, keeping registration order so dedup stays deterministic
// regardless of how the request spells the list.
func (a *Aggregator) selectSources(requested []string) ([]Source, error) {
	if len(requested) == 0 {
		return a.sources, nil
	}

	enabled := make(map[string]bool, len(a.sources))
	for _, s := range a.sources {
		enabled[s.Name()] = true
	}
	want := make(map[string]bool, len(requested))
	for _, name := range requested {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		if !enabled[name] {
			return nil, fmt.Errorf("unknown source %q", name)
		}
		want[name] = true
	}
	if len(want) == 0 {
		return a.sources, nil
	}

	selected := make([]Source, 0, len(want))
	for _, s := range a.sources {
		if want[s.Name()] {
			selected = append(selected, s)
		}
	}
	return selected, nil
}

func unmarshalJSON(body string, v any) error {
	return json.Unmarshal([]byte(body), v)
}

// dedupe drops results sharing an identity key with an earlier result. The
// key is the exact pair (lowercased name, source URL); the first occurrence
// wins and later duplicates are dropped, not merged.
func dedupe(results []types.Result) ([]types.Result, int) {
	seen := make(map[string]bool, len(results))
	deduped := results[:0]
	removed := 0
	for _, r := range results {
		key := strings.ToLower(r.Name) + "\x00" + r.SourceURL
		if seen[key] {
			removed++
			continue
		}
		seen[key] = true
		deduped = append(deduped, r)
	}
	return deduped, removed
}

// rank orders results best-first by confidence. In relevance mode a
// re-ranking score (confidence plus query-match and preferred-domain
// boosts) decides the order instead; the stored ConfidenceScore is never
// rewritten.
func (a *Aggregator) rank(results []types.Result, query string) {
	if !a.cfg.RelevanceRank {
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].ConfidenceScore > results[j].ConfidenceScore
		})
		return
	}

	queryLower := strings.ToLower(query)
	relevance := func(r types.Result) float64 {
		score := r.ConfidenceScore
		if strings.Contains(strings.ToLower(r.Name), queryLower) {
			score += 0.2
		}
		if strings.Contains(strings.ToLower(r.Description), queryLower) {
			score += 0.1
		}
		if preferredDomains[r.Domain] {
			score += 0.05
		}
		return score
	}
	sort.SliceStable(results, func(i, j int) bool {
		return relevance(results[i]) > relevance(results[j])
	})
}

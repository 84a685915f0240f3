// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package discover

import (
	"context"
	"fmt"
	"net/url"

	"github.com/pdiddy/mcp-explorer/internal/httputil"
	"github.com/pdiddy/mcp-explorer/internal/logger"
	"github.com/pdiddy/mcp-explorer/internal/mcpdoc"
	"github.com/pdiddy/mcp-explorer/pkg/types"
)

var (
	huggingfaceAPIBase  = "https://huggingface.co/api"
	huggingfaceSiteBase = "https://huggingface.co"
)

// huggingfaceProbeFiles are the well-known descriptor filenames probed
// under each repository's raw tree, in order. The first one that parses as
// an MCP wins; the rest are skipped.
var huggingfaceProbeFiles = []string{
	"mcp.json",
	"mcp.yaml",
	"schema.json",
	"tools.json",
}

type huggingfaceRepo struct {
	ID          string   `json:"id"`
	Likes       *int     `json:"likes"`
	Tags        []string `json:"tags"`
	Description string   `json:"description"`
}

// HuggingFaceSource searches Hugging Face Hub models and datasets, then
// probes each repository for a descriptor file.
type HuggingFaceSource struct {
	fetcher *httputil.Fetcher
	valid   *mcpdoc.Validator
}

func NewHuggingFaceSource(cfg types.DiscoveryConfig) *HuggingFaceSource {
	f := httputil.NewFetcher(cfg.HTTPConfig, cfg.RequestDelay)
	if cfg.HuggingFaceToken != "" {
		f.SetHeader("Authorization", "Bearer "+cfg.HuggingFaceToken)
	}
	return &HuggingFaceSource{fetcher: f, valid: mcpdoc.NewValidator()}
}

func (s *HuggingFaceSource) Name() string { return "huggingface" }

func (s *HuggingFaceSource) Discover(ctx context.Context, query string, limit int) ([]types.Result, error) {
	var results []types.Result
	searched := 0
	for _, kind := range []string{"models", "datasets"} {
		if len(results) >= limit {
			break
		}
		u := fmt.Sprintf("%s/%s?search=%s&limit=%d", huggingfaceAPIBase, kind, url.QueryEscape(query), limit)
		body, ok := s.fetcher.Fetch(ctx, u)
		if !ok {
			continue
		}
		searched++

		var repos []huggingfaceRepo
		if err := unmarshalJSON(body, &repos); err != nil {
			logger.Warn("huggingface: bad %s response: %v", kind, err)
			continue
		}

		for _, repo := range repos {
			if len(results) >= limit {
				break
			}
			if repo.ID == "" {
				continue
			}
			if r, ok := s.probe(ctx, repo); ok {
				results = append(results, r)
			}
		}
	}
	if searched == 0 {
		return nil, fmt.Errorf("huggingface hub unreachable")
	}
	return results, nil
}

// probe tries each well-known filename under the repo's raw tree until one
// classifies as an MCP.
func (s *HuggingFaceSource) probe(ctx context.Context, repo huggingfaceRepo) (types.Result, bool) {
	page := fmt.Sprintf("%s/%s", huggingfaceSiteBase, repo.ID)
	for _, name := range huggingfaceProbeFiles {
		c := Candidate{
			Title:       repo.ID,
			Description: repo.Description,
			ContentURL:  fmt.Sprintf("%s/%s/raw/main/%s", huggingfaceSiteBase, repo.ID, name),
			PageURL:     page,
			Repository:  repo.ID,
			Stars:       repo.Likes,
		}
		if r, ok := resolve(ctx, s.fetcher, s.valid, c, s.Name()); ok {
			return r, true
		}
	}
	return types.Result{}, false
}

var _ Source = (*HuggingFaceSource)(nil)

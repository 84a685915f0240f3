// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package discover

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/pdiddy/mcp-explorer/internal/httputil"
	"github.com/pdiddy/mcp-explorer/internal/logger"
	"github.com/pdiddy/mcp-explorer/internal/mcpdoc"
	"github.com/pdiddy/mcp-explorer/pkg/types"
)

var githubSearchBase = "https://api.github.com/search/code"

// githubSearchQueries run per user query, most specific first. %s is the
// escaped user query.
var githubSearchQueries = []string{
	"%s filename:.mcp.json",
	"%s filename:.mcp.yaml",
	"%s mcp tools in:file extension:json",
}

type githubSearchResponse struct {
	TotalCount int                `json:"total_count"`
	Items      []githubSearchItem `json:"items"`
}

type githubSearchItem struct {
	Name       string `json:"name"`
	Path       string `json:"path"`
	HTMLURL    string `json:"html_url"`
	Repository struct {
		FullName    string `json:"full_name"`
		HTMLURL     string `json:"html_url"`
		Description string `json:"description"`
		Stargazers  *int   `json:"stargazers_count"`
	} `json:"repository"`
}

// GitHubSource queries the GitHub code search API for descriptor files and
// fetches each hit's raw content.
type GitHubSource struct {
	fetcher *httputil.Fetcher
	valid   *mcpdoc.Validator
}

func NewGitHubSource(cfg types.DiscoveryConfig) *GitHubSource {
	f := httputil.NewFetcher(cfg.HTTPConfig, cfg.RequestDelay)
	f.SetHeader("Accept", "application/vnd.github+json")
	if cfg.GitHubToken != "" {
		f.SetHeader("Authorization", "Bearer "+cfg.GitHubToken)
	}
	return &GitHubSource{fetcher: f, valid: mcpdoc.NewValidator()}
}

func (s *GitHubSource) Name() string { return "github" }

func (s *GitHubSource) Discover(ctx context.Context, query string, limit int) ([]types.Result, error) {
	var results []types.Result
	searched := 0
	for _, tmpl := range githubSearchQueries {
		if len(results) >= limit {
			break
		}
		q := fmt.Sprintf(tmpl, query)
		u := fmt.Sprintf("%s?q=%s&per_page=%d", githubSearchBase, url.QueryEscape(q), limit)
		body, ok := s.fetcher.Fetch(ctx, u)
		if !ok {
			continue
		}
		searched++

		var resp githubSearchResponse
		if err := unmarshalJSON(body, &resp); err != nil {
			logger.Warn("github: bad search response: %v", err)
			continue
		}

		for _, item := range resp.Items {
			if len(results) >= limit {
				break
			}
			c := Candidate{
				Title:       item.Name,
				Description: item.Repository.Description,
				ContentURL:  githubRawURL(item.HTMLURL),
				PageURL:     item.HTMLURL,
				Repository:  item.Repository.FullName,
				Stars:       item.Repository.Stargazers,
			}
			if r, ok := resolve(ctx, s.fetcher, s.valid, c, s.Name()); ok {
				results = append(results, r)
			}
		}
	}
	if searched == 0 {
		return nil, fmt.Errorf("github code search unreachable after %d queries", len(githubSearchQueries))
	}
	return results, nil
}

// githubRawURL rewrites a github.com blob view link to its
// raw.githubusercontent.com equivalent. Non-GitHub URLs pass through
// untouched so tests can point candidates anywhere.
func githubRawURL(htmlURL string) string {
	if !strings.Contains(htmlURL, "github.com/") || !strings.Contains(htmlURL, "/blob/") {
		return htmlURL
	}
	raw := strings.Replace(htmlURL, "github.com/", "raw.githubusercontent.com/", 1)
	return strings.Replace(raw, "/blob/", "/", 1)
}

var _ Source = (*GitHubSource)(nil)

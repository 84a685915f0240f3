// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package discover

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/pdiddy/mcp-explorer/internal/httputil"
	"github.com/pdiddy/mcp-explorer/internal/mcpdoc"
	"github.com/pdiddy/mcp-explorer/pkg/types"
)

var duckduckgoBase = "https://html.duckduckgo.com/html/"

// WebSource runs a general web search and fetches any hit that looks like
// a descriptor file. It is the noisiest adapter: most hits fail
// classification, which is fine.
type WebSource struct {
	fetcher *httputil.Fetcher
	valid   *mcpdoc.Validator
}

func NewWebSource(cfg types.DiscoveryConfig) *WebSource {
	return &WebSource{
		fetcher: httputil.NewFetcher(cfg.HTTPConfig, cfg.RequestDelay),
		valid:   mcpdoc.NewValidator(),
	}
}

func (s *WebSource) Name() string { return "web" }

func (s *WebSource) Discover(ctx context.Context, query string, limit int) ([]types.Result, error) {
	u := fmt.Sprintf("%s?q=%s", duckduckgoBase, url.QueryEscape(query+" mcp json schema"))
	body, ok := s.fetcher.Fetch(ctx, u)
	if !ok {
		return nil, fmt.Errorf("web search unreachable")
	}

	var results []types.Result
	seen := make(map[string]bool)
	for _, link := range searchResultLinks(body) {
		if len(results) >= limit {
			break
		}
		if !looksLikeDescriptorURL(link) || seen[link] {
			continue
		}
		seen[link] = true
		c := Candidate{
			ContentURL: githubRawURL(link),
			PageURL:    link,
			Repository: repositoryFromURL(link),
		}
		if r, ok := resolve(ctx, s.fetcher, s.valid, c, s.Name()); ok {
			results = append(results, r)
		}
	}
	return results, nil
}

// searchResultLinks extracts outbound result URLs from a search results
// page. DuckDuckGo wraps targets in a redirect with the real URL in the
// uddg parameter; those are unwrapped.
func searchResultLinks(page string) []string {
	root, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return nil
	}
	var links []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key != "href" {
					continue
				}
				if link := unwrapRedirect(attr.Val); strings.HasPrefix(link, "http") {
					links = append(links, link)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return links
}

func unwrapRedirect(link string) string {
	if strings.HasPrefix(link, "//") {
		link = "https:" + link
	}
	u, err := url.Parse(link)
	if err != nil {
		return link
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	return link
}

// looksLikeDescriptorURL keeps only URLs plausibly pointing at a
// machine-readable descriptor rather than a docs page.
func looksLikeDescriptorURL(link string) bool {
	lower := strings.ToLower(link)
	if strings.HasSuffix(lower, ".json") || strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml") {
		return true
	}
	return strings.Contains(lower, "mcp") && isCodeHostLink(lower)
}

var _ Source = (*WebSource)(nil)

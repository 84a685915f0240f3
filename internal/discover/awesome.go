// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package discover

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/pdiddy/mcp-explorer/internal/httputil"
	"github.com/pdiddy/mcp-explorer/internal/mcpdoc"
	"github.com/pdiddy/mcp-explorer/pkg/types"
)

// awesomeListURLs are the curated indexes crawled per query. Markdown URLs
// are scanned for links; HTML pages are parsed for anchors.
var awesomeListURLs = []string{
	"https://raw.githubusercontent.com/modelcontextprotocol/servers/main/README.md",
	"https://raw.githubusercontent.com/punkpeye/awesome-mcp-servers/main/README.md",
	"https://github.com/topics/mcp",
	"https://github.com/topics/model-context-protocol",
}

// markdown [title](url) pairs
var markdownLinkRe = regexp.MustCompile(`\[([^\]]+)\]\((https?://[^)\s]+)\)`)

// AwesomeSource crawls curated MCP lists and GitHub topic pages for links
// to descriptor files and server repositories.
type AwesomeSource struct {
	fetcher *httputil.Fetcher
	valid   *mcpdoc.Validator
}

func NewAwesomeSource(cfg types.DiscoveryConfig) *AwesomeSource {
	return &AwesomeSource{
		fetcher: httputil.NewFetcher(cfg.HTTPConfig, cfg.RequestDelay),
		valid:   mcpdoc.NewValidator(),
	}
}

func (s *AwesomeSource) Name() string { return "awesome" }

func (s *AwesomeSource) Discover(ctx context.Context, query string, limit int) ([]types.Result, error) {
	var results []types.Result
	fetched := 0
	seen := make(map[string]bool)
	for _, listURL := range awesomeListURLs {
		if len(results) >= limit {
			break
		}
		body, ok := s.fetcher.Fetch(ctx, listURL)
		if !ok {
			continue
		}
		fetched++

		var candidates []Candidate
		if strings.HasSuffix(listURL, ".md") {
			candidates = markdownCandidates(body)
		} else {
			candidates = anchorCandidates(body)
		}

		for _, c := range candidates {
			if len(results) >= limit {
				break
			}
			if seen[c.ContentURL] {
				continue
			}
			seen[c.ContentURL] = true
			if r, ok := resolve(ctx, s.fetcher, s.valid, c, s.Name()); ok {
				results = append(results, r)
			}
		}
	}
	if fetched == 0 {
		return nil, fmt.Errorf("no curated list reachable")
	}
	return results, nil
}

// markdownCandidates pulls code-host links out of a markdown list. View
// links are rewritten to raw links before the fetch.
func markdownCandidates(markdown string) []Candidate {
	var candidates []Candidate
	for _, m := range markdownLinkRe.FindAllStringSubmatch(markdown, -1) {
		title, link := m[1], m[2]
		if !isCodeHostLink(link) {
			continue
		}
		candidates = append(candidates, Candidate{
			Title:      title,
			ContentURL: githubRawURL(link),
			PageURL:    link,
			Repository: repositoryFromURL(link),
		})
	}
	return candidates
}

// anchorCandidates extracts repository anchors from a rendered HTML page
// such as a GitHub topic listing.
func anchorCandidates(page string) []Candidate {
	root, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return nil
	}
	var candidates []Candidate
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key != "href" {
					continue
				}
				link := attr.Val
				if strings.HasPrefix(link, "/") {
					link = "https://github.com" + link
				}
				if isCodeHostLink(link) && repositoryFromURL(link) != "" {
					candidates = append(candidates, Candidate{
						Title:      repositoryFromURL(link),
						ContentURL: githubRawURL(link),
						PageURL:    link,
						Repository: repositoryFromURL(link),
					})
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return candidates
}

func isCodeHostLink(link string) bool {
	return strings.Contains(link, "github.com/") || strings.Contains(link, "gitlab.com/")
}

// repositoryFromURL extracts "owner/name" from a code-host URL, or ""
// when the path is not repository-shaped.
func repositoryFromURL(link string) string {
	link = strings.TrimPrefix(link, "https://")
	link = strings.TrimPrefix(link, "http://")
	parts := strings.Split(link, "/")
	if len(parts) < 3 || parts[1] == "" || parts[2] == "" {
		return ""
	}
	if parts[1] == "topics" || parts[1] == "search" || parts[1] == "login" {
		return ""
	}
	return parts[1] + "/" + strings.TrimSuffix(parts[2], ".git")
}

var _ Source = (*AwesomeSource)(nil)

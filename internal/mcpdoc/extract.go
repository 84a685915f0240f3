// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mcpdoc

import (
	"fmt"
	"path"
	"strings"
)

// Metadata holds the descriptive fields derived from a document plus its
// discovery context.
type Metadata struct {
	Name        string
	Description string
	Domain      string
	Tags        []string
}

// Context carries the hints available around a candidate document: the
// search result title and snippet, the fetch URL, and the owning repository
// when known.
type Context struct {
	Title       string
	Description string
	SourceURL   string
	Repository  string
}

// domainKeywords maps each domain to its keyword list. Order is
// significant: the first domain with any substring match wins, so the table
// doubles as the tie-break.
var domainKeywords = []struct {
	domain   string
	keywords []string
}{
	{"weather", []string{"weather", "climate", "forecast", "temperature", "meteorology"}},
	{"finance", []string{"finance", "trading", "stock", "crypto", "payment", "banking"}},
	{"travel", []string{"travel", "booking", "hotel", "flight", "airbnb", "tourism"}},
	{"productivity", []string{"calendar", "task", "note", "email", "schedule", "todo"}},
	{"development", []string{"code", "git", "github", "deploy", "api", "programming"}},
	{"social", []string{"social", "twitter", "facebook", "instagram", "post", "media"}},
	{"ecommerce", []string{"shop", "store", "product", "cart", "order", "commerce"}},
	{"data", []string{"data", "analytics", "database", "query", "search", "analysis"}},
	{"ai", []string{"ai", "ml", "llm", "gpt", "model", "intelligence"}},
	{"communication", []string{"chat", "message", "slack", "discord", "teams"}},
}

// tagPatterns maps each tag to the substrings that imply it.
var tagPatterns = []struct {
	tag      string
	patterns []string
}{
	{"api", []string{"api", "rest", "endpoint", "service"}},
	{"ai", []string{"ai", "ml", "llm", "gpt", "model"}},
	{"web", []string{"web", "http", "url", "browser", "scraping"}},
	{"database", []string{"db", "database", "sql", "mongo", "redis"}},
	{"cloud", []string{"aws", "azure", "gcp", "cloud", "serverless"}},
	{"automation", []string{"auto", "script", "workflow", "cron"}},
	{"integration", []string{"integrate", "connect", "sync", "webhook"}},
	{"realtime", []string{"realtime", "live", "stream", "websocket"}},
	{"security", []string{"auth", "security", "encrypt", "token"}},
	{"monitoring", []string{"monitor", "log", "metric", "alert"}},
}

// descriptorSuffixes are stripped when deriving a name from a filename.
var descriptorSuffixes = []string{
	".mcp.json", ".mcp.yaml", ".mcp.yml", ".json", ".yaml", ".yml",
}

// Extract derives name, description, domain, and tags from a classified
// document and its discovery context.
func Extract(doc *Document, ctx Context) Metadata {
	return Metadata{
		Name:        extractName(doc, ctx),
		Description: extractDescription(doc, ctx),
		Domain:      ExtractDomain(doc),
		Tags:        ExtractTags(doc, ctx.Title, ctx.Description),
	}
}

func extractName(doc *Document, ctx Context) string {
	if doc.Name != "" {
		return doc.Name
	}
	if base := StripDescriptorSuffix(path.Base(ctx.SourceURL)); base != "" && base != "." && base != "/" {
		return base
	}
	if ctx.Title != "" {
		return ctx.Title
	}
	return "unknown-mcp"
}

func extractDescription(doc *Document, ctx Context) string {
	if doc.Description != "" {
		return doc.Description
	}
	if ctx.Description != "" {
		return ctx.Description
	}
	if ctx.Repository != "" {
		return fmt.Sprintf("MCP from %s", ctx.Repository)
	}
	return fmt.Sprintf("MCP found at %s", ctx.SourceURL)
}

// StripDescriptorSuffix removes a known MCP file suffix from a filename.
func StripDescriptorSuffix(name string) string {
	lower := strings.ToLower(name)
	for _, suffix := range descriptorSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return name[:len(name)-len(suffix)]
		}
	}
	return name
}

// ExtractDomain classifies a document into a topical domain. An explicit
// domain field wins; otherwise the name+description text is scanned against
// domainKeywords in table order and the first match is taken. Documents
// matching nothing are "general".
func ExtractDomain(doc *Document) string {
	if doc.Domain != "" {
		return doc.Domain
	}

	text := strings.ToLower(doc.Name + " " + doc.Description)
	for _, entry := range domainKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(text, kw) {
				return entry.domain
			}
		}
	}
	return "general"
}

// ExtractTags collects tags from (a) the document's explicit tags field,
// (b) the computed domain (unless "general"), (c) the tagPatterns table
// matched against the combined context+document text, and (d) the first
// underscore-delimited token of every tool name plus verb-derived tool
// tags. The result is deduplicated; order carries no meaning.
func ExtractTags(doc *Document, title, description string) []string {
	seen := make(map[string]bool)
	var tags []string
	add := func(tag string) {
		if tag != "" && !seen[tag] {
			seen[tag] = true
			tags = append(tags, tag)
		}
	}

	for _, t := range doc.Tags {
		add(t)
	}

	if domain := ExtractDomain(doc); domain != "general" {
		add(domain)
	}

	text := strings.ToLower(title + " " + description + " " + doc.Name + " " + doc.Description)
	for _, entry := range tagPatterns {
		for _, p := range entry.patterns {
			if strings.Contains(text, p) {
				add(entry.tag)
				break
			}
		}
	}

	for _, tool := range doc.Tools {
		toolName := strings.ToLower(tool.Name)
		add(strings.SplitN(toolName, "_", 2)[0])
		if strings.Contains(toolName, "search") {
			add("search")
		}
		if containsAny(toolName, "fetch", "get", "retrieve") {
			add("retrieval")
		}
		if containsAny(toolName, "create", "add", "post") {
			add("creation")
		}
		if containsAny(toolName, "update", "edit", "modify") {
			add("modification")
		}
	}

	return tags
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

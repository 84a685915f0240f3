// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mcpdoc

import "strings"

// codeHosts are the code-hosting platforms whose URLs earn a trust bonus.
var codeHosts = []string{"github.com", "gitlab.com"}

// mcpMarker is the filename substring that marks a dedicated descriptor file.
const mcpMarker = ".mcp."

// ScoreContext carries the non-document signals available to the scorer.
type ScoreContext struct {
	SourceURL   string
	Title       string
	Description string

	// Stars is the repository star count; nil when the platform does not
	// expose one, which disables the star increments.
	Stars *int
}

// Score computes the confidence score for a candidate. The model is a
// fixed additive table over a base of 0.5, clamped to [0, 1]. The exact
// increments are load-bearing: ranked output must be reproducible across
// runs, so do not retune them casually.
//
// doc may be nil (malformed document); the URL and title signals still
// apply and the function never fails.
func Score(doc *Document, ctx ScoreContext) float64 {
	score := 0.5

	if doc != nil {
		// Schema completeness.
		if doc.Description != "" {
			score += 0.1
		}
		if doc.Version != "" {
			score += 0.1
		}
		if len(doc.Tools) > 1 {
			score += 0.1
		}

		// Tool quality.
		for _, tool := range doc.Tools {
			if len(tool.Parameters) > 0 {
				score += 0.05
			}
			if len(tool.Description) > 20 {
				score += 0.05
			}
		}
	}

	// Repository reputation.
	if ctx.Stars != nil {
		if *ctx.Stars > 10 {
			score += 0.1
		}
		if *ctx.Stars > 100 {
			score += 0.1
		}
	}

	// Source quality.
	for _, host := range codeHosts {
		if strings.Contains(ctx.SourceURL, host) {
			score += 0.1
			break
		}
	}
	if strings.Contains(ctx.SourceURL, mcpMarker) {
		score += 0.1
	}

	// Context quality.
	text := strings.ToLower(ctx.Title + " " + ctx.Description)
	if strings.Contains(text, "mcp") || strings.Contains(text, "model context protocol") {
		score += 0.1
	}

	if score > 1.0 {
		return 1.0
	}
	if score < 0.0 {
		return 0.0
	}
	return score
}

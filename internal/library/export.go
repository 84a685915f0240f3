// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package library

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

var csvHeader = []string{
	"id", "name", "description", "domain", "tags", "validated",
	"popularity", "source_url", "source_platform", "confidence_score",
	"file_type", "repository", "stars", "created_at",
}

// ExportCSV writes every entry as one CSV row, header first. Schema
// content is deliberately left out: it is structured data and belongs in
// the JSON API, not a spreadsheet.
func (s *Store) ExportCSV(ctx context.Context, w io.Writer) error {
	entries, err := s.List(ctx, ListOptions{})
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, e := range entries {
		row := []string{
			e.ID,
			e.Name,
			e.Description,
			e.Domain,
			strings.Join(e.Tags, ";"),
			strconv.FormatBool(e.Validated),
			strconv.Itoa(e.Popularity),
			e.SourceURL,
			e.SourcePlatform,
			strconv.FormatFloat(e.ConfidenceScore, 'f', 2, 64),
			e.FileType,
			e.Repository,
			starsColumn(e.Stars),
			e.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv row for %s: %w", e.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// starsColumn renders an unknown star count as an empty cell, not 0.
func starsColumn(stars *int) string {
	if stars == nil {
		return ""
	}
	return strconv.Itoa(*stars)
}

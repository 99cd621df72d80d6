// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const exportLimit = 100000

// ExportCSV writes stored records matching opts to w as CSV with a
// header row. Author and keyword lists are joined with "; ".
func (s *Store) ExportCSV(ctx context.Context, w io.Writer, opts ListOptions) error {
	opts.Limit = exportLimit
	records, err := s.List(ctx, opts)
	if err != nil {
		return fmt.Errorf("querying for export: %w", err)
	}

	cw := csv.NewWriter(w)
	header := []string{"doi", "title", "authors", "year", "venue",
		"keywords", "publisher", "source", "filename", "relevance"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	for _, rec := range records {
		year := ""
		if rec.Year > 0 {
			year = strconv.Itoa(rec.Year)
		}
		row := []string{
			rec.DOI,
			rec.Title,
			strings.Join(rec.Authors, "; "),
			year,
			rec.Venue,
			strings.Join(rec.Keywords, "; "),
			rec.Publisher,
			rec.Source,
			rec.Filename,
			strconv.FormatFloat(rec.RelevanceScore, 'f', 2, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing CSV: %w", err)
	}
	return nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/pdiddy/litquery/pkg/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(types.StoreConfig{DBDir: t.TempDir()})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleRecords() []types.BibRecord {
	return []types.BibRecord{
		{
			DOI:            "10.1000/alpha",
			Title:          "Gene Therapy Outcomes",
			Authors:        []string{"Ada Lovelace", "Grace Hopper"},
			Year:           2021,
			Venue:          "Journal of Therapies",
			Keywords:       []string{"gene", "therapy"},
			Source:         "scopus",
			RelevanceScore: 0.9,
		},
		{
			DOI:            "10.1000/beta",
			Title:          "A Systematic Review",
			Year:           2019,
			Source:         "wos",
			RelevanceScore: 0.5,
		},
	}
}

func TestSaveAndList(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	summary, err := s.Save(ctx, sampleRecords())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if summary.Inserted != 2 || summary.Updated != 0 || summary.Skipped != 0 {
		t.Errorf("summary = %+v, want 2 inserted", summary)
	}

	records, err := s.List(ctx, ListOptions{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}

	// Relevance descending.
	if records[0].DOI != "10.1000/alpha" {
		t.Errorf("records[0].DOI = %q, want 10.1000/alpha", records[0].DOI)
	}
	if got := records[0].Authors; len(got) != 2 || got[0] != "Ada Lovelace" {
		t.Errorf("Authors = %v", got)
	}
	if got := records[0].Keywords; len(got) != 2 || got[1] != "therapy" {
		t.Errorf("Keywords = %v", got)
	}
}

func TestSaveSkipsRecordsWithoutDOI(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	summary, err := s.Save(ctx, []types.BibRecord{
		{Title: "No Identifier Here", Source: "scholar"},
		{DOI: "10.1000/keep", Title: "Kept", Source: "scopus"},
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if summary.Inserted != 1 || summary.Skipped != 1 {
		t.Errorf("summary = %+v, want 1 inserted 1 skipped", summary)
	}

	n, err := s.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 1 {
		t.Errorf("Count = %d, want 1", n)
	}
}

func TestSaveMergesExisting(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := types.BibRecord{
		DOI:            "10.1000/alpha",
		Title:          "Gene Therapy Outcomes",
		Year:           2021,
		Source:         "scopus",
		RelevanceScore: 0.4,
	}
	if _, err := s.Save(ctx, []types.BibRecord{first}); err != nil {
		t.Fatalf("first Save: %v", err)
	}

	// Same DOI, different case, new fields. The merge keeps the
	// existing title and fills in what was missing.
	second := types.BibRecord{
		DOI:            "10.1000/ALPHA",
		Title:          "Different Title From Another Vendor",
		Authors:        []string{"Ada Lovelace"},
		Abstract:       "An abstract.",
		Source:         "wos",
		RelevanceScore: 0.8,
	}
	summary, err := s.Save(ctx, []types.BibRecord{second})
	if err != nil {
		t.Fatalf("second Save: %v", err)
	}
	if summary.Updated != 1 || summary.Inserted != 0 {
		t.Errorf("summary = %+v, want 1 updated", summary)
	}

	records, err := s.List(ctx, ListOptions{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}

	rec := records[0]
	if rec.Title != "Gene Therapy Outcomes" {
		t.Errorf("Title = %q, want original kept", rec.Title)
	}
	if rec.Abstract != "An abstract." {
		t.Errorf("Abstract = %q, want filled", rec.Abstract)
	}
	if len(rec.Authors) != 1 {
		t.Errorf("Authors = %v, want filled", rec.Authors)
	}
	if rec.Source != "scopus,wos" {
		t.Errorf("Source = %q, want scopus,wos", rec.Source)
	}
	if rec.RelevanceScore != 0.8 {
		t.Errorf("RelevanceScore = %v, want 0.8", rec.RelevanceScore)
	}
}

func TestListFilters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	if _, err := s.Save(ctx, sampleRecords()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	tests := []struct {
		name string
		opts ListOptions
		want []string
	}{
		{"by source", ListOptions{Source: "wos"}, []string{"10.1000/beta"}},
		{"by year from", ListOptions{YearFrom: 2020}, []string{"10.1000/alpha"}},
		{"by year to", ListOptions{YearTo: 2019}, []string{"10.1000/beta"}},
		{"year range excludes all", ListOptions{YearFrom: 2022, YearTo: 2023}, nil},
		{"limit", ListOptions{Limit: 1}, []string{"10.1000/alpha"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := s.List(ctx, tt.opts)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			var dois []string
			for _, r := range records {
				dois = append(dois, r.DOI)
			}
			if len(dois) != len(tt.want) {
				t.Fatalf("dois = %v, want %v", dois, tt.want)
			}
			for i := range dois {
				if dois[i] != tt.want[i] {
					t.Errorf("dois = %v, want %v", dois, tt.want)
				}
			}
		})
	}
}

func TestListSourceMatchesWithinList(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.Save(ctx, []types.BibRecord{
		{DOI: "10.1000/multi", Title: "Multi", Source: "scopus,wos"},
	}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	records, err := s.List(ctx, ListOptions{Source: "wos"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("len(records) = %d, want 1 (matched inside source list)", len(records))
	}
}

func TestExportCSV(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	if _, err := s.Save(ctx, sampleRecords()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	var buf bytes.Buffer
	if err := s.ExportCSV(ctx, &buf, ListOptions{}); err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header + 2 rows:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "doi,title,authors,year") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "Ada Lovelace; Grace Hopper") {
		t.Errorf("row = %q, want joined authors", lines[1])
	}
	if !strings.Contains(lines[1], "2021") {
		t.Errorf("row = %q, want year", lines[1])
	}
}

func TestStoreReopens(t *testing.T) {
	dir := t.TempDir()
	cfg := types.StoreConfig{DBDir: dir}
	ctx := context.Background()

	s1, err := NewStore(cfg)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if _, err := s1.Save(ctx, sampleRecords()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	s1.Close()

	s2, err := NewStore(cfg)
	if err != nil {
		t.Fatalf("reopening store: %v", err)
	}
	defer s2.Close()

	n, err := s2.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 2 {
		t.Errorf("Count after reopen = %d, want 2", n)
	}
}

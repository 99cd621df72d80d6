// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists bibliographic records in a local SQLite
// database keyed by DOI, so that repeated searches accumulate into one
// deduplicated collection.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/litquery/pkg/types"
)

const dbFile = "litquery.db"

// Store manages the record database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the SQLite database at cfg.DBDir/litquery.db,
// creating the schema if it does not exist.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.DBDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	dbPath := filepath.Join(cfg.DBDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 100
	}

	s := &Store{db: db, maxResults: maxResults}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS records (
			doi TEXT PRIMARY KEY,
			title TEXT,
			authors TEXT,
			year INTEGER,
			venue TEXT,
			abstract TEXT,
			keywords TEXT,
			publisher TEXT,
			source TEXT,
			filename TEXT,
			relevance REAL,
			added_at TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_year ON records(year)`,
		`CREATE INDEX IF NOT EXISTS idx_records_source ON records(source)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// SaveSummary holds counts from a save run.
type SaveSummary struct {
	Inserted int
	Updated  int
	Skipped  int
}

// Total returns the number of records processed.
func (s SaveSummary) Total() int {
	return s.Inserted + s.Updated + s.Skipped
}

// Save upserts records into the store. Records without a DOI are
// skipped: the DOI is the dedup key and records lacking one cannot be
// matched against later runs. Existing rows are merged rather than
// replaced, so a save never blanks out fields an earlier run filled.
func (s *Store) Save(ctx context.Context, records []types.BibRecord) (SaveSummary, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SaveSummary{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var summary SaveSummary
	for _, rec := range records {
		doi := strings.ToLower(strings.TrimSpace(rec.DOI))
		if doi == "" {
			summary.Skipped++
			continue
		}

		existing, found, err := s.getTx(ctx, tx, doi)
		if err != nil {
			return summary, err
		}
		if found {
			mergeRecord(&existing, rec)
			if err := upsertTx(ctx, tx, doi, existing); err != nil {
				return summary, err
			}
			summary.Updated++
		} else {
			if err := upsertTx(ctx, tx, doi, rec); err != nil {
				return summary, err
			}
			summary.Inserted++
		}
	}

	if err := tx.Commit(); err != nil {
		return summary, fmt.Errorf("committing save: %w", err)
	}
	return summary, nil
}

// mergeRecord fills dst's empty fields from src and keeps the higher
// relevance score. Sources are accumulated comma-separated.
func mergeRecord(dst *types.BibRecord, src types.BibRecord) {
	if dst.Title == "" {
		dst.Title = src.Title
	}
	if len(dst.Authors) == 0 {
		dst.Authors = src.Authors
	}
	if dst.Year == 0 {
		dst.Year = src.Year
	}
	if dst.Venue == "" {
		dst.Venue = src.Venue
	}
	if dst.Abstract == "" {
		dst.Abstract = src.Abstract
	}
	if len(dst.Keywords) == 0 {
		dst.Keywords = src.Keywords
	}
	if dst.Publisher == "" {
		dst.Publisher = src.Publisher
	}
	if dst.Filename == "" {
		dst.Filename = src.Filename
	}
	if src.RelevanceScore > dst.RelevanceScore {
		dst.RelevanceScore = src.RelevanceScore
	}
	if src.Source != "" && !strings.Contains(dst.Source, src.Source) {
		if dst.Source == "" {
			dst.Source = src.Source
		} else {
			dst.Source += "," + src.Source
		}
	}
}

func (s *Store) getTx(ctx context.Context, tx *sql.Tx, doi string) (types.BibRecord, bool, error) {
	row := tx.QueryRowContext(ctx,
		`SELECT doi, title, authors, year, venue, abstract, keywords,
			publisher, source, filename, relevance
		FROM records WHERE doi = ?`, doi)

	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return types.BibRecord{}, false, nil
	}
	if err != nil {
		return types.BibRecord{}, false, fmt.Errorf("reading record %s: %w", doi, err)
	}
	return rec, true, nil
}

func upsertTx(ctx context.Context, tx *sql.Tx, doi string, rec types.BibRecord) error {
	authorsJSON, _ := json.Marshal(rec.Authors)
	keywordsJSON, _ := json.Marshal(rec.Keywords)

	_, err := tx.ExecContext(ctx,
		`INSERT INTO records (doi, title, authors, year, venue, abstract,
			keywords, publisher, source, filename, relevance, added_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(doi) DO UPDATE SET
			title=excluded.title, authors=excluded.authors,
			year=excluded.year, venue=excluded.venue,
			abstract=excluded.abstract, keywords=excluded.keywords,
			publisher=excluded.publisher, source=excluded.source,
			filename=excluded.filename, relevance=excluded.relevance`,
		doi, rec.Title, string(authorsJSON), rec.Year, rec.Venue,
		rec.Abstract, string(keywordsJSON), rec.Publisher, rec.Source,
		rec.Filename, rec.RelevanceScore,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting record %s: %w", doi, err)
	}
	return nil
}

// ListOptions filters a List query. Zero values mean no filter.
type ListOptions struct {
	// Source matches records whose source list contains the value.
	Source string

	// YearFrom and YearTo bound the publication year, inclusive.
	YearFrom int
	YearTo   int

	// Limit caps result count. Zero uses the store default.
	Limit int
}

// List returns stored records matching opts, sorted by relevance
// descending and then title.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]types.BibRecord, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = s.maxResults
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(
		`SELECT doi, title, authors, year, venue, abstract, keywords,
			publisher, source, filename, relevance
		FROM records WHERE 1=1`)

	if opts.Source != "" {
		qb.WriteString(` AND (source = ? OR source LIKE ? OR source LIKE ? OR source LIKE ?)`)
		args = append(args, opts.Source,
			opts.Source+",%", "%,"+opts.Source, "%,"+opts.Source+",%")
	}
	if opts.YearFrom > 0 {
		qb.WriteString(` AND year >= ?`)
		args = append(args, opts.YearFrom)
	}
	if opts.YearTo > 0 {
		qb.WriteString(` AND year <= ?`)
		args = append(args, opts.YearTo)
	}

	qb.WriteString(` ORDER BY relevance DESC, title LIMIT ?`)
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	var records []types.BibRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records: %w", err)
	}
	return records, nil
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM records`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting records: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (types.BibRecord, error) {
	var (
		rec          types.BibRecord
		authorsJSON  sql.NullString
		keywordsJSON sql.NullString
	)
	err := row.Scan(&rec.DOI, &rec.Title, &authorsJSON, &rec.Year,
		&rec.Venue, &rec.Abstract, &keywordsJSON, &rec.Publisher,
		&rec.Source, &rec.Filename, &rec.RelevanceScore)
	if err != nil {
		return types.BibRecord{}, err
	}
	if authorsJSON.Valid && authorsJSON.String != "" {
		_ = json.Unmarshal([]byte(authorsJSON.String), &rec.Authors)
	}
	if keywordsJSON.Valid && keywordsJSON.String != "" {
		_ = json.Unmarshal([]byte(keywordsJSON.String), &rec.Keywords)
	}
	return rec, nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the litquery toolkit.
package types

// BibRecord is a bibliographic record returned by a vendor search or
// recovered from a scanned drive file. Fields left empty by one source
// may be filled in when a duplicate record arrives from another.
type BibRecord struct {
	// DOI is the canonical identifier when known (bare form, no URL prefix).
	DOI string `json:"doi" yaml:"doi"`

	// Title is the work title as returned by the source.
	Title string `json:"title" yaml:"title"`

	// Authors lists the authors in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Year is the publication year, 0 when unknown.
	Year int `json:"year" yaml:"year"`

	// Venue is the journal or proceedings title.
	Venue string `json:"venue,omitempty" yaml:"venue,omitempty"`

	// Abstract is the abstract text when the source provides one.
	Abstract string `json:"abstract,omitempty" yaml:"abstract,omitempty"`

	// Keywords lists author or indexer keywords.
	Keywords []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`

	// Publisher is the publisher name when known.
	Publisher string `json:"publisher,omitempty" yaml:"publisher,omitempty"`

	// Source identifies which client produced this record
	// (e.g. "scopus", "wos", "scholar", "drive"). Merged records carry
	// a comma-joined list.
	Source string `json:"source" yaml:"source"`

	// Filename is the originating file name for records recovered from
	// a drive scan.
	Filename string `json:"filename,omitempty" yaml:"filename,omitempty"`

	// RelevanceScore is a value between 0.0 and 1.0 derived from the
	// result's position in the vendor ranking.
	RelevanceScore float64 `json:"relevance_score" yaml:"relevance_score"`
}

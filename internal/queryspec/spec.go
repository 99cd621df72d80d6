// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package queryspec models structured literature-search specifications and
// renders them into vendor-specific boolean query strings (Scopus, Web of
// Science, Google Scholar). Rendering is a pure function of the
// specification and the target vendor.
package queryspec

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors returned by Validate and Render.
var (
	// ErrInvalidSpec indicates a specification with no keyword groups,
	// an empty group, or an inconsistent filter.
	ErrInvalidSpec = errors.New("invalid search specification")

	// ErrUnsupportedVendor indicates an unrecognized vendor identifier.
	ErrUnsupportedVendor = errors.New("unsupported vendor")
)

// Vendor identifies a target bibliographic database dialect.
type Vendor string

const (
	VendorScopus  Vendor = "scopus"
	VendorWoS     Vendor = "wos"
	VendorScholar Vendor = "scholar"
)

// AllVendors returns the supported vendors in stable order.
func AllVendors() []Vendor {
	return []Vendor{VendorScopus, VendorWoS, VendorScholar}
}

// ParseVendor converts a user-supplied vendor name into a Vendor.
// Recognizes common aliases ("web_of_science", "google_scholar").
func ParseVendor(s string) (Vendor, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "scopus":
		return VendorScopus, nil
	case "wos", "web_of_science", "web-of-science":
		return VendorWoS, nil
	case "scholar", "google_scholar", "google-scholar":
		return VendorScholar, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedVendor, s)
	}
}

// DocType is a vendor-neutral document type filter. Each vendor maps it
// to its own code (Scopus DOCTYPE, WoS DT).
type DocType string

const (
	DocTypeArticle         DocType = "article"
	DocTypeReview          DocType = "review"
	DocTypeConferencePaper DocType = "conference_paper"
	DocTypeBookChapter     DocType = "book_chapter"
)

// docTypeCodes maps each DocType to its Scopus and WoS representations.
var docTypeCodes = map[DocType]struct{ scopus, wos string }{
	DocTypeArticle:         {"ar", "Article"},
	DocTypeReview:          {"re", "Review"},
	DocTypeConferencePaper: {"cp", "Proceedings Paper"},
	DocTypeBookChapter:     {"ch", "Book Chapter"},
}

// ParseDocType converts a user-supplied document type name into a DocType.
func ParseDocType(s string) (DocType, error) {
	dt := DocType(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := docTypeCodes[dt]; !ok {
		return "", fmt.Errorf("%w: unknown document type %q", ErrInvalidSpec, s)
	}
	return dt, nil
}

// Group is a set of synonymous search terms combined with OR.
type Group []string

// Filters narrows a search beyond its keyword groups. A zero Filters
// applies no restriction.
type Filters struct {
	// YearFrom and YearTo bound the publication year. Both bounds are
	// exclusive in the Scopus dialect (PUBYEAR > / PUBYEAR <) and
	// inclusive in the WoS PY range, matching each vendor's syntax.
	YearFrom int `yaml:"year_from,omitempty"`
	YearTo   int `yaml:"year_to,omitempty"`

	// DocTypes restricts results to the given document types.
	DocTypes []DocType `yaml:"doc_types,omitempty"`

	// Languages restricts results to the given languages (English names,
	// e.g. "english", "spanish").
	Languages []string `yaml:"languages,omitempty"`
}

// HasYearRange reports whether both year bounds are set.
func (f Filters) HasYearRange() bool {
	return f.YearFrom > 0 && f.YearTo > 0
}

// Spec is a structured literature-search specification: keyword groups
// combined with AND across groups and OR within each group, plus optional
// filters. A Spec is a value type; callers construct one per query and
// never mutate it afterwards.
type Spec struct {
	Groups  []Group `yaml:"groups"`
	Filters Filters `yaml:"filters,omitempty"`
}

// Validate checks the specification's input constraints: at least one
// keyword group, no empty groups or blank terms, and a coherent year
// range.
func (s Spec) Validate() error {
	if len(s.Groups) == 0 {
		return fmt.Errorf("%w: at least one keyword group is required", ErrInvalidSpec)
	}
	for i, g := range s.Groups {
		if len(g) == 0 {
			return fmt.Errorf("%w: keyword group %d is empty", ErrInvalidSpec, i+1)
		}
		for _, term := range g {
			if strings.TrimSpace(term) == "" {
				return fmt.Errorf("%w: keyword group %d contains a blank term", ErrInvalidSpec, i+1)
			}
		}
	}
	f := s.Filters
	if (f.YearFrom > 0) != (f.YearTo > 0) {
		return fmt.Errorf("%w: year range requires both bounds", ErrInvalidSpec)
	}
	if f.HasYearRange() && f.YearFrom > f.YearTo {
		return fmt.Errorf("%w: year range %d-%d is reversed", ErrInvalidSpec, f.YearFrom, f.YearTo)
	}
	for _, dt := range f.DocTypes {
		if _, ok := docTypeCodes[dt]; !ok {
			return fmt.Errorf("%w: unknown document type %q", ErrInvalidSpec, dt)
		}
	}
	return nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package queryspec

import (
	"fmt"
	"strings"
)

// Render produces the vendor-specific boolean query string for the
// specification. It is deterministic, performs no I/O, and fails with
// ErrInvalidSpec or ErrUnsupportedVendor.
func Render(s Spec, v Vendor) (string, error) {
	if err := s.Validate(); err != nil {
		return "", err
	}
	switch v {
	case VendorScopus:
		return renderScopus(s), nil
	case VendorWoS:
		return renderWoS(s), nil
	case VendorScholar:
		return renderScholar(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedVendor, v)
	}
}

// quoteTerm wraps a term in double quotes unless it contains a wildcard.
// Quoted wildcards would be matched literally by Scopus and WoS.
func quoteTerm(term string) string {
	term = strings.TrimSpace(term)
	if strings.Contains(term, "*") {
		return term
	}
	return `"` + term + `"`
}

// booleanCore renders the keyword groups as a boolean expression:
// OR within each parenthesized group, AND across groups.
func booleanCore(groups []Group) string {
	clauses := make([]string, 0, len(groups))
	for _, g := range groups {
		terms := make([]string, 0, len(g))
		for _, t := range g {
			terms = append(terms, quoteTerm(t))
		}
		clauses = append(clauses, "("+strings.Join(terms, " OR ")+")")
	}
	return strings.Join(clauses, " AND ")
}

// renderScopus renders the Scopus advanced-search dialect: the boolean
// core wrapped in TITLE-ABS-KEY, with PUBYEAR, DOCTYPE, and LANGUAGE
// clauses appended. Scopus PUBYEAR bounds are exclusive.
func renderScopus(s Spec) string {
	var b strings.Builder
	b.WriteString("TITLE-ABS-KEY(")
	b.WriteString(booleanCore(s.Groups))
	b.WriteString(")")

	if s.Filters.HasYearRange() {
		fmt.Fprintf(&b, " AND PUBYEAR > %d AND PUBYEAR < %d", s.Filters.YearFrom, s.Filters.YearTo)
	}
	if len(s.Filters.DocTypes) > 0 {
		codes := make([]string, 0, len(s.Filters.DocTypes))
		for _, dt := range s.Filters.DocTypes {
			codes = append(codes, fmt.Sprintf("DOCTYPE(%s)", docTypeCodes[dt].scopus))
		}
		b.WriteString(" AND " + orClause(codes))
	}
	if len(s.Filters.Languages) > 0 {
		langs := make([]string, 0, len(s.Filters.Languages))
		for _, l := range s.Filters.Languages {
			langs = append(langs, fmt.Sprintf("LANGUAGE(%s)", strings.ToLower(strings.TrimSpace(l))))
		}
		b.WriteString(" AND " + orClause(langs))
	}
	return b.String()
}

// renderWoS renders the Web of Science dialect: the boolean core wrapped
// in a TS= topic clause, with PY, DT, and LA clauses appended. The PY
// range is inclusive.
func renderWoS(s Spec) string {
	var b strings.Builder
	b.WriteString("TS=(")
	b.WriteString(booleanCore(s.Groups))
	b.WriteString(")")

	if s.Filters.HasYearRange() {
		fmt.Fprintf(&b, " AND PY=%d-%d", s.Filters.YearFrom, s.Filters.YearTo)
	}
	if len(s.Filters.DocTypes) > 0 {
		codes := make([]string, 0, len(s.Filters.DocTypes))
		for _, dt := range s.Filters.DocTypes {
			codes = append(codes, docTypeCodes[dt].wos)
		}
		b.WriteString(" AND DT=(" + strings.Join(codes, " OR ") + ")")
	}
	if len(s.Filters.Languages) > 0 {
		langs := make([]string, 0, len(s.Filters.Languages))
		for _, l := range s.Filters.Languages {
			langs = append(langs, titleCase(l))
		}
		b.WriteString(" AND LA=(" + strings.Join(langs, " OR ") + ")")
	}
	return b.String()
}

// renderScholar renders the Google Scholar dialect. Scholar has no field
// qualifiers and treats boolean operators loosely, so terms are emitted
// as space-separated quoted phrases and filters are omitted.
func renderScholar(s Spec) string {
	var terms []string
	for _, g := range s.Groups {
		for _, t := range g {
			terms = append(terms, quoteTerm(t))
		}
	}
	return strings.Join(terms, " ")
}

// orClause joins clauses with OR, parenthesizing when there is more than one.
func orClause(clauses []string) string {
	if len(clauses) == 1 {
		return clauses[0]
	}
	return "(" + strings.Join(clauses, " OR ") + ")"
}

// titleCase uppercases the first letter of a language name ("english" →
// "English"), the form WoS expects in LA clauses.
func titleCase(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// BalancedParens reports whether every opening parenthesis in q has a
// matching close. Vendors reject unbalanced queries with opaque syntax
// errors, so callers validate hand-written queries before submission.
func BalancedParens(q string) bool {
	depth := 0
	for _, r := range q {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/litquery/internal/queryspec"
)

// addSpecFlags registers the flags that describe a query specification.
// Shared between format and search.
func addSpecFlags(cmd *cobra.Command) {
	cmd.Flags().StringArray("group", nil, "synonym group, comma-separated (repeat for AND groups)")
	cmd.Flags().Int("from-year", 0, "publication year range start (exclusive bound applied per vendor)")
	cmd.Flags().Int("to-year", 0, "publication year range end")
	cmd.Flags().StringSlice("doctype", nil, "document types: article, review, conference_paper, book_chapter")
	cmd.Flags().StringSlice("language", nil, "restrict results to languages (e.g. english)")
	cmd.Flags().String("spec", "", "load the specification from a YAML file instead of flags")
}

// specFromFlags builds a validated query specification from the flags
// registered by addSpecFlags. A --spec file takes precedence over the
// individual flags.
func specFromFlags(cmd *cobra.Command) (queryspec.Spec, error) {
	specFile, _ := cmd.Flags().GetString("spec")
	if specFile != "" {
		return queryspec.LoadSpecFile(specFile)
	}

	groups, _ := cmd.Flags().GetStringArray("group")
	if len(groups) == 0 {
		return queryspec.Spec{}, fmt.Errorf("provide at least one --group or a --spec file")
	}

	var s queryspec.Spec
	for _, g := range groups {
		var group queryspec.Group
		for _, term := range strings.Split(g, ",") {
			term = strings.TrimSpace(term)
			if term != "" {
				group = append(group, term)
			}
		}
		s.Groups = append(s.Groups, group)
	}

	s.Filters.YearFrom, _ = cmd.Flags().GetInt("from-year")
	s.Filters.YearTo, _ = cmd.Flags().GetInt("to-year")

	docTypes, _ := cmd.Flags().GetStringSlice("doctype")
	for _, dt := range docTypes {
		parsed, err := queryspec.ParseDocType(dt)
		if err != nil {
			return queryspec.Spec{}, err
		}
		s.Filters.DocTypes = append(s.Filters.DocTypes, parsed)
	}

	s.Filters.Languages, _ = cmd.Flags().GetStringSlice("language")

	if err := s.Validate(); err != nil {
		return queryspec.Spec{}, err
	}
	return s, nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/litquery/internal/store"
	"github.com/pdiddy/litquery/internal/vendor"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Query and export the local record store",
	Long: `Store manages the local SQLite database that accumulates records from
searches and folder scans. Records are keyed by DOI; repeated saves
merge into existing rows instead of duplicating them.`,
}

// --- list subcommand ---

var storeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored records with optional filters",
	RunE:  runStoreList,
}

func runStoreList(cmd *cobra.Command, args []string) error {
	s, err := store.NewStore(storeConfigFromFlags(cmd))
	if err != nil {
		return err
	}
	defer s.Close()

	records, err := s.List(context.Background(), listOptsFromFlags(cmd))
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	vendor.FormatTable(vendor.Output{Records: records}, os.Stdout)
	return nil
}

// --- export subcommand ---

var storeExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored records to CSV",
	Long: `Export writes the stored records (or a filtered subset) as CSV to the
--out file, or to stdout when no file is given. Supports the same
filter flags as list.`,
	RunE: runStoreExport,
}

func runStoreExport(cmd *cobra.Command, args []string) error {
	s, err := store.NewStore(storeConfigFromFlags(cmd))
	if err != nil {
		return err
	}
	defer s.Close()

	opts := listOptsFromFlags(cmd)

	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		return s.ExportCSV(context.Background(), os.Stdout, opts)
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close()

	if err := s.ExportCSV(context.Background(), f, opts); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Exported to %s\n", out)
	return nil
}

// --- shared helpers ---

func listOptsFromFlags(cmd *cobra.Command) store.ListOptions {
	source, _ := cmd.Flags().GetString("source")
	yearFrom, _ := cmd.Flags().GetInt("from-year")
	yearTo, _ := cmd.Flags().GetInt("to-year")
	limit, _ := cmd.Flags().GetInt("limit")

	return store.ListOptions{
		Source:   strings.ToLower(source),
		YearFrom: yearFrom,
		YearTo:   yearTo,
		Limit:    limit,
	}
}

func init() {
	storeCmd.PersistentFlags().String("db-dir", "", "record store directory (default ./litquery-db)")
	storeCmd.PersistentFlags().String("source", "", "filter by source: scopus, wos, scholar, crossref, drive")
	storeCmd.PersistentFlags().Int("from-year", 0, "filter by publication year, inclusive start")
	storeCmd.PersistentFlags().Int("to-year", 0, "filter by publication year, inclusive end")
	storeCmd.PersistentFlags().Int("limit", 0, "maximum records (0 = store default)")

	storeListCmd.Flags().Bool("json", false, "output records as JSON")
	storeExportCmd.Flags().String("out", "", "CSV output file (default stdout)")

	storeCmd.AddCommand(storeListCmd)
	storeCmd.AddCommand(storeExportCmd)

	rootCmd.AddCommand(storeCmd)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/litquery/internal/drive"
	"github.com/pdiddy/litquery/internal/secrets"
	"github.com/pdiddy/litquery/internal/store"
	"github.com/pdiddy/litquery/internal/vendor"
	"github.com/pdiddy/litquery/pkg/types"
)

var driveCmd = &cobra.Command{
	Use:   "drive",
	Short: "List and scan the shared Drive folder",
	Long: `Drive works against a shared Google Drive folder holding the collected
papers. Use list to inventory the folder and scan to extract a DOI from
each PDF and resolve its bibliographic record through Crossref.`,
}

// --- list subcommand ---

var driveListCmd = &cobra.Command{
	Use:   "list [folder-id]",
	Short: "List the files in a Drive folder",
	RunE:  runDriveList,
}

func runDriveList(cmd *cobra.Command, args []string) error {
	lister, folderID, err := driveLister(cmd, args)
	if err != nil {
		return err
	}

	entries, err := lister.List(context.Background(), folderID)
	if err != nil {
		if drive.IsAccessDenied(err) {
			return fmt.Errorf("access to folder %s denied: check credentials and sharing: %w", folderID, err)
		}
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Println("Folder is empty.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-50s  %-30s  %10s  %s\n", "Name", "Type", "Size", "Modified")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 110))
	for _, e := range entries {
		modified := ""
		if !e.ModifiedTime.IsZero() {
			modified = e.ModifiedTime.Format(time.DateOnly)
		}
		name := e.Name
		if len(name) > 50 {
			name = name[:47] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-50s  %-30s  %10d  %s\n", name, e.MIMEType, e.Size, modified)
	}
	fmt.Fprintf(os.Stdout, "\n%d file(s)\n", len(entries))
	return nil
}

// --- scan subcommand ---

var driveScanCmd = &cobra.Command{
	Use:   "scan [folder-id]",
	Short: "Extract DOIs from the folder's PDFs and resolve their records",
	Long: `Scan downloads each PDF in the folder, searches its leading pages for
a DOI, and resolves the full bibliographic record through Crossref.
Files without a recoverable DOI are reported and skipped.`,
	RunE: runDriveScan,
}

func runDriveScan(cmd *cobra.Command, args []string) error {
	lister, folderID, err := driveLister(cmd, args)
	if err != nil {
		return err
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")
	httpCfg := types.HTTPConfig{Timeout: timeout, UserAgent: defaultUserAgent}
	crossref := &vendor.CrossrefClient{
		Client: &http.Client{Timeout: timeout},
		Mailto: secretDefault(secrets.KeyCrossrefMailto, viper.GetString("search.crossref_mailto")),
	}

	records, err := drive.ScanFolder(context.Background(), lister, crossref, folderID, httpCfg, os.Stderr)
	if err != nil {
		return err
	}

	if persist, _ := cmd.Flags().GetBool("store"); persist {
		s, err := store.NewStore(storeConfigFromFlags(cmd))
		if err != nil {
			return err
		}
		defer s.Close()
		summary, err := s.Save(context.Background(), records)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Stored %d record(s): %d new, %d merged\n",
			summary.Total(), summary.Inserted, summary.Updated)
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	for _, r := range records {
		fmt.Fprintf(os.Stdout, "%s  %s (%s)\n", r.DOI, r.Title, r.Filename)
	}
	fmt.Fprintf(os.Stdout, "\n%d record(s) resolved\n", len(records))
	return nil
}

// --- shared helpers ---

func driveLister(cmd *cobra.Command, args []string) (*drive.Lister, string, error) {
	cfg := driveConfigFromFlags(cmd)

	folderID := cfg.FolderID
	if len(args) > 0 {
		folderID = args[0]
	}
	if folderID == "" {
		return nil, "", fmt.Errorf("provide a folder ID as an argument or via --folder")
	}

	svc, err := drive.NewService(context.Background(), cfg)
	if err != nil {
		return nil, "", err
	}
	return drive.NewLister(svc), folderID, nil
}

func driveConfigFromFlags(cmd *cobra.Command) types.DriveConfig {
	credentials, _ := cmd.Flags().GetString("credentials")
	if credentials == "" {
		credentials = viper.GetString("drive.credentials_file")
	}
	token, _ := cmd.Flags().GetString("token")
	if token == "" {
		token = viper.GetString("drive.token_file")
	}
	folder, _ := cmd.Flags().GetString("folder")
	if folder == "" {
		folder = viper.GetString("drive.folder_id")
	}
	return types.DriveConfig{
		CredentialsFile: credentials,
		TokenFile:       token,
		FolderID:        folder,
	}
}

func init() {
	driveCmd.PersistentFlags().String("credentials", "credentials.json", "OAuth client credentials JSON file")
	driveCmd.PersistentFlags().String("token", "token.json", "cached OAuth token JSON file")
	driveCmd.PersistentFlags().String("folder", "", "default Drive folder ID")
	driveCmd.PersistentFlags().Bool("json", false, "output as JSON")

	driveScanCmd.Flags().Duration("timeout", defaultTimeout, "HTTP request timeout for Crossref lookups")
	driveScanCmd.Flags().Bool("store", false, "persist resolved records to the local record store")
	driveScanCmd.Flags().String("db-dir", "", "record store directory (default ./litquery-db)")

	driveCmd.AddCommand(driveListCmd)
	driveCmd.AddCommand(driveScanCmd)

	rootCmd.AddCommand(driveCmd)
}

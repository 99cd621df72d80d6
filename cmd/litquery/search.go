// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/litquery/internal/queryspec"
	"github.com/pdiddy/litquery/internal/secrets"
	"github.com/pdiddy/litquery/internal/store"
	"github.com/pdiddy/litquery/internal/vendor"
	"github.com/pdiddy/litquery/pkg/types"
)

const (
	defaultTimeout    = 30 * time.Second
	defaultDelay      = 1 * time.Second
	defaultUserAgent  = "litquery/0.1"
	defaultMaxResults = 20
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run a query specification against the vendor APIs",
	Long: `Search renders the query specification for each enabled vendor, runs
the searches concurrently, and merges the results. Records are
deduplicated by DOI (falling back to normalized title), ranked by
position-based relevance, and capped at --max-results.

Vendors needing an API key are skipped unless the key is present in
.secrets/ or given via flag. A vendor failure is reported as a warning;
the search succeeds with the remaining vendors' results.`,
	RunE: runSearch,
}

func init() {
	addSpecFlags(searchCmd)
	searchCmd.Flags().Int("max-results", defaultMaxResults, "maximum merged results")
	searchCmd.Flags().Int("page-size", 0, "records per API page (0 = vendor default)")
	searchCmd.Flags().Duration("timeout", defaultTimeout, "HTTP request timeout")
	searchCmd.Flags().Duration("delay", defaultDelay, "delay between starting vendor searches")
	searchCmd.Flags().StringSlice("vendor", nil, "restrict to vendors: scopus, wos, scholar (default all)")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	searchCmd.Flags().String("save", "", "write results to a YAML file")
	searchCmd.Flags().Bool("store", false, "persist results to the local record store")
	searchCmd.Flags().String("db-dir", "", "record store directory (default ./litquery-db)")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	spec, err := specFromFlags(cmd)
	if err != nil {
		return err
	}

	cfg := searchConfigFromFlags(cmd)
	clients, err := buildClients(cmd, cfg)
	if err != nil {
		return err
	}
	if len(clients) == 0 {
		return fmt.Errorf("no vendors available: add API keys to .secrets/ (%s, %s, %s)",
			secrets.KeyScopusAPIKey, secrets.KeyWoSAPIKey, secrets.KeySerpAPIKey)
	}

	out, err := vendor.Run(context.Background(), spec, clients, cfg, os.Stderr)
	if err != nil {
		return err
	}

	if path, _ := cmd.Flags().GetString("save"); path != "" {
		if err := vendor.WriteResultFile(path, spec, clients, cfg, out); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Results written to %s\n", path)
	}

	if persist, _ := cmd.Flags().GetBool("store"); persist {
		if err := saveToStore(cmd, out); err != nil {
			return err
		}
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return vendor.FormatJSON(out, os.Stdout)
	}
	vendor.FormatTable(out, os.Stdout)
	return nil
}

func searchConfigFromFlags(cmd *cobra.Command) types.SearchConfig {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	delay, _ := cmd.Flags().GetDuration("delay")
	maxResults, _ := cmd.Flags().GetInt("max-results")
	pageSize, _ := cmd.Flags().GetInt("page-size")

	viper.SetDefault("search.enable_scopus", true)
	viper.SetDefault("search.enable_wos", true)
	viper.SetDefault("search.enable_scholar", true)

	return types.SearchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		MaxResults:       maxResults,
		PageSize:         pageSize,
		EnableScopus:     viper.GetBool("search.enable_scopus"),
		EnableWoS:        viper.GetBool("search.enable_wos"),
		EnableScholar:    viper.GetBool("search.enable_scholar"),
		ScopusAPIKey:     secretDefault(secrets.KeyScopusAPIKey, viper.GetString("search.scopus_api_key")),
		WoSAPIKey:        secretDefault(secrets.KeyWoSAPIKey, viper.GetString("search.wos_api_key")),
		SerpAPIKey:       secretDefault(secrets.KeySerpAPIKey, viper.GetString("search.serpapi_key")),
		CrossrefMailto:   secretDefault(secrets.KeyCrossrefMailto, viper.GetString("search.crossref_mailto")),
		InterVendorDelay: delay,
	}
}

// buildClients assembles one client per requested vendor, skipping
// vendors whose API key is missing with a warning. Without --vendor,
// the config's enable flags select the default set.
func buildClients(cmd *cobra.Command, cfg types.SearchConfig) ([]vendor.Client, error) {
	requested := map[queryspec.Vendor]bool{}
	names, _ := cmd.Flags().GetStringSlice("vendor")
	if len(names) == 0 {
		requested[queryspec.VendorScopus] = cfg.EnableScopus
		requested[queryspec.VendorWoS] = cfg.EnableWoS
		requested[queryspec.VendorScholar] = cfg.EnableScholar
	} else {
		for _, name := range names {
			v, err := queryspec.ParseVendor(name)
			if err != nil {
				return nil, err
			}
			requested[v] = true
		}
	}

	httpClient := &http.Client{Timeout: cfg.Timeout}
	crossref := &vendor.CrossrefClient{Client: httpClient, Mailto: cfg.CrossrefMailto}

	var clients []vendor.Client
	if requested[queryspec.VendorScopus] {
		if cfg.ScopusAPIKey == "" {
			fmt.Fprintf(os.Stderr, "warning: scopus skipped: no %s in .secrets/\n", secrets.KeyScopusAPIKey)
		} else {
			clients = append(clients, &vendor.ScopusClient{Client: httpClient, APIKey: cfg.ScopusAPIKey})
		}
	}
	if requested[queryspec.VendorWoS] {
		if cfg.WoSAPIKey == "" {
			fmt.Fprintf(os.Stderr, "warning: wos skipped: no %s in .secrets/\n", secrets.KeyWoSAPIKey)
		} else {
			clients = append(clients, &vendor.WoSClient{Client: httpClient, APIKey: cfg.WoSAPIKey})
		}
	}
	if requested[queryspec.VendorScholar] {
		if cfg.SerpAPIKey == "" {
			fmt.Fprintf(os.Stderr, "warning: scholar skipped: no %s in .secrets/\n", secrets.KeySerpAPIKey)
		} else {
			clients = append(clients, &vendor.ScholarClient{APIKey: cfg.SerpAPIKey, Crossref: crossref})
		}
	}
	return clients, nil
}

func saveToStore(cmd *cobra.Command, out vendor.Output) error {
	s, err := store.NewStore(storeConfigFromFlags(cmd))
	if err != nil {
		return err
	}
	defer s.Close()

	summary, err := s.Save(context.Background(), out.Records)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Stored %d record(s): %d new, %d merged, %d without DOI skipped\n",
		summary.Total(), summary.Inserted, summary.Updated, summary.Skipped)
	return nil
}

func storeConfigFromFlags(cmd *cobra.Command) types.StoreConfig {
	dbDir, _ := cmd.Flags().GetString("db-dir")
	if dbDir == "" {
		dbDir = viper.GetString("store.db_dir")
	}
	if dbDir == "" {
		dbDir = "litquery-db"
	}
	return types.StoreConfig{DBDir: dbDir}
}

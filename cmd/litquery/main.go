// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the litquery CLI.
//
// litquery formats Boolean search queries for scientific-literature
// vendors, runs them against the vendor APIs, inventories a shared
// Drive folder, and maintains a local record store. Each operation is
// a subcommand: format, search, drive, and store.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/litquery/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback if non-empty, the secret value for
// key otherwise.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the litquery CLI.
var rootCmd = &cobra.Command{
	Use:   "litquery",
	Short: "Format and run scientific-literature searches",
	Long: `litquery turns a structured query specification (groups of synonyms,
year range, document types, languages) into the Boolean dialect of each
literature vendor: Scopus, Web of Science, and Google Scholar.

Beyond formatting, it runs the queries against the vendor APIs, merges
and deduplicates the results by DOI, inventories the PDFs in a shared
Google Drive folder, and accumulates everything in a local SQLite
record store.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./litquery.yaml or ~/.config/litquery/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("litquery")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "litquery"))
		}
	}

	viper.SetEnvPrefix("LITQUERY")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

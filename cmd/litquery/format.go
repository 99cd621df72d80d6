// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/litquery/internal/queryspec"
)

var formatCmd = &cobra.Command{
	Use:   "format",
	Short: "Render a query specification in vendor search dialects",
	Long: `Format turns a structured query specification into the Boolean search
dialect of each vendor. Synonym groups combine with OR inside a group
and AND across groups; year range, document type, and language filters
are appended in each vendor's syntax. Google Scholar supports none of
the filters and gets a plain quoted-phrase query.

With --vendor, only that vendor's query is printed. Without it, all
vendors are printed with a label.`,
	RunE: runFormat,
}

func init() {
	addSpecFlags(formatCmd)
	formatCmd.Flags().String("vendor", "", "render a single vendor: scopus, wos, scholar")
	formatCmd.Flags().String("write-spec", "", "also save the specification to a YAML file")

	rootCmd.AddCommand(formatCmd)
}

func runFormat(cmd *cobra.Command, args []string) error {
	spec, err := specFromFlags(cmd)
	if err != nil {
		return err
	}

	vendors := queryspec.AllVendors()
	single := false
	if name, _ := cmd.Flags().GetString("vendor"); name != "" {
		v, err := queryspec.ParseVendor(name)
		if err != nil {
			return err
		}
		vendors = []queryspec.Vendor{v}
		single = true
	}

	for _, v := range vendors {
		q, err := queryspec.Render(spec, v)
		if err != nil {
			return err
		}
		if !queryspec.BalancedParens(q) {
			return fmt.Errorf("rendered %s query has unbalanced parentheses: %s", v, q)
		}
		if single {
			fmt.Fprintln(os.Stdout, q)
		} else {
			fmt.Fprintf(os.Stdout, "%s: %s\n", v, q)
		}
	}

	if path, _ := cmd.Flags().GetString("write-spec"); path != "" {
		if err := queryspec.WriteSpecFile(path, spec); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Specification written to %s\n", path)
	}
	return nil
}

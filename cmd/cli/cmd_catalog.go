package main

import (
	"fmt"
	"sort"

	"macro-parity/internal/catalog"

	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the asset catalog",
	RunE:  runCatalog,
}

var (
	catalogPath string
	catalogOut  string
)

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.Flags().StringVar(&catalogPath, "catalog", "", "Asset catalog YAML (default: built-in)")
	catalogCmd.Flags().StringVar(&catalogOut, "out", "", "Also write the catalog as YAML to this path")
}

func runCatalog(cmd *cobra.Command, _ []string) error {
	classes, err := loadCatalog(catalogPath)
	if err != nil {
		return err
	}
	if catalogOut != "" {
		if err := catalog.Save(catalogOut, classes); err != nil {
			return fmt.Errorf("write catalog: %w", err)
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-24s %-24s %8s %8s  %s\n", "name", "category", "return", "vol", "correlations")
	for _, ac := range classes {
		peers := make([]string, 0, len(ac.Correlation))
		for name := range ac.Correlation {
			peers = append(peers, name)
		}
		sort.Strings(peers)
		corr := ""
		for i, p := range peers {
			if i > 0 {
				corr += ", "
			}
			corr += fmt.Sprintf("%s=%.2f", p, ac.Correlation[p])
		}
		fmt.Fprintf(out, "%-24s %-24s %8.3f %8.3f  %s\n", ac.Name, ac.Category(), ac.ExpectedReturn, ac.Volatility, corr)
	}
	return nil
}

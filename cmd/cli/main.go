package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cli",
	Short: "Macro-tilted risk-parity allocator",
	Long: `Computes daily target allocations across asset classes: inverse-volatility
weights tilted by GDP growth and inflation, renormalized to sum to 1.

Examples:
  cli allocate --gdp 3.1 --inflation 4.2
  cli backtest --config examples/config.yaml --out results/allocations.csv
  cli stats --config examples/config.yaml --indicators data/indicators.json
  cli catalog --catalog examples/catalog.yaml`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"macro-parity/internal/analysis"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize a backtest: per-asset weight statistics and turnover",
	RunE:  runStats,
}

var (
	statsConfigPath     string
	statsIndicatorsPath string
	statsCredentials    string
	statsSortBy         string
)

func init() {
	rootCmd.AddCommand(statsCmd)
	addRunFlags(statsCmd, &statsConfigPath, &statsIndicatorsPath, &statsCredentials)
	statsCmd.Flags().StringVar(&statsSortBy, "sort", "mean", "Sort assets by mean|spread")
}

func runStats(cmd *cobra.Command, _ []string) error {
	var rank func(analysis.Summary) []analysis.AssetStats
	switch statsSortBy {
	case "mean":
		rank = analysis.RankByMeanAllocation
	case "spread":
		rank = analysis.RankBySpread
	default:
		return fmt.Errorf("invalid --sort %q (expected mean or spread)", statsSortBy)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := executeBacktest(ctx, statsConfigPath, statsIndicatorsPath, statsCredentials)
	if err != nil {
		return err
	}
	s := analysis.Summarize(res.Ledger)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s to %s: %d days, %d with indicator data\n",
		s.Start.Format("2006-01-02"), s.End.Format("2006-01-02"), s.Days, s.DaysWithData)
	fmt.Fprintf(out, "Turnover=%.4f MaxDailyTurnover=%.4f\n\n", s.Turnover, s.MaxDailyTurnover)

	fmt.Fprintf(out, "%-4s %-24s %8s %8s %8s %8s %8s\n", "rank", "asset", "mean%", "min%", "max%", "std%", "p95-p05")
	for i, a := range rank(s) {
		fmt.Fprintf(out, "%-4d %-24s %8.2f %8.2f %8.2f %8.2f %8.2f\n",
			i+1, a.Asset, a.Mean*100, a.Min*100, a.Max*100, a.StdDev*100, a.Spread*100)
	}
	return nil
}

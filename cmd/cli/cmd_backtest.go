package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"macro-parity/internal/backtest"
	"macro-parity/internal/config"
	"macro-parity/internal/data"
	"macro-parity/internal/logger"
	"macro-parity/internal/strategy"

	"github.com/spf13/cobra"
)

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Allocate once per calendar day over the configured window",
	Long: `Builds the environment snapshot for every day of the backtest window and
prints the day's environment and allocation. Indicator series come from
Alpha Vantage (API key from the credentials file or ALPHA_VANTAGE_API_KEY)
or from a JSON file written by fetch-indicators.

Examples:
  cli backtest
  cli backtest --config examples/config.yaml --out results/allocations.csv
  cli backtest --indicators data/indicators.json --print=false --out results/allocations.csv`,
	RunE: runBacktest,
}

var (
	backtestConfigPath     string
	backtestIndicatorsPath string
	backtestCredentials    string
	backtestOutPath        string
	backtestPrint          bool
)

func init() {
	rootCmd.AddCommand(backtestCmd)

	addRunFlags(backtestCmd, &backtestConfigPath, &backtestIndicatorsPath, &backtestCredentials)
	backtestCmd.Flags().StringVar(&backtestOutPath, "out", "", "Optional ledger CSV path")
	backtestCmd.Flags().BoolVar(&backtestPrint, "print", true, "Print each day's environment and allocation")
}

func addRunFlags(cmd *cobra.Command, cfgPath, indicatorsPath, credentials *string) {
	cmd.Flags().StringVar(cfgPath, "config", "", "Run config YAML (default: built-in settings)")
	cmd.Flags().StringVar(indicatorsPath, "indicators", "", "Indicators JSON; overrides data.source")
	cmd.Flags().StringVar(credentials, "credentials", config.DefaultCredentialsFile, "Credentials file with ALPHA_VANTAGE_API_KEY")
}

func runBacktest(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := executeBacktest(ctx, backtestConfigPath, backtestIndicatorsPath, backtestCredentials)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if backtestPrint {
		for _, row := range res.Ledger {
			if err := backtest.WriteReport(out, row); err != nil {
				return err
			}
		}
	}

	if backtestOutPath != "" {
		if err := os.MkdirAll(filepath.Dir(backtestOutPath), 0o755); err != nil {
			return err
		}
		if err := backtest.WriteLedgerCSV(backtestOutPath, res.Ledger); err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote %d rows to %s\n", len(res.Ledger), backtestOutPath)
	}
	fmt.Fprintf(out, "Strategy=%s Days=%d DaysWithData=%d\n", res.Strategy, len(res.Ledger), res.DaysWithData)
	return nil
}

// executeBacktest loads config and indicators and runs the engine.
func executeBacktest(ctx context.Context, cfgPath, indicatorsPath, credentials string) (*backtest.Result, error) {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return nil, err
	}
	if indicatorsPath != "" {
		cfg.Data.Source = config.SourceFile
		cfg.Data.Path = indicatorsPath
	}
	log := logger.New(cfg.Log)

	apiKey := ""
	if cfg.Data.Source == config.SourceAlphaVantage {
		apiKey, err = config.LoadAPIKey(credentials)
		if err != nil {
			return nil, err
		}
	}

	indicators, err := cfg.Data.LoadIndicators(ctx, apiKey, log, nil)
	if err != nil {
		return nil, fmt.Errorf("load indicators: %w", err)
	}
	log.Info().Int("indicators", len(indicators)).Str("source", cfg.Data.Source).Msg("indicators loaded")

	strat, err := strategy.Build(cfg.Strategy.Name, cfg.Catalog)
	if err != nil {
		return nil, err
	}
	window, err := cfg.Window()
	if err != nil {
		return nil, err
	}
	return backtest.New(log, nil).Run(ctx, window, data.NewSnapshotIndex(indicators), strat)
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	cfg := &config.Config{}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

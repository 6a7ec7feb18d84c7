package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"macro-parity/internal/config"
	"macro-parity/internal/data"
	"macro-parity/internal/logger"
	"macro-parity/internal/model"
)

func main() {
	var (
		outputPath  = flag.String("out", "data/indicators.json", "Output file path")
		credentials = flag.String("credentials", config.DefaultCredentialsFile, "Credentials file with ALPHA_VANTAGE_API_KEY")
		cfgPath     = flag.String("config", "", "Optional run config (data.base_url, data.cache, data.requests_per_minute)")
		seedFile    = flag.String("seed", "", "Existing indicators file; its series are kept for indicators that fail to fetch (default: --out)")
		logLevel    = flag.String("log-level", "info", "Log level")
	)
	flag.Parse()

	log := logger.New(logger.Config{Level: *logLevel, Pretty: true})

	apiKey, err := config.LoadAPIKey(*credentials)
	if err != nil {
		log.Fatal().Err(err).Msg("missing API key")
	}

	var dataCfg config.DataConfig
	if *cfgPath != "" {
		cfg, err := config.Load(*cfgPath)
		if err != nil {
			log.Fatal().Err(err).Msg("load config")
		}
		dataCfg = cfg.Data
	} else {
		cfg := &config.Config{}
		cfg.ApplyDefaults()
		dataCfg = cfg.Data
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, closeCache, err := dataCfg.NewClient(apiKey, log, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("build client")
	}
	defer closeCache()

	// Load existing series as seed
	seedPath := *seedFile
	if seedPath == "" {
		seedPath = *outputPath
	}
	var existing []model.EconomicIndicator
	if f, err := data.LoadIndicatorsJSON(seedPath); err == nil {
		existing = f.Indicators
		fmt.Printf("Loaded %d existing indicators from %s\n", len(existing), seedPath)
	}

	defs := data.DefaultIndicators()
	fmt.Printf("Fetching %d indicators from Alpha Vantage...\n", len(defs))
	fetched, err := data.FetchIndicators(ctx, client, defs, log)
	if err != nil {
		log.Fatal().Err(err).Msg("fetch indicators")
	}

	indicators := mergeIndicators(defs, fetched, existing)
	if len(indicators) == 0 {
		log.Fatal().Msg("no indicators fetched and no seed to fall back on")
	}

	if err := data.SaveIndicatorsJSON(*outputPath, data.NewIndicatorFile("alphavantage", indicators)); err != nil {
		log.Fatal().Err(err).Msg("save indicators")
	}
	fmt.Printf("Saved %d indicators (%d fetched) to %s\n", len(indicators), len(fetched), *outputPath)
}

// mergeIndicators orders results by definition, preferring fresh series and
// falling back to the seed for any that failed.
func mergeIndicators(defs []data.IndicatorDefinition, fetched, seed []model.EconomicIndicator) []model.EconomicIndicator {
	out := make([]model.EconomicIndicator, 0, len(defs))
	for _, d := range defs {
		if ind, ok := data.IndicatorByName(fetched, d.Name); ok {
			out = append(out, ind)
			continue
		}
		if ind, ok := data.IndicatorByName(seed, d.Name); ok {
			fmt.Printf("Keeping previous %s series (%d points)\n", d.Name, len(ind.Data))
			out = append(out, ind)
		}
	}
	return out
}

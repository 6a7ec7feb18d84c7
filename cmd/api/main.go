package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"macro-parity/internal/api"
	"macro-parity/internal/api/middleware"
	"macro-parity/internal/config"
	"macro-parity/internal/data"
	"macro-parity/internal/logger"
	"macro-parity/internal/metrics"
	"macro-parity/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	// Get configuration from environment
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}
	log := logger.New(logger.Config{
		Level:  os.Getenv("LOG_LEVEL"),
		Pretty: os.Getenv("API_ENV") != "production",
	})

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Optional run config supplies the catalog and provider settings.
	var (
		classes []model.AssetClass
		dataCfg config.DataConfig
	)
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			log.Fatal().Err(err).Str("path", path).Msg("failed to load config")
		}
		classes = cfg.Catalog
		dataCfg = cfg.Data
	} else {
		cfg := &config.Config{}
		cfg.ApplyDefaults()
		classes = cfg.Catalog
		dataCfg = cfg.Data
	}

	// Server-side key is optional; requests may carry their own.
	apiKey, err := config.LoadAPIKey(os.Getenv("CREDENTIALS_FILE"))
	switch {
	case errors.Is(err, config.ErrAPIKeyNotFound):
		log.Info().Msg("no server-side Alpha Vantage key; backtests must supply api_key or indicators")
		apiKey = ""
	case err != nil:
		log.Warn().Err(err).Msg("failed to read Alpha Vantage credentials; continuing without a server-side key")
		apiKey = ""
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	rec := metrics.New(reg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// One cache shared by every per-request client.
	cache, closeCache, err := dataCfg.NewCache()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build series cache")
	}
	defer closeCache()
	if mc, ok := cache.(*data.MemoryCache); ok {
		mc.StartCleanup(ctx, time.Minute)
	}
	limiter := data.NewLimiter(dataCfg.RequestsPerMinute)

	newFetcher := func(key string) (data.SeriesFetcher, error) {
		c := data.NewAlphaVantageClient(key, dataCfg.BaseURL, log)
		c.Limiter = limiter
		c.Cache = cache
		c.Metrics = rec
		return c, nil
	}

	router := api.NewRouter(api.Options{
		Catalog:     classes,
		NewFetcher:  newFetcher,
		APIKey:      apiKey,
		CORSOrigins: middleware.ParseOrigins(os.Getenv("CORS_ORIGINS")),
		Log:         log,
		Metrics:     rec,
		Gatherer:    reg,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Int("asset_classes", len(classes)).Msg("starting API server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

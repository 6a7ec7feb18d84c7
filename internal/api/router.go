package api

import (
	"net/http"

	"macro-parity/internal/api/handlers"
	"macro-parity/internal/api/middleware"
	"macro-parity/internal/catalog"
	"macro-parity/internal/metrics"
	"macro-parity/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Options configures NewRouter.
type Options struct {
	Catalog     []model.AssetClass // default: catalog.Default()
	NewFetcher  handlers.FetcherFactory
	APIKey      string   // server-side fallback for backtests
	CORSOrigins []string // default: "*"

	Log      zerolog.Logger
	Metrics  *metrics.Recorder
	Gatherer prometheus.Gatherer // nil disables /metrics
}

// NewRouter wires middleware and routes.
func NewRouter(opts Options) *gin.Engine {
	classes := opts.Catalog
	if len(classes) == 0 {
		classes = catalog.Default()
	}
	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	router := gin.New()
	router.Use(middleware.ErrorHandler(opts.Log))
	router.Use(middleware.CORS(origins))
	router.Use(middleware.Logger(opts.Log))
	router.Use(middleware.Metrics(opts.Metrics))

	catalogHandler := handlers.NewCatalogHandler(classes)
	allocationHandler := handlers.NewAllocationHandler(classes, opts.Log, opts.Metrics)
	backtestHandler := handlers.NewBacktestHandler(classes, opts.NewFetcher, opts.APIKey, opts.Log, opts.Metrics)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if opts.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	v1 := router.Group("/api/v1")
	{
		v1.GET("/catalog", catalogHandler.ListAssetClasses)
		v1.GET("/indicators", handlers.ListIndicators)
		v1.GET("/strategies", handlers.ListStrategies)

		v1.POST("/allocations", allocationHandler.Allocate)
		v1.POST("/backtest", backtestHandler.RunBacktest)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "NOT_FOUND", "message": "Not found"}})
	})
	return router
}

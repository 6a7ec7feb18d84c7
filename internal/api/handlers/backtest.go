package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"

	"macro-parity/internal/allocation"
	"macro-parity/internal/analysis"
	"macro-parity/internal/api/models"
	"macro-parity/internal/backtest"
	"macro-parity/internal/catalog"
	"macro-parity/internal/data"
	"macro-parity/internal/metrics"
	"macro-parity/internal/model"
	"macro-parity/internal/strategy"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const dateLayout = "2006-01-02"

// maxBacktestDays caps request windows at roughly 50 years.
const maxBacktestDays = 50 * 366

// FetcherFactory returns a series fetcher authenticated with apiKey.
type FetcherFactory func(apiKey string) (data.SeriesFetcher, error)

// BacktestHandler handles backtest-related requests
type BacktestHandler struct {
	classes    []model.AssetClass
	newFetcher FetcherFactory
	apiKey     string // server-side fallback, may be empty
	log        zerolog.Logger
	metrics    *metrics.Recorder
}

func NewBacktestHandler(classes []model.AssetClass, newFetcher FetcherFactory, apiKey string, log zerolog.Logger, rec *metrics.Recorder) *BacktestHandler {
	return &BacktestHandler{
		classes:    classes,
		newFetcher: newFetcher,
		apiKey:     apiKey,
		log:        log.With().Str("component", "backtest_handler").Logger(),
		metrics:    rec,
	}
}

// RunBacktest handles POST /api/v1/backtest
func (h *BacktestHandler) RunBacktest(c *gin.Context) {
	var req models.BacktestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	window, err := backtest.ParseWindow(req.StartDate, req.EndDate)
	if err == nil {
		err = window.Validate()
	}
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_DATE_RANGE", err.Error())
		return
	}
	if window.Days() > maxBacktestDays {
		writeError(c, http.StatusBadRequest, "INVALID_DATE_RANGE", "backtest window is too long")
		return
	}

	classes := h.classes
	if len(req.Catalog) > 0 {
		classes = models.CatalogToModel(req.Catalog)
	}
	if err := catalog.Validate(classes); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_CATALOG", err.Error())
		return
	}
	strat, err := strategy.Build(req.Strategy, classes)
	if err != nil {
		if allocation.ErrorKind(err) == "other" {
			writeError(c, http.StatusBadRequest, "INVALID_STRATEGY", err.Error())
			return
		}
		writeAllocationError(c, err)
		return
	}

	indicators, ok := h.indicators(c, req)
	if !ok {
		return
	}

	result, err := backtest.New(h.log, h.metrics).Run(c.Request.Context(), window, data.NewSnapshotIndex(indicators), strat)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			writeError(c, http.StatusServiceUnavailable, "CANCELLED", err.Error())
			return
		}
		writeAllocationError(c, err)
		return
	}

	c.JSON(http.StatusOK, buildResponse(result, req.IncludeLedger))
}

// indicators resolves the request's series, writing the error response
// itself when it returns false.
func (h *BacktestHandler) indicators(c *gin.Context, req models.BacktestRequest) ([]model.EconomicIndicator, bool) {
	if len(req.Indicators) > 0 {
		out := make([]model.EconomicIndicator, 0, len(req.Indicators))
		for _, s := range req.Indicators {
			ind, err := s.ToModel()
			if err != nil {
				writeError(c, http.StatusBadRequest, "INVALID_INDICATORS", err.Error())
				return nil, false
			}
			out = append(out, ind)
		}
		return out, true
	}

	apiKey := strings.TrimSpace(req.APIKey)
	if apiKey == "" {
		apiKey = h.apiKey
	}
	if apiKey == "" {
		writeError(c, http.StatusBadRequest, data.CodeMissingAPIKey, "api_key is required when indicators are not supplied")
		return nil, false
	}
	if h.newFetcher == nil {
		writeError(c, http.StatusServiceUnavailable, "PROVIDER_UNAVAILABLE", "no indicator provider configured")
		return nil, false
	}

	fetcher, err := h.newFetcher(apiKey)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "PROVIDER_UNAVAILABLE", err.Error())
		return nil, false
	}
	rf := &recordingFetcher{SeriesFetcher: fetcher}
	out, err := data.FetchIndicators(c.Request.Context(), rf, data.DefaultIndicators(), h.log)
	if err != nil {
		writeProviderError(c, err)
		return nil, false
	}
	if len(out) == 0 && rf.firstErr() != nil {
		writeProviderError(c, rf.firstErr())
		return nil, false
	}
	return out, true
}

// recordingFetcher remembers the first fetch error. FetchIndicators skips
// failed series, so without it a run where every fetch failed would look
// like a run with no data.
type recordingFetcher struct {
	data.SeriesFetcher

	mu    sync.Mutex
	first error
}

func (r *recordingFetcher) FetchSeries(ctx context.Context, req data.SeriesRequest) ([]model.Observation, error) {
	obs, err := r.SeriesFetcher.FetchSeries(ctx, req)
	if err != nil {
		r.mu.Lock()
		if r.first == nil {
			r.first = err
		}
		r.mu.Unlock()
	}
	return obs, err
}

func (r *recordingFetcher) firstErr() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.first
}

func buildResponse(result *backtest.Result, includeLedger bool) models.BacktestResponse {
	summary := analysis.Summarize(result.Ledger)

	ranked := analysis.RankByMeanAllocation(summary)
	rankings := make([]models.Ranking, len(ranked))
	for i, a := range ranked {
		rankings[i] = models.Ranking{
			Rank:   i + 1,
			Asset:  a.Asset,
			Mean:   a.Mean,
			Min:    a.Min,
			Max:    a.Max,
			Spread: a.Spread,
		}
	}

	resp := models.BacktestResponse{
		Status:   "completed",
		Strategy: result.Strategy,
		Summary: models.BacktestSummary{
			BacktestWindow: models.TimeWindow{
				Start: result.Window.Start.Format(dateLayout),
				End:   result.Window.End.Format(dateLayout),
			},
			TotalDays:        summary.Days,
			DaysWithData:     summary.DaysWithData,
			Turnover:         summary.Turnover,
			MaxDailyTurnover: summary.MaxDailyTurnover,
			Assets:           summary.Assets,
		},
		Final:    result.Final(),
		Rankings: rankings,
	}

	if includeLedger {
		resp.Ledger = convertLedger(result.Ledger)
	}
	return resp
}

func convertLedger(ledger []backtest.LedgerRow) []models.LedgerRow {
	out := make([]models.LedgerRow, len(ledger))
	for i, row := range ledger {
		out[i] = models.LedgerRow{
			Index:       row.Index,
			Date:        row.Date.Format(dateLayout),
			Environment: row.Environment,
			Allocations: row.Allocations,
		}
	}
	return out
}

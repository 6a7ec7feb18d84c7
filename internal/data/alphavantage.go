package data

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"macro-parity/internal/metrics"
	"macro-parity/internal/model"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	DefaultAlphaVantageURL = "https://www.alphavantage.co"

	// DefaultRequestsPerMinute is the provider's free-tier quota.
	DefaultRequestsPerMinute = 5
)

// AlphaVantageClient fetches economic-indicator series from the Alpha Vantage API.
type AlphaVantageClient struct {
	APIKey  string
	BaseURL string
	Client  *http.Client

	// Limiter paces outgoing requests; nil disables pacing.
	Limiter *rate.Limiter
	// Cache, when set, is consulted before and filled after each request.
	Cache   SeriesCache
	Metrics *metrics.Recorder
	Logger  zerolog.Logger
}

// NewAlphaVantageClient creates a new client.
// If baseURL is empty, defaults to DefaultAlphaVantageURL.
func NewAlphaVantageClient(apiKey string, baseURL string, log zerolog.Logger) *AlphaVantageClient {
	if baseURL == "" {
		baseURL = DefaultAlphaVantageURL
	}
	return &AlphaVantageClient{
		APIKey:  apiKey,
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
		Limiter: NewLimiter(DefaultRequestsPerMinute),
		Logger:  log.With().Str("component", "alphavantage").Logger(),
	}
}

// NewLimiter returns a limiter allowing perMinute requests per minute with a
// burst of the same size. perMinute <= 0 returns nil (no pacing).
func NewLimiter(perMinute int) *rate.Limiter {
	if perMinute <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute)
}

// SeriesRequest identifies one indicator series.
type SeriesRequest struct {
	Function string // e.g. "REAL_GDP", "INFLATION"
	Interval string // e.g. "monthly" (default), "quarterly", "annual"
}

func (r SeriesRequest) IntervalOrDefault() string {
	if r.Interval == "" {
		return "monthly"
	}
	return r.Interval
}

// CacheKey is the cache key for a request.
func (r SeriesRequest) CacheKey() string {
	return r.Function + ":" + r.IntervalOrDefault()
}

// AlphaVantageError represents an error from the Alpha Vantage API.
type AlphaVantageError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *AlphaVantageError) Error() string {
	return e.Message
}

const (
	CodeMissingAPIKey     = "MISSING_API_KEY"
	CodeInvalidAPIKey     = "INVALID_API_KEY"
	CodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
	CodeAPIError          = "API_ERROR"
)

// FetchSeries returns the observations of one indicator series.
// Points whose date or value cannot be parsed are skipped.
func (c *AlphaVantageClient) FetchSeries(ctx context.Context, req SeriesRequest) ([]model.Observation, error) {
	if c.APIKey == "" {
		return nil, &AlphaVantageError{Code: CodeMissingAPIKey, Message: "API key is required"}
	}
	if req.Function == "" {
		return nil, fmt.Errorf("function is required")
	}

	log := c.Logger.With().Str("function", req.Function).Str("interval", req.IntervalOrDefault()).Logger()

	if c.Cache != nil {
		cached, found, err := c.Cache.Get(ctx, req.CacheKey())
		if err != nil {
			log.Warn().Err(err).Msg("series cache lookup failed")
		} else if found {
			log.Debug().Int("observations", len(cached)).Msg("cache hit")
			c.Metrics.RecordFetch(req.Function, "cache_hit", 0)
			return cached, nil
		}
	}

	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	u, err := url.Parse(c.BaseURL + "/query")
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	q := u.Query()
	q.Set("function", req.Function)
	q.Set("interval", req.IntervalOrDefault())
	q.Set("apikey", c.APIKey)
	u.RawQuery = q.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.Client.Do(httpReq)
	duration := time.Since(start)
	if err != nil {
		log.Error().Err(err).Dur("duration", duration).Msg("request failed")
		c.Metrics.RecordFetch(req.Function, "transport_error", duration)
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	log.Debug().Int("status", resp.StatusCode).Dur("duration", duration).Msg("response")

	if apiErr := statusError(resp); apiErr != nil {
		log.Error().Int("status", resp.StatusCode).Str("code", apiErr.Code).Msg(apiErr.Message)
		c.Metrics.RecordFetch(req.Function, apiErr.Code, duration)
		return nil, apiErr
	}

	var body model.AlphaVantageResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		log.Error().Err(err).Msg("error decoding response")
		c.Metrics.RecordFetch(req.Function, "decode_error", duration)
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if apiErr := bodyError(&body); apiErr != nil {
		log.Error().Str("code", apiErr.Code).Msg(apiErr.Message)
		c.Metrics.RecordFetch(req.Function, apiErr.Code, duration)
		return nil, apiErr
	}

	obs := ParseObservations(body.Data)
	log.Info().
		Int("points", len(body.Data)).
		Int("observations", len(obs)).
		Dur("duration", duration).
		Msg("fetched series")
	c.Metrics.RecordFetch(req.Function, "ok", duration)

	if c.Cache != nil {
		if err := c.Cache.Set(ctx, req.CacheKey(), obs); err != nil {
			log.Warn().Err(err).Msg("series cache store failed")
		}
	}
	return obs, nil
}

func statusError(resp *http.Response) *AlphaVantageError {
	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return &AlphaVantageError{
			StatusCode: resp.StatusCode,
			Code:       CodeInvalidAPIKey,
			Message:    "Invalid API key or insufficient permissions",
		}
	case http.StatusTooManyRequests:
		return &AlphaVantageError{
			StatusCode: resp.StatusCode,
			Code:       CodeRateLimitExceeded,
			Message:    fmt.Sprintf("Rate limit exceeded. Retry after: %s", resp.Header.Get("Retry-After")),
		}
	default:
		return &AlphaVantageError{
			StatusCode: resp.StatusCode,
			Code:       CodeAPIError,
			Message:    fmt.Sprintf("API returned status %d: %s", resp.StatusCode, resp.Status),
		}
	}
}

// bodyError maps the messages Alpha Vantage returns with HTTP 200.
func bodyError(body *model.AlphaVantageResponse) *AlphaVantageError {
	switch {
	case body.ErrorMessage != "":
		code := CodeAPIError
		if strings.Contains(strings.ToLower(body.ErrorMessage), "apikey") {
			code = CodeInvalidAPIKey
		}
		return &AlphaVantageError{StatusCode: http.StatusOK, Code: code, Message: body.ErrorMessage}
	case len(body.Data) == 0 && body.Note != "":
		return &AlphaVantageError{StatusCode: http.StatusOK, Code: CodeRateLimitExceeded, Message: body.Note}
	case len(body.Data) == 0 && body.Information != "":
		code := CodeRateLimitExceeded
		if strings.Contains(strings.ToLower(body.Information), "apikey") {
			code = CodeInvalidAPIKey
		}
		return &AlphaVantageError{StatusCode: http.StatusOK, Code: code, Message: body.Information}
	}
	return nil
}

// ParseObservations converts raw points, keeping provider order and
// dropping points with an unparseable date (YYYY-MM-DD) or value.
func ParseObservations(points []model.AlphaVantageDataPoint) []model.Observation {
	out := make([]model.Observation, 0, len(points))
	for _, p := range points {
		date, err := time.Parse("2006-01-02", strings.TrimSpace(p.Date))
		if err != nil {
			continue
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(p.Value), 64)
		if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
			continue
		}
		out = append(out, model.Observation{Date: date, Value: value})
	}
	return out
}

package data

import (
	"context"
	"errors"

	"macro-parity/internal/model"

	"github.com/rs/zerolog"
)

// IndicatorDefinition maps a provider series to the indicator name used by the allocator.
type IndicatorDefinition struct {
	Function string  `json:"function" yaml:"function"`
	Name     string  `json:"name" yaml:"name"`
	Weight   float64 `json:"weight" yaml:"weight"`
	Interval string  `json:"interval,omitempty" yaml:"interval,omitempty"`
}

func (d IndicatorDefinition) Request() SeriesRequest {
	return SeriesRequest{Function: d.Function, Interval: d.Interval}
}

// DefaultIndicators returns the standard indicator set. Weights sum to 1.
func DefaultIndicators() []IndicatorDefinition {
	return []IndicatorDefinition{
		{Function: "REAL_GDP", Name: model.IndicatorGDPGrowth, Weight: 0.2},
		{Function: "INFLATION", Name: model.IndicatorInflationRate, Weight: 0.2},
		{Function: "UNEMPLOYMENT", Name: "Unemployment Rate", Weight: 0.15},
		{Function: "FEDERAL_FUNDS_RATE", Name: "Interest Rate", Weight: 0.15},
		{Function: "CONSUMER_SENTIMENT", Name: "Consumer Confidence", Weight: 0.1},
		{Function: "NONFARM_PAYROLL", Name: "Employment", Weight: 0.1},
		{Function: "RETAIL_SALES", Name: "Retail Sales", Weight: 0.1},
	}
}

// SeriesFetcher is satisfied by *AlphaVantageClient.
type SeriesFetcher interface {
	FetchSeries(ctx context.Context, req SeriesRequest) ([]model.Observation, error)
}

// FetchIndicators fetches every definition in order. An indicator whose
// fetch fails is logged and left out; only context cancellation aborts.
func FetchIndicators(ctx context.Context, f SeriesFetcher, defs []IndicatorDefinition, log zerolog.Logger) ([]model.EconomicIndicator, error) {
	out := make([]model.EconomicIndicator, 0, len(defs))
	for _, def := range defs {
		obs, err := f.FetchSeries(ctx, def.Request())
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			log.Warn().Err(err).Str("indicator", def.Name).Str("function", def.Function).Msg("failed to fetch indicator, skipping")
			continue
		}
		out = append(out, model.EconomicIndicator{
			Name:   def.Name,
			Data:   obs,
			Weight: def.Weight,
		})
	}
	return out, nil
}

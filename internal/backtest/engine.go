package backtest

import (
	"context"
	"fmt"
	"time"

	"macro-parity/internal/allocation"
	"macro-parity/internal/metrics"
	"macro-parity/internal/model"
	"macro-parity/internal/strategy"

	"github.com/rs/zerolog"
)

const dateLayout = "2006-01-02"

// Window is an inclusive range of calendar days.
type Window struct {
	Start time.Time
	End   time.Time
}

// DefaultWindow is 2020-01-01 through 2023-12-31.
func DefaultWindow() Window {
	return Window{
		Start: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC),
	}
}

// ParseWindow parses YYYY-MM-DD bounds.
func ParseWindow(start, end string) (Window, error) {
	s, err := time.Parse(dateLayout, start)
	if err != nil {
		return Window{}, fmt.Errorf("invalid start date %q (expected YYYY-MM-DD): %w", start, err)
	}
	e, err := time.Parse(dateLayout, end)
	if err != nil {
		return Window{}, fmt.Errorf("invalid end date %q (expected YYYY-MM-DD): %w", end, err)
	}
	return Window{Start: s, End: e}, nil
}

func (w Window) Validate() error {
	if w.Start.IsZero() || w.End.IsZero() {
		return fmt.Errorf("start and end dates are required")
	}
	if model.DayKey(w.Start).After(model.DayKey(w.End)) {
		return fmt.Errorf("start date %s is after end date %s", w.Start.Format(dateLayout), w.End.Format(dateLayout))
	}
	return nil
}

// Days is the number of calendar days in the window.
func (w Window) Days() int {
	return int(model.DayKey(w.End).Sub(model.DayKey(w.Start)).Hours()/24) + 1
}

// EnvironmentSource yields the indicator snapshot for a date.
// *data.SnapshotIndex satisfies it.
type EnvironmentSource interface {
	For(date time.Time) model.Environment
}

type Engine struct {
	log     zerolog.Logger
	metrics *metrics.Recorder
}

func New(log zerolog.Logger, rec *metrics.Recorder) *Engine {
	return &Engine{
		log:     log.With().Str("component", "backtest").Logger(),
		metrics: rec,
	}
}

// Run evaluates strat once per calendar day of w.
func (e *Engine) Run(ctx context.Context, w Window, env EnvironmentSource, strat strategy.Strategy) (*Result, error) {
	if env == nil {
		return nil, fmt.Errorf("environment source is nil")
	}
	if strat == nil {
		return nil, fmt.Errorf("strategy is nil")
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}

	ledger := make([]LedgerRow, 0, w.Days())
	observed := 0
	end := model.DayKey(w.End)

	for idx, date := 0, model.DayKey(w.Start); !date.After(end); idx, date = idx+1, date.AddDate(0, 0, 1) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		snapshot := env.For(date)
		if len(snapshot) > 0 {
			observed++
		}
		decisions, err := strat.Allocate(strategy.Context{
			Index:       idx,
			Date:        date,
			Environment: snapshot,
		})
		if err != nil {
			e.metrics.RecordAllocationError(allocation.ErrorKind(err))
			return nil, fmt.Errorf("day %s allocate: %w", date.Format(dateLayout), err)
		}
		e.metrics.RecordAllocation(strat.Name())

		ledger = append(ledger, LedgerRow{
			Index:       idx,
			Date:        date,
			Environment: snapshot,
			Allocations: decisions,
		})
	}

	e.log.Info().
		Str("strategy", strat.Name()).
		Str("start", w.Start.Format(dateLayout)).
		Str("end", w.End.Format(dateLayout)).
		Int("days", len(ledger)).
		Int("days_with_data", observed).
		Msg("backtest complete")

	return &Result{
		Strategy:     strat.Name(),
		Window:       w,
		Ledger:       ledger,
		DaysWithData: observed,
	}, nil
}

package analysis

import (
	"math"
	"sort"
	"time"

	"macro-parity/internal/backtest"
	"macro-parity/internal/model"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// AssetStats summarizes one asset's daily weight over a backtest.
type AssetStats struct {
	Asset string `json:"asset"`
	Count int    `json:"count"`

	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	P05    float64 `json:"p05"`
	P95    float64 `json:"p95"`

	// Spread is P95 - P05: how far macro tilts moved the asset.
	Spread float64 `json:"spread"`
}

// Summary is a ledger-level rollup.
type Summary struct {
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	Days         int       `json:"days"`
	DaysWithData int       `json:"days_with_data"`

	Assets []AssetStats `json:"assets"`

	// Turnover is the one-way turnover summed over consecutive days,
	// 0.5 * sum |w_t - w_{t-1}| per day.
	Turnover         float64 `json:"turnover"`
	MaxDailyTurnover float64 `json:"max_daily_turnover"`
}

func Summarize(ledger []backtest.LedgerRow) Summary {
	s := Summary{}
	if len(ledger) == 0 {
		return s
	}
	s.Start = ledger[0].Date
	s.End = ledger[len(ledger)-1].Date
	s.Days = len(ledger)
	for _, r := range ledger {
		if len(r.Environment) > 0 {
			s.DaysWithData++
		}
	}

	assets := backtest.Assets(ledger)
	s.Assets = make([]AssetStats, 0, len(assets))
	for _, a := range assets {
		s.Assets = append(s.Assets, computeAssetStats(a, ledger))
	}

	for i := 1; i < len(ledger); i++ {
		t := DailyTurnover(ledger[i-1].Allocations, ledger[i].Allocations)
		s.Turnover += t
		if t > s.MaxDailyTurnover {
			s.MaxDailyTurnover = t
		}
	}
	return s
}

func computeAssetStats(asset string, ledger []backtest.LedgerRow) AssetStats {
	st := AssetStats{Asset: asset}
	vals := make([]float64, 0, len(ledger))
	for _, r := range ledger {
		if v, ok := model.AllocationOf(r.Allocations, asset); ok {
			vals = append(vals, v)
		}
	}
	st.Count = len(vals)
	if st.Count == 0 {
		return st
	}

	sort.Float64s(vals)
	st.Min = vals[0]
	st.Max = vals[len(vals)-1]
	st.Mean = floats.Sum(vals) / float64(len(vals))
	if len(vals) == 1 {
		st.P05, st.P95 = vals[0], vals[0]
		return st
	}
	st.StdDev = stat.StdDev(vals, nil)
	st.P05 = stat.Quantile(0.05, stat.LinInterp, vals, nil)
	st.P95 = stat.Quantile(0.95, stat.LinInterp, vals, nil)
	st.Spread = st.P95 - st.P05
	return st
}

// DailyTurnover is half the L1 distance between two allocations, matched by
// asset name. Assets missing on one side count as weight 0.
func DailyTurnover(prev, next []model.InvestmentDecision) float64 {
	diff := 0.0
	seen := make(map[string]bool, len(next))
	for _, d := range next {
		seen[d.Asset] = true
		p, _ := model.AllocationOf(prev, d.Asset)
		diff += math.Abs(d.Allocation - p)
	}
	for _, d := range prev {
		if !seen[d.Asset] {
			diff += math.Abs(d.Allocation)
		}
	}
	return diff / 2
}

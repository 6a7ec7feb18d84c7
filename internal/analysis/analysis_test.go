package analysis

import (
	"testing"
	"time"

	"macro-parity/internal/backtest"
	"macro-parity/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(i int, env model.Environment, eq, bonds float64) backtest.LedgerRow {
	return backtest.LedgerRow{
		Index:       i,
		Date:        time.Date(2021, 1, 1+i, 0, 0, 0, 0, time.UTC),
		Environment: env,
		Allocations: []model.InvestmentDecision{
			{Asset: "US Equities", Allocation: eq},
			{Asset: "US Bonds", Allocation: bonds},
		},
	}
}

func TestSummarize(t *testing.T) {
	ledger := []backtest.LedgerRow{
		row(0, model.Environment{"GDP Growth": 3}, 0.4, 0.6),
		row(1, model.Environment{}, 0.5, 0.5),
		row(2, nil, 0.6, 0.4),
	}

	s := Summarize(ledger)
	assert.Equal(t, 3, s.Days)
	assert.Equal(t, 1, s.DaysWithData)
	assert.Equal(t, ledger[0].Date, s.Start)
	assert.Equal(t, ledger[2].Date, s.End)

	require.Len(t, s.Assets, 2)
	eq := s.Assets[0]
	assert.Equal(t, "US Equities", eq.Asset)
	assert.Equal(t, 3, eq.Count)
	assert.InDelta(t, 0.4, eq.Min, 1e-12)
	assert.InDelta(t, 0.6, eq.Max, 1e-12)
	assert.InDelta(t, 0.5, eq.Mean, 1e-12)
	assert.InDelta(t, 0.1, eq.StdDev, 1e-12)
	assert.True(t, eq.P05 >= eq.Min && eq.P95 <= eq.Max)
	assert.InDelta(t, eq.P95-eq.P05, eq.Spread, 1e-12)

	// two days, each moving 0.1 from bonds to equities
	assert.InDelta(t, 0.2, s.Turnover, 1e-12)
	assert.InDelta(t, 0.1, s.MaxDailyTurnover, 1e-12)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	assert.Zero(t, s.Days)
	assert.Empty(t, s.Assets)
}

func TestSummarize_SingleDay(t *testing.T) {
	s := Summarize([]backtest.LedgerRow{row(0, nil, 0.3, 0.7)})
	require.Len(t, s.Assets, 2)
	assert.Zero(t, s.Assets[0].StdDev)
	assert.Zero(t, s.Turnover)
	assert.InDelta(t, 0.3, s.Assets[0].P05, 1e-12)
}

func TestDailyTurnover(t *testing.T) {
	prev := []model.InvestmentDecision{{Asset: "A", Allocation: 0.5}, {Asset: "B", Allocation: 0.5}}
	next := []model.InvestmentDecision{{Asset: "A", Allocation: 0.5}, {Asset: "C", Allocation: 0.5}}
	assert.InDelta(t, 0.5, DailyTurnover(prev, next), 1e-12)
	assert.Zero(t, DailyTurnover(prev, prev))
}

func TestRankByMeanAllocation(t *testing.T) {
	s := Summary{Assets: []AssetStats{
		{Asset: "B", Mean: 0.2, Spread: 0.05},
		{Asset: "A", Mean: 0.2, Spread: 0.01},
		{Asset: "C", Mean: 0.6, Spread: 0.02},
	}}
	ranked := RankByMeanAllocation(s)
	assert.Equal(t, []string{"C", "A", "B"}, assets(ranked))
	// input untouched
	assert.Equal(t, "B", s.Assets[0].Asset)

	assert.Equal(t, []string{"B", "C", "A"}, assets(RankBySpread(s)))
}

func assets(in []AssetStats) []string {
	out := make([]string, len(in))
	for i, a := range in {
		out[i] = a.Asset
	}
	return out
}

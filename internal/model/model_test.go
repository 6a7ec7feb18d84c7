package model

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssetClass_Validate(t *testing.T) {
	valid := AssetClass{
		Name:           "US Bonds",
		ExpectedReturn: 0.03,
		Volatility:     0.05,
		Correlation:    map[string]float64{"US Equities": -0.2},
	}
	require.NoError(t, valid.Validate())

	testCases := []struct {
		name   string
		mutate func(a *AssetClass)
		isVol  bool
	}{
		{"empty name", func(a *AssetClass) { a.Name = "" }, false},
		{"zero volatility", func(a *AssetClass) { a.Volatility = 0 }, true},
		{"negative volatility", func(a *AssetClass) { a.Volatility = -0.1 }, true},
		{"NaN volatility", func(a *AssetClass) { a.Volatility = math.NaN() }, true},
		{"infinite volatility", func(a *AssetClass) { a.Volatility = math.Inf(1) }, true},
		{"subnormal volatility", func(a *AssetClass) { a.Volatility = 5e-324 }, true},
		{"correlation above 1", func(a *AssetClass) { a.Correlation = map[string]float64{"X": 1.2} }, false},
		{"NaN return", func(a *AssetClass) { a.ExpectedReturn = math.NaN() }, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a := valid
			tc.mutate(&a)
			err := a.Validate()
			require.Error(t, err)
			assert.Equal(t, tc.isVol, errors.Is(err, ErrInvalidVolatility))
		})
	}
}

func TestCategoryFromName(t *testing.T) {
	assert.Equal(t, CategoryUSEquities, CategoryFromName("US Equities"))
	assert.Equal(t, CategoryInternationalEquities, CategoryFromName("International Equities"))
	assert.Equal(t, CategoryUSBonds, CategoryFromName("US Bonds"))
	assert.Equal(t, CategoryCommodities, CategoryFromName("Commodities"))
	assert.Equal(t, CategoryOther, CategoryFromName("Real Estate"))
	// exact match only
	assert.Equal(t, CategoryOther, CategoryFromName("us equities"))
	assert.Equal(t, CategoryOther, CategoryFromName(" US Bonds"))
}

func TestDecisionHelpers(t *testing.T) {
	ds := []InvestmentDecision{{Asset: "A", Allocation: 0.25}, {Asset: "B", Allocation: 0.75}}
	assert.InDelta(t, 1.0, TotalAllocation(ds), 1e-12)

	cp := CloneDecisions(ds)
	cp[0].Allocation = 0.9
	assert.Equal(t, 0.25, ds[0].Allocation)

	v, ok := AllocationOf(ds, "B")
	assert.True(t, ok)
	assert.Equal(t, 0.75, v)
	_, ok = AllocationOf(ds, "C")
	assert.False(t, ok)

	assert.Nil(t, CloneDecisions(nil))
}

func TestEnvironment(t *testing.T) {
	env := Environment{"Inflation Rate": 3.5, "GDP Growth": 1.0}
	assert.Equal(t, 3.5, env.Value(IndicatorInflationRate, 2.0))
	assert.Equal(t, 2.0, env.Value("Unemployment Rate", 2.0))
	assert.Equal(t, []string{"GDP Growth", "Inflation Rate"}, env.Names())

	var empty Environment
	assert.Equal(t, 2.0, empty.Value(IndicatorGDPGrowth, 2.0))
}

func TestSameDay(t *testing.T) {
	a := time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)
	b := time.Date(2021, 3, 1, 23, 59, 0, 0, time.UTC)
	c := time.Date(2021, 3, 2, 0, 0, 0, 0, time.UTC)
	assert.True(t, SameDay(a, b))
	assert.False(t, SameDay(a, c))
	assert.Equal(t, DayKey(a), DayKey(b))
}

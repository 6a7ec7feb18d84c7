package allocation

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"testing"

	"macro-parity/internal/catalog"
	"macro-parity/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-9

func TestComputeBaseline_DefaultCatalog(t *testing.T) {
	base, err := ComputeBaseline(catalog.Default())
	require.NoError(t, err)
	require.Len(t, base, 5)

	inv := []float64{1 / 0.15, 1 / 0.05, 1 / 0.18, 1 / 0.20, 1 / 0.12}
	sum := 0.0
	for _, v := range inv {
		sum += v
	}
	names := catalog.Names(catalog.Default())
	for i, d := range base {
		assert.Equal(t, names[i], d.Asset)
		assert.InDelta(t, inv[i]/sum, d.Allocation, tol, d.Asset)
	}
	assert.InDelta(t, 1.0, model.TotalAllocation(base), tol)

	// US Bonds largest, Commodities smallest
	assert.InDelta(t, 20/45.55555555555556, base[1].Allocation, 1e-9)
	for i, d := range base {
		if i != 1 {
			assert.Greater(t, base[1].Allocation, d.Allocation)
		}
		if i != 3 {
			assert.Less(t, base[3].Allocation, d.Allocation)
		}
	}
}

func TestComputeBaseline_SumsToOneAndIsInverse(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 200; trial++ {
		n := 1 + rng.Intn(10)
		classes := make([]model.AssetClass, n)
		for i := range classes {
			classes[i] = model.AssetClass{
				Name:       string(rune('A' + i)),
				Volatility: 0.001 + rng.Float64(),
			}
		}
		base, err := ComputeBaseline(classes)
		require.NoError(t, err)
		require.Len(t, base, n)
		assert.InDelta(t, 1.0, model.TotalAllocation(base), tol)

		for i := range classes {
			for j := range classes {
				if classes[i].Volatility < classes[j].Volatility {
					assert.Greater(t, base[i].Allocation, base[j].Allocation)
				}
			}
		}
	}
}

func TestComputeBaseline_Rejects(t *testing.T) {
	_, err := ComputeBaseline(nil)
	assert.ErrorIs(t, err, ErrEmptyCatalog)

	for _, vol := range []float64{0, -0.1, math.NaN(), math.Inf(1)} {
		classes := catalog.Default()
		classes[2].Volatility = vol
		_, err := ComputeBaseline(classes)
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrInvalidVolatility)

		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "International Equities", verr.Asset)
	}
}

func TestComputeBaseline_TinyVolatilities(t *testing.T) {
	classes := []model.AssetClass{{Name: "A", Volatility: 5e-324}, {Name: "B", Volatility: 1}}
	_, err := ComputeBaseline(classes)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "A", verr.Asset)
	assert.ErrorIs(t, err, model.ErrInvalidVolatility)
	assert.Equal(t, "validation", ErrorKind(err))

	// each inverse is finite but their sum overflows
	classes = []model.AssetClass{{Name: "A", Volatility: 1e-308}, {Name: "B", Volatility: 1e-308}}
	weights, err := ComputeBaseline(classes)
	assert.Nil(t, weights)
	assert.ErrorIs(t, err, model.ErrInvalidVolatility)
	assert.Equal(t, "validation", ErrorKind(err))

	classes = []model.AssetClass{{Name: "A", Volatility: 1e-300}, {Name: "B", Volatility: 1}}
	weights, err = ComputeBaseline(classes)
	require.NoError(t, err)
	for _, w := range weights {
		assert.False(t, math.IsNaN(w.Allocation))
	}
	assert.InDelta(t, 1.0, weights[0].Allocation, 1e-12)
}

func TestComputeBaseline_DoesNotMutateInput(t *testing.T) {
	classes := catalog.Default()
	_, err := ComputeBaseline(classes)
	require.NoError(t, err)
	assert.Equal(t, catalog.Default(), classes)
}

func TestMultiplier(t *testing.T) {
	s := Signals{GDPGrowth: 3.0, InflationRate: 2.0}
	assert.InDelta(t, 1.1, Multiplier(model.CategoryUSEquities, s), tol)
	assert.InDelta(t, 1.1, Multiplier(model.CategoryInternationalEquities, s), tol)
	assert.InDelta(t, 1.0, Multiplier(model.CategoryUSBonds, s), tol)
	assert.InDelta(t, 1.0, Multiplier(model.CategoryCommodities, s), tol)
	assert.Equal(t, 1.0, Multiplier(model.CategoryOther, s))

	s = Signals{GDPGrowth: 2.0, InflationRate: 5.0}
	assert.InDelta(t, 0.7, Multiplier(model.CategoryUSBonds, s), tol)
	assert.InDelta(t, 1.3, Multiplier(model.CategoryCommodities, s), tol)
	assert.InDelta(t, 1.0, Multiplier(model.CategoryUSEquities, s), tol)
}

func TestSignalsFrom_Defaults(t *testing.T) {
	assert.Equal(t, Signals{GDPGrowth: 2, InflationRate: 2}, SignalsFrom(nil))
	assert.Equal(t, Signals{GDPGrowth: 2, InflationRate: 4}, SignalsFrom(model.Environment{"Inflation Rate": 4}))
	// zero is a real observation, not a missing value
	assert.Equal(t, Signals{GDPGrowth: 0, InflationRate: 2}, SignalsFrom(model.Environment{"GDP Growth": 0}))
}

func TestAdjust_GrowthScenario(t *testing.T) {
	base, err := ComputeBaseline(catalog.Default())
	require.NoError(t, err)

	got, err := Adjust(base, model.Environment{"GDP Growth": 3.0, "Inflation Rate": 2.0})
	require.NoError(t, err)
	require.Len(t, got, len(base))

	raw := []float64{
		base[0].Allocation * 1.1,
		base[1].Allocation,
		base[2].Allocation * 1.1,
		base[3].Allocation,
		base[4].Allocation,
	}
	total := 0.0
	for _, v := range raw {
		total += v
	}
	for i, d := range got {
		assert.Equal(t, base[i].Asset, d.Asset)
		assert.InDelta(t, raw[i]/total, d.Allocation, tol, d.Asset)
	}
	assert.InDelta(t, 1.0, model.TotalAllocation(got), tol)
}

func TestAdjust_NeutralIsRenormalization(t *testing.T) {
	base := []model.InvestmentDecision{
		{Asset: "US Equities", Allocation: 0.2},
		{Asset: "US Bonds", Allocation: 0.6},
		{Asset: "Commodities", Allocation: 0.1},
		{Asset: "Real Estate", Allocation: 0.3},
	}
	got, err := Adjust(base, model.Environment{"GDP Growth": 2.0, "Inflation Rate": 2.0})
	require.NoError(t, err)

	total := model.TotalAllocation(base)
	for i, d := range got {
		assert.InDelta(t, base[i].Allocation/total, d.Allocation, tol)
	}
}

func TestAdjust_EmptyEnvironmentEqualsNeutral(t *testing.T) {
	base, err := ComputeBaseline(catalog.Default())
	require.NoError(t, err)

	fromEmpty, err := Adjust(base, model.Environment{})
	require.NoError(t, err)
	fromNil, err := Adjust(base, nil)
	require.NoError(t, err)
	fromNeutral, err := Adjust(base, model.Environment{"GDP Growth": 2.0, "Inflation Rate": 2.0})
	require.NoError(t, err)

	assert.Equal(t, fromNeutral, fromEmpty)
	assert.Equal(t, fromNeutral, fromNil)
}

func TestAdjust_GrowthRaisesEquitiesRelativeToOthers(t *testing.T) {
	base, err := ComputeBaseline(catalog.Default())
	require.NoError(t, err)

	prev, err := Adjust(base, model.Environment{"GDP Growth": 2.0})
	require.NoError(t, err)
	for _, g := range []float64{2.5, 3.0, 4.0, 6.0} {
		cur, err := Adjust(base, model.Environment{"GDP Growth": g})
		require.NoError(t, err)

		ratio := func(ds []model.InvestmentDecision, i int) float64 {
			return ds[i].Allocation / ds[4].Allocation // vs Real Estate
		}
		assert.Greater(t, ratio(cur, 0), ratio(prev, 0))
		assert.Greater(t, ratio(cur, 2), ratio(prev, 2))
		assert.InDelta(t, ratio(prev, 1), ratio(cur, 1), tol) // bonds untouched by GDP
		prev = cur
	}
}

func TestAdjust_SumsToOne(t *testing.T) {
	base, err := ComputeBaseline(catalog.Default())
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(11))
	for trial := 0; trial < 200; trial++ {
		env := model.Environment{
			"GDP Growth":     -3 + rng.Float64()*10,
			"Inflation Rate": -1 + rng.Float64()*10,
		}
		got, err := Adjust(base, env)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, model.TotalAllocation(got), tol)
	}
}

func TestAdjust_DoesNotMutateBase(t *testing.T) {
	base, err := ComputeBaseline(catalog.Default())
	require.NoError(t, err)
	snapshot := model.CloneDecisions(base)

	_, err = Adjust(base, model.Environment{"GDP Growth": 5, "Inflation Rate": 0})
	require.NoError(t, err)
	assert.Equal(t, snapshot, base)
}

func TestAdjust_UnknownAssetsUntilted(t *testing.T) {
	base := []model.InvestmentDecision{
		{Asset: "Gold", Allocation: 0.5},
		{Asset: "Cash", Allocation: 0.5},
	}
	got, err := Adjust(base, model.Environment{"GDP Growth": 9, "Inflation Rate": -4})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, got[0].Allocation, tol)
	assert.InDelta(t, 0.5, got[1].Allocation, tol)
}

func TestAdjust_Degenerate(t *testing.T) {
	// GDP of -8 takes the equity multiplier to exactly zero.
	base := []model.InvestmentDecision{{Asset: "US Equities", Allocation: 1}}
	_, err := Adjust(base, model.Environment{"GDP Growth": -8})
	assert.ErrorIs(t, err, ErrDegenerateAllocation)

	_, err = Adjust(nil, nil)
	assert.ErrorIs(t, err, ErrEmptyCatalog)
}

func TestAllocate(t *testing.T) {
	got, err := Allocate(catalog.Default(), model.Environment{"Inflation Rate": 4})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, model.TotalAllocation(got), tol)

	base, _ := ComputeBaseline(catalog.Default())
	// higher inflation: bonds down, commodities up relative to baseline
	assert.Less(t, got[1].Allocation, base[1].Allocation)
	assert.Greater(t, got[3].Allocation, base[3].Allocation)

	_, err = Allocate(nil, nil)
	assert.ErrorIs(t, err, ErrEmptyCatalog)
}

func TestErrorKind(t *testing.T) {
	_, err := ComputeBaseline([]model.AssetClass{{Name: "X", Volatility: -1}})
	assert.Equal(t, "validation", ErrorKind(err))
	assert.Equal(t, "validation", ErrorKind(ErrEmptyCatalog))
	assert.Equal(t, "degenerate", ErrorKind(fmt.Errorf("day 1: %w", ErrDegenerateAllocation)))
	assert.Equal(t, "other", ErrorKind(errors.New("boom")))
}

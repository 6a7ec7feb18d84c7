package strategy

import (
	"testing"
	"time"

	"macro-parity/internal/allocation"
	"macro-parity/internal/catalog"
	"macro-parity/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	s, err := Build("", catalog.Default())
	require.NoError(t, err)
	assert.Equal(t, NameMacroTilt, s.Name())

	s, err = Build(NameRiskParity, catalog.Default())
	require.NoError(t, err)
	assert.Equal(t, NameRiskParity, s.Name())

	_, err = Build("momentum", catalog.Default())
	assert.ErrorContains(t, err, "unsupported strategy")

	bad := catalog.Default()
	bad[0].Volatility = 0
	_, err = Build(NameMacroTilt, bad)
	assert.ErrorIs(t, err, model.ErrInvalidVolatility)
}

func TestRiskParity_IgnoresEnvironment(t *testing.T) {
	s, err := NewRiskParity(catalog.Default())
	require.NoError(t, err)

	a, err := s.Allocate(Context{Environment: model.Environment{"GDP Growth": 6}})
	require.NoError(t, err)
	b, err := s.Allocate(Context{})
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, s.Baseline(), a)

	// callers cannot corrupt the cached baseline
	a[0].Allocation = 42
	c, _ := s.Allocate(Context{})
	assert.NotEqual(t, 42.0, c[0].Allocation)
}

func TestMacroTilt_MatchesAllocate(t *testing.T) {
	s, err := NewMacroTilt(catalog.Default())
	require.NoError(t, err)

	envs := []model.Environment{
		{},
		{"GDP Growth": 3.0, "Inflation Rate": 2.0},
		{"GDP Growth": 0.5, "Inflation Rate": 6.5, "Unemployment Rate": 4.0},
	}
	for i, env := range envs {
		got, err := s.Allocate(Context{Index: i, Date: time.Now(), Environment: env})
		require.NoError(t, err)
		want, err := allocation.Allocate(catalog.Default(), env)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	base := s.Baseline()
	again, _ := s.Allocate(Context{Environment: model.Environment{"GDP Growth": 9}})
	assert.NotEqual(t, base, again)
	assert.Equal(t, base, s.Baseline())
}

func TestMacroTilt_Degenerate(t *testing.T) {
	s, err := NewMacroTilt([]model.AssetClass{{Name: "US Equities", Volatility: 0.15}})
	require.NoError(t, err)
	_, err = s.Allocate(Context{Environment: model.Environment{"GDP Growth": -8}})
	assert.ErrorIs(t, err, allocation.ErrDegenerateAllocation)
}

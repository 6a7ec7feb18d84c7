package main

import (
	"testing"

	"macro-parity/internal/data"
	"macro-parity/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestMergeIndicators(t *testing.T) {
	defs := data.DefaultIndicators()[:3]
	fetched := []model.EconomicIndicator{{Name: "Inflation Rate", Weight: 0.2}}
	seed := []model.EconomicIndicator{
		{Name: "GDP Growth", Weight: 0.2, Data: []model.Observation{{Value: 1}}},
		{Name: "Inflation Rate", Weight: 0.2, Data: []model.Observation{{Value: 9}}},
	}

	got := mergeIndicators(defs, fetched, seed)
	assert.Len(t, got, 2)
	assert.Equal(t, "GDP Growth", got[0].Name)
	assert.Len(t, got[0].Data, 1)
	assert.Equal(t, "Inflation Rate", got[1].Name)
	assert.Empty(t, got[1].Data)
}

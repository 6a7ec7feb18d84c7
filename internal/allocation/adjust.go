package allocation

import (
	"math"

	"macro-parity/internal/model"
)

// Adjust tilts base by the macro signals in env and renormalizes the result to sum to 1.
//
// All multipliers are applied to the unadjusted weights first; normalization
// is a separate second pass. base is not modified.
// A post-tilt total of zero (or a non-finite one) returns ErrDegenerateAllocation.
func Adjust(base []model.InvestmentDecision, env model.Environment) ([]model.InvestmentDecision, error) {
	if len(base) == 0 {
		return nil, ErrEmptyCatalog
	}

	signals := SignalsFrom(env)
	adjusted := model.CloneDecisions(base)
	for i := range adjusted {
		adjusted[i].Allocation *= Multiplier(model.CategoryFromName(adjusted[i].Asset), signals)
	}

	total := model.TotalAllocation(adjusted)
	if total == 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		return nil, ErrDegenerateAllocation
	}
	for i := range adjusted {
		adjusted[i].Allocation /= total
	}
	return adjusted, nil
}

// Allocate runs ComputeBaseline followed by Adjust.
func Allocate(classes []model.AssetClass, env model.Environment) ([]model.InvestmentDecision, error) {
	base, err := ComputeBaseline(classes)
	if err != nil {
		return nil, err
	}
	return Adjust(base, env)
}

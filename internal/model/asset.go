package model

import (
	"errors"
	"fmt"
	"math"
)

// AssetClass is one row of the asset catalog.
// Units:
// - ExpectedReturn: annualized, as a fraction (0.07 = 7%)
// - Volatility: annualized standard deviation, as a fraction
// - Correlation: other asset name -> pairwise coefficient in [-1, 1]
//
// Correlation does not need to be symmetric or complete. Nothing in the
// allocation path reads it yet.
type AssetClass struct {
	Name           string             `json:"name" yaml:"name"`
	ExpectedReturn float64            `json:"expected_return" yaml:"expected_return"`
	Volatility     float64            `json:"volatility" yaml:"volatility"`
	Correlation    map[string]float64 `json:"correlation,omitempty" yaml:"correlation,omitempty"`
}

var ErrInvalidVolatility = errors.New("volatility must be finite and > 0")

func (a AssetClass) Validate() error {
	if a.Name == "" {
		return errors.New("asset class name is required")
	}
	if math.IsNaN(a.Volatility) || math.IsInf(a.Volatility, 0) || a.Volatility <= 0 || math.IsInf(1/a.Volatility, 0) {
		return fmt.Errorf("%s: %w (got %v)", a.Name, ErrInvalidVolatility, a.Volatility)
	}
	if math.IsNaN(a.ExpectedReturn) || math.IsInf(a.ExpectedReturn, 0) {
		return fmt.Errorf("%s: expected return must be finite", a.Name)
	}
	for other, rho := range a.Correlation {
		if math.IsNaN(rho) || rho < -1 || rho > 1 {
			return fmt.Errorf("%s: correlation with %s must be in [-1, 1] (got %v)", a.Name, other, rho)
		}
	}
	return nil
}

// Category returns the tilt category for the asset, derived from its name.
func (a AssetClass) Category() Category {
	return CategoryFromName(a.Name)
}

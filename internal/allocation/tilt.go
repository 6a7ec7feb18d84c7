package allocation

import "macro-parity/internal/model"

const (
	// NeutralLevel is the signal value (percent) at which no tilt applies.
	// It is also the value assumed for a signal missing from the environment.
	NeutralLevel = 2.0

	// Sensitivity is the multiplier change per percentage point away from NeutralLevel.
	Sensitivity = 0.1
)

// Signals are the macro inputs read by the tilt.
type Signals struct {
	GDPGrowth     float64 `json:"gdp_growth"`
	InflationRate float64 `json:"inflation_rate"`
}

// SignalsFrom reads the tilt signals, defaulting each missing one to NeutralLevel.
func SignalsFrom(env model.Environment) Signals {
	return Signals{
		GDPGrowth:     env.Value(model.IndicatorGDPGrowth, NeutralLevel),
		InflationRate: env.Value(model.IndicatorInflationRate, NeutralLevel),
	}
}

type tiltRule func(s Signals) float64

// tiltRules is the closed set of tilted categories. Anything absent
// (CategoryOther included) keeps a multiplier of 1.
var tiltRules = map[model.Category]tiltRule{
	model.CategoryUSEquities:            growthTilt,
	model.CategoryInternationalEquities: growthTilt,
	model.CategoryUSBonds: func(s Signals) float64 {
		return 1 - (s.InflationRate-NeutralLevel)*Sensitivity
	},
	model.CategoryCommodities: func(s Signals) float64 {
		return 1 + (s.InflationRate-NeutralLevel)*Sensitivity
	},
}

func growthTilt(s Signals) float64 {
	return 1 + (s.GDPGrowth-NeutralLevel)*Sensitivity
}

// Multiplier is the pre-normalization factor applied to an allocation in category c.
func Multiplier(c model.Category, s Signals) float64 {
	if rule, ok := tiltRules[c]; ok {
		return rule(s)
	}
	return 1
}

package strategy

import (
	"macro-parity/internal/allocation"
	"macro-parity/internal/model"
)

// MacroTiltStrategy tilts the risk-parity baseline by each date's GDP and
// inflation readings. The catalog never changes during a run, so the
// baseline is computed once here and only the tilt runs per date.
type MacroTiltStrategy struct {
	baseline []model.InvestmentDecision
}

func NewMacroTilt(classes []model.AssetClass) (*MacroTiltStrategy, error) {
	base, err := allocation.ComputeBaseline(classes)
	if err != nil {
		return nil, err
	}
	return &MacroTiltStrategy{baseline: base}, nil
}

func (s *MacroTiltStrategy) Name() string { return NameMacroTilt }

func (s *MacroTiltStrategy) Allocate(ctx Context) ([]model.InvestmentDecision, error) {
	return allocation.Adjust(s.baseline, ctx.Environment)
}

func (s *MacroTiltStrategy) Baseline() []model.InvestmentDecision {
	return model.CloneDecisions(s.baseline)
}

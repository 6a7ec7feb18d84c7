package strategy

import (
	"macro-parity/internal/allocation"
	"macro-parity/internal/model"
)

// RiskParityStrategy holds the inverse-volatility weights constant and
// ignores the environment.
type RiskParityStrategy struct {
	baseline []model.InvestmentDecision
}

func NewRiskParity(classes []model.AssetClass) (*RiskParityStrategy, error) {
	base, err := allocation.ComputeBaseline(classes)
	if err != nil {
		return nil, err
	}
	return &RiskParityStrategy{baseline: base}, nil
}

func (s *RiskParityStrategy) Name() string { return NameRiskParity }

func (s *RiskParityStrategy) Allocate(_ Context) ([]model.InvestmentDecision, error) {
	return model.CloneDecisions(s.baseline), nil
}

func (s *RiskParityStrategy) Baseline() []model.InvestmentDecision {
	return model.CloneDecisions(s.baseline)
}

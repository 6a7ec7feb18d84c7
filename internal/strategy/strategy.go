package strategy

import (
	"fmt"
	"time"

	"macro-parity/internal/model"
)

// Context is what a strategy sees for one evaluation date.
type Context struct {
	Index       int
	Date        time.Time
	Environment model.Environment
}

type Strategy interface {
	Name() string
	Allocate(ctx Context) ([]model.InvestmentDecision, error)
}

const (
	NameRiskParity = "risk_parity"
	NameMacroTilt  = "macro_tilt"
)

// Names lists the strategies Build understands.
func Names() []string {
	return []string{NameRiskParity, NameMacroTilt}
}

// Build resolves a strategy by name over the given catalog. An empty name is macro_tilt.
func Build(name string, classes []model.AssetClass) (Strategy, error) {
	switch name {
	case NameMacroTilt, "":
		return NewMacroTilt(classes)
	case NameRiskParity:
		return NewRiskParity(classes)
	default:
		return nil, fmt.Errorf("unsupported strategy: %q", name)
	}
}

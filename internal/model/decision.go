package model

// InvestmentDecision is the target weight for one asset class.
// Allocation is a fraction; after normalization a full set sums to 1.
// It is not clamped to [0, 1].
type InvestmentDecision struct {
	Asset      string  `json:"asset"`
	Allocation float64 `json:"allocation"`
}

func TotalAllocation(decisions []InvestmentDecision) float64 {
	total := 0.0
	for _, d := range decisions {
		total += d.Allocation
	}
	return total
}

func CloneDecisions(decisions []InvestmentDecision) []InvestmentDecision {
	if decisions == nil {
		return nil
	}
	out := make([]InvestmentDecision, len(decisions))
	copy(out, decisions)
	return out
}

// AllocationOf returns the allocation for asset and whether it was present.
func AllocationOf(decisions []InvestmentDecision, asset string) (float64, bool) {
	for _, d := range decisions {
		if d.Asset == asset {
			return d.Allocation, true
		}
	}
	return 0, false
}

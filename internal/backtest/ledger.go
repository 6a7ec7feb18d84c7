package backtest

import (
	"sort"
	"time"

	"macro-parity/internal/model"
)

// LedgerRow is one evaluated day.
type LedgerRow struct {
	Index       int
	Date        time.Time
	Environment model.Environment
	Allocations []model.InvestmentDecision
}

type Result struct {
	Strategy     string
	Window       Window
	Ledger       []LedgerRow
	DaysWithData int
}

// Final returns the last row's allocations, or nil for an empty ledger.
func (r *Result) Final() []model.InvestmentDecision {
	if r == nil || len(r.Ledger) == 0 {
		return nil
	}
	return r.Ledger[len(r.Ledger)-1].Allocations
}

// Assets returns asset names in the order of the first row.
func Assets(ledger []LedgerRow) []string {
	if len(ledger) == 0 {
		return nil
	}
	names := make([]string, len(ledger[0].Allocations))
	for i, d := range ledger[0].Allocations {
		names[i] = d.Asset
	}
	return names
}

// IndicatorNames returns every indicator name seen in the ledger, sorted.
func IndicatorNames(ledger []LedgerRow) []string {
	seen := map[string]bool{}
	for _, r := range ledger {
		for name := range r.Environment {
			seen[name] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

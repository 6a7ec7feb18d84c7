package models

import (
	"macro-parity/internal/allocation"
	"macro-parity/internal/analysis"
	"macro-parity/internal/model"
)

// AllocationResponse represents the result of a one-off allocation
type AllocationResponse struct {
	Strategy    string                     `json:"strategy"`
	Environment map[string]float64         `json:"environment"`
	Signals     allocation.Signals         `json:"signals"`
	Baseline    []model.InvestmentDecision `json:"baseline"`
	Allocations []model.InvestmentDecision `json:"allocations"`
}

// BacktestResponse represents the response from a backtest run
type BacktestResponse struct {
	Status   string                     `json:"status"`
	Strategy string                     `json:"strategy"`
	Summary  BacktestSummary            `json:"summary"`
	Final    []model.InvestmentDecision `json:"final_allocation"`
	Rankings []Ranking                  `json:"rankings"`
	Ledger   []LedgerRow                `json:"ledger,omitempty"`
}

// BacktestSummary contains aggregated backtest results
type BacktestSummary struct {
	BacktestWindow   TimeWindow            `json:"backtest_window"`
	TotalDays        int                   `json:"total_days"`
	DaysWithData     int                   `json:"days_with_data"`
	Turnover         float64               `json:"turnover"`
	MaxDailyTurnover float64               `json:"max_daily_turnover"`
	Assets           []analysis.AssetStats `json:"assets"`
}

// TimeWindow represents an inclusive date range
type TimeWindow struct {
	Start string `json:"start"` // YYYY-MM-DD
	End   string `json:"end"`
}

// Ranking represents one asset ranked by mean allocation
type Ranking struct {
	Rank   int     `json:"rank"`
	Asset  string  `json:"asset"`
	Mean   float64 `json:"mean"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Spread float64 `json:"spread"`
}

// LedgerRow represents one day in the backtest ledger
type LedgerRow struct {
	Index       int                        `json:"index"`
	Date        string                     `json:"date"`
	Environment map[string]float64         `json:"environment"`
	Allocations []model.InvestmentDecision `json:"allocations"`
}

// AssetClassInfo represents an asset class as exchanged over the API
type AssetClassInfo struct {
	Name           string             `json:"name"`
	ExpectedReturn float64            `json:"expected_return"`
	Volatility     float64            `json:"volatility"`
	Correlation    map[string]float64 `json:"correlation,omitempty"`
	Category       string             `json:"category,omitempty"` // output only
}

// IndicatorInfo describes a fetched economic indicator
type IndicatorInfo struct {
	Function string  `json:"function"`
	Name     string  `json:"name"`
	Weight   float64 `json:"weight"`
	Interval string  `json:"interval"`
}

// StrategyInfo represents information about a strategy
type StrategyInfo struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  []ParameterInfo `json:"parameters"`
}

// ParameterInfo describes a strategy input
type ParameterInfo struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"` // "float", "int", "string"
	Description string      `json:"description"`
	Default     interface{} `json:"default,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

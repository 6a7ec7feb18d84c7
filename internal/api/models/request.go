package models

// AllocationRequest represents the request body for a one-off allocation
type AllocationRequest struct {
	Environment map[string]float64 `json:"environment"`
	Catalog     []AssetClassInfo   `json:"catalog,omitempty"`  // default: server catalog
	Strategy    string             `json:"strategy,omitempty"` // default: "macro_tilt"
}

// BacktestRequest represents the request body for running a backtest
type BacktestRequest struct {
	StartDate string           `json:"start_date" binding:"required"` // YYYY-MM-DD
	EndDate   string           `json:"end_date" binding:"required"`   // YYYY-MM-DD
	Strategy  string           `json:"strategy,omitempty"`
	Catalog   []AssetClassInfo `json:"catalog,omitempty"`

	// Indicators supplies the series inline. When empty the server fetches
	// them from Alpha Vantage with APIKey (or its own key).
	Indicators []IndicatorSeries `json:"indicators,omitempty"`
	APIKey     string            `json:"api_key,omitempty"`

	IncludeLedger bool `json:"include_ledger,omitempty"` // default: false
}

// IndicatorSeries is one inline indicator time series
type IndicatorSeries struct {
	Name   string            `json:"name" binding:"required"`
	Weight float64           `json:"weight,omitempty"`
	Data   []ObservationInfo `json:"data"`
}

// ObservationInfo is one dated value
type ObservationInfo struct {
	Date  string  `json:"date"` // YYYY-MM-DD
	Value float64 `json:"value"`
}

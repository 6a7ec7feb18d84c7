package model

import (
	"sort"
	"time"
)

// Indicator names read by the macro tilt.
const (
	IndicatorGDPGrowth     = "GDP Growth"
	IndicatorInflationRate = "Inflation Rate"
)

// Observation is one (date, value) point of an indicator series.
// Only the calendar day of Date is significant.
type Observation struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// EconomicIndicator is a named time series. Data is kept in provider order;
// dates are not guaranteed sorted or unique.
// Weight is carried for composite scoring and is not read by the allocator.
type EconomicIndicator struct {
	Name   string        `json:"name"`
	Data   []Observation `json:"data"`
	Weight float64       `json:"weight"`
}

// Environment is the indicator snapshot for a single date: name -> value.
// Indicators without an observation on that date are absent, never zero-filled.
type Environment map[string]float64

// Value returns the named value, or def when it is absent.
func (e Environment) Value(name string, def float64) float64 {
	if v, ok := e[name]; ok {
		return v
	}
	return def
}

// Names returns the indicator names in sorted order.
func (e Environment) Names() []string {
	names := make([]string, 0, len(e))
	for k := range e {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// SameDay reports whether a and b fall on the same calendar day.
// Each time is read in its own location.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DayKey truncates t to a comparable calendar-day key.
func DayKey(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AlphaVantageResponse matches the JSON shape of an economic-indicator query.
//
// Example:
//
//	{
//	  "name": "Real Gross Domestic Product",
//	  "interval": "quarterly",
//	  "unit": "billions of dollars",
//	  "data": [ {"date": "2023-10-01", "value": "22679.255"}, ... ]
//	}
//
// Error and throttle responses come back with HTTP 200 and one of the
// message fields set instead of data.
type AlphaVantageResponse struct {
	Name     string                 `json:"name"`
	Interval string                 `json:"interval"`
	Unit     string                 `json:"unit"`
	Data     []AlphaVantageDataPoint `json:"data"`

	ErrorMessage string `json:"Error Message,omitempty"`
	Note         string `json:"Note,omitempty"`
	Information  string `json:"Information,omitempty"`
}

// AlphaVantageDataPoint is one raw point; the provider sends values as strings
// and uses "." for missing values.
type AlphaVantageDataPoint struct {
	Date  string `json:"date"`
	Value string `json:"value"`
}

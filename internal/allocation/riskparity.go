package allocation

import (
	"errors"
	"fmt"
	"math"

	"macro-parity/internal/model"

	"gonum.org/v1/gonum/floats"
)

var (
	ErrEmptyCatalog         = errors.New("no asset classes")
	ErrDegenerateAllocation = errors.New("total allocation is zero or not finite")
)

// ValidationError reports the asset class that made a computation impossible.
type ValidationError struct {
	Asset string
	Value float64
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("asset %q: %v (got %v)", e.Asset, e.Err, e.Value)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// ComputeBaseline returns inverse-volatility ("risk parity") weights:
//
//	w(a) = (1/vol(a)) / sum_b (1/vol(b))
//
// Output order and names follow the input. Non-positive or non-finite
// volatilities are rejected instead of producing NaN weights.
func ComputeBaseline(classes []model.AssetClass) ([]model.InvestmentDecision, error) {
	if len(classes) == 0 {
		return nil, ErrEmptyCatalog
	}

	inv := make([]float64, len(classes))
	for i, ac := range classes {
		v := ac.Volatility
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return nil, &ValidationError{Asset: ac.Name, Value: v, Err: model.ErrInvalidVolatility}
		}
		inv[i] = 1.0 / v
		if math.IsInf(inv[i], 0) {
			return nil, &ValidationError{Asset: ac.Name, Value: v, Err: model.ErrInvalidVolatility}
		}
	}

	total := floats.Sum(inv)
	if math.IsInf(total, 0) || math.IsNaN(total) || total == 0 {
		return nil, fmt.Errorf("%w: inverse volatilities sum to %v", model.ErrInvalidVolatility, total)
	}
	out := make([]model.InvestmentDecision, len(classes))
	for i, ac := range classes {
		out[i] = model.InvestmentDecision{
			Asset:      ac.Name,
			Allocation: inv[i] / total,
		}
	}
	return out, nil
}

// ErrorKind buckets an allocation error for metrics and API codes:
// "degenerate", "validation" or "other".
func ErrorKind(err error) string {
	var ve *ValidationError
	switch {
	case errors.Is(err, ErrDegenerateAllocation):
		return "degenerate"
	case errors.As(err, &ve), errors.Is(err, ErrEmptyCatalog), errors.Is(err, model.ErrInvalidVolatility):
		return "validation"
	default:
		return "other"
	}
}

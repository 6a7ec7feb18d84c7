package models

import (
	"fmt"
	"time"

	"macro-parity/internal/model"
)

const dateLayout = "2006-01-02"

func AssetClassFromModel(ac model.AssetClass) AssetClassInfo {
	return AssetClassInfo{
		Name:           ac.Name,
		ExpectedReturn: ac.ExpectedReturn,
		Volatility:     ac.Volatility,
		Correlation:    ac.Correlation,
		Category:       string(ac.Category()),
	}
}

func (a AssetClassInfo) ToModel() model.AssetClass {
	return model.AssetClass{
		Name:           a.Name,
		ExpectedReturn: a.ExpectedReturn,
		Volatility:     a.Volatility,
		Correlation:    a.Correlation,
	}
}

func CatalogToModel(in []AssetClassInfo) []model.AssetClass {
	out := make([]model.AssetClass, len(in))
	for i, a := range in {
		out[i] = a.ToModel()
	}
	return out
}

// ToModel parses the series dates.
func (s IndicatorSeries) ToModel() (model.EconomicIndicator, error) {
	ind := model.EconomicIndicator{
		Name:   s.Name,
		Weight: s.Weight,
		Data:   make([]model.Observation, 0, len(s.Data)),
	}
	for i, o := range s.Data {
		d, err := time.Parse(dateLayout, o.Date)
		if err != nil {
			return model.EconomicIndicator{}, fmt.Errorf("indicator %q point %d: invalid date %q", s.Name, i, o.Date)
		}
		ind.Data = append(ind.Data, model.Observation{Date: d, Value: o.Value})
	}
	return ind, nil
}

package catalog

import (
	"errors"
	"fmt"
	"os"

	"macro-parity/internal/model"

	"gopkg.in/yaml.v3"
)

var ErrEmpty = errors.New("catalog has no asset classes")

// Default returns the built-in five asset classes in their canonical order.
// Each call returns fresh slices and maps, so callers may not observe each other's edits.
func Default() []model.AssetClass {
	return []model.AssetClass{
		{
			Name:           model.AssetUSEquities,
			ExpectedReturn: 0.07,
			Volatility:     0.15,
			Correlation: map[string]float64{
				model.AssetUSBonds:               -0.2,
				model.AssetInternationalEquities: 0.8,
				model.AssetCommodities:           0.3,
				model.AssetRealEstate:            0.6,
			},
		},
		{
			Name:           model.AssetUSBonds,
			ExpectedReturn: 0.03,
			Volatility:     0.05,
			Correlation: map[string]float64{
				model.AssetUSEquities:            -0.2,
				model.AssetInternationalEquities: -0.1,
				model.AssetCommodities:           0.0,
				model.AssetRealEstate:            0.2,
			},
		},
		{
			Name:           model.AssetInternationalEquities,
			ExpectedReturn: 0.08,
			Volatility:     0.18,
			Correlation: map[string]float64{
				model.AssetUSEquities:  0.8,
				model.AssetUSBonds:     -0.1,
				model.AssetCommodities: 0.4,
				model.AssetRealEstate:  0.5,
			},
		},
		{
			Name:           model.AssetCommodities,
			ExpectedReturn: 0.05,
			Volatility:     0.20,
			Correlation: map[string]float64{
				model.AssetUSEquities:            0.3,
				model.AssetUSBonds:               0.0,
				model.AssetInternationalEquities: 0.4,
				model.AssetRealEstate:            0.2,
			},
		},
		{
			Name:           model.AssetRealEstate,
			ExpectedReturn: 0.06,
			Volatility:     0.12,
			Correlation: map[string]float64{
				model.AssetUSEquities:            0.6,
				model.AssetUSBonds:               0.2,
				model.AssetInternationalEquities: 0.5,
				model.AssetCommodities:           0.2,
			},
		},
	}
}

// Validate checks every asset class and rejects duplicate names.
func Validate(classes []model.AssetClass) error {
	if len(classes) == 0 {
		return ErrEmpty
	}
	seen := make(map[string]bool, len(classes))
	for i, ac := range classes {
		if err := ac.Validate(); err != nil {
			return fmt.Errorf("asset class %d: %w", i, err)
		}
		if seen[ac.Name] {
			return fmt.Errorf("asset class %d: duplicate name %q", i, ac.Name)
		}
		seen[ac.Name] = true
	}
	return nil
}

type fileWrapper struct {
	AssetClasses []model.AssetClass `yaml:"asset_classes"`
}

// Load reads a YAML catalog file of the form:
//
//	asset_classes:
//	  - name: US Equities
//	    expected_return: 0.07
//	    volatility: 0.15
//	    correlation: {US Bonds: -0.2}
func Load(path string) ([]model.AssetClass, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var w fileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	if err := Validate(w.AssetClasses); err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return w.AssetClasses, nil
}

// Save writes classes in the format read by Load.
func Save(path string, classes []model.AssetClass) error {
	raw, err := yaml.Marshal(fileWrapper{AssetClasses: classes})
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}

// Merge overlays override onto base by name. Overrides with a known name
// replace that entry in place; new names are appended in override order.
func Merge(base, override []model.AssetClass) []model.AssetClass {
	out := make([]model.AssetClass, len(base))
	copy(out, base)
	idx := make(map[string]int, len(out))
	for i, ac := range out {
		idx[ac.Name] = i
	}
	for _, ac := range override {
		if i, ok := idx[ac.Name]; ok {
			out[i] = ac
			continue
		}
		idx[ac.Name] = len(out)
		out = append(out, ac)
	}
	return out
}

// Names returns the asset names in catalog order.
func Names(classes []model.AssetClass) []string {
	names := make([]string, len(classes))
	for i, ac := range classes {
		names[i] = ac.Name
	}
	return names
}

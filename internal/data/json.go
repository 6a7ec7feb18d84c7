package data

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"macro-parity/internal/model"
)

// IndicatorFile is the on-disk form of a set of fetched series, used for
// offline backtests.
type IndicatorFile struct {
	Source     string                    `json:"source"`
	UpdatedAt  string                    `json:"updated_at"` // RFC3339
	Indicators []model.EconomicIndicator `json:"indicators"`
}

func NewIndicatorFile(source string, indicators []model.EconomicIndicator) *IndicatorFile {
	return &IndicatorFile{
		Source:     source,
		UpdatedAt:  time.Now().UTC().Format(time.RFC3339),
		Indicators: indicators,
	}
}

func LoadIndicatorsJSON(path string) (*IndicatorFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read indicators file: %w", err)
	}
	var f IndicatorFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("failed to parse indicators file: %w", err)
	}
	return &f, nil
}

func SaveIndicatorsJSON(path string, f *IndicatorFile) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	raw, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal indicators: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write indicators file: %w", err)
	}
	return nil
}

// IndicatorByName returns the first indicator with the given name.
func IndicatorByName(indicators []model.EconomicIndicator, name string) (model.EconomicIndicator, bool) {
	for _, ind := range indicators {
		if ind.Name == name {
			return ind, true
		}
	}
	return model.EconomicIndicator{}, false
}

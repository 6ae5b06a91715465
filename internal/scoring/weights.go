// Package scoring computes match scores and transact-likelihood scores for
// properties against a buyer's parsed intent.
package scoring

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"homematch/internal/model"
)

// FactorWeights holds the relative weight of each match factor. The base
// weights sum to 1.0; RedistributeWeights rescales them per intent.
type FactorWeights struct {
	Location  float64 `yaml:"location"`
	Budget    float64 `yaml:"budget"`
	Style     float64 `yaml:"style"`
	Features  float64 `yaml:"features"`
	BedsBaths float64 `yaml:"beds_baths"`
	Sqft      float64 `yaml:"sqft"`
}

// DefaultFactorWeights returns the baseline factor weights. Location leads
// because it is the least substitutable preference; size factors trail
// because buyers flex on them most.
func DefaultFactorWeights() FactorWeights {
	return FactorWeights{
		Location:  0.25,
		Budget:    0.20,
		Style:     0.20,
		Features:  0.15,
		BedsBaths: 0.10,
		Sqft:      0.10,
	}
}

// Sum returns the total of all factor weights.
func (w FactorWeights) Sum() float64 {
	return w.Location + w.Budget + w.Style + w.Features + w.BedsBaths + w.Sqft
}

// LoadCalibration loads factor weights from a YAML calibration file,
// merging non-zero overrides onto the defaults. A missing or unreadable
// file falls back to defaults with an error so callers can log and proceed.
func LoadCalibration(path string) (FactorWeights, error) {
	base := DefaultFactorWeights()
	if path == "" {
		return base, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("failed to read calibration file: %w", err)
	}

	var override FactorWeights
	if err := yaml.Unmarshal(data, &override); err != nil {
		return base, fmt.Errorf("failed to parse calibration file: %w", err)
	}

	merged := mergeCalibration(base, override)
	log.Printf("Loaded scoring calibration from %s: %+v", path, merged)
	return merged, nil
}

// mergeCalibration applies non-zero override weights onto the base, so a
// partial calibration file leaves the remaining factors at their defaults.
func mergeCalibration(base, override FactorWeights) FactorWeights {
	merged := base
	if override.Location != 0 {
		merged.Location = override.Location
	}
	if override.Budget != 0 {
		merged.Budget = override.Budget
	}
	if override.Style != 0 {
		merged.Style = override.Style
	}
	if override.Features != 0 {
		merged.Features = override.Features
	}
	if override.BedsBaths != 0 {
		merged.BedsBaths = override.BedsBaths
	}
	if override.Sqft != 0 {
		merged.Sqft = override.Sqft
	}
	return merged
}

// RedistributeWeights zeroes the weight of every factor the buyer did not
// specify and rescales the remaining weights to sum to 1.0, so unspecified
// axes cannot drag a score down. When no factor is specified at all, the
// unscaled base weights are returned: every factor then sits at its neutral
// value and the final score lands at a flat 50, which is the deliberate
// "can't rank what wasn't described" posture.
func RedistributeWeights(intent *model.ParsedIntent, base FactorWeights) FactorWeights {
	w := base
	if !intent.HasLocationPreference() {
		w.Location = 0
	}
	if !intent.HasBudgetPreference() {
		w.Budget = 0
	}
	if !intent.HasStylePreference() {
		w.Style = 0
	}
	if !intent.HasFeaturePreference() {
		w.Features = 0
	}
	if !intent.HasBedsBathsPreference() {
		w.BedsBaths = 0
	}
	if !intent.HasSqftPreference() {
		w.Sqft = 0
	}

	total := w.Sum()
	if total <= 0 {
		return base
	}

	w.Location /= total
	w.Budget /= total
	w.Style /= total
	w.Features /= total
	w.BedsBaths /= total
	w.Sqft /= total
	return w
}

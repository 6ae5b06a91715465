package scoring

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"homematch/internal/model"
)

func TestDefaultFactorWeights_SumToOne(t *testing.T) {
	if sum := DefaultFactorWeights().Sum(); math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("Expected default weights to sum to 1.0, got %f", sum)
	}
}

func TestRedistributeWeights_SingleFactor(t *testing.T) {
	intent := &model.ParsedIntent{BudgetMax: f64Ptr(1000000)}

	w := RedistributeWeights(intent, DefaultFactorWeights())

	if w.Budget != 1.0 {
		t.Errorf("Expected budget weight 1.0 when it is the only specified factor, got %f", w.Budget)
	}
	if w.Location != 0 || w.Style != 0 || w.Features != 0 || w.BedsBaths != 0 || w.Sqft != 0 {
		t.Errorf("Expected all unspecified weights to be 0, got %+v", w)
	}
}

func TestRedistributeWeights_TwoFactors(t *testing.T) {
	intent := &model.ParsedIntent{
		BudgetMax: f64Ptr(1000000),
		Styles:    []string{"craftsman"},
	}

	w := RedistributeWeights(intent, DefaultFactorWeights())

	// Budget and style both carry 0.20 base weight, so each rescales to 0.5.
	if math.Abs(w.Budget-0.5) > 1e-9 || math.Abs(w.Style-0.5) > 1e-9 {
		t.Errorf("Expected budget and style weights of 0.5 each, got %+v", w)
	}
	if math.Abs(w.Sum()-1.0) > 1e-9 {
		t.Errorf("Expected redistributed weights to sum to 1.0, got %f", w.Sum())
	}
}

func TestRedistributeWeights_NothingSpecified(t *testing.T) {
	w := RedistributeWeights(&model.ParsedIntent{}, DefaultFactorWeights())

	if w != DefaultFactorWeights() {
		t.Errorf("Expected unscaled base weights when no factor is specified, got %+v", w)
	}
}

func TestRedistributeWeights_AllSpecified(t *testing.T) {
	intent := &model.ParsedIntent{
		Styles:    []string{"ranch"},
		Features:  []string{"pool"},
		BudgetMin: f64Ptr(200000),
		Locations: []model.TargetLocation{{Name: "downtown", Latitude: 30.26, Longitude: -97.74, RadiusMiles: 5}},
		BedsMin:   intPtr(3),
		SqftMin:   f64Ptr(1500),
	}

	w := RedistributeWeights(intent, DefaultFactorWeights())

	if w != DefaultFactorWeights() {
		t.Errorf("Expected base weights unchanged when every factor is specified, got %+v", w)
	}
}

func TestLoadCalibration(t *testing.T) {
	t.Run("empty path returns defaults", func(t *testing.T) {
		w, err := LoadCalibration("")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if w != DefaultFactorWeights() {
			t.Errorf("Expected defaults, got %+v", w)
		}
	})

	t.Run("missing file falls back to defaults with error", func(t *testing.T) {
		w, err := LoadCalibration("/nonexistent/calibration.yaml")
		if err == nil {
			t.Error("Expected error for missing file")
		}
		if w != DefaultFactorWeights() {
			t.Errorf("Expected defaults on error, got %+v", w)
		}
	})

	t.Run("partial override merges with defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "calibration.yaml")
		if err := os.WriteFile(path, []byte("location: 0.4\nbudget: 0.3\n"), 0o644); err != nil {
			t.Fatal(err)
		}

		w, err := LoadCalibration(path)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if w.Location != 0.4 || w.Budget != 0.3 {
			t.Errorf("Expected overridden location/budget, got %+v", w)
		}
		if w.Style != 0.20 || w.Sqft != 0.10 {
			t.Errorf("Expected untouched factors at defaults, got %+v", w)
		}
	})
}

// Helper functions
func f64Ptr(v float64) *float64 {
	return &v
}

func intPtr(v int) *int {
	return &v
}

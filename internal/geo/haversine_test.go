package geo

import (
	"math"
	"testing"
)

func TestDistance_SamePoint(t *testing.T) {
	if d := Distance(40.7128, -74.0060, 40.7128, -74.0060); d != 0 {
		t.Errorf("Expected 0 for identical points, got %f", d)
	}
}

func TestDistance_Symmetric(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lng1, lat2, lng2 float64
	}{
		{"NYC to LA", 40.7128, -74.0060, 34.0522, -118.2437},
		{"Austin to Dallas", 30.2672, -97.7431, 32.7767, -96.7970},
		{"Across equator", -1.2921, 36.8219, 1.3521, 103.8198},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ab := Distance(tt.lat1, tt.lng1, tt.lat2, tt.lng2)
			ba := Distance(tt.lat2, tt.lng2, tt.lat1, tt.lng1)
			if math.Abs(ab-ba) > 1e-9 {
				t.Errorf("Distance not symmetric: %f vs %f", ab, ba)
			}
		})
	}
}

func TestDistance_KnownValues(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lng1, lat2, lng2 float64
		wantMiles              float64
		tolerance              float64
	}{
		// Reference distances cross-checked against the FAI great-circle calculator.
		{"NYC to LA", 40.7128, -74.0060, 34.0522, -118.2437, 2445, 10},
		{"One degree of latitude", 35.0, -97.0, 36.0, -97.0, 69.1, 0.5},
		{"Short hop", 30.2672, -97.7431, 30.2700, -97.7431, 0.193, 0.01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.lat1, tt.lng1, tt.lat2, tt.lng2)
			if math.Abs(got-tt.wantMiles) > tt.tolerance {
				t.Errorf("Expected ~%f miles, got %f", tt.wantMiles, got)
			}
		})
	}
}

func TestDistance_NaNPropagates(t *testing.T) {
	if d := Distance(math.NaN(), 0, 0, 0); !math.IsNaN(d) {
		t.Errorf("Expected NaN for NaN input, got %f", d)
	}
}

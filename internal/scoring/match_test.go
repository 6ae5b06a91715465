package scoring

import (
	"math"
	"strings"
	"testing"

	"homematch/internal/model"
)

func baseProperty() *model.PropertyRecord {
	return &model.PropertyRecord{
		ID:           "prop-1",
		Address:      "101 Maple St",
		Latitude:     30.2672,
		Longitude:    -97.7431,
		Bedrooms:     intPtr(3),
		Bathrooms:    f64Ptr(2),
		Sqft:         f64Ptr(1800),
		PropertyType: model.PropertyTypeSingleFamily,
		Style:        strPtr("craftsman"),
		Features:     model.JSONArray{"Fenced yard", "2-car garage", "Updated kitchen"},
		ListPrice:    f64Ptr(450000),
	}
}

func strPtr(s string) *string { return &s }

func TestScore_NilArguments(t *testing.T) {
	scorer := NewScorer(DefaultFactorWeights())

	if _, err := scorer.Score(nil, &model.ParsedIntent{}); err == nil {
		t.Error("Expected error for nil property")
	}
	if _, err := scorer.Score(baseProperty(), nil); err == nil {
		t.Error("Expected error for nil intent")
	}

	p := baseProperty()
	p.ID = ""
	if _, err := scorer.Score(p, &model.ParsedIntent{}); err == nil {
		t.Error("Expected error for property without identity")
	}
}

func TestScore_EmptyIntentIsFlatFifty(t *testing.T) {
	// With no preferences, every factor sits at neutral 50 under unscaled
	// base weights, so every property scores exactly 50 regardless of its
	// attributes. Pinned here pending product review of the flat ranking.
	scorer := NewScorer(DefaultFactorWeights())

	for _, p := range []*model.PropertyRecord{
		baseProperty(),
		{ID: "bare", Address: "nowhere"},
	} {
		result, err := scorer.Score(p, &model.ParsedIntent{})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if result.Score != 50 {
			t.Errorf("Expected flat 50 for empty intent, got %f for %s", result.Score, p.ID)
		}
		for _, f := range result.Explanation.Factors {
			if f.Matched {
				t.Errorf("Factor %s matched despite carrying no weight", f.Name)
			}
		}
	}
}

func TestScore_BudgetOnlyIntent(t *testing.T) {
	scorer := NewScorer(DefaultFactorWeights())
	intent := &model.ParsedIntent{BudgetMax: f64Ptr(1000000)}

	cheap := baseProperty()
	cheap.ListPrice = f64Ptr(800000)

	expensive := baseProperty()
	expensive.ID = "prop-2"
	expensive.ListPrice = f64Ptr(1500000)

	cheapResult, err := scorer.Score(cheap, intent)
	if err != nil {
		t.Fatal(err)
	}
	expensiveResult, err := scorer.Score(expensive, intent)
	if err != nil {
		t.Fatal(err)
	}

	// Budget is the only specified axis, so it carries the full weight.
	if cheapResult.Score != 100 {
		t.Errorf("Expected 100 for in-budget property on budget-only intent, got %f", cheapResult.Score)
	}

	// Price 1.5M against a 1M max: 50% overage decays the score to 50.
	if expensiveResult.Score != 50 {
		t.Errorf("Expected 50 for 50%% over-budget property, got %f", expensiveResult.Score)
	}

	for _, f := range expensiveResult.Explanation.Factors {
		if f.Name == FactorBudget && f.Weight != 1.0 {
			t.Errorf("Expected budget weight 1.0, got %f", f.Weight)
		}
		if f.Name != FactorBudget && f.Weight != 0 {
			t.Errorf("Expected zero weight on %s, got %f", f.Name, f.Weight)
		}
	}
}

func TestScoreBudget(t *testing.T) {
	tests := []struct {
		name   string
		price  *float64
		min    *float64
		max    *float64
		want   float64
	}{
		{"no bounds", f64Ptr(500000), nil, nil, 50},
		{"no price data", nil, nil, f64Ptr(400000), 50},
		{"within budget", f64Ptr(350000), f64Ptr(300000), f64Ptr(400000), 100},
		{"at max", f64Ptr(400000), nil, f64Ptr(400000), 100},
		{"50 percent over", f64Ptr(1500000), nil, f64Ptr(1000000), 50},
		{"double the max", f64Ptr(800000), nil, f64Ptr(400000), 0},
		{"25 percent under min", f64Ptr(300000), f64Ptr(400000), nil, 75},
		{"far below min", f64Ptr(1), f64Ptr(400000), nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := baseProperty()
			p.ListPrice = tt.price
			p.EstimatedValue = nil
			intent := &model.ParsedIntent{BudgetMin: tt.min, BudgetMax: tt.max}

			got := scoreBudget(p, intent)
			if math.Abs(got.score-tt.want) > 0.01 {
				t.Errorf("Expected %f, got %f (%s)", tt.want, got.score, got.reason)
			}
		})
	}
}

func TestScoreBudget_FallsBackToEstimatedValue(t *testing.T) {
	p := baseProperty()
	p.ListPrice = nil
	p.EstimatedValue = f64Ptr(350000)
	intent := &model.ParsedIntent{BudgetMax: f64Ptr(400000)}

	if got := scoreBudget(p, intent); got.score != 100 {
		t.Errorf("Expected estimated value to satisfy budget, got %f", got.score)
	}
}

func TestScoreLocation(t *testing.T) {
	downtown := model.TargetLocation{Name: "downtown austin", Latitude: 30.2672, Longitude: -97.7431, RadiusMiles: 5}

	tests := []struct {
		name     string
		lat, lng float64
		targets  []model.TargetLocation
		want     float64
		delta    float64
	}{
		{"no targets", 30.2672, -97.7431, nil, 50, 0},
		{"unknown coordinates", 0, 0, []model.TargetLocation{downtown}, 50, 0},
		{"direct hit", 30.2672, -97.7431, []model.TargetLocation{downtown}, 100, 0},
		// ~2.5 miles north: inside the radius, decays between 100 and 60.
		{"inside radius", 30.3034, -97.7431, []model.TargetLocation{downtown}, 80, 2},
		// ~7.5 miles: between radius and 2x radius, decays between 60 and 0.
		{"outside radius", 30.3757, -97.7431, []model.TargetLocation{downtown}, 30, 3},
		// ~69 miles: far beyond 2x radius.
		{"far away", 31.2672, -97.7431, []model.TargetLocation{downtown}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := baseProperty()
			p.Latitude, p.Longitude = tt.lat, tt.lng
			intent := &model.ParsedIntent{Locations: tt.targets}

			got := scoreLocation(p, intent)
			if math.Abs(got.score-tt.want) > tt.delta {
				t.Errorf("Expected ~%f, got %f (%s)", tt.want, got.score, got.reason)
			}
		})
	}
}

func TestScoreLocation_PicksNearestTarget(t *testing.T) {
	p := baseProperty() // downtown Austin
	intent := &model.ParsedIntent{Locations: []model.TargetLocation{
		{Name: "dallas", Latitude: 32.7767, Longitude: -96.7970, RadiusMiles: 5},
		{Name: "downtown austin", Latitude: 30.2672, Longitude: -97.7431, RadiusMiles: 5},
	}}

	got := scoreLocation(p, intent)
	if got.score != 100 {
		t.Errorf("Expected 100 against the nearest target, got %f", got.score)
	}
	if !strings.Contains(got.reason, "downtown austin") {
		t.Errorf("Expected reason to name the nearest target, got %q", got.reason)
	}
}

func TestScoreStyle(t *testing.T) {
	tests := []struct {
		name    string
		style   *string
		desired []string
		want    float64
	}{
		{"no preference", strPtr("craftsman"), nil, 50},
		{"unknown style penalized", nil, []string{"craftsman"}, 25},
		{"exact", strPtr("craftsman"), []string{"craftsman"}, 100},
		{"related", strPtr("bungalow"), []string{"craftsman"}, 50},
		{"unrelated", strPtr("victorian"), []string{"ranch"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := baseProperty()
			p.Style = tt.style
			intent := &model.ParsedIntent{Styles: tt.desired}

			if got := scoreStyle(p, intent); got.score != tt.want {
				t.Errorf("Expected %f, got %f (%s)", tt.want, got.score, got.reason)
			}
		})
	}
}

func TestScoreFeatures(t *testing.T) {
	p := baseProperty() // fenced yard, 2-car garage, updated kitchen

	tests := []struct {
		name    string
		desired []string
		want    float64
	}{
		{"no preference", nil, 50},
		{"all present", []string{"garage", "kitchen"}, 100},
		{"half present", []string{"garage", "pool"}, 50},
		{"none present", []string{"pool", "waterfront"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent := &model.ParsedIntent{Features: tt.desired}
			if got := scoreFeatures(p, intent); got.score != tt.want {
				t.Errorf("Expected %f, got %f (%s)", tt.want, got.score, got.reason)
			}
		})
	}
}

func TestScoreBedsBaths(t *testing.T) {
	tests := []struct {
		name    string
		beds    *int
		baths   *float64
		intent  *model.ParsedIntent
		want    float64
	}{
		{"no preference", intPtr(3), f64Ptr(2), &model.ParsedIntent{}, 50},
		{"beds exact, baths unspecified", intPtr(3), f64Ptr(2), &model.ParsedIntent{BedsMin: intPtr(3)}, 75},
		{"both exact", intPtr(3), f64Ptr(2), &model.ParsedIntent{BedsMin: intPtr(3), BathsMin: f64Ptr(2)}, 100},
		{"beds one short still full credit", intPtr(3), f64Ptr(2), &model.ParsedIntent{BedsMin: intPtr(4), BathsMin: f64Ptr(2)}, 100},
		{"beds two short capped at 50", intPtr(3), f64Ptr(2), &model.ParsedIntent{BedsMin: intPtr(5), BathsMin: f64Ptr(2)}, 75},
		{"beds three short forced to 0", intPtr(2), f64Ptr(2), &model.ParsedIntent{BedsMin: intPtr(5), BathsMin: f64Ptr(2)}, 50},
		{"unknown bed count neutral", nil, f64Ptr(2), &model.ParsedIntent{BedsMin: intPtr(3), BathsMin: f64Ptr(2)}, 75},
		{"overshoot by two", intPtr(6), f64Ptr(2), &model.ParsedIntent{BedsMax: intPtr(4), BathsMin: f64Ptr(2)}, 75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := baseProperty()
			p.Bedrooms = tt.beds
			p.Bathrooms = tt.baths

			got := scoreBedsBaths(p, tt.intent)
			if math.Abs(got.score-tt.want) > 0.01 {
				t.Errorf("Expected %f, got %f (%s)", tt.want, got.score, got.reason)
			}
		})
	}
}

func TestScoreSqft(t *testing.T) {
	tests := []struct {
		name   string
		sqft   *float64
		min    *float64
		max    *float64
		want   float64
	}{
		{"no preference", f64Ptr(1800), nil, nil, 50},
		{"unknown sqft", nil, f64Ptr(1000), f64Ptr(2000), 50},
		{"within range", f64Ptr(1500), f64Ptr(1000), f64Ptr(2000), 100},
		{"only min, satisfied", f64Ptr(2500), f64Ptr(1000), nil, 100},
		{"half the min", f64Ptr(500), f64Ptr(1000), nil, 50},
		{"double the max", f64Ptr(4000), nil, f64Ptr(2000), 0},
		{"25 percent over max", f64Ptr(2500), nil, f64Ptr(2000), 75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := baseProperty()
			p.Sqft = tt.sqft
			intent := &model.ParsedIntent{SqftMin: tt.min, SqftMax: tt.max}

			got := scoreSqft(p, intent)
			if math.Abs(got.score-tt.want) > 0.01 {
				t.Errorf("Expected %f, got %f (%s)", tt.want, got.score, got.reason)
			}
		})
	}
}

func TestScore_SummaryBands(t *testing.T) {
	scorer := NewScorer(DefaultFactorWeights())

	t.Run("strong across many factors", func(t *testing.T) {
		p := baseProperty()
		intent := &model.ParsedIntent{
			BudgetMax: f64Ptr(500000),
			Styles:    []string{"craftsman"},
			Features:  []string{"garage", "kitchen"},
			BedsMin:   intPtr(3),
			SqftMin:   f64Ptr(1500),
		}

		result, err := scorer.Score(p, intent)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.HasPrefix(result.Explanation.Summary, "strong match across") {
			t.Errorf("Expected strong-match summary, got %q", result.Explanation.Summary)
		}
	})

	t.Run("single strong factor", func(t *testing.T) {
		p := baseProperty()
		p.Style = strPtr("victorian")
		intent := &model.ParsedIntent{
			BudgetMax: f64Ptr(500000),
			Styles:    []string{"ranch"},
			Features:  []string{"pool"},
		}

		result, err := scorer.Score(p, intent)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.HasPrefix(result.Explanation.Summary, "partial match") {
			t.Errorf("Expected partial-match summary, got %q", result.Explanation.Summary)
		}
	})

	t.Run("nothing strong", func(t *testing.T) {
		p := baseProperty()
		p.Style = strPtr("victorian")
		p.ListPrice = f64Ptr(900000)
		intent := &model.ParsedIntent{
			BudgetMax: f64Ptr(500000),
			Styles:    []string{"ranch"},
			Features:  []string{"pool"},
		}

		result, err := scorer.Score(p, intent)
		if err != nil {
			t.Fatal(err)
		}
		if result.Explanation.Summary != "weak match across most factors" {
			t.Errorf("Expected weak-match summary, got %q", result.Explanation.Summary)
		}
	})
}

func TestScore_MatchedFlagRequiresWeight(t *testing.T) {
	scorer := NewScorer(DefaultFactorWeights())
	intent := &model.ParsedIntent{Styles: []string{"craftsman"}}

	result, err := scorer.Score(baseProperty(), intent)
	if err != nil {
		t.Fatal(err)
	}

	for _, f := range result.Explanation.Factors {
		switch f.Name {
		case FactorStyle:
			if !f.Matched {
				t.Error("Expected style factor to be matched")
			}
		default:
			// Neutral 50s without weight never count as matched.
			if f.Matched {
				t.Errorf("Factor %s matched despite zero weight", f.Name)
			}
		}
	}
}

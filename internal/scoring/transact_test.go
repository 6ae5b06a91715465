package scoring

import (
	"testing"
	"time"

	"homematch/internal/model"
)

func TestTransactScore_NilProperty(t *testing.T) {
	if _, err := TransactScore(nil, false); err == nil {
		t.Error("Expected error for nil property")
	}
}

func TestTransactScore_NoSignals(t *testing.T) {
	p := &model.PropertyRecord{ID: "prop-1", ListingStatus: model.ListingStatusOnMarket}

	result, err := TransactScore(p, false)
	if err != nil {
		t.Fatal(err)
	}
	if result.Score != 0 {
		t.Errorf("Expected 0 with no signals, got %d", result.Score)
	}
	if result.Level != TransactLow {
		t.Errorf("Expected low tier, got %s", result.Level)
	}
	if len(result.Signals) != 0 {
		t.Errorf("Expected no signals, got %v", result.Signals)
	}
}

func TestTransactScore_DistressedLongTenure(t *testing.T) {
	// A 20-year absentee owner with delinquent taxes on a 40-year-old home
	// with no permits: 20+10+15+15+10 = 70, firmly in the high tier.
	yearBuilt := time.Now().Year() - 40
	p := &model.PropertyRecord{
		ID:             "prop-1",
		OwnershipYears: 20,
		AbsenteeOwner:  true,
		TaxStatus:      model.TaxStatusDelinquent,
		YearBuilt:      &yearBuilt,
		ListingStatus:  model.ListingStatusOnMarket,
	}

	result, err := TransactScore(p, false)
	if err != nil {
		t.Fatal(err)
	}
	if result.Score != 70 {
		t.Errorf("Expected 70, got %d (signals: %v)", result.Score, result.Signals)
	}
	if result.Level != TransactHigh {
		t.Errorf("Expected high tier, got %s", result.Level)
	}
	if len(result.Signals) != 5 {
		t.Errorf("Expected 5 signals, got %v", result.Signals)
	}
}

func TestTransactScore_IndividualSignals(t *testing.T) {
	tests := []struct {
		name        string
		property    model.PropertyRecord
		nearbySales bool
		want        int
	}{
		{"ownership over 10 years", model.PropertyRecord{ID: "p", OwnershipYears: 12}, false, 20},
		{"ownership over 15 years stacks", model.PropertyRecord{ID: "p", OwnershipYears: 16}, false, 30},
		{"ownership exactly 10 does not fire", model.PropertyRecord{ID: "p", OwnershipYears: 10}, false, 0},
		{"absentee owner", model.PropertyRecord{ID: "p", AbsenteeOwner: true}, false, 15},
		{"high equity", model.PropertyRecord{ID: "p", EquityPercent: 65}, false, 10},
		{"equity exactly 50 does not fire", model.PropertyRecord{ID: "p", EquityPercent: 50}, false, 0},
		{"tax delinquent", model.PropertyRecord{ID: "p", TaxStatus: model.TaxStatusDelinquent}, false, 15},
		{"recent nearby sales", model.PropertyRecord{ID: "p"}, true, 5},
		{"off market", model.PropertyRecord{ID: "p", ListingStatus: model.ListingStatusOffMarket}, false, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := TransactScore(&tt.property, tt.nearbySales)
			if err != nil {
				t.Fatal(err)
			}
			if result.Score != tt.want {
				t.Errorf("Expected %d, got %d (signals: %v)", tt.want, result.Score, result.Signals)
			}
		})
	}
}

func TestTransactScore_CappedAt100(t *testing.T) {
	yearBuilt := time.Now().Year() - 50
	p := &model.PropertyRecord{
		ID:             "prop-1",
		OwnershipYears: 25,
		AbsenteeOwner:  true,
		EquityPercent:  80,
		TaxStatus:      model.TaxStatusDelinquent,
		YearBuilt:      &yearBuilt,
		ListingStatus:  model.ListingStatusOffMarket,
	}

	result, err := TransactScore(p, true)
	if err != nil {
		t.Fatal(err)
	}
	if result.Score > 100 {
		t.Errorf("Expected score capped at 100, got %d", result.Score)
	}
	if result.Level != TransactHigh {
		t.Errorf("Expected high tier, got %s", result.Level)
	}
}

func TestAgingWithoutPermits(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	oldYear := 1980
	newYear := 2015
	badYear := 0

	tests := []struct {
		name      string
		yearBuilt *int
		permits   model.PermitList
		want      bool
	}{
		{"unknown year built", nil, nil, false},
		{"non-positive year built", &badYear, nil, false},
		{"recent construction", &newYear, nil, false},
		{"old home, no permits", &oldYear, nil, true},
		{"old home, recent permit", &oldYear, model.PermitList{
			{Type: "roofing", Date: now.AddDate(-2, 0, 0)},
		}, false},
		{"old home, only stale permits", &oldYear, model.PermitList{
			{Type: "electrical", Date: now.AddDate(-8, 0, 0)},
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &model.PropertyRecord{ID: "p", YearBuilt: tt.yearBuilt, Permits: tt.permits}
			if got := agingWithoutPermits(p, now); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		score int
		want  TransactLevel
	}{
		{0, TransactLow},
		{30, TransactLow},
		{31, TransactMedium},
		{60, TransactMedium},
		{61, TransactHigh},
		{100, TransactHigh},
	}

	for _, tt := range tests {
		if got := tierFor(tt.score); got != tt.want {
			t.Errorf("tierFor(%d): expected %s, got %s", tt.score, tt.want, got)
		}
	}
}

func TestTransactNumeric(t *testing.T) {
	tests := []struct {
		level TransactLevel
		want  float64
	}{
		{TransactHigh, 100},
		{TransactMedium, 50},
		{TransactLow, 20},
		{TransactLevel("unknown"), 0},
	}

	for _, tt := range tests {
		if got := TransactNumeric(tt.level); got != tt.want {
			t.Errorf("TransactNumeric(%s): expected %f, got %f", tt.level, tt.want, got)
		}
	}
}

package scoring

import (
	"fmt"
	"time"

	"homematch/internal/model"
)

// TransactLevel is the coarse likelihood tier that an owner would sell.
type TransactLevel string

const (
	TransactLow    TransactLevel = "low"
	TransactMedium TransactLevel = "medium"
	TransactHigh   TransactLevel = "high"
)

// TransactResult is the auditable output of the transact-likelihood scorer.
// Signals lists exactly which public-record conditions fired, since the
// rating informs real-world outreach decisions.
type TransactResult struct {
	Score   int           `json:"score"`
	Level   TransactLevel `json:"level"`
	Signals []string      `json:"signals"`
}

// Point values for each transact signal. Deliberately a transparent rule
// table rather than a statistical model.
const (
	pointsLongOwnership      = 20 // owned more than 10 years
	pointsVeryLongOwnership  = 10 // owned more than 15 years, on top of the above
	pointsAbsenteeOwner      = 15
	pointsHighEquity         = 10 // equity estimate above 50%
	pointsTaxDelinquent      = 15
	pointsRecentNearbySales  = 5
	pointsAgingNoPermits     = 10 // 30+ year old home, no permit in 5 years
	pointsOffMarket          = 5
	permitLookbackYears      = 5
	agingHomeThresholdYears  = 30
	longOwnershipYears       = 10
	veryLongOwnershipYears   = 15
	highEquityPercent        = 50
)

// TransactScore computes the 0-100 likelihood that the owner would sell,
// from public-record attributes. recentNearbySales is supplied by the
// caller (a market-activity signal computed over the surrounding area).
func TransactScore(p *model.PropertyRecord, recentNearbySales bool) (TransactResult, error) {
	if p == nil {
		return TransactResult{}, fmt.Errorf("property must not be nil")
	}

	score := 0
	var signals []string

	if p.OwnershipYears > longOwnershipYears {
		score += pointsLongOwnership
		signals = append(signals, fmt.Sprintf("owned for %.0f years", p.OwnershipYears))
	}
	if p.OwnershipYears > veryLongOwnershipYears {
		score += pointsVeryLongOwnership
		signals = append(signals, "long-tenured owner (15+ years)")
	}
	if p.AbsenteeOwner {
		score += pointsAbsenteeOwner
		signals = append(signals, "absentee owner")
	}
	if p.EquityPercent > highEquityPercent {
		score += pointsHighEquity
		signals = append(signals, fmt.Sprintf("high equity (%.0f%%)", p.EquityPercent))
	}
	if p.TaxStatus == model.TaxStatusDelinquent {
		score += pointsTaxDelinquent
		signals = append(signals, "delinquent property taxes")
	}
	if recentNearbySales {
		score += pointsRecentNearbySales
		signals = append(signals, "recent sales activity nearby")
	}
	if agingWithoutPermits(p, time.Now()) {
		score += pointsAgingNoPermits
		signals = append(signals, "aging home with no recent permits")
	}
	if p.ListingStatus == model.ListingStatusOffMarket {
		score += pointsOffMarket
		signals = append(signals, "currently off market")
	}

	if score > 100 {
		score = 100
	}

	return TransactResult{
		Score:   score,
		Level:   tierFor(score),
		Signals: signals,
	}, nil
}

// agingWithoutPermits reports whether the home is over 30 years old with no
// permit activity in the last 5 years. An unknown year built cannot
// establish age, so the rule does not fire.
func agingWithoutPermits(p *model.PropertyRecord, now time.Time) bool {
	if p.YearBuilt == nil || *p.YearBuilt <= 0 {
		return false
	}
	if now.Year()-*p.YearBuilt <= agingHomeThresholdYears {
		return false
	}

	cutoff := now.AddDate(-permitLookbackYears, 0, 0)
	for _, permit := range p.Permits {
		if permit.Date.After(cutoff) {
			return false
		}
	}
	return true
}

func tierFor(score int) TransactLevel {
	switch {
	case score <= 30:
		return TransactLow
	case score <= 60:
		return TransactMedium
	default:
		return TransactHigh
	}
}

// TransactNumeric maps a transact level to the numeric value used in the
// composite ranking key.
func TransactNumeric(level TransactLevel) float64 {
	switch level {
	case TransactHigh:
		return 100
	case TransactMedium:
		return 50
	case TransactLow:
		return 20
	default:
		return 0
	}
}

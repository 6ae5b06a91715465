package scoring

import (
	"fmt"
	"math"
	"strings"

	"homematch/internal/geo"
	"homematch/internal/model"
	"homematch/internal/style"
	"homematch/internal/utils"
)

// Match factor name constants
const (
	FactorLocation  = "Location"
	FactorBudget    = "Budget"
	FactorStyle     = "Style"
	FactorFeatures  = "Features"
	FactorBedsBaths = "Beds/Baths"
	FactorSqft      = "Square Footage"
)

const (
	neutralScore      = 50.0
	unknownStyleScore = 25.0

	// defaultRadiusMiles is used when a target location carries no radius.
	defaultRadiusMiles = 10.0
)

// factorScore is one sub-scorer's output.
type factorScore struct {
	score  float64
	reason string
}

// Scorer computes match scores for properties against a parsed intent.
type Scorer struct {
	weights FactorWeights
}

// NewScorer creates a scorer with the given base factor weights.
func NewScorer(weights FactorWeights) *Scorer {
	return &Scorer{weights: weights}
}

// Score computes the 0-100 match score and explanation for one property.
// Missing domain data never errors; only contract violations do (nil
// arguments, a property without an ID), so an upstream ingestion bug is
// not masked as a low-scoring property.
func (s *Scorer) Score(p *model.PropertyRecord, intent *model.ParsedIntent) (*model.MatchResult, error) {
	if p == nil {
		return nil, fmt.Errorf("property must not be nil")
	}
	if intent == nil {
		return nil, fmt.Errorf("intent must not be nil")
	}
	if p.ID == "" {
		return nil, fmt.Errorf("property %q is missing its identity", p.Address)
	}

	location := scoreLocation(p, intent)
	budget := scoreBudget(p, intent)
	styleFs := scoreStyle(p, intent)
	features := scoreFeatures(p, intent)
	bedsBaths := scoreBedsBaths(p, intent)
	sqft := scoreSqft(p, intent)

	w := RedistributeWeights(intent, s.weights)

	total := location.score*w.Location +
		budget.score*w.Budget +
		styleFs.score*w.Style +
		features.score*w.Features +
		bedsBaths.score*w.BedsBaths +
		sqft.score*w.Sqft
	total = round2(total)

	factors := []model.MatchFactor{
		buildFactor(FactorLocation, location, w.Location, intent.HasLocationPreference()),
		buildFactor(FactorBudget, budget, w.Budget, intent.HasBudgetPreference()),
		buildFactor(FactorStyle, styleFs, w.Style, intent.HasStylePreference()),
		buildFactor(FactorFeatures, features, w.Features, intent.HasFeaturePreference()),
		buildFactor(FactorBedsBaths, bedsBaths, w.BedsBaths, intent.HasBedsBathsPreference()),
		buildFactor(FactorSqft, sqft, w.Sqft, intent.HasSqftPreference()),
	}

	return &model.MatchResult{
		Score: total,
		Explanation: model.MatchExplanation{
			Summary: summarize(factors),
			Factors: factors,
		},
	}, nil
}

func buildFactor(name string, fs factorScore, weight float64, specified bool) model.MatchFactor {
	return model.MatchFactor{
		Name:    name,
		Score:   round2(fs.score),
		Weight:  round2(weight),
		Reason:  fs.reason,
		Matched: specified && fs.score >= 50,
	}
}

// scoreLocation scores proximity to the nearest target location. Bands:
// within 0.1 mi is a direct hit; inside the radius decays linearly from 100
// to 60; inside twice the radius decays from 60 to 0; beyond that is 0.
func scoreLocation(p *model.PropertyRecord, intent *model.ParsedIntent) factorScore {
	if !intent.HasLocationPreference() {
		return factorScore{neutralScore, "no location preference"}
	}
	if !p.HasLocation() {
		return factorScore{neutralScore, "no location data for property"}
	}

	var nearest *model.TargetLocation
	nearestDist := math.MaxFloat64
	for i := range intent.Locations {
		loc := &intent.Locations[i]
		if loc.Latitude == 0 && loc.Longitude == 0 {
			continue
		}
		d := geo.Distance(p.Latitude, p.Longitude, loc.Latitude, loc.Longitude)
		if d < nearestDist {
			nearestDist = d
			nearest = loc
		}
	}
	if nearest == nil {
		return factorScore{neutralScore, "no usable target locations"}
	}

	radius := nearest.RadiusMiles
	if radius <= 0 {
		radius = defaultRadiusMiles
	}

	name := nearest.Name
	if name == "" {
		name = "target area"
	}

	switch {
	case nearestDist <= 0.1:
		return factorScore{100, fmt.Sprintf("right at %s", name)}
	case nearestDist <= radius:
		score := 100 - 40*(nearestDist/radius)
		return factorScore{score, fmt.Sprintf("%.1f mi from %s", nearestDist, name)}
	case nearestDist <= 2*radius:
		score := 60 * (2*radius - nearestDist) / radius
		return factorScore{score, fmt.Sprintf("%.1f mi from %s, outside preferred radius", nearestDist, name)}
	default:
		return factorScore{0, fmt.Sprintf("%.1f mi from %s, well outside search area", nearestDist, name)}
	}
}

// scoreBudget compares the property's price signal against the budget
// bounds. Overage decays linearly to 0 at double the max; underage decays
// symmetrically by the shortfall ratio against the min. When both bounds
// exist the lower of the two checks wins.
func scoreBudget(p *model.PropertyRecord, intent *model.ParsedIntent) factorScore {
	if !intent.HasBudgetPreference() {
		return factorScore{neutralScore, "no budget preference"}
	}

	price := p.Price()
	if price == nil {
		return factorScore{neutralScore, "no price data"}
	}

	overScore, underScore := 100.0, 100.0

	if intent.BudgetMax != nil && *price > *intent.BudgetMax {
		overage := (*price - *intent.BudgetMax) / *intent.BudgetMax
		overScore = math.Max(0, 100*(1-overage))
	}
	if intent.BudgetMin != nil && *price < *intent.BudgetMin {
		underage := (*intent.BudgetMin - *price) / *intent.BudgetMin
		underScore = math.Max(0, 100*(1-underage))
	}

	score := math.Min(overScore, underScore)
	switch {
	case score == 100:
		return factorScore{score, "within budget"}
	case overScore < 100:
		return factorScore{score, fmt.Sprintf("$%.0f over budget", *price-*intent.BudgetMax)}
	default:
		return factorScore{score, fmt.Sprintf("$%.0f under minimum budget", *intent.BudgetMin-*price)}
	}
}

// scoreStyle awards full credit for an exact style match, half for a
// related style, none otherwise. An unknown property style takes a slight
// ambiguity penalty rather than a neutral score.
func scoreStyle(p *model.PropertyRecord, intent *model.ParsedIntent) factorScore {
	if !intent.HasStylePreference() {
		return factorScore{neutralScore, "no style preference"}
	}
	if p.Style == nil || style.Normalize(*p.Style) == "" {
		return factorScore{unknownStyleScore, "property style unknown"}
	}

	switch style.BestMatch(intent.Styles, *p.Style) {
	case style.Exact:
		return factorScore{100, fmt.Sprintf("%s matches desired style", *p.Style)}
	case style.Related:
		return factorScore{50, fmt.Sprintf("%s is related to desired style", *p.Style)}
	default:
		return factorScore{0, fmt.Sprintf("%s does not match desired styles", *p.Style)}
	}
}

// scoreFeatures scores the fraction of desired feature tags present on the
// property via fuzzy tag matching.
func scoreFeatures(p *model.PropertyRecord, intent *model.ParsedIntent) factorScore {
	if !intent.HasFeaturePreference() {
		return factorScore{neutralScore, "no feature preferences"}
	}

	matched := 0
	var missing []string
	for _, desired := range intent.Features {
		if utils.HasFeature(desired, p.Features) {
			matched++
		} else {
			missing = append(missing, desired)
		}
	}

	score := float64(matched) / float64(len(intent.Features)) * 100
	if matched == len(intent.Features) {
		return factorScore{score, "has all desired features"}
	}
	return factorScore{score, fmt.Sprintf("has %d of %d desired features (missing: %s)",
		matched, len(intent.Features), strings.Join(missing, ", "))}
}

// scoreBedsBaths averages two independent axes. Each unspecified or
// unknown axis sits at neutral; a specified axis is scored against the
// nearer bound with a 0/1 -> 100, 2 -> 50, >2 -> 0 banding, plus a hard
// floor when the property falls short of an explicit minimum.
func scoreBedsBaths(p *model.PropertyRecord, intent *model.ParsedIntent) factorScore {
	if !intent.HasBedsBathsPreference() {
		return factorScore{neutralScore, "no bed/bath preference"}
	}

	var beds *float64
	if p.Bedrooms != nil {
		v := float64(*p.Bedrooms)
		beds = &v
	}
	var bedsMin, bedsMax *float64
	if intent.BedsMin != nil {
		v := float64(*intent.BedsMin)
		bedsMin = &v
	}
	if intent.BedsMax != nil {
		v := float64(*intent.BedsMax)
		bedsMax = &v
	}

	bedScore, bedReason := scoreCountAxis("bed", beds, bedsMin, bedsMax)
	bathScore, bathReason := scoreCountAxis("bath", p.Bathrooms, intent.BathsMin, intent.BathsMax)

	return factorScore{
		score:  (bedScore + bathScore) / 2,
		reason: bedReason + "; " + bathReason,
	}
}

// scoreCountAxis scores one count axis (beds or baths) against its bounds.
func scoreCountAxis(label string, actual, min, max *float64) (float64, string) {
	if min == nil && max == nil {
		return neutralScore, fmt.Sprintf("no %s preference", label)
	}
	if actual == nil {
		return neutralScore, fmt.Sprintf("no %s data", label)
	}

	// Compare against the nearer bound; inside the range the diff is 0.
	target := *actual
	if min != nil && *actual < *min {
		target = *min
	} else if max != nil && *actual > *max {
		target = *max
	}
	diff := math.Abs(*actual - target)

	var score float64
	switch {
	case diff <= 1:
		score = 100
	case diff <= 2:
		score = 50
	default:
		score = 0
	}

	// Falling short of an explicit minimum is worse than overshooting.
	if min != nil {
		shortfall := *min - *actual
		if shortfall > 2 {
			score = 0
		} else if shortfall > 1 {
			score = math.Min(score, 50)
		}
	}

	if diff == 0 {
		return score, fmt.Sprintf("%ss match", label)
	}
	return score, fmt.Sprintf("%ss off by %.1f", label, diff)
}

// scoreSqft scores square footage against the desired range, decaying
// linearly to 0 as the deviation ratio against the violated bound
// approaches 1 (double the max, or half below the min).
func scoreSqft(p *model.PropertyRecord, intent *model.ParsedIntent) factorScore {
	if !intent.HasSqftPreference() {
		return factorScore{neutralScore, "no size preference"}
	}
	if p.Sqft == nil || *p.Sqft <= 0 {
		return factorScore{neutralScore, "no size data"}
	}

	sqft := *p.Sqft
	if intent.SqftMax != nil && sqft > *intent.SqftMax {
		ratio := (sqft - *intent.SqftMax) / *intent.SqftMax
		return factorScore{math.Max(0, 100*(1-ratio)), fmt.Sprintf("%.0f sqft over the desired max", sqft-*intent.SqftMax)}
	}
	if intent.SqftMin != nil && sqft < *intent.SqftMin {
		ratio := (*intent.SqftMin - sqft) / *intent.SqftMin
		return factorScore{math.Max(0, 100*(1-ratio)), fmt.Sprintf("%.0f sqft under the desired min", *intent.SqftMin-sqft)}
	}
	return factorScore{100, "size within desired range"}
}

// summarize derives the overall reason line from the factor scores:
// factors at 75+ count as strong, below 50 as weak.
func summarize(factors []model.MatchFactor) string {
	var strong, weak []string
	for _, f := range factors {
		if f.Score >= 75 {
			strong = append(strong, f.Name)
		} else if f.Score < 50 {
			weak = append(weak, f.Name)
		}
	}

	switch {
	case len(strong) >= 4:
		return "strong match across " + strings.Join(strong, ", ")
	case len(strong) >= 2:
		summary := "good match on " + strings.Join(strong, ", ")
		if len(weak) > 0 {
			summary += "; weaker on " + strings.Join(weak, ", ")
		}
		return summary
	case len(strong) == 1:
		return "partial match: strong on " + strong[0]
	default:
		return "weak match across most factors"
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

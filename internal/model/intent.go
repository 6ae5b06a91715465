package model

// TargetLocation is one place the buyer wants to live near, with a search
// radius in miles.
type TargetLocation struct {
	Name        string  `json:"name"`
	Latitude    float64 `json:"lat"`
	Longitude   float64 `json:"lng"`
	RadiusMiles float64 `json:"radius_miles"`
}

// ParsedIntent is the buyer's structured preference, produced by the
// natural-language understanding service. Every field is optional: an empty
// list or nil bound means the buyer expressed no preference on that axis,
// and scoring must not penalize a property for it.
type ParsedIntent struct {
	Styles        []string         `json:"styles,omitempty"`
	Features      []string         `json:"features,omitempty"`
	BudgetMin     *float64         `json:"budget_min,omitempty"`
	BudgetMax     *float64         `json:"budget_max,omitempty"`
	Locations     []TargetLocation `json:"locations,omitempty"`
	BedsMin       *int             `json:"beds_min,omitempty"`
	BedsMax       *int             `json:"beds_max,omitempty"`
	BathsMin      *float64         `json:"baths_min,omitempty"`
	BathsMax      *float64         `json:"baths_max,omitempty"`
	SqftMin       *float64         `json:"sqft_min,omitempty"`
	SqftMax       *float64         `json:"sqft_max,omitempty"`
	PropertyTypes []PropertyType   `json:"property_types,omitempty"`
	LifestyleTags []string         `json:"lifestyle_tags,omitempty"`
	Summary       string           `json:"summary,omitempty"`
}

// HasLocationPreference reports whether any target location was given.
func (i *ParsedIntent) HasLocationPreference() bool { return len(i.Locations) > 0 }

// HasBudgetPreference reports whether either budget bound was given.
func (i *ParsedIntent) HasBudgetPreference() bool {
	return i.BudgetMin != nil || i.BudgetMax != nil
}

// HasStylePreference reports whether any desired style was given.
func (i *ParsedIntent) HasStylePreference() bool { return len(i.Styles) > 0 }

// HasFeaturePreference reports whether any desired feature tag was given.
func (i *ParsedIntent) HasFeaturePreference() bool { return len(i.Features) > 0 }

// HasBedsBathsPreference reports whether any beds or baths bound was given.
func (i *ParsedIntent) HasBedsBathsPreference() bool {
	return i.BedsMin != nil || i.BedsMax != nil || i.BathsMin != nil || i.BathsMax != nil
}

// HasSqftPreference reports whether either sqft bound was given.
func (i *ParsedIntent) HasSqftPreference() bool {
	return i.SqftMin != nil || i.SqftMax != nil
}

// IntentResult wraps a ParsedIntent with parser metadata.
type IntentResult struct {
	Intent     *ParsedIntent `json:"intent"`
	Keywords   []string      `json:"keywords,omitempty"`
	Confidence float64       `json:"confidence"`
}

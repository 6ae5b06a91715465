package utils

import (
	"strings"
)

// MatchFeatureTag performs fuzzy matching between a desired feature and a
// property feature tag. Returns true on a normalized substring match in
// either direction, or when both sides resolve to the same alias group.
func MatchFeatureTag(desired, tag string) bool {
	desiredLower := strings.ToLower(strings.TrimSpace(desired))
	tagLower := strings.ToLower(strings.TrimSpace(tag))

	if desiredLower == "" || tagLower == "" {
		return false
	}

	// Exact match
	if desiredLower == tagLower {
		return true
	}

	// Substring match in either direction
	if strings.Contains(tagLower, desiredLower) || strings.Contains(desiredLower, tagLower) {
		return true
	}

	// Common aliases for residential feature tags
	aliases := map[string][]string{
		"pool":         {"swimming pool", "pool", "lap pool"},
		"garage":       {"garage", "attached garage", "detached garage", "carport", "2-car garage", "3-car garage"},
		"fireplace":    {"fireplace", "wood burning fireplace", "gas fireplace"},
		"hardwood":     {"hardwood floors", "hardwood", "wood floors", "original hardwood"},
		"basement":     {"basement", "finished basement", "walkout basement"},
		"deck":         {"deck", "rear deck", "rooftop deck"},
		"patio":        {"patio", "covered patio", "terrace"},
		"yard":         {"fenced yard", "yard", "backyard", "large lot"},
		"garden":       {"garden", "landscaped garden", "vegetable garden"},
		"ac":           {"central air", "air conditioning", "central ac", "a/c", "ac"},
		"solar":        {"solar panels", "solar"},
		"view":         {"view", "mountain view", "city view", "water view"},
		"waterfront":   {"waterfront", "lakefront", "riverfront"},
		"kitchen":      {"updated kitchen", "renovated kitchen", "chef's kitchen", "eat-in kitchen", "kitchen island"},
		"office":       {"home office", "office", "study", "den"},
		"adu":          {"adu", "guest house", "casita", "in-law suite"},
		"laundry":      {"laundry room", "laundry", "washer/dryer"},
		"porch":        {"front porch", "porch", "screened porch", "wraparound porch"},
		"ev":           {"ev charger", "ev charging", "electric vehicle charger"},
		"smart":        {"smart home", "smart thermostat"},
		"accessibility": {"single story", "no stairs", "wheelchair accessible"},
	}

	// Check aliases: desired hits a group key, tag hits one of its values
	for key, values := range aliases {
		if strings.Contains(desiredLower, key) {
			for _, alias := range values {
				if strings.Contains(tagLower, alias) {
					return true
				}
			}
		}
	}

	// Reverse check: tag hits a group key the desired term belongs to
	for key, values := range aliases {
		if strings.Contains(tagLower, key) {
			for _, alias := range values {
				if strings.Contains(desiredLower, alias) {
					return true
				}
			}
		}
	}

	return false
}

// HasFeature reports whether any of the property's feature tags fuzzy
// matches the desired feature.
func HasFeature(desired string, tags []string) bool {
	for _, tag := range tags {
		if MatchFeatureTag(desired, tag) {
			return true
		}
	}
	return false
}

// NormalizeTag normalizes a feature tag to lowercase trimmed form for
// storage and comparison.
func NormalizeTag(tag string) string {
	return strings.Join(strings.Fields(strings.ToLower(tag)), " ")
}

// Package style resolves architectural style similarity for match scoring.
//
// Style taxonomies are fuzzy: a binary match would both over- and
// under-reward near-miss styles ("craftsman" vs "bungalow"). Similarity is
// therefore three-valued: exact (1.0), related via a static adjacency table
// (0.5), or unrelated (0.0).
package style

import "strings"

// Similarity levels returned by Similarity and BestMatch.
const (
	Exact     = 1.0
	Related   = 0.5
	Unrelated = 0.0
)

// adjacency lists which styles are considered related for partial credit.
// Entries are directed but the lookup is checked in both directions, so a
// relation only needs to appear under one key. Content curated from common
// North American residential styles.
var adjacency = map[string][]string{
	"craftsman":          {"bungalow", "prairie", "arts and crafts", "cottage"},
	"bungalow":           {"cottage", "cape cod", "arts and crafts"},
	"prairie":            {"arts and crafts", "usonian"},
	"victorian":          {"queen anne", "gothic revival", "italianate", "second empire", "eastlake"},
	"queen anne":         {"eastlake", "stick"},
	"gothic revival":     {"carpenter gothic"},
	"colonial":           {"colonial revival", "georgian", "federal", "dutch colonial", "saltbox"},
	"colonial revival":   {"georgian", "federal"},
	"cape cod":           {"colonial", "cottage", "saltbox"},
	"georgian":           {"federal"},
	"federal":            {"greek revival"},
	"greek revival":      {"neoclassical"},
	"neoclassical":       {"georgian", "beaux arts"},
	"ranch":              {"rambler", "split level", "raised ranch", "mid century modern"},
	"split level":        {"raised ranch", "rambler"},
	"tudor":              {"tudor revival", "english cottage", "storybook"},
	"english cottage":    {"cottage", "storybook"},
	"mediterranean":      {"spanish", "mission revival", "tuscan", "italianate"},
	"spanish":            {"mission revival", "adobe", "pueblo revival", "monterey"},
	"pueblo revival":     {"adobe", "santa fe"},
	"modern":             {"contemporary", "mid century modern", "minimalist", "international"},
	"contemporary":       {"transitional", "minimalist"},
	"mid century modern": {"eichler", "contemporary"},
	"farmhouse":          {"modern farmhouse", "country", "cottage"},
	"modern farmhouse":   {"transitional"},
	"cottage":            {"storybook"},
	"italianate":         {"second empire"},
	"art deco":           {"art moderne", "streamline moderne"},
	"log home":           {"log cabin", "cabin", "rustic"},
	"cabin":              {"a-frame", "chalet", "rustic"},
	"a-frame":            {"chalet"},
	"rowhouse":           {"townhouse", "brownstone"},
	"brownstone":         {"townhouse"},
	"shotgun":            {"creole cottage"},
	"craftsman bungalow": {"craftsman", "bungalow"},
}

// Normalize canonicalizes a style string: trims, lowercases, and collapses
// internal whitespace to single spaces. Idempotent.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// Similarity returns Exact for identical normalized styles, Related when
// either style appears in the other's adjacency entry, and Unrelated
// otherwise.
func Similarity(a, b string) float64 {
	na, nb := Normalize(a), Normalize(b)
	if na == "" || nb == "" {
		return Unrelated
	}
	if na == nb {
		return Exact
	}
	if contains(adjacency[na], nb) || contains(adjacency[nb], na) {
		return Related
	}
	return Unrelated
}

// BestMatch returns the maximum similarity between the property's style and
// any desired style, short-circuiting on the first exact match. Returns 0
// when no styles were desired or the property style is empty.
func BestMatch(desiredStyles []string, propertyStyle string) float64 {
	if len(desiredStyles) == 0 || Normalize(propertyStyle) == "" {
		return Unrelated
	}

	best := Unrelated
	for _, desired := range desiredStyles {
		sim := Similarity(desired, propertyStyle)
		if sim == Exact {
			return Exact
		}
		if sim > best {
			best = sim
		}
	}
	return best
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

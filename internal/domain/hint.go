package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

// MinHintPrefixLength is the shortest input that triggers a hint lookup.
// Shorter prefixes return no hints without touching the store.
const MinHintPrefixLength = 3

const (
	// PointHintLimit caps the number of point hints returned.
	PointHintLimit = 5
	// RegionHintLimit caps the number of region hints returned.
	RegionHintLimit = 4
)

// HintType tells which OSM table a region hint comes from.
type HintType string

const (
	HintPlace   HintType = "place"
	HintPolygon HintType = "polygon"
)

// ParseHintType validates a raw hint type.
func ParseHintType(s string) (HintType, error) {
	switch HintType(s) {
	case HintPlace, HintPolygon:
		return HintType(s), nil
	}
	return "", fmt.Errorf("%w: unknown hint type %q", ErrValidation, s)
}

// HintPrefixLongEnough reports whether prefix is long enough (in characters)
// to run a hint lookup.
func HintPrefixLongEnough(prefix string) bool {
	return utf8.RuneCountInString(prefix) >= MinHintPrefixLength
}

// PointHint is an autocomplete suggestion for a point of interest,
// together with the settlement it lies in.
type PointHint struct {
	ID    int64
	Name  string
	City  string
	Point json.RawMessage
}

// RegionHint is an autocomplete suggestion for a routing start/end: either
// an OSM point ("place") or an OSM polygon ("polygon").
type RegionHint struct {
	ID   int64
	Name string
	Way  json.RawMessage
	Type HintType
}

// Category tags carried by OSM points that make them worth suggesting.
const (
	TagNatural  = "natural"
	TagEle      = "ele"
	TagHistoric = "historic"
	TagPlace    = "place"
	TagTourism  = "tourism"
	TagLeisure  = "leisure"
	TagAmenity  = "amenity"
	TagSport    = "sport"
)

// PointHintCandidate is an unranked point hint with the signals the ranker
// needs: which category tags the point carries.
type PointHintCandidate struct {
	Hint PointHint
	Tags []string
}

// RegionHintCandidate is an unranked region hint. Settlement is true when
// the OSM object has a population or is a village, town or city.
type RegionHintCandidate struct {
	Hint       RegionHint
	Settlement bool
}

// AdminPrefixes lists administrative-unit qualifiers ("district of",
// "province of") that may start the name of the area containing a point.
// Areas named with an earlier entry rank higher than later entries; plain
// settlement names rank above all of them. Matching is case-insensitive.
type AdminPrefixes []string

// DefaultAdminPrefixes is the Polish table: gmina (commune), powiat
// (county), województwo (voivodeship).
var DefaultAdminPrefixes = AdminPrefixes{"gmina", "powiat", "województwo"}

// Rank returns 1 for a plain area name and 2+i when name starts with the
// i-th qualifier.
func (a AdminPrefixes) Rank(name string) int {
	lower := strings.ToLower(name)
	for i, p := range a {
		if strings.HasPrefix(lower, strings.ToLower(p)) {
			return i + 2
		}
	}
	return 1
}

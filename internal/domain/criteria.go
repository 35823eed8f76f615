package domain

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// DefaultRadiusKm is the search radius applied around a point when the
// caller does not supply a usable ?radius= value.
const DefaultRadiusKm = 5.0

// SortDirection is the ordering direction of a sorted search.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Attribute is a single attribute filter such as color=red.
// Field is always one of the allow-listed trip fields.
type Attribute struct {
	Field string
	Value string
}

// SearchCriteria is the normalized, validated filter set of one trip search.
// Build it with NewSearchCriteria and treat it as read-only afterwards: the
// query compiler and the search service only ever read from it.
type SearchCriteria struct {
	RecordID           *uuid.UUID
	OwnerID            *uuid.UUID
	FavouritesOfUserID *uuid.UUID
	PublicOnly         bool

	// Exact holds equality filters in allow-list order (color, type).
	Exact []Attribute
	// Like holds substring filters in allow-list order (name, description).
	// Any of them matching is enough.
	Like []Attribute

	// Center is nil when no valid ?point= was supplied; RadiusKm is only
	// meaningful when Center is set.
	Center             *LatLng
	RadiusKm           float64
	ContainingRegionID *int64

	Pagination    PaginationParams
	SortField     string
	SortDirection SortDirection

	WithWaypoints bool
	WithComments  bool
}

// exactParams maps accepted query keys to the trip field they filter on.
// "category" is an alias of "type"; the first key present wins.
var exactParams = []struct{ key, field string }{
	{"color", "color"},
	{"type", "type"},
	{"category", "type"},
}

// likeFields are the fields that accept substring matching, and the two
// targets of the free-text ?query= parameter.
var likeFields = []string{"name", "description"}

// SortFields is the allow-list of fields a search may be ordered by.
var SortFields = map[string]bool{
	"name":     true,
	"type":     true,
	"color":    true,
	"distance": true,
	"ascend":   true,
	"descend":  true,
	"time":     true,
}

var pointPattern = regexp.MustCompile(`^(-?\d+(?:\.\d+)?),(-?\d+(?:\.\d+)?)$`)

// CriteriaOption sets caller-derived scope that does not come from query
// parameters, such as the caller identity or the waypoint/comment switches.
type CriteriaOption func(*criteriaScope)

type criteriaScope struct {
	caller       *uuid.UUID
	owner        *uuid.UUID
	favouritesOf *uuid.UUID
	waypoints    bool
	comments     bool
}

// WithCaller records the authenticated caller. Anonymous searches simply
// omit it.
func WithCaller(id uuid.UUID) CriteriaOption {
	return func(s *criteriaScope) { s.caller = &id }
}

// OwnedBy restricts the search to trips owned by id.
func OwnedBy(id uuid.UUID) CriteriaOption {
	return func(s *criteriaScope) { s.owner = &id }
}

// FavouritesOf restricts the search to trips favourited by id. It takes
// precedence over a ?userId= parameter.
func FavouritesOf(id uuid.UUID) CriteriaOption {
	return func(s *criteriaScope) { s.favouritesOf = &id }
}

// WithWaypoints makes the search attach ordered waypoints to every trip.
func WithWaypoints() CriteriaOption {
	return func(s *criteriaScope) { s.waypoints = true }
}

// WithComments makes the search attach comments to every trip.
func WithComments() CriteriaOption {
	return func(s *criteriaScope) { s.comments = true }
}

// NewSearchCriteria normalizes raw query parameters into a SearchCriteria.
//
// It never fails. Unknown keys are ignored, malformed values leave their
// filter unset, and malformed page/radius values fall back to their defaults.
//
// Visibility: PublicOnly is true unless the caller is listing their own
// trips (OwnedBy the same id as WithCaller). In that case ?public=true still
// narrows the listing to public trips.
func NewSearchCriteria(params map[string]string, opts ...CriteriaOption) SearchCriteria {
	var scope criteriaScope
	for _, opt := range opts {
		opt(&scope)
	}

	c := SearchCriteria{
		OwnerID:       scope.owner,
		RadiusKm:      DefaultRadiusKm,
		Pagination:    NewPaginationParams(params["page"]),
		WithWaypoints: scope.waypoints,
		WithComments:  scope.comments,
	}

	c.RecordID = parseUUID(params["id"])
	c.FavouritesOfUserID = scope.favouritesOf
	if c.FavouritesOfUserID == nil {
		c.FavouritesOfUserID = parseUUID(params["userId"])
	}

	ownView := scope.owner != nil && scope.caller != nil && *scope.owner == *scope.caller
	if ownView {
		c.PublicOnly, _ = strconv.ParseBool(params["public"])
	} else {
		c.PublicOnly = true
	}

	seen := map[string]bool{}
	for _, p := range exactParams {
		v := params[p.key]
		if v == "" || seen[p.field] {
			continue
		}
		seen[p.field] = true
		c.Exact = append(c.Exact, Attribute{Field: p.field, Value: v})
	}

	query := params["query"]
	for _, f := range likeFields {
		v := params[f]
		if query != "" {
			v = query
		}
		if v != "" {
			c.Like = append(c.Like, Attribute{Field: f, Value: v})
		}
	}

	c.Center = parsePoint(params["point"])
	if r, err := strconv.ParseFloat(params["radius"], 64); err == nil && r > 0 && !math.IsInf(r, 0) {
		c.RadiusKm = r
	}

	region := params["polygonToIntersectId"]
	if region == "" {
		region = params["regionId"]
	}
	if id, err := strconv.ParseInt(region, 10, 64); err == nil {
		c.ContainingRegionID = &id
	}

	c.SortField, c.SortDirection = parseSort(params["sort"])

	return c
}

// Params encodes the filters applied by c back into query parameters.
// NewSearchCriteria(c.Params(), opts...) with the options c was built with
// returns a value equal to c.
func (c SearchCriteria) Params() map[string]string {
	out := map[string]string{
		"page": strconv.Itoa(c.Pagination.Page),
	}
	if c.RecordID != nil {
		out["id"] = c.RecordID.String()
	}
	if c.FavouritesOfUserID != nil {
		out["userId"] = c.FavouritesOfUserID.String()
	}
	if c.PublicOnly {
		out["public"] = "true"
	}
	for _, a := range c.Exact {
		out[a.Field] = a.Value
	}
	for _, a := range c.Like {
		out[a.Field] = a.Value
	}
	if c.Center != nil {
		out["point"] = formatFloat(c.Center.Lat) + "," + formatFloat(c.Center.Lng)
	}
	if c.RadiusKm != DefaultRadiusKm {
		out["radius"] = formatFloat(c.RadiusKm)
	}
	if c.ContainingRegionID != nil {
		out["polygonToIntersectId"] = strconv.FormatInt(*c.ContainingRegionID, 10)
	}
	if c.SortField != "" {
		out["sort"] = c.SortField + "." + string(c.SortDirection)
	}
	return out
}

// HasFilters reports whether any filter beyond pagination is applied.
func (c SearchCriteria) HasFilters() bool {
	return c.RecordID != nil || c.OwnerID != nil || c.FavouritesOfUserID != nil ||
		c.PublicOnly || len(c.Exact) > 0 || len(c.Like) > 0 ||
		c.Center != nil || c.ContainingRegionID != nil
}

func parseUUID(s string) *uuid.UUID {
	if s == "" {
		return nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil
	}
	return &id
}

// parsePoint accepts exactly "<lat>,<lng>" with plain decimal numbers.
func parsePoint(s string) *LatLng {
	m := pointPattern.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	lat, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil
	}
	lng, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return nil
	}
	p := LatLng{Lat: lat, Lng: lng}
	if !p.Valid() {
		return nil
	}
	return &p
}

// parseSort splits "field.dir". Fields outside SortFields disable sorting;
// any direction other than "desc" means ascending.
func parseSort(s string) (string, SortDirection) {
	field, dir, _ := strings.Cut(s, ".")
	if !SortFields[field] {
		return "", ""
	}
	if dir == string(SortDesc) {
		return field, SortDesc
	}
	return field, SortAsc
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

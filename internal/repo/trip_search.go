package repo

import (
	"github.com/jackc/pgx/v5"

	"github.com/pkordes/trailfinder/internal/domain"
	"github.com/pkordes/trailfinder/internal/query"
)

const (
	tripsTable     = "planned_trips"
	favouritesJoin = "JOIN user_favourites ON user_favourites.trip_id = planned_trips.id"
)

// tripColumns is the column list scanned by scanTrip, in order.
var tripColumns = []string{
	"planned_trips.id",
	"planned_trips.trip_owner_id",
	"planned_trips.name",
	"planned_trips.description",
	"planned_trips.type",
	"planned_trips.color",
	"planned_trips.public",
	"ST_AsGeoJSON(ST_Transform(planned_trips.route, 4326))",
	"planned_trips.distance",
	"planned_trips.ascend",
	"planned_trips.descend",
	`planned_trips."time"`,
}

// exactColumns and likeColumns map allow-listed criteria fields to columns.
// Fields missing here are ignored even if the criteria carry them.
var exactColumns = map[string]string{
	"color": "planned_trips.color",
	"type":  "planned_trips.type",
}

var likeColumns = map[string]string{
	"name":        "planned_trips.name",
	"description": "planned_trips.description",
}

var sortColumns = map[string]pgx.Identifier{
	"name":     {"planned_trips", "name"},
	"type":     {"planned_trips", "type"},
	"color":    {"planned_trips", "color"},
	"distance": {"planned_trips", "distance"},
	"ascend":   {"planned_trips", "ascend"},
	"descend":  {"planned_trips", "descend"},
	"time":     {"planned_trips", "time"},
}

var tripIDOrder = query.Order{Column: pgx.Identifier{"planned_trips", "id"}}

// CompileTripSearch turns criteria into the selection and count statements
// of one search page. Both statements are rendered from a single ClauseSet.
func CompileTripSearch(c domain.SearchCriteria) query.Compiled {
	clauses := tripSearchClauses(c)

	sel := query.Select{
		Columns: tripColumns,
		From:    tripsTable,
		Clauses: clauses,
		OrderBy: tripSearchOrder(c),
		Limit:   c.Pagination.Limit,
		Offset:  c.Pagination.Offset(),
	}
	cnt := query.Count{
		Column:  "planned_trips.id",
		From:    tripsTable,
		Clauses: clauses,
	}

	return query.Compiled{Select: sel.Statement(), Count: cnt.Statement()}
}

func tripSearchClauses(c domain.SearchCriteria) query.ClauseSet {
	var cs query.ClauseSet

	if c.RecordID != nil {
		cs.And(query.Equals{Column: "planned_trips.id", Value: *c.RecordID})
	}
	if c.OwnerID != nil {
		cs.And(query.Equals{Column: "planned_trips.trip_owner_id", Value: *c.OwnerID})
	}
	if c.PublicOnly {
		cs.And(query.Equals{Column: "planned_trips.public", Value: true})
	}
	if c.FavouritesOfUserID != nil {
		cs.Join(favouritesJoin)
		cs.And(query.Equals{Column: "user_favourites.user_id", Value: *c.FavouritesOfUserID})
	}
	for _, a := range c.Exact {
		if col, ok := exactColumns[a.Field]; ok {
			cs.And(query.Equals{Column: col, Value: a.Value})
		}
	}
	if c.Center != nil {
		cs.And(query.WithinDistance{Column: "planned_trips.route", Center: *c.Center, RadiusKm: c.RadiusKm})
	}
	if c.ContainingRegionID != nil {
		cs.And(query.Intersects{Column: "planned_trips.route", RegionID: *c.ContainingRegionID})
	}
	for _, a := range c.Like {
		if col, ok := likeColumns[a.Field]; ok {
			cs.Or(query.Like{Column: col, Pattern: query.ContainsPattern(a.Value)})
		}
	}

	return cs
}

// tripSearchOrder orders by the requested field, always followed by the
// primary key so that pages never overlap.
func tripSearchOrder(c domain.SearchCriteria) []query.Order {
	col, ok := sortColumns[c.SortField]
	if !ok {
		return []query.Order{tripIDOrder}
	}
	return []query.Order{
		{Column: col, Desc: c.SortDirection == domain.SortDesc},
		tripIDOrder,
	}
}

package query_test

import (
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trailfinder/internal/domain"
	"github.com/pkordes/trailfinder/internal/query"
)

func TestClauseSet_NoPredicates_NoWhere(t *testing.T) {
	st := query.Count{Column: "id", From: "t"}.Statement()

	assert.Equal(t, "SELECT COUNT(id) FROM t", st.SQL)
	assert.Empty(t, st.Args)
}

func TestClauseSet_AndOnly(t *testing.T) {
	c := query.Where(
		query.Equals{Column: "a", Value: 1},
		query.Equals{Column: "b", Value: "x"},
	)

	st := query.Count{Column: "id", From: "t", Clauses: c}.Statement()

	assert.Equal(t, "SELECT COUNT(id) FROM t WHERE a = @p1 AND b = @p2", st.SQL)
	assert.Equal(t, pgx.NamedArgs{"p1": 1, "p2": "x"}, st.Args)
}

func TestClauseSet_OrOnly_NoParentheses(t *testing.T) {
	var c query.ClauseSet
	c.Or(query.Like{Column: "name", Pattern: "%a%"}, query.Like{Column: "description", Pattern: "%a%"})

	st := query.Count{Column: "id", From: "t", Clauses: c}.Statement()

	assert.Equal(t, `SELECT COUNT(id) FROM t WHERE name ILIKE @p1 ESCAPE '\' OR description ILIKE @p2 ESCAPE '\'`, st.SQL)
}

func TestClauseSet_AndWithOrGroup(t *testing.T) {
	c := query.Where(query.Equals{Column: "public", Value: true})
	c.Or(query.Like{Column: "name", Pattern: "%a%"}, query.Like{Column: "description", Pattern: "%a%"})

	st := query.Count{Column: "id", From: "t", Clauses: c}.Statement()

	assert.Equal(t,
		`SELECT COUNT(id) FROM t WHERE public = @p1 AND (name ILIKE @p2 ESCAPE '\' OR description ILIKE @p3 ESCAPE '\')`,
		st.SQL)
}

func TestClauseSet_JoinsAreDeduplicated(t *testing.T) {
	var c query.ClauseSet
	c.Join("JOIN f ON f.t = t.id")
	c.Join("JOIN f ON f.t = t.id")

	assert.Equal(t, []string{"JOIN f ON f.t = t.id"}, c.Joins())

	st := query.Count{Column: "t.id", From: "t", Clauses: c}.Statement()
	assert.Equal(t, "SELECT COUNT(t.id) FROM t JOIN f ON f.t = t.id", st.SQL)
}

func TestSelect_OrderAndPagination(t *testing.T) {
	s := query.Select{
		Columns: []string{"id", "name"},
		From:    "t",
		Clauses: query.Where(query.Equals{Column: "color", Value: "red"}),
		OrderBy: []query.Order{
			{Column: pgx.Identifier{"t", "name"}, Desc: true},
			{Column: pgx.Identifier{"t", "id"}},
		},
		Limit:  12,
		Offset: 24,
	}

	st := s.Statement()

	assert.Equal(t,
		`SELECT id, name FROM t WHERE color = @p1 ORDER BY "t"."name" DESC, "t"."id" ASC LIMIT @p2 OFFSET @p3`,
		st.SQL)
	assert.Equal(t, pgx.NamedArgs{"p1": "red", "p2": 12, "p3": 24}, st.Args)
}

// TestSelectAndCount_ShareFilterArguments verifies that rendering the same
// ClauseSet through both terminal builders binds identical filter arguments.
func TestSelectAndCount_ShareFilterArguments(t *testing.T) {
	c := query.Where(
		query.Equals{Column: "owner", Value: "u1"},
		query.WithinDistance{Column: "route", Center: domain.LatLng{Lat: 50, Lng: 19.9}, RadiusKm: 10},
	)
	c.Join("JOIN f ON f.t = t.id")
	c.Or(query.Like{Column: "name", Pattern: "%x%"})

	sel := query.Select{Columns: []string{"id"}, From: "t", Clauses: c, Limit: 12}.Statement()
	cnt := query.Count{Column: "id", From: "t", Clauses: c}.Statement()

	for name, v := range cnt.Args {
		require.Contains(t, sel.Args, name)
		assert.Equal(t, v, sel.Args[name])
	}
	assert.Len(t, sel.Args, len(cnt.Args)+2, "select adds only limit and offset")
}

func TestWithinDistance_ConvertsUnitsAndAxisOrder(t *testing.T) {
	c := query.Where(query.WithinDistance{
		Column:   "route",
		Center:   domain.LatLng{Lat: 50.0, Lng: 19.9},
		RadiusKm: 10,
	})

	st := query.Count{Column: "id", From: "t", Clauses: c}.Statement()

	assert.Equal(t,
		"SELECT COUNT(id) FROM t WHERE ST_DWithin(route::geography, ST_SetSRID(ST_MakePoint(@p1, @p2), 4326)::geography, @p3)",
		st.SQL)
	assert.Equal(t, 19.9, st.Args["p1"], "longitude goes first")
	assert.Equal(t, 50.0, st.Args["p2"])
	assert.Equal(t, 10000.0, st.Args["p3"], "radius is bound in metres")
}

func TestIntersects_LooksUpRegionAtQueryTime(t *testing.T) {
	c := query.Where(query.Intersects{Column: "route", RegionID: -42})

	st := query.Count{Column: "id", From: "t", Clauses: c}.Statement()

	assert.Contains(t, st.SQL, "ST_Intersects(route, (SELECT ST_Union(ST_Transform(way, 4326)) FROM planet_osm_polygon WHERE osm_id = @p1))")
	assert.Equal(t, int64(-42), st.Args["p1"])
}

func TestInSet(t *testing.T) {
	ids := []int{1, 2, 3}
	st := query.Select{
		Columns: []string{"id"},
		From:    "photos",
		Clauses: query.Where(query.InSet{Column: "trip_id", Values: ids}),
	}.Statement()

	assert.Equal(t, "SELECT id FROM photos WHERE trip_id = ANY(@p1)", st.SQL)
	assert.Equal(t, ids, st.Args["p1"])
}

func TestLikePatterns_EscapeWildcards(t *testing.T) {
	assert.Equal(t, `%50\% off\_now%`, query.ContainsPattern("50% off_now"))
	assert.Equal(t, `Kra%`, query.PrefixPattern("Kra"))
	assert.Equal(t, `a\\b%`, query.PrefixPattern(`a\b`))
}

func TestValuesNeverReachSQLText(t *testing.T) {
	hostile := "x'; DROP TABLE planned_trips; --"
	c := query.Where(query.Equals{Column: "color", Value: hostile})
	c.Or(query.Like{Column: "name", Pattern: query.ContainsPattern(hostile)})

	st := query.Select{Columns: []string{"id"}, From: "t", Clauses: c}.Statement()

	assert.NotContains(t, st.SQL, "DROP")
}

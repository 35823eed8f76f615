package query

import "github.com/pkordes/trailfinder/internal/domain"

// Trip geometries are stored in EPSG:4326 (WGS84). OSM tables loaded by
// osm2pgsql use web mercator and are transformed to 4326 before comparison.

// WithinDistance holds when the geometry in Column lies within RadiusKm of
// Center. Column must hold EPSG:4326 geometries; the comparison is done on
// geography so the radius is a true ground distance.
type WithinDistance struct {
	Column   string
	Center   domain.LatLng
	RadiusKm float64
}

func (p WithinDistance) render(b *binder) string {
	// ST_MakePoint takes (x, y), i.e. longitude first.
	lng := b.bind(p.Center.Lng)
	lat := b.bind(p.Center.Lat)
	meters := b.bind(p.RadiusKm * 1000)
	return "ST_DWithin(" + p.Column + "::geography, ST_SetSRID(ST_MakePoint(" + lng + ", " + lat + "), 4326)::geography, " + meters + ")"
}

// Intersects holds when the geometry in Column intersects the OSM polygon
// with the given osm_id. The polygon is looked up when the statement runs.
// A region without any polygon row matches nothing.
type Intersects struct {
	Column   string
	RegionID int64
}

func (p Intersects) render(b *binder) string {
	id := b.bind(p.RegionID)
	return "ST_Intersects(" + p.Column + ", (SELECT ST_Union(ST_Transform(way, 4326)) FROM planet_osm_polygon WHERE osm_id = " + id + "))"
}

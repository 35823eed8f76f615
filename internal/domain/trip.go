// Package domain contains the core data types for the trail search API.
// It is imported by every other internal package (query, repo, service,
// handler) and depends only on small value-type libraries.
package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Trip is a planned trail with its computed stats.
// Base fields come from a single planned_trips row; Images, Points and
// Comments are attached once by the search service after the match set is
// known and are not modified afterwards.
type Trip struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Name        string
	Description string
	Type        string
	Color       string
	Public      bool

	// Route is the GeoJSON LineString of the trail in EPSG:4326.
	Route json.RawMessage

	Distance float64
	Ascend   float64
	Descend  float64
	Time     float64

	Images   []TripImage
	Points   []TripPoint
	Comments []TripComment
}

// TripImage is a photo attached to a trip. Only the stored file name is kept
// in the database; Path derives the public URL path.
type TripImage struct {
	ID     uuid.UUID
	TripID uuid.UUID
	Name   string
}

// imagesPathPrefix is where uploaded trip photos are served from.
const imagesPathPrefix = "/images/trips/"

// Path returns the public URL path of the image.
func (i TripImage) Path() string {
	return imagesPathPrefix + i.Name
}

// TripPoint is an ordered waypoint of a trip.
// A waypoint either references an OSM point (OSMPointID set, Name taken from
// the OSM data) or carries custom coordinates. Coordinates is always a GeoJSON
// Point in EPSG:4326, or nil when neither source is available.
type TripPoint struct {
	ID          uuid.UUID
	TripID      uuid.UUID
	OSMPointID  *int64
	Name        string
	Coordinates json.RawMessage
	Order       int
}

// TripComment is a user comment on a trip.
type TripComment struct {
	ID        uuid.UUID
	TripID    uuid.UUID
	UserID    uuid.UUID
	Content   string
	CreatedAt time.Time
}

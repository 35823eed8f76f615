package handler

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/trailfinder/internal/domain"
)

// Response bodies. Field names follow openapi.yaml.

// TripPage is the body of the trip listing endpoints.
type TripPage struct {
	PageCount int    `json:"pageCount"`
	Trips     []Trip `json:"trips"`
}

type Trip struct {
	ID          uuid.UUID       `json:"id"`
	Route       json.RawMessage `json:"route"`
	Color       string          `json:"color"`
	Public      bool            `json:"public"`
	Type        string          `json:"type"`
	Name        string          `json:"name"`
	Ascend      float64         `json:"ascend"`
	Descend     float64         `json:"descend"`
	Distance    float64         `json:"distance"`
	Time        float64         `json:"time"`
	Description string          `json:"description"`
	TripOwnerID uuid.UUID       `json:"tripOwnerId"`
	Images      []TripImage     `json:"images"`
	Comments    []TripComment   `json:"comments"`
	Points      []TripPoint     `json:"points"`
}

type TripImage struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Path string    `json:"path"`
}

type TripComment struct {
	ID      uuid.UUID `json:"id"`
	TripID  uuid.UUID `json:"tripId"`
	UserID  uuid.UUID `json:"userId"`
	Content string    `json:"content"`
	DateAdd time.Time `json:"dateAdd"`
}

type TripPoint struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	OSMPointID  *int64          `json:"osmPointId"`
	TripID      uuid.UUID       `json:"tripId"`
	Coordinates json.RawMessage `json:"coordinates"`
	Order       int             `json:"order"`
}

type PointHint struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	City  string          `json:"city"`
	Point json.RawMessage `json:"point"`
}

type RegionHint struct {
	ID   int64           `json:"id"`
	Name string          `json:"name"`
	Way  json.RawMessage `json:"way"`
	Type string          `json:"type"`
}

// --- mapping helpers --------------------------------------------------------

func pageToResponse(p domain.Page[domain.Trip]) TripPage {
	trips := make([]Trip, len(p.Items))
	for i, t := range p.Items {
		trips[i] = tripToResponse(t)
	}
	return TripPage{PageCount: p.PageCount, Trips: trips}
}

// tripToResponse converts a domain.Trip into its JSON shape. Collections
// that were not loaded are rendered as empty arrays.
func tripToResponse(t domain.Trip) Trip {
	resp := Trip{
		ID:          t.ID,
		Route:       t.Route,
		Color:       t.Color,
		Public:      t.Public,
		Type:        t.Type,
		Name:        t.Name,
		Ascend:      t.Ascend,
		Descend:     t.Descend,
		Distance:    t.Distance,
		Time:        t.Time,
		Description: t.Description,
		TripOwnerID: t.OwnerID,
		Images:      make([]TripImage, len(t.Images)),
		Comments:    make([]TripComment, len(t.Comments)),
		Points:      make([]TripPoint, len(t.Points)),
	}
	for i, img := range t.Images {
		resp.Images[i] = TripImage{ID: img.ID, Name: img.Name, Path: img.Path()}
	}
	for i, c := range t.Comments {
		resp.Comments[i] = TripComment{ID: c.ID, TripID: c.TripID, UserID: c.UserID, Content: c.Content, DateAdd: c.CreatedAt}
	}
	for i, p := range t.Points {
		resp.Points[i] = TripPoint{
			ID:          p.ID,
			Name:        p.Name,
			OSMPointID:  p.OSMPointID,
			TripID:      p.TripID,
			Coordinates: p.Coordinates,
			Order:       p.Order,
		}
	}
	return resp
}

func pointHintsToResponse(hints []domain.PointHint) []PointHint {
	out := make([]PointHint, len(hints))
	for i, h := range hints {
		out[i] = PointHint{ID: h.ID, Name: h.Name, City: h.City, Point: h.Point}
	}
	return out
}

func regionHintToResponse(h domain.RegionHint) RegionHint {
	return RegionHint{ID: h.ID, Name: h.Name, Way: h.Way, Type: string(h.Type)}
}

func regionHintsToResponse(hints []domain.RegionHint) []RegionHint {
	out := make([]RegionHint, len(hints))
	for i, h := range hints {
		out[i] = regionHintToResponse(h)
	}
	return out
}

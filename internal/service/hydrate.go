package service

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/pkordes/trailfinder/internal/domain"
)

// hydrate attaches images, and optionally waypoints and comments, to trips.
// Each collection is fetched with one batched query for all trips; the
// queries run concurrently. trips is modified in place.
func (s *TripService) hydrate(ctx context.Context, trips []domain.Trip, c domain.SearchCriteria) error {
	ids := make([]uuid.UUID, len(trips))
	for i, t := range trips {
		ids[i] = t.ID
	}

	var (
		images   []domain.TripImage
		points   []domain.TripPoint
		comments []domain.TripComment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		images, err = s.trips.ImagesByTripIDs(gctx, ids)
		return err
	})
	if c.WithWaypoints {
		g.Go(func() error {
			var err error
			points, err = s.trips.PointsByTripIDs(gctx, ids)
			return err
		})
	}
	if c.WithComments {
		g.Go(func() error {
			var err error
			comments, err = s.trips.CommentsByTripIDs(gctx, ids)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	imagesByTrip := groupByTrip(images, func(i domain.TripImage) uuid.UUID { return i.TripID })
	pointsByTrip := groupByTrip(points, func(p domain.TripPoint) uuid.UUID { return p.TripID })
	commentsByTrip := groupByTrip(comments, func(c domain.TripComment) uuid.UUID { return c.TripID })

	for i := range trips {
		id := trips[i].ID
		trips[i].Images = orEmpty(imagesByTrip[id])
		trips[i].Points = orEmpty(pointsByTrip[id])
		trips[i].Comments = orEmpty(commentsByTrip[id])
	}
	return nil
}

// groupByTrip buckets items by their owning trip, keeping input order
// within each bucket.
func groupByTrip[T any](items []T, tripID func(T) uuid.UUID) map[uuid.UUID][]T {
	out := make(map[uuid.UUID][]T)
	for _, it := range items {
		id := tripID(it)
		out[id] = append(out[id], it)
	}
	return out
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

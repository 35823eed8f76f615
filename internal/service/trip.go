// Package service contains the business logic for the trail search API.
// Services orchestrate repo calls, enforce visibility rules and rank results.
// No SQL lives here: services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/pkordes/trailfinder/internal/domain"
	"github.com/pkordes/trailfinder/internal/repo"
)

// TripService runs trip searches: it compiles criteria, executes the
// selection and count statements and hydrates the matched trips.
type TripService struct {
	trips repo.TripRepo
	log   *slog.Logger
}

// NewTripService constructs a TripService backed by the provided TripRepo.
// Statements of one search run concurrently, so the repo must be backed by a
// pool (not a single connection or transaction).
func NewTripService(trips repo.TripRepo, log *slog.Logger) *TripService {
	return &TripService{trips: trips, log: log}
}

// Search returns one page of trips matching c.
//
// PageCount is derived from the count statement, so it reflects the full
// match set whatever page was requested; a page past the end has no items
// but still reports the real page count. Images are always attached;
// waypoints and comments only when c asks for them.
func (s *TripService) Search(ctx context.Context, c domain.SearchCriteria) (domain.Page[domain.Trip], error) {
	compiled := repo.CompileTripSearch(c)

	var (
		trips []domain.Trip
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		trips, err = s.trips.Find(gctx, compiled.Select)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.trips.Count(gctx, compiled.Count)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.Page[domain.Trip]{}, fmt.Errorf("service.TripService.Search: %w", err)
	}

	page := domain.Page[domain.Trip]{
		Items:     []domain.Trip{},
		PageCount: domain.PageCount(total, c.Pagination.Limit),
	}

	s.log.DebugContext(ctx, "trip search",
		"filtered", c.HasFilters(),
		"page", c.Pagination.Page,
		"matches", total,
		"returned", len(trips),
	)

	if len(trips) == 0 {
		return page, nil
	}

	if err := s.hydrate(ctx, trips, c); err != nil {
		return domain.Page[domain.Trip]{}, fmt.Errorf("service.TripService.Search: %w", err)
	}
	page.Items = trips
	return page, nil
}

// GetByID returns a single fully hydrated trip.
// Public trips are visible to everyone; private trips only to their owner.
// Returns domain.ErrNotFound when the trip does not exist or is not visible
// to the caller. caller is nil for anonymous requests.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID, caller *uuid.UUID) (domain.Trip, error) {
	params := map[string]string{"id": id.String()}
	opts := []domain.CriteriaOption{domain.WithWaypoints(), domain.WithComments()}

	page, err := s.Search(ctx, domain.NewSearchCriteria(params, opts...))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	if len(page.Items) > 0 {
		return page.Items[0], nil
	}

	if caller != nil {
		own := append(opts, domain.WithCaller(*caller), domain.OwnedBy(*caller))
		page, err = s.Search(ctx, domain.NewSearchCriteria(params, own...))
		if err != nil {
			return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
		}
		if len(page.Items) > 0 {
			return page.Items[0], nil
		}
	}

	return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", domain.ErrNotFound)
}

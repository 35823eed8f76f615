// Package handler implements the HTTP handlers for the trail search API.
// All handlers are methods on Server; Routes mounts them on a chi router
// following the paths declared in spec/openapi.yaml.
// Methods are split into domain-specific files (health.go, trip.go, hint.go)
// but all share the same Server struct so they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/trailfinder/internal/domain"
	"github.com/pkordes/trailfinder/internal/middleware"
)

// TripServicer defines the trip search operations the handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TripServicer interface {
	Search(ctx context.Context, c domain.SearchCriteria) (domain.Page[domain.Trip], error)
	GetByID(ctx context.Context, id uuid.UUID, caller *uuid.UUID) (domain.Trip, error)
}

// HintServicer defines the autocomplete operations the handlers depend on.
type HintServicer interface {
	PointHints(ctx context.Context, prefix string) ([]domain.PointHint, error)
	RegionHints(ctx context.Context, prefix string) ([]domain.RegionHint, error)
	RegionHintByID(ctx context.Context, id int64, rawType string) (domain.RegionHint, error)
}

// Pinger reports whether the backing store is reachable.
// *pgxpool.Pool satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server holds the dependencies shared by all handlers.
type Server struct {
	trips TripServicer
	hints HintServicer
	db    Pinger
	log   *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
// db may be nil, in which case /healthz does not check the store.
func NewServer(trips TripServicer, hints HintServicer, db Pinger, log *slog.Logger) *Server {
	return &Server{trips: trips, hints: hints, db: db, log: log}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(nil, nil, nil, slog.Default())
}

// Routes returns the API router. Trip search accepts an optional caller;
// the /users/me endpoints require one.
func (s *Server) Routes(auth *middleware.Authenticator) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Get("/search-locations-hints", s.GetLocationHints)
	r.Get("/search-find-routes-hints", s.GetRouteHints)
	r.Get("/search-find-routes-hints/{type}/{id}", s.GetRouteHint)

	r.Group(func(r chi.Router) {
		r.Use(auth.Optional)
		r.Get("/search-trips", s.SearchTrips)
		r.Get("/trips/{id}", s.GetTrip)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.Required)
		r.Get("/users/me/trips", s.ListMyTrips)
		r.Get("/users/me/favourites", s.ListMyFavourites)
	})

	return r
}

package handler

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/trailfinder/internal/domain"
	"github.com/pkordes/trailfinder/internal/middleware"
)

// SearchTrips handles GET /search-trips.
// Every query parameter is handed to the criteria normalizer, which ignores
// unknown keys and malformed values; the endpoint never rejects a query.
// Only public trips are listed, with images but without waypoints or comments.
func (s *Server) SearchTrips(w http.ResponseWriter, r *http.Request) {
	var opts []domain.CriteriaOption
	if caller, ok := middleware.CallerID(r.Context()); ok {
		opts = append(opts, domain.WithCaller(caller))
	}
	s.search(w, r, domain.NewSearchCriteria(firstValues(r.URL.Query()), opts...))
}

// ListMyTrips handles GET /users/me/trips.
// Lists the caller's own trips, private ones included; ?public=true narrows
// the listing to public trips.
func (s *Server) ListMyTrips(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerID(r.Context())
	if !ok {
		s.writeError(w, r, domain.ErrUnauthorized, "")
		return
	}
	c := domain.NewSearchCriteria(firstValues(r.URL.Query()), domain.WithCaller(caller), domain.OwnedBy(caller))
	s.search(w, r, c)
}

// ListMyFavourites handles GET /users/me/favourites.
func (s *Server) ListMyFavourites(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerID(r.Context())
	if !ok {
		s.writeError(w, r, domain.ErrUnauthorized, "")
		return
	}
	c := domain.NewSearchCriteria(firstValues(r.URL.Query()), domain.WithCaller(caller), domain.FavouritesOf(caller))
	s.search(w, r, c)
}

func (s *Server) search(w http.ResponseWriter, r *http.Request, c domain.SearchCriteria) {
	page, err := s.trips.Search(r.Context(), c)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, pageToResponse(page))
}

// GetTrip handles GET /trips/{id}.
// Returns the trip with its images, ordered waypoints and comments.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody("invalid trip id"))
		return
	}

	var caller *uuid.UUID
	if c, ok := middleware.CallerID(r.Context()); ok {
		caller = &c
	}

	trip, err := s.trips.GetByID(r.Context(), id, caller)
	if err != nil {
		s.writeError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// firstValues flattens query parameters, keeping the first value of each key.
func firstValues(q url.Values) map[string]string {
	out := make(map[string]string, len(q))
	for k, v := range q {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out
}

package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// GetLocationHints handles GET /search-locations-hints?query=.
// Inputs shorter than three characters yield an empty array.
func (s *Server) GetLocationHints(w http.ResponseWriter, r *http.Request) {
	prefix, ok := bindHintQuery(w, r)
	if !ok {
		return
	}
	hints, err := s.hints.PointHints(r.Context(), prefix)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, pointHintsToResponse(hints))
}

// GetRouteHints handles GET /search-find-routes-hints?query=.
func (s *Server) GetRouteHints(w http.ResponseWriter, r *http.Request) {
	prefix, ok := bindHintQuery(w, r)
	if !ok {
		return
	}
	hints, err := s.hints.RegionHints(r.Context(), prefix)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, regionHintsToResponse(hints))
}

// GetRouteHint handles GET /search-find-routes-hints/{type}/{id}.
// type is "place" or "polygon"; anything else is a 422.
func (s *Server) GetRouteHint(w http.ResponseWriter, r *http.Request) {
	opts := runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true}

	var typ string
	if err := runtime.BindStyledParameterWithOptions("simple", "type", chi.URLParam(r, "type"), &typ, opts); err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody("invalid hint type"))
		return
	}
	var id int64
	if err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id, opts); err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody("invalid hint id"))
		return
	}

	hint, err := s.hints.RegionHintByID(r.Context(), id, typ)
	if err != nil {
		s.writeError(w, r, err, "hint not found")
		return
	}
	writeJSON(w, http.StatusOK, regionHintToResponse(hint))
}

// bindHintQuery reads the optional ?query= parameter. A missing parameter
// is treated as an empty prefix.
func bindHintQuery(w http.ResponseWriter, r *http.Request) (string, bool) {
	var query *string
	if err := runtime.BindQueryParameter("form", true, false, "query", r.URL.Query(), &query); err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody("invalid query parameter"))
		return "", false
	}
	if query == nil {
		return "", true
	}
	return *query, true
}

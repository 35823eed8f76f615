package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trailfinder/internal/domain"
)

func TestGetLocationHints_200(t *testing.T) {
	var got string
	hints := &mockHintServicer{
		pointHints: func(_ context.Context, prefix string) ([]domain.PointHint, error) {
			got = prefix
			return []domain.PointHint{{
				ID:    42,
				Name:  "Krakowska Górka",
				City:  "Kraków",
				Point: json.RawMessage(`{"type":"Point","coordinates":[19.9,50.0]}`),
			}}, nil
		},
	}

	rec := get(newHTTPHandler(nil, hints), "/search-locations-hints?query=Kra", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Kra", got)
	assert.JSONEq(t,
		`[{"id":42,"name":"Krakowska Górka","city":"Kraków","point":{"type":"Point","coordinates":[19.9,50.0]}}]`,
		rec.Body.String())
}

func TestGetLocationHints_MissingQuery_EmptyPrefix(t *testing.T) {
	hints := &mockHintServicer{
		pointHints: func(_ context.Context, prefix string) ([]domain.PointHint, error) {
			assert.Empty(t, prefix)
			return []domain.PointHint{}, nil
		},
	}

	rec := get(newHTTPHandler(nil, hints), "/search-locations-hints", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestGetRouteHints_200(t *testing.T) {
	hints := &mockHintServicer{
		regionHints: func(context.Context, string) ([]domain.RegionHint, error) {
			return []domain.RegionHint{{ID: 7, Name: "Kraków", Type: domain.HintPolygon, Way: json.RawMessage(`null`)}}, nil
		},
	}

	rec := get(newHTTPHandler(nil, hints), "/search-find-routes-hints?query=Kra", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id":7,"name":"Kraków","way":null,"type":"polygon"}]`, rec.Body.String())
}

func TestGetRouteHint_200(t *testing.T) {
	hints := &mockHintServicer{
		regionHintByID: func(_ context.Context, id int64, rawType string) (domain.RegionHint, error) {
			return domain.RegionHint{ID: id, Name: "Tatry", Type: domain.HintType(rawType)}, nil
		},
	}

	rec := get(newHTTPHandler(nil, hints), "/search-find-routes-hints/polygon/-2137", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":-2137,"name":"Tatry","way":null,"type":"polygon"}`, rec.Body.String())
}

func TestGetRouteHint_422_UnknownType(t *testing.T) {
	hints := &mockHintServicer{
		regionHintByID: func(_ context.Context, _ int64, rawType string) (domain.RegionHint, error) {
			return domain.RegionHint{}, fmt.Errorf("service.HintService.RegionHintByID: %w: unknown hint type %q", domain.ErrValidation, rawType)
		},
	}

	rec := get(newHTTPHandler(nil, hints), "/search-find-routes-hints/line/1", "")

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{"error":{"code":"validation_error","message":"unknown hint type \"line\""}}`, rec.Body.String())
}

func TestGetRouteHint_404(t *testing.T) {
	hints := &mockHintServicer{
		regionHintByID: func(context.Context, int64, string) (domain.RegionHint, error) {
			return domain.RegionHint{}, domain.ErrNotFound
		},
	}

	rec := get(newHTTPHandler(nil, hints), "/search-find-routes-hints/place/1", "")

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetRouteHint_400_NonNumericID(t *testing.T) {
	rec := get(newHTTPHandler(nil, &mockHintServicer{}), "/search-find-routes-hints/place/abc", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

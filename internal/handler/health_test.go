package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trailfinder/internal/handler"
	"github.com/pkordes/trailfinder/internal/middleware"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

// TestGetHealth_returns200WithOKStatus verifies that GET /healthz returns
// HTTP 200 and a JSON body of {"status":"ok"}.
func TestGetHealth_returns200WithOKStatus(t *testing.T) {
	// Arrange
	h := handler.NewHealthHandler().Routes(middleware.NewAuthenticator(testSecret))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	// Act
	h.ServeHTTP(rec, req)

	// Assert
	require.Equal(t, http.StatusOK, rec.Code)

	var body handler.HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Equal(t, "ok", body.Status)
}

// TestGetHealth_storeDown_returns503 verifies that an unreachable store
// fails the health check.
func TestGetHealth_storeDown_returns503(t *testing.T) {
	down := pingerFunc(func(context.Context) error { return errors.New("connection refused") })
	srv := handler.NewServer(nil, nil, down, slog.New(slog.DiscardHandler))

	rec := get(srv.Routes(middleware.NewAuthenticator(testSecret)), "/healthz", "")

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status":"unavailable"}`, rec.Body.String())
}

// TestGetOpenAPI_servesEmbeddedDocument verifies the API description is
// served from the binary.
func TestGetOpenAPI_servesEmbeddedDocument(t *testing.T) {
	rec := get(handler.NewHealthHandler().Routes(middleware.NewAuthenticator(testSecret)), "/openapi.yaml", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "openapi:")
	assert.Contains(t, rec.Body.String(), "/search-trips")
}

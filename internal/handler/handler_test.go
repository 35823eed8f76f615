package handler_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trailfinder/internal/domain"
	"github.com/pkordes/trailfinder/internal/handler"
	"github.com/pkordes/trailfinder/internal/middleware"
)

const testSecret = "handler-test-secret-handler-test-secret"

// mockTripServicer is a test double for handler.TripServicer.
// Set only the method fields your test needs.
type mockTripServicer struct {
	search  func(ctx context.Context, c domain.SearchCriteria) (domain.Page[domain.Trip], error)
	getByID func(ctx context.Context, id uuid.UUID, caller *uuid.UUID) (domain.Trip, error)
}

func (m *mockTripServicer) Search(ctx context.Context, c domain.SearchCriteria) (domain.Page[domain.Trip], error) {
	return m.search(ctx, c)
}
func (m *mockTripServicer) GetByID(ctx context.Context, id uuid.UUID, caller *uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id, caller)
}

// mockHintServicer is a test double for handler.HintServicer.
type mockHintServicer struct {
	pointHints     func(ctx context.Context, prefix string) ([]domain.PointHint, error)
	regionHints    func(ctx context.Context, prefix string) ([]domain.RegionHint, error)
	regionHintByID func(ctx context.Context, id int64, rawType string) (domain.RegionHint, error)
}

func (m *mockHintServicer) PointHints(ctx context.Context, prefix string) ([]domain.PointHint, error) {
	return m.pointHints(ctx, prefix)
}
func (m *mockHintServicer) RegionHints(ctx context.Context, prefix string) ([]domain.RegionHint, error) {
	return m.regionHints(ctx, prefix)
}
func (m *mockHintServicer) RegionHintByID(ctx context.Context, id int64, rawType string) (domain.RegionHint, error) {
	return m.regionHintByID(ctx, id, rawType)
}

// compile-time checks: mocks must satisfy the handler interfaces.
var (
	_ handler.TripServicer = (*mockTripServicer)(nil)
	_ handler.HintServicer = (*mockHintServicer)(nil)
)

// ---- helpers ---------------------------------------------------------------

// newHTTPHandler wires a Server with the given mocks into the chi router.
// This mirrors exactly how main.go wires it in production.
func newHTTPHandler(trips handler.TripServicer, hints handler.HintServicer) http.Handler {
	srv := handler.NewServer(trips, hints, nil, slog.New(slog.DiscardHandler))
	return srv.Routes(middleware.NewAuthenticator(testSecret))
}

func bearer(t *testing.T, user uuid.UUID) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"userId": user.String()}).
		SignedString([]byte(testSecret))
	require.NoError(t, err)
	return "Bearer " + token
}

func get(h http.Handler, target, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

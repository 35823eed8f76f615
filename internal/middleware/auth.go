package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type callerKey struct{}

// CallerID returns the authenticated user placed in ctx by the auth
// middleware, if any.
func CallerID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(callerKey{}).(uuid.UUID)
	return id, ok
}

// WithCallerID returns a copy of ctx carrying id as the authenticated user.
// Handler tests use it to simulate a signed-in caller.
func WithCallerID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, callerKey{}, id)
}

// Authenticator verifies HS256 tokens and resolves the userId claim.
type Authenticator struct {
	secret []byte
}

// NewAuthenticator returns an Authenticator for tokens signed with secret.
func NewAuthenticator(secret string) *Authenticator {
	return &Authenticator{secret: []byte(secret)}
}

var errNoToken = errors.New("no token")

// Parse validates a raw Authorization header value and returns the user id
// it carries. Both "Bearer <token>" and a bare token are accepted.
func (a *Authenticator) Parse(header string) (uuid.UUID, error) {
	raw := strings.TrimSpace(header)
	if raw == "" {
		return uuid.Nil, errNoToken
	}
	if scheme, rest, ok := strings.Cut(raw, " "); ok {
		if !strings.EqualFold(scheme, "Bearer") {
			return uuid.Nil, fmt.Errorf("unsupported authorization scheme %q", scheme)
		}
		raw = strings.TrimSpace(rest)
	}

	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return uuid.Nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, errors.New("invalid token claims")
	}
	sub, _ := claims["userId"].(string)
	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, errors.New("userId not found in token")
	}
	return id, nil
}

// Optional resolves the caller when an Authorization header is present.
// Requests without one pass through anonymously; a header that does not
// verify is rejected with 401.
func (a *Authenticator) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := a.Parse(r.Header.Get("Authorization"))
		switch {
		case errors.Is(err, errNoToken):
			next.ServeHTTP(w, r)
		case err != nil:
			writeUnauthorized(w, "invalid token")
		default:
			next.ServeHTTP(w, r.WithContext(WithCallerID(r.Context(), id)))
		}
	})
}

// Required rejects requests without a valid token with 401.
func (a *Authenticator) Required(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := a.Parse(r.Header.Get("Authorization"))
		if errors.Is(err, errNoToken) {
			writeUnauthorized(w, "authorization header required")
			return
		}
		if err != nil {
			writeUnauthorized(w, "invalid token")
			return
		}
		next.ServeHTTP(w, r.WithContext(WithCallerID(r.Context(), id)))
	})
}

// writeUnauthorized writes the API's standard error body. The handler
// package owns the shape; it is repeated here to avoid an import cycle.
func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{"code": "unauthorized", "message": message},
	})
}

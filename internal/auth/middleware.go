package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// ErrMalformedToken is returned when an Authorization header is present but
// carries no token after the Bearer prefix.
var ErrMalformedToken = errors.New("authorization header present but token is empty")

type contextKey struct{}

// identityKey carries the verified user ID for exactly one request. Nothing
// outlives the request context, so identities can never leak across requests.
var identityKey contextKey

// Middleware resolves the per-request identity from the Authorization header.
type Middleware struct {
	codec *TokenCodec
}

func NewMiddleware(codec *TokenCodec) *Middleware {
	return &Middleware{codec: codec}
}

// Extract resolves an identity from a raw Authorization header value.
// An absent header means anonymous; a present header with an empty token is
// ErrMalformedToken (the caller sent something, but not a token); a token
// that fails verification degrades to anonymous rather than erroring, so
// read paths behave as if the caller were not logged in.
func (m *Middleware) Extract(rawHeader string) (userID string, err error) {
	if rawHeader == "" {
		return "", nil
	}
	token := strings.TrimSpace(strings.TrimPrefix(rawHeader, "Bearer"))
	if token == "" {
		return "", ErrMalformedToken
	}
	userID, err = m.codec.Verify(token)
	if err != nil {
		return "", nil
	}
	return userID, nil
}

// Authenticate is an http.Handler middleware that runs Extract once per
// request and injects the result into the request context.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := m.Extract(r.Header.Get("Authorization"))
		if err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{
				"error": "malformed authorization header",
				"code":  "MALFORMED_TOKEN",
			})
			return
		}
		if userID != "" {
			r = r.WithContext(context.WithValue(r.Context(), identityKey, userID))
		}
		next.ServeHTTP(w, r)
	})
}

// UserIDFromContext returns the authenticated user ID for this request, or
// false when the request is anonymous.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(identityKey).(string)
	return id, ok && id != ""
}

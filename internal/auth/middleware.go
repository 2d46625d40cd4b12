package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// contextKey is an unexported type used for context keys in this package.
// Only this package can create a key of type contextKey, so no other
// package can read or shadow the userID value in the context.
type contextKey string

const userIDKey contextKey = "userID"

// ErrNoToken is returned when the request carries no Authorization header.
var ErrNoToken = errors.New("auth: missing bearer token")

// RequireAuth enforces bearer authentication on protected routes.
//
// It reads the token from the "Authorization: Bearer <token>" header,
// validates it, and stores the userID in the request context.
//
// Outcomes follow the API contract:
//   - no Authorization header        → 401 Unauthorized
//   - malformed or expired token     → 403 Forbidden
//   - valid token                    → userID in context, chain continues
func RequireAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr, err := bearerToken(r)
			if err != nil {
				http.Error(w, `{"error":"unauthorized","message":"authentication required"}`, http.StatusUnauthorized)
				return
			}

			userID, err := tokens.Validate(tokenStr)
			if err != nil {
				http.Error(w, `{"error":"forbidden","message":"invalid or expired token"}`, http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithUserID(r.Context(), userID)))
		})
	}
}

// ContextWithUserID returns a context carrying the authenticated user's ID,
// as RequireAuth does for protected routes.
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext retrieves the authenticated user's ID from the request
// context. Returns ("", false) if the request carried no valid token.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

// bearerToken extracts the token from the Authorization header.
// "Bearer x" comparison is case-insensitive per RFC 6750.
func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", ErrNoToken
	}

	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", ErrNoToken
	}

	return header[len(prefix):], nil
}

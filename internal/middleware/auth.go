package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// SessionValidator is the piece of the session service the auth middleware
// needs. Defined here so tests can stub it.
type SessionValidator interface {
	Validate(ctx context.Context, token string) (userID string, ok bool, err error)
}

type contextKey string

const userIDKey contextKey = "userID"

// extractBearerToken pulls the token out of an "Authorization: Bearer x"
// header, or returns "".
func extractBearerToken(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// RequireAuth rejects requests without a valid session token and stores the
// verified acting identity in the request context. Ownership checks downstream
// compare against this identity, never against a request field.
func RequireAuth(sessions SessionValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r.Header.Get("Authorization"))
			userID, ok, err := sessions.Validate(r.Context(), token)
			if err != nil || !ok {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]any{
					"success": false,
					"message": "Authentication required",
				})
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, userID)))
		})
	}
}

// UserID returns the acting identity set by RequireAuth, or "" when the
// request did not pass through it.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

// WithUserID returns a context carrying the acting identity. Exposed for
// handler tests.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

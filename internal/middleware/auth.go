package middleware

import (
	"context"
	"net/http"
	"strings"

	"yt-curator/internal/sessions"
)

type contextKey string

// PrincipalContextKey is the key for the authenticated principal in
// the request context.
const PrincipalContextKey = contextKey("principal")

// TokenVerifier resolves a bearer token to a principal. Implemented by
// auth.Service.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (sessions.Principal, bool)
}

// RequireSession rejects requests without a valid bearer token and
// stores the principal in the request context.
func RequireSession(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				http.Error(w, "Authorization header is required", http.StatusUnauthorized)
				return
			}

			principal, ok := verifier.Verify(r.Context(), token)
			if !ok {
				http.Error(w, "Invalid or expired session", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), PrincipalContextKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken extracts the token from an "Authorization: Bearer ..."
// header, or returns "".
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

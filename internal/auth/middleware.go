package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

var errMissingToken = errors.New("auth: no bearer token")

// contextKey is unexported so only this package can read or write values
// under it; other packages go through EmailFromContext.
type contextKey string

const emailKey contextKey = "email"

// RequireAuth guards a route with bearer-token authentication.
//
// Contract: the token is read from "Authorization: Bearer <token>". If the
// header is absent, malformed, or the token does not verify, the request is
// rejected with 401 before any store is touched. On success the verified
// email claim is attached to the request context for downstream handlers.
//
// This is the only admission control in the system — there are no roles or
// scopes, just authenticated vs not.
func RequireAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email, err := extractEmail(r, tokens)
			if err != nil {
				writeUnauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), emailKey, email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// EmailFromContext returns the authenticated caller's email claim.
// ("", false) means the request never passed RequireAuth.
func EmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(emailKey).(string)
	return email, ok && email != ""
}

// writeUnauthorized emits the same JSON error shape the handlers use, so a
// rejected request looks identical whether the middleware or a handler
// produced it.
func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":   "unauthorized",
		"message": "valid authentication required",
	})
}

// extractEmail pulls the bearer token out of the Authorization header and
// verifies it.
func extractEmail(r *http.Request, tokens *TokenService) (string, error) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return "", errMissingToken
	}

	return tokens.Verify(token)
}

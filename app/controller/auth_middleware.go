package controller

import (
	"context"
	"net/http"
	"strings"

	"frame-storefront/models"
	"frame-storefront/service"
)

type contextKey int

const claimsKey contextKey = iota

// TokenParser validates bearer tokens
type TokenParser interface {
	ParseToken(tokenString string) (*service.Claims, error)
}

// WithClaims returns a context carrying the signed-in user's claims
func WithClaims(ctx context.Context, claims *service.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFromContext returns the claims stored by Authenticate
func ClaimsFromContext(ctx context.Context) (*service.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*service.Claims)
	return claims, ok && claims != nil
}

// Authenticate requires a valid "Authorization: Bearer <token>" header
func Authenticate(tokens TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				respondError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims, err := tokens.ParseToken(strings.TrimSpace(token))
			if err != nil {
				respondError(w, http.StatusUnauthorized, err.Error())
				return
			}
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// RequireAdmin rejects signed-in users without the admin role
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			respondError(w, http.StatusUnauthorized, "not signed in")
			return
		}
		if claims.Role != models.RoleAdmin {
			respondError(w, http.StatusForbidden, "admin role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// currentUser returns the signed-in user's claims or writes 401
func currentUser(w http.ResponseWriter, r *http.Request) (*service.Claims, bool) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "not signed in")
		return nil, false
	}
	return claims, true
}
